// Package prewarm replays Fossilize caches through the external replay tool.
package prewarm

import (
	"context"
	"errors"
	"slices"
	"time"

	"go.trai.ch/nvshader/internal/core/domain"
	"go.trai.ch/nvshader/internal/core/ports"
	"go.trai.ch/zerr"
)

// Source provides the candidate units for a batch.
type Source interface {
	ByGameID(id string) []domain.Entry
	ByType(t domain.CacheType) []domain.Entry
}

// Report is the outcome of one batch.
type Report struct {
	Result domain.PrewarmResult
	// Games holds the per-game breakdown for units with a known game id.
	Games map[string]domain.PrewarmResult
	// Failures holds one error per failed unit.
	Failures []error
}

// GameIDs returns the ids present in Games in sorted order.
func (r Report) GameIDs() []string {
	ids := make([]string, 0, len(r.Games))
	for id := range r.Games {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Orchestrator drives replay invocations. Units run one at a time since the
// replay tool already saturates the CPU.
type Orchestrator struct {
	source  Source
	invoker ports.ReplayInvoker
	timeout time.Duration
}

// New creates an Orchestrator. A zero timeout leaves invocations unbounded.
func New(source Source, invoker ports.ReplayInvoker, timeout time.Duration) *Orchestrator {
	return &Orchestrator{
		source:  source,
		invoker: invoker,
		timeout: timeout,
	}
}

// Available reports whether the replay tool is present.
func (o *Orchestrator) Available() bool {
	return o.invoker != nil && o.invoker.Available()
}

// PrewarmGame replays every unit whose game id equals gameID.
func (o *Orchestrator) PrewarmGame(ctx context.Context, gameID string) (Report, error) {
	if gameID == "" {
		return Report{}, zerr.Wrap(domain.ErrInvalidParam, "game id must not be empty")
	}
	if !o.Available() {
		return Report{}, zerr.Wrap(domain.ErrNotAvailable, "replay tool is not installed")
	}

	entries := o.source.ByGameID(gameID)
	if len(entries) == 0 {
		return Report{}, zerr.With(zerr.Wrap(domain.ErrGameNotFound, "no cache units for game"), "game_id", gameID)
	}
	return o.Run(ctx, entries)
}

// PrewarmAll replays every Fossilize unit.
func (o *Orchestrator) PrewarmAll(ctx context.Context) (Report, error) {
	if !o.Available() {
		return Report{}, zerr.Wrap(domain.ErrNotAvailable, "replay tool is not installed")
	}
	return o.Run(ctx, o.source.ByType(domain.CacheFossilize))
}

// Run attempts every candidate. Units that are not Fossilize caches are
// skipped. A failing unit never stops the batch.
func (o *Orchestrator) Run(ctx context.Context, candidates []domain.Entry) (Report, error) {
	report := Report{Games: make(map[string]domain.PrewarmResult)}

	for _, e := range candidates {
		outcome := o.replay(ctx, e, &report)
		report.Result.Record(outcome)
		if e.HasGame() {
			g := report.Games[e.GameID]
			g.Record(outcome)
			report.Games[e.GameID] = g
		}
	}

	if !report.Result.Balanced() {
		return report, zerr.With(zerr.Wrap(domain.ErrUnknown, "prewarm accounting mismatch"), "total", report.Result.Total)
	}
	return report, nil
}

func (o *Orchestrator) replay(ctx context.Context, e domain.Entry, report *Report) domain.Outcome {
	if e.Type != domain.CacheFossilize {
		return domain.OutcomeSkipped
	}

	invokeCtx := ctx
	if o.timeout > 0 {
		var cancel context.CancelFunc
		invokeCtx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	if err := o.invoker.Invoke(invokeCtx, e.Path); err != nil {
		if errors.Is(invokeCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			err = zerr.Wrap(domain.ErrUnitTimeout, "replay timed out")
		}
		report.Failures = append(report.Failures, zerr.With(zerr.Wrap(err, "replay failed"), "path", e.Path))
		return domain.OutcomeFailed
	}
	return domain.OutcomeCompleted
}
