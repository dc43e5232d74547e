package app

import (
	"context"

	"go.trai.ch/nvshader/internal/core/domain"
	"go.trai.ch/nvshader/internal/engine/prewarm"
	"go.trai.ch/zerr"
)

// Validate checks every unit against its expected layout. Findings are
// reported but never deleted.
func (a *App) Validate(ctx context.Context, opts Options) error {
	rt, err := a.scanned(ctx, opts)
	if err != nil {
		return err
	}
	defer a.close(rt)

	report, err := rt.session.ValidationReport()
	if err != nil {
		return err
	}
	return rt.render.Validation(report)
}

// PrewarmOptions selects what Prewarm replays.
type PrewarmOptions struct {
	// GameID limits the batch to one game. Empty replays everything.
	GameID string
}

// Prewarm replays Fossilize caches so the driver cache is populated before
// the game starts.
func (a *App) Prewarm(ctx context.Context, opts Options, pw PrewarmOptions) error {
	rt, err := a.scanned(ctx, opts)
	if err != nil {
		return err
	}
	defer a.close(rt)

	if !rt.session.PrewarmAvailable() {
		return zerr.With(zerr.Wrap(domain.ErrNotAvailable, "cannot prewarm"), "binary", replayBinary(rt.settings.Prewarm))
	}

	var report prewarm.Report
	if pw.GameID != "" {
		report, err = rt.session.PrewarmGameReport(ctx, pw.GameID)
	} else {
		report, err = rt.session.PrewarmAllReport(ctx)
	}
	if err != nil {
		return err
	}
	if err := rt.render.Prewarm(report); err != nil {
		return err
	}
	if report.Result.Failed > 0 {
		return zerr.With(zerr.Wrap(domain.ErrPartialFailure, "some cache units failed to replay"),
			"failed", report.Result.Failed)
	}
	return nil
}

func replayBinary(s domain.PrewarmSettings) string {
	if s.Binary == "" {
		return domain.ReplayBinary
	}
	return s.Binary
}
