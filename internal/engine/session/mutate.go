package session

import (
	"context"

	"go.trai.ch/nvshader/internal/core/domain"
	"go.trai.ch/nvshader/internal/engine/eviction"
	"go.trai.ch/nvshader/internal/engine/prewarm"
	"go.trai.ch/zerr"
)

// CleanOlderThan removes every unit at least days old and returns how many
// were removed. Units that fail to delete are not counted.
func (s *Session) CleanOlderThan(days int) (int, error) {
	report, err := s.evict(eviction.PolicyMaxAge, func(e *eviction.Engine) (eviction.Report, error) {
		return e.CleanOlderThan(days)
	})
	return report.Count(), err
}

// ShrinkToSize removes the oldest units until the total is at most maxBytes
// and returns how many were removed.
func (s *Session) ShrinkToSize(maxBytes int64) (int, error) {
	report, err := s.evict(eviction.PolicyMaxSize, func(e *eviction.Engine) (eviction.Report, error) {
		return e.ShrinkToSize(maxBytes)
	})
	return report.Count(), err
}

// ApplyPolicy enforces the configured retention settings, or p when non-nil.
func (s *Session) ApplyPolicy(p *domain.RetentionSettings) (eviction.Report, error) {
	policy := s.retention()
	if p != nil {
		policy = *p
	}
	return s.evict(eviction.PolicyRetention, func(e *eviction.Engine) (eviction.Report, error) {
		return e.ApplyPolicy(policy)
	})
}

// LastEviction returns the report of the most recent eviction call.
func (s *Session) LastEviction() (eviction.Report, error) {
	if err := s.rlock(); err != nil {
		return eviction.Report{}, err
	}
	defer s.mu.RUnlock()
	return s.lastEviction, nil
}

func (s *Session) retention() domain.RetentionSettings {
	if s == nil {
		return domain.RetentionSettings{}
	}
	return s.settings.Retention
}

func (s *Session) evict(policy string, run func(*eviction.Engine) (eviction.Report, error)) (report eviction.Report, err error) {
	if err := s.lock(); err != nil {
		return eviction.Report{}, err
	}
	defer s.mu.Unlock()

	_, span := s.tracer.Start(context.Background(), "session.evict")
	span.SetAttribute("policy", policy)
	defer func() { s.endSpan(span, err) }()

	report, err = run(s.evictor)
	if err != nil {
		return report, s.fail(err)
	}
	s.lastEviction = report
	span.SetAttribute("removed", report.Count())
	span.SetAttribute("failed", len(report.Failures))

	if len(report.Failures) > 0 {
		_ = s.fail(zerr.With(zerr.Wrap(report.Err(), "some cache units could not be removed"), "failed", len(report.Failures)))
	}
	if s.metrics != nil {
		s.metrics.ObserveEviction(policy, report.Count(), len(report.Failures))
		s.metrics.ObserveStats(s.registry.Stats(s.now()))
	}
	return report, nil
}

// PrewarmAvailable reports whether the replay tool is installed.
func (s *Session) PrewarmAvailable() bool {
	if err := s.rlockLive(); err != nil {
		return false
	}
	defer s.mu.RUnlock()
	return s.prewarmer.Available()
}

// PrewarmGame replays every unit of one game.
func (s *Session) PrewarmGame(ctx context.Context, gameID string) (domain.PrewarmResult, error) {
	report, err := s.PrewarmGameReport(ctx, gameID)
	return report.Result, err
}

// PrewarmGameReport is PrewarmGame with the per-unit failures.
func (s *Session) PrewarmGameReport(ctx context.Context, gameID string) (prewarm.Report, error) {
	return s.prewarm(ctx, "session.prewarm_game", func(ctx context.Context) (prewarm.Report, error) {
		return s.prewarmer.PrewarmGame(ctx, gameID)
	})
}

// PrewarmAll replays every Fossilize unit.
func (s *Session) PrewarmAll(ctx context.Context) (domain.PrewarmResult, error) {
	report, err := s.PrewarmAllReport(ctx)
	return report.Result, err
}

// PrewarmAllReport is PrewarmAll with the per-unit failures.
func (s *Session) PrewarmAllReport(ctx context.Context) (prewarm.Report, error) {
	return s.prewarm(ctx, "session.prewarm_all", func(ctx context.Context) (prewarm.Report, error) {
		return s.prewarmer.PrewarmAll(ctx)
	})
}

func (s *Session) prewarm(ctx context.Context, name string, run func(context.Context) (prewarm.Report, error)) (report prewarm.Report, err error) {
	if err := s.lock(); err != nil {
		return prewarm.Report{}, err
	}
	defer s.mu.Unlock()

	ctx, span := s.tracer.Start(ctx, name)
	defer func() { s.endSpan(span, err) }()

	report, err = run(ctx)
	if err != nil {
		return report, s.fail(err)
	}
	span.SetAttribute("completed", report.Result.Completed)
	span.SetAttribute("failed", report.Result.Failed)
	span.SetAttribute("skipped", report.Result.Skipped)

	if report.Result.Failed > 0 {
		_ = s.fail(zerr.With(zerr.Wrap(domain.ErrPartialFailure, "some cache units failed to replay"), "failed", report.Result.Failed))
	}
	if s.metrics != nil {
		s.metrics.ObservePrewarm(report.Result)
	}
	s.recordHistory(report)
	return report, nil
}

func (s *Session) recordHistory(report prewarm.Report) {
	if s.store == nil {
		return
	}
	now := s.now()
	for _, id := range report.GameIDs() {
		record := domain.PrewarmRecord{
			GameID:  id,
			LastRun: now,
			Result:  report.Games[id],
		}
		for _, e := range s.registry.ByGameID(id) {
			if e.GameName != "" {
				record.GameName = e.GameName
				break
			}
		}
		if err := s.store.Put(record); err != nil {
			s.warn("failed to persist prewarm history", err)
		}
	}
}

// History returns the persisted prewarm records, or nothing when no store is
// configured. It reads the store, so it does not need a scan.
func (s *Session) History() ([]domain.PrewarmRecord, error) {
	if err := s.rlockLive(); err != nil {
		return nil, err
	}
	defer s.mu.RUnlock()
	if s.store == nil {
		return nil, nil
	}
	records, err := s.store.List()
	if err != nil {
		return nil, s.fail(err)
	}
	return records, nil
}

// lock takes the write lock on a scanned session. On success the caller must
// release it.
func (s *Session) lock() error {
	if err := s.lockLive(); err != nil {
		return err
	}
	if !s.scanned {
		s.mu.Unlock()
		return s.fail(notScanned())
	}
	return nil
}

// lockLive takes the write lock on a session that is not destroyed.
func (s *Session) lockLive() error {
	if s == nil {
		return invalidHandle()
	}
	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return s.fail(invalidHandle())
	}
	return nil
}
