package app

import (
	"context"

	"go.trai.ch/nvshader/internal/core/domain"
	"go.trai.ch/nvshader/internal/engine/eviction"
	"go.trai.ch/zerr"
)

// CleanOptions selects the rule applied by Clean.
type CleanOptions struct {
	// OlderThanDays removes units at least this many days old.
	OlderThanDays int
	// Policy applies the configured retention settings instead.
	Policy bool
}

// Clean deletes cache units by age or by the configured retention policy.
func (a *App) Clean(ctx context.Context, opts Options, clean CleanOptions) error {
	if !clean.Policy && clean.OlderThanDays < 0 {
		return zerr.With(zerr.Wrap(domain.ErrInvalidParam, "age must not be negative"), "days", clean.OlderThanDays)
	}

	rt, err := a.scanned(ctx, opts)
	if err != nil {
		return err
	}
	defer a.close(rt)

	policy := eviction.PolicyMaxAge
	var report eviction.Report
	if clean.Policy {
		policy = eviction.PolicyRetention
		report, err = rt.session.ApplyPolicy(nil)
	} else {
		if _, err = rt.session.CleanOlderThan(clean.OlderThanDays); err == nil {
			report, err = rt.session.LastEviction()
		}
	}
	if err != nil {
		return err
	}
	return a.finishEviction(rt, policy, report)
}

// Shrink deletes the oldest units until the total fits in size.
func (a *App) Shrink(ctx context.Context, opts Options, size string) error {
	limit, err := domain.ParseSize(size)
	if err != nil {
		return err
	}

	rt, err := a.scanned(ctx, opts)
	if err != nil {
		return err
	}
	defer a.close(rt)

	if _, err := rt.session.ShrinkToSize(limit); err != nil {
		return err
	}
	report, err := rt.session.LastEviction()
	if err != nil {
		return err
	}
	return a.finishEviction(rt, eviction.PolicyMaxSize, report)
}

func (a *App) finishEviction(rt *runtime, policy string, report eviction.Report) error {
	if err := rt.render.Eviction(policy, report); err != nil {
		return err
	}
	if len(report.Failures) > 0 {
		return zerr.With(zerr.Wrap(domain.ErrPartialFailure, "some cache units could not be removed"),
			"failed", len(report.Failures))
	}
	return nil
}
