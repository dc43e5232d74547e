package app

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.trai.ch/nvshader/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/nvshader/internal/core/domain"
	"go.trai.ch/nvshader/internal/engine/eviction"
	"go.trai.ch/zerr"
)

// WatchOptions tunes watch mode.
type WatchOptions struct {
	// Window is the quiet period before a burst of changes triggers a rescan.
	// Zero selects watcher.DefaultDebounceWindow.
	Window time.Duration
}

// Watch keeps the inventory current until ctx is canceled. Every settled
// burst of file system changes triggers a rescan; when the inventory changed
// the retention policy is applied and the metrics textfile is rewritten.
func (a *App) Watch(ctx context.Context, opts Options, w WatchOptions) error {
	if a.Watcher == nil {
		return zerr.Wrap(domain.ErrWatcherFailed, "no watcher configured")
	}
	if w.Window <= 0 {
		w.Window = watcher.DefaultDebounceWindow
	}

	rt, err := a.scanned(ctx, opts)
	if err != nil {
		return err
	}
	defer a.close(rt)

	roots, err := rt.session.Roots(ctx)
	if err != nil {
		return err
	}
	dirs := flattenRoots(roots)

	if err := a.Watcher.Start(ctx, dirs); err != nil {
		return err
	}
	defer func() { _ = a.Watcher.Stop() }()

	triggers := make(chan struct{}, 1)
	debouncer := watcher.NewDebouncer(w.Window, func(paths []string) {
		a.Logger.Debug(fmt.Sprintf("%d paths changed", len(paths)))
		select {
		case triggers <- struct{}{}:
		default:
		}
	})
	defer debouncer.Stop()

	go func() {
		for ev := range a.Watcher.Events() {
			debouncer.Add(ev.Path)
		}
	}()

	last, err := a.enforce(rt)
	if err != nil {
		return err
	}
	rt.render.Watching(len(dirs))

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-triggers:
			if err := a.scan(ctx, rt); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				a.Logger.Error(err)
				continue
			}
			fp, err := rt.session.Fingerprint()
			if err != nil {
				return err
			}
			if fp == last {
				a.Logger.Debug("cache inventory unchanged")
				continue
			}
			if last, err = a.enforce(rt); err != nil {
				return err
			}
		}
	}
}

// enforce applies the retention policy to a freshly scanned session, prints
// the result and writes the metrics. It returns the resulting fingerprint.
func (a *App) enforce(rt *runtime) (uint64, error) {
	if p := rt.settings.Retention; p.MaxAgeDays > 0 || p.MaxSizeBytes > 0 {
		report, err := rt.session.ApplyPolicy(nil)
		if err != nil {
			return 0, err
		}
		if report.Count() > 0 || len(report.Failures) > 0 {
			if err := rt.render.Eviction(eviction.PolicyRetention, report); err != nil {
				return 0, err
			}
		}
	}

	stats, err := rt.session.Stats()
	if err != nil {
		return 0, err
	}
	if err := rt.render.Stats(stats); err != nil {
		return 0, err
	}
	if err := rt.metrics.Flush(); err != nil {
		a.Logger.Warn(err.Error())
	}
	return rt.session.Fingerprint()
}

func flattenRoots(roots map[domain.CacheType][]string) []string {
	var out []string
	for _, t := range domain.AllCacheTypes() {
		out = append(out, roots[t]...)
	}
	slices.Sort(out)
	return slices.Compact(out)
}
