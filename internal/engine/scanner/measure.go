package scanner

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/nvshader/internal/core/domain"
	"go.trai.ch/nvshader/internal/engine/classifier"
	"go.trai.ch/zerr"
)

// measurement is the raw result of walking one unit.
type measurement struct {
	size    int64
	modTime time.Time
	tally   classifier.Tally
	// partial lists descendants that could not be read; the unit is kept.
	partial []error
}

type measureFunc func(ctx context.Context, c *classifier.Classifier, cand classifier.Candidate) (measurement, error)

// measure sums sizes, finds the newest modification time, and tallies
// files, immediate children and containers below a unit.
func measure(ctx context.Context, c *classifier.Classifier, cand classifier.Candidate) (measurement, error) {
	info, err := os.Stat(cand.Path)
	if err != nil {
		return measurement{}, zerr.With(zerr.Wrap(err, "failed to stat unit"), "path", cand.Path)
	}

	if !info.IsDir() {
		m := measurement{size: info.Size(), modTime: info.ModTime()}
		m.tally.Files = 1
		if c.IsContainer(cand.Type, info.Name()) {
			m.tally.Containers = 1
		}
		return m, nil
	}

	m := measurement{modTime: info.ModTime()}
	root := cand.Path

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			m.partial = append(m.partial, zerr.With(zerr.Wrap(walkErr, "failed to read cache entry"), "path", path))
			return nil
		}
		if path == root {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			m.partial = append(m.partial, zerr.With(zerr.Wrap(err, "failed to stat cache entry"), "path", path))
			return nil
		}

		if fi.ModTime().After(m.modTime) {
			m.modTime = fi.ModTime()
		}
		if fi.Mode().IsRegular() {
			m.size += fi.Size()
		}

		ignored := c.Ignored(cand.Type, d.Name())
		if filepath.Dir(path) == root && !ignored {
			m.tally.Children++
		}
		if fi.Mode().IsRegular() && !ignored {
			m.tally.Files++
			if c.IsContainer(cand.Type, d.Name()) {
				m.tally.Containers++
			}
		}
		return nil
	})
	if err != nil {
		return measurement{}, zerr.With(zerr.Wrap(err, "failed to walk unit"), "path", root)
	}

	return m, nil
}

// measureWithin runs fn under a per-unit timeout. A walk that does not return
// in time is abandoned and reported as domain.ErrUnitTimeout.
func measureWithin(
	ctx context.Context,
	timeout time.Duration,
	fn measureFunc,
	c *classifier.Classifier,
	cand classifier.Candidate,
) (measurement, error) {
	if timeout <= 0 {
		return fn(ctx, c, cand)
	}

	unitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		m   measurement
		err error
	}
	done := make(chan result, 1)
	go func() {
		m, err := fn(unitCtx, c, cand)
		done <- result{m, err}
	}()

	select {
	case r := <-done:
		if r.err != nil && unitCtx.Err() != nil && ctx.Err() == nil {
			return measurement{}, zerr.With(zerr.Wrap(domain.ErrUnitTimeout, "measuring unit"), "path", cand.Path)
		}
		return r.m, r.err
	case <-unitCtx.Done():
		if ctx.Err() != nil {
			return measurement{}, ctx.Err()
		}
		return measurement{}, zerr.With(zerr.Wrap(domain.ErrUnitTimeout, "measuring unit"), "path", cand.Path)
	}
}
