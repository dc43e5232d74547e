// Package scanner discovers and measures cache units under the configured roots.
package scanner

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"

	"go.trai.ch/nvshader/internal/core/domain"
	"go.trai.ch/nvshader/internal/core/ports"
	"go.trai.ch/nvshader/internal/engine/classifier"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Options tunes a scan.
type Options struct {
	// Workers bounds concurrent unit measurements. Zero selects the CPU count.
	Workers int
	// UnitTimeout bounds the walk of a single unit. Zero disables the bound.
	UnitTimeout time.Duration
}

// Report is the accumulated outcome of a scan.
type Report struct {
	// Entries are sorted by path.
	Entries []domain.Entry
	// Errors are non-fatal per-root and per-unit failures.
	Errors []error
	// RootsScanned counts roots that existed and could be listed.
	RootsScanned int
	// RootsMissing counts configured roots that do not exist.
	RootsMissing int
}

// Scanner walks cache roots and produces measured entries.
type Scanner struct {
	classifier *classifier.Classifier
	games      ports.GameNameLookup
	opts       Options
	measure    measureFunc
}

// New creates a Scanner. games may be nil, in which case names stay unresolved.
func New(c *classifier.Classifier, games ports.GameNameLookup, opts Options) *Scanner {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	return &Scanner{
		classifier: c,
		games:      games,
		opts:       opts,
		measure:    measure,
	}
}

type root struct {
	typ  domain.CacheType
	path string
}

// Scan enumerates every root, classifies its children and measures each unit.
// Absent roots contribute nothing. It fails with domain.ErrScanFailed only
// when no roots are configured or none of the existing roots can be read.
func (s *Scanner) Scan(ctx context.Context, roots map[domain.CacheType][]string) (Report, error) {
	var report Report

	resolved, configured, errs := s.resolveRoots(roots, &report)
	report.Errors = append(report.Errors, errs...)
	if configured == 0 {
		return report, zerr.Wrap(domain.ErrScanFailed, "no cache roots configured")
	}

	var candidates []classifier.Candidate
	unreadable := 0
	for _, r := range resolved {
		if s.classifier.Aggregate(r.typ) {
			candidates = append(candidates, s.classifier.RootUnit(r.typ, r.path))
			report.RootsScanned++
			continue
		}

		children, err := os.ReadDir(r.path)
		if err != nil {
			unreadable++
			report.Errors = append(report.Errors,
				zerr.With(zerr.Wrap(err, "failed to list cache root"), "root", r.path))
			continue
		}
		report.RootsScanned++

		for _, d := range children {
			path := filepath.Join(r.path, d.Name())
			if cand, ok := s.classifier.Classify(r.typ, path, d.Type()); ok {
				candidates = append(candidates, cand)
			}
		}
	}

	if report.RootsScanned == 0 && unreadable > 0 {
		return report, zerr.With(zerr.Wrap(domain.ErrScanFailed, "no cache root is readable"), "roots", unreadable)
	}

	entries, unitErrs, err := s.measureAll(ctx, candidates)
	if err != nil {
		return report, zerr.Wrap(err, "scan interrupted")
	}

	report.Entries = entries
	report.Errors = append(report.Errors, unitErrs...)
	slices.SortStableFunc(report.Errors, func(a, b error) int {
		return strings.Compare(a.Error(), b.Error())
	})

	return report, nil
}

// resolveRoots canonicalizes roots through symlinks and drops duplicates so
// every unit path is reported once.
func (s *Scanner) resolveRoots(roots map[domain.CacheType][]string, report *Report) ([]root, int, []error) {
	var (
		out        []root
		errs       []error
		configured int
		seen       = make(map[string]bool)
	)

	for _, t := range domain.AllCacheTypes() {
		for _, p := range roots[t] {
			if p == "" {
				continue
			}
			configured++

			abs, err := filepath.Abs(p)
			if err != nil {
				errs = append(errs, zerr.With(zerr.Wrap(err, "failed to resolve cache root"), "root", p))
				continue
			}
			canonical, err := filepath.EvalSymlinks(abs)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					report.RootsMissing++
					continue
				}
				// Keep the root so listing reports the failure against it.
				canonical = abs
			}

			if seen[canonical] {
				continue
			}
			seen[canonical] = true
			out = append(out, root{typ: t, path: canonical})
		}
	}

	return out, configured, errs
}

func (s *Scanner) measureAll(ctx context.Context, candidates []classifier.Candidate) ([]domain.Entry, []error, error) {
	results := make([]*domain.Entry, len(candidates))

	var (
		mu   sync.Mutex
		errs []error
	)
	addErr := func(e ...error) {
		mu.Lock()
		defer mu.Unlock()
		errs = append(errs, e...)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)

	for i, cand := range candidates {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, err := measureWithin(gctx, s.opts.UnitTimeout, s.measure, s.classifier, cand)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				addErr(err)
				return nil
			}
			if len(m.partial) > 0 {
				addErr(m.partial...)
			}

			entry := domain.Entry{
				Path:         cand.Path,
				Type:         cand.Type,
				SizeBytes:    m.size,
				GameID:       cand.GameID,
				GameName:     cand.GameName,
				EntryCount:   s.classifier.EntryCount(cand, m.size, m.tally),
				IsDirectory:  cand.IsDirectory,
				LastModified: m.modTime,
			}
			if entry.GameID != "" && entry.GameName == "" && s.games != nil {
				if name, ok := s.games.Lookup(gctx, entry.GameID); ok {
					entry.GameName = name
				}
			}

			results[i] = &entry
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	entries := make([]domain.Entry, 0, len(results))
	for _, e := range results {
		if e != nil {
			entries = append(entries, *e)
		}
	}
	slices.SortFunc(entries, func(a, b domain.Entry) int {
		return strings.Compare(a.Path, b.Path)
	})

	return entries, errs, nil
}
