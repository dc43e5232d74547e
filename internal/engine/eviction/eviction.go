// Package eviction removes cache units from disk and from the registry.
package eviction

import (
	"errors"
	"slices"
	"strings"
	"time"

	"go.trai.ch/nvshader/internal/core/domain"
	"go.trai.ch/nvshader/internal/core/ports"
	"go.trai.ch/nvshader/internal/engine/registry"
	"go.trai.ch/zerr"
)

// Policy names reported to metrics.
const (
	PolicyMaxAge    = "max_age"
	PolicyMaxSize   = "max_size"
	PolicyRetention = "retention"
)

// Report is the outcome of one eviction pass.
type Report struct {
	// Removed lists deleted unit paths in removal order.
	Removed []string
	// Failures holds one error per unit that could not be deleted.
	Failures []error
	// FreedBytes is the summed size of removed units.
	FreedBytes int64
}

// Count returns the number of removed units.
func (r Report) Count() int {
	return len(r.Removed)
}

// Err joins the per-unit failures, or returns nil when there were none.
func (r Report) Err() error {
	return errors.Join(r.Failures...)
}

func (r *Report) merge(o Report) {
	r.Removed = append(r.Removed, o.Removed...)
	r.Failures = append(r.Failures, o.Failures...)
	r.FreedBytes += o.FreedBytes
}

// Engine deletes registry entries. It is not safe for concurrent use.
type Engine struct {
	registry *registry.Registry
	remover  ports.Remover
	now      func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source used for age computation.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New creates an Engine operating on reg.
func New(reg *registry.Registry, remover ports.Remover, opts ...Option) *Engine {
	e := &Engine{
		registry: reg,
		remover:  remover,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CleanOlderThan removes every entry whose whole-day age is at least days.
// Victims are selected against a single timestamp before anything is removed.
func (e *Engine) CleanOlderThan(days int) (Report, error) {
	if days < 0 {
		return Report{}, zerr.With(zerr.Wrap(domain.ErrInvalidParam, "age threshold must not be negative"), "days", days)
	}

	now := e.now()
	var victims []domain.Entry
	for _, entry := range e.registry.All() {
		if entry.AgeDays(now) >= days {
			victims = append(victims, entry)
		}
	}

	var report Report
	for _, v := range victims {
		e.evict(v, &report)
	}
	return report, nil
}

// ShrinkToSize removes the oldest entries until the registry total is at most
// maxBytes. Entries are taken by modification time, then by path. A unit that
// fails to delete is skipped and the next one is tried.
func (e *Engine) ShrinkToSize(maxBytes int64) (Report, error) {
	if maxBytes < 0 {
		return Report{}, zerr.With(zerr.Wrap(domain.ErrInvalidParam, "size limit must not be negative"), "max_bytes", maxBytes)
	}

	var report Report
	total := e.registry.TotalSize()
	if total <= maxBytes {
		return report, nil
	}

	candidates := e.registry.All()
	slices.SortStableFunc(candidates, func(a, b domain.Entry) int {
		if c := a.LastModified.Compare(b.LastModified); c != 0 {
			return c
		}
		return strings.Compare(a.Path, b.Path)
	})

	for _, c := range candidates {
		if total <= maxBytes {
			break
		}
		if e.evict(c, &report) {
			total -= c.SizeBytes
		}
	}
	return report, nil
}

// ApplyPolicy enforces a retention policy: the age limit first, then the size
// limit. Zero limits are disabled.
func (e *Engine) ApplyPolicy(p domain.RetentionSettings) (Report, error) {
	var report Report
	if p.MaxAgeDays > 0 {
		r, err := e.CleanOlderThan(p.MaxAgeDays)
		if err != nil {
			return report, err
		}
		report.merge(r)
	}
	if p.MaxSizeBytes > 0 {
		r, err := e.ShrinkToSize(p.MaxSizeBytes)
		if err != nil {
			return report, err
		}
		report.merge(r)
	}
	return report, nil
}

func (e *Engine) evict(entry domain.Entry, report *Report) bool {
	if err := e.remover.Remove(entry.Path); err != nil {
		report.Failures = append(report.Failures,
			zerr.With(zerr.Wrap(err, "failed to evict cache unit"), "path", entry.Path))
		return false
	}
	e.registry.Remove(entry.Path)
	report.Removed = append(report.Removed, entry.Path)
	report.FreedBytes += entry.SizeBytes
	return true
}
