// Package session provides the handle through which callers drive a shader
// cache inventory: scan, query, evict, validate and prewarm.
//
// A Session owns its registry. Mutations (scan, eviction, prewarm) take the
// write lock; queries take the read lock and may run concurrently. Until the
// first successful Scan, and after Destroy, inventory operations fail with
// domain.ErrInvalidHandle.
package session

import (
	"context"
	"sync"
	"time"

	"go.trai.ch/nvshader/internal/core/domain"
	"go.trai.ch/nvshader/internal/core/ports"
	"go.trai.ch/nvshader/internal/engine/classifier"
	"go.trai.ch/nvshader/internal/engine/eviction"
	"go.trai.ch/nvshader/internal/engine/prewarm"
	"go.trai.ch/nvshader/internal/engine/registry"
	"go.trai.ch/nvshader/internal/engine/scanner"
	"go.trai.ch/nvshader/internal/engine/validator"
	"go.trai.ch/zerr"
)

// Deps are the collaborators a Session consumes.
type Deps struct {
	Resolver ports.PathResolver
	Games    ports.GameNameLookup
	Invoker  ports.ReplayInvoker
	GPU      ports.GPUProbe
	Remover  ports.Remover
}

// Option configures optional Session hooks.
type Option func(*Session)

// WithTracer records a span per operation.
func WithTracer(t ports.Tracer) Option {
	return func(s *Session) { s.tracer = t }
}

// WithMetrics publishes inventory and operation metrics.
func WithMetrics(m ports.MetricsRecorder) Option {
	return func(s *Session) { s.metrics = m }
}

// WithStore persists per-game prewarm history.
func WithStore(st ports.PrewarmStore) Option {
	return func(s *Session) { s.store = st }
}

// WithLogger reports non-fatal side-channel failures.
func WithLogger(l ports.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithClock overrides the time source for ages and history.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// Session is an independent cache inventory.
type Session struct {
	mu        sync.RWMutex
	destroyed bool
	scanned   bool

	settings   domain.Settings
	deps       Deps
	registry   *registry.Registry
	classifier *classifier.Classifier
	scanner    *scanner.Scanner
	evictor    *eviction.Engine
	validator  *validator.Validator
	prewarmer  *prewarm.Orchestrator

	scanErrors   []error
	lastEviction eviction.Report

	errMu   sync.Mutex
	lastErr string

	tracer  ports.Tracer
	metrics ports.MetricsRecorder
	store   ports.PrewarmStore
	logger  ports.Logger
	now     func() time.Time
}

// New creates a Session. It fails with domain.ErrInvalidParam when a layout
// rule in settings does not compile.
func New(settings domain.Settings, deps Deps, opts ...Option) (*Session, error) {
	c, err := classifier.New(settings.Layouts)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to build classifier")
	}

	s := &Session{
		settings:   settings,
		deps:       deps,
		registry:   registry.New(),
		classifier: c,
		tracer:     noopTracer{},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.scanner = scanner.New(c, deps.Games, scanner.Options{
		Workers:     settings.Scan.Workers,
		UnitTimeout: settings.Scan.UnitTimeout,
	})
	s.evictor = eviction.New(s.registry, deps.Remover, eviction.WithClock(s.now))
	s.validator = validator.New(c)
	s.prewarmer = prewarm.New(s.registry, deps.Invoker, settings.Prewarm.Timeout)

	return s, nil
}

// Destroy releases the registry. Further calls fail with
// domain.ErrInvalidHandle. Destroying twice is harmless.
func (s *Session) Destroy() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.destroyed = true
	s.registry.Replace(nil)
	s.scanErrors = nil
	s.lastEviction = eviction.Report{}
}

// LastError returns the message of the most recent failing call.
func (s *Session) LastError() string {
	if s == nil {
		return domain.ErrInvalidHandle.Error()
	}
	s.errMu.Lock()
	defer s.errMu.Unlock()
	return s.lastErr
}

// IsNVIDIAGPU reports whether the GPU probe found an NVIDIA device.
func (s *Session) IsNVIDIAGPU() bool {
	if s == nil || s.deps.GPU == nil {
		return false
	}
	return s.deps.GPU.IsNVIDIAPresent()
}

// Roots resolves the cache roots this session scans, after NVIDIA gating.
func (s *Session) Roots(ctx context.Context) (map[domain.CacheType][]string, error) {
	if err := s.rlockLive(); err != nil {
		return nil, err
	}
	defer s.mu.RUnlock()
	roots, err := s.roots(ctx)
	if err != nil {
		return nil, s.fail(err)
	}
	return roots, nil
}

func (s *Session) roots(ctx context.Context) (map[domain.CacheType][]string, error) {
	if s.deps.Resolver == nil {
		return nil, zerr.Wrap(domain.ErrScanFailed, "no path resolver configured")
	}
	roots, err := s.deps.Resolver.Roots(ctx)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrScanFailed, "failed to resolve cache roots"), "cause", err.Error())
	}
	if !s.scanNVIDIA() {
		delete(roots, domain.CacheNVIDIA)
	}
	return roots, nil
}

func (s *Session) scanNVIDIA() bool {
	switch s.settings.Scan.NVIDIA {
	case domain.NVIDIAAlways:
		return true
	case domain.NVIDIANever:
		return false
	default:
		return s.deps.GPU == nil || s.deps.GPU.IsNVIDIAPresent()
	}
}

// Scan rebuilds the registry from disk. Entries from a previous scan that are
// gone are dropped. Per-unit failures are kept in ScanErrors.
func (s *Session) Scan(ctx context.Context) (err error) {
	if err := s.lockLive(); err != nil {
		return err
	}
	defer s.mu.Unlock()

	ctx, span := s.tracer.Start(ctx, "session.scan")
	defer func() { s.endSpan(span, err) }()

	started := s.now()
	roots, err := s.roots(ctx)
	if err != nil {
		return s.fail(err)
	}

	report, err := s.scanner.Scan(ctx, roots)
	if err != nil {
		return s.fail(err)
	}

	s.registry.Replace(report.Entries)
	s.scanErrors = report.Errors
	s.scanned = true
	span.SetAttribute("entries", len(report.Entries))
	span.SetAttribute("errors", len(report.Errors))
	span.SetAttribute("roots_scanned", report.RootsScanned)

	if s.metrics != nil {
		s.metrics.ObserveScan(s.now().Sub(started), len(report.Errors))
		s.metrics.ObserveStats(s.registry.Stats(s.now()))
	}
	return nil
}

// Stats aggregates the current registry.
func (s *Session) Stats() (domain.Stats, error) {
	if err := s.rlock(); err != nil {
		return domain.Stats{}, err
	}
	defer s.mu.RUnlock()
	return s.registry.Stats(s.now()), nil
}

// EntryCount returns the number of registered units.
func (s *Session) EntryCount() (int, error) {
	if err := s.rlock(); err != nil {
		return 0, err
	}
	defer s.mu.RUnlock()
	return s.registry.Len(), nil
}

// Entries lists registered units sorted by path. With types given, only
// units of those types are returned.
func (s *Session) Entries(types ...domain.CacheType) ([]domain.Entry, error) {
	if err := s.rlock(); err != nil {
		return nil, err
	}
	defer s.mu.RUnlock()

	if len(types) == 0 {
		return s.registry.All(), nil
	}
	want := make(map[domain.CacheType]bool, len(types))
	for _, t := range types {
		want[t] = true
	}
	var out []domain.Entry
	for _, e := range s.registry.All() {
		if want[e.Type] {
			out = append(out, e)
		}
	}
	return out, nil
}

// ScanErrors returns the non-fatal errors of the last scan.
func (s *Session) ScanErrors() ([]error, error) {
	if err := s.rlock(); err != nil {
		return nil, err
	}
	defer s.mu.RUnlock()
	return append([]error(nil), s.scanErrors...), nil
}

// Fingerprint identifies the current registry content.
func (s *Session) Fingerprint() (uint64, error) {
	if err := s.rlock(); err != nil {
		return 0, err
	}
	defer s.mu.RUnlock()
	return s.registry.Fingerprint(), nil
}

// Validate returns the number of units that fail their structural check.
func (s *Session) Validate() (int, error) {
	report, err := s.ValidationReport()
	if err != nil {
		return 0, err
	}
	return report.InvalidCount(), nil
}

// ValidationReport checks every unit and lists the invalid ones with a reason.
// Nothing is removed.
func (s *Session) ValidationReport() (validator.Report, error) {
	if err := s.rlock(); err != nil {
		return validator.Report{}, err
	}
	defer s.mu.RUnlock()

	_, span := s.tracer.Start(context.Background(), "session.validate")
	defer span.End()

	report := s.validator.Validate(s.registry.All())
	span.SetAttribute("invalid", report.InvalidCount())
	return report, nil
}

// rlock takes the read lock on a scanned session. On success the caller must
// release it.
func (s *Session) rlock() error {
	if err := s.rlockLive(); err != nil {
		return err
	}
	if !s.scanned {
		s.mu.RUnlock()
		return s.fail(notScanned())
	}
	return nil
}

// rlockLive takes the read lock on a session that is not destroyed.
func (s *Session) rlockLive() error {
	if s == nil {
		return invalidHandle()
	}
	s.mu.RLock()
	if s.destroyed {
		s.mu.RUnlock()
		return s.fail(invalidHandle())
	}
	return nil
}

func (s *Session) fail(err error) error {
	s.errMu.Lock()
	defer s.errMu.Unlock()
	s.lastErr = err.Error()
	return err
}

func (s *Session) endSpan(span ports.Span, err error) {
	if err != nil {
		span.RecordError(err)
	}
	span.End()
}

func (s *Session) warn(msg string, err error) {
	if s.logger == nil {
		return
	}
	s.logger.Warn(msg + ": " + err.Error())
}

func invalidHandle() error {
	return zerr.Wrap(domain.ErrInvalidHandle, "session is destroyed or was never created")
}

func notScanned() error {
	return zerr.Wrap(domain.ErrInvalidHandle, "session was never scanned")
}
