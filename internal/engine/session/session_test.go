package session_test

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/nvshader/internal/core/domain"
	"go.trai.ch/nvshader/internal/core/ports/mocks"
	"go.trai.ch/nvshader/internal/engine/session"
	"go.uber.org/mock/gomock"
)

var now = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	base     string
	roots    map[domain.CacheType][]string
	resolver *mocks.MockPathResolver
	invoker  *mocks.MockReplayInvoker
	gpu      *mocks.MockGPUProbe
	remover  *mocks.MockRemover
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, data, 0o600))
}

// ageUnit sets the modification time of a unit and everything below it.
func ageUnit(t *testing.T, unit string, age time.Duration) {
	t.Helper()
	mtime := now.Add(-age)
	require.NoError(t, filepath.WalkDir(unit, func(p string, _ fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		return os.Chtimes(p, mtime, mtime)
	}))
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	base, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	day := 24 * time.Hour
	foz := append([]byte("\x81FOSSILIZEDB"), make([]byte, 88)...)

	dxvk := filepath.Join(base, "dxvk")
	writeFile(t, filepath.Join(dxvk, "Game.dxvk-cache"), append([]byte("DXVK"), make([]byte, 60)...))
	ageUnit(t, filepath.Join(dxvk, "Game.dxvk-cache"), 30*day)

	steam := filepath.Join(base, "shadercache")
	writeFile(t, filepath.Join(steam, "570", "fozpipelinesv6", "a.foz"), foz)
	writeFile(t, filepath.Join(steam, "730", "fozpipelinesv6", "a.foz"), foz)
	ageUnit(t, filepath.Join(steam, "570"), 10*day)
	ageUnit(t, filepath.Join(steam, "730"), 20*day)

	nv := filepath.Join(base, "nv")
	writeFile(t, filepath.Join(nv, "driver-1", "blob"), make([]byte, 50))
	ageUnit(t, filepath.Join(nv, "driver-1"), 5*day)

	f := &fixture{
		base: base,
		roots: map[domain.CacheType][]string{
			domain.CacheDXVK:      {dxvk},
			domain.CacheFossilize: {steam},
			domain.CacheNVIDIA:    {nv},
		},
		resolver: mocks.NewMockPathResolver(ctrl),
		invoker:  mocks.NewMockReplayInvoker(ctrl),
		gpu:      mocks.NewMockGPUProbe(ctrl),
		remover:  mocks.NewMockRemover(ctrl),
	}
	f.resolver.EXPECT().Roots(gomock.Any()).DoAndReturn(func(context.Context) (map[domain.CacheType][]string, error) {
		out := make(map[domain.CacheType][]string, len(f.roots))
		for k, v := range f.roots {
			out[k] = v
		}
		return out, nil
	}).AnyTimes()
	f.remover.EXPECT().Remove(gomock.Any()).DoAndReturn(os.RemoveAll).AnyTimes()
	return f
}

func (f *fixture) deps() session.Deps {
	return session.Deps{
		Resolver: f.resolver,
		Invoker:  f.invoker,
		GPU:      f.gpu,
		Remover:  f.remover,
	}
}

func newSession(t *testing.T, f *fixture, settings domain.Settings, opts ...session.Option) *session.Session {
	t.Helper()
	opts = append([]session.Option{session.WithClock(func() time.Time { return now })}, opts...)
	s, err := session.New(settings, f.deps(), opts...)
	require.NoError(t, err)
	t.Cleanup(s.Destroy)
	return s
}

func alwaysNVIDIA() domain.Settings {
	settings := domain.DefaultSettings()
	settings.Scan.NVIDIA = domain.NVIDIAAlways
	return settings
}

func TestSession_ScanAndQuery(t *testing.T) {
	f := newFixture(t)
	s := newSession(t, f, alwaysNVIDIA())

	require.NoError(t, s.Scan(context.Background()))

	count, err := s.EntryCount()
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	stats, err := s.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(64+100+100+50), stats.TotalSizeBytes)
	assert.Equal(t, 4, stats.FileCount)
	assert.Equal(t, 3, stats.GameCount)
	assert.Equal(t, 30, stats.OldestDays)
	assert.Equal(t, 5, stats.NewestDays)
	assert.Equal(t, int64(200), stats.SizeOf(domain.CacheFossilize))

	foz, err := s.Entries(domain.CacheFossilize)
	require.NoError(t, err)
	require.Len(t, foz, 2)
	assert.Equal(t, "570", foz[0].GameID)

	scanErrs, err := s.ScanErrors()
	require.NoError(t, err)
	assert.Empty(t, scanErrs)
}

func TestSession_ScanReplacesRegistry(t *testing.T) {
	f := newFixture(t)
	s := newSession(t, f, alwaysNVIDIA())
	require.NoError(t, s.Scan(context.Background()))
	before, err := s.Fingerprint()
	require.NoError(t, err)

	require.NoError(t, os.RemoveAll(filepath.Join(f.base, "shadercache", "730")))
	require.NoError(t, s.Scan(context.Background()))

	count, err := s.EntryCount()
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	after, err := s.Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, before, after)
}

func TestSession_NVIDIAGating(t *testing.T) {
	f := newFixture(t)
	f.gpu.EXPECT().IsNVIDIAPresent().Return(false).AnyTimes()

	s := newSession(t, f, domain.DefaultSettings())
	require.NoError(t, s.Scan(context.Background()))
	assert.False(t, s.IsNVIDIAGPU())

	nv, err := s.Entries(domain.CacheNVIDIA)
	require.NoError(t, err)
	assert.Empty(t, nv)

	roots, err := s.Roots(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, roots, domain.CacheNVIDIA)
}

func TestSession_ResolverFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver := mocks.NewMockPathResolver(ctrl)
	resolver.EXPECT().Roots(gomock.Any()).Return(nil, domain.ErrHomeNotFound)

	s, err := session.New(domain.DefaultSettings(), session.Deps{Resolver: resolver})
	require.NoError(t, err)

	err = s.Scan(context.Background())
	require.ErrorIs(t, err, domain.ErrScanFailed)
	assert.Equal(t, domain.CodeScanFailed, domain.CodeOf(err))
	assert.NotEmpty(t, s.LastError())
}

func TestSession_ScanSpan(t *testing.T) {
	f := newFixture(t)
	ctrl := gomock.NewController(t)
	tracer := mocks.NewMockTracer(ctrl)
	span := mocks.NewMockSpan(ctrl)

	tracer.EXPECT().Start(gomock.Any(), "session.scan").Return(context.Background(), span)
	span.EXPECT().SetAttribute("entries", 4)
	span.EXPECT().SetAttribute("errors", 0)
	span.EXPECT().SetAttribute("roots_scanned", gomock.Any())
	span.EXPECT().End()

	s := newSession(t, f, alwaysNVIDIA(), session.WithTracer(tracer))
	require.NoError(t, s.Scan(context.Background()))
}

func TestSession_ScanSpanRecordsError(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver := mocks.NewMockPathResolver(ctrl)
	resolver.EXPECT().Roots(gomock.Any()).Return(nil, domain.ErrHomeNotFound)
	tracer := mocks.NewMockTracer(ctrl)
	span := mocks.NewMockSpan(ctrl)

	tracer.EXPECT().Start(gomock.Any(), "session.scan").Return(context.Background(), span)
	span.EXPECT().RecordError(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, domain.ErrScanFailed)
	})
	span.EXPECT().End()

	s, err := session.New(domain.DefaultSettings(), session.Deps{Resolver: resolver}, session.WithTracer(tracer))
	require.NoError(t, err)
	require.Error(t, s.Scan(context.Background()))
}

func TestSession_InvalidLayout(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.Layouts = map[domain.CacheType]domain.LayoutRule{
		domain.CacheDXVK: {Match: "("},
	}
	_, err := session.New(settings, session.Deps{})
	assert.ErrorIs(t, err, domain.ErrInvalidParam)
}

func TestSession_Eviction(t *testing.T) {
	f := newFixture(t)
	s := newSession(t, f, alwaysNVIDIA())
	require.NoError(t, s.Scan(context.Background()))

	removed, err := s.CleanOlderThan(20)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.NoFileExists(t, filepath.Join(f.base, "dxvk", "Game.dxvk-cache"))
	assert.NoDirExists(t, filepath.Join(f.base, "shadercache", "730"))

	removed, err = s.CleanOlderThan(20)
	require.NoError(t, err)
	assert.Equal(t, 0, removed)

	removed, err = s.ShrinkToSize(60)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	stats, err := s.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(50), stats.TotalSizeBytes)

	last, err := s.LastEviction()
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(f.base, "shadercache", "570")}, last.Removed)
}

func TestSession_ApplyPolicy(t *testing.T) {
	f := newFixture(t)
	settings := alwaysNVIDIA()
	settings.Retention = domain.RetentionSettings{MaxAgeDays: 25}
	s := newSession(t, f, settings)
	require.NoError(t, s.Scan(context.Background()))

	report, err := s.ApplyPolicy(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Count())

	report, err = s.ApplyPolicy(&domain.RetentionSettings{MaxSizeBytes: 150})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Count())
}

func TestSession_EvictionFailureSetsLastError(t *testing.T) {
	f := newFixture(t)
	ctrl := gomock.NewController(t)
	failing := mocks.NewMockRemover(ctrl)
	failing.EXPECT().Remove(gomock.Any()).Return(domain.ErrRemoveFailed).AnyTimes()
	deps := f.deps()
	deps.Remover = failing

	s, err := session.New(alwaysNVIDIA(), deps, session.WithClock(func() time.Time { return now }))
	require.NoError(t, err)
	require.NoError(t, s.Scan(context.Background()))

	removed, err := s.CleanOlderThan(0)
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
	assert.Contains(t, s.LastError(), "could not be removed")
}

func TestSession_Validate(t *testing.T) {
	f := newFixture(t)
	s := newSession(t, f, alwaysNVIDIA())
	require.NoError(t, s.Scan(context.Background()))

	invalid, err := s.Validate()
	require.NoError(t, err)
	assert.Equal(t, 0, invalid)

	gone := filepath.Join(f.base, "shadercache", "570")
	require.NoError(t, os.RemoveAll(gone))

	report, err := s.ValidationReport()
	require.NoError(t, err)
	require.Equal(t, 1, report.InvalidCount())
	assert.Equal(t, gone, report.Findings[0].Path)

	count, err := s.EntryCount()
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestSession_PrewarmAll(t *testing.T) {
	f := newFixture(t)
	ctrl := gomock.NewController(t)
	store := mocks.NewMockPrewarmStore(ctrl)
	metrics := mocks.NewMockMetricsRecorder(ctrl)
	metrics.EXPECT().ObserveScan(gomock.Any(), 0)
	metrics.EXPECT().ObserveStats(gomock.Any())
	metrics.EXPECT().ObservePrewarm(domain.PrewarmResult{Completed: 1, Failed: 1, Total: 2})

	f.invoker.EXPECT().Available().Return(true)
	f.invoker.EXPECT().Invoke(gomock.Any(), filepath.Join(f.base, "shadercache", "570")).Return(nil)
	f.invoker.EXPECT().Invoke(gomock.Any(), filepath.Join(f.base, "shadercache", "730")).Return(errors.New("exit status 1"))

	store.EXPECT().Put(domain.PrewarmRecord{
		GameID:  "570",
		LastRun: now,
		Result:  domain.PrewarmResult{Completed: 1, Total: 1},
	}).Return(nil)
	store.EXPECT().Put(domain.PrewarmRecord{
		GameID:  "730",
		LastRun: now,
		Result:  domain.PrewarmResult{Failed: 1, Total: 1},
	}).Return(nil)

	s := newSession(t, f, alwaysNVIDIA(), session.WithStore(store), session.WithMetrics(metrics))
	require.NoError(t, s.Scan(context.Background()))

	result, err := s.PrewarmAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.PrewarmResult{Completed: 1, Failed: 1, Total: 2}, result)
	assert.Contains(t, s.LastError(), "failed to replay")
}

func TestSession_PrewarmGameNotFound(t *testing.T) {
	f := newFixture(t)
	f.invoker.EXPECT().Available().Return(true)

	s := newSession(t, f, alwaysNVIDIA())
	require.NoError(t, s.Scan(context.Background()))

	result, err := s.PrewarmGame(context.Background(), "nonexistent")
	require.ErrorIs(t, err, domain.ErrGameNotFound)
	assert.Equal(t, domain.CodeGameNotFound, domain.CodeOf(err))
	assert.Equal(t, domain.PrewarmResult{}, result)
	assert.NotEmpty(t, s.LastError())

	count, err := s.EntryCount()
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestSession_History(t *testing.T) {
	f := newFixture(t)
	ctrl := gomock.NewController(t)
	store := mocks.NewMockPrewarmStore(ctrl)
	records := []domain.PrewarmRecord{{GameID: "570", LastRun: now}}
	store.EXPECT().List().Return(records, nil)

	s := newSession(t, f, alwaysNVIDIA(), session.WithStore(store))
	got, err := s.History()
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestSession_Destroyed(t *testing.T) {
	f := newFixture(t)
	s, err := session.New(alwaysNVIDIA(), f.deps())
	require.NoError(t, err)
	require.NoError(t, s.Scan(context.Background()))
	s.Destroy()
	s.Destroy()

	assertInvalidHandle(t, s)
	assertLiveCallsFail(t, s)
	assert.False(t, s.PrewarmAvailable())
	assert.Contains(t, s.LastError(), domain.ErrInvalidHandle.Error())
}

func TestSession_Nil(t *testing.T) {
	var s *session.Session
	assertInvalidHandle(t, s)
	assertLiveCallsFail(t, s)
	assert.False(t, s.PrewarmAvailable())
	assert.False(t, s.IsNVIDIAGPU())
	assert.NotEmpty(t, s.LastError())
	s.Destroy()
}

func TestSession_Unscanned(t *testing.T) {
	f := newFixture(t)
	f.invoker.EXPECT().Available().Return(true)
	s := newSession(t, f, alwaysNVIDIA())

	assertInvalidHandle(t, s)
	assert.Contains(t, s.LastError(), "never scanned")

	roots, err := s.Roots(context.Background())
	require.NoError(t, err)
	assert.Contains(t, roots, domain.CacheDXVK)
	assert.True(t, s.PrewarmAvailable())
	_, err = s.History()
	require.NoError(t, err)

	require.NoError(t, s.Scan(context.Background()))
	count, err := s.EntryCount()
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestSession_FailedFirstScanStaysUnscanned(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver := mocks.NewMockPathResolver(ctrl)
	resolver.EXPECT().Roots(gomock.Any()).Return(nil, domain.ErrHomeNotFound)

	s, err := session.New(domain.DefaultSettings(), session.Deps{Resolver: resolver})
	require.NoError(t, err)
	require.ErrorIs(t, s.Scan(context.Background()), domain.ErrScanFailed)

	_, err = s.Stats()
	require.ErrorIs(t, err, domain.ErrInvalidHandle)
	assert.Equal(t, domain.CodeInvalidHandle, domain.CodeOf(err))
}

// assertInvalidHandle checks every call that needs a scanned, live session.
func assertInvalidHandle(t *testing.T, s *session.Session) {
	t.Helper()
	ctx := context.Background()

	checks := map[string]error{}
	_, checks["Stats"] = s.Stats()
	_, checks["EntryCount"] = s.EntryCount()
	_, checks["Entries"] = s.Entries()
	_, checks["ScanErrors"] = s.ScanErrors()
	_, checks["Fingerprint"] = s.Fingerprint()
	_, checks["Validate"] = s.Validate()
	_, checks["ValidationReport"] = s.ValidationReport()
	_, checks["CleanOlderThan"] = s.CleanOlderThan(1)
	_, checks["ShrinkToSize"] = s.ShrinkToSize(1)
	_, checks["ApplyPolicy"] = s.ApplyPolicy(nil)
	_, checks["LastEviction"] = s.LastEviction()
	_, checks["PrewarmGame"] = s.PrewarmGame(ctx, "570")
	_, checks["PrewarmAll"] = s.PrewarmAll(ctx)

	for name, err := range checks {
		assert.ErrorIs(t, err, domain.ErrInvalidHandle, name)
		assert.Equal(t, domain.CodeInvalidHandle, domain.CodeOf(err), name)
	}
}

// assertLiveCallsFail checks the calls that only need a live session.
func assertLiveCallsFail(t *testing.T, s *session.Session) {
	t.Helper()
	ctx := context.Background()

	checks := map[string]error{}
	checks["Scan"] = s.Scan(ctx)
	_, checks["Roots"] = s.Roots(ctx)
	_, checks["History"] = s.History()

	for name, err := range checks {
		assert.ErrorIs(t, err, domain.ErrInvalidHandle, name)
	}
}
