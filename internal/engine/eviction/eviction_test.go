package eviction_test

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/nvshader/internal/core/domain"
	"go.trai.ch/nvshader/internal/core/ports/mocks"
	"go.trai.ch/nvshader/internal/engine/eviction"
	"go.trai.ch/nvshader/internal/engine/registry"
	"go.uber.org/mock/gomock"
)

var now = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func daysAgo(d int) time.Time {
	return now.Add(-time.Duration(d) * 24 * time.Hour)
}

func clock() time.Time { return now }

func abcRegistry() *registry.Registry {
	r := registry.New()
	r.Replace([]domain.Entry{
		{Path: "/cache/A", Type: domain.CacheDXVK, SizeBytes: 100, LastModified: daysAgo(30)},
		{Path: "/cache/B", Type: domain.CacheDXVK, SizeBytes: 100, LastModified: daysAgo(10)},
		{Path: "/cache/C", Type: domain.CacheDXVK, SizeBytes: 100, LastModified: daysAgo(20)},
	})
	return r
}

func TestShrinkToSize_VictimOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	remover := mocks.NewMockRemover(ctrl)
	gomock.InOrder(
		remover.EXPECT().Remove("/cache/A").Return(nil),
		remover.EXPECT().Remove("/cache/C").Return(nil),
	)

	reg := abcRegistry()
	e := eviction.New(reg, remover, eviction.WithClock(clock))

	report, err := e.ShrinkToSize(150)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Count())
	assert.Equal(t, []string{"/cache/A", "/cache/C"}, report.Removed)
	assert.Equal(t, int64(200), report.FreedBytes)
	assert.Equal(t, int64(100), reg.TotalSize())

	assert.True(t, registered(reg, "/cache/B"))
}

func TestShrinkToSize_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	remover := mocks.NewMockRemover(ctrl)
	remover.EXPECT().Remove(gomock.Any()).Return(nil).Times(2)

	reg := abcRegistry()
	e := eviction.New(reg, remover, eviction.WithClock(clock))

	first, err := e.ShrinkToSize(150)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Count())

	second, err := e.ShrinkToSize(150)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Count())
	assert.LessOrEqual(t, reg.TotalSize(), int64(150))
}

func TestShrinkToSize_UnderLimitIsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	remover := mocks.NewMockRemover(ctrl)

	e := eviction.New(abcRegistry(), remover)
	report, err := e.ShrinkToSize(300)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Count())
}

func TestShrinkToSize_TieBreaksByPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	remover := mocks.NewMockRemover(ctrl)
	remover.EXPECT().Remove("/cache/a").Return(nil)

	reg := registry.New()
	reg.Replace([]domain.Entry{
		{Path: "/cache/b", SizeBytes: 10, LastModified: daysAgo(5)},
		{Path: "/cache/a", SizeBytes: 10, LastModified: daysAgo(5)},
	})

	report, err := eviction.New(reg, remover).ShrinkToSize(10)
	require.NoError(t, err)
	assert.Equal(t, []string{"/cache/a"}, report.Removed)
}

func TestShrinkToSize_ContinuesPastFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	remover := mocks.NewMockRemover(ctrl)
	gomock.InOrder(
		remover.EXPECT().Remove("/cache/A").Return(errors.New("permission denied")),
		remover.EXPECT().Remove("/cache/C").Return(nil),
		remover.EXPECT().Remove("/cache/B").Return(nil),
	)

	reg := abcRegistry()
	report, err := eviction.New(reg, remover).ShrinkToSize(150)
	require.NoError(t, err)
	assert.Equal(t, []string{"/cache/C", "/cache/B"}, report.Removed)
	require.Len(t, report.Failures, 1)
	assert.Error(t, report.Err())

	assert.True(t, registered(reg, "/cache/A"), "failed victim stays registered")
}

func TestShrinkToSize_NegativeLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	_, err := eviction.New(abcRegistry(), mocks.NewMockRemover(ctrl)).ShrinkToSize(-1)
	assert.ErrorIs(t, err, domain.ErrInvalidParam)
}

func TestCleanOlderThan(t *testing.T) {
	ctrl := gomock.NewController(t)
	remover := mocks.NewMockRemover(ctrl)
	remover.EXPECT().Remove("/cache/A").Return(nil)
	remover.EXPECT().Remove("/cache/C").Return(nil)

	reg := abcRegistry()
	e := eviction.New(reg, remover, eviction.WithClock(clock))

	report, err := e.CleanOlderThan(20)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"/cache/A", "/cache/C"}, report.Removed)
	assert.Equal(t, 1, reg.Len())

	again, err := e.CleanOlderThan(20)
	require.NoError(t, err)
	assert.Equal(t, 0, again.Count())
}

func TestCleanOlderThan_FixedNow(t *testing.T) {
	ctrl := gomock.NewController(t)
	remover := mocks.NewMockRemover(ctrl)

	calls := 0
	drifting := func() time.Time {
		calls++
		return now.Add(time.Duration(calls) * 10 * 24 * time.Hour)
	}

	// At the first reading A and C are at least 30 days old. B crosses the
	// threshold on the next reading and must not be chased.
	remover.EXPECT().Remove("/cache/A").Return(nil)
	remover.EXPECT().Remove("/cache/C").Return(nil)

	reg := abcRegistry()
	report, err := eviction.New(reg, remover, eviction.WithClock(drifting)).CleanOlderThan(30)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.ElementsMatch(t, []string{"/cache/A", "/cache/C"}, report.Removed)
}

func TestCleanOlderThan_FailureNotCounted(t *testing.T) {
	ctrl := gomock.NewController(t)
	remover := mocks.NewMockRemover(ctrl)
	remover.EXPECT().Remove(gomock.Any()).Return(domain.ErrRemoveFailed).Times(3)

	reg := abcRegistry()
	report, err := eviction.New(reg, remover, eviction.WithClock(clock)).CleanOlderThan(0)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Count())
	assert.Len(t, report.Failures, 3)
	assert.ErrorIs(t, report.Err(), domain.ErrRemoveFailed)
	assert.Equal(t, 3, reg.Len())
}

func TestApplyPolicy(t *testing.T) {
	ctrl := gomock.NewController(t)
	remover := mocks.NewMockRemover(ctrl)
	gomock.InOrder(
		remover.EXPECT().Remove("/cache/A").Return(nil),
		remover.EXPECT().Remove("/cache/C").Return(nil),
	)

	reg := abcRegistry()
	report, err := eviction.New(reg, remover, eviction.WithClock(clock)).ApplyPolicy(domain.RetentionSettings{
		MaxAgeDays:   25,
		MaxSizeBytes: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"/cache/A", "/cache/C"}, report.Removed)
	assert.Equal(t, int64(100), reg.TotalSize())
}

func TestApplyPolicy_Disabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	report, err := eviction.New(abcRegistry(), mocks.NewMockRemover(ctrl)).ApplyPolicy(domain.RetentionSettings{})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Count())
}

func registered(reg *registry.Registry, path string) bool {
	return slices.ContainsFunc(reg.All(), func(e domain.Entry) bool { return e.Path == path })
}
