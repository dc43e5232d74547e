package registry_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/nvshader/internal/core/domain"
	"go.trai.ch/nvshader/internal/engine/registry"
)

var now = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func daysAgo(d int) time.Time {
	return now.Add(-time.Duration(d) * 24 * time.Hour)
}

func fixture() []domain.Entry {
	return []domain.Entry{
		{Path: "/c/b", Type: domain.CacheFossilize, SizeBytes: 300, GameID: "570", LastModified: daysAgo(3)},
		{Path: "/c/a", Type: domain.CacheDXVK, SizeBytes: 100, GameID: "Game", LastModified: daysAgo(40)},
		{Path: "/c/d", Type: domain.CacheMesa, SizeBytes: 50, LastModified: daysAgo(1)},
		{Path: "/c/c", Type: domain.CacheFossilize, SizeBytes: 25, GameID: "570", LastModified: daysAgo(10)},
	}
}

func TestRegistry_ReplaceAndQuery(t *testing.T) {
	r := registry.New()
	r.Replace(fixture())

	assert.Equal(t, 4, r.Len())
	assert.Equal(t, int64(475), r.TotalSize())

	all := r.All()
	require.Len(t, all, 4)
	assert.Equal(t, []string{"/c/a", "/c/b", "/c/c", "/c/d"}, paths(all))

	games := r.ByGameID("570")
	assert.Equal(t, []string{"/c/b", "/c/c"}, paths(games))
	assert.Empty(t, r.ByGameID("nope"))

	assert.Equal(t, []string{"/c/d"}, paths(r.ByType(domain.CacheMesa)))

	assert.Equal(t, domain.CacheDXVK, all[0].Type)

	r.Replace(fixture()[:1])
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, []string{"/c/b"}, paths(r.All()))
}

func TestRegistry_Remove(t *testing.T) {
	r := registry.New()
	r.Replace(fixture())

	assert.True(t, r.Remove("/c/a"))
	assert.False(t, r.Remove("/c/a"))
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, int64(375), r.TotalSize())
}

func TestRegistry_Fingerprint(t *testing.T) {
	a := registry.New()
	a.Replace(fixture())
	b := registry.New()
	entries := fixture()
	b.Replace([]domain.Entry{entries[3], entries[2], entries[1], entries[0]})

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	entries[0].SizeBytes++
	b.Replace(entries)
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestAggregate(t *testing.T) {
	s := registry.Aggregate(fixture(), now)

	assert.Equal(t, int64(475), s.TotalSizeBytes)
	assert.Equal(t, 4, s.FileCount)
	assert.Equal(t, 2, s.GameCount)
	assert.Equal(t, int64(100), s.SizeOf(domain.CacheDXVK))
	assert.Equal(t, int64(325), s.SizeOf(domain.CacheFossilize))
	assert.Equal(t, int64(50), s.SizeOf(domain.CacheMesa))
	assert.Equal(t, int64(0), s.SizeOf(domain.CacheNVIDIA))
	assert.Equal(t, 2, s.CountOf(domain.CacheFossilize))
	assert.Equal(t, 40, s.OldestDays)
	assert.Equal(t, 1, s.NewestDays)

	var sum int64
	for _, ct := range domain.AllCacheTypes() {
		sum += s.SizeOf(ct)
	}
	assert.Equal(t, s.TotalSizeBytes, sum)
	assert.LessOrEqual(t, s.GameCount, s.FileCount)
}

func TestAggregate_Empty(t *testing.T) {
	assert.Equal(t, domain.Stats{}, registry.Aggregate(nil, now))
}

func TestRegistry_Stats(t *testing.T) {
	r := registry.New()
	r.Replace(fixture())
	assert.Equal(t, registry.Aggregate(fixture(), now), r.Stats(now))
}

func paths(entries []domain.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Path)
	}
	return out
}
