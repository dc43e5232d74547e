// Package registry holds the in-memory inventory of cache units.
package registry

import (
	"encoding/binary"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/nvshader/internal/core/domain"
)

// Registry stores entries keyed by path. It is not safe for concurrent use;
// the owning session serializes access.
type Registry struct {
	entries map[string]domain.Entry
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{entries: make(map[string]domain.Entry)}
}

// Replace discards the current content and stores entries.
func (r *Registry) Replace(entries []domain.Entry) {
	r.entries = make(map[string]domain.Entry, len(entries))
	for _, e := range entries {
		r.entries[e.Path] = e
	}
}

// Remove deletes the entry under path and reports whether it existed.
func (r *Registry) Remove(path string) bool {
	if _, ok := r.entries[path]; !ok {
		return false
	}
	delete(r.entries, path)
	return true
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// All returns every entry sorted by path.
func (r *Registry) All() []domain.Entry {
	out := make([]domain.Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sortByPath(out)
	return out
}

// ByGameID returns every entry whose game id equals id, sorted by path.
func (r *Registry) ByGameID(id string) []domain.Entry {
	var out []domain.Entry
	for _, e := range r.entries {
		if e.GameID == id {
			out = append(out, e)
		}
	}
	sortByPath(out)
	return out
}

// ByType returns every entry of type t, sorted by path.
func (r *Registry) ByType(t domain.CacheType) []domain.Entry {
	var out []domain.Entry
	for _, e := range r.entries {
		if e.Type == t {
			out = append(out, e)
		}
	}
	sortByPath(out)
	return out
}

// TotalSize returns the summed size of every entry.
func (r *Registry) TotalSize() int64 {
	var total int64
	for _, e := range r.entries {
		total += e.SizeBytes
	}
	return total
}

// Fingerprint hashes the identity, size and age of every entry.
// Two registries with the same fingerprint describe the same disk state.
func (r *Registry) Fingerprint() uint64 {
	h := xxhash.New()
	var buf [8]byte
	for _, e := range r.All() {
		_, _ = h.WriteString(e.Path)
		_, _ = h.Write([]byte{0, byte(e.Type)})
		binary.LittleEndian.PutUint64(buf[:], uint64(e.SizeBytes))
		_, _ = h.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], uint64(e.LastModified.UnixNano()))
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}

func sortByPath(entries []domain.Entry) {
	slices.SortFunc(entries, func(a, b domain.Entry) int {
		return strings.Compare(a.Path, b.Path)
	})
}
