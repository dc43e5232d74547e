package registry

import (
	"time"

	"go.trai.ch/nvshader/internal/core/domain"
)

// Aggregate derives statistics from entries in a single pass.
// Ages are whole days before now. Empty input yields zero values.
func Aggregate(entries []domain.Entry, now time.Time) domain.Stats {
	var s domain.Stats
	games := make(map[string]struct{})

	for i, e := range entries {
		s.TotalSizeBytes += e.SizeBytes
		s.FileCount++
		if e.Type.Valid() {
			s.TypeSizes[e.Type] += e.SizeBytes
			s.TypeCounts[e.Type]++
		}
		if e.HasGame() {
			games[e.GameID] = struct{}{}
		}

		age := e.AgeDays(now)
		if i == 0 || age > s.OldestDays {
			s.OldestDays = age
		}
		if i == 0 || age < s.NewestDays {
			s.NewestDays = age
		}
	}

	s.GameCount = len(games)
	return s
}

// Stats aggregates the current content of the registry.
func (r *Registry) Stats(now time.Time) domain.Stats {
	entries := make([]domain.Entry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	return Aggregate(entries, now)
}
