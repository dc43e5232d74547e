package domain

// Stats summarizes the registry. It is always derived, never stored.
type Stats struct {
	TotalSizeBytes int64                `json:"total_size_bytes"`
	FileCount      int                  `json:"file_count"`
	GameCount      int                  `json:"game_count"`
	TypeSizes      [NumCacheTypes]int64 `json:"type_sizes"`
	TypeCounts     [NumCacheTypes]int   `json:"type_counts"`
	// OldestDays is the largest age in the set, zero when empty.
	OldestDays int `json:"oldest_days"`
	// NewestDays is the smallest age in the set, zero when empty.
	NewestDays int `json:"newest_days"`
}

// SizeOf returns the subtotal for one cache type.
func (s Stats) SizeOf(t CacheType) int64 {
	if !t.Valid() {
		return 0
	}
	return s.TypeSizes[t]
}

// CountOf returns the unit count for one cache type.
func (s Stats) CountOf(t CacheType) int {
	if !t.Valid() {
		return 0
	}
	return s.TypeCounts[t]
}
