package domain

import "time"

const day = 24 * time.Hour

// Entry is one cache unit: a file or directory that is added and removed as a whole.
type Entry struct {
	// Path is absolute and unique within a scan.
	Path string `json:"path"`
	// Type is the stack that produced the unit.
	Type CacheType `json:"type"`
	// SizeBytes is the recursive size for directories.
	SizeBytes int64 `json:"size_bytes"`
	// GameID is the per-game key (a Steam AppID for Fossilize). Empty when unresolved.
	GameID string `json:"game_id,omitempty"`
	// GameName is the human-readable title. Empty when unresolved.
	GameName string `json:"game_name,omitempty"`
	// EntryCount is the number of records in the unit, zero when it cannot be derived.
	EntryCount int64 `json:"entry_count"`
	// IsDirectory reports the unit's shape on disk.
	IsDirectory bool `json:"is_directory"`
	// LastModified is the newest modification time found inside the unit.
	LastModified time.Time `json:"last_modified"`
}

// AgeDays returns the number of whole days between LastModified and now.
// Entries stamped in the future have age zero.
func (e Entry) AgeDays(now time.Time) int {
	age := now.Sub(e.LastModified)
	if age <= 0 {
		return 0
	}
	return int(age / day)
}

// HasGame reports whether the entry's game identity was resolved.
func (e Entry) HasGame() bool {
	return e.GameID != ""
}
