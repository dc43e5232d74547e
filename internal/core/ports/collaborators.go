package ports

import (
	"context"

	"go.trai.ch/nvshader/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=collaborators.go -destination=mocks/mock_collaborators.go -package=mocks

// PathResolver supplies the root directories to scan for each cache type.
type PathResolver interface {
	// Roots returns absolute candidate roots per type. Roots need not exist.
	Roots(ctx context.Context) (map[domain.CacheType][]string, error)
}

// GameNameLookup maps a game id to a human-readable title.
type GameNameLookup interface {
	// Lookup reports the title for gameID. A miss is not an error.
	Lookup(ctx context.Context, gameID string) (string, bool)
}

// ReplayInvoker drives the external shader replay tool.
type ReplayInvoker interface {
	// Available reports whether the replay tool can be invoked at all.
	Available() bool
	// Invoke replays the cache unit at unitPath. A nil error means success.
	Invoke(ctx context.Context, unitPath string) error
}

// GPUProbe detects the installed GPU vendor.
type GPUProbe interface {
	// IsNVIDIAPresent reports whether an NVIDIA GPU and driver are present.
	IsNVIDIAPresent() bool
}

// Remover deletes whole cache units from disk.
type Remover interface {
	// Remove deletes path recursively. A path that is already gone is not an error.
	Remove(path string) error
}
