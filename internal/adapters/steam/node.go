package steam

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/nvshader/internal/core/domain"
	"go.trai.ch/nvshader/internal/core/ports"
)

// NodeID is the unique identifier for the game name lookup Graft node.
const NodeID graft.ID = "adapter.steam"

func init() {
	graft.Register(graft.Node[ports.GameNameLookup]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.GameNameLookup, error) {
			return NewLookup(func() []string {
				home, err := os.UserHomeDir()
				if err != nil {
					return nil
				}
				return Libraries(domain.SteamLibraryRoots(home))
			}, DefaultCacheSize)
		},
	})
}
