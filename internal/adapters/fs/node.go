package fs

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/nvshader/internal/core/ports"
)

// RemoverNodeID is the unique identifier for the remover Graft node.
const RemoverNodeID graft.ID = "adapter.fs.remover"

func init() {
	graft.Register(graft.Node[ports.Remover]{
		ID:        RemoverNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Remover, error) {
			home, _ := os.UserHomeDir()
			return NewRemover(home), nil
		},
	})
}
