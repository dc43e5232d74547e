package gpu

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/nvshader/internal/core/ports"
)

// NodeID is the unique identifier for the GPU probe Graft node.
const NodeID graft.ID = "adapter.gpu"

func init() {
	graft.Register(graft.Node[ports.GPUProbe]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.GPUProbe, error) {
			return NewProbe(), nil
		},
	})
}
