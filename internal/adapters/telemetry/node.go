package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/nvshader/internal/adapters/logger"
	"go.trai.ch/nvshader/internal/core/ports"
)

// TracerNodeID is the unique identifier for the telemetry adapter graft node.
const TracerNodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Tracer, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewOTelTracer(NewLogBridge(log)), nil
		},
	})
}
