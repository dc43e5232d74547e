package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/nvshader/internal/core/ports"
)

// NodeID is the graft node providing the config loader.
const NodeID graft.ID = "adapter.config_loader"

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{},
		Run: func(_ context.Context) (ports.ConfigLoader, error) {
			return NewLoader(), nil
		},
	})
}
