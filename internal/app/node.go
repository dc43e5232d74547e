package app

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/jmgilman/go/exec"
	"go.trai.ch/nvshader/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/nvshader/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/nvshader/internal/adapters/gpu"       //nolint:depguard // Wired in app layer
	"go.trai.ch/nvshader/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/nvshader/internal/adapters/paths"     //nolint:depguard // Wired in app layer
	"go.trai.ch/nvshader/internal/adapters/shell"     //nolint:depguard // Wired in app layer
	"go.trai.ch/nvshader/internal/adapters/steam"     //nolint:depguard // Wired in app layer
	"go.trai.ch/nvshader/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/nvshader/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/nvshader/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components is what the command line needs from the dependency graph.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
			paths.NodeID,
			steam.NodeID,
			gpu.NodeID,
			fs.RemoverNodeID,
			shell.NodeID,
			watcher.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	var (
		a   Adapters
		err error
	)
	if a.Loader, err = graft.Dep[ports.ConfigLoader](ctx); err != nil {
		return nil, err
	}
	if a.Logger, err = graft.Dep[ports.Logger](ctx); err != nil {
		return nil, err
	}
	if a.Tracer, err = graft.Dep[ports.Tracer](ctx); err != nil {
		return nil, err
	}
	if a.Resolver, err = graft.Dep[*paths.Resolver](ctx); err != nil {
		return nil, err
	}
	if a.Games, err = graft.Dep[ports.GameNameLookup](ctx); err != nil {
		return nil, err
	}
	if a.GPU, err = graft.Dep[ports.GPUProbe](ctx); err != nil {
		return nil, err
	}
	if a.Remover, err = graft.Dep[ports.Remover](ctx); err != nil {
		return nil, err
	}
	if a.Executor, err = graft.Dep[exec.Executor](ctx); err != nil {
		return nil, err
	}
	if a.Watcher, err = graft.Dep[ports.Watcher](ctx); err != nil {
		return nil, err
	}
	return New(a), nil
}
