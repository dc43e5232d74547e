// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/nvshader/internal/adapters/config"
	_ "go.trai.ch/nvshader/internal/adapters/fs"
	_ "go.trai.ch/nvshader/internal/adapters/gpu"
	_ "go.trai.ch/nvshader/internal/adapters/logger"
	_ "go.trai.ch/nvshader/internal/adapters/paths"
	_ "go.trai.ch/nvshader/internal/adapters/shell"
	_ "go.trai.ch/nvshader/internal/adapters/steam"
	_ "go.trai.ch/nvshader/internal/adapters/telemetry"
	_ "go.trai.ch/nvshader/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/nvshader/internal/app"
)
