// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/gitres/internal/adapters/cache"
	_ "go.trai.ch/gitres/internal/adapters/config"
	_ "go.trai.ch/gitres/internal/adapters/github"
	_ "go.trai.ch/gitres/internal/adapters/logger"
	_ "go.trai.ch/gitres/internal/adapters/telemetry"
	// Register app nodes.
	_ "go.trai.ch/gitres/internal/app"
)
