// Package main implements the entry point for the TaskForge API server,
// a task tracking backend with JWT authentication, filtered task queries,
// and aggregate statistics.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/taskforge/taskforge-api/internal/config"
	"github.com/taskforge/taskforge-api/internal/platform/logger"
)

// main initializes configuration, logging, the database, and the service
// graph, then starts the HTTP server and blocks until shutdown.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}

	appLogger.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"seed_data", cfg.Server.SeedData)

	app, err := newApplication(cfg, appLogger)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.run(context.Background()); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	fmt.Println("Server stopped.")
}
