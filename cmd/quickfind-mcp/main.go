package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/nkvale/quickfind/internal/config"
	"github.com/nkvale/quickfind/internal/core"
	"github.com/nkvale/quickfind/internal/mcpsurface"
	"github.com/nkvale/quickfind/internal/statedb"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("quickfind-mcp\n")
		fmt.Printf("Version: %s\n", version)
		fmt.Printf("Build Time: %s\n", buildTime)
		fmt.Printf("Build Mode: %s\n", statedb.BuildMode)
		fmt.Printf("SQLite Driver: %s\n", statedb.DriverName)
		os.Exit(0)
	}

	log.SetOutput(os.Stderr)
	log.Printf("quickfind-mcp v%s starting...", version)
	log.Printf("Build Mode: %s, Driver: %s", statedb.BuildMode, statedb.DriverName)

	configPath := os.Getenv("QUICKFIND_CONFIG")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.IndexDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to get home directory: %v", err)
		}
		cfg.IndexDir = home + "/.quickfind/index.bleve"
		cfg.StateDBPath = home + "/.quickfind/state.db"
		cfg.PrefsPath = home + "/.quickfind/prefs.json"
	}

	engine, err := core.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open index: %v", err)
	}
	defer func() { _ = engine.Close() }()

	mcpServer, err := mcpsurface.NewServer(engine)
	if err != nil {
		log.Fatalf("Failed to create MCP server: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		log.Println("MCP server ready, listening on stdio...")
		errChan <- mcpServer.Serve(ctx)
	}()

	select {
	case sig := <-sigChan:
		log.Printf("Received signal %v, shutting down gracefully...", sig)
		cancel()
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}

	log.Println("Server stopped")
}
