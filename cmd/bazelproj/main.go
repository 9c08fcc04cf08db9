package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/dvolkhin/bazelproj/internal/config"
	"github.com/dvolkhin/bazelproj/internal/render"
	"github.com/dvolkhin/bazelproj/internal/server"
	"github.com/dvolkhin/bazelproj/internal/workspace"
)

func main() {
	// Ensure log output goes to stderr, never stdout (MCP uses stdout for JSON-RPC)
	log.SetOutput(os.Stderr)

	ctx := context.Background()

	// Check for --scan flag
	scanMode := false
	cfgPath := "bazelproj.yaml"
	for _, arg := range os.Args[1:] {
		if arg == "--scan" {
			scanMode = true
		} else {
			cfgPath = arg
		}
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		// If config file doesn't exist, use defaults
		fmt.Fprintf(os.Stderr, "warning: %v, using defaults\n", err)
		cfg = config.Default()
	}

	eng := workspace.New(cfg)
	defer eng.Close()

	// One-shot scan mode
	if scanMode {
		snap, err := eng.Scan(ctx, cfg.Workspace)
		if err != nil {
			log.Fatalf("scan failed: %v", err)
		}

		summary := render.Summary(snap)
		outDir := filepath.Join(snap.Meta.Workspace, cfg.Output.Dir)
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			log.Fatalf("creating output dir: %v", err)
		}
		outPath := filepath.Join(outDir, "workspace.md")
		if err := os.WriteFile(outPath, []byte(summary), 0o644); err != nil {
			log.Fatalf("writing summary: %v", err)
		}
		log.Printf("wrote %s (%d bytes)", outPath, len(summary))

		fmt.Println(summary)
		return
	}

	// MCP server mode
	srv, err := server.New(eng, cfg)
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}
	if err := srv.Run(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
