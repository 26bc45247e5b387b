// ABOUTME: Entry point for the wavecast player
// ABOUTME: Loads configuration, sets up logging and runs the player
package main

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Resonate-Protocol/wavecast/internal/app"
	"github.com/Resonate-Protocol/wavecast/internal/config"
	"github.com/Resonate-Protocol/wavecast/internal/version"
)

func main() {
	cfg, err := config.Load(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, config.ErrHelp) {
			return
		}
		log.Fatalf("Configuration error: %v", err)
	}

	// Set up logging
	f, err := os.OpenFile(cfg.LogFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = f.Close() }()

	if cfg.NoTUI {
		// Streaming logs mode: log to both stdout and file
		log.SetOutput(io.MultiWriter(os.Stdout, f))
	} else {
		// TUI mode: log only to file
		log.SetOutput(f)
	}

	log.Printf("Starting %s (backend: %s, %dHz)", version.String(), cfg.Backend, cfg.SampleRate)
	if cfg.ConfigFile != "" {
		log.Printf("Using config file %s", cfg.ConfigFile)
	}
	if cfg.NoTUI && cfg.File == "" && cfg.Remote.Addr == "" && !cfg.StartupTone {
		log.Printf("Nothing to play: pass a file, -startup-tone or -remote-addr")
		return
	}

	player, err := app.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create player: %v", err)
	}

	// Handle shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := player.Run(ctx); err != nil {
		log.Fatalf("Player error: %v", err)
	}
}
