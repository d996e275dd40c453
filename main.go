package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/thenoetrevino/tavla/internal/app"
	"github.com/thenoetrevino/tavla/internal/cache"
	"github.com/thenoetrevino/tavla/internal/config"
	"github.com/thenoetrevino/tavla/internal/logging"
	"github.com/thenoetrevino/tavla/internal/remote"
	"github.com/thenoetrevino/tavla/internal/tui"
)

func main() {
	if err := logging.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.BoardID == "" {
		fmt.Fprintln(os.Stderr, "No board configured. Set board_id in the config file.")
		os.Exit(1)
	}

	ctx := context.Background()

	snapshots, err := cache.Open(ctx, cfg.CachePath)
	if err != nil {
		// The cache is an offline fallback; the client still works without it.
		log.Printf("Snapshot cache unavailable: %v", err)
		snapshots = nil
	}

	store := remote.NewClient(cfg.ServerURL, cfg.AuthToken, &http.Client{Timeout: cfg.RequestTimeout()})

	actor, err := store.CurrentActor(ctx)
	if err != nil {
		log.Fatalf("Failed to resolve actor identity: %v", err)
	}

	application := app.New(cfg, store, snapshots)
	defer application.Close()

	model := tui.InitialModel(application, *actor)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		log.Fatal(err)
	}
}
