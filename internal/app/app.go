package app

import (
	"log/slog"

	"github.com/thenoetrevino/tavla/internal/board"
	"github.com/thenoetrevino/tavla/internal/cache"
	"github.com/thenoetrevino/tavla/internal/config"
	"github.com/thenoetrevino/tavla/internal/mutate"
	"github.com/thenoetrevino/tavla/internal/remote"
	"github.com/thenoetrevino/tavla/internal/services/boardops"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	Config *config.Config
	Store  remote.Store
	Cache  *cache.Store

	// Service layer (business logic)
	BoardOps boardops.Service
}

// New creates a new App with all services initialized. The snapshot cache is
// optional; a nil cache disables the offline fallback.
func New(cfg *config.Config, store remote.Store, snapshots *cache.Store) *App {
	empty := board.New(cfg.BoardID, nil, nil, cfg.GroupNames)
	coord := mutate.NewCoordinator(empty, cfg.RequestTimeout(), slog.Default())
	return &App{
		Config:   cfg,
		Store:    store,
		Cache:    snapshots,
		BoardOps: boardops.NewService(cfg.BoardID, cfg.GroupNames, coord, store, snapshots),
	}
}

// Close performs cleanup of application resources.
func (a *App) Close() error {
	if a.Cache != nil {
		return a.Cache.Close()
	}
	return nil
}
