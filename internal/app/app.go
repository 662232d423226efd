package app

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/CloudGalleryGo/CloudGallery/internal/config"
	"github.com/CloudGalleryGo/CloudGallery/internal/database/mongo"
	"github.com/CloudGalleryGo/CloudGallery/internal/handler"
	"github.com/CloudGalleryGo/CloudGallery/internal/session"
)

// App is the assembled application: configuration, the process-scoped
// clients and the HTTP handler, wired together once by the DI container.
type App struct {
	config   *config.Config
	logger   *slog.Logger
	dbClient *mongo.Client
	gallery  *handler.GalleryHandler
	sessions *session.Manager
}

func NewApp(
	cfg *config.Config,
	logger *slog.Logger,
	dbClient *mongo.Client,
	gallery *handler.GalleryHandler,
	sessions *session.Manager,
) *App {
	return &App{
		config:   cfg,
		logger:   logger,
		dbClient: dbClient,
		gallery:  gallery,
		sessions: sessions,
	}
}

// Logger exposes the main logger for the entrypoint.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Run serves HTTP until the context is cancelled or a termination signal
// arrives, then releases resources.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := runServer(ctx, a.config, a.gallery, a.sessions, a.logger)

	if closeErr := a.Shutdown(); closeErr != nil {
		a.logger.Error("error during shutdown", "error", closeErr)
	}

	return err
}

// Shutdown closes the application's resources.
func (a *App) Shutdown() error {
	if a.dbClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.dbClient.Close(ctx); err != nil {
			return err
		}
	}
	return nil
}
