package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/CloudGalleryGo/CloudGallery/internal/di"
)

func main() {
	// bootstrap logger, used only until DI builds the configured one
	bootstrapLogger := slog.New(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
	)
	bootstrapLogger.Info("starting application")

	app, err := di.BuildApp()
	if err != nil {
		bootstrapLogger.Error("failed to build app", "error", err)
		os.Exit(1)
	}

	logger := app.Logger()
	logger.Info("application initialized successfully")

	if err := app.Run(context.Background()); err != nil {
		logger.Error("application run failed", "error", err)
		os.Exit(1)
	}

	logger.Info("application stopped gracefully")
}
