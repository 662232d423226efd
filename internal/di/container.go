package di

import (
	"fmt"
	"html/template"
	"os"

	"github.com/CloudGalleryGo/CloudGallery/internal/adapter/metadata"
	"github.com/CloudGalleryGo/CloudGallery/internal/adapter/storage/s3"
	"github.com/CloudGalleryGo/CloudGallery/internal/app"
	"github.com/CloudGalleryGo/CloudGallery/internal/config"
	"github.com/CloudGalleryGo/CloudGallery/internal/database/mongo"
	"github.com/CloudGalleryGo/CloudGallery/internal/database/storage"
	"github.com/CloudGalleryGo/CloudGallery/internal/handler"
	"github.com/CloudGalleryGo/CloudGallery/internal/logger"
	"github.com/CloudGalleryGo/CloudGallery/internal/session"
	"github.com/CloudGalleryGo/CloudGallery/internal/usecase"
)

// BuildApp initializes every dependency and returns the assembled App.
// All clients are constructed exactly once here and passed down; nothing
// is referenced as an ambient global.
func BuildApp() (*app.App, error) {
	// 1. Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogger := logger.NewSlog(logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	// 2. Transient media directory for staged uploads
	if err := os.MkdirAll(cfg.MediaDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media dir %s: %w", cfg.MediaDir, err)
	}

	// 3. MongoDB client and collection storages
	dbClient, err := mongo.NewClient(cfg, slogger)
	if err != nil {
		return nil, err
	}
	userStorage := storage.NewUserMongoStorage(dbClient.Database, slogger)
	photoStorage := storage.NewPhotoMongoStorage(dbClient.Database, slogger)

	// 4. External service clients
	fileStorage, err := s3.NewClient(cfg, slogger)
	if err != nil {
		return nil, err
	}
	metadataReader := metadata.NewExtractor()

	// 5. Sessions and templates
	sessions := session.NewManager(cfg.SessionSecret)

	templates, err := template.ParseGlob(cfg.TemplatesGlob)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates %s: %w", cfg.TemplatesGlob, err)
	}

	// 6. Business logic
	photoUseCase := usecase.NewPhotoUseCase(photoStorage, fileStorage, metadataReader, cfg.MediaDir, slogger)
	userUseCase := usecase.NewUserUseCase(userStorage, slogger)

	// 7. HTTP layer and final assembly
	gallery := handler.NewGalleryHandler(templates, sessions, photoUseCase, userUseCase, slogger)

	application := app.NewApp(cfg, slogger, dbClient, gallery, sessions)

	slogger.Info("all dependencies initialized")
	return application, nil
}
