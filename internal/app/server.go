package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/CloudGalleryGo/CloudGallery/internal/config"
	"github.com/CloudGalleryGo/CloudGallery/internal/handler"
	"github.com/CloudGalleryGo/CloudGallery/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter builds the full route table. Protected routes sit behind the
// RequireLogin middleware; login and signup stay public. The photo detail
// route is a catch-all parameter, so chi's static-route priority keeps
// /add, /search and /logout ahead of it.
func NewRouter(cfg *config.Config, gallery *handler.GalleryHandler, sessions *session.Manager, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(handler.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.Dir(cfg.AssetsDir))))

	r.Group(func(r chi.Router) {
		r.Use(handler.RequireLogin(sessions))

		r.Get("/", gallery.Home)
		r.Post("/", gallery.Home)
		r.Get("/add", gallery.AddPhoto)
		r.Post("/add", gallery.AddPhoto)
		r.Get("/search", gallery.Search)
		r.Get("/logout", gallery.Logout)
		r.Get("/{photoID}", gallery.PhotoDetail)
	})

	r.Get("/login", gallery.Login)
	r.Post("/login", gallery.Login)
	r.Get("/signup", gallery.Signup)
	r.Post("/signup", gallery.Signup)

	return r
}

// runServer starts the HTTP server and blocks until ctx is cancelled, then
// shuts the server down gracefully.
func runServer(
	ctx context.Context,
	cfg *config.Config,
	gallery *handler.GalleryHandler,
	sessions *session.Manager,
	logger *slog.Logger,
) error {
	router := NewRouter(cfg, gallery, sessions, logger)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("termination signal received, shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("server stopped gracefully")
	return nil
}
