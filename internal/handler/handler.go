package handler

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/CloudGalleryGo/CloudGallery/internal/domain"
	"github.com/CloudGalleryGo/CloudGallery/internal/session"
	"github.com/CloudGalleryGo/CloudGallery/internal/usecase"
	"github.com/go-chi/chi/v5"
)

// Request body limit for photo uploads.
const maxUploadMemory = 32 << 20

// GalleryHandler serves every page of the application.
type GalleryHandler struct {
	templates    *template.Template
	sessions     *session.Manager
	photoUseCase usecase.PhotoUseCase
	userUseCase  usecase.UserUseCase
	logger       *slog.Logger
}

// NewGalleryHandler creates a new GalleryHandler.
func NewGalleryHandler(
	templates *template.Template,
	sessions *session.Manager,
	photoUC usecase.PhotoUseCase,
	userUC usecase.UserUseCase,
	logger *slog.Logger,
) *GalleryHandler {
	return &GalleryHandler{
		templates:    templates,
		sessions:     sessions,
		photoUseCase: photoUC,
		userUseCase:  userUC,
		logger:       logger,
	}
}

// render executes a template; a failed render answers 500.
func (h *GalleryHandler) render(w http.ResponseWriter, name string, data interface{}) {
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error("failed to render template", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Home lists the current user's photos.
func (h *GalleryHandler) Home(w http.ResponseWriter, r *http.Request) {
	id, _ := session.IdentityFrom(r.Context())

	photos, err := h.photoUseCase.ListPhotos(r.Context(), id.UserID)
	if err != nil {
		h.logger.Error("failed to list photos", "user_id", id.UserID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.render(w, "index.html", struct {
		Photos   []domain.Photo
		Username string
	}{photos, id.Username})
}

// AddPhoto renders the upload form on GET and runs the upload pipeline on
// POST. A missing file or disallowed extension redirects back with no
// record created.
func (h *GalleryHandler) AddPhoto(w http.ResponseWriter, r *http.Request) {
	id, _ := session.IdentityFrom(r.Context())

	if r.Method == http.MethodPost {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			h.logger.Warn("failed to parse upload form", "error", err)
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}

		input := usecase.AddPhotoInput{
			Title:       r.FormValue("title"),
			Tags:        r.FormValue("tags"),
			Description: r.FormValue("description"),
			UserID:      id.UserID,
			Username:    id.Username,
		}
		if file, header, err := r.FormFile("imagefile"); err == nil {
			defer file.Close()
			input.File = file
			input.Filename = header.Filename
		}

		_, err := h.photoUseCase.AddPhoto(r.Context(), input)
		if err != nil && !errors.Is(err, usecase.ErrUnsupportedFile) {
			h.logger.Error("failed to add photo", "user_id", id.UserID, "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	h.render(w, "form.html", struct{ Username string }{id.Username})
}

// PhotoDetail shows a single photo with its tags and extracted metadata.
func (h *GalleryHandler) PhotoDetail(w http.ResponseWriter, r *http.Request) {
	id, _ := session.IdentityFrom(r.Context())
	photoID := chi.URLParam(r, "photoID")

	detail, err := h.photoUseCase.GetPhotoDetail(r.Context(), photoID, id.UserID)
	if err != nil {
		if errors.Is(err, usecase.ErrPhotoNotFound) {
			http.NotFound(w, r)
			return
		}
		h.logger.Error("failed to get photo detail", "photo_id", photoID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.render(w, "photodetail.html", struct {
		Photo    domain.Photo
		Tags     []string
		ExifData map[string]string
		Username string
	}{detail.Photo, detail.Tags, detail.Exif, id.Username})
}

// Search runs the substring search over title, description and tags.
func (h *GalleryHandler) Search(w http.ResponseWriter, r *http.Request) {
	id, _ := session.IdentityFrom(r.Context())
	query := r.URL.Query().Get("query")

	photos, err := h.photoUseCase.SearchPhotos(r.Context(), id.UserID, query)
	if err != nil {
		h.logger.Error("failed to search photos", "user_id", id.UserID, "query", query, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.render(w, "search.html", struct {
		Photos      []domain.Photo
		SearchQuery string
		Username    string
	}{photos, query, id.Username})
}

// Login authenticates a user and establishes the session.
func (h *GalleryHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		username := r.FormValue("username")
		password := r.FormValue("password")

		user, err := h.userUseCase.LogIn(r.Context(), username, password)
		if err != nil {
			if errors.Is(err, usecase.ErrInvalidCredentials) {
				h.render(w, "login.html", struct{ Error string }{"Invalid username or password"})
				return
			}
			h.logger.Error("login failed", "username", username, "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		if err := h.sessions.Establish(w, r, session.Identity{UserID: user.UserID, Username: user.Username}); err != nil {
			h.logger.Error("failed to establish session", "username", username, "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	h.render(w, "login.html", struct{ Error string }{})
}

// Signup registers a new account and establishes the session.
func (h *GalleryHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		username := r.FormValue("username")
		password := r.FormValue("password")
		confirm := r.FormValue("confirm_password")

		user, err := h.userUseCase.SignUp(r.Context(), username, password, confirm)
		if err != nil {
			var msg string
			switch {
			case errors.Is(err, usecase.ErrMissingCredentials):
				msg = "Username and password required"
			case errors.Is(err, usecase.ErrPasswordMismatch):
				msg = "Passwords do not match"
			case errors.Is(err, usecase.ErrUsernameTaken):
				msg = "Username already exists"
			default:
				h.logger.Error("signup failed", "username", username, "error", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			h.render(w, "signup.html", struct{ Error string }{msg})
			return
		}

		if err := h.sessions.Establish(w, r, session.Identity{UserID: user.UserID, Username: user.Username}); err != nil {
			h.logger.Error("failed to establish session", "username", username, "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	h.render(w, "signup.html", struct{ Error string }{})
}

// Logout clears the session unconditionally.
func (h *GalleryHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Clear(w, r); err != nil {
		h.logger.Error("failed to clear session", "error", err)
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}
