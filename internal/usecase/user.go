package usecase

import (
	"context"
	"errors"

	"github.com/CloudGalleryGo/CloudGallery/internal/domain"
)

// Validation outcomes surfaced back to the signup/login forms.
var (
	ErrMissingCredentials = errors.New("username and password required")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrUsernameTaken      = errors.New("username already exists")

	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password; the login form never learns which one it was.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// UserUseCase defines account creation and credential verification.
type UserUseCase interface {
	// SignUp validates the form, hashes the password and inserts the user.
	// Usernames are matched case-sensitively and must be unique.
	SignUp(ctx context.Context, username, password, confirmPassword string) (*domain.User, error)

	// LogIn verifies the credentials against the stored hash.
	LogIn(ctx context.Context, username, password string) (*domain.User, error)
}
