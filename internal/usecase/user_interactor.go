package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/CloudGalleryGo/CloudGallery/internal/core/ports"
	"github.com/CloudGalleryGo/CloudGallery/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// userUseCase implements UserUseCase.
type userUseCase struct {
	userStorage ports.UserStorage
	logger      *slog.Logger
}

func NewUserUseCase(userStorage ports.UserStorage, logger *slog.Logger) UserUseCase {
	return &userUseCase{userStorage: userStorage, logger: logger}
}

func (uc *userUseCase) SignUp(ctx context.Context, username, password, confirmPassword string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}
	if password != confirmPassword {
		return nil, ErrPasswordMismatch
	}

	existing, err := uc.userStorage.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username %s: %w", username, err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		UserID:    domain.TimestampID(now),
		Username:  username,
		Password:  string(hash),
		CreatedAt: now.Format(domain.TimeLayout),
	}
	if err := uc.userStorage.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user %s: %w", username, err)
	}

	uc.logger.Info("user signed up", "user_id", user.UserID, "username", username)
	return user, nil
}

func (uc *userUseCase) LogIn(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := uc.userStorage.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user %s: %w", username, err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		uc.logger.Warn("failed login attempt", "username", username)
		return nil, ErrInvalidCredentials
	}

	uc.logger.Info("user logged in", "user_id", user.UserID, "username", username)
	return user, nil
}
