package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/CloudGalleryGo/CloudGallery/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// UsersCollection is the collection holding account documents.
const UsersCollection = "Users"

type UserMongoStorage struct {
	col    *mongo.Collection
	logger *slog.Logger
}

func NewUserMongoStorage(db *mongo.Database, logger *slog.Logger) *UserMongoStorage {
	return &UserMongoStorage{col: db.Collection(UsersCollection), logger: logger}
}

// SaveUser inserts a new user document.
func (s *UserMongoStorage) SaveUser(ctx context.Context, user *domain.User) error {
	start := time.Now()

	if _, err := s.col.InsertOne(ctx, user); err != nil {
		s.logger.Error("failed to save user", "username", user.Username, "error", err)
		return fmt.Errorf("failed to save user: %w", err)
	}

	s.logger.Info("user saved successfully",
		"user_id", user.UserID,
		"username", user.Username,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// GetUserByUsername looks up a user by exact, case-sensitive username.
// Returns (nil, nil) when no such user exists.
func (s *UserMongoStorage) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	start := time.Now()

	var user domain.User
	err := s.col.FindOne(ctx, bson.M{"Username": username}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			s.logger.Warn("user not found by username", "username", username)
			return nil, nil
		}
		s.logger.Error("failed to get user by username", "username", username, "error", err)
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	s.logger.Info("user retrieved by username",
		"username", username,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &user, nil
}
