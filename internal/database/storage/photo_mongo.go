package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/CloudGalleryGo/CloudGallery/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// PhotoGalleryCollection is the collection holding photo documents.
const PhotoGalleryCollection = "PhotoGallery"

type PhotoMongoStorage struct {
	col    *mongo.Collection
	logger *slog.Logger
}

func NewPhotoMongoStorage(db *mongo.Database, logger *slog.Logger) *PhotoMongoStorage {
	return &PhotoMongoStorage{col: db.Collection(PhotoGalleryCollection), logger: logger}
}

// SavePhoto inserts a new photo document. Photos are written exactly once
// and never updated afterwards.
func (s *PhotoMongoStorage) SavePhoto(ctx context.Context, photo *domain.Photo) error {
	start := time.Now()

	if _, err := s.col.InsertOne(ctx, photo); err != nil {
		s.logger.Error("failed to save photo", "photo_id", photo.PhotoID, "error", err)
		return fmt.Errorf("failed to save photo: %w", err)
	}

	s.logger.Info("photo saved successfully",
		"photo_id", photo.PhotoID,
		"user_id", photo.UserID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// ListPhotosByUser returns every photo owned by userID, in store order.
func (s *PhotoMongoStorage) ListPhotosByUser(ctx context.Context, userID string) ([]domain.Photo, error) {
	start := time.Now()

	cur, err := s.col.Find(ctx, bson.M{"UserID": userID})
	if err != nil {
		s.logger.Error("failed to list photos", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	defer cur.Close(ctx)

	photos := []domain.Photo{}
	if err := cur.All(ctx, &photos); err != nil {
		s.logger.Error("failed to decode photo list", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to decode photo list: %w", err)
	}

	s.logger.Info("photos listed",
		"user_id", userID,
		"count", len(photos),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return photos, nil
}

// GetPhotoByID returns the photo matching both PhotoID and UserID. A photo
// belonging to another user yields the same (nil, nil) as a nonexistent ID,
// so ownership cannot be probed through this lookup.
func (s *PhotoMongoStorage) GetPhotoByID(ctx context.Context, photoID, userID string) (*domain.Photo, error) {
	start := time.Now()

	var photo domain.Photo
	err := s.col.FindOne(ctx, bson.M{"PhotoID": photoID, "UserID": userID}).Decode(&photo)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			s.logger.Warn("photo not found by id", "photo_id", photoID, "user_id", userID)
			return nil, nil
		}
		s.logger.Error("failed to get photo by id", "photo_id", photoID, "error", err)
		return nil, fmt.Errorf("failed to get photo by id: %w", err)
	}

	s.logger.Info("photo retrieved by id",
		"photo_id", photoID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &photo, nil
}

// SearchPhotos returns the user's photos where Title, Description or Tags
// contains query as a case-insensitive substring. The query is quoted before
// being wrapped in a regex, so metacharacters match literally; an empty
// query matches every photo.
func (s *PhotoMongoStorage) SearchPhotos(ctx context.Context, userID, query string) ([]domain.Photo, error) {
	start := time.Now()

	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{
		"UserID": userID,
		"$or": bson.A{
			bson.M{"Title": pattern},
			bson.M{"Description": pattern},
			bson.M{"Tags": pattern},
		},
	}

	cur, err := s.col.Find(ctx, filter)
	if err != nil {
		s.logger.Error("failed to search photos", "user_id", userID, "query", query, "error", err)
		return nil, fmt.Errorf("failed to search photos: %w", err)
	}
	defer cur.Close(ctx)

	photos := []domain.Photo{}
	if err := cur.All(ctx, &photos); err != nil {
		s.logger.Error("failed to decode search results", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to decode search results: %w", err)
	}

	s.logger.Info("photos searched",
		"user_id", userID,
		"query", query,
		"count", len(photos),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return photos, nil
}
