package ports

import (
	"context"
	"io"

	"github.com/CloudGalleryGo/CloudGallery/internal/domain"
)

// UserStorage defines the methods for working with the user collection.
// Lookups return (nil, nil) when no record matches.
type UserStorage interface {
	SaveUser(ctx context.Context, user *domain.User) error
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// PhotoStorage defines the methods for working with the photo collection.
// Every read is scoped to the owning UserID.
type PhotoStorage interface {
	SavePhoto(ctx context.Context, photo *domain.Photo) error
	ListPhotosByUser(ctx context.Context, userID string) ([]domain.Photo, error)
	GetPhotoByID(ctx context.Context, photoID, userID string) (*domain.Photo, error)
	SearchPhotos(ctx context.Context, userID, query string) ([]domain.Photo, error)
}

// FileStorage defines the object-storage port for uploaded image files.
// UploadFile stores the object under key, makes it publicly readable and
// returns its public URL.
type FileStorage interface {
	UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)
}

// MetadataReader extracts embedded image metadata as a tag→value mapping.
// Files without a metadata block yield an empty mapping, not an error.
type MetadataReader interface {
	ReadMetadata(r io.Reader) (map[string]string, error)
}
