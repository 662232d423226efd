package usecase

import (
	"context"
	"errors"
	"io"

	"github.com/CloudGalleryGo/CloudGallery/internal/domain"
)

// ErrUnsupportedFile is returned by AddPhoto when the upload is missing or
// its extension is not an allowed image type. The caller recovers locally;
// no record is created and no storage call is made.
var ErrUnsupportedFile = errors.New("unsupported file type")

// ErrPhotoNotFound is returned for a PhotoID that does not exist or is
// owned by a different user. The two cases are deliberately
// indistinguishable.
var ErrPhotoNotFound = errors.New("photo not found")

// AddPhotoInput carries one photo upload through the pipeline.
type AddPhotoInput struct {
	Filename    string
	File        io.Reader
	Title       string
	Tags        string
	Description string
	UserID      string
	Username    string
}

// PhotoDetail is a photo prepared for the detail page: tags split into a
// sequence and exif data deserialized back into a mapping.
type PhotoDetail struct {
	Photo domain.Photo
	Tags  []string
	Exif  map[string]string
}

// PhotoUseCase defines the gallery business logic. Every read operation is
// implicitly scoped to the calling user's ID.
type PhotoUseCase interface {
	// AddPhoto validates the upload, persists the file locally, extracts
	// its metadata, pushes it to object storage and inserts the record.
	AddPhoto(ctx context.Context, input AddPhotoInput) (*domain.Photo, error)

	// ListPhotos returns all photos owned by userID, in store order.
	ListPhotos(ctx context.Context, userID string) ([]domain.Photo, error)

	// GetPhotoDetail returns one photo with tags and exif prepared for
	// display, or ErrPhotoNotFound.
	GetPhotoDetail(ctx context.Context, photoID, userID string) (*PhotoDetail, error)

	// SearchPhotos returns the user's photos matching query as a
	// case-insensitive substring of title, description or tags.
	SearchPhotos(ctx context.Context, userID, query string) ([]domain.Photo, error)
}
