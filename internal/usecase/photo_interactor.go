package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/CloudGalleryGo/CloudGallery/internal/core/ports"
	"github.com/CloudGalleryGo/CloudGallery/internal/domain"
	"github.com/google/uuid"
)

var allowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
}

// photoUseCase implements PhotoUseCase.
type photoUseCase struct {
	photoStorage ports.PhotoStorage
	fileStorage  ports.FileStorage
	metadata     ports.MetadataReader
	mediaDir     string
	logger       *slog.Logger
}

// NewPhotoUseCase creates a new PhotoUseCase over the given ports.
// mediaDir is the transient local directory uploads are staged in.
func NewPhotoUseCase(
	photoStorage ports.PhotoStorage,
	fileStorage ports.FileStorage,
	metadata ports.MetadataReader,
	mediaDir string,
	logger *slog.Logger,
) PhotoUseCase {
	return &photoUseCase{
		photoStorage: photoStorage,
		fileStorage:  fileStorage,
		metadata:     metadata,
		mediaDir:     mediaDir,
		logger:       logger,
	}
}

// fileExtension returns the lowercased substring after the final '.' of
// name, or "" when there is none.
func fileExtension(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 || i == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

// AddPhoto runs the upload pipeline. Past the extension check there is no
// partial-failure cleanup: a staged local file stays on disk if a later
// step fails, and an uploaded object stays in the bucket if the insert
// fails.
func (uc *photoUseCase) AddPhoto(ctx context.Context, input AddPhotoInput) (*domain.Photo, error) {
	if input.File == nil || input.Filename == "" {
		return nil, ErrUnsupportedFile
	}
	ext := fileExtension(input.Filename)
	if !allowedExtensions[ext] {
		uc.logger.Warn("rejected upload with disallowed extension",
			"filename", input.Filename,
			"user_id", input.UserID,
		)
		return nil, ErrUnsupportedFile
	}

	// 1. Stage the upload on local disk under the client-supplied name.
	// Identical filenames overwrite each other, both here and in the
	// object store.
	localPath := filepath.Join(uc.mediaDir, input.Filename)
	staged, err := os.Create(localPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create local file %s: %w", localPath, err)
	}
	if _, err := io.Copy(staged, input.File); err != nil {
		staged.Close()
		return nil, fmt.Errorf("failed to write local file %s: %w", localPath, err)
	}
	if err := staged.Close(); err != nil {
		return nil, fmt.Errorf("failed to close local file %s: %w", localPath, err)
	}

	// 2. Push the staged file to object storage under the owner-scoped key.
	key := fmt.Sprintf("photos/%s/%s", input.Username, input.Filename)
	contentType := mime.TypeByExtension("." + ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	object, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open local file %s: %w", localPath, err)
	}
	url, err := uc.fileStorage.UploadFile(ctx, key, object, contentType)
	object.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s to object storage: %w", key, err)
	}

	// 3. Extract embedded metadata from the staged file.
	img, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("failed to reopen local file %s: %w", localPath, err)
	}
	tags, err := uc.metadata.ReadMetadata(img)
	img.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to extract metadata from %s: %w", localPath, err)
	}
	exifData, err := domain.EncodeExif(tags)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize metadata for %s: %w", localPath, err)
	}

	// 4. Insert the record. PhotoID is a random UUID so that two uploads
	// landing in the same millisecond cannot overwrite each other.
	photo := &domain.Photo{
		PhotoID:      uuid.NewString(),
		UserID:       input.UserID,
		CreationTime: time.Now().Format(domain.TimeLayout),
		Title:        input.Title,
		Description:  input.Description,
		Tags:         input.Tags,
		URL:          url,
		ExifData:     exifData,
	}
	if err := uc.photoStorage.SavePhoto(ctx, photo); err != nil {
		return nil, fmt.Errorf("failed to save photo record: %w", err)
	}

	uc.logger.Info("photo added",
		"photo_id", photo.PhotoID,
		"user_id", photo.UserID,
		"key", key,
	)
	return photo, nil
}

func (uc *photoUseCase) ListPhotos(ctx context.Context, userID string) ([]domain.Photo, error) {
	photos, err := uc.photoStorage.ListPhotosByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos for user %s: %w", userID, err)
	}
	return photos, nil
}

func (uc *photoUseCase) GetPhotoDetail(ctx context.Context, photoID, userID string) (*PhotoDetail, error) {
	photo, err := uc.photoStorage.GetPhotoByID(ctx, photoID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get photo %s: %w", photoID, err)
	}
	if photo == nil {
		return nil, ErrPhotoNotFound
	}

	exif, err := photo.DecodeExif()
	if err != nil {
		return nil, fmt.Errorf("failed to decode metadata of photo %s: %w", photoID, err)
	}

	return &PhotoDetail{
		Photo: *photo,
		Tags:  photo.TagList(),
		Exif:  exif,
	}, nil
}

func (uc *photoUseCase) SearchPhotos(ctx context.Context, userID, query string) ([]domain.Photo, error) {
	photos, err := uc.photoStorage.SearchPhotos(ctx, userID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search photos for user %s: %w", userID, err)
	}
	return photos, nil
}
