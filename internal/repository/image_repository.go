package repository

import (
	"context"
	"image"
	"strings"
	"time"

	"github.com/mtornqvi/go-meter-scan/internal/metadata"
	"github.com/mtornqvi/go-meter-scan/internal/storage"
	"github.com/mtornqvi/go-meter-scan/pkg/validation"
)

// HTTPImageRepository serves photos referenced by URL.
type HTTPImageRepository struct {
	fetcher   storage.ImageFetcher
	validator *validation.URLValidator
}

// NewHTTPImageRepository creates a new HTTP-based image repository.
func NewHTTPImageRepository(fetcher storage.ImageFetcher) ImageRepository {
	return &HTTPImageRepository{
		fetcher:   fetcher,
		validator: validation.NewURLValidator(),
	}
}

// FetchImage retrieves a decoded photo from a URL.
func (r *HTTPImageRepository) FetchImage(ctx context.Context, source string) (image.Image, error) {
	return r.fetcher.FetchImage(ctx, source)
}

// ValidateImageSource validates if the provided URL is acceptable.
func (r *HTTPImageRepository) ValidateImageSource(source string) error {
	return r.validator.ValidateImageURL(source)
}

// CaptureTime always reports no timestamp for remote photos; EXIF parsing
// would require re-downloading the raw bytes, and the batch path covers the
// cases where timestamps matter.
func (r *HTTPImageRepository) CaptureTime(ctx context.Context, source string) (*time.Time, error) {
	return nil, nil
}

// LocalImageRepository serves photos from the local filesystem and can read
// their EXIF capture timestamps.
type LocalImageRepository struct {
	fetcher storage.ImageFetcher
}

// NewLocalImageRepository creates a filesystem-backed image repository.
func NewLocalImageRepository() ImageRepository {
	return &LocalImageRepository{fetcher: storage.NewLocalImageFetcher()}
}

// FetchImage retrieves a decoded photo from disk.
func (r *LocalImageRepository) FetchImage(ctx context.Context, source string) (image.Image, error) {
	return r.fetcher.FetchImage(ctx, source)
}

// ValidateImageSource accepts any non-empty path ending in a supported
// extension.
func (r *LocalImageRepository) ValidateImageSource(source string) error {
	if strings.TrimSpace(source) == "" {
		return ErrInvalidImageSource
	}
	lower := strings.ToLower(source)
	if !strings.HasSuffix(lower, ".jpg") && !strings.HasSuffix(lower, ".jpeg") && !strings.HasSuffix(lower, ".png") {
		return ErrInvalidImageSource
	}
	return nil
}

// CaptureTime reads the EXIF capture timestamp from the file.
func (r *LocalImageRepository) CaptureTime(ctx context.Context, source string) (*time.Time, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return metadata.CaptureTime(source)
}
