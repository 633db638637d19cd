package repository

import (
	"context"
	"image"
	"time"
)

// ImageRepository defines the interface for meter photo access operations.
type ImageRepository interface {
	// FetchImage retrieves a decoded photo from a URL or path.
	FetchImage(ctx context.Context, source string) (image.Image, error)

	// ValidateImageSource validates if the provided source is acceptable.
	ValidateImageSource(source string) error

	// CaptureTime retrieves the embedded capture timestamp, when one
	// exists. Nil without error means the photo carries none.
	CaptureTime(ctx context.Context, source string) (*time.Time, error)
}
