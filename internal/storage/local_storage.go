package storage

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// LocalImageFetcher loads photos from the local filesystem. Used by the
// batch scanner, which walks a data folder instead of fetching over HTTP.
type LocalImageFetcher struct{}

// NewLocalImageFetcher creates a filesystem-backed image fetcher.
func NewLocalImageFetcher() ImageFetcher {
	return &LocalImageFetcher{}
}

// FetchImage opens and decodes one photo from disk. The path is passed in
// the imageURL position so local and remote fetchers share one interface.
func (l *LocalImageFetcher) FetchImage(ctx context.Context, path string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}
