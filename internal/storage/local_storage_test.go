package storage

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeTestPNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	for y := 0; y < 30; y++ {
		for x := 0; x < 40; x++ {
			img.Set(x, y, color.RGBA{100, 150, 200, 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
}

func TestLocalImageFetcher_FetchImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meter.png")
	writeTestPNG(t, path)

	fetcher := NewLocalImageFetcher()
	img, err := fetcher.FetchImage(context.Background(), path)
	if err != nil {
		t.Fatalf("FetchImage failed: %v", err)
	}
	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 30 {
		t.Errorf("unexpected dimensions %v", img.Bounds())
	}
}

func TestLocalImageFetcher_MissingFile(t *testing.T) {
	fetcher := NewLocalImageFetcher()
	if _, err := fetcher.FetchImage(context.Background(), "/nonexistent/meter.jpg"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLocalImageFetcher_UndecodableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meter.jpg")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	fetcher := NewLocalImageFetcher()
	if _, err := fetcher.FetchImage(context.Background(), path); err == nil {
		t.Error("expected error for undecodable file")
	}
}

func TestLocalImageFetcher_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := NewLocalImageFetcher()
	if _, err := fetcher.FetchImage(ctx, "anything.jpg"); err == nil {
		t.Error("expected error for cancelled context")
	}
}
