package scanner

import (
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/mtornqvi/go-meter-scan/internal/analyzer"
	"github.com/mtornqvi/go-meter-scan/internal/repository"
)

// writeMeterPhoto encodes a synthetic meter photo: a colored frame with a
// pale display window.
func writeMeterPhoto(t *testing.T, path string, bezel color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 200, 150))
	for y := 0; y < 150; y++ {
		for x := 0; x < 200; x++ {
			img.Set(x, y, bezel)
		}
	}
	for y := 60; y < 90; y++ {
		for x := 50; x < 150; x++ {
			img.Set(x, y, color.RGBA{250, 250, 250, 255})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create photo: %v", err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 95}); err != nil {
		t.Fatalf("failed to encode photo: %v", err)
	}
}

func newTestScanner(t *testing.T, workers int) *Scanner {
	t.Helper()
	a, err := analyzer.NewMeterAnalyzer()
	if err != nil {
		t.Fatalf("failed to build analyzer: %v", err)
	}
	return New(repository.NewLocalImageRepository(), a, nil, nil, workers)
}

func TestListPhotos(t *testing.T) {
	dir := t.TempDir()
	writeMeterPhoto(t, filepath.Join(dir, "b.jpg"), color.RGBA{220, 20, 30, 255})
	writeMeterPhoto(t, filepath.Join(dir, "a.jpg"), color.RGBA{220, 20, 30, 255})
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	files, err := ListPhotos(dir)
	if err != nil {
		t.Fatalf("ListPhotos failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 photos, got %d: %v", len(files), files)
	}
	if filepath.Base(files[0]) != "a.jpg" || filepath.Base(files[1]) != "b.jpg" {
		t.Errorf("expected sorted photo list, got %v", files)
	}
}

func TestScanDirectory(t *testing.T) {
	dir := t.TempDir()
	writeMeterPhoto(t, filepath.Join(dir, "cold_meter.jpg"), color.RGBA{20, 60, 220, 255})
	writeMeterPhoto(t, filepath.Join(dir, "hot_meter.jpg"), color.RGBA{220, 20, 30, 255})

	s := newTestScanner(t, 2)
	records, err := s.ScanDirectory(context.Background(), dir)
	if err != nil {
		t.Fatalf("ScanDirectory failed: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	// Records come back in filename order regardless of worker scheduling.
	if records[0].Filename != "cold_meter.jpg" || records[1].Filename != "hot_meter.jpg" {
		t.Fatalf("unexpected record order: %s, %s", records[0].Filename, records[1].Filename)
	}
	if records[0].MeterType != "cold" {
		t.Errorf("expected cold meter, got %s", records[0].MeterType)
	}
	if records[1].MeterType != "hot" {
		t.Errorf("expected hot meter, got %s", records[1].MeterType)
	}
}

func TestScanDirectory_BrokenPhotoIsolated(t *testing.T) {
	dir := t.TempDir()
	writeMeterPhoto(t, filepath.Join(dir, "good.jpg"), color.RGBA{220, 20, 30, 255})
	if err := os.WriteFile(filepath.Join(dir, "broken.jpg"), []byte("not a jpeg"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := newTestScanner(t, 1)
	records, err := s.ScanDirectory(context.Background(), dir)
	if err != nil {
		t.Fatalf("ScanDirectory failed: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Filename != "broken.jpg" || records[0].Error == "" {
		t.Errorf("expected the broken photo to carry an error, got %+v", records[0])
	}
	if records[0].MeterType != "unknown" {
		t.Errorf("expected unknown type for the broken photo, got %s", records[0].MeterType)
	}
	if records[1].Filename != "good.jpg" || records[1].Error != "" {
		t.Errorf("expected the good photo to survive the broken neighbor, got %+v", records[1])
	}
}

func TestScanDirectory_EmptyDirectory(t *testing.T) {
	s := newTestScanner(t, 2)
	records, err := s.ScanDirectory(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("ScanDirectory failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}

func TestScanDirectory_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	writeMeterPhoto(t, filepath.Join(dir, "a.jpg"), color.RGBA{220, 20, 30, 255})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := newTestScanner(t, 1)
	if _, err := s.ScanDirectory(ctx, dir); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestIsPhoto(t *testing.T) {
	testCases := []struct {
		path string
		want bool
	}{
		{"meter.jpg", true},
		{"meter.JPG", true},
		{"meter.jpeg", true},
		{"meter.png", false},
		{"notes.txt", false},
		{"meter", false},
	}
	for _, tc := range testCases {
		if got := isPhoto(tc.path); got != tc.want {
			t.Errorf("isPhoto(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}
