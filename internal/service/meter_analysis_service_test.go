package service

import (
	"context"
	"errors"
	"image"
	"image/color"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mtornqvi/go-meter-scan/internal/analyzer"
	"github.com/mtornqvi/go-meter-scan/internal/ocr"
	"github.com/mtornqvi/go-meter-scan/pkg/models"
	"github.com/mtornqvi/go-meter-scan/pkg/validation"
)

// fakeRepository serves a synthetic meter photo from memory and counts
// fetches so cache behavior can be observed.
type fakeRepository struct {
	img     image.Image
	err     error
	fetches int32
}

func (r *fakeRepository) FetchImage(ctx context.Context, source string) (image.Image, error) {
	atomic.AddInt32(&r.fetches, 1)
	if r.err != nil {
		return nil, r.err
	}
	return r.img, nil
}

func (r *fakeRepository) ValidateImageSource(source string) error {
	return validation.NewURLValidator().ValidateImageURL(source)
}

func (r *fakeRepository) CaptureTime(ctx context.Context, source string) (*time.Time, error) {
	return nil, nil
}

// fakeReader returns a fixed reading.
type fakeReader struct {
	reading string
	err     error
}

func (f *fakeReader) ExtractReading(ctx context.Context, region *models.CroppedRegion) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.reading, nil
}

func syntheticMeterPhoto() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 200, 150))
	for y := 0; y < 150; y++ {
		for x := 0; x < 200; x++ {
			img.Set(x, y, color.RGBA{220, 20, 30, 255})
		}
	}
	for y := 60; y < 90; y++ {
		for x := 50; x < 150; x++ {
			img.Set(x, y, color.RGBA{250, 250, 250, 255})
		}
	}
	return img
}

func newTestService(t *testing.T, repo *fakeRepository, reader ocr.Reader) MeterAnalysisService {
	t.Helper()
	a, err := analyzer.NewMeterAnalyzer()
	if err != nil {
		t.Fatalf("failed to build analyzer: %v", err)
	}
	return NewMeterAnalysisService(repo, a, reader, nil)
}

func TestAnalyzeMeter(t *testing.T) {
	repo := &fakeRepository{img: syntheticMeterPhoto()}
	svc := newTestService(t, repo, nil)

	resp, err := svc.AnalyzeMeter(context.Background(), "https://meters.example.com/m1.jpg")
	if err != nil {
		t.Fatalf("AnalyzeMeter failed: %v", err)
	}

	if resp.MeterType != "hot" {
		t.Errorf("expected hot meter, got %s", resp.MeterType)
	}
	if resp.Region == nil {
		t.Fatal("expected a display region")
	}
	if resp.Region.Width <= 0 || resp.Region.Height <= 0 {
		t.Errorf("degenerate region %+v", resp.Region)
	}
	if resp.ImageURL != "https://meters.example.com/m1.jpg" {
		t.Errorf("unexpected image URL %s", resp.ImageURL)
	}
	if resp.OCRResult != nil {
		t.Error("expected no OCR result without reading extraction")
	}
}

func TestAnalyzeMeter_InvalidURL(t *testing.T) {
	svc := newTestService(t, &fakeRepository{img: syntheticMeterPhoto()}, nil)

	if _, err := svc.AnalyzeMeter(context.Background(), "ftp://example.com/m1.jpg"); err == nil {
		t.Error("expected error for disallowed scheme")
	}
}

func TestAnalyzeMeter_FetchFailure(t *testing.T) {
	repo := &fakeRepository{err: errors.New("connection refused")}
	svc := newTestService(t, repo, nil)

	if _, err := svc.AnalyzeMeter(context.Background(), "https://meters.example.com/m1.jpg"); err == nil {
		t.Error("expected error when the fetch fails")
	}
}

func TestAnalyzeMeter_CachesRepeatURLs(t *testing.T) {
	repo := &fakeRepository{img: syntheticMeterPhoto()}
	svc := newTestService(t, repo, nil)

	for i := 0; i < 3; i++ {
		if _, err := svc.AnalyzeMeter(context.Background(), "https://meters.example.com/m1.jpg"); err != nil {
			t.Fatalf("AnalyzeMeter failed on call %d: %v", i, err)
		}
	}

	if got := atomic.LoadInt32(&repo.fetches); got != 1 {
		t.Errorf("expected a single fetch for repeat URLs, got %d", got)
	}
}

func TestAnalyzeMeterWithReading(t *testing.T) {
	repo := &fakeRepository{img: syntheticMeterPhoto()}
	svc := newTestService(t, repo, &fakeReader{reading: "00123.456"})

	resp, err := svc.AnalyzeMeterWithReading(context.Background(), "https://meters.example.com/m1.jpg", "00123.456")
	if err != nil {
		t.Fatalf("AnalyzeMeterWithReading failed: %v", err)
	}

	if resp.OCRResult == nil {
		t.Fatal("expected an OCR result")
	}
	if resp.OCRResult.Reading != "00123.456" {
		t.Errorf("unexpected reading %q", resp.OCRResult.Reading)
	}
	if resp.OCRResult.CER != 0 || resp.OCRResult.WER != 0 {
		t.Errorf("expected perfect accuracy scores, got CER=%f WER=%f",
			resp.OCRResult.CER, resp.OCRResult.WER)
	}
}

func TestAnalyzeMeterWithReading_NoReading(t *testing.T) {
	repo := &fakeRepository{img: syntheticMeterPhoto()}
	svc := newTestService(t, repo, &fakeReader{err: ocr.ErrNoReading})

	resp, err := svc.AnalyzeMeterWithReading(context.Background(), "https://meters.example.com/m1.jpg", "")
	if err != nil {
		t.Fatalf("AnalyzeMeterWithReading failed: %v", err)
	}

	if resp.OCRResult == nil || !resp.OCRResult.NoReading {
		t.Errorf("expected a no-reading outcome, got %+v", resp.OCRResult)
	}
}

func TestAnalyzeMeterWithReading_ReaderNotConfigured(t *testing.T) {
	repo := &fakeRepository{img: syntheticMeterPhoto()}
	svc := newTestService(t, repo, nil)

	if _, err := svc.AnalyzeMeterWithReading(context.Background(), "https://meters.example.com/m1.jpg", ""); err == nil {
		t.Error("expected error when no reader is configured")
	}
}

func TestAnalyzeMeterWithReading_AccuracyScored(t *testing.T) {
	repo := &fakeRepository{img: syntheticMeterPhoto()}
	svc := newTestService(t, repo, &fakeReader{reading: "00123.956"})

	resp, err := svc.AnalyzeMeterWithReading(context.Background(), "https://meters.example.com/m1.jpg", "00123.456")
	if err != nil {
		t.Fatalf("AnalyzeMeterWithReading failed: %v", err)
	}
	if resp.OCRResult.CER <= 0 {
		t.Errorf("expected positive character error rate, got %f", resp.OCRResult.CER)
	}
	if resp.OCRResult.ExpectedReading != "00123.456" {
		t.Errorf("expected reading not recorded: %+v", resp.OCRResult)
	}
}
