package service

import (
	"context"
	"errors"
	"time"

	"github.com/maypok86/otter/v2"

	"github.com/mtornqvi/go-meter-scan/internal/analyzer"
	apperrors "github.com/mtornqvi/go-meter-scan/internal/errors"
	"github.com/mtornqvi/go-meter-scan/internal/observer"
	"github.com/mtornqvi/go-meter-scan/internal/ocr"
	"github.com/mtornqvi/go-meter-scan/internal/repository"
	"github.com/mtornqvi/go-meter-scan/pkg/models"
)

// MeterAnalysisService defines the interface for meter photo analysis.
type MeterAnalysisService interface {
	// AnalyzeMeter classifies the photo at the given URL and locates its
	// display region.
	AnalyzeMeter(ctx context.Context, imageURL string) (*models.AnalysisResponse, error)

	// AnalyzeMeterWithReading additionally runs the reading extractor on the
	// selected region. expectedReading, when non-empty, enables accuracy
	// scoring against a known-true value.
	AnalyzeMeterWithReading(ctx context.Context, imageURL string, expectedReading string) (*models.AnalysisResponse, error)

	// ValidateImageSource checks a source before any fetch happens.
	ValidateImageSource(imageURL string) error
}

// cacheTTL bounds how long a classification is reused for the same URL.
// Meter photos are immutable once uploaded, so the TTL mostly caps memory.
const cacheTTL = 10 * time.Minute

// meterAnalysisService implements MeterAnalysisService.
type meterAnalysisService struct {
	imageRepo repository.ImageRepository
	analyzer  analyzer.MeterAnalyzer
	reader    ocr.Reader // nil when reading extraction is disabled
	publisher observer.Subject
	cache     *otter.Cache[string, models.MeterAnalysis]
}

// NewMeterAnalysisService creates a new meter analysis service. reader and
// publisher may be nil.
func NewMeterAnalysisService(
	imageRepository repository.ImageRepository,
	meterAnalyzer analyzer.MeterAnalyzer,
	reader ocr.Reader,
	publisher observer.Subject,
) MeterAnalysisService {
	cache := otter.Must(&otter.Options[string, models.MeterAnalysis]{
		MaximumSize:      512,
		InitialCapacity:  64,
		ExpiryCalculator: otter.ExpiryWriting[string, models.MeterAnalysis](cacheTTL),
	})
	return &meterAnalysisService{
		imageRepo: imageRepository,
		analyzer:  meterAnalyzer,
		reader:    reader,
		publisher: publisher,
		cache:     cache,
	}
}

// AnalyzeMeter classifies the photo and locates its display region.
func (s *meterAnalysisService) AnalyzeMeter(ctx context.Context, imageURL string) (*models.AnalysisResponse, error) {
	result, err := s.analyze(ctx, imageURL)
	if err != nil {
		return nil, err
	}
	return s.convertToResponse(imageURL, result), nil
}

// AnalyzeMeterWithReading classifies the photo and extracts the displayed
// reading from the selected region.
func (s *meterAnalysisService) AnalyzeMeterWithReading(ctx context.Context, imageURL string, expectedReading string) (*models.AnalysisResponse, error) {
	if s.reader == nil {
		return nil, apperrors.NewInternalError("reading extraction is not configured", nil)
	}

	result, err := s.analyze(ctx, imageURL)
	if err != nil {
		return nil, err
	}

	ocrResult := &models.OCRResult{ExpectedReading: expectedReading}
	if result.Region == nil {
		ocrResult.NoReading = true
	} else {
		reading, err := s.reader.ExtractReading(ctx, result.Region)
		switch {
		case err == nil:
			ocrResult.Reading = reading
			s.notify(ctx, observer.ReadingExtracted, imageURL, result, "")
		case errors.Is(err, ocr.ErrNoReading):
			ocrResult.NoReading = true
		default:
			ocrResult.OCRError = err.Error()
		}
	}
	if expectedReading != "" && ocrResult.Reading != "" {
		ocrResult.CER = ocr.CharacterErrorRate(expectedReading, ocrResult.Reading)
		ocrResult.WER = ocr.WordErrorRate(expectedReading, ocrResult.Reading)
	}
	result.OCRResult = ocrResult

	return s.convertToResponse(imageURL, result), nil
}

// analyze runs validation, fetch and analysis, serving repeat URLs from the
// cache. OCR output is never cached; it is recomputed per request.
func (s *meterAnalysisService) analyze(ctx context.Context, imageURL string) (*models.MeterAnalysis, error) {
	if err := s.ValidateImageSource(imageURL); err != nil {
		return nil, apperrors.NewValidationError("invalid image source", err)
	}

	if cached, ok := s.cache.GetIfPresent(imageURL); ok {
		cached.OCRResult = nil
		return &cached, nil
	}

	s.notify(ctx, observer.AnalysisStarted, imageURL, nil, "")

	img, err := s.imageRepo.FetchImage(ctx, imageURL)
	if err != nil {
		s.notify(ctx, observer.ImageFetchFailed, imageURL, nil, err.Error())
		return nil, apperrors.NewNetworkError("failed to fetch image", err)
	}
	s.notify(ctx, observer.ImageFetched, imageURL, nil, "")

	result, err := s.analyzer.Analyze(img)
	if err != nil {
		s.notify(ctx, observer.AnalysisFailed, imageURL, nil, err.Error())
		return nil, err
	}
	result.Source = imageURL

	s.cache.Set(imageURL, result)
	s.notify(ctx, observer.AnalysisCompleted, imageURL, &result, "")
	return &result, nil
}

// ValidateImageSource validates the image source.
func (s *meterAnalysisService) ValidateImageSource(imageURL string) error {
	return s.imageRepo.ValidateImageSource(imageURL)
}

func (s *meterAnalysisService) notify(ctx context.Context, eventType observer.EventType, source string, result *models.MeterAnalysis, errMsg string) {
	if s.publisher == nil {
		return
	}
	event := observer.AnalysisEvent{
		EventType:    eventType,
		Timestamp:    time.Now(),
		Source:       source,
		Success:      errMsg == "",
		ErrorMessage: errMsg,
	}
	if result != nil {
		event.MeterType = result.MeterType
		event.ProcessingTime = time.Duration(result.ProcessingTimeSec * float64(time.Second))
	}
	s.publisher.NotifyObservers(ctx, event)
}

// convertToResponse converts an analysis to its wire form.
func (s *meterAnalysisService) convertToResponse(imageURL string, result *models.MeterAnalysis) *models.AnalysisResponse {
	response := &models.AnalysisResponse{
		ImageURL:          imageURL,
		Timestamp:         result.Timestamp.Format(time.RFC3339),
		ProcessingTimeSec: result.ProcessingTimeSec,
		MeterType:         result.MeterType,
		Coverage:          result.Coverage,
		Metrics:           result.Metrics,
		OCRResult:         result.OCRResult,
	}
	if result.Region != nil {
		b := result.Region.Bounds
		response.Region = &models.RegionResponse{
			X:      b.Min.X,
			Y:      b.Min.Y,
			Width:  b.Dx(),
			Height: b.Dy(),
			Mass:   result.Region.Candidate.Mass,
		}
	}
	return response
}
