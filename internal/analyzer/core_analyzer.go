package analyzer

import (
	"image"
	"time"

	apperrors "github.com/mtornqvi/go-meter-scan/internal/errors"
	"github.com/mtornqvi/go-meter-scan/pkg/models"
	"github.com/mtornqvi/go-meter-scan/pkg/validation"
)

// coreAnalyzer implements MeterAnalyzer. It holds no mutable state beyond
// its options, so a single instance is safe for concurrent use across a
// batch of photos.
type coreAnalyzer struct {
	options AnalysisOptions
}

// NewMeterAnalyzer creates an analyzer with default options.
func NewMeterAnalyzer() (MeterAnalyzer, error) {
	return NewMeterAnalyzerWithOptions(DefaultOptions())
}

// NewMeterAnalyzerWithOptions creates an analyzer with explicit options,
// typically carrying a site-specific calibration.
func NewMeterAnalyzerWithOptions(options AnalysisOptions) (MeterAnalyzer, error) {
	if err := validation.ValidateCalibrationRanges(
		options.MinCoverage, options.TieMargin, options.BorderMargin,
		options.MinAspectRatio, options.MaxAspectRatio,
	); err != nil {
		return nil, apperrors.NewValidationError("invalid analysis options", err)
	}
	return &coreAnalyzer{options: options}, nil
}

// Analyze runs the full pipeline with the analyzer's configured options.
func (ca *coreAnalyzer) Analyze(img image.Image) (models.MeterAnalysis, error) {
	return ca.AnalyzeWithOptions(img, ca.options)
}

// AnalyzeWithOptions converts the image to HSV once, then runs the bezel
// classifier and the candidate/select/crop chain against the shared grid.
// The two branches are independent; only the conversion is shared.
func (ca *coreAnalyzer) AnalyzeWithOptions(img image.Image, options AnalysisOptions) (models.MeterAnalysis, error) {
	start := time.Now()

	if err := validation.ValidateSourceImage(img); err != nil {
		return models.MeterAnalysis{}, apperrors.NewValidationError("invalid source image", err)
	}

	grid := ConvertToHSV(img)

	result := models.MeterAnalysis{
		Timestamp: start,
		Metrics:   gridMetrics(grid),
	}
	result.MeterType, result.Coverage = classifyBezel(grid, options)

	if !options.SkipRegionDetection {
		candidates := findCandidates(grid, options)
		if selected, ok := selectRegion(candidates, grid.Width, grid.Height, options); ok {
			result.Region = cropRegion(img, selected, options)
		}
	}

	result.ProcessingTimeSec = time.Since(start).Seconds()
	return result, nil
}

// Close is part of MeterAnalyzer; the core analyzer has nothing to release.
func (ca *coreAnalyzer) Close() error {
	return nil
}
