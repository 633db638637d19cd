package analyzer

import (
	"image"

	"github.com/mtornqvi/go-meter-scan/pkg/models"
)

// MeterAnalyzer defines the main interface for meter photo analysis.
type MeterAnalyzer interface {
	// Analyze classifies the bezel and extracts the display region using
	// the analyzer's configured options. The error is non-nil only for a
	// structurally invalid image; unknown type and nil region are normal
	// results.
	Analyze(img image.Image) (models.MeterAnalysis, error)

	// AnalyzeWithOptions runs one analysis with explicit options,
	// overriding the configured defaults.
	AnalyzeWithOptions(img image.Image, options AnalysisOptions) (models.MeterAnalysis, error)

	// Lifecycle management
	Close() error
}
