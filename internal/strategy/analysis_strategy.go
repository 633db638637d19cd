package strategy

import (
	"image"

	"github.com/mtornqvi/go-meter-scan/internal/analyzer"
	"github.com/mtornqvi/go-meter-scan/pkg/models"
)

// AnalysisStrategy defines the interface for different analysis strategies
type AnalysisStrategy interface {
	Analyze(img image.Image) (models.MeterAnalysis, error)
	GetStrategyName() string
}

// FullAnalysisStrategy classifies the meter and locates its display region.
type FullAnalysisStrategy struct {
	analyzer analyzer.MeterAnalyzer
}

// NewFullAnalysisStrategy creates a new full analysis strategy
func NewFullAnalysisStrategy(a analyzer.MeterAnalyzer) AnalysisStrategy {
	return &FullAnalysisStrategy{
		analyzer: a,
	}
}

// Analyze performs classification plus region detection
func (s *FullAnalysisStrategy) Analyze(img image.Image) (models.MeterAnalysis, error) {
	return s.analyzer.Analyze(img)
}

// GetStrategyName returns the strategy name
func (s *FullAnalysisStrategy) GetStrategyName() string {
	return "full_analysis"
}

// ClassifyOnlyStrategy answers only the hot/cold question, skipping the
// display region search. Useful when the caller needs meter types in bulk
// and no readings.
type ClassifyOnlyStrategy struct {
	analyzer analyzer.MeterAnalyzer
}

// NewClassifyOnlyStrategy creates a new classify-only strategy
func NewClassifyOnlyStrategy(a analyzer.MeterAnalyzer) AnalysisStrategy {
	return &ClassifyOnlyStrategy{
		analyzer: a,
	}
}

// Analyze performs bezel classification only
func (s *ClassifyOnlyStrategy) Analyze(img image.Image) (models.MeterAnalysis, error) {
	return s.analyzer.AnalyzeWithOptions(img, analyzer.ClassifyOnlyOptions())
}

// GetStrategyName returns the strategy name
func (s *ClassifyOnlyStrategy) GetStrategyName() string {
	return "classify_only"
}

// AnalysisContext manages the analysis strategy
type AnalysisContext struct {
	strategy AnalysisStrategy
}

// NewAnalysisContext creates a new analysis context
func NewAnalysisContext(strategy AnalysisStrategy) *AnalysisContext {
	return &AnalysisContext{
		strategy: strategy,
	}
}

// SetStrategy changes the analysis strategy
func (c *AnalysisContext) SetStrategy(strategy AnalysisStrategy) {
	c.strategy = strategy
}

// ExecuteAnalysis performs analysis using the current strategy
func (c *AnalysisContext) ExecuteAnalysis(img image.Image) (models.MeterAnalysis, error) {
	return c.strategy.Analyze(img)
}

// GetCurrentStrategy returns the current strategy name
func (c *AnalysisContext) GetCurrentStrategy() string {
	return c.strategy.GetStrategyName()
}
