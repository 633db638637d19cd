package analyzer

// AnalysisOptions provides flexible configuration for meter photo analysis.
// All numeric thresholds started life as empirically tuned constants; they
// are carried here as named parameters so a deployment can recalibrate for
// its camera and lighting without touching the algorithm.
type AnalysisOptions struct {
	// Calibration holds the hot/cold bezel color profiles.
	Calibration Calibration

	// BorderMargin is the fraction of each edge scanned by the bezel
	// classifier. The bezel surrounds the display, so scanning the full
	// frame would let the display's own content dominate the counts.
	BorderMargin float64

	// MinCoverage is the coverage ratio a profile must reach before its
	// color is believed at all.
	MinCoverage float64

	// TieMargin is the coverage difference below which hot and cold are
	// considered tied and the classifier refuses to guess.
	TieMargin float64

	// Display mask thresholds. The display glass and digits tend toward
	// white and pale gray: high value, low-to-moderate saturation.
	DisplayMinValue      float64
	DisplayMaxSaturation float64

	// ClosingRadius is the square kernel radius of the morphological
	// closing that merges fragmented mask islands.
	ClosingRadius int

	// MinMassFraction is the component mass floor as a fraction of total
	// image pixels; smaller components are noise survivors.
	MinMassFraction float64

	// Geometric cuts applied by the region selector.
	MinAspectRatio  float64
	MaxAspectRatio  float64
	MinAreaFraction float64
	MaxAreaFraction float64

	// PaddingFraction expands the selected box on each side by this
	// fraction of the box's own width/height before cropping, so digit
	// edges are not clipped.
	PaddingFraction float64

	// SkipRegionDetection classifies the bezel only, leaving the region
	// nil. Used by the classify-only strategy.
	SkipRegionDetection bool
}

// DefaultOptions returns default analysis options.
func DefaultOptions() AnalysisOptions {
	return AnalysisOptions{
		Calibration:          DefaultCalibration(),
		BorderMargin:         0.20,
		MinCoverage:          0.05,
		TieMargin:            0.02,
		DisplayMinValue:      0.55,
		DisplayMaxSaturation: 0.35,
		ClosingRadius:        1,
		MinMassFraction:      0.001,
		MinAspectRatio:       1.2,
		MaxAspectRatio:       6.0,
		MinAreaFraction:      0.005,
		MaxAreaFraction:      0.60,
		PaddingFraction:      0.05,
		SkipRegionDetection:  false,
	}
}

// ClassifyOnlyOptions returns options that skip display detection entirely.
func ClassifyOnlyOptions() AnalysisOptions {
	opts := DefaultOptions()
	opts.SkipRegionDetection = true
	return opts
}

// WithCalibration replaces the bezel color profiles.
func (opts AnalysisOptions) WithCalibration(cal Calibration) AnalysisOptions {
	opts.Calibration = cal
	return opts
}

// WithBorderMargin sets the bezel scan margin fraction.
func (opts AnalysisOptions) WithBorderMargin(margin float64) AnalysisOptions {
	opts.BorderMargin = margin
	return opts
}

// WithCoverageThresholds sets the minimum coverage and tie margin.
func (opts AnalysisOptions) WithCoverageThresholds(minCoverage, tieMargin float64) AnalysisOptions {
	opts.MinCoverage = minCoverage
	opts.TieMargin = tieMargin
	return opts
}

// WithAspectBand sets the valid aspect ratio band for display candidates.
func (opts AnalysisOptions) WithAspectBand(min, max float64) AnalysisOptions {
	opts.MinAspectRatio = min
	opts.MaxAspectRatio = max
	return opts
}

// WithPadding sets the crop padding fraction.
func (opts AnalysisOptions) WithPadding(fraction float64) AnalysisOptions {
	opts.PaddingFraction = fraction
	return opts
}
