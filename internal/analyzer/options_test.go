package analyzer

import "testing"

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if opts.BorderMargin != 0.20 {
		t.Errorf("expected border margin 0.20, got %f", opts.BorderMargin)
	}
	if opts.MinCoverage != 0.05 {
		t.Errorf("expected coverage floor 0.05, got %f", opts.MinCoverage)
	}
	if opts.TieMargin != 0.02 {
		t.Errorf("expected tie margin 0.02, got %f", opts.TieMargin)
	}
	if opts.MinAspectRatio != 1.2 || opts.MaxAspectRatio != 6.0 {
		t.Errorf("expected aspect band [1.2, 6.0], got [%f, %f]", opts.MinAspectRatio, opts.MaxAspectRatio)
	}
	if opts.MinAreaFraction != 0.005 || opts.MaxAreaFraction != 0.60 {
		t.Errorf("expected area band [0.005, 0.60], got [%f, %f]", opts.MinAreaFraction, opts.MaxAreaFraction)
	}
	if opts.MinMassFraction != 0.001 {
		t.Errorf("expected mass floor 0.001, got %f", opts.MinMassFraction)
	}
	if opts.PaddingFraction != 0.05 {
		t.Errorf("expected padding 0.05, got %f", opts.PaddingFraction)
	}
	if opts.SkipRegionDetection {
		t.Error("expected region detection enabled by default")
	}
}

func TestClassifyOnlyOptions(t *testing.T) {
	opts := ClassifyOnlyOptions()
	if !opts.SkipRegionDetection {
		t.Error("expected region detection to be skipped")
	}
	if opts.BorderMargin != DefaultOptions().BorderMargin {
		t.Error("expected classification parameters to stay at defaults")
	}
}

func TestOptions_FluentModifiers(t *testing.T) {
	base := DefaultOptions()

	modified := base.
		WithBorderMargin(0.25).
		WithCoverageThresholds(0.10, 0.05).
		WithAspectBand(1.5, 4.0).
		WithPadding(0.10)

	if modified.BorderMargin != 0.25 {
		t.Errorf("expected border margin 0.25, got %f", modified.BorderMargin)
	}
	if modified.MinCoverage != 0.10 || modified.TieMargin != 0.05 {
		t.Errorf("expected thresholds (0.10, 0.05), got (%f, %f)", modified.MinCoverage, modified.TieMargin)
	}
	if modified.MinAspectRatio != 1.5 || modified.MaxAspectRatio != 4.0 {
		t.Errorf("expected aspect band [1.5, 4.0], got [%f, %f]", modified.MinAspectRatio, modified.MaxAspectRatio)
	}
	if modified.PaddingFraction != 0.10 {
		t.Errorf("expected padding 0.10, got %f", modified.PaddingFraction)
	}

	// Value semantics: the base options stay untouched.
	if base.BorderMargin != 0.20 || base.MinCoverage != 0.05 {
		t.Error("modifiers mutated the base options")
	}
}

func TestOptions_WithCalibration(t *testing.T) {
	custom := DefaultCalibration()
	custom.Hot.MinSaturation = 0.30

	opts := DefaultOptions().WithCalibration(custom)
	if opts.Calibration.Hot.MinSaturation != 0.30 {
		t.Errorf("expected custom saturation floor, got %f", opts.Calibration.Hot.MinSaturation)
	}
}
