package validation

import (
	"errors"
	"fmt"
	"image"
)

// ErrNilImage indicates a nil source image was passed to the analyzer.
var ErrNilImage = errors.New("source image is nil")

// ValidateSourceImage checks the structural preconditions the analysis
// pipeline assumes: a non-nil image with positive dimensions. A failure here
// is fatal for that single image and retrying the same input cannot succeed.
func ValidateSourceImage(img image.Image) error {
	if img == nil {
		return ErrNilImage
	}
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return fmt.Errorf("source image has degenerate dimensions %dx%d", bounds.Dx(), bounds.Dy())
	}
	return nil
}

// ValidateCalibrationRanges checks numeric analysis parameters for internal
// consistency before an analyzer is constructed with them.
func ValidateCalibrationRanges(minCoverage, tieMargin, borderMargin, minAspect, maxAspect float64) error {
	if minCoverage < 0 || minCoverage > 1 {
		return fmt.Errorf("minimum coverage %.3f outside [0,1]", minCoverage)
	}
	if tieMargin < 0 || tieMargin > 1 {
		return fmt.Errorf("tie margin %.3f outside [0,1]", tieMargin)
	}
	if borderMargin <= 0 || borderMargin > 0.5 {
		return fmt.Errorf("border margin %.3f outside (0,0.5]", borderMargin)
	}
	if minAspect <= 0 || maxAspect <= 0 || minAspect > maxAspect {
		return fmt.Errorf("aspect band [%.2f,%.2f] is not a valid range", minAspect, maxAspect)
	}
	return nil
}
