package analyzer

import (
	"math"

	"github.com/mtornqvi/go-meter-scan/pkg/models"
)

// classifyBezel scans the border region of the HSV grid against the hot and
// cold color profiles and returns a verdict plus the coverage ratios behind
// it. Deterministic and side effect free.
//
// The decision rule: both coverages below MinCoverage means the photo shows
// no believable bezel color; coverages within TieMargin of each other means
// the photo is ambiguous. Either way the answer is unknown rather than a
// guess.
func classifyBezel(grid *HSVGrid, opts AnalysisOptions) (models.MeterType, models.CoverageMetrics) {
	cov := models.CoverageMetrics{}
	if grid.Width == 0 || grid.Height == 0 {
		return models.MeterTypeUnknown, cov
	}

	marginX := int(float64(grid.Width) * opts.BorderMargin)
	marginY := int(float64(grid.Height) * opts.BorderMargin)

	var hotCount, coldCount, scanned int
	for y := 0; y < grid.Height; y++ {
		inYBorder := y < marginY || y >= grid.Height-marginY
		for x := 0; x < grid.Width; x++ {
			if !inYBorder && x >= marginX && x < grid.Width-marginX {
				// interior pixel; skip to the far border column
				x = grid.Width - marginX - 1
				continue
			}
			px := grid.At(x, y)
			scanned++
			if opts.Calibration.Hot.Matches(px) {
				hotCount++
			}
			if opts.Calibration.Cold.Matches(px) {
				coldCount++
			}
		}
	}

	if scanned == 0 {
		return models.MeterTypeUnknown, cov
	}

	cov.ScannedPixels = scanned
	cov.Hot = float64(hotCount) / float64(scanned)
	cov.Cold = float64(coldCount) / float64(scanned)

	switch {
	case cov.Hot < opts.MinCoverage && cov.Cold < opts.MinCoverage:
		return models.MeterTypeUnknown, cov
	case cov.Hot >= opts.MinCoverage && cov.Cold >= opts.MinCoverage &&
		math.Abs(cov.Hot-cov.Cold) <= opts.TieMargin:
		return models.MeterTypeUnknown, cov
	case cov.Hot > cov.Cold:
		return models.MeterTypeHot, cov
	default:
		return models.MeterTypeCold, cov
	}
}
