package analyzer

import (
	"math"

	"github.com/mtornqvi/go-meter-scan/pkg/models"
)

// selectRegion filters candidates by geometry and picks the best survivor.
// Each filter is a hard cut: a candidate outside the aspect band or area
// band is discarded no matter how massive it is. Among survivors the winner
// has the greatest mass, ties broken by largest area, then by smallest
// distance of its center to the image center. Returns false when nothing
// survives; that absence is the designed failure path, not an error.
func selectRegion(candidates []models.CandidateRegion, width, height int, opts AnalysisOptions) (models.CandidateRegion, bool) {
	totalArea := float64(width * height)
	if totalArea == 0 {
		return models.CandidateRegion{}, false
	}
	cx, cy := float64(width)/2, float64(height)/2

	var best models.CandidateRegion
	bestDist := math.Inf(1)
	found := false

	for _, cand := range candidates {
		aspect := cand.AspectRatio()
		if aspect < opts.MinAspectRatio || aspect > opts.MaxAspectRatio {
			continue
		}
		areaFrac := float64(cand.Area()) / totalArea
		if areaFrac < opts.MinAreaFraction || areaFrac > opts.MaxAreaFraction {
			continue
		}

		ccx, ccy := cand.Center()
		dist := math.Hypot(ccx-cx, ccy-cy)

		switch {
		case !found:
		case cand.Mass != best.Mass:
			if cand.Mass < best.Mass {
				continue
			}
		case cand.Area() != best.Area():
			if cand.Area() < best.Area() {
				continue
			}
		default:
			if dist >= bestDist {
				continue
			}
		}

		best = cand
		bestDist = dist
		found = true
	}

	return best, found
}
