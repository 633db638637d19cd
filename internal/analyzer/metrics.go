package analyzer

import (
	"gonum.org/v1/gonum/stat"

	"github.com/mtornqvi/go-meter-scan/pkg/models"
)

// metricsSampleCap bounds how many pixels feed the summary statistics.
// Sampling uses a fixed stride, so the same image always yields the same
// metrics.
const metricsSampleCap = 200_000

// gridMetrics summarizes saturation and value across the grid. The numbers
// are diagnostic only; classification never reads them, but an operator
// recalibrating thresholds for a new camera setup does.
func gridMetrics(grid *HSVGrid) models.GridMetrics {
	n := len(grid.Pix)
	if n == 0 {
		return models.GridMetrics{}
	}

	stride := 1
	if n > metricsSampleCap {
		stride = n / metricsSampleCap
	}

	sats := make([]float64, 0, n/stride+1)
	vals := make([]float64, 0, n/stride+1)
	for i := 0; i < n; i += stride {
		sats = append(sats, grid.Pix[i].S)
		vals = append(vals, grid.Pix[i].V)
	}

	m := models.GridMetrics{
		MeanSaturation: stat.Mean(sats, nil),
		MeanValue:      stat.Mean(vals, nil),
	}
	// sample stddev needs at least two observations
	if len(sats) > 1 {
		m.SaturationStdDev = stat.StdDev(sats, nil)
		m.ValueStdDev = stat.StdDev(vals, nil)
	}
	return m
}
