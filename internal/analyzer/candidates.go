package analyzer

import (
	"github.com/mtornqvi/go-meter-scan/pkg/models"
)

// findCandidates produces bounding box candidates for display-like areas:
// a binary mask of pale high-value pixels, a morphological closing to merge
// fragmented islands, then connected component extraction with a mass floor.
// An empty result is the designed "no display found" outcome, not an error.
func findCandidates(grid *HSVGrid, opts AnalysisOptions) []models.CandidateRegion {
	if grid.Width == 0 || grid.Height == 0 {
		return nil
	}

	mask := buildDisplayMask(grid, opts)
	if opts.ClosingRadius > 0 {
		mask = dilate(mask, grid.Width, grid.Height, opts.ClosingRadius)
		mask = erode(mask, grid.Width, grid.Height, opts.ClosingRadius)
	}

	massFloor := int(opts.MinMassFraction * float64(grid.Width*grid.Height))
	if massFloor < 1 {
		massFloor = 1
	}

	return extractComponents(mask, grid.Width, grid.Height, massFloor)
}

// buildDisplayMask marks pixels likely belonging to the display surface.
// Display glass, digits and their background tend toward white and pale
// gray, distinct from both the saturated bezel and dark shadow.
func buildDisplayMask(grid *HSVGrid, opts AnalysisOptions) []bool {
	mask := make([]bool, len(grid.Pix))
	for i, px := range grid.Pix {
		mask[i] = px.V >= opts.DisplayMinValue && px.S <= opts.DisplayMaxSaturation
	}
	return mask
}

// dilate sets every pixel whose square neighborhood contains a set pixel.
func dilate(mask []bool, width, height, radius int) []bool {
	out := make([]bool, len(mask))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if neighborhoodAny(mask, width, height, x, y, radius, true) {
				out[y*width+x] = true
			}
		}
	}
	return out
}

// erode clears every pixel whose square neighborhood contains a clear pixel.
func erode(mask []bool, width, height, radius int) []bool {
	out := make([]bool, len(mask))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !neighborhoodAny(mask, width, height, x, y, radius, false) {
				out[y*width+x] = true
			}
		}
	}
	return out
}

func neighborhoodAny(mask []bool, width, height, cx, cy, radius int, want bool) bool {
	for dy := -radius; dy <= radius; dy++ {
		y := cy + dy
		if y < 0 || y >= height {
			continue
		}
		for dx := -radius; dx <= radius; dx++ {
			x := cx + dx
			if x < 0 || x >= width {
				continue
			}
			if mask[y*width+x] == want {
				return true
			}
		}
	}
	return false
}

// extractComponents walks 4-connected components of the mask and emits one
// candidate per component at or above the mass floor. Components are visited
// in scan order, so the output ordering is deterministic.
func extractComponents(mask []bool, width, height, massFloor int) []models.CandidateRegion {
	visited := make([]bool, len(mask))
	var queue []int
	var candidates []models.CandidateRegion

	for start := range mask {
		if !mask[start] || visited[start] {
			continue
		}

		minX, minY := width, height
		maxX, maxY := 0, 0
		mass := 0

		queue = queue[:0]
		queue = append(queue, start)
		visited[start] = true

		for len(queue) > 0 {
			idx := queue[len(queue)-1]
			queue = queue[:len(queue)-1]

			x, y := idx%width, idx/width
			mass++
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}

			if x > 0 && mask[idx-1] && !visited[idx-1] {
				visited[idx-1] = true
				queue = append(queue, idx-1)
			}
			if x < width-1 && mask[idx+1] && !visited[idx+1] {
				visited[idx+1] = true
				queue = append(queue, idx+1)
			}
			if y > 0 && mask[idx-width] && !visited[idx-width] {
				visited[idx-width] = true
				queue = append(queue, idx-width)
			}
			if y < height-1 && mask[idx+width] && !visited[idx+width] {
				visited[idx+width] = true
				queue = append(queue, idx+width)
			}
		}

		if mass < massFloor {
			continue
		}
		candidates = append(candidates, models.CandidateRegion{
			X:      minX,
			Y:      minY,
			Width:  maxX - minX + 1,
			Height: maxY - minY + 1,
			Mass:   mass,
		})
	}

	return candidates
}
