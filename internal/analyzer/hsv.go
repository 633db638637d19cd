package analyzer

import (
	"image"
	"math"
	"runtime"
	"sync"
)

// HSV is a single pixel in hue/saturation/value space. Hue is in degrees
// [0,360), saturation and value in [0,1].
type HSV struct {
	H, S, V float64
}

// HSVGrid is the hue/saturation/value representation of a source image,
// stored row-major with 0-based coordinates regardless of the source
// image's bounds origin.
type HSVGrid struct {
	Width  int
	Height int
	Pix    []HSV
}

// At returns the pixel at (x, y). Callers are expected to stay in bounds.
func (g *HSVGrid) At(x, y int) HSV {
	return g.Pix[y*g.Width+x]
}

// ConvertToHSV maps every pixel of img into HSV. The conversion is pure and
// deterministic; rows are processed in parallel strips but each strip writes
// a disjoint slice of the grid, so the output never depends on scheduling.
func ConvertToHSV(img image.Image) *HSVGrid {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	grid := &HSVGrid{
		Width:  width,
		Height: height,
		Pix:    make([]HSV, width*height),
	}
	if width == 0 || height == 0 {
		return grid
	}

	numWorkers := runtime.NumCPU()
	if height < numWorkers {
		numWorkers = height
	}
	rowsPerWorker := (height + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		startY := i * rowsPerWorker
		endY := startY + rowsPerWorker
		if endY > height {
			endY = height
		}
		if startY >= endY {
			break
		}
		wg.Add(1)
		go func(startY, endY int) {
			defer wg.Done()
			for y := startY; y < endY; y++ {
				row := grid.Pix[y*width : (y+1)*width]
				for x := 0; x < width; x++ {
					r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
					row[x] = rgbToHSV(
						float64(r)/65535.0,
						float64(g)/65535.0,
						float64(b)/65535.0,
					)
				}
			}
		}(startY, endY)
	}
	wg.Wait()

	return grid
}

// rgbToHSV converts normalized RGB to HSV. Achromatic pixels get hue 0
// rather than NaN so downstream range checks always see a real number.
func rgbToHSV(r, g, b float64) HSV {
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	delta := max - min

	v := max

	var s float64
	if max > 0 {
		s = delta / max
	}

	var h float64
	switch {
	case delta == 0:
		h = 0
	case max == r:
		h = 60 * ((g - b) / delta)
	case max == g:
		h = 60 * (((b - r) / delta) + 2)
	default:
		h = 60 * (((r - g) / delta) + 4)
	}
	if h < 0 {
		h += 360
	}

	return HSV{H: h, S: s, V: v}
}
