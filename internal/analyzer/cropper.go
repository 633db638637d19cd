package analyzer

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/mtornqvi/go-meter-scan/pkg/models"
)

// cropRegion materializes a selected candidate as a standalone image. The
// box is expanded symmetrically by the padding fraction of its own width and
// height so digit edges survive the cut, then clamped to the source bounds.
// Pure geometry plus a pixel copy; cannot fail for a valid candidate.
func cropRegion(src image.Image, cand models.CandidateRegion, opts AnalysisOptions) *models.CroppedRegion {
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	padX := int(float64(cand.Width) * opts.PaddingFraction)
	padY := int(float64(cand.Height) * opts.PaddingFraction)

	x0 := cand.X - padX
	y0 := cand.Y - padY
	x1 := cand.X + cand.Width + padX
	y1 := cand.Y + cand.Height + padY

	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > width {
		x1 = width
	}
	if y1 > height {
		y1 = height
	}

	rect := image.Rect(x0, y0, x1, y1)
	copied := imaging.Crop(src, rect.Add(bounds.Min))

	return &models.CroppedRegion{
		Image:     copied,
		Bounds:    rect,
		Candidate: cand,
	}
}
