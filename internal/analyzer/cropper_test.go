package analyzer

import (
	"image"
	"testing"

	"github.com/mtornqvi/go-meter-scan/pkg/models"
)

func TestCropRegion_Padding(t *testing.T) {
	img := createTestImage(300, 200, testDark)
	cand := models.CandidateRegion{X: 100, Y: 80, Width: 100, Height: 40, Mass: 4000}

	got := cropRegion(img, cand, DefaultOptions())

	// 5% of the box's own dimensions: 5px horizontally, 2px vertically.
	want := image.Rect(95, 78, 205, 122)
	if got.Bounds != want {
		t.Errorf("expected padded bounds %v, got %v", want, got.Bounds)
	}
	if got.Image.Bounds().Dx() != want.Dx() || got.Image.Bounds().Dy() != want.Dy() {
		t.Errorf("crop pixels %v do not match bounds %v", got.Image.Bounds(), want)
	}
	if got.Candidate != cand {
		t.Errorf("expected the unpadded candidate to be preserved, got %+v", got.Candidate)
	}
}

func TestCropRegion_ClampsAtEdges(t *testing.T) {
	img := createTestImage(300, 200, testDark)

	testCases := []struct {
		name string
		cand models.CandidateRegion
	}{
		{"Top Left Corner", models.CandidateRegion{X: 0, Y: 0, Width: 100, Height: 40}},
		{"Bottom Right Corner", models.CandidateRegion{X: 200, Y: 160, Width: 100, Height: 40}},
		{"Full Width", models.CandidateRegion{X: 0, Y: 80, Width: 300, Height: 40}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := cropRegion(img, tc.cand, DefaultOptions())
			b := got.Bounds
			if b.Min.X < 0 || b.Min.Y < 0 || b.Max.X > 300 || b.Max.Y > 200 {
				t.Errorf("crop %v leaks outside the 300x200 image", b)
			}
			if b.Empty() {
				t.Errorf("crop %v is empty", b)
			}
		})
	}
}

func TestCropRegion_CopiesPixels(t *testing.T) {
	img := createTestImage(100, 80, testDark)
	fillRect(img, image.Rect(20, 30, 70, 50), testWhite)
	cand := models.CandidateRegion{X: 20, Y: 30, Width: 50, Height: 20, Mass: 1000}

	got := cropRegion(img, cand, DefaultOptions())

	// The crop owns its pixels; mutating the source must not reach it.
	r0, g0, b0, _ := got.Image.At(got.Image.Bounds().Dx()/2, got.Image.Bounds().Dy()/2).RGBA()
	fillRect(img, img.Bounds(), testRed)
	r1, g1, b1, _ := got.Image.At(got.Image.Bounds().Dx()/2, got.Image.Bounds().Dy()/2).RGBA()
	if r0 != r1 || g0 != g1 || b0 != b1 {
		t.Error("crop shares storage with the source image")
	}
	if r0 < 0xF000 {
		t.Errorf("expected a white center pixel, got r=%d", r0)
	}
}

func TestCropRegion_OffsetSource(t *testing.T) {
	// Bounds are reported 0-based even when the source has an offset
	// origin, and the pixels come from the right place.
	img := image.NewRGBA(image.Rect(50, 50, 150, 130))
	for y := 50; y < 130; y++ {
		for x := 50; x < 150; x++ {
			img.Set(x, y, testDark)
		}
	}
	// White area at 0-based (20,30)-(70,50).
	fillRect(img, image.Rect(70, 80, 120, 100), testWhite)

	cand := models.CandidateRegion{X: 20, Y: 30, Width: 50, Height: 20, Mass: 1000}
	got := cropRegion(img, cand, DefaultOptions())

	if got.Bounds.Min.X < 0 || got.Bounds.Max.X > 100 || got.Bounds.Max.Y > 80 {
		t.Errorf("expected 0-based bounds within 100x80, got %v", got.Bounds)
	}
	r, _, _, _ := got.Image.At(got.Image.Bounds().Dx()/2, got.Image.Bounds().Dy()/2).RGBA()
	if r < 0xF000 {
		t.Errorf("expected white pixels from the offset source, got r=%d", r)
	}
}
