package ocr

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// minOCRWidth is the width Tesseract works comfortably at; smaller crops
// are upscaled before recognition.
const minOCRWidth = 1000

type variant struct {
	name string
	img  *image.NRGBA
}

// buildVariants prepares the preprocessing variants fed to OCR: plain
// grayscale, contrast-boosted and sharpened, globally thresholded, and
// inverted. Displays photographed under glare respond to different variants,
// so all of them are tried.
func buildVariants(src image.Image) []variant {
	gray := imaging.Grayscale(src)
	if gray.Bounds().Dx() < minOCRWidth {
		gray = imaging.Resize(gray, minOCRWidth, 0, imaging.Lanczos)
	}

	enhanced := imaging.Sharpen(imaging.AdjustContrast(gray, 20), 0.7)

	return []variant{
		{name: "gray", img: gray},
		{name: "enhanced", img: enhanced},
		{name: "binary", img: binarize(gray, 150)},
		{name: "inverted", img: imaging.Invert(gray)},
	}
}

// binarize performs a simple global threshold on a grayscale image.
func binarize(img image.Image, threshold uint8) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bb, _ := img.At(x, y).RGBA()
			gray := uint8((r + g + bb) / 3 >> 8)
			var v uint8 = 255
			if gray <= threshold {
				v = 0
			}
			out.Set(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return out
}
