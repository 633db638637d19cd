package ocr

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"

	"github.com/mtornqvi/go-meter-scan/internal/logger"
	"github.com/mtornqvi/go-meter-scan/pkg/models"
	"github.com/sirupsen/logrus"
)

// ErrNoReading is returned when no plausible meter reading can be extracted
// from the display crop. Callers must treat this as a normal, frequent
// outcome, not a failure to propagate.
var ErrNoReading = errors.New("no reading detected")

// Reader extracts a numeric reading from a cropped display region. The
// analysis core treats it as an opaque, possibly failing collaborator.
type Reader interface {
	ExtractReading(ctx context.Context, region *models.CroppedRegion) (string, error)
}

// readingWhitelist restricts Tesseract to digits and the decimal dot; meter
// displays carry nothing else worth keeping.
const readingWhitelist = "0123456789."

// pageSegModes tried per preprocessing variant: single line, single word
// and raw line. Display readings are one line of digits, but which mode
// copes with a given photo varies with glare and contrast.
var pageSegModes = []gosseract.PageSegMode{
	gosseract.PSM_SINGLE_LINE,
	gosseract.PSM_SINGLE_WORD,
	gosseract.PSM_RAW_LINE,
}

// TesseractReader implements Reader with gosseract. Each call preprocesses
// the crop into several variants and OCRs each one; the most plausible
// candidate across all passes wins.
type TesseractReader struct {
	language string
}

// NewTesseractReader creates a reading extractor backed by Tesseract.
func NewTesseractReader() *TesseractReader {
	return &TesseractReader{language: "eng"}
}

// ExtractReading runs the multi-pass OCR strategy against the crop.
// Returns ErrNoReading when every pass comes up empty.
func (r *TesseractReader) ExtractReading(ctx context.Context, region *models.CroppedRegion) (string, error) {
	if region == nil || region.Image == nil {
		return "", ErrNoReading
	}

	variants := buildVariants(region.Image)

	var candidates []string
	for _, v := range variants {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		tmp, err := os.CreateTemp("", "meter-ocr-*.png")
		if err != nil {
			return "", fmt.Errorf("ocr temp file: %w", err)
		}
		_ = tmp.Close()
		if err := imaging.Save(v.img, tmp.Name()); err != nil {
			_ = os.Remove(tmp.Name())
			return "", fmt.Errorf("ocr temp save: %w", err)
		}

		for _, psm := range pageSegModes {
			text, err := r.recognize(tmp.Name(), psm)
			if err != nil {
				logger.WithError(err).WithFields(logrus.Fields{
					"variant": v.name,
					"psm":     int(psm),
				}).Debug("OCR pass failed")
				continue
			}
			candidates = append(candidates, extractCandidates(text)...)
		}
		_ = os.Remove(tmp.Name())
	}

	reading, ok := chooseReading(candidates)
	if !ok {
		return "", ErrNoReading
	}
	return reading, nil
}

func (r *TesseractReader) recognize(path string, psm gosseract.PageSegMode) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(r.language); err != nil {
		return "", err
	}
	if err := client.SetWhitelist(readingWhitelist); err != nil {
		return "", err
	}
	if err := client.SetPageSegMode(psm); err != nil {
		return "", err
	}
	if err := client.SetImage(path); err != nil {
		return "", err
	}
	return client.Text()
}
