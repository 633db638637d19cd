package metadata

import (
	"os"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// CaptureTime extracts the capture timestamp embedded in a photo's EXIF
// block. A nil time with nil error means the photo simply carries no usable
// timestamp, which is common for forwarded or re-encoded images and is not
// an error. The error is non-nil only when the file itself cannot be read.
func CaptureTime(path string) (*time.Time, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		// no EXIF block, or one too mangled to parse
		return nil, nil
	}

	// DateTime falls back from DateTimeOriginal to DateTime internally.
	t, err := x.DateTime()
	if err != nil {
		return nil, nil
	}
	return &t, nil
}
