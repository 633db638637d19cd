package models

import (
	"image"
	"time"
)

// MeterType is the bezel-color classification of a meter photograph.
type MeterType string

const (
	// MeterTypeHot indicates a hot-water meter (red bezel).
	MeterTypeHot MeterType = "hot"
	// MeterTypeCold indicates a cold-water meter (blue bezel).
	MeterTypeCold MeterType = "cold"
	// MeterTypeUnknown indicates neither color dominated. This is a normal
	// outcome, not an error; such records should go to manual review.
	MeterTypeUnknown MeterType = "unknown"
)

// CandidateRegion is an axis-aligned bounding box produced by connected
// component extraction, before geometric filtering.
type CandidateRegion struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`

	// Mass is the number of mask pixels backing the component. It is the
	// primary ranking signal when several candidates survive filtering.
	Mass int `json:"mass"`
}

// Area returns the bounding box area in pixels.
func (r CandidateRegion) Area() int {
	return r.Width * r.Height
}

// AspectRatio returns width/height, or 0 for a degenerate box.
func (r CandidateRegion) AspectRatio() float64 {
	if r.Height == 0 {
		return 0
	}
	return float64(r.Width) / float64(r.Height)
}

// Center returns the box center in source image coordinates.
func (r CandidateRegion) Center() (float64, float64) {
	return float64(r.X) + float64(r.Width)/2, float64(r.Y) + float64(r.Height)/2
}

// CroppedRegion is a display crop copied out of a source image. It owns its
// pixels; the source image may be released after the crop is produced.
type CroppedRegion struct {
	// Image holds the copied pixels.
	Image *image.NRGBA `json:"-"`

	// Bounds is the clamped rectangle the pixels were copied from, in
	// source image coordinates (padding already applied).
	Bounds image.Rectangle `json:"bounds"`

	// Candidate is the unpadded candidate the crop was selected from.
	Candidate CandidateRegion `json:"candidate"`
}

// CoverageMetrics reports how much of the scanned bezel border matched each
// color profile.
type CoverageMetrics struct {
	Hot           float64 `json:"hot"`
	Cold          float64 `json:"cold"`
	ScannedPixels int     `json:"scanned_pixels"`
}

// GridMetrics summarizes the HSV grid. Useful when diagnosing why a photo
// classified as unknown or produced no region.
type GridMetrics struct {
	MeanSaturation   float64 `json:"mean_saturation"`
	MeanValue        float64 `json:"mean_value"`
	ValueStdDev      float64 `json:"value_std_dev"`
	SaturationStdDev float64 `json:"saturation_std_dev"`
}

// MeterAnalysis is the result of analyzing one meter photograph.
type MeterAnalysis struct {
	Source            string    `json:"source,omitempty"`
	Timestamp         time.Time `json:"timestamp"`
	ProcessingTimeSec float64   `json:"processing_time_sec"`

	// MeterType is always one of hot, cold or unknown.
	MeterType MeterType `json:"meter_type"`

	// Region is nil only when no candidate survived geometric filtering.
	Region *CroppedRegion `json:"region,omitempty"`

	Coverage CoverageMetrics `json:"coverage"`
	Metrics  GridMetrics     `json:"metrics"`

	// OCRResult is set when a reading extractor ran against the crop.
	OCRResult *OCRResult `json:"ocr_result,omitempty"`
}

// OCRResult is the outcome of the reading extractor. An empty Reading with
// NoReading set is a normal, frequent outcome.
type OCRResult struct {
	Reading   string `json:"reading,omitempty"`
	NoReading bool   `json:"no_reading,omitempty"`

	// Accuracy fields are populated only in verification runs where the
	// true reading was supplied.
	ExpectedReading string  `json:"expected_reading,omitempty"`
	CER             float64 `json:"character_error_rate,omitempty"`
	WER             float64 `json:"word_error_rate,omitempty"`

	OCRError string `json:"ocr_error,omitempty"`
}

// MeterRecord is one row handed to a report sink: the per-file bookkeeping
// around a MeterAnalysis.
type MeterRecord struct {
	Filename   string     `json:"filename"`
	CapturedAt *time.Time `json:"captured_at,omitempty"`
	MeterType  MeterType  `json:"meter_type"`
	Reading    string     `json:"reading,omitempty"`
	Error      string     `json:"error,omitempty"`
}
