package models

// AnalysisRequest is the body of POST /analyze.
type AnalysisRequest struct {
	URL string `json:"url" binding:"required,url"`

	// ExtractReading runs the OCR adapter against the selected crop.
	ExtractReading bool `json:"extract_reading,omitempty"`

	// ExpectedReading, when set, enables accuracy scoring of the OCR output.
	ExpectedReading string `json:"expected_reading,omitempty"`
}

// AnalysisResponse is the wire form of a MeterAnalysis.
type AnalysisResponse struct {
	ImageURL          string          `json:"image_url"`
	Timestamp         string          `json:"timestamp"`
	ProcessingTimeSec float64         `json:"processing_time_sec"`
	MeterType         MeterType       `json:"meter_type"`
	Region            *RegionResponse `json:"region,omitempty"`
	Coverage          CoverageMetrics `json:"coverage"`
	Metrics           GridMetrics     `json:"metrics"`
	OCRResult         *OCRResult      `json:"ocr_result,omitempty"`
}

// RegionResponse describes the selected display region without pixel data.
type RegionResponse struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
	Mass   int `json:"mass"`
}

// ErrorResponse is the error envelope for all endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
