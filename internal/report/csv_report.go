package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mtornqvi/go-meter-scan/pkg/models"
)

// Sink renders a batch of meter records into a persisted tabular artifact.
type Sink interface {
	WriteRecords(records []models.MeterRecord) (string, error)
}

// CSVSink writes one CSV per batch run into a results folder, named after
// the run time so consecutive runs never clobber each other.
type CSVSink struct {
	dir string
	now func() time.Time
}

// NewCSVSink creates a sink writing into dir, creating it when needed.
func NewCSVSink(dir string) *CSVSink {
	return &CSVSink{dir: dir, now: time.Now}
}

// WriteRecords writes the batch and returns the path of the created file.
func (s *CSVSink) WriteRecords(records []models.MeterRecord) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create results folder: %w", err)
	}

	name := fmt.Sprintf("%s__meters.csv", s.now().Format("2006.01.02T15.04"))
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"filename", "captured_at", "meter_type", "reading", "error"}); err != nil {
		return "", err
	}
	for _, rec := range records {
		captured := ""
		if rec.CapturedAt != nil {
			captured = rec.CapturedAt.Format(time.RFC3339)
		}
		row := []string{rec.Filename, captured, string(rec.MeterType), rec.Reading, rec.Error}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return path, nil
}
