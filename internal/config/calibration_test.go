package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCalibrationFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "calibration.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write calibration file: %v", err)
	}
	return path
}

func TestLoadCalibration_EmptyPathReturnsDefaults(t *testing.T) {
	cal, err := LoadCalibration("")
	if err != nil {
		t.Fatalf("LoadCalibration failed: %v", err)
	}
	if len(cal.Hot.Hues) != 1 || cal.Hot.Hues[0].Lo != 345 || cal.Hot.Hues[0].Hi != 15 {
		t.Errorf("expected default hot hues, got %+v", cal.Hot.Hues)
	}
	if cal.Cold.MinSaturation != 0.15 {
		t.Errorf("expected default saturation floor, got %f", cal.Cold.MinSaturation)
	}
}

func TestLoadCalibration_PartialOverride(t *testing.T) {
	path := writeCalibrationFile(t, `
hot:
  min_saturation: 0.25
`)

	cal, err := LoadCalibration(path)
	if err != nil {
		t.Fatalf("LoadCalibration failed: %v", err)
	}

	if cal.Hot.MinSaturation != 0.25 {
		t.Errorf("expected overridden saturation floor 0.25, got %f", cal.Hot.MinSaturation)
	}
	// Everything not mentioned stays at defaults.
	if len(cal.Hot.Hues) != 1 || cal.Hot.Hues[0].Lo != 345 {
		t.Errorf("expected default hot hues preserved, got %+v", cal.Hot.Hues)
	}
	if cal.Cold.MinValue != 0.25 {
		t.Errorf("expected default cold value floor, got %f", cal.Cold.MinValue)
	}
}

func TestLoadCalibration_HueOverride(t *testing.T) {
	path := writeCalibrationFile(t, `
cold:
  hues:
    - lo: 190
      hi: 260
`)

	cal, err := LoadCalibration(path)
	if err != nil {
		t.Fatalf("LoadCalibration failed: %v", err)
	}
	if len(cal.Cold.Hues) != 1 || cal.Cold.Hues[0].Lo != 190 || cal.Cold.Hues[0].Hi != 260 {
		t.Errorf("expected overridden cold hues, got %+v", cal.Cold.Hues)
	}
}

func TestLoadCalibration_MissingFile(t *testing.T) {
	if _, err := LoadCalibration("/nonexistent/calibration.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadCalibration_MalformedYAML(t *testing.T) {
	path := writeCalibrationFile(t, "hot: [not a mapping")
	if _, err := LoadCalibration(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}
