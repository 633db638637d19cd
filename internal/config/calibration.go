package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mtornqvi/go-meter-scan/internal/analyzer"
)

// calibrationFile is the on-disk shape of a site calibration. Only the
// fields present in the file override the defaults, so a deployment can
// retune one hue range without restating everything.
type calibrationFile struct {
	Hot  *profileOverride `yaml:"hot"`
	Cold *profileOverride `yaml:"cold"`
}

type profileOverride struct {
	Hues          []analyzer.HueInterval `yaml:"hues"`
	MinSaturation *float64               `yaml:"min_saturation"`
	MinValue      *float64               `yaml:"min_value"`
}

// LoadCalibration reads a YAML calibration file and merges it over the
// default profiles. An empty path returns the defaults unchanged.
func LoadCalibration(path string) (analyzer.Calibration, error) {
	cal := analyzer.DefaultCalibration()
	if path == "" {
		return cal, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cal, fmt.Errorf("read calibration file: %w", err)
	}

	var file calibrationFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cal, fmt.Errorf("parse calibration file: %w", err)
	}

	applyOverride(&cal.Hot, file.Hot)
	applyOverride(&cal.Cold, file.Cold)

	if len(cal.Hot.Hues) == 0 || len(cal.Cold.Hues) == 0 {
		return cal, fmt.Errorf("calibration file %s leaves a profile without hue ranges", path)
	}
	return cal, nil
}

func applyOverride(profile *analyzer.ColorRangeProfile, override *profileOverride) {
	if override == nil {
		return
	}
	if len(override.Hues) > 0 {
		profile.Hues = override.Hues
	}
	if override.MinSaturation != nil {
		profile.MinSaturation = *override.MinSaturation
	}
	if override.MinValue != nil {
		profile.MinValue = *override.MinValue
	}
}
