package analyzer

// HueInterval is an inclusive hue range in degrees. An interval with
// Lo > Hi wraps through 0, which is how the red bezel range (345..15)
// is expressed.
type HueInterval struct {
	Lo float64 `yaml:"lo"`
	Hi float64 `yaml:"hi"`
}

// Contains reports whether h (degrees, [0,360)) falls inside the interval.
func (iv HueInterval) Contains(h float64) bool {
	if iv.Lo <= iv.Hi {
		return h >= iv.Lo && h <= iv.Hi
	}
	// wraparound interval
	return h >= iv.Lo || h <= iv.Hi
}

// ColorRangeProfile describes the bezel color of one meter family: a set of
// hue intervals plus saturation/value floors that exclude washed-out and
// shadowed pixels. Profiles are configuration data and immutable during
// analysis.
type ColorRangeProfile struct {
	Name          string        `yaml:"name"`
	Hues          []HueInterval `yaml:"hues"`
	MinSaturation float64       `yaml:"min_saturation"`
	MinValue      float64       `yaml:"min_value"`
}

// Matches reports whether a pixel counts toward this profile's coverage.
func (p ColorRangeProfile) Matches(px HSV) bool {
	if px.S < p.MinSaturation || px.V < p.MinValue {
		return false
	}
	for _, iv := range p.Hues {
		if iv.Contains(px.H) {
			return true
		}
	}
	return false
}

// Calibration bundles the two built-in bezel profiles. Different camera or
// lighting setups can carry their own Calibration without touching the
// algorithm.
type Calibration struct {
	Hot  ColorRangeProfile `yaml:"hot"`
	Cold ColorRangeProfile `yaml:"cold"`
}

// DefaultCalibration returns the stock hot/cold profiles. The hue ranges and
// floors match the constants the detection was originally tuned with: red
// wraps 345..15, blue spans 200..250, and only pixels with saturation above
// 0.15 and value above 0.25 are considered colored at all.
func DefaultCalibration() Calibration {
	return Calibration{
		Hot: ColorRangeProfile{
			Name:          "hot",
			Hues:          []HueInterval{{Lo: 345, Hi: 15}},
			MinSaturation: 0.15,
			MinValue:      0.25,
		},
		Cold: ColorRangeProfile{
			Name:          "cold",
			Hues:          []HueInterval{{Lo: 200, Hi: 250}},
			MinSaturation: 0.15,
			MinValue:      0.25,
		},
	}
}
