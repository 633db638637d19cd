package analyzer

import "testing"

func TestHueInterval_Contains(t *testing.T) {
	testCases := []struct {
		name     string
		interval HueInterval
		hue      float64
		want     bool
	}{
		{"Inside Plain Interval", HueInterval{Lo: 200, Hi: 250}, 225, true},
		{"Below Plain Interval", HueInterval{Lo: 200, Hi: 250}, 199.9, false},
		{"Above Plain Interval", HueInterval{Lo: 200, Hi: 250}, 250.1, false},
		{"Plain Lower Edge", HueInterval{Lo: 200, Hi: 250}, 200, true},
		{"Plain Upper Edge", HueInterval{Lo: 200, Hi: 250}, 250, true},
		{"Wrap High Side", HueInterval{Lo: 345, Hi: 15}, 350, true},
		{"Wrap Low Side", HueInterval{Lo: 345, Hi: 15}, 10, true},
		{"Wrap At Zero", HueInterval{Lo: 345, Hi: 15}, 0, true},
		{"Wrap Outside", HueInterval{Lo: 345, Hi: 15}, 180, false},
		{"Wrap Just Outside High", HueInterval{Lo: 345, Hi: 15}, 344.9, false},
		{"Wrap Just Outside Low", HueInterval{Lo: 345, Hi: 15}, 15.1, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.interval.Contains(tc.hue); got != tc.want {
				t.Errorf("Contains(%f) = %v, want %v", tc.hue, got, tc.want)
			}
		})
	}
}

func TestColorRangeProfile_Matches(t *testing.T) {
	profile := ColorRangeProfile{
		Name:          "hot",
		Hues:          []HueInterval{{Lo: 345, Hi: 15}},
		MinSaturation: 0.15,
		MinValue:      0.25,
	}

	testCases := []struct {
		name string
		px   HSV
		want bool
	}{
		{"Saturated Red", HSV{H: 355, S: 0.9, V: 0.8}, true},
		{"Red At Floors", HSV{H: 5, S: 0.15, V: 0.25}, true},
		{"Washed Out Red", HSV{H: 355, S: 0.1, V: 0.8}, false},
		{"Shadowed Red", HSV{H: 355, S: 0.9, V: 0.1}, false},
		{"Blue Pixel", HSV{H: 230, S: 0.9, V: 0.8}, false},
		{"Achromatic", HSV{H: 0, S: 0, V: 1}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := profile.Matches(tc.px); got != tc.want {
				t.Errorf("Matches(%+v) = %v, want %v", tc.px, got, tc.want)
			}
		})
	}
}

func TestColorRangeProfile_MultipleIntervals(t *testing.T) {
	profile := ColorRangeProfile{
		Hues:          []HueInterval{{Lo: 0, Hi: 10}, {Lo: 100, Hi: 140}},
		MinSaturation: 0.1,
		MinValue:      0.1,
	}
	if !profile.Matches(HSV{H: 120, S: 0.5, V: 0.5}) {
		t.Error("expected second interval to match")
	}
	if profile.Matches(HSV{H: 50, S: 0.5, V: 0.5}) {
		t.Error("expected gap between intervals not to match")
	}
}

func TestDefaultCalibration(t *testing.T) {
	cal := DefaultCalibration()

	if cal.Hot.Name != "hot" || cal.Cold.Name != "cold" {
		t.Errorf("unexpected profile names: %q, %q", cal.Hot.Name, cal.Cold.Name)
	}
	if !cal.Hot.Matches(HSV{H: 350, S: 0.5, V: 0.5}) {
		t.Error("hot profile must match wrapped red")
	}
	if !cal.Cold.Matches(HSV{H: 225, S: 0.5, V: 0.5}) {
		t.Error("cold profile must match blue")
	}
	if cal.Hot.Matches(HSV{H: 225, S: 0.5, V: 0.5}) || cal.Cold.Matches(HSV{H: 350, S: 0.5, V: 0.5}) {
		t.Error("profiles must not overlap")
	}
}
