package ocr

import (
	"regexp"
	"strings"
)

var readingPattern = regexp.MustCompile(`\d+\.?\d*`)

// minReadingDigits filters out fragments: a real meter reading carries at
// least this many digits.
const minReadingDigits = 3

// extractCandidates pulls plausible numeric readings out of raw OCR text.
func extractCandidates(text string) []string {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, " ", "")
	text = strings.ReplaceAll(text, ",", ".")

	var out []string
	for _, m := range readingPattern.FindAllString(text, -1) {
		if digitCount(m) >= minReadingDigits {
			out = append(out, m)
		}
	}
	return out
}

// chooseReading picks the best candidate across all OCR passes: the longest
// reading containing a decimal point, falling back to the longest overall.
// Meter displays show fractional units, so a decimal-bearing match is more
// likely the full reading than a longer integer fragment.
func chooseReading(candidates []string) (string, bool) {
	if len(candidates) == 0 {
		return "", false
	}

	best := ""
	bestDecimal := false
	for _, c := range candidates {
		hasDecimal := strings.Contains(c, ".")
		switch {
		case hasDecimal && !bestDecimal:
		case hasDecimal == bestDecimal && digitCount(c) > digitCount(best):
		default:
			continue
		}
		best = c
		bestDecimal = hasDecimal
	}
	return best, best != ""
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
