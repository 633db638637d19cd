package ocr

import (
	"strings"

	"github.com/arbovm/levenshtein"
)

// CharacterErrorRate returns the normalized edit distance between an
// expected reading and an OCR result, in [0,1] for sane inputs (can exceed
// 1 when the hypothesis is much longer than the reference).
func CharacterErrorRate(expected, actual string) float64 {
	if expected == "" {
		if actual == "" {
			return 0
		}
		return 1
	}
	dist := levenshtein.Distance(expected, actual)
	return float64(dist) / float64(len([]rune(expected)))
}

// WordErrorRate is the token-level analogue of CharacterErrorRate. Readings
// are usually a single token, but OCR sometimes splits them at glare
// boundaries, which character distance alone under-penalizes.
func WordErrorRate(expected, actual string) float64 {
	ref := strings.Fields(expected)
	hyp := strings.Fields(actual)
	if len(ref) == 0 {
		if len(hyp) == 0 {
			return 0
		}
		return 1
	}
	return float64(tokenDistance(ref, hyp)) / float64(len(ref))
}

// tokenDistance is Levenshtein over token slices.
func tokenDistance(ref, hyp []string) int {
	prev := make([]int, len(hyp)+1)
	curr := make([]int, len(hyp)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ref); i++ {
		curr[0] = i
		for j := 1; j <= len(hyp); j++ {
			cost := 1
			if ref[i-1] == hyp[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(hyp)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
