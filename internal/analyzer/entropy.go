package analyzer

import (
	"math"
	"unicode/utf8"
)

// highEntropyThreshold is the entropy in bits above which an authority is
// considered algorithmically generated.
const highEntropyThreshold = 3.8

// Entropy returns the Shannon entropy in bits of the character distribution
// of s. Characters are runes, not bytes. The empty string has entropy 0.
func Entropy(s string) float64 {
	total := utf8.RuneCountInString(s)
	if total == 0 {
		return 0
	}

	counts := make(map[rune]int)
	for _, r := range s {
		counts[r]++
	}

	var h float64
	n := float64(total)
	for _, c := range counts {
		p := float64(c) / n
		h -= p * math.Log2(p)
	}
	return h
}
