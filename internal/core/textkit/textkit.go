// Package textkit holds the tokenising and overlap helpers the deterministic
// scoring fallbacks share.
package textkit

import (
	"strings"
	"unicode"
)

// Words splits s into lower-cased runs of letters and digits.
func Words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// WordSet returns the distinct words of s longer than minLen runes.
func WordSet(s string, minLen int) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range Words(s) {
		if len([]rune(w)) > minLen {
			set[w] = struct{}{}
		}
	}
	return set
}

// Jaccard returns |a∩b| / |a∪b|, or 0 when both sets are empty.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for w := range a {
		if _, ok := b[w]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

// ContainsAny reports whether lower-cased text contains any of phrases.
func ContainsAny(text string, phrases []string) bool {
	return len(Matching(text, phrases)) > 0
}

// Matching returns the phrases found in text, case-insensitively, in the
// order given.
func Matching(text string, phrases []string) []string {
	lower := strings.ToLower(text)
	var out []string
	for _, p := range phrases {
		if p != "" && strings.Contains(lower, strings.ToLower(p)) {
			out = append(out, p)
		}
	}
	return out
}

// Overlap returns the fraction of want found in have, case-insensitively.
// An empty want yields 0.
func Overlap(want, have []string) float64 {
	if len(want) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(have))
	for _, h := range have {
		set[strings.ToLower(strings.TrimSpace(h))] = struct{}{}
	}
	hit := 0
	for _, w := range want {
		if _, ok := set[strings.ToLower(strings.TrimSpace(w))]; ok {
			hit++
		}
	}
	return float64(hit) / float64(len(want))
}
