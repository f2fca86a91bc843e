package generation

import (
	"strings"

	"castads/internal/core/adscript"
	"castads/internal/core/domain"
)

// InsertionIndex returns the line index an ad of the given kind is inserted
// at in a script of n lines: intro near 20%, outro near 80%, otherwise the
// middle.
func InsertionIndex(n int, kind domain.PlacementKind) int {
	var idx int
	switch kind {
	case domain.PlacementIntro:
		idx = int(float64(n) * 0.2)
	case domain.PlacementOutro:
		idx = int(float64(n) * 0.8)
	default:
		idx = n / 2
	}
	if idx < 0 {
		return 0
	}
	if idx > n {
		return n
	}
	return idx
}

// InsertAd places the ad copy between markers at the placement's line index.
// An index falling inside an existing ad block moves to just after it.
func InsertAd(script string, ad domain.AdContent) string {
	lines := strings.Split(script, "\n")
	idx := InsertionIndex(len(lines), ad.Placement)
	for _, b := range adscript.Blocks(script) {
		if idx > b.Start && idx <= b.End {
			idx = b.End + 1
		}
	}

	out := make([]string, 0, len(lines)+3)
	out = append(out, lines[:idx]...)
	out = append(out, domain.AdStartMarker, ad.Script, domain.AdEndMarker)
	out = append(out, lines[idx:]...)
	return strings.Join(out, "\n")
}

// StripAds removes every marker-delimited ad block, returning the non-ad
// lines of the script.
func StripAds(script string) string {
	lines := strings.Split(script, "\n")
	out := make([]string, 0, len(lines))
	inAd := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == domain.AdStartMarker:
			inAd = true
		case trimmed == domain.AdEndMarker && inAd:
			inAd = false
		case !inAd:
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// HasMarkers reports whether the script carries a well-ordered ad block.
func HasMarkers(script string) bool {
	start := strings.Index(script, domain.AdStartMarker)
	if start < 0 {
		return false
	}
	return strings.Contains(script[start+len(domain.AdStartMarker):], domain.AdEndMarker)
}
