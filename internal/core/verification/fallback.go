package verification

import (
	"fmt"
	"strings"
	"unicode"

	"castads/internal/core/domain"
	"castads/internal/core/textkit"
)

var (
	transitionPhrases = []string{
		"speaking of", "by the way", "on that note", "which reminds me",
		"before we continue", "a quick word from", "brought to you by", "today's sponsor",
	}
	redFlagPhrases = []string{
		"click here", "act now", "limited time", "buy now", "100%", "risk-free", "call now",
	}
	misleadingClaims = []string{"guaranteed", "miracle", "instant", "get rich quick"}
	requirementNoise = map[string]struct{}{
		"include": {}, "includes": {}, "including": {}, "mention": {}, "mentions": {}, "must": {},
		"should": {}, "say": {}, "says": {}, "state": {}, "use": {}, "the": {}, "and": {},
		"with": {}, "that": {}, "this": {}, "from": {}, "about": {}, "our": {}, "your": {},
	}
)

const maxAdLength = 1000

// FallbackQuality scores merged content without the model. It looks at ad
// markers, transition phrases, script length and red-flag phrases and is
// fully deterministic.
func FallbackQuality(script string) domain.QualityScore {
	hasMarkers := strings.Contains(script, domain.AdStartMarker) && strings.Contains(script, domain.AdEndMarker)
	hasTransition := textkit.ContainsAny(script, transitionPhrases)
	redFlags := len(textkit.Matching(script, redFlagPhrases))

	integration := 0.4
	if hasMarkers {
		integration = 1
	}
	var length float64
	switch n := len(script); {
	case n < 200:
		length = 0.4
	case n > 20000:
		length = 0.6
	default:
		length = 1
	}
	naturalness := 0.55
	if hasTransition {
		naturalness += 0.3
	}
	if redFlags == 0 {
		naturalness += 0.15
	}
	disruption := 0.4
	if hasTransition {
		disruption = 0.1
	}
	if redFlags > 0 {
		disruption += 0.2
	}
	relevance := 0.5
	if hasMarkers {
		relevance += 0.2
	}
	if length == 1 {
		relevance += 0.1
	}
	engagement := 0.4 + 0.4*length
	compliance := domain.Clamp01(1 - 0.25*float64(redFlags))

	q := domain.QualityScore{
		Naturalness: domain.Clamp01(naturalness),
		Relevance:   domain.Clamp01(relevance),
		Engagement:  domain.Clamp01(engagement),
		Compliance:  compliance,
		Breakdown: map[string]float64{
			"ad_integration":  integration,
			"flow_disruption": domain.Clamp01(disruption),
			"length":          length,
			"red_flags":       domain.Clamp01(0.25 * float64(redFlags)),
		},
	}
	q.Overall = domain.Clamp01(0.3*q.Naturalness + 0.2*q.Relevance + 0.2*q.Engagement + 0.15*q.Compliance + 0.15*integration)
	return q
}

// FallbackCompliance checks ad copy against the fixed misleading-claim list,
// requires a sponsorship disclosure and flags overlong copy.
func FallbackCompliance(adScript string) domain.ComplianceResult {
	var violations, suggestions []string
	for _, claim := range textkit.Matching(adScript, misleadingClaims) {
		violations = append(violations, fmt.Sprintf("misleading claim: %q", claim))
		suggestions = append(suggestions, fmt.Sprintf("Remove or qualify %q", claim))
	}
	if !hasDisclosure(adScript) {
		violations = append(violations, "missing sponsorship disclosure")
		suggestions = append(suggestions, "State clearly that this segment is sponsored")
	}
	if len(adScript) > maxAdLength {
		violations = append(violations, fmt.Sprintf("overly promotional: ad copy exceeds %d characters", maxAdLength))
		suggestions = append(suggestions, "Shorten the ad copy")
	}
	return domain.ComplianceResult{
		Compliant:   len(violations) == 0,
		Violations:  violations,
		Severity:    domain.SeverityFor(len(violations)),
		Suggestions: suggestions,
	}
}

func hasDisclosure(text string) bool {
	for _, w := range textkit.Words(text) {
		switch {
		case w == "ad" || w == "ads":
			return true
		case strings.HasPrefix(w, "sponsor"), strings.HasPrefix(w, "advertis"), strings.HasPrefix(w, "partner"):
			return true
		}
	}
	return false
}

// FallbackRequirement decides a requirement by substring match, or by at
// least ratio of its significant terms appearing as words of the script.
func FallbackRequirement(script, requirement string, ratio float64) bool {
	req := strings.TrimSpace(requirement)
	if req == "" {
		return true
	}
	if strings.Contains(strings.ToLower(script), strings.ToLower(req)) {
		return true
	}
	terms := significantTerms(req)
	if len(terms) == 0 {
		return false
	}
	words := make(map[string]struct{})
	for _, w := range textkit.Words(script) {
		words[w] = struct{}{}
	}
	hit := 0
	for _, t := range terms {
		if _, ok := words[t]; ok {
			hit++
		}
	}
	return float64(hit)/float64(len(terms)) >= ratio
}

// significantTerms keeps words longer than three letters plus code-like
// tokens (digits or all capitals) and drops instruction noise.
func significantTerms(requirement string) []string {
	raw := strings.FieldsFunc(requirement, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	seen := make(map[string]struct{})
	var out []string
	for _, tok := range raw {
		lower := strings.ToLower(tok)
		if _, noise := requirementNoise[lower]; noise {
			continue
		}
		if len([]rune(lower)) <= 3 && !codeLike(tok) {
			continue
		}
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		out = append(out, lower)
	}
	return out
}

func codeLike(tok string) bool {
	hasLetter := false
	for _, r := range tok {
		if unicode.IsDigit(r) {
			return true
		}
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}
