package verification

import (
	"fmt"
	"strings"

	"castads/internal/core/domain"
)

func qualityPrompt(script string, c domain.Campaign) string {
	var b strings.Builder
	b.WriteString("You are reviewing a podcast script that contains a sponsored segment between ")
	fmt.Fprintf(&b, "%s and %s.\n", domain.AdStartMarker, domain.AdEndMarker)
	fmt.Fprintf(&b, "Sponsor: %s, product: %s, category: %s.\n", c.BrandName, c.ProductName, c.Category)
	b.WriteString("Score the integration. Reply with JSON only, every value between 0 and 1:\n")
	b.WriteString(`{"overall":0.0,"naturalness":0.0,"relevance":0.0,"engagement":0.0,"compliance":0.0,` +
		`"breakdown":{"flow_disruption":0.0,"ad_integration":0.0}}`)
	b.WriteString("\n\nScript:\n")
	b.WriteString(script)
	return b.String()
}

func compliancePrompt(adScript string) string {
	var b strings.Builder
	b.WriteString("Check this sponsored podcast segment for advertising compliance: misleading claims, ")
	b.WriteString("missing sponsorship disclosure and overly promotional language.\n")
	b.WriteString(`Reply with JSON only: {"compliant":true,"violations":[],"severity":"low|medium|high","suggestions":[]}`)
	b.WriteString("\n\nSegment:\n")
	b.WriteString(adScript)
	return b.String()
}

func requirementPrompt(script, requirement string) string {
	return fmt.Sprintf("Does the following podcast script satisfy this requirement: %q?\n"+
		"Answer with a single word, yes or no.\n\nScript:\n%s", requirement, script)
}
