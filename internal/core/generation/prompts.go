package generation

import (
	"fmt"
	"strings"

	"castads/internal/core/domain"
)

func episodePrompt(owner domain.ContentOwner, title, topic string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a podcast episode script for %q.\n", owner.Name)
	if owner.Voice != "" {
		fmt.Fprintf(&b, "Host voice: %s.\n", owner.Voice)
	}
	if owner.Persona != "" {
		fmt.Fprintf(&b, "Host persona: %s.\n", owner.Persona)
	}
	fmt.Fprintf(&b, "Episode title: %s.\nTopic: %s.\n", title, topic)
	b.WriteString("Write plain spoken dialogue, one paragraph per line, with no sponsor mentions.")
	return b.String()
}

func draftPrompt(owner domain.ContentOwner, c domain.Campaign, topic string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a sponsored segment for the podcast %q, read by the host.\n", owner.Name)
	if owner.Voice != "" {
		fmt.Fprintf(&b, "Host voice: %s.\n", owner.Voice)
	}
	if owner.Persona != "" {
		fmt.Fprintf(&b, "Host persona: %s.\n", owner.Persona)
	}
	if len(owner.Themes) > 0 {
		fmt.Fprintf(&b, "Podcast topics: %s.\n", strings.Join(owner.Themes, ", "))
	}
	if topic != "" {
		fmt.Fprintf(&b, "This episode is about: %s.\n", topic)
	}

	fmt.Fprintf(&b, "Sponsor: %s. Product: %s.\n", c.BrandName, c.ProductName)
	if c.Description != "" {
		fmt.Fprintf(&b, "Product description: %s.\n", c.Description)
	}
	if reqs := c.Requirements(); len(reqs) > 0 {
		fmt.Fprintf(&b, "The segment must: %s.\n", strings.Join(reqs, "; "))
	}
	rules := c.ContentRules
	if rules.Tone != "" {
		fmt.Fprintf(&b, "Tone: %s.\n", rules.Tone)
	}
	if len(rules.ForbiddenPhrases) > 0 {
		fmt.Fprintf(&b, "Never say: %s.\n", strings.Join(rules.ForbiddenPhrases, ", "))
	}
	if rules.MaxDuration > 0 {
		fmt.Fprintf(&b, "Keep it under %d seconds when read aloud.\n", rules.MaxDuration)
	}
	if len(rules.Placements) > 0 {
		fmt.Fprintf(&b, "Allowed placements: %s.\n", strings.Join(rules.Placements, ", "))
	}
	if rules.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s.\n", rules.Notes)
	}
	b.WriteString("Disclose the sponsorship and avoid unverifiable claims.\n")
	b.WriteString(`Reply with JSON only: {"script":"...","placement":"intro|mid-roll|outro|natural",` +
		`"duration":30,"requiredElements":[],"styleNotes":[]}`)
	return b.String()
}

func embedPrompt(script string, ad domain.AdContent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Insert the sponsored segment below into the podcast script as a %s placement.\n", ad.Placement)
	b.WriteString("Add a short natural transition, keep every original line unchanged, and wrap the segment in ")
	fmt.Fprintf(&b, "%s and %s on their own lines. Reply with the full merged script only.\n", domain.AdStartMarker, domain.AdEndMarker)
	b.WriteString("\nSegment:\n")
	b.WriteString(ad.Script)
	b.WriteString("\n\nScript:\n")
	b.WriteString(script)
	return b.String()
}

func variationPrompt(ad domain.AdContent, index, total int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Rewrite this sponsored podcast segment (variation %d of %d). ", index, total)
	fmt.Fprintf(&b, "Keep it a %s placement of about %d seconds", ad.Placement, ad.Duration)
	if len(ad.RequiredElements) > 0 {
		fmt.Fprintf(&b, " and keep these elements: %s", strings.Join(ad.RequiredElements, "; "))
	}
	b.WriteString(".\n")
	b.WriteString(`Reply with JSON only: {"script":"..."}`)
	b.WriteString("\n\nSegment:\n")
	b.WriteString(ad.Script)
	return b.String()
}
