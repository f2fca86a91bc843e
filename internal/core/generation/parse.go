package generation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"castads/internal/core/domain"
	"castads/internal/core/invoke"
)

const defaultDuration = 30

var (
	errMissingScript    = errors.New("ad reply is missing script")
	errMissingPlacement = errors.New("ad reply is missing placement")
)

// parseAdContent decodes the structured ad reply. script and placement must
// be present; an empty placement defaults to mid-roll and a missing or
// non-positive duration to 30 seconds.
func parseAdContent(text string) (domain.AdContent, error) {
	raw, err := invoke.ExtractJSON(text)
	if err != nil {
		return domain.AdContent{}, err
	}
	var fields map[string]json.RawMessage
	if err = json.Unmarshal([]byte(raw), &fields); err != nil {
		return domain.AdContent{}, fmt.Errorf("decode ad reply: %w", err)
	}

	var ad domain.AdContent
	scriptRaw, ok := fields["script"]
	if !ok {
		return domain.AdContent{}, errMissingScript
	}
	if err = json.Unmarshal(scriptRaw, &ad.Script); err != nil {
		return domain.AdContent{}, fmt.Errorf("decode script: %w", err)
	}
	ad.Script = strings.TrimSpace(ad.Script)
	if ad.Script == "" {
		return domain.AdContent{}, errMissingScript
	}

	placementRaw, ok := fields["placement"]
	if !ok {
		return domain.AdContent{}, errMissingPlacement
	}
	var placement string
	if err = json.Unmarshal(placementRaw, &placement); err != nil {
		return domain.AdContent{}, fmt.Errorf("decode placement: %w", err)
	}
	if placement = strings.ToLower(strings.TrimSpace(placement)); placement == "" {
		ad.Placement = domain.PlacementMidRoll
	} else if ad.Placement, ok = domain.ParsePlacementKind(placement); !ok {
		return domain.AdContent{}, fmt.Errorf("unknown placement %q", placement)
	}

	ad.Duration = parseDuration(fields["duration"])
	ad.RequiredElements = parseStrings(fields["requiredElements"])
	ad.StyleNotes = parseStrings(fields["styleNotes"])
	return ad, nil
}

func parseDuration(raw json.RawMessage) int {
	if len(raw) == 0 {
		return defaultDuration
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		if f > 0 {
			return int(f + 0.5)
		}
		return defaultDuration
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSuffix(strings.TrimSpace(s), "s")
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && n > 0 {
			return n
		}
	}
	return defaultDuration
}

// parseStrings accepts either a JSON string array or a single string.
func parseStrings(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return compact(list)
	}
	var one string
	if err := json.Unmarshal(raw, &one); err == nil && strings.TrimSpace(one) != "" {
		return []string{strings.TrimSpace(one)}
	}
	return nil
}

func compact(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// parseEmbedded accepts a merged script only when it carries both markers in
// order.
func parseEmbedded(text string) (string, error) {
	merged := strings.TrimSpace(text)
	merged = strings.TrimPrefix(merged, "```")
	merged = strings.TrimSuffix(merged, "```")
	if !HasMarkers(merged) {
		return "", errors.New("merged script lacks ad markers")
	}
	return strings.TrimSpace(merged), nil
}

// parseVariation accepts a structured reply or, failing that, bare copy.
func parseVariation(text string) (string, error) {
	if raw, err := invoke.ExtractJSON(text); err == nil {
		var v struct {
			Script string `json:"script"`
		}
		if json.Unmarshal([]byte(raw), &v) == nil && strings.TrimSpace(v.Script) != "" {
			return strings.TrimSpace(v.Script), nil
		}
	}
	s := strings.TrimSpace(text)
	if s == "" || strings.HasPrefix(s, "{") {
		return "", errors.New("variation reply has no usable script")
	}
	return s, nil
}
