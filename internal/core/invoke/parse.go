package invoke

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var errNoJSON = errors.New("no JSON object in response")

// ExtractJSON returns the outermost {...} block of a model reply, tolerating
// prose or code fences around it.
func ExtractJSON(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", errNoJSON
	}
	return text[start : end+1], nil
}

// ParseUnitFloat parses a reply that must be a single decimal in [0,1].
func ParseUnitFloat(text string) (float64, error) {
	s := strings.TrimSpace(text)
	s = strings.Trim(s, "`\"'")
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a decimal: %q", truncate(text, 40))
	}
	if v < 0 || v > 1 || v != v {
		return 0, fmt.Errorf("score %v outside [0,1]", v)
	}
	return v, nil
}

// ParseYesNo parses a boolean verdict reply by its first word.
func ParseYesNo(text string) (bool, error) {
	fields := strings.Fields(strings.ToLower(text))
	if len(fields) > 0 {
		switch strings.Trim(fields[0], "`\"'.,!:;") {
		case "yes", "true":
			return true, nil
		case "no", "false":
			return false, nil
		}
	}
	return false, fmt.Errorf("not a yes/no verdict: %q", truncate(text, 40))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
