package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DecodeJSON unmarshals a model response into out, tolerating markdown
// code fences and surrounding prose around the JSON body.
func DecodeJSON(raw string, out any) error {
	body := stripCodeFences(raw)
	if err := json.Unmarshal([]byte(body), out); err == nil {
		return nil
	}
	if s := firstJSON(body); s != "" {
		if err := json.Unmarshal([]byte(s), out); err != nil {
			return fmt.Errorf("decode model json: %w", err)
		}
		return nil
	}
	return fmt.Errorf("decode model json: no JSON object found in response")
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	return s
}

// firstJSON scans for the first balanced {...} block.
func firstJSON(s string) string {
	start := -1
	depth := 0
	for i, r := range s {
		switch r {
		case '{':
			if start == -1 {
				start = i
			}
			depth++
		case '}':
			if start != -1 {
				depth--
				if depth == 0 {
					return s[start : i+1]
				}
			}
		}
	}
	return ""
}
