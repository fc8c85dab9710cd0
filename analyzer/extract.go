package analyzer

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoJSON is returned when the model response contains no JSON object.
var ErrNoJSON = errors.New("no JSON object found in model response")

var requiredKeys = []string{"game", "key_focus_areas", "mistakes", "repeated_errors", "missed_opportunities"}

// ExtractRecord pulls the analysis JSON out of a free-text model response and
// deserializes it. The object is located with a balanced-brace scan from the
// first '{' rather than a greedy first-to-last span, so trailing prose or a
// second object after the intended one cannot corrupt the parse; when the
// response holds several objects the first one wins. Markdown code fences
// around the payload are tolerated. Extraction fails if no object exists, the
// span is not valid JSON, or any required top-level key is absent.
func ExtractRecord(raw string) (*AnalysisRecord, error) {
	span, err := jsonSpan(stripFences(raw))
	if err != nil {
		return nil, err
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal([]byte(span), &keys); err != nil {
		return nil, fmt.Errorf("invalid JSON in model response: %w", err)
	}
	for _, k := range requiredKeys {
		if _, ok := keys[k]; !ok {
			return nil, fmt.Errorf("model response missing required key %q", k)
		}
	}

	var rec AnalysisRecord
	if err := json.Unmarshal([]byte(span), &rec); err != nil {
		return nil, fmt.Errorf("model response does not match analysis schema: %w", err)
	}
	if rec.Game == "" {
		return nil, fmt.Errorf("model response has empty game name")
	}

	// A key present as null still decodes to a nil slice; the record contract
	// is present-but-possibly-empty.
	if rec.KeyFocusAreas == nil {
		rec.KeyFocusAreas = []string{}
	}
	if rec.Mistakes == nil {
		rec.Mistakes = []Mistake{}
	}
	if rec.RepeatedErrors == nil {
		rec.RepeatedErrors = []RepeatedError{}
	}
	if rec.MissedOpportunities == nil {
		rec.MissedOpportunities = []MissedOpportunity{}
	}
	return &rec, nil
}

// stripFences removes a surrounding ```json ... ``` (or bare ```) block.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	} else {
		return s
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// jsonSpan returns the first balanced top-level JSON object in s. Braces
// inside string literals (including escaped quotes) do not count toward
// nesting depth.
func jsonSpan(s string) (string, error) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", ErrNoJSON
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}
	return "", fmt.Errorf("%w: unbalanced braces", ErrNoJSON)
}
