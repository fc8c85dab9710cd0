package analyzer

import (
	"fmt"
	"strings"
)

// FormatRecord renders a record as the labeled plain-text report shown on the
// listing page. It refuses records that violate the extraction contract (empty
// game or a nil list) instead of papering over them.
func FormatRecord(rec *AnalysisRecord) (string, error) {
	if rec == nil {
		return "", fmt.Errorf("nil analysis record")
	}
	if rec.Game == "" {
		return "", fmt.Errorf("analysis record has empty game name")
	}
	if rec.KeyFocusAreas == nil || rec.Mistakes == nil || rec.RepeatedErrors == nil || rec.MissedOpportunities == nil {
		return "", fmt.Errorf("analysis record is missing a required list")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Game: %s\n\n", rec.Game)

	b.WriteString("Key Focus Areas:\n")
	for _, area := range rec.KeyFocusAreas {
		fmt.Fprintf(&b, "- %s\n", area)
	}

	b.WriteString("\nMistakes:\n")
	for _, m := range rec.Mistakes {
		fmt.Fprintf(&b, "  Timestamp: %s\n", m.Timestamp)
		fmt.Fprintf(&b, "  Description: %s\n", m.Description)
		fmt.Fprintf(&b, "  Why Incorrect: %s\n", m.WhyIncorrect)
		fmt.Fprintf(&b, "  Better Alternative: %s\n", m.BetterAlternative)
		fmt.Fprintf(&b, "  Expected Benefit: %s\n\n", m.ExpectedBenefit)
	}

	b.WriteString("Repeated Errors:\n")
	for _, e := range rec.RepeatedErrors {
		fmt.Fprintf(&b, "  Pattern: %s\n", e.Pattern)
		fmt.Fprintf(&b, "  Occurrences: %s\n", strings.Join(e.Occurrences, ", "))
		fmt.Fprintf(&b, "  Fix: %s\n\n", e.Fix)
	}

	b.WriteString("Missed Opportunities:\n")
	for _, o := range rec.MissedOpportunities {
		fmt.Fprintf(&b, "  Timestamp: %s\n", o.Timestamp)
		fmt.Fprintf(&b, "  Missed Action: %s\n", o.MissedAction)
		fmt.Fprintf(&b, "  Expected Outcome: %s\n\n", o.ExpectedOutcome)
	}

	return b.String(), nil
}
