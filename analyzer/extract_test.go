package analyzer

import (
	"errors"
	"strings"
	"testing"
)

// exampleJSON is a response matching the requested schema.
const exampleJSON = `{
  "game": "EA FC 24",
  "key_focus_areas": ["Positioning", "Passing", "Defending", "Finishing"],
  "mistakes": [
    {
      "timestamp": "00:01:12",
      "description": "Rushed the keeper out of the box.",
      "why_incorrect": "Left the goal open for a lob.",
      "better_alternative": "Jockey with a defender instead.",
      "expected_benefit": "Keeps the goal covered."
    }
  ],
  "repeated_errors": [
    {
      "pattern": "Sprinting into crowded midfield",
      "occurrences": ["00:01:30", "00:04:15"],
      "fix": "Slow down and use short passes."
    }
  ],
  "missed_opportunities": [
    {
      "timestamp": "00:02:45",
      "missed_action": "Through ball to the open winger.",
      "expected_outcome": "One-on-one with the keeper."
    }
  ]
}`

func TestExtractFromSurroundingText(t *testing.T) {
	raw := "Here is the analysis you asked for:\n" + exampleJSON + "\nHope this helps!"
	rec, err := ExtractRecord(raw)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if rec.Game != "EA FC 24" {
		t.Fatalf("game = %q", rec.Game)
	}
	if len(rec.KeyFocusAreas) != 4 || len(rec.Mistakes) != 1 {
		t.Fatalf("unexpected record shape: %+v", rec)
	}
	if rec.Mistakes[0].Timestamp != "00:01:12" {
		t.Fatalf("mistake timestamp = %q", rec.Mistakes[0].Timestamp)
	}
}

func TestExtractFromFencedBlock(t *testing.T) {
	raw := "```json\n" + exampleJSON + "\n```"
	rec, err := ExtractRecord(raw)
	if err != nil {
		t.Fatalf("extract fenced: %v", err)
	}
	if rec.RepeatedErrors[0].Pattern == "" {
		t.Fatalf("repeated error lost in fenced extraction")
	}
}

func TestExtractNoJSON(t *testing.T) {
	_, err := ExtractRecord("the model refused to answer")
	if !errors.Is(err, ErrNoJSON) {
		t.Fatalf("want ErrNoJSON, got %v", err)
	}
}

// Two independent objects in one response: the balanced scan takes the first
// one instead of swallowing everything between the outermost braces.
func TestExtractFirstObjectWins(t *testing.T) {
	raw := exampleJSON + "\nand also consider:\n" + strings.Replace(exampleJSON, "EA FC 24", "FIFA 23", 1)
	rec, err := ExtractRecord(raw)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if rec.Game != "EA FC 24" {
		t.Fatalf("expected first object, got game %q", rec.Game)
	}
}

func TestExtractBracesInsideStrings(t *testing.T) {
	raw := strings.Replace(exampleJSON, "Keeps the goal covered.", "Keeps the goal covered {even} under pressure.", 1)
	rec, err := ExtractRecord(raw)
	if err != nil {
		t.Fatalf("extract with braces in string: %v", err)
	}
	if !strings.Contains(rec.Mistakes[0].ExpectedBenefit, "{even}") {
		t.Fatalf("string content mangled: %q", rec.Mistakes[0].ExpectedBenefit)
	}
}

func TestExtractMissingRequiredKey(t *testing.T) {
	raw := strings.Replace(exampleJSON, `"key_focus_areas"`, `"focus_areas"`, 1)
	if _, err := ExtractRecord(raw); err == nil {
		t.Fatalf("missing key_focus_areas accepted")
	}
}

func TestExtractInvalidJSON(t *testing.T) {
	if _, err := ExtractRecord(`{"game": "EA FC 24",}`); err == nil {
		t.Fatalf("invalid JSON accepted")
	}
}

func TestExtractNullListsNormalized(t *testing.T) {
	raw := `{"game":"EA FC 24","key_focus_areas":null,"mistakes":[],"repeated_errors":[],"missed_opportunities":[]}`
	rec, err := ExtractRecord(raw)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if rec.KeyFocusAreas == nil {
		t.Fatalf("null list not normalized to empty")
	}
}
