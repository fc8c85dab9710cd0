package analyzer

import (
	"strings"
	"testing"
)

func sampleRecord() *AnalysisRecord {
	return &AnalysisRecord{
		Game:          "EA FC 24",
		KeyFocusAreas: []string{"Positioning", "Passing"},
		Mistakes: []Mistake{
			{Timestamp: "00:01:12", Description: "Rushed the keeper", WhyIncorrect: "Goal left open", BetterAlternative: "Jockey", ExpectedBenefit: "Goal stays covered"},
			{Timestamp: "00:05:40", Description: "Wasted a counterattack", WhyIncorrect: "Too slow", BetterAlternative: "Early through ball", ExpectedBenefit: "Clear chance"},
		},
		RepeatedErrors: []RepeatedError{
			{Pattern: "Sprinting into traffic", Occurrences: []string{"00:01:30", "00:04:15"}, Fix: "Short passes"},
		},
		MissedOpportunities: []MissedOpportunity{
			{Timestamp: "00:02:45", MissedAction: "Through ball", ExpectedOutcome: "One-on-one"},
		},
	}
}

func TestFormatRoundTrip(t *testing.T) {
	out, err := FormatRecord(sampleRecord())
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	for _, want := range []string{
		"Game: EA FC 24",
		"Key Focus Areas:",
		"00:01:12",
		"00:05:40",
		"Sprinting into traffic",
		"00:01:30, 00:04:15",
		"Missed Opportunities:",
		"One-on-one",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestFormatRejectsMissingList(t *testing.T) {
	rec := sampleRecord()
	rec.KeyFocusAreas = nil
	if _, err := FormatRecord(rec); err == nil {
		t.Fatalf("record without key focus areas formatted")
	}
}

func TestFormatRejectsEmptyGame(t *testing.T) {
	rec := sampleRecord()
	rec.Game = ""
	if _, err := FormatRecord(rec); err == nil {
		t.Fatalf("record without game formatted")
	}
}
