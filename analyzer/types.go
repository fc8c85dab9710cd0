package analyzer

// AnalysisRecord is the structured result of one video's evaluation, in the
// exact shape the model is instructed to return. All four list fields are
// non-nil on a successfully extracted record; an empty list means the model
// found nothing in that category, a missing key means extraction failed.
type AnalysisRecord struct {
	Game                string              `json:"game"`
	KeyFocusAreas       []string            `json:"key_focus_areas"`
	Mistakes            []Mistake           `json:"mistakes"`
	RepeatedErrors      []RepeatedError     `json:"repeated_errors"`
	MissedOpportunities []MissedOpportunity `json:"missed_opportunities"`
}

// Mistake is one incorrect play, anchored to a HH:MM:SS timestamp.
type Mistake struct {
	Timestamp         string `json:"timestamp"`
	Description       string `json:"description"`
	WhyIncorrect      string `json:"why_incorrect"`
	BetterAlternative string `json:"better_alternative"`
	ExpectedBenefit   string `json:"expected_benefit"`
}

// RepeatedError groups occurrences of the same mistake pattern.
type RepeatedError struct {
	Pattern     string   `json:"pattern"`
	Occurrences []string `json:"occurrences"`
	Fix         string   `json:"fix"`
}

// MissedOpportunity is a beneficial action the player failed to take.
type MissedOpportunity struct {
	Timestamp       string `json:"timestamp"`
	MissedAction    string `json:"missed_action"`
	ExpectedOutcome string `json:"expected_outcome"`
}
