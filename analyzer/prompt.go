package analyzer

import (
	"fmt"
	"strings"
)

// BuildPrompt produces the coaching prompt for one gameplay video. The model
// is asked to weigh 6-8 success factors, narrow to the 4-5 most critical,
// enumerate every mistake with a timestamp and a better alternative, and
// answer strictly in the JSON shape of AnalysisRecord. When focus is
// non-empty a special-focus clause steers the breakdown toward that aspect
// of play; otherwise the clause is omitted.
func BuildPrompt(game, focus string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an expert video game coach specializing in analyzing gameplay for %s.\n", game)
	b.WriteString("Your task is to analyze a gameplay video and provide a comprehensive, mistake-focused breakdown based on the game's mechanics, strategies, and execution.\n\n")

	b.WriteString("### Step 1: Identify Key Focus Areas for Analysis\n")
	fmt.Fprintf(&b, "- Before analyzing the video, list at least 6-8 key factors that influence success in %s.\n", game)
	b.WriteString("- These could include mechanics, strategy, decision-making, positioning, adaptability, execution, etc.\n")
	b.WriteString("- Weigh their importance before selecting the 4-5 most critical areas for identifying mistakes.\n\n")

	b.WriteString("### Step 2: Extract and List All Mistakes & Better Alternatives\n")
	b.WriteString("Provide an exhaustive breakdown of all major mistakes made by the player, along with better choices they could have made.\n")
	b.WriteString("- Each mistake must be accompanied by a timestamp and a specific explanation of why it was incorrect.\n")
	b.WriteString("- Provide a clearly superior alternative action with a rationale for why it would have been better.\n\n")

	if focus != "" {
		fmt.Fprintf(&b, "### Special Focus: %s\n", focus)
		fmt.Fprintf(&b, "- Pay particular attention to %s when analyzing the gameplay.\n", focus)
		fmt.Fprintf(&b, "- Identify mistakes, missed opportunities, and better alternatives specifically related to %s.\n", focus)
		fmt.Fprintf(&b, "- Ensure the breakdown prioritizes improvements in %s over other areas.\n\n", focus)
	}

	b.WriteString("### Output Format:\n")
	b.WriteString("Return the analysis strictly in the following JSON format:\n")
	fmt.Fprintf(&b, schemaTemplate, game)
	b.WriteString("\n\n### Important Instructions:\n")
	b.WriteString("- Only return JSON output, do not include any additional text.\n")
	b.WriteString("- Focus exclusively on mistakes, missed opportunities, and better alternatives.\n")
	b.WriteString("- Do not include strengths or positive feedback.\n")
	b.WriteString("- Always include timestamps when referring to gameplay moments.\n")
	b.WriteString("- Ensure all explanations are specific, structured, and actionable.\n")
	b.WriteString("- Provide alternatives in a way that makes it clear how the player should adjust their playstyle.\n")
	b.WriteString("- Do not include unnecessary conversational elements, only return the structured JSON output.")

	return b.String()
}

const schemaTemplate = "```json\n" + `{
  "game": %q,
  "key_focus_areas": [
    "Factor 1",
    "Factor 2",
    "Factor 3",
    "Factor 4"
  ],
  "mistakes": [
    {
      "timestamp": "00:00:00",
      "description": "Brief mistake description.",
      "why_incorrect": "Explanation of why this mistake is bad.",
      "better_alternative": "What should have been done instead.",
      "expected_benefit": "Why the alternative is superior."
    }
  ],
  "repeated_errors": [
    {
      "pattern": "Description of recurring mistake.",
      "occurrences": ["00:01:30", "00:04:15"],
      "fix": "Advice on how to correct this mistake."
    }
  ],
  "missed_opportunities": [
    {
      "timestamp": "00:02:45",
      "missed_action": "What could have been done instead.",
      "expected_outcome": "Benefit of the missed opportunity."
    }
  ]
}` + "\n```"
