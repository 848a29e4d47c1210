package itinerary

import (
	"fmt"
	"strings"
)

// BuildPrompt renders the single generation request this service issues.
func BuildPrompt(prefs Preferences) string {
	tags := make([]string, len(Tags))
	for i, t := range Tags {
		tags[i] = string(t)
	}

	var themes string
	if len(prefs.Themes) > 0 {
		themes = fmt.Sprintf("\nThey are especially interested in: %s.", strings.Join(prefs.Themes, ", "))
	}

	return fmt.Sprintf(`You are an expert travel planner.

Create a daily itinerary for a trip to %s from %s through %s (inclusive) for %d people with an approximate budget of INR %.0f.
The travelers prefer a %s vibe.%s

Requirements:
- Include every day from the start date through the end date (inclusive).
- Provide exactly three activities per day.
- Use realistic times between 08:00 and 22:00 in chronological order.
- Tailor activity choices to the requested mood.
- Estimate the realistic total cost of this plan for the whole party in INR as "total_budget". Do not repeat the budget above.
- Write "destination_blurb" as a single line of at most %d characters.

Return strict JSON only, with the structure:
{
  "city": "...",
  "destination_blurb": "...",
  "total_budget": 0,
  "days": [
    {
      "date": "YYYY-MM-DD",
      "blocks": [
        {"time": "HH:MM", "title": "...", "tag": "%s"}
      ]
    }
  ]
}
`,
		prefs.Destination, prefs.StartDate, prefs.EndDate, prefs.PartySize(), prefs.Budget,
		prefs.Mood.Label(), themes, MaxBlurbLength, strings.Join(tags, "|"))
}
