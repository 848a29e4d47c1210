package itinerary

import "strings"

// NormalizedDraft is the canonical shape produced from untrusted model output.
// TotalBudget is kept exactly as the model supplied it until reconciliation.
type NormalizedDraft struct {
	City        string
	Days        []DayPlan
	TotalBudget any
	Blurb       string
}

// Normalize reshapes a decoded model response into a NormalizedDraft. It never
// fails: missing or mistyped fields degrade to defaults, and a response with
// neither days nor top-level blocks yields zero days.
//
// Block fields are copied without checking the tag vocabulary or time format.
// Entries in a blocks list that are not records carry no fields and are skipped.
func Normalize(raw map[string]any, prefs Preferences) NormalizedDraft {
	out := NormalizedDraft{City: prefs.Destination}
	if city, ok := raw["city"].(string); ok && strings.TrimSpace(city) != "" {
		out.City = city
	}

	if rawDays, ok := raw["days"].([]any); ok {
		for _, d := range rawDays {
			day, ok := d.(map[string]any)
			if !ok {
				continue
			}
			out.Days = append(out.Days, DayPlan{
				Date:   dateOr(day["date"], prefs.StartDate),
				Blocks: blocksFrom(day["blocks"]),
			})
		}
	}

	if len(out.Days) == 0 {
		if rawBlocks, ok := raw["blocks"].([]any); ok && len(rawBlocks) > 0 {
			out.Days = append(out.Days, DayPlan{
				Date:   dateOr(raw["date"], prefs.StartDate),
				Blocks: blocksFrom(rawBlocks),
			})
		}
	}

	if v, ok := raw["total_budget"]; ok {
		out.TotalBudget = v
	}
	out.Blurb = blurbFrom(raw)
	return out
}

func dateOr(v any, def string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return def
}

func blocksFrom(v any) []ActivityBlock {
	list, ok := v.([]any)
	if !ok {
		return []ActivityBlock{}
	}
	blocks := make([]ActivityBlock, 0, len(list))
	for _, item := range list {
		rec, ok := item.(map[string]any)
		if !ok {
			continue
		}
		blocks = append(blocks, blockFrom(rec))
	}
	return blocks
}

func blockFrom(rec map[string]any) ActivityBlock {
	b := ActivityBlock{
		Time:  stringField(rec, "time"),
		Title: stringField(rec, "title"),
		Tag:   Tag(stringField(rec, "tag")),
	}
	if id := stringField(rec, "place_id"); id != "" {
		b.PlaceID = id
	}
	if lat, ok := rec["lat"].(float64); ok {
		b.Lat = &lat
	}
	if lng, ok := rec["lng"].(float64); ok {
		b.Lng = &lng
	}
	return b
}

func stringField(rec map[string]any, key string) string {
	s, _ := rec[key].(string)
	return s
}

// blurbFrom prefers the snake-case key and falls back to camel case when the
// former is absent or blank.
func blurbFrom(raw map[string]any) string {
	for _, key := range []string{"destination_blurb", "destinationBlurb"} {
		if s, ok := raw[key].(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return TruncateBlurb(s)
			}
		}
	}
	return ""
}

// TruncateBlurb caps s at MaxBlurbLength characters.
func TruncateBlurb(s string) string {
	r := []rune(s)
	if len(r) <= MaxBlurbLength {
		return s
	}
	return string(r[:MaxBlurbLength])
}
