package itinerary

import (
	"fmt"
	"time"
)

// DateRange parses the preference dates. An unreadable start date becomes
// today (UTC), an unreadable end date becomes the start date, and an end
// before the start collapses to the start.
func DateRange(prefs Preferences, now time.Time) (time.Time, time.Time) {
	start, err := time.Parse(DateLayout, prefs.StartDate)
	if err != nil {
		y, m, d := now.UTC().Date()
		start = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	end, err := time.Parse(DateLayout, prefs.EndDate)
	if err != nil || end.Before(start) {
		end = start
	}
	return start, end
}

// Dates lists every calendar date in the inclusive range, in order.
func Dates(prefs Preferences, now time.Time) []string {
	start, end := DateRange(prefs, now)
	var out []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, d.Format(DateLayout))
	}
	return out
}

// FallbackBlocks is the fixed three-block template for one day.
func FallbackBlocks(destination string) []ActivityBlock {
	return []ActivityBlock{
		{Time: "10:00", Title: fmt.Sprintf("%s Highlights Walk", destination), Tag: TagHeritage},
		{Time: "13:00", Title: "Local Lunch Spot", Tag: TagFood},
		{Time: "18:00", Title: "Evening Cultural Experience", Tag: TagActivity},
	}
}

// FallbackDraft builds the deterministic itinerary used whenever generation
// is unavailable or unusable. Its total is the computed estimate.
func FallbackDraft(prefs Preferences, now time.Time) Draft {
	dest := prefs.Destination
	if dest == "" {
		dest = "City"
	}
	var days []DayPlan
	for _, date := range Dates(prefs, now) {
		days = append(days, DayPlan{Date: date, Blocks: FallbackBlocks(dest)})
	}
	total := EstimateCost(days, prefs.PartySize())
	return Draft{
		City:             dest,
		Days:             days,
		TotalBudget:      &total,
		DestinationBlurb: TemplateBlurb(dest),
	}
}

// TemplateBlurb is used when the model did not provide a description.
func TemplateBlurb(city string) string {
	return TruncateBlurb(fmt.Sprintf("Discover %s: heritage walks, local flavours and evening culture, planned around your dates.", city))
}

// alignDays makes the generated days cover the requested range exactly once
// per date, in order. The first day carrying a given in-range date claims that
// date; remaining days fill the still-empty dates in order; anything left over
// is dropped, and dates nobody claimed get the fallback template.
func alignDays(generated []DayPlan, prefs Preferences, city string, now time.Time) []DayPlan {
	dates := Dates(prefs, now)
	slots := make(map[string]int, len(dates))
	for i, d := range dates {
		slots[d] = i
	}

	aligned := make([]*DayPlan, len(dates))
	var spare []DayPlan
	for _, day := range generated {
		i, inRange := slots[day.Date]
		if inRange && aligned[i] == nil {
			d := day
			aligned[i] = &d
			continue
		}
		spare = append(spare, day)
	}

	out := make([]DayPlan, len(dates))
	for i, date := range dates {
		switch {
		case aligned[i] != nil:
			out[i] = *aligned[i]
		case len(spare) > 0:
			out[i] = DayPlan{Date: date, Blocks: spare[0].Blocks}
			spare = spare[1:]
		default:
			out[i] = DayPlan{Date: date, Blocks: FallbackBlocks(city)}
		}
	}
	return out
}
