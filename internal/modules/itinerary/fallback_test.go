package itinerary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 2, 20, 15, 4, 5, 0, time.UTC)

func TestDatesCoverInclusiveRange(t *testing.T) {
	prefs := Preferences{StartDate: "2024-02-27", EndDate: "2024-03-02"}

	got := Dates(prefs, fixedNow)

	assert.Equal(t, []string{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01", "2024-03-02"}, got)
}

func TestDatesClampEndBeforeStart(t *testing.T) {
	prefs := Preferences{StartDate: "2024-03-05", EndDate: "2024-03-01"}

	assert.Equal(t, []string{"2024-03-05"}, Dates(prefs, fixedNow))
}

func TestDatesInvalidInputs(t *testing.T) {
	assert.Equal(t, []string{"2024-02-20"}, Dates(Preferences{StartDate: "soon"}, fixedNow))
	assert.Equal(t, []string{"2024-03-05"}, Dates(Preferences{StartDate: "2024-03-05", EndDate: "later"}, fixedNow))
}

func TestFallbackDraftJaipur(t *testing.T) {
	prefs := Preferences{Destination: "Jaipur", StartDate: "2024-03-01", EndDate: "2024-03-01", Pax: 1, Budget: 25000}

	got := FallbackDraft(prefs, fixedNow)

	assert.Equal(t, "Jaipur", got.City)
	require.Len(t, got.Days, 1)
	assert.Equal(t, "2024-03-01", got.Days[0].Date)
	assert.Equal(t, []ActivityBlock{
		{Time: "10:00", Title: "Jaipur Highlights Walk", Tag: TagHeritage},
		{Time: "13:00", Title: "Local Lunch Spot", Tag: TagFood},
		{Time: "18:00", Title: "Evening Cultural Experience", Tag: TagActivity},
	}, got.Days[0].Blocks)
	require.NotNil(t, got.TotalBudget)
	assert.Equal(t, 17600.0, *got.TotalBudget)
	assert.Contains(t, got.DestinationBlurb, "Jaipur")
	assert.LessOrEqual(t, len([]rune(got.DestinationBlurb)), MaxBlurbLength)
}

func TestFallbackDraftIsDeterministic(t *testing.T) {
	prefs := Preferences{Destination: "Udaipur", StartDate: "2024-03-01", EndDate: "2024-03-04", Pax: 3}

	a := FallbackDraft(prefs, fixedNow)
	b := FallbackDraft(prefs, fixedNow)

	assert.Equal(t, a, b)
	assert.Len(t, a.Days, 4)
}

func TestAlignDaysFillsAndOrders(t *testing.T) {
	prefs := Preferences{Destination: "Jaipur", StartDate: "2024-03-01", EndDate: "2024-03-04"}
	generated := []DayPlan{
		{Date: "2024-03-03", Blocks: []ActivityBlock{{Title: "third"}}},
		{Date: "2024-03-01", Blocks: []ActivityBlock{{Title: "first"}}},
		{Date: "2024-03-01", Blocks: []ActivityBlock{{Title: "duplicate"}}},
		{Date: "1999-01-01", Blocks: []ActivityBlock{{Title: "stray"}}},
	}

	got := alignDays(generated, prefs, "Jaipur", fixedNow)

	require.Len(t, got, 4)
	assert.Equal(t, "2024-03-01", got[0].Date)
	assert.Equal(t, "first", got[0].Blocks[0].Title)
	assert.Equal(t, "2024-03-02", got[1].Date)
	assert.Equal(t, "duplicate", got[1].Blocks[0].Title)
	assert.Equal(t, "third", got[2].Blocks[0].Title)
	assert.Equal(t, "2024-03-04", got[3].Date)
	assert.Equal(t, "stray", got[3].Blocks[0].Title)
}

func TestAlignDaysUsesTemplateForMissingDates(t *testing.T) {
	prefs := Preferences{Destination: "Jaipur", StartDate: "2024-03-01", EndDate: "2024-03-02"}

	got := alignDays([]DayPlan{{Date: "2024-03-01"}}, prefs, "Jaipur", fixedNow)

	require.Len(t, got, 2)
	assert.Equal(t, FallbackBlocks("Jaipur"), got[1].Blocks)
}
