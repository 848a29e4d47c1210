package itinerary

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGenerator is a hand-written test double; set only the func the test needs.
type fakeGenerator struct {
	plan   func(ctx context.Context, prompt string) (string, error)
	calls  int
	prompt string
}

func (f *fakeGenerator) PlanItinerary(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	return f.plan(ctx, prompt)
}

func respondWith(text string) *fakeGenerator {
	return &fakeGenerator{plan: func(context.Context, string) (string, error) { return text, nil }}
}

func newTestDrafter(gen Generator) *Drafter {
	d := NewDrafter(gen, time.Second, nil, nil)
	d.now = func() time.Time { return fixedNow }
	return d
}

func TestDraftFallbackWhenGenerationDisabled(t *testing.T) {
	prefs := Preferences{Destination: "Jaipur", StartDate: "2024-03-01", EndDate: "2024-03-01", Pax: 1, Budget: 25000}

	got, outcome := newTestDrafter(nil).Draft(context.Background(), prefs)

	assert.Equal(t, OutcomeFallback, outcome)
	require.Len(t, got.Days, 1)
	times := []string{}
	for _, b := range got.Days[0].Blocks {
		times = append(times, b.Time)
	}
	assert.Equal(t, []string{"10:00", "13:00", "18:00"}, times)
	assert.Equal(t, 17600.0, *got.TotalBudget)
}

func TestDraftFallbackOnFailures(t *testing.T) {
	prefs := jaipurPrefs()
	cases := map[string]*fakeGenerator{
		"network error": {plan: func(context.Context, string) (string, error) { return "", errors.New("dial tcp: timeout") }},
		"prose":         respondWith("Sorry, I cannot help with that."),
		"broken json":   respondWith(`{"city": "Jaipur", "days": [`),
		"reversed":      respondWith(`} nothing {`),
		"no days":       respondWith(`{"city": "Jaipur", "days": []}`),
		"array":         respondWith(`[{"date": "2024-03-01"}]`),
	}
	for name, gen := range cases {
		t.Run(name, func(t *testing.T) {
			got, outcome := newTestDrafter(gen).Draft(context.Background(), prefs)

			assert.Equal(t, OutcomeFallback, outcome)
			assert.Equal(t, FallbackDraft(prefs, fixedNow), got)
			assert.Equal(t, 1, gen.calls)
		})
	}
}

func TestDraftGenerated(t *testing.T) {
	prefs := jaipurPrefs()
	gen := respondWith("```json\n" + `{
		"city": "Jaipur",
		"destination_blurb": "The Pink City of forts and bazaars.",
		"total_budget": "21,000",
		"days": [
			{"date": "2024-03-01", "blocks": [{"time": "09:00", "title": "Amber Fort", "tag": "heritage"}]},
			{"date": "2024-03-02", "blocks": [{"time": "19:00", "title": "Chokhi Dhani", "tag": "food"}]},
			{"date": "2024-03-03", "blocks": [{"time": "11:00", "title": "Nahargarh Trek", "tag": "adventure"}]}
		]
	}` + "\n```")

	got, outcome := newTestDrafter(gen).Draft(context.Background(), prefs)

	assert.Equal(t, OutcomeGenerated, outcome)
	assert.Equal(t, "Jaipur", got.City)
	require.Len(t, got.Days, 3)
	assert.Equal(t, "Amber Fort", got.Days[0].Blocks[0].Title)
	assert.Equal(t, "The Pink City of forts and bazaars.", got.DestinationBlurb)
	require.NotNil(t, got.TotalBudget)
	assert.Equal(t, 21000.0, *got.TotalBudget)

	assert.Contains(t, gen.prompt, "Jaipur")
	assert.Contains(t, gen.prompt, "2024-03-01 through 2024-03-03")
	assert.Contains(t, gen.prompt, "for 2 people")
	assert.Contains(t, gen.prompt, "INR 25000")
	assert.Contains(t, gen.prompt, MoodBalanced.Label())
}

func TestDraftGeneratedEchoReplacedAndBlurbSynthesized(t *testing.T) {
	prefs := Preferences{Destination: "Jaipur", StartDate: "2024-03-01", EndDate: "2024-03-01", Pax: 2, Budget: 25000}
	gen := respondWith(`Here you go: {"total_budget": 24900, "days": [{"date": "2024-03-01", "blocks": [
		{"time": "10:00", "title": "City Palace", "tag": "heritage"},
		{"time": "13:00", "title": "LMB", "tag": "food"},
		{"time": "18:00", "title": "Light show", "tag": "activity"}]}]} Enjoy!`)

	got, outcome := newTestDrafter(gen).Draft(context.Background(), prefs)

	assert.Equal(t, OutcomeGenerated, outcome)
	assert.Equal(t, 35200.0, *got.TotalBudget)
	assert.Equal(t, TemplateBlurb("Jaipur"), got.DestinationBlurb)
}

func TestDraftGeneratedCoversEveryDate(t *testing.T) {
	prefs := jaipurPrefs()
	gen := respondWith(`{"blocks": [{"time": "10:00", "title": "Jal Mahal", "tag": "relax"}]}`)

	got, outcome := newTestDrafter(gen).Draft(context.Background(), prefs)

	assert.Equal(t, OutcomeGenerated, outcome)
	require.Len(t, got.Days, 3)
	assert.Equal(t, "Jal Mahal", got.Days[0].Blocks[0].Title)
	assert.Equal(t, FallbackBlocks("Jaipur"), got.Days[1].Blocks)
	assert.Equal(t, "2024-03-03", got.Days[2].Date)
}

func TestDraftGenerationIgnoresCallerCancellation(t *testing.T) {
	prefs := jaipurPrefs()
	gen := &fakeGenerator{plan: func(ctx context.Context, _ string) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return `{"days": [{"date": "2024-03-01", "blocks": []}]}`, nil
	}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, outcome := newTestDrafter(gen).Draft(ctx, prefs)

	assert.Equal(t, OutcomeGenerated, outcome)
}

func TestBuildPromptThemes(t *testing.T) {
	prefs := jaipurPrefs()
	prefs.Themes = []string{"forts", "street food"}

	prompt := BuildPrompt(prefs)

	assert.Contains(t, prompt, "forts, street food")
	assert.True(t, strings.Contains(prompt, "heritage|food|activity|nightlife|adventure|relax"))
}
