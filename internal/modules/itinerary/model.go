// README: Itinerary value types: preferences, activity blocks, day plans and drafts.
package itinerary

import (
	"strings"

	"github.com/spf13/cast"
)

// StatusDraft is the only status a freshly assembled itinerary can have.
const StatusDraft = "DRAFT"

// MaxBlurbLength caps the single-line destination description, in characters.
const MaxBlurbLength = 140

// DateLayout is the ISO calendar date format used on the wire.
const DateLayout = "2006-01-02"

// Tag categorises an activity block.
type Tag string

const (
	TagHeritage  Tag = "heritage"
	TagFood      Tag = "food"
	TagActivity  Tag = "activity"
	TagNightlife Tag = "nightlife"
	TagAdventure Tag = "adventure"
	TagRelax     Tag = "relax"
)

// Tags lists the fixed tag vocabulary in prompt order.
var Tags = []Tag{TagHeritage, TagFood, TagActivity, TagNightlife, TagAdventure, TagRelax}

// Mood is the traveller's requested vibe.
type Mood string

const (
	MoodRelaxed     Mood = "relaxed"
	MoodBalanced    Mood = "balanced"
	MoodAdventurous Mood = "adventurous"
	MoodCultural    Mood = "cultural"
	MoodNightlife   Mood = "nightlife"
)

var moodLabels = map[Mood]string{
	MoodRelaxed:     "relaxed, slow-paced",
	MoodBalanced:    "balanced",
	MoodAdventurous: "adventurous, high-energy",
	MoodCultural:    "culture and heritage focused",
	MoodNightlife:   "lively, nightlife-heavy",
}

// Label is the human-readable form embedded into the generation prompt.
func (m Mood) Label() string {
	if l, ok := moodLabels[m]; ok {
		return l
	}
	return moodLabels[MoodBalanced]
}

// ParseMood accepts a mood name or a 0..1 slider value. Anything else is
// treated as balanced.
func ParseMood(v any) Mood {
	if s, ok := v.(string); ok {
		m := Mood(strings.ToLower(strings.TrimSpace(s)))
		if _, known := moodLabels[m]; known {
			return m
		}
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || v == nil {
		return MoodBalanced
	}
	switch {
	case f < 0 || f > 1:
		return MoodBalanced
	case f < 0.34:
		return MoodRelaxed
	case f > 0.66:
		return MoodAdventurous
	default:
		return MoodBalanced
	}
}

// Preferences is the immutable planning request consumed by drafting and
// budget reconciliation. Dates are ISO calendar dates as received.
type Preferences struct {
	Origin      string   `json:"origin"`
	Destination string   `json:"destination"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Pax         int      `json:"pax"`
	Budget      float64  `json:"budget"`
	Mood        Mood     `json:"mood"`
	Themes      []string `json:"themes,omitempty"`
}

// PartySize is Pax clamped to at least one traveller.
func (p Preferences) PartySize() int {
	if p.Pax < 1 {
		return 1
	}
	return p.Pax
}

// ActivityBlock is one scheduled activity. The enrichment fields are only set
// by the place resolver.
type ActivityBlock struct {
	Time    string   `json:"time"`
	Title   string   `json:"title"`
	Tag     Tag      `json:"tag"`
	PlaceID string   `json:"place_id,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

type DayPlan struct {
	Date   string          `json:"date"`
	Blocks []ActivityBlock `json:"blocks"`
}

// Draft is the canonical itinerary handed to persistence and the HTTP layer.
type Draft struct {
	City             string    `json:"city"`
	Days             []DayPlan `json:"days"`
	TotalBudget      *float64  `json:"total_budget,omitempty"`
	DestinationBlurb string    `json:"destinationBlurb,omitempty"`
	ImageURL         string    `json:"imageUrl,omitempty"`
}

// Outcome tells which terminal state the drafting run reached.
type Outcome string

const (
	OutcomeGenerated Outcome = "generated"
	OutcomeFallback  Outcome = "fallback"
)
