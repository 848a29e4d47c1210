// README: Trip record persisted once per planning request, plus the inbound request shape.
package trip

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tripdraft/internal/modules/itinerary"
	"tripdraft/internal/types"
)

var (
	ErrNotFound       = errors.New("trip not found")
	ErrInvalidRequest = errors.New("invalid plan request")
)

// Request defaults.
const (
	DefaultPax    = 2
	DefaultBudget = 25000
	// MaxTripDays caps the inclusive date range; every day costs one places
	// lookup per block.
	MaxTripDays = 30
)

// Record is what a store persists: the request preferences, the assembled
// draft and its lifecycle status.
type Record struct {
	ID        types.ID              `json:"id"`
	Prefs     itinerary.Preferences `json:"prefs"`
	Draft     itinerary.Draft       `json:"itineraryDraft"`
	Status    string                `json:"status"`
	OwnerUID  string                `json:"ownerUid,omitempty"`
	CreatedAt time.Time             `json:"createdAt"`
}

// PlanRequest is the body of POST /plan. Mood accepts a mood name or a 0..1
// slider value.
type PlanRequest struct {
	Origin      string   `json:"origin"`
	Destination string   `json:"destination" binding:"required"`
	StartDate   string   `json:"startDate" binding:"required"`
	EndDate     string   `json:"endDate" binding:"required"`
	Pax         *int     `json:"pax"`
	Budget      *float64 `json:"budget"`
	Themes      []string `json:"themes"`
	Mood        any      `json:"mood"`
}

// Preferences applies defaults and returns the immutable planning input.
func (r PlanRequest) Preferences() (itinerary.Preferences, error) {
	prefs := itinerary.Preferences{
		Origin:      strings.TrimSpace(r.Origin),
		Destination: strings.TrimSpace(r.Destination),
		StartDate:   strings.TrimSpace(r.StartDate),
		EndDate:     strings.TrimSpace(r.EndDate),
		Pax:         DefaultPax,
		Budget:      DefaultBudget,
		Mood:        itinerary.ParseMood(r.Mood),
	}
	if prefs.Destination == "" {
		return itinerary.Preferences{}, errors.Join(ErrInvalidRequest, errors.New("destination is required"))
	}
	start, end := itinerary.DateRange(prefs, time.Now())
	if days := int(end.Sub(start).Hours()/24) + 1; days > MaxTripDays {
		return itinerary.Preferences{}, errors.Join(ErrInvalidRequest,
			fmt.Errorf("trip spans %d days, at most %d are allowed", days, MaxTripDays))
	}
	if r.Pax != nil {
		if *r.Pax < 1 {
			return itinerary.Preferences{}, errors.Join(ErrInvalidRequest, errors.New("pax must be at least 1"))
		}
		prefs.Pax = *r.Pax
	}
	if r.Budget != nil {
		if *r.Budget < 0 {
			return itinerary.Preferences{}, errors.Join(ErrInvalidRequest, errors.New("budget must not be negative"))
		}
		prefs.Budget = *r.Budget
	}
	for _, theme := range r.Themes {
		if theme = strings.TrimSpace(theme); theme != "" {
			prefs.Themes = append(prefs.Themes, theme)
		}
	}
	return prefs, nil
}

// PlanResult is returned to the HTTP layer.
type PlanResult struct {
	TripID types.ID        `json:"tripId"`
	Draft  itinerary.Draft `json:"draft"`
}
