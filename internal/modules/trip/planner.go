package trip

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"tripdraft/internal/modules/itinerary"
	"tripdraft/internal/types"
)

// Drafter produces the itinerary draft; it never fails.
type Drafter interface {
	Draft(ctx context.Context, prefs itinerary.Preferences) (itinerary.Draft, itinerary.Outcome)
}

// DayEnricher attaches place data to blocks without changing their order.
type DayEnricher interface {
	ResolveDays(ctx context.Context, city string, days []itinerary.DayPlan) []itinerary.DayPlan
}

// ImageFinder returns a display URL for a destination, or "".
type ImageFinder interface {
	ResolveURL(ctx context.Context, destination string) string
}

// Planner assembles one draft per request: generate, enrich and resolve the
// image concurrently, then persist.
type Planner struct {
	drafter Drafter
	places  DayEnricher
	images  ImageFinder
	store   Store
	logger  *slog.Logger
	now     func() time.Time
}

// NewPlanner wires a Planner. places and images may be nil.
func NewPlanner(drafter Drafter, places DayEnricher, images ImageFinder, store Store, logger *slog.Logger) *Planner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Planner{
		drafter: drafter,
		places:  places,
		images:  images,
		store:   store,
		logger:  logger,
		now:     time.Now,
	}
}

// Plan returns an error only when the record could not be stored.
func (p *Planner) Plan(ctx context.Context, prefs itinerary.Preferences, ownerUID string) (PlanResult, error) {
	draft, outcome := p.drafter.Draft(ctx, prefs)

	imageQuery := prefs.Destination
	if imageQuery == "" {
		imageQuery = draft.City
	}

	var (
		g        errgroup.Group
		enriched []itinerary.DayPlan
		imageURL string
	)
	g.Go(func() error {
		if p.places != nil {
			enriched = p.places.ResolveDays(ctx, draft.City, draft.Days)
		}
		return nil
	})
	g.Go(func() error {
		if p.images != nil {
			imageURL = p.images.ResolveURL(ctx, imageQuery)
		}
		return nil
	})
	_ = g.Wait()

	if enriched != nil {
		draft.Days = enriched
	}
	draft.ImageURL = imageURL

	rec := &Record{
		Prefs:     prefs,
		Draft:     draft,
		Status:    itinerary.StatusDraft,
		OwnerUID:  ownerUID,
		CreatedAt: p.now().UTC(),
	}
	id, err := p.store.Save(ctx, rec)
	if err != nil {
		return PlanResult{}, fmt.Errorf("save trip: %w", err)
	}

	p.logger.Info("trip drafted",
		"trip_id", id,
		"destination", prefs.Destination,
		"outcome", outcome,
		"days", len(draft.Days),
		"has_image", imageURL != "",
	)
	return PlanResult{TripID: id, Draft: draft}, nil
}

// Get loads a stored trip.
func (p *Planner) Get(ctx context.Context, id types.ID) (*Record, error) {
	return p.store.Get(ctx, id)
}
