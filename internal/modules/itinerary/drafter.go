// README: Drafting orchestrator; prompt -> parse -> normalize -> reconcile, or the deterministic fallback.
package itinerary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"tripdraft/internal/metrics"
)

// Generator is the text-generation capability. Implementations live in
// internal/ai.
type Generator interface {
	PlanItinerary(ctx context.Context, prompt string) (string, error)
}

var errGenerationDisabled = errors.New("generation disabled: no provider configured")

// Drafter turns preferences into a Draft. It never returns an error: every
// failure switches to FallbackDraft.
type Drafter struct {
	gen     Generator
	timeout time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewDrafter builds a Drafter. gen may be nil, in which case every draft is
// the fallback.
func NewDrafter(gen Generator, timeout time.Duration, logger *slog.Logger, m *metrics.Metrics) *Drafter {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Drafter{gen: gen, timeout: timeout, logger: logger, metrics: m, now: time.Now}
}

// Draft produces a well-formed itinerary with at least one day.
func (d *Drafter) Draft(ctx context.Context, prefs Preferences) (Draft, Outcome) {
	draft, err := d.generate(ctx, prefs)
	if err != nil {
		d.logger.Warn("itinerary fallback activated",
			"destination", prefs.Destination,
			"error", err,
		)
		d.metrics.DraftOutcome(string(OutcomeFallback))
		return FallbackDraft(prefs, d.now()), OutcomeFallback
	}
	d.metrics.DraftOutcome(string(OutcomeGenerated))
	return draft, OutcomeGenerated
}

func (d *Drafter) generate(ctx context.Context, prefs Preferences) (Draft, error) {
	if d.gen == nil {
		return Draft{}, errGenerationDisabled
	}

	// In-flight generation is allowed to finish or time out on its own.
	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
	defer cancel()

	start := time.Now()
	text, err := d.gen.PlanItinerary(callCtx, BuildPrompt(prefs))
	d.metrics.ObserveOutbound("generation", start, err)
	if err != nil {
		return Draft{}, fmt.Errorf("generate: %w", err)
	}

	raw, err := ExtractJSON(text)
	if err != nil {
		return Draft{}, err
	}

	normalized := Normalize(raw, prefs)
	if len(normalized.Days) == 0 {
		return Draft{}, ErrNoDays
	}

	dest := prefs.Destination
	if dest == "" {
		dest = normalized.City
	}
	normalized.Days = alignDays(normalized.Days, prefs, dest, d.now())
	normalized = Reconcile(normalized, prefs)

	total := ToFloat(normalized.TotalBudget)
	blurb := normalized.Blurb
	if blurb == "" {
		blurb = TemplateBlurb(normalized.City)
	}
	return Draft{
		City:             normalized.City,
		Days:             normalized.Days,
		TotalBudget:      &total,
		DestinationBlurb: blurb,
	}, nil
}
