// README: Place resolver; attaches place id and coordinates to activity blocks, fail-soft.
package places

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"tripdraft/internal/maps"
	"tripdraft/internal/metrics"
	"tripdraft/internal/modules/itinerary"
)

// Searcher is the places-search capability the resolver needs.
type Searcher interface {
	TextSearch(ctx context.Context, query string) ([]maps.Candidate, error)
}

// Enrichment results recorded in metrics.
const (
	resultMatched = "matched"
	resultEmpty   = "empty"
	resultFailed  = "failed"
	resultSkipped = "skipped"
)

// Resolver enriches blocks one query per block. A nil Searcher disables it.
type Resolver struct {
	search        Searcher
	timeout       time.Duration
	budget        time.Duration
	maxConcurrent int
	logger        *slog.Logger
	metrics       *metrics.Metrics
}

// NewResolver bounds each lookup by timeout and a whole ResolveDays run by
// budget; blocks still pending when the budget runs out stay unenriched.
func NewResolver(search Searcher, timeout, budget time.Duration, maxConcurrent int, logger *slog.Logger, m *metrics.Metrics) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	if budget <= 0 {
		budget = 20 * time.Second
	}
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Resolver{search: search, timeout: timeout, budget: budget, maxConcurrent: maxConcurrent, logger: logger, metrics: m}
}

// Query is the search text sent for a block.
func Query(title, city string) string {
	return title + " in " + city
}

// ResolveDay returns day with every matched block enriched. Block order and
// count never change; a failed lookup leaves its block exactly as received.
func (r *Resolver) ResolveDay(ctx context.Context, city string, day itinerary.DayPlan) itinerary.DayPlan {
	days := r.ResolveDays(ctx, city, []itinerary.DayPlan{day})
	return days[0]
}

// ResolveDays enriches all blocks of all days in parallel, bounded by
// maxConcurrent simultaneous lookups. The input slice is not modified.
func (r *Resolver) ResolveDays(ctx context.Context, city string, days []itinerary.DayPlan) []itinerary.DayPlan {
	out := make([]itinerary.DayPlan, len(days))
	for i, d := range days {
		out[i] = itinerary.DayPlan{Date: d.Date, Blocks: append([]itinerary.ActivityBlock(nil), d.Blocks...)}
		if out[i].Blocks == nil {
			out[i].Blocks = []itinerary.ActivityBlock{}
		}
	}
	if r == nil || r.search == nil {
		return out
	}

	// Lookups outlive the inbound request but not the run's budget.
	base, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.budget)
	defer cancel()
	var g errgroup.Group
	g.SetLimit(r.maxConcurrent)
	for di := range out {
		for bi := range out[di].Blocks {
			block := &out[di].Blocks[bi]
			if strings.TrimSpace(block.Title) == "" {
				r.metrics.BlockEnrichment(resultSkipped)
				continue
			}
			g.Go(func() error {
				if base.Err() != nil {
					r.metrics.BlockEnrichment(resultSkipped)
					return nil
				}
				r.enrich(base, city, block)
				return nil
			})
		}
	}
	_ = g.Wait()
	if base.Err() != nil {
		r.logger.Warn("place enrichment budget exhausted", "city", city, "days", len(out), "budget", r.budget)
	}
	return out
}

func (r *Resolver) enrich(ctx context.Context, city string, block *itinerary.ActivityBlock) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := Query(block.Title, city)
	start := time.Now()
	candidates, err := r.search.TextSearch(ctx, query)
	r.metrics.ObserveOutbound("places_search", start, err)
	if err == nil && len(candidates) == 0 {
		err = maps.ErrNoResults
	}
	if err != nil {
		result := resultFailed
		if errors.Is(err, maps.ErrNoResults) {
			result = resultEmpty
		} else {
			r.logger.Warn("place lookup failed", "query", query, "error", err)
		}
		r.metrics.BlockEnrichment(result)
		return
	}

	first := candidates[0]
	if first.PlaceID != "" {
		block.PlaceID = first.PlaceID
	}
	if first.Location != nil {
		lat, lng := first.Location.Lat, first.Location.Lng
		block.Lat, block.Lng = &lat, &lng
	}
	r.metrics.BlockEnrichment(resultMatched)
}
