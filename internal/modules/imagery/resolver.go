package imagery

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"tripdraft/internal/maps"
	"tripdraft/internal/metrics"
	"tripdraft/internal/types"
)

// Capability is everything the default chain calls out to.
type Capability interface {
	Finder
	Searcher
	PanoramaChecker
}

// Options configure the default chain.
type Options struct {
	Timeout time.Duration
	// Budget bounds one whole Resolve run across all strategies.
	Budget          time.Duration
	ImageWidth      int
	RegionQualifier string
	// AlwaysReturnImage appends the static map stage so that some image is
	// always produced.
	AlwaysReturnImage bool
	Logger            *slog.Logger
	Metrics           *metrics.Metrics
}

// Resolver finds a display image for a destination. It keeps no state between
// calls.
type Resolver struct {
	chain  *Chain
	budget time.Duration
	urls   *maps.URLBuilder
	logger *slog.Logger
}

// NewResolver wires the default strategy order. A nil capability disables
// every place-based stage; only the static map remains, and only when
// AlwaysReturnImage is set.
func NewResolver(capability Capability, urls *maps.URLBuilder, opts Options) *Resolver {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 8 * time.Second
	}
	if opts.Budget <= 0 {
		opts.Budget = 20 * time.Second
	}
	if opts.ImageWidth <= 0 {
		opts.ImageWidth = 1600
	}

	var strategies []Strategy
	if capability != nil {
		strategies = append(strategies,
			&DirectLookup{Finder: capability, Width: opts.ImageWidth, Timeout: opts.Timeout, Metrics: opts.Metrics},
			&TextSearchVariants{
				Searcher:        capability,
				RegionQualifier: opts.RegionQualifier,
				Width:           opts.ImageWidth,
				Timeout:         opts.Timeout,
				Metrics:         opts.Metrics,
			},
			&StreetView{Checker: capability, Timeout: opts.Timeout, Metrics: opts.Metrics},
		)
		if opts.AlwaysReturnImage {
			strategies = append(strategies, StaticMap{})
		}
	}
	return &Resolver{
		chain:  NewChain(opts.Logger, opts.Metrics, strategies...),
		budget: opts.Budget,
		urls:   urls,
		logger: opts.Logger,
	}
}

// NewResolverWithChain is used when the caller assembles its own strategies.
func NewResolverWithChain(chain *Chain, urls *maps.URLBuilder) *Resolver {
	return &Resolver{chain: chain, budget: 20 * time.Second, urls: urls, logger: chain.logger}
}

// Resolve runs the chain for destination. ok is false on total failure.
func (r *Resolver) Resolve(ctx context.Context, destination string) (maps.ImageRef, bool) {
	destination = strings.TrimSpace(destination)
	if r == nil || destination == "" {
		return maps.ImageRef{}, false
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.budget)
	defer cancel()
	ref, strategy, ok := r.chain.Run(ctx, &Query{Destination: destination, Coordinates: []types.Point{}})
	if !ok {
		r.logger.Info("no destination image", "destination", destination)
		return maps.ImageRef{}, false
	}
	r.logger.Debug("destination image resolved", "destination", destination, "strategy", strategy)
	return ref, true
}

// ResolveURL is Resolve rendered through the URL builder; "" means no image.
func (r *Resolver) ResolveURL(ctx context.Context, destination string) string {
	ref, ok := r.Resolve(ctx, destination)
	if !ok || r.urls == nil {
		return ""
	}
	return r.urls.URL(ref)
}
