// README: Destination image chain; ordered strategies, first usable image wins.
package imagery

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"tripdraft/internal/maps"
	"tripdraft/internal/metrics"
	"tripdraft/internal/types"
)

// ErrNoImage is returned by a strategy that ran cleanly but found nothing.
var ErrNoImage = errors.New("imagery: no usable image")

// Query is the per-run state shared by the strategies of one chain run.
// Coordinates collects locations seen by earlier stages, best first.
type Query struct {
	Destination string
	Coordinates []types.Point
}

func (q *Query) addCoordinate(p *types.Point) {
	if p == nil {
		return
	}
	for _, c := range q.Coordinates {
		if c == *p {
			return
		}
	}
	q.Coordinates = append(q.Coordinates, *p)
}

// Strategy is one stage of the chain. Attempt returns a usable ImageRef or an
// error; both ErrNoImage and any other error advance the chain.
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, q *Query) (maps.ImageRef, error)
}

// Strategy outcomes recorded in metrics.
const (
	resultHit   = "hit"
	resultMiss  = "miss"
	resultError = "error"
)

// Chain tries strategies in order and stops at the first success.
type Chain struct {
	strategies []Strategy
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

func NewChain(logger *slog.Logger, m *metrics.Metrics, strategies ...Strategy) *Chain {
	if logger == nil {
		logger = slog.Default()
	}
	return &Chain{strategies: strategies, logger: logger, metrics: m}
}

// Run returns the first usable image and the name of the strategy that
// produced it. ok is false when every strategy came up empty or ctx expired
// before one succeeded.
func (c *Chain) Run(ctx context.Context, q *Query) (ref maps.ImageRef, strategy string, ok bool) {
	for _, s := range c.strategies {
		if ctx.Err() != nil {
			c.logger.Warn("image budget exhausted", "destination", q.Destination, "next_strategy", s.Name())
			return maps.ImageRef{}, "", false
		}
		ref, err := attempt(ctx, s, q)
		switch {
		case err == nil && ref.Kind != "":
			c.metrics.ImageStrategy(s.Name(), resultHit)
			return ref, s.Name(), true
		case err == nil || errors.Is(err, ErrNoImage) || errors.Is(err, maps.ErrNoResults):
			c.metrics.ImageStrategy(s.Name(), resultMiss)
		default:
			c.metrics.ImageStrategy(s.Name(), resultError)
			c.logger.Warn("image strategy failed",
				"strategy", s.Name(),
				"destination", q.Destination,
				"error", err,
			)
		}
	}
	return maps.ImageRef{}, "", false
}

// attempt isolates a strategy so that a panic only advances the chain.
func attempt(ctx context.Context, s Strategy, q *Query) (ref maps.ImageRef, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError{value: r}
		}
	}()
	return s.Attempt(ctx, q)
}

type panicError struct{ value any }

func (p panicError) Error() string {
	return "strategy panicked: " + slog.AnyValue(p.value).String()
}

// callContext bounds one outbound call by timeout and by ctx's deadline.
// Cancellation of the inbound request does not reach it.
func callContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); left < timeout {
			timeout = left
		}
	}
	return context.WithTimeout(context.WithoutCancel(ctx), timeout)
}
