// README: Chain tries estimators in order; Cached memoizes successful estimates.
package route

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"
)

type Chain struct {
	estimators []Estimator
	log        *slog.Logger
}

func NewChain(log *slog.Logger, estimators ...Estimator) *Chain {
	if log == nil {
		log = slog.Default()
	}
	return &Chain{estimators: estimators, log: log}
}

// Estimate returns the first positive-distance estimate. A zero or negative distance from a
// provider counts as a failure. When every provider fails the result is ErrEstimationFailed.
func (c *Chain) Estimate(ctx context.Context, req Request) (Estimate, error) {
	if err := req.validate(); err != nil {
		return Estimate{}, err
	}
	var lastErr error
	for _, e := range c.estimators {
		if err := ctx.Err(); err != nil {
			return Estimate{}, err
		}
		est, err := e.Estimate(ctx, req)
		switch {
		case err == nil && est.DistanceKm > 0:
			return est, nil
		case err == nil:
			lastErr = fmt.Errorf("%T returned %.2f km", e, est.DistanceKm)
		case errors.Is(err, ErrUnknownRoute):
			continue
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return Estimate{}, err
		default:
			lastErr = err
		}
		c.log.Warn("route estimator failed", "estimator", fmt.Sprintf("%T", e), "pickup", req.Pickup, "drop", req.Drop, "error", lastErr)
	}
	if lastErr != nil {
		return Estimate{}, fmt.Errorf("%w: %v", ErrEstimationFailed, lastErr)
	}
	return Estimate{}, ErrEstimationFailed
}

type Cached struct {
	next  Estimator
	cache *cache.Cache
}

func NewCached(next Estimator, ttl time.Duration) *Cached {
	return &Cached{next: next, cache: cache.New(ttl, 2*ttl)}
}

func (c *Cached) Estimate(ctx context.Context, req Request) (Estimate, error) {
	if err := req.validate(); err != nil {
		return Estimate{}, err
	}
	key := pairKey(req.Pickup, req.Drop) + "|" + normalizePlace(req.Hint)
	if v, ok := c.cache.Get(key); ok {
		return v.(Estimate), nil
	}
	est, err := c.next.Estimate(ctx, req)
	if err != nil {
		return Estimate{}, err
	}
	c.cache.SetDefault(key, est)
	return est, nil
}

// Flush drops every cached estimate.
func (c *Cached) Flush() {
	c.cache.Flush()
}
