// README: Route estimation contract shared by the registry, Gemini and Google Maps adapters.
package route

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrEstimationFailed means no usable distance was produced; callers must not price a zero-km trip.
	ErrEstimationFailed = errors.New("route estimation failed")
	// ErrUnknownRoute is returned by lookups that simply do not know the pair.
	ErrUnknownRoute = errors.New("unknown route")
	ErrBadRequest   = errors.New("bad request")
)

type Request struct {
	Pickup string
	Drop   string
	// Hint is free text passed to providers that can use it (e.g. "via NH48").
	Hint string
}

type Estimate struct {
	DistanceKm  float64 `json:"distance_km"`
	DurationMin float64 `json:"duration_min"`
	Description string  `json:"description"`
	Source      string  `json:"source"`
}

type Estimator interface {
	Estimate(ctx context.Context, req Request) (Estimate, error)
}

func (r Request) validate() error {
	if strings.TrimSpace(r.Pickup) == "" || strings.TrimSpace(r.Drop) == "" {
		return ErrBadRequest
	}
	return nil
}

// normalizePlace folds case and collapses whitespace.
func normalizePlace(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// pairKey is order-independent: A->B and B->A share a key.
func pairKey(a, b string) string {
	a, b = normalizePlace(a), normalizePlace(b)
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}
