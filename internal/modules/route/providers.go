// README: Adapters that turn the Gemini and Google Maps clients into route estimators.
package route

import (
	"context"
	"fmt"
	"strings"

	"cabdesk/internal/ai"
	"cabdesk/internal/maps"
)

const (
	SourceGemini = "gemini"
	SourceMaps   = "google_maps"
)

type GeminiEstimator struct {
	provider ai.LLMProvider
}

func NewGeminiEstimator(provider ai.LLMProvider) *GeminiEstimator {
	return &GeminiEstimator{provider: provider}
}

func (g *GeminiEstimator) Estimate(ctx context.Context, req Request) (Estimate, error) {
	if err := req.validate(); err != nil {
		return Estimate{}, err
	}
	res, err := g.provider.EstimateRoute(ctx, req.Pickup, req.Drop, req.Hint)
	if err != nil {
		return Estimate{}, fmt.Errorf("gemini route estimate: %w", err)
	}
	if res.DistanceKm <= 0 {
		return Estimate{}, ErrEstimationFailed
	}
	return Estimate{
		DistanceKm:  res.DistanceKm,
		DurationMin: res.DurationMin,
		Description: strings.TrimSpace(res.Description),
		Source:      SourceGemini,
	}, nil
}

// TravelEstimator is satisfied by maps.RouteService.
type TravelEstimator interface {
	GetTravelEstimate(ctx context.Context, origin, destination string) (*maps.TravelEstimate, error)
}

type MapsEstimator struct {
	routes TravelEstimator
}

func NewMapsEstimator(routes TravelEstimator) *MapsEstimator {
	return &MapsEstimator{routes: routes}
}

func (m *MapsEstimator) Estimate(ctx context.Context, req Request) (Estimate, error) {
	if err := req.validate(); err != nil {
		return Estimate{}, err
	}
	te, err := m.routes.GetTravelEstimate(ctx, req.Pickup, req.Drop)
	if err != nil {
		return Estimate{}, fmt.Errorf("google maps route estimate: %w", err)
	}
	if te.DistanceMeters <= 0 {
		return Estimate{}, ErrEstimationFailed
	}
	desc := te.Summary
	if desc == "" {
		desc = te.HumanReadable
	}
	return Estimate{
		DistanceKm:  float64(te.DistanceMeters) / 1000,
		DurationMin: te.Duration.Minutes(),
		Description: desc,
		Source:      SourceMaps,
	}, nil
}
