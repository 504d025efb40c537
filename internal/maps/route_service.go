// README: Google Directions wrapper returning driving distance and time for outstation trips.
package maps

import (
	"context"
	"errors"
	"fmt"
	"time"

	"googlemaps.github.io/maps"
)

var ErrNoRoute = errors.New("no route found")

// requestsPerSecond keeps a busy booking desk under the default Directions quota.
const requestsPerSecond = 10

type RouteService struct {
	client *maps.Client
}

// TravelEstimate sums every leg of the first route Google returns.
type TravelEstimate struct {
	Duration       time.Duration
	DistanceMeters int
	HumanReadable  string
	Summary        string
}

func NewRouteService(apiKey string) (*RouteService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey), maps.WithRateLimit(requestsPerSecond))
	if err != nil {
		return nil, fmt.Errorf("create maps client: %w", err)
	}
	return &RouteService{client: client}, nil
}

// GetTravelEstimate asks for a driving route between two free-text places in India.
func (s *RouteService) GetTravelEstimate(ctx context.Context, origin, destination string) (*TravelEstimate, error) {
	routes, _, err := s.client.Directions(ctx, &maps.DirectionsRequest{
		Origin:      origin,
		Destination: destination,
		Mode:        maps.TravelModeDriving,
		Language:    "en-IN",
		Region:      "in",
	})
	if err != nil {
		return nil, fmt.Errorf("directions: %w", err)
	}
	return aggregate(routes)
}

func aggregate(routes []maps.Route) (*TravelEstimate, error) {
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return nil, ErrNoRoute
	}

	first := routes[0]
	est := &TravelEstimate{Summary: first.Summary}
	for _, leg := range first.Legs {
		if leg == nil {
			continue
		}
		est.Duration += leg.Duration
		est.DistanceMeters += leg.Distance.Meters
	}
	est.HumanReadable = fmt.Sprintf("%.1f km", float64(est.DistanceMeters)/1000)
	return est, nil
}
