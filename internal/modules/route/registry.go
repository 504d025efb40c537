// README: Static distance registry for known named locations.
package route

import (
	"context"
	"sync"
)

const SourceRegistry = "registry"

type Registry struct {
	mu     sync.RWMutex
	routes map[string]Estimate
}

func NewRegistry() *Registry {
	return &Registry{routes: make(map[string]Estimate)}
}

// Add registers a symmetric route between a and b.
func (r *Registry) Add(a, b string, distanceKm, durationMin float64, description string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes[pairKey(a, b)] = Estimate{
		DistanceKm:  distanceKm,
		DurationMin: durationMin,
		Description: description,
		Source:      SourceRegistry,
	}
}

func (r *Registry) Estimate(_ context.Context, req Request) (Estimate, error) {
	if err := req.validate(); err != nil {
		return Estimate{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.routes[pairKey(req.Pickup, req.Drop)]
	if !ok {
		return Estimate{}, ErrUnknownRoute
	}
	return e, nil
}

// DefaultRegistry carries the popular routes out of Chennai.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Add("Chennai Airport", "Chennai Central", 18, 45, "GST Road and Anna Salai")
	r.Add("Chennai Airport", "Tirupati", 140, 210, "via Tiruvallur and Puttur")
	r.Add("Chennai Central", "Tirupati", 135, 200, "via Tiruvallur and Puttur")
	r.Add("Chennai Central", "Kanchipuram", 75, 120, "via Poonamallee and NH48")
	r.Add("Chennai Central", "Srikalahasti", 115, 180, "via Periyapalayam")
	r.Add("Chennai Central", "Mahabalipuram", 58, 90, "East Coast Road")
	r.Add("Chennai Central", "Pondicherry", 152, 210, "East Coast Road")
	r.Add("Chennai Central", "Vellore", 140, 180, "NH48")
	r.Add("Chennai Central", "Bangalore", 346, 390, "NH48 via Vellore and Krishnagiri")
	return r
}
