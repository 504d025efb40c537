// README: Leg aggregation tests for the Directions wrapper.
package maps

import (
	"errors"
	"testing"
	"time"

	"googlemaps.github.io/maps"
)

func TestAggregate_SumsLegsOfFirstRoute(t *testing.T) {
	routes := []maps.Route{
		{
			Summary: "NH 716",
			Legs: []*maps.Leg{
				{Distance: maps.Distance{Meters: 80500}, Duration: 95 * time.Minute},
				{Distance: maps.Distance{Meters: 57000}, Duration: 70 * time.Minute},
			},
		},
		{
			Summary: "NH 48",
			Legs:    []*maps.Leg{{Distance: maps.Distance{Meters: 200000}, Duration: 4 * time.Hour}},
		},
	}

	est, err := aggregate(routes)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if est.DistanceMeters != 137500 {
		t.Errorf("DistanceMeters = %d, want 137500", est.DistanceMeters)
	}
	if est.Duration != 165*time.Minute {
		t.Errorf("Duration = %v, want 2h45m", est.Duration)
	}
	if est.HumanReadable != "137.5 km" {
		t.Errorf("HumanReadable = %q", est.HumanReadable)
	}
	if est.Summary != "NH 716" {
		t.Errorf("Summary = %q, want first route", est.Summary)
	}
}

func TestAggregate_NoRoute(t *testing.T) {
	tests := []struct {
		name   string
		routes []maps.Route
	}{
		{name: "no routes", routes: nil},
		{name: "route without legs", routes: []maps.Route{{Summary: "empty"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := aggregate(tt.routes); !errors.Is(err, ErrNoRoute) {
				t.Fatalf("err = %v, want ErrNoRoute", err)
			}
		})
	}
}
