// README: In-memory vehicle catalog and fixed-package book with the default sample data.
package pricing

import (
	"context"
	"strings"
	"sync"

	"cabdesk/internal/types"
)

// Catalog resolves vehicles and their tariffs.
type Catalog interface {
	Vehicle(ctx context.Context, class types.VehicleClass) (Vehicle, error)
	Vehicles(ctx context.Context) ([]Vehicle, error)
}

type StaticCatalog struct {
	mu       sync.RWMutex
	vehicles map[types.VehicleClass]Vehicle
	order    []types.VehicleClass
}

func NewStaticCatalog(vehicles ...Vehicle) *StaticCatalog {
	c := &StaticCatalog{vehicles: make(map[types.VehicleClass]Vehicle, len(vehicles))}
	for _, v := range vehicles {
		c.Put(v)
	}
	return c
}

// Put adds or replaces a vehicle, keeping first-insertion order.
func (c *StaticCatalog) Put(v Vehicle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.vehicles[v.Class]; !ok {
		c.order = append(c.order, v.Class)
	}
	c.vehicles[v.Class] = v
}

func (c *StaticCatalog) Vehicle(_ context.Context, class types.VehicleClass) (Vehicle, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.vehicles[class]
	if !ok {
		return Vehicle{}, ErrUnknownVehicle
	}
	return v, nil
}

func (c *StaticCatalog) Vehicles(_ context.Context) ([]Vehicle, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Vehicle, 0, len(c.order))
	for _, class := range c.order {
		out = append(out, c.vehicles[class])
	}
	return out, nil
}

// DefaultVehicles is the sample fleet. TEMPO_TRAVELLER is priced on request and has no tariff.
func DefaultVehicles() []Vehicle {
	return []Vehicle{
		{
			Class:    types.VehicleHatchback,
			Name:     "Hatchback",
			Capacity: 4,
			Tariff: &Tariff{
				AC:            [TierCount]int64{450, 650, 850, 1100, 1300, 1500, 1700, 1900, 2100, 2450, 2750, 3050},
				NonAC:         [TierCount]int64{400, 600, 800, 1000, 1200, 1400, 1600, 1800, 2000, 2300, 2600, 2900},
				OverflowAC:    11,
				OverflowNonAC: 10,
			},
		},
		{
			Class:    types.VehicleSedan,
			Name:     "Sedan",
			Capacity: 4,
			Tariff: &Tariff{
				AC:            [TierCount]int64{500, 750, 900, 1150, 1350, 1550, 1750, 1950, 2150, 2500, 2850, 3150},
				NonAC:         [TierCount]int64{450, 700, 850, 1050, 1250, 1450, 1650, 1850, 2050, 2400, 2700, 3000},
				OverflowAC:    12,
				OverflowNonAC: 11,
			},
		},
		{
			Class:    types.VehicleSUV,
			Name:     "SUV",
			Capacity: 7,
			Tariff: &Tariff{
				AC:            [TierCount]int64{700, 1000, 1250, 1550, 1800, 2050, 2300, 2550, 2800, 3250, 3600, 3950},
				NonAC:         [TierCount]int64{600, 900, 1100, 1400, 1650, 1900, 2150, 2400, 2650, 3050, 3400, 3700},
				OverflowAC:    16,
				OverflowNonAC: 14,
			},
		},
		{
			Class:    types.VehicleTempoTraveller,
			Name:     "Tempo Traveller",
			Capacity: 12,
		},
	}
}

func DefaultCatalog() *StaticCatalog {
	return NewStaticCatalog(DefaultVehicles()...)
}

// PackageBook looks up fixed packages by name or alias, ignoring case and surrounding space.
type PackageBook struct {
	packages []FixedPackage
	index    map[string]int
}

func NewPackageBook(pkgs ...FixedPackage) *PackageBook {
	b := &PackageBook{index: make(map[string]int)}
	for _, p := range pkgs {
		b.packages = append(b.packages, p)
		i := len(b.packages) - 1
		b.index[packageKey(p.Name)] = i
		for _, a := range p.Aliases {
			b.index[packageKey(a)] = i
		}
	}
	return b
}

func (b *PackageBook) Find(name string) (FixedPackage, bool) {
	if b == nil {
		return FixedPackage{}, false
	}
	i, ok := b.index[packageKey(name)]
	if !ok {
		return FixedPackage{}, false
	}
	return b.packages[i], true
}

func (b *PackageBook) All() []FixedPackage {
	if b == nil {
		return nil
	}
	out := make([]FixedPackage, len(b.packages))
	copy(out, b.packages)
	return out
}

func packageKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func DefaultPackages() *PackageBook {
	return NewPackageBook(
		FixedPackage{
			Name:        "Tirupati Balaji Darshan",
			Aliases:     []string{"Tirupati", "Tirumala"},
			DistanceKm:  140,
			DurationMin: 210,
			Fare:        3400,
			RefClass:    types.VehicleSedan,
		},
		FixedPackage{
			Name:        "Srikalahasti Temple Tour",
			Aliases:     []string{"Srikalahasti"},
			DistanceKm:  115,
			DurationMin: 180,
			Fare:        2800,
			RefClass:    types.VehicleSedan,
		},
		FixedPackage{
			Name:        "Kanchipuram Temple Tour",
			Aliases:     []string{"Kanchipuram", "Kanchi"},
			DistanceKm:  75,
			DurationMin: 120,
			Fare:        2100,
			RefClass:    types.VehicleSedan,
		},
	)
}
