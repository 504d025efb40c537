// README: Pricing service computes fare quotes from the catalog and fixed packages.
package pricing

import (
	"context"

	"cabdesk/internal/types"
)

type Service struct {
	catalog  Catalog
	packages *PackageBook
}

func NewService(catalog Catalog, packages *PackageBook) *Service {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Service{catalog: catalog, packages: packages}
}

func (s *Service) Vehicle(ctx context.Context, class types.VehicleClass) (Vehicle, error) {
	return s.catalog.Vehicle(ctx, class)
}

func (s *Service) Vehicles(ctx context.Context) ([]Vehicle, error) {
	return s.catalog.Vehicles(ctx)
}

func (s *Service) Packages() []FixedPackage {
	return s.packages.All()
}

func (s *Service) FindPackage(name string) (FixedPackage, bool) {
	return s.packages.Find(name)
}

// Quote prices a request. A package name takes precedence over DistanceKm; without one a
// non-positive distance means the estimate never arrived and no fare is produced.
func (s *Service) Quote(ctx context.Context, req QuoteRequest) (FareBreakdown, error) {
	v, err := s.catalog.Vehicle(ctx, req.Class)
	if err != nil {
		return FareBreakdown{}, err
	}
	if req.Package != "" {
		pkg, ok := s.packages.Find(req.Package)
		if !ok {
			return FareBreakdown{}, ErrUnknownPackage
		}
		ref, err := s.catalog.Vehicle(ctx, pkg.RefClass)
		if err != nil {
			return FareBreakdown{}, err
		}
		return PackageFare(pkg, v, ref, req.AC), nil
	}
	if req.DistanceKm <= 0 {
		return FareBreakdown{}, ErrEstimationFailed
	}
	return ComputeFare(req.DistanceKm, v, req.AC), nil
}
