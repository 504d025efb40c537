// README: Matching picks the first eligible driver in roster order, with an optional reservation step.
package matching

import (
	"context"
	"fmt"
	"strings"

	"cabdesk/internal/modules/fleet"
	"cabdesk/internal/types"
)

// Assign scans drivers in order and returns the first eligible one. There is no ranking
// and no reservation: two callers holding the same roster snapshot can get the same driver.
func Assign(req Request, drivers []fleet.Driver) (fleet.Driver, error) {
	for _, d := range drivers {
		if Eligible(req, d) {
			return d, nil
		}
	}
	return fleet.Driver{}, ErrNoDriverAvailable
}

// Remediate lists what a caller can offer after a failed dispatch.
func Remediate(drivers []fleet.Driver) Remediation {
	r := Remediation{
		Actions:          []string{ActionTryOtherClass, ActionCallDispatch},
		AvailableClasses: []types.VehicleClass{},
	}
	seen := make(map[types.VehicleClass]bool)
	for _, d := range drivers {
		if !d.Online {
			continue
		}
		c := types.VehicleClass(strings.ToUpper(string(d.VehicleClass)))
		if !seen[c] {
			seen[c] = true
			r.AvailableClasses = append(r.AvailableClasses, c)
		}
	}
	return r
}

// Reserver holds a driver for one booking so that concurrent dispatches skip it.
type Reserver interface {
	Reserve(ctx context.Context, driverID, bookingID types.ID) (bool, error)
	Release(ctx context.Context, driverID, bookingID types.ID) error
}

type Service struct {
	reserver Reserver
}

func NewService(reserver Reserver) *Service {
	return &Service{reserver: reserver}
}

// Dispatch behaves like Assign but claims the driver through the reserver first; drivers
// already held by another booking are skipped. Without a reserver it is exactly Assign.
func (s *Service) Dispatch(ctx context.Context, req Request, roster []fleet.Driver) (fleet.Driver, error) {
	if s.reserver == nil {
		return Assign(req, roster)
	}
	for _, d := range roster {
		if !Eligible(req, d) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return fleet.Driver{}, err
		}
		ok, err := s.reserver.Reserve(ctx, d.ID, req.BookingID)
		if err != nil {
			return fleet.Driver{}, fmt.Errorf("reserve driver %s: %w", d.ID, err)
		}
		if ok {
			return d, nil
		}
	}
	return fleet.Driver{}, ErrNoDriverAvailable
}

// Release frees driverID if bookingID still holds it.
func (s *Service) Release(ctx context.Context, driverID, bookingID types.ID) error {
	if s.reserver == nil || driverID == "" {
		return nil
	}
	return s.reserver.Release(ctx, driverID, bookingID)
}
