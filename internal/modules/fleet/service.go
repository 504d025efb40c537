// README: Fleet service manages the driver roster (admin creation, online toggles).
package fleet

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"cabdesk/internal/types"
)

// Repository is satisfied by Store and MemoryStore.
type Repository interface {
	Create(ctx context.Context, d *Driver) error
	Get(ctx context.Context, id types.ID) (*Driver, error)
	List(ctx context.Context) ([]Driver, error)
	SetOnline(ctx context.Context, id types.ID, online bool) (*Driver, error)
	Toggle(ctx context.Context, id types.ID) (*Driver, error)
}

type Service struct {
	store Repository
}

func NewService(store Repository) *Service {
	return &Service{store: store}
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Driver, error) {
	if strings.TrimSpace(cmd.Name) == "" {
		return nil, ErrBadRequest
	}
	class, err := types.ParseVehicleClass(cmd.VehicleClass)
	if err != nil {
		return nil, ErrBadRequest
	}
	now := time.Now()
	d := &Driver{
		ID:            types.ID(uuid.NewString()),
		Name:          strings.TrimSpace(cmd.Name),
		Phone:         strings.TrimSpace(cmd.Phone),
		VehicleClass:  class,
		VehicleNumber: strings.ToUpper(strings.TrimSpace(cmd.VehicleNumber)),
		Online:        cmd.Online,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Seed loads an initial roster. Drivers keep their ids; missing timestamps are filled in
// so that roster order follows the slice order.
func (s *Service) Seed(ctx context.Context, drivers []Driver) error {
	base := time.Now()
	for i := range drivers {
		d := drivers[i]
		if d.ID == "" {
			d.ID = types.ID(uuid.NewString())
		}
		if d.CreatedAt.IsZero() {
			d.CreatedAt = base.Add(time.Duration(i) * time.Millisecond)
		}
		if d.UpdatedAt.IsZero() {
			d.UpdatedAt = d.CreatedAt
		}
		if err := s.store.Create(ctx, &d); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Driver, error) {
	return s.store.Get(ctx, id)
}

// List returns the roster in dispatch scan order.
func (s *Service) List(ctx context.Context) ([]Driver, error) {
	return s.store.List(ctx)
}

func (s *Service) SetOnline(ctx context.Context, id types.ID, online bool) (*Driver, error) {
	return s.store.SetOnline(ctx, id, online)
}

func (s *Service) Toggle(ctx context.Context, id types.ID) (*Driver, error) {
	return s.store.Toggle(ctx, id)
}

// DemoRoster is the sample roster used when no database is configured.
func DemoRoster() []Driver {
	return []Driver{
		{ID: "drv-ravi", Name: "Ravi Kumar", Phone: "+919840000001", VehicleClass: types.VehicleSedan, VehicleNumber: "TN09AB1234", Online: true},
		{ID: "drv-suresh", Name: "Suresh Babu", Phone: "+919840000002", VehicleClass: types.VehicleHatchback, VehicleNumber: "TN10CD5678", Online: true},
		{ID: "drv-arjun", Name: "Arjun Reddy", Phone: "+919840000003", VehicleClass: types.VehicleSUV, VehicleNumber: "AP03EF9012", Online: false},
		{ID: "drv-mani", Name: "Mani Shankar", Phone: "+919840000004", VehicleClass: types.VehicleSUV, VehicleNumber: "TN07GH3456", Online: true},
		{ID: "drv-kannan", Name: "Kannan Pillai", Phone: "+919840000005", VehicleClass: types.VehicleTempoTraveller, VehicleNumber: "TN22JK7890", Online: true},
	}
}
