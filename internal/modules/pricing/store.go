// README: Vehicle catalog backed by PostgreSQL (vehicle_classes table).
package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cabdesk/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

const selectVehicle = `
    SELECT class, name, capacity, ac_tiers, non_ac_tiers, overflow_ac, overflow_non_ac
    FROM vehicle_classes`

func (s *Store) Vehicle(ctx context.Context, class types.VehicleClass) (Vehicle, error) {
	row := s.db.QueryRow(ctx, selectVehicle+` WHERE class = $1`, string(class))
	v, err := scanVehicle(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Vehicle{}, ErrUnknownVehicle
	}
	return v, err
}

func (s *Store) Vehicles(ctx context.Context) ([]Vehicle, error) {
	rows, err := s.db.Query(ctx, selectVehicle+` ORDER BY sort_order, class`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Upsert writes v; a nil tariff is stored as NULL tiers.
func (s *Store) Upsert(ctx context.Context, v Vehicle, sortOrder int) error {
	var ac, nonAC []int64
	var ovfAC, ovfNonAC *int64
	if v.Tariff != nil {
		if err := v.Tariff.Validate(); err != nil {
			return err
		}
		ac = v.Tariff.AC[:]
		nonAC = v.Tariff.NonAC[:]
		ovfAC = &v.Tariff.OverflowAC
		ovfNonAC = &v.Tariff.OverflowNonAC
	}
	_, err := s.db.Exec(ctx, `
        INSERT INTO vehicle_classes (
            class, name, capacity, ac_tiers, non_ac_tiers, overflow_ac, overflow_non_ac, sort_order
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        ON CONFLICT (class) DO UPDATE SET
            name = EXCLUDED.name,
            capacity = EXCLUDED.capacity,
            ac_tiers = EXCLUDED.ac_tiers,
            non_ac_tiers = EXCLUDED.non_ac_tiers,
            overflow_ac = EXCLUDED.overflow_ac,
            overflow_non_ac = EXCLUDED.overflow_non_ac,
            sort_order = EXCLUDED.sort_order`,
		string(v.Class), v.Name, v.Capacity, ac, nonAC, ovfAC, ovfNonAC, sortOrder,
	)
	return err
}

func scanVehicle(row pgx.Row) (Vehicle, error) {
	var v Vehicle
	var class string
	var ac, nonAC []int64
	var ovfAC, ovfNonAC *int64
	if err := row.Scan(&class, &v.Name, &v.Capacity, &ac, &nonAC, &ovfAC, &ovfNonAC); err != nil {
		return Vehicle{}, err
	}
	v.Class = types.VehicleClass(class)
	if ac == nil && nonAC == nil {
		return v, nil
	}
	if len(ac) != TierCount || len(nonAC) != TierCount || ovfAC == nil || ovfNonAC == nil {
		return Vehicle{}, fmt.Errorf("vehicle %s: %w", class, ErrInvalidTariff)
	}
	t := &Tariff{OverflowAC: *ovfAC, OverflowNonAC: *ovfNonAC}
	copy(t.AC[:], ac)
	copy(t.NonAC[:], nonAC)
	v.Tariff = t
	return v, nil
}
