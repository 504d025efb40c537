// README: Driver roster store backed by PostgreSQL.
package fleet

import (
	"context"
	"errors"

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

const driverColumns = `id, name, phone, vehicle_class, vehicle_number, online, created_at, updated_at`

func (s *Store) Create(ctx context.Context, d *Driver) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO drivers (`+driverColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		string(d.ID), d.Name, d.Phone, string(d.VehicleClass), d.VehicleNumber, d.Online, d.CreatedAt, d.UpdatedAt,
	)
	return err
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Driver, error) {
	row := s.db.QueryRow(ctx, `SELECT `+driverColumns+` FROM drivers WHERE id = $1`, string(id))
	return scanDriver(row)
}

func (s *Store) List(ctx context.Context) ([]Driver, error) {
	rows, err := s.db.Query(ctx, `SELECT `+driverColumns+` FROM drivers ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Driver
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

func (s *Store) SetOnline(ctx context.Context, id types.ID, online bool) (*Driver, error) {
	row := s.db.QueryRow(ctx, `
        UPDATE drivers SET online = $1, updated_at = NOW()
        WHERE id = $2
        RETURNING `+driverColumns, online, string(id))
	return scanDriver(row)
}

func (s *Store) Toggle(ctx context.Context, id types.ID) (*Driver, error) {
	row := s.db.QueryRow(ctx, `
        UPDATE drivers SET online = NOT online, updated_at = NOW()
        WHERE id = $1
        RETURNING `+driverColumns, string(id))
	return scanDriver(row)
}

func scanDriver(row pgx.Row) (*Driver, error) {
	var d Driver
	var id, class string
	err := row.Scan(&id, &d.Name, &d.Phone, &class, &d.VehicleNumber, &d.Online, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	d.ID = types.ID(id)
	d.VehicleClass = types.VehicleClass(class)
	return &d, nil
}
