// README: Booking store backed by PostgreSQL.
package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"cabdesk/internal/modules/pricing"
	"cabdesk/internal/types"
)

const uniqueViolation = "23505"

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

const bookingColumns = `
    id, customer_name, customer_phone, customer_email, pickup, drop_off,
    pickup_lat, pickup_lng, drop_lat, drop_lng,
    vehicle_class, ac, passenger_count, package_name, fare, total_fare, otp,
    status, status_version, driver_id,
    created_at, assigned_at, started_at, completed_at, cancelled_at, cancellation_reason`

func (s *Store) Create(ctx context.Context, b *Booking) error {
	pickupLat, pickupLng := pointArgs(b.PickupPoint)
	dropLat, dropLng := pointArgs(b.DropPoint)
	_, err := s.db.Exec(ctx, `
        INSERT INTO bookings (
            id, customer_name, customer_phone, customer_email, pickup, drop_off,
            pickup_lat, pickup_lng, drop_lat, drop_lng,
            vehicle_class, ac, passenger_count, package_name, fare, total_fare, otp,
            status, status_version, driver_id, created_at
        ) VALUES (
            $1, $2, $3, $4, $5, $6,
            $7, $8, $9, $10,
            $11, $12, $13, $14, $15, $16, $17,
            $18, $19, $20, $21
        )`,
		string(b.ID), b.CustomerName, b.CustomerPhone, b.CustomerEmail, b.Pickup, b.Drop,
		pickupLat, pickupLng, dropLat, dropLng,
		string(b.VehicleClass), b.AC, b.PassengerCount, b.PackageName, b.Fare, b.Fare.TotalFare, b.OTP,
		string(b.Status), b.StatusVersion, toStringPtr(b.DriverID), b.CreatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrConflict
	}
	return err
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Booking, error) {
	row := s.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, string(id))
	b, err := scanBooking(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return b, err
}

func (s *Store) List(ctx context.Context, f ListFilter) ([]Booking, error) {
	var where []string
	var args []any
	if f.Status != "" {
		args = append(args, string(f.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.DriverID != "" {
		args = append(args, string(f.DriverID))
		where = append(where, fmt.Sprintf("driver_id = $%d", len(args)))
	}
	if f.Phone != "" {
		args = append(args, f.Phone)
		where = append(where, fmt.Sprintf("customer_phone = $%d", len(args)))
	}
	q := `SELECT ` + bookingColumns + ` FROM bookings`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (s *Store) UpdateStatus(ctx context.Context, id types.ID, from, to Status, version int, reason *string) (bool, error) {
	tag, err := s.db.Exec(ctx, `
        UPDATE bookings
        SET status = $1,
            status_version = status_version + 1,
            assigned_at = CASE WHEN $1 = 'ASSIGNED' THEN NOW() ELSE assigned_at END,
            started_at = CASE WHEN $1 = 'ON_TRIP' THEN NOW() ELSE started_at END,
            completed_at = CASE WHEN $1 = 'COMPLETED' THEN NOW() ELSE completed_at END,
            cancelled_at = CASE WHEN $1 = 'CANCELLED' THEN NOW() ELSE cancelled_at END,
            cancellation_reason = COALESCE($2, cancellation_reason)
        WHERE id = $3 AND status = $4 AND status_version = $5`,
		string(to),
		reason,
		string(id),
		string(from),
		version,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Store) AppendEvent(ctx context.Context, e *Event) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO booking_events (
            booking_id, from_status, to_status, actor_type, actor_id, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6)`,
		string(e.BookingID),
		string(e.FromStatus),
		string(e.ToStatus),
		e.ActorType,
		toStringPtr(e.ActorID),
		e.CreatedAt,
	)
	return err
}

func (s *Store) Events(ctx context.Context, id types.ID) ([]Event, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, booking_id, from_status, to_status, actor_type, actor_id, created_at
        FROM booking_events
        WHERE booking_id = $1
        ORDER BY id`, string(id))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		var bookingID, from, to string
		var actorID sql.NullString
		if err := rows.Scan(&e.ID, &bookingID, &from, &to, &e.ActorType, &actorID, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.BookingID = types.ID(bookingID)
		e.FromStatus = Status(from)
		e.ToStatus = Status(to)
		if actorID.Valid {
			a := types.ID(actorID.String)
			e.ActorID = &a
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	var id, class, status string
	var pickupLat, pickupLng, dropLat, dropLng sql.NullFloat64
	var driverID, cancelReason sql.NullString
	var totalFare int64
	var fare pricing.FareBreakdown
	var assignedAt, startedAt, completedAt, cancelledAt sql.NullTime

	err := row.Scan(
		&id, &b.CustomerName, &b.CustomerPhone, &b.CustomerEmail, &b.Pickup, &b.Drop,
		&pickupLat, &pickupLng, &dropLat, &dropLng,
		&class, &b.AC, &b.PassengerCount, &b.PackageName, &fare, &totalFare, &b.OTP,
		&status, &b.StatusVersion, &driverID,
		&b.CreatedAt, &assignedAt, &startedAt, &completedAt, &cancelledAt, &cancelReason,
	)
	if err != nil {
		return nil, err
	}
	b.ID = types.ID(id)
	b.VehicleClass = types.VehicleClass(class)
	b.Status = Status(status)
	b.Fare = fare
	b.PickupPoint = toPoint(pickupLat, pickupLng)
	b.DropPoint = toPoint(dropLat, dropLng)
	if driverID.Valid {
		d := types.ID(driverID.String)
		b.DriverID = &d
	}
	if cancelReason.Valid {
		b.CancelReason = &cancelReason.String
	}
	b.AssignedAt = toTimePtr(assignedAt)
	b.StartedAt = toTimePtr(startedAt)
	b.CompletedAt = toTimePtr(completedAt)
	b.CancelledAt = toTimePtr(cancelledAt)
	return &b, nil
}

func pointArgs(p *types.Point) (*float64, *float64) {
	if p == nil {
		return nil, nil
	}
	lat, lng := p.Lat, p.Lng
	return &lat, &lng
}

func toPoint(lat, lng sql.NullFloat64) *types.Point {
	if !lat.Valid || !lng.Valid {
		return nil
	}
	return &types.Point{Lat: lat.Float64, Lng: lng.Float64}
}

func toStringPtr(v *types.ID) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}

func toTimePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
