// README: Driver roster entries.
package fleet

import (
	"errors"
	"time"

	"cabdesk/internal/types"
)

type Driver struct {
	ID            types.ID           `json:"id"`
	Name          string             `json:"name"`
	Phone         string             `json:"phone"`
	VehicleClass  types.VehicleClass `json:"vehicle_class"`
	VehicleNumber string             `json:"vehicle_number"`
	Online        bool               `json:"online"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

var (
	ErrNotFound   = errors.New("driver not found")
	ErrBadRequest = errors.New("bad request")
)

type CreateCommand struct {
	Name          string
	Phone         string
	VehicleClass  string
	VehicleNumber string
	Online        bool
}
