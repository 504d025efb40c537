// README: Booking aggregate and status definitions.
package booking

import (
	"time"

	"cabdesk/internal/modules/pricing"
	"cabdesk/internal/types"
)

type Status string

const (
	StatusNone      Status = "NONE"
	StatusPending   Status = "PENDING"
	StatusAssigned  Status = "ASSIGNED"
	StatusOnTrip    Status = "ON_TRIP"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

const (
	ActorCustomer = "customer"
	ActorDriver   = "driver"
	ActorAdmin    = "admin"
	ActorSystem   = "system"
)

type Booking struct {
	ID             types.ID              `json:"id"`
	CustomerName   string                `json:"customer_name"`
	CustomerPhone  string                `json:"customer_phone"`
	CustomerEmail  string                `json:"customer_email,omitempty"`
	Pickup         string                `json:"pickup"`
	Drop           string                `json:"drop"`
	PickupPoint    *types.Point          `json:"pickup_point,omitempty"`
	DropPoint      *types.Point          `json:"drop_point,omitempty"`
	VehicleClass   types.VehicleClass    `json:"vehicle_class"`
	AC             bool                  `json:"ac"`
	PassengerCount int                   `json:"passenger_count"`
	PackageName    string                `json:"package,omitempty"`
	Fare           pricing.FareBreakdown `json:"fare"`
	OTP            string                `json:"otp"`
	Status         Status                `json:"status"`
	StatusVersion  int                   `json:"status_version"`
	DriverID       *types.ID             `json:"driver_id,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	AssignedAt     *time.Time            `json:"assigned_at,omitempty"`
	StartedAt      *time.Time            `json:"started_at,omitempty"`
	CompletedAt    *time.Time            `json:"completed_at,omitempty"`
	CancelledAt    *time.Time            `json:"cancelled_at,omitempty"`
	CancelReason   *string               `json:"cancel_reason,omitempty"`
}

type Event struct {
	ID         int64     `json:"id"`
	BookingID  types.ID  `json:"booking_id"`
	FromStatus Status    `json:"from_status"`
	ToStatus   Status    `json:"to_status"`
	ActorType  string    `json:"actor_type"`
	ActorID    *types.ID `json:"actor_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// AllowedTransitions represents the booking state flow as code.
// COMPLETED and CANCELLED are terminal.
var AllowedTransitions = map[Status][]Status{
	StatusPending:  {StatusAssigned, StatusCancelled},
	StatusAssigned: {StatusOnTrip, StatusCancelled},
	StatusOnTrip:   {StatusCompleted, StatusCancelled},
}

func CanTransition(from, to Status) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}

// IsActive reports whether the booking still holds its driver.
func (s Status) IsActive() bool {
	switch s {
	case StatusPending, StatusAssigned, StatusOnTrip:
		return true
	}
	return false
}

type ListFilter struct {
	Status   Status
	DriverID types.ID
	Phone    string
}

func (f ListFilter) matches(b *Booking) bool {
	if f.Status != "" && b.Status != f.Status {
		return false
	}
	if f.DriverID != "" && (b.DriverID == nil || *b.DriverID != f.DriverID) {
		return false
	}
	if f.Phone != "" && b.CustomerPhone != f.Phone {
		return false
	}
	return true
}
