// README: Dispatch request, eligibility rule and no-driver remediation hints.
package matching

import (
	"errors"
	"strings"
	"time"

	"cabdesk/internal/modules/fleet"
	"cabdesk/internal/types"
)

// ErrNoDriverAvailable is the NotFound outcome of a dispatch attempt. It is terminal for
// that attempt; nothing is queued or retried.
var ErrNoDriverAvailable = errors.New("no driver available")

type Request struct {
	BookingID    types.ID
	VehicleClass types.VehicleClass
}

const (
	ActionTryOtherClass = "try_other_vehicle_class"
	ActionCallDispatch  = "call_dispatch"
)

// Remediation tells the caller what it can offer after ErrNoDriverAvailable.
type Remediation struct {
	Actions          []string             `json:"actions"`
	AvailableClasses []types.VehicleClass `json:"available_classes"`
}

// defaultReservationTTL bounds how long a driver stays held by a booking that never completes.
const defaultReservationTTL = 4 * time.Hour

// Eligible reports whether d can take req: online and the same vehicle class.
func Eligible(req Request, d fleet.Driver) bool {
	return d.Online && strings.EqualFold(string(d.VehicleClass), string(req.VehicleClass))
}
