// README: Vehicle class enum; parsing normalizes case so comparisons stay exact.
package types

import (
	"errors"
	"strings"
)

type VehicleClass string

const (
	VehicleHatchback      VehicleClass = "HATCHBACK"
	VehicleSedan          VehicleClass = "SEDAN"
	VehicleSUV            VehicleClass = "SUV"
	VehicleTempoTraveller VehicleClass = "TEMPO_TRAVELLER"
)

var ErrUnknownVehicleClass = errors.New("unknown vehicle class")

// AllVehicleClasses returns every class in display order.
func AllVehicleClasses() []VehicleClass {
	return []VehicleClass{VehicleHatchback, VehicleSedan, VehicleSUV, VehicleTempoTraveller}
}

// ParseVehicleClass accepts any casing and surrounding whitespace ("sedan", " Sedan ").
// Hyphens and spaces are treated as underscores so "tempo traveller" resolves too.
func ParseVehicleClass(s string) (VehicleClass, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	v = strings.NewReplacer("-", "_", " ", "_").Replace(v)
	c := VehicleClass(v)
	if !c.IsValid() {
		return "", ErrUnknownVehicleClass
	}
	return c, nil
}

func (c VehicleClass) IsValid() bool {
	switch c {
	case VehicleHatchback, VehicleSedan, VehicleSUV, VehicleTempoTraveller:
		return true
	}
	return false
}

func (c VehicleClass) String() string {
	return string(c)
}
