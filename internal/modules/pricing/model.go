// README: Vehicle tariffs, fixed packages and fare breakdowns.
package pricing

import (
	"errors"

	"cabdesk/internal/types"
)

// TierCount is the number of distance bands in every tariff sequence.
const TierCount = 12

// FallbackFare is charged when a vehicle has no tariff table.
const FallbackFare int64 = 500

// tierBoundsKm are the inclusive upper bounds of each band.
var tierBoundsKm = [TierCount]float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 110, 130, 150}

// MaxTierKm is the last band's upper bound; overflow starts strictly above it.
const MaxTierKm = 150.0

var (
	ErrUnknownVehicle   = errors.New("unknown vehicle")
	ErrUnknownPackage   = errors.New("unknown package")
	ErrEstimationFailed = errors.New("distance estimation failed")
	ErrInvalidTariff    = errors.New("invalid tariff")
)

type Tariff struct {
	AC            [TierCount]int64 `json:"ac"`
	NonAC         [TierCount]int64 `json:"non_ac"`
	OverflowAC    int64            `json:"overflow_ac"`
	OverflowNonAC int64            `json:"overflow_non_ac"`
}

// Validate checks that both sequences are non-decreasing and positive and overflow rates are > 0.
func (t Tariff) Validate() error {
	if t.OverflowAC <= 0 || t.OverflowNonAC <= 0 {
		return ErrInvalidTariff
	}
	for _, seq := range [][TierCount]int64{t.AC, t.NonAC} {
		if seq[0] <= 0 {
			return ErrInvalidTariff
		}
		for i := 1; i < TierCount; i++ {
			if seq[i] < seq[i-1] {
				return ErrInvalidTariff
			}
		}
	}
	return nil
}

func (t Tariff) tiers(isAC bool) [TierCount]int64 {
	if isAC {
		return t.AC
	}
	return t.NonAC
}

func (t Tariff) overflowRate(isAC bool) int64 {
	if isAC {
		return t.OverflowAC
	}
	return t.OverflowNonAC
}

type Vehicle struct {
	Class    types.VehicleClass `json:"class"`
	Name     string             `json:"name"`
	Capacity int                `json:"capacity"`
	Tariff   *Tariff            `json:"tariff,omitempty"`
}

// FixedPackage is a named tour with a predetermined distance and a flat fare quoted for RefClass at AC.
type FixedPackage struct {
	Name        string             `json:"name"`
	Aliases     []string           `json:"aliases,omitempty"`
	DistanceKm  float64            `json:"distance_km"`
	DurationMin int                `json:"duration_min"`
	Fare        int64              `json:"fare"`
	RefClass    types.VehicleClass `json:"ref_class"`
}

type FareBreakdown struct {
	VehicleClass   types.VehicleClass `json:"vehicle_class"`
	IsAC           bool               `json:"ac"`
	DistanceKm     int64              `json:"distance_km"`
	Tier           int                `json:"tier"`
	BaseFare       int64              `json:"base_fare"`
	OverflowKm     float64            `json:"overflow_km"`
	OverflowCharge int64              `json:"overflow_charge"`
	PackageName    string             `json:"package,omitempty"`
	PackagePremium int64              `json:"package_premium"`
	TotalFare      int64              `json:"total_fare"`
	Currency       string             `json:"currency"`
	Fallback       bool               `json:"fallback,omitempty"`
}

type QuoteRequest struct {
	DistanceKm float64
	Class      types.VehicleClass
	AC         bool
	// Package, when set, overrides DistanceKm with the package's distance and blends its fare.
	Package string
}
