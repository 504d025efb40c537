// README: Pure fare computation over tiered tariffs and fixed-package blending.
package pricing

import (
	"math"

	"cabdesk/internal/types"
)

// ceilEpsilon absorbs float noise such as (155.3-150)*10 = 53.0000000001.
// Band bounds use the same tolerance so the tier agrees with the rounded DistanceKm.
const ceilEpsilon = 1e-9

func ceilInt(v float64) int64 {
	return int64(math.Ceil(v - ceilEpsilon))
}

// ComputeFare prices distanceKm for vehicle v. A band's upper bound is inclusive,
// so exactly 150 km is still the last tier and overflow begins above it.
// Vehicles without a tariff are charged FallbackFare.
func ComputeFare(distanceKm float64, v Vehicle, isAC bool) FareBreakdown {
	if distanceKm < 0 || math.IsNaN(distanceKm) {
		distanceKm = 0
	}
	out := FareBreakdown{
		VehicleClass: v.Class,
		IsAC:         isAC,
		DistanceKm:   ceilInt(distanceKm),
		Tier:         -1,
		Currency:     types.Currency,
	}
	if v.Tariff == nil {
		out.BaseFare = FallbackFare
		out.TotalFare = FallbackFare
		out.Fallback = true
		return out
	}

	tiers := v.Tariff.tiers(isAC)
	out.BaseFare = tiers[0]
	for i, bound := range tierBoundsKm {
		if distanceKm <= bound+ceilEpsilon {
			out.Tier = i
			out.TotalFare = tiers[i]
			return out
		}
	}

	extra := distanceKm - MaxTierKm
	out.Tier = TierCount - 1
	out.OverflowKm = extra
	out.OverflowCharge = ceilInt(extra * float64(v.Tariff.overflowRate(isAC)))
	out.TotalFare = tiers[TierCount-1] + out.OverflowCharge
	return out
}

// PackageFare prices a fixed package for vehicle v. The package fare is quoted for ref at AC;
// the difference between that and ref's tiered fare is carried as a premium onto v's tiered fare.
// The premium may be negative when the package undercuts the tiered rate.
func PackageFare(pkg FixedPackage, v, ref Vehicle, isAC bool) FareBreakdown {
	out := ComputeFare(pkg.DistanceKm, v, isAC)
	refFare := ComputeFare(pkg.DistanceKm, ref, true)
	out.PackageName = pkg.Name
	out.PackagePremium = pkg.Fare - refFare.TotalFare
	out.TotalFare += out.PackagePremium
	return out
}
