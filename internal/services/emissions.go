package services

import (
	"flight-emissions-service/internal/domain"
	"flight-emissions-service/internal/reference"
	"math"
	"math/big"
	"strconv"
)

// Fixed coefficients of the per-passenger emissions formula.
const (
	// Indirect-routing correction. Stacks with the one applied to scraped
	// distances; both are kept.
	emissionsRoutingCorrection = 1.1
	// kg CO2 per kg of fuel burned.
	co2PerKgFuel = 3.7
	// Non-CO2 altitude effects.
	radiativeForcingMultiplier = 3.0
	// Average share of seats occupied.
	loadFactor = 0.85
)

// ComputeEmissions estimates CO2 per passenger for a flight of distanceKm.
//
//	co2 = (distanceKm * 1.1) * 3.7 * 3 * fuelBurn / (capacity * 0.85)
//
// fuelBurn and capacity come from the first known profile whose type code is
// contained in aircraftType, or from the narrow-body defaults when
// aircraftType is empty or matches nothing.
func ComputeEmissions(distanceKm float64, aircraftType string) domain.EmissionResult {
	fuelBurn := reference.DefaultFuelBurnKgPerKm
	capacity := reference.DefaultCapacitySeats

	if p, ok := reference.MatchProfile(aircraftType); ok {
		fuelBurn = p.FuelBurnKgPerKm
		capacity = p.CapacitySeats
	}

	co2 := (distanceKm * emissionsRoutingCorrection) * co2PerKgFuel * radiativeForcingMultiplier * fuelBurn /
		(float64(capacity) * loadFactor)

	reported := aircraftType
	if reported == "" {
		reported = domain.UnknownAircraftType
	}

	return domain.EmissionResult{
		CO2KgPerPassenger: formatTenths(co2),
		DistanceKm:        distanceKm,
		AircraftType:      reported,
	}
}

// formatTenths renders v with one decimal, rounding the exact binary value
// and sending ties away from zero (0.25 -> "0.3", 1.45 -> "1.4").
// strconv rounds exact ties to even, which would print "0.2".
func formatTenths(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}

	r := new(big.Rat).SetFloat64(math.Abs(v))
	r.Mul(r, big.NewRat(10, 1))
	r.Add(r, big.NewRat(1, 2))
	tenths := new(big.Int).Quo(r.Num(), r.Denom())

	whole, frac := new(big.Int).QuoRem(tenths, big.NewInt(10), new(big.Int))
	out := whole.String() + "." + frac.String()
	if v < 0 {
		out = "-" + out
	}
	return out
}
