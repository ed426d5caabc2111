// Package reference holds the immutable lookup tables used by the resolution
// engine: per-type aircraft profiles and distances for common routes.
package reference

import (
	"flight-emissions-service/internal/domain"
	"strings"
)

// Applied when the aircraft type is absent or matches no known profile.
// Chosen to approximate a common narrow-body.
const (
	DefaultFuelBurnKgPerKm = 2.5
	DefaultCapacitySeats   = 180
)

// Declaration order is significant: substring matching picks the first
// entry whose code appears in the resolved type string.
var aircraftProfiles = []domain.AircraftProfile{
	{TypeCode: "A320", FuelBurnKgPerKm: 2.5, CapacitySeats: 180},
	{TypeCode: "A321", FuelBurnKgPerKm: 2.7, CapacitySeats: 220},
	{TypeCode: "A319", FuelBurnKgPerKm: 2.3, CapacitySeats: 140},
	{TypeCode: "B737", FuelBurnKgPerKm: 2.4, CapacitySeats: 160},
	{TypeCode: "B738", FuelBurnKgPerKm: 2.6, CapacitySeats: 180},
	{TypeCode: "B739", FuelBurnKgPerKm: 2.8, CapacitySeats: 190},
	{TypeCode: "A380", FuelBurnKgPerKm: 4.7, CapacitySeats: 550},
	{TypeCode: "B777", FuelBurnKgPerKm: 3.8, CapacitySeats: 350},
	{TypeCode: "B787", FuelBurnKgPerKm: 3.2, CapacitySeats: 290},
	{TypeCode: "A350", FuelBurnKgPerKm: 3.1, CapacitySeats: 330},
	{TypeCode: "E190", FuelBurnKgPerKm: 2.0, CapacitySeats: 100},
	{TypeCode: "E195", FuelBurnKgPerKm: 2.1, CapacitySeats: 120},
	{TypeCode: "CRJ9", FuelBurnKgPerKm: 1.9, CapacitySeats: 90},
	{TypeCode: "AT72", FuelBurnKgPerKm: 1.1, CapacitySeats: 70},
}

// Great-circle distances in km, keyed by ORIGIN-DEST.
var commonRoutes = map[string]float64{
	"CDG-LTN": 366,   // Paris to London Luton
	"CDG-LHR": 379,   // Paris to London Heathrow
	"CDG-MAD": 1062,  // Paris to Madrid
	"CDG-BCN": 831,   // Paris to Barcelona
	"CDG-MRS": 661,   // Paris to Marseille
	"CDG-AMS": 398,   // Paris to Amsterdam
	"CDG-FRA": 450,   // Paris to Frankfurt
	"CDG-FCO": 1107,  // Paris to Rome
	"LHR-JFK": 5536,  // London to New York
	"LHR-LAX": 8760,  // London to Los Angeles
	"CDG-JFK": 5834,  // Paris to New York
	"CDG-LAX": 9100,  // Paris to Los Angeles
	"CDG-DXB": 5234,  // Paris to Dubai
	"LHR-DXB": 5495,  // London to Dubai
	"CDG-SIN": 10734, // Paris to Singapore
	"LHR-SIN": 10874, // London to Singapore
}

// AircraftProfiles returns a copy of the known profiles in declaration order.
func AircraftProfiles() []domain.AircraftProfile {
	out := make([]domain.AircraftProfile, len(aircraftProfiles))
	copy(out, aircraftProfiles)
	return out
}

// MatchProfile returns the first declared profile whose type code is a
// substring of aircraftType. A type string containing several known codes
// always resolves to the one declared first.
func MatchProfile(aircraftType string) (domain.AircraftProfile, bool) {
	if aircraftType == "" {
		return domain.AircraftProfile{}, false
	}
	for _, p := range aircraftProfiles {
		if strings.Contains(aircraftType, p.TypeCode) {
			return p, true
		}
	}
	return domain.AircraftProfile{}, false
}

// FindTypeCodeIn scans text for the literal appearance of a known type code,
// in declaration order, and returns the first one found.
func FindTypeCodeIn(text string) (string, bool) {
	for _, p := range aircraftProfiles {
		if strings.Contains(text, p.TypeCode) {
			return p.TypeCode, true
		}
	}
	return "", false
}

// RouteDistance returns the tabulated distance for the exact key.
func RouteDistance(key domain.RouteKey) (float64, bool) {
	km, ok := commonRoutes[key.String()]
	return km, ok
}
