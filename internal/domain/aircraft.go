package domain

// Fuel burn and seating figures for a known aircraft type.
// Profiles are immutable reference data.
type AircraftProfile struct {
	TypeCode        string
	FuelBurnKgPerKm float64
	CapacitySeats   int
}
