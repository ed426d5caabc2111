package domain

import "time"

// Reported in place of an aircraft type that could not be resolved.
const UnknownAircraftType = "Unknown"

// Per-passenger CO2 estimate for a single flight.
// CO2KgPerPassenger is pre-formatted with one decimal place for stable display.
type EmissionResult struct {
	CO2KgPerPassenger string
	DistanceKm        float64
	AircraftType      string
}

// Represents an emissions estimate that was served to a caller.
// Records are written after the response is produced and are never read
// back by the resolution engine.
type EstimateRecord struct {
	ID                string
	Origin            string
	Destination       string
	FlightCode        string
	DistanceKm        float64
	AircraftType      string
	CO2KgPerPassenger string
	CreatedAt         time.Time
}
