package dto

import "time"

type EstimateResponse struct {
	ID                string    `json:"id"`
	Origin            string    `json:"origin"`
	Destination       string    `json:"destination"`
	FlightCode        string    `json:"flight_code"`
	DistanceKm        float64   `json:"distance_km"`
	AircraftType      string    `json:"aircraft_type"`
	CO2KgPerPassenger string    `json:"co2_kg_per_passenger"`
	CreatedAt         time.Time `json:"created_at"`
}

type ListEstimatesResponse struct {
	Estimates []EstimateResponse `json:"estimates"`
}
