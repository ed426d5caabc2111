package dto

type ResolveRequest struct {
	Op          string `json:"op"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	FlightCode  string `json:"flightCode"`
}

type PingResponse struct {
	Status string `json:"status"`
}

type DistanceResponse struct {
	Distance float64 `json:"distance"`
}

// AircraftType is null when the flight could not be resolved.
type AircraftResponse struct {
	AircraftType *string `json:"aircraftType"`
}

type EmissionsResponse struct {
	CO2          string  `json:"co2"`
	Distance     float64 `json:"distance"`
	AircraftType string  `json:"aircraftType"`
}
