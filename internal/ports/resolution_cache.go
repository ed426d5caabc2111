package ports

import "flight-emissions-service/internal/domain"

// Process-lifetime memo of resolved distances and aircraft types.
// Entries are never expired or invalidated; a later Put for the same key
// simply overwrites the earlier value.
type ResolutionCache interface {
	GetDistance(key domain.RouteKey) (float64, bool)
	PutDistance(key domain.RouteKey, km float64)
	GetAircraftType(flightCode string) (string, bool)
	PutAircraftType(flightCode string, aircraftType string)
}
