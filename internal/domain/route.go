package domain

import "fmt"

// Three-letter airport code as extracted from a booking page.
// Codes are not validated against any airport registry.
type AirportCode string

// Ordered origin/destination pair identifying a flight route.
// A RouteKey is distinct from its reverse; each is cached independently.
type RouteKey struct {
	Origin      AirportCode
	Destination AirportCode
}

func NewRouteKey(origin, destination string) RouteKey {
	return RouteKey{Origin: AirportCode(origin), Destination: AirportCode(destination)}
}

// Return the key serialized as ORIGIN-DEST.
func (k RouteKey) String() string {
	return fmt.Sprintf("%s-%s", k.Origin, k.Destination)
}

// Return the same route flown in the opposite direction.
func (k RouteKey) Reverse() RouteKey {
	return RouteKey{Origin: k.Destination, Destination: k.Origin}
}
