package cache

import (
	"flight-emissions-service/internal/domain"
	"sync"
)

// MemoryResolutionCache keeps resolved route distances and aircraft types
// for the lifetime of the process. There is no eviction and no TTL.
//
// The two maps are independent. Writes are plain sets: concurrent resolvers
// that miss on the same key both compute and the last write wins. The
// mutexes only make map access memory-safe; they do not serialize
// resolution.
type MemoryResolutionCache struct {
	distMu    sync.RWMutex
	distances map[domain.RouteKey]float64

	acMu     sync.RWMutex
	aircraft map[string]string
}

func NewMemoryResolutionCache() *MemoryResolutionCache {
	return &MemoryResolutionCache{
		distances: make(map[domain.RouteKey]float64),
		aircraft:  make(map[string]string),
	}
}

func (c *MemoryResolutionCache) GetDistance(key domain.RouteKey) (float64, bool) {
	c.distMu.RLock()
	defer c.distMu.RUnlock()

	km, ok := c.distances[key]
	return km, ok
}

func (c *MemoryResolutionCache) PutDistance(key domain.RouteKey, km float64) {
	c.distMu.Lock()
	c.distances[key] = km
	c.distMu.Unlock()
}

// Flight codes are matched case-sensitively, exactly as received.
func (c *MemoryResolutionCache) GetAircraftType(flightCode string) (string, bool) {
	c.acMu.RLock()
	defer c.acMu.RUnlock()

	t, ok := c.aircraft[flightCode]
	return t, ok
}

func (c *MemoryResolutionCache) PutAircraftType(flightCode string, aircraftType string) {
	c.acMu.Lock()
	c.aircraft[flightCode] = aircraftType
	c.acMu.Unlock()
}

// Len reports the number of cached distances and aircraft types.
func (c *MemoryResolutionCache) Len() (distances int, aircraft int) {
	c.distMu.RLock()
	distances = len(c.distances)
	c.distMu.RUnlock()

	c.acMu.RLock()
	aircraft = len(c.aircraft)
	c.acMu.RUnlock()

	return distances, aircraft
}
