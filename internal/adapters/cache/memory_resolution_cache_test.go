package cache

import (
	"flight-emissions-service/internal/domain"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryResolutionCacheDistances(t *testing.T) {
	c := NewMemoryResolutionCache()
	key := domain.NewRouteKey("CDG", "NCE")

	_, ok := c.GetDistance(key)
	require.False(t, ok)

	c.PutDistance(key, 690)
	km, ok := c.GetDistance(key)
	require.True(t, ok)
	assert.Equal(t, 690.0, km)

	_, ok = c.GetDistance(key.Reverse())
	assert.False(t, ok, "reverse key is cached independently")

	c.PutDistance(key, 700)
	km, _ = c.GetDistance(key)
	assert.Equal(t, 700.0, km, "last write wins")
}

func TestMemoryResolutionCacheAircraftIsCaseSensitive(t *testing.T) {
	c := NewMemoryResolutionCache()
	c.PutAircraftType("AF1234", "A320")

	got, ok := c.GetAircraftType("AF1234")
	require.True(t, ok)
	assert.Equal(t, "A320", got)

	_, ok = c.GetAircraftType("af1234")
	assert.False(t, ok)
}

func TestMemoryResolutionCacheConcurrentWrites(t *testing.T) {
	c := NewMemoryResolutionCache()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.PutDistance(domain.NewRouteKey("AAA", fmt.Sprintf("B%02d", i%10)), float64(i))
			c.PutAircraftType(fmt.Sprintf("XX%d", i%5), "B738")
			c.GetDistance(domain.NewRouteKey("AAA", "B01"))
		}(i)
	}
	wg.Wait()

	distances, aircraft := c.Len()
	assert.Equal(t, 10, distances)
	assert.Equal(t, 5, aircraft)
}
