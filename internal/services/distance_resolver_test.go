package services

import (
	"context"
	"errors"
	"flight-emissions-service/internal/adapters/cache"
	"flight-emissions-service/internal/adapters/lookup"
	"flight-emissions-service/internal/domain"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDistanceResolver(pages map[string]string) (*DistanceResolver, *cache.MemoryResolutionCache, *lookup.StaticTextSource) {
	c := cache.NewMemoryResolutionCache()
	src := lookup.NewStaticTextSource("distance-spy", pages)
	return NewDistanceResolver(c, src, zerolog.Nop(), nil), c, src
}

func TestResolveDistanceStaticTable(t *testing.T) {
	tests := []struct {
		origin, destination string
		want                float64
	}{
		{"CDG", "LTN", 366},
		{"CDG", "LHR", 379},
		{"CDG", "FCO", 1107},
		{"LHR", "JFK", 5536},
		{"CDG", "SIN", 10734},
		{"LHR", "SIN", 10874},
	}

	for _, tt := range tests {
		t.Run(tt.origin+"-"+tt.destination, func(t *testing.T) {
			r, c, src := newDistanceResolver(nil)

			got := r.ResolveDistance(context.Background(), tt.origin, tt.destination)
			assert.Equal(t, tt.want, got)

			cached, ok := c.GetDistance(domain.NewRouteKey(tt.origin, tt.destination))
			require.True(t, ok, "table hit must be written back to the cache")
			assert.Equal(t, tt.want, cached)

			got = r.ResolveDistance(context.Background(), tt.origin, tt.destination)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, 0, src.TotalCalls())
		})
	}
}

func TestResolveDistanceCacheWinsOverTable(t *testing.T) {
	r, c, src := newDistanceResolver(nil)
	c.PutDistance(domain.NewRouteKey("CDG", "LHR"), 400)

	got := r.ResolveDistance(context.Background(), "CDG", "LHR")
	assert.Equal(t, 400.0, got, "a cached route is never recomputed")
	assert.Equal(t, 0, src.TotalCalls())
}

func TestResolveDistanceReverseTable(t *testing.T) {
	r, c, src := newDistanceResolver(nil)

	got := r.ResolveDistance(context.Background(), "JFK", "LHR")
	assert.Equal(t, 5536.0, got)
	assert.Equal(t, 0, src.TotalCalls())

	cached, ok := c.GetDistance(domain.NewRouteKey("JFK", "LHR"))
	require.True(t, ok)
	assert.Equal(t, 5536.0, cached)
}

func TestResolveDistanceLookupAppliesCorrection(t *testing.T) {
	r, c, src := newDistanceResolver(map[string]string{
		"NCE-OSL": "<div>Flight distance: 1000 km (621 miles)</div>",
	})

	got := r.ResolveDistance(context.Background(), "NCE", "OSL")
	assert.InDelta(t, 1100.0, got, 1e-9)
	assert.Equal(t, 1, src.Calls("NCE-OSL"))

	cached, ok := c.GetDistance(domain.NewRouteKey("NCE", "OSL"))
	require.True(t, ok)
	assert.InDelta(t, 1100.0, cached, 1e-9)

	r.ResolveDistance(context.Background(), "NCE", "OSL")
	assert.Equal(t, 1, src.Calls("NCE-OSL"), "second call must be served from cache")
}

func TestResolveDistanceLookupDecimal(t *testing.T) {
	r, _, _ := newDistanceResolver(map[string]string{"NCE-ORY": "686.4km"})

	got := r.ResolveDistance(context.Background(), "NCE", "ORY")
	assert.InDelta(t, 755.04, got, 1e-9)
}

func TestResolveDistanceDefaults(t *testing.T) {
	t.Run("lookup fails", func(t *testing.T) {
		c := cache.NewMemoryResolutionCache()
		src := lookup.NewStaticTextSource("distance-spy", nil).FailWith("NCE-OSL", errors.New("connection reset"))
		r := NewDistanceResolver(c, src, zerolog.Nop(), nil)

		got := r.ResolveDistance(context.Background(), "NCE", "OSL")
		assert.Equal(t, DefaultDistanceKm, got)

		cached, ok := c.GetDistance(domain.NewRouteKey("NCE", "OSL"))
		require.True(t, ok, "default distance is cached like any other value")
		assert.Equal(t, DefaultDistanceKm, cached)

		r.ResolveDistance(context.Background(), "NCE", "OSL")
		assert.Equal(t, 1, src.Calls("NCE-OSL"))
	})

	t.Run("page without distance", func(t *testing.T) {
		r, _, _ := newDistanceResolver(map[string]string{"NCE-OSL": "<html>Too many requests</html>"})
		assert.Equal(t, DefaultDistanceKm, r.ResolveDistance(context.Background(), "NCE", "OSL"))
	})

	t.Run("no source configured", func(t *testing.T) {
		r := NewDistanceResolver(cache.NewMemoryResolutionCache(), nil, zerolog.Nop(), nil)
		assert.Equal(t, DefaultDistanceKm, r.ResolveDistance(context.Background(), "NCE", "OSL"))
	})
}

func TestResolveDistanceCancelledCallerDoesNotPinDefault(t *testing.T) {
	r, c, src := newDistanceResolver(map[string]string{"NCE-OSL": "1000 km"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, DefaultDistanceKm, r.ResolveDistance(ctx, "NCE", "OSL"))
	_, ok := c.GetDistance(domain.NewRouteKey("NCE", "OSL"))
	assert.False(t, ok, "default reached through cancellation must not be cached")

	got := r.ResolveDistance(context.Background(), "NCE", "OSL")
	assert.InDelta(t, 1100.0, got, 1e-9)
	assert.Equal(t, 2, src.Calls("NCE-OSL"), "later caller must reach the source")

	cached, ok := c.GetDistance(domain.NewRouteKey("NCE", "OSL"))
	require.True(t, ok)
	assert.InDelta(t, 1100.0, cached, 1e-9)
}

func TestResolveDistanceCancelledCallerKeepsTableHit(t *testing.T) {
	r, c, _ := newDistanceResolver(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, 379.0, r.ResolveDistance(ctx, "CDG", "LHR"))
	cached, ok := c.GetDistance(domain.NewRouteKey("CDG", "LHR"))
	require.True(t, ok)
	assert.Equal(t, 379.0, cached)
}

func TestParseKilometres(t *testing.T) {
	tests := []struct {
		text   string
		want   float64
		wantOK bool
	}{
		{"5834 km", 5834, true},
		{"approx 98km away", 98, true},
		{"first 450 km then 900 km", 450, true},
		{"12.5 km", 12.5, true},
		{"7 km", 0, false},
		{"12345678 km", 0, false},
		{"1000 kms", 0, false},
		{"1000 miles", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := parseKilometres(tt.text)
			require.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
