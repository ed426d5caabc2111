package services

import (
	"context"
	"flight-emissions-service/internal/domain"
	"flight-emissions-service/internal/platform/metrics"
	"flight-emissions-service/internal/ports"
	"flight-emissions-service/internal/reference"
	"regexp"
	"strconv"

	"github.com/rs/zerolog"
)

const (
	// Used when no cache entry, table row or lookup produced a distance.
	DefaultDistanceKm = 800.0

	// Scraped distances are great-circle; +10% approximates indirect routing.
	// The emissions formula applies its own, separate correction.
	lookupRoutingCorrection = 1.1
)

// First "<number> km" token in the page, e.g. "5834 km" or "686.4km".
var kmPattern = regexp.MustCompile(`\b(\d{2,5}(?:\.\d+)?) ?km\b`)

// DistanceResolver turns an origin/destination pair into kilometres.
//
// Resolution order: cache, static table, reversed static table, external
// page lookup, fixed default. Every step after the cache writes its result
// back, so a route is resolved at most once per process.
type DistanceResolver struct {
	cache   ports.ResolutionCache
	source  ports.TextSource
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// NewDistanceResolver builds a resolver. source may be nil, in which case
// unknown routes go straight to the default distance.
func NewDistanceResolver(
	cache ports.ResolutionCache,
	source ports.TextSource,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *DistanceResolver {
	return &DistanceResolver{
		cache:   cache,
		source:  source,
		logger:  logger.With().Str("component", "distance_resolver").Logger(),
		metrics: m,
	}
}

// ResolveDistance always returns a distance; source failures degrade to the
// next step and finally to DefaultDistanceKm.
func (r *DistanceResolver) ResolveDistance(ctx context.Context, origin, destination string) float64 {
	key := domain.NewRouteKey(origin, destination)

	if km, ok := r.cache.GetDistance(key); ok {
		r.metrics.Resolved("distance", "cache")
		return km
	}

	km, from, _ := firstHit(ctx,
		step[float64]{name: "table", run: func(context.Context) (float64, bool) {
			return reference.RouteDistance(key)
		}},
		step[float64]{name: "table_reverse", run: func(context.Context) (float64, bool) {
			return reference.RouteDistance(key.Reverse())
		}},
		step[float64]{name: "lookup", run: func(ctx context.Context) (float64, bool) {
			return r.lookup(ctx, key)
		}},
		step[float64]{name: "default", run: func(context.Context) (float64, bool) {
			return DefaultDistanceKm, true
		}},
	)

	// A default reached because the caller went away says nothing about the
	// route; caching it would pin 800 km for every later caller.
	if from == "default" && ctx.Err() != nil {
		r.metrics.Resolved("distance", "aborted")
		requestLogger(ctx, r.logger).Debug().
			Str("route", key.String()).
			Err(ctx.Err()).
			Msg("distance lookup aborted, default not cached")
		return km
	}

	r.cache.PutDistance(key, km)
	r.metrics.Resolved("distance", from)
	requestLogger(ctx, r.logger).Debug().
		Str("route", key.String()).
		Str("step", from).
		Float64("km", km).
		Msg("distance resolved")

	return km
}

func (r *DistanceResolver) lookup(ctx context.Context, key domain.RouteKey) (float64, bool) {
	if r.source == nil {
		return 0, false
	}

	text, err := r.source.FetchText(ctx, key.String())
	if err != nil {
		r.metrics.SourceFailed(r.source.Name())
		requestLogger(ctx, r.logger).Warn().Err(err).
			Str("source", r.source.Name()).
			Str("route", key.String()).
			Msg("distance lookup failed")
		return 0, false
	}

	km, ok := parseKilometres(text)
	if !ok {
		r.metrics.SourceFailed(r.source.Name())
		requestLogger(ctx, r.logger).Debug().
			Str("source", r.source.Name()).
			Str("route", key.String()).
			Msg("no distance found in page")
		return 0, false
	}

	return km * lookupRoutingCorrection, true
}

func parseKilometres(text string) (float64, bool) {
	m := kmPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	km, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return km, true
}
