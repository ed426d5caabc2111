package services

import (
	"context"
	"flight-emissions-service/internal/platform/metrics"
	"flight-emissions-service/internal/ports"
	"flight-emissions-service/internal/reference"
	"regexp"

	"github.com/rs/zerolog"
)

// Codes shorter than this are treated as extraction noise.
const minFlightCodeLen = 3

// Status pages label the equipment as "<type> Aircraft Type".
var aircraftTypePattern = regexp.MustCompile(`([A-Z0-9\-]+)\s+Aircraft Type`)

// AircraftResolver maps a flight code to a best-guess aircraft type.
//
// The status page is consulted first and its token is taken verbatim. The
// flight page is a fallback scanned for the first known type code. Only
// positive results are cached: an unresolved flight is retried on the next
// call.
type AircraftResolver struct {
	cache        ports.ResolutionCache
	statusSource ports.TextSource
	flightSource ports.TextSource
	logger       zerolog.Logger
	metrics      *metrics.Metrics
}

// NewAircraftResolver builds a resolver. Either source may be nil.
func NewAircraftResolver(
	cache ports.ResolutionCache,
	statusSource ports.TextSource,
	flightSource ports.TextSource,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *AircraftResolver {
	return &AircraftResolver{
		cache:        cache,
		statusSource: statusSource,
		flightSource: flightSource,
		logger:       logger.With().Str("component", "aircraft_resolver").Logger(),
		metrics:      m,
	}
}

// ResolveAircraftType returns the aircraft type and true, or "" and false
// when nothing could be found. Absence is a normal outcome, not an error.
func (r *AircraftResolver) ResolveAircraftType(ctx context.Context, flightCode string) (string, bool) {
	if len(flightCode) < minFlightCodeLen {
		r.metrics.Resolved("aircraft", "invalid")
		return "", false
	}

	if t, ok := r.cache.GetAircraftType(flightCode); ok {
		r.metrics.Resolved("aircraft", "cache")
		return t, true
	}

	aircraftType, from, ok := firstHit(ctx,
		step[string]{name: "status_page", run: func(ctx context.Context) (string, bool) {
			return r.fromStatusPage(ctx, flightCode)
		}},
		step[string]{name: "flight_page", run: func(ctx context.Context) (string, bool) {
			return r.fromFlightPage(ctx, flightCode)
		}},
	)
	if !ok {
		r.metrics.Resolved("aircraft", "absent")
		requestLogger(ctx, r.logger).Debug().Str("flight", flightCode).Msg("aircraft type not found")
		return "", false
	}

	r.cache.PutAircraftType(flightCode, aircraftType)
	r.metrics.Resolved("aircraft", from)
	requestLogger(ctx, r.logger).Debug().
		Str("flight", flightCode).
		Str("step", from).
		Str("aircraft_type", aircraftType).
		Msg("aircraft type resolved")

	return aircraftType, true
}

func (r *AircraftResolver) fromStatusPage(ctx context.Context, flightCode string) (string, bool) {
	text, ok := r.fetch(ctx, r.statusSource, flightCode)
	if !ok {
		return "", false
	}

	m := aircraftTypePattern.FindStringSubmatch(text)
	if m == nil {
		r.metrics.SourceFailed(r.statusSource.Name())
		return "", false
	}
	return m[1], true
}

func (r *AircraftResolver) fromFlightPage(ctx context.Context, flightCode string) (string, bool) {
	text, ok := r.fetch(ctx, r.flightSource, flightCode)
	if !ok {
		return "", false
	}

	code, found := reference.FindTypeCodeIn(text)
	if !found {
		r.metrics.SourceFailed(r.flightSource.Name())
	}
	return code, found
}

func (r *AircraftResolver) fetch(ctx context.Context, src ports.TextSource, flightCode string) (string, bool) {
	if src == nil {
		return "", false
	}

	text, err := src.FetchText(ctx, flightCode)
	if err != nil {
		r.metrics.SourceFailed(src.Name())
		requestLogger(ctx, r.logger).Warn().Err(err).
			Str("source", src.Name()).
			Str("flight", flightCode).
			Msg("aircraft lookup failed")
		return "", false
	}
	return text, true
}
