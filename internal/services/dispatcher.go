package services

import (
	"context"
	"flight-emissions-service/internal/domain"
	"flight-emissions-service/internal/platform/metrics"
	"flight-emissions-service/internal/platform/obs"
	"flight-emissions-service/internal/ports"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type Op string

const (
	OpPing      Op = "ping"
	OpDistance  Op = "distance"
	OpAircraft  Op = "aircraft"
	OpEmissions Op = "emissions"
)

// Budget for writing one estimate to the recorder after responding.
const recordTimeout = 5 * time.Second

// Request is one caller query. Fields irrelevant to Op are ignored.
type Request struct {
	Op          Op
	Origin      string
	Destination string
	FlightCode  string
}

// Response carries the fields populated for the request's Op.
// For OpAircraft an empty AircraftType means the type could not be resolved;
// for OpEmissions it is reported as domain.UnknownAircraftType.
type Response struct {
	Op                Op
	Status            string
	DistanceKm        float64
	AircraftType      string
	CO2KgPerPassenger string
}

type DistanceResolving interface {
	ResolveDistance(ctx context.Context, origin, destination string) float64
}

type AircraftResolving interface {
	ResolveAircraftType(ctx context.Context, flightCode string) (string, bool)
}

// Dispatcher routes requests to the resolvers and the emissions calculator.
// It is the only component aware of the asynchronous boundary: every call
// to Dispatch yields exactly one response on its channel, nil when the
// request could not be served.
type Dispatcher struct {
	distances DistanceResolving
	aircraft  AircraftResolving
	recorder  ports.EstimateRecorder
	logger    zerolog.Logger
	metrics   *metrics.Metrics

	now   func() time.Time
	newID func() string
}

// NewDispatcher builds a dispatcher. recorder may be nil.
func NewDispatcher(
	distances DistanceResolving,
	aircraft AircraftResolving,
	recorder ports.EstimateRecorder,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *Dispatcher {
	return &Dispatcher{
		distances: distances,
		aircraft:  aircraft,
		recorder:  recorder,
		logger:    logger.With().Str("component", "dispatcher").Logger(),
		metrics:   m,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Dispatch handles req in its own goroutine. The returned channel receives
// exactly one value and is then closed. Responses to concurrent requests
// may arrive in any order.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) <-chan *Response {
	out := make(chan *Response, 1)

	go func() {
		resp, rec := d.handle(ctx, req)
		out <- resp
		close(out)

		if rec != nil {
			d.record(ctx, *rec)
		}
	}()

	return out
}

func (d *Dispatcher) handle(ctx context.Context, req Request) (resp *Response, rec *domain.EstimateRecord) {
	var err error
	defer obs.Time(ctx, "dispatch."+string(req.Op))(&err)
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("dispatch %s: panic: %v", req.Op, p)
			requestLogger(ctx, d.logger).Error().Err(err).Msg("request failed")
			d.metrics.Dispatched(string(req.Op), "fault")
			resp, rec = nil, nil
		}
	}()

	// Resolution fills the process-wide cache, so it must not observe the
	// caller going away. Hung sources are bounded by the lookup client timeout.
	rctx := context.WithoutCancel(ctx)

	requestLogger(ctx, d.logger).Debug().
		Str("op", string(req.Op)).
		Str("origin", req.Origin).
		Str("destination", req.Destination).
		Str("flight", req.FlightCode).
		Msg("request received")

	switch req.Op {
	case OpPing:
		resp = &Response{Op: OpPing, Status: "ok"}

	case OpDistance:
		km := d.distances.ResolveDistance(rctx, req.Origin, req.Destination)
		resp = &Response{Op: OpDistance, DistanceKm: km}

	case OpAircraft:
		t, _ := d.aircraft.ResolveAircraftType(rctx, req.FlightCode)
		resp = &Response{Op: OpAircraft, AircraftType: t}

	case OpEmissions:
		var result domain.EmissionResult
		result, err = d.emissions(rctx, req)
		if err != nil {
			requestLogger(ctx, d.logger).Error().Err(err).Msg("request failed")
			d.metrics.Dispatched(string(req.Op), "fault")
			return nil, nil
		}
		resp = &Response{
			Op:                OpEmissions,
			DistanceKm:        result.DistanceKm,
			AircraftType:      result.AircraftType,
			CO2KgPerPassenger: result.CO2KgPerPassenger,
		}
		rec = &domain.EstimateRecord{
			Origin:            req.Origin,
			Destination:       req.Destination,
			FlightCode:        req.FlightCode,
			DistanceKm:        result.DistanceKm,
			AircraftType:      result.AircraftType,
			CO2KgPerPassenger: result.CO2KgPerPassenger,
		}

	default:
		requestLogger(ctx, d.logger).Info().Str("op", string(req.Op)).Msg("unknown request op")
		d.metrics.Dispatched(string(req.Op), "unknown")
		return nil, nil
	}

	d.metrics.Dispatched(string(req.Op), "ok")
	return resp, rec
}

// emissions resolves distance and aircraft type concurrently, then applies
// the formula once both are known. A fault in one resolver fails the request
// but leaves the other running to completion on ctx.
func (d *Dispatcher) emissions(ctx context.Context, req Request) (domain.EmissionResult, error) {
	var (
		km           float64
		aircraftType string
	)

	var g errgroup.Group
	g.Go(guard("resolve distance", func() {
		km = d.distances.ResolveDistance(ctx, req.Origin, req.Destination)
	}))
	g.Go(guard("resolve aircraft", func() {
		aircraftType, _ = d.aircraft.ResolveAircraftType(ctx, req.FlightCode)
	}))
	if err := g.Wait(); err != nil {
		return domain.EmissionResult{}, fmt.Errorf("compute emissions: %w", err)
	}

	return ComputeEmissions(km, aircraftType), nil
}

// guard converts a panic in fn into an error so it can be reported through
// errgroup instead of crashing the process.
func guard(name string, fn func()) func() error {
	return func() (err error) {
		defer func() {
			if p := recover(); p != nil {
				err = fmt.Errorf("%s: panic: %v", name, p)
			}
		}()
		fn()
		return nil
	}
}

func (d *Dispatcher) record(ctx context.Context, rec domain.EstimateRecord) {
	if d.recorder == nil {
		return
	}
	defer func() {
		if p := recover(); p != nil {
			requestLogger(ctx, d.logger).Error().Interface("panic", p).Msg("estimate recorder panicked")
		}
	}()

	rec.ID = d.newID()
	rec.CreatedAt = d.now().UTC()

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	if err := d.recorder.RecordEstimate(ctx, rec); err != nil {
		requestLogger(ctx, d.logger).Warn().Err(err).Str("estimate_id", rec.ID).Msg("estimate record failed")
	}
}
