package handlers

import (
	"context"
	"flight-emissions-service/internal/api/dto"
	"flight-emissions-service/internal/services"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// Body limit for a single resolve request.
const maxResolveBody = 64 << 10

type Dispatcher interface {
	Dispatch(ctx context.Context, req services.Request) <-chan *services.Response
}

// ResolveHandler is the request/response boundary of the resolution engine.
// Every request is answered with 200 and either a result object or JSON
// null; callers treat null as a routine "no result".
type ResolveHandler struct {
	Dispatcher Dispatcher
}

func (h *ResolveHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req dto.ResolveRequest

	dec := json.NewDecoder(io.LimitReader(r.Body, maxResolveBody))
	defer r.Body.Close()

	if err := dec.Decode(&req); err != nil {
		zerolog.Ctx(r.Context()).Info().Err(err).Msg("invalid resolve body")
		writeJSON(w, r, http.StatusOK, nil)
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		zerolog.Ctx(r.Context()).Info().Msg("resolve body must contain only one JSON object")
		writeJSON(w, r, http.StatusOK, nil)
		return
	}

	// Codes are cache keys and pass through exactly as received.
	svcReq := services.Request{
		Op:          services.Op(strings.TrimSpace(req.Op)),
		Origin:      req.Origin,
		Destination: req.Destination,
		FlightCode:  req.FlightCode,
	}

	var resp *services.Response
	select {
	case resp = <-h.Dispatcher.Dispatch(r.Context(), svcReq):
	case <-r.Context().Done():
		return
	}

	writeJSON(w, r, http.StatusOK, toResolveResponse(resp))
}

func toResolveResponse(resp *services.Response) any {
	if resp == nil {
		return nil
	}

	switch resp.Op {
	case services.OpPing:
		return dto.PingResponse{Status: resp.Status}
	case services.OpDistance:
		return dto.DistanceResponse{Distance: resp.DistanceKm}
	case services.OpAircraft:
		out := dto.AircraftResponse{}
		if resp.AircraftType != "" {
			t := resp.AircraftType
			out.AircraftType = &t
		}
		return out
	case services.OpEmissions:
		return dto.EmissionsResponse{
			CO2:          resp.CO2KgPerPassenger,
			Distance:     resp.DistanceKm,
			AircraftType: resp.AircraftType,
		}
	default:
		return nil
	}
}
