package handlers

import (
	"flight-emissions-service/internal/api/dto"
	"flight-emissions-service/internal/ports"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"
)

const defaultEstimateLimit = 50

// EstimateHandler exposes read-only access to the estimate log.
type EstimateHandler struct {
	Lister ports.EstimateLister
}

func (h *EstimateHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultEstimateLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 500 {
			writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 500")
			return
		}
		limit = n
	}

	recs, err := h.Lister.ListRecentEstimates(r.Context(), limit)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("list estimates failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListEstimatesResponse{
		Estimates: make([]dto.EstimateResponse, 0, len(recs)),
	}
	for _, e := range recs {
		res.Estimates = append(res.Estimates, dto.EstimateResponse{
			ID:                e.ID,
			Origin:            e.Origin,
			Destination:       e.Destination,
			FlightCode:        e.FlightCode,
			DistanceKm:        e.DistanceKm,
			AircraftType:      e.AircraftType,
			CO2KgPerPassenger: e.CO2KgPerPassenger,
			CreatedAt:         e.CreatedAt,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
