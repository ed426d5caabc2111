package store

import (
	"context"
	"database/sql"
	"errors"
	"flight-emissions-service/internal/domain"
	"flight-emissions-service/internal/platform/obs"
	"fmt"
	"strings"
)

const maxListLimit = 500

// SQLEstimateLog is a Postgres-backed log of served emissions estimates.
// It is append-only from the engine's point of view and is never consulted
// during resolution.
type SQLEstimateLog struct {
	DB *sql.DB
}

func NewSQLEstimateLog(db *sql.DB) *SQLEstimateLog {
	return &SQLEstimateLog{DB: db}
}

// Store a single estimate. Re-recording the same id is a no-op.
func (s *SQLEstimateLog) RecordEstimate(ctx context.Context, rec domain.EstimateRecord) (err error) {
	defer obs.Time(ctx, "estimate.log.Record")(&err)

	if s.DB == nil {
		return errors.New("estimate log: db is nil")
	}

	if strings.TrimSpace(rec.ID) == "" {
		return errors.New("insert estimate log: id must not be empty")
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT INTO estimate_log (
		id,
		origin,
		destination,
		flight_code,
		distance_km,
		aircraft_type,
		co2_kg_per_passenger,
		created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (id) DO NOTHING;
	`,
		rec.ID, rec.Origin, rec.Destination, rec.FlightCode,
		rec.DistanceKm, rec.AircraftType, rec.CO2KgPerPassenger, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert estimate log id=%q: %w", rec.ID, err)
	}

	return nil
}

// Return up to limit estimates, newest first.
func (s *SQLEstimateLog) ListRecentEstimates(
	ctx context.Context,
	limit int,
) (_ []domain.EstimateRecord, err error) {
	defer obs.Time(ctx, "estimate.log.ListRecent")(&err)

	if s.DB == nil {
		return nil, errors.New("estimate log: db is nil")
	}

	if limit <= 0 {
		return []domain.EstimateRecord{}, nil
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	q := `
	SELECT id, origin, destination, flight_code, distance_km,
		aircraft_type, co2_kg_per_passenger, created_at
	FROM estimate_log
	ORDER BY created_at DESC, id
	LIMIT $1;
	`

	rows, err := s.DB.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("list estimate log: query estimate_log table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.EstimateRecord, 0, limit)
	for rows.Next() {
		var r domain.EstimateRecord
		if err := rows.Scan(
			&r.ID, &r.Origin, &r.Destination, &r.FlightCode, &r.DistanceKm,
			&r.AircraftType, &r.CO2KgPerPassenger, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("list estimate log: scan rows: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list estimate log: row iteration: %w", err)
	}

	return out, nil
}
