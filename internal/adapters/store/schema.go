package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// InitSchema creates the estimate log table and its index if missing.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createEstimateLogQuery := `
	CREATE TABLE IF NOT EXISTS estimate_log (
		id TEXT PRIMARY KEY,
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		flight_code TEXT NOT NULL,
		distance_km DOUBLE PRECISION NOT NULL,
		aircraft_type TEXT NOT NULL,
		co2_kg_per_passenger TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_estimate_log_created_at
	ON estimate_log(created_at DESC);
	`

	statements := []string{
		createEstimateLogQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
