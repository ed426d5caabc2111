package ports

import (
	"context"
	"flight-emissions-service/internal/domain"
)

// Port: a sink for emissions estimates that were served to callers.
type EstimateRecorder interface {
	RecordEstimate(ctx context.Context, rec domain.EstimateRecord) error
}

// Port: read access to previously recorded estimates, newest first.
type EstimateLister interface {
	ListRecentEstimates(ctx context.Context, limit int) ([]domain.EstimateRecord, error)
}
