package ports

import "context"

// Contract for an external source that returns raw, unstructured text.
// Implementations perform a single attempt per call; callers decide what
// a failure means.
type TextSource interface {
	// Name identifies the source in logs and metrics.
	Name() string
	// Return the raw text the source publishes for key.
	FetchText(ctx context.Context, key string) (string, error)
}
