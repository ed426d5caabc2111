package services

import (
	"context"
	"flight-emissions-service/internal/platform/obs"

	"github.com/rs/zerolog"
)

// step is one fallible source in a fallback chain. run reports false when
// the source has no usable data; it never returns an error.
type step[T any] struct {
	name string
	run  func(ctx context.Context) (T, bool)
}

// firstHit evaluates steps lazily in order and stops at the first one that
// yields data. It returns the value, the name of the step that produced it,
// and false when every step came up empty.
func firstHit[T any](ctx context.Context, steps ...step[T]) (T, string, bool) {
	for _, s := range steps {
		if v, ok := s.run(ctx); ok {
			return v, s.name, true
		}
	}
	var zero T
	return zero, "", false
}

// requestLogger tags base with the request id carried by ctx, if any.
func requestLogger(ctx context.Context, base zerolog.Logger) *zerolog.Logger {
	l := base
	if id := obs.RequestID(ctx); id != "" {
		l = base.With().Str("req_id", id).Logger()
	}
	return &l
}
