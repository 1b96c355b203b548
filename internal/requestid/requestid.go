// Package requestid carries a per-request correlation ID through the
// context so log records from one habit-tracking request can be tied
// together across layers.
package requestid

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey struct{}

// New mints a fresh request ID (UUID v4).
func New() string {
	return uuid.NewString()
}

// WithRequestID attaches id to ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the request ID carried by ctx, or "" when none was
// attached.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
