package tracing

import (
	"context"

	"github.com/google/uuid"
)

type scanIDKey struct{}

// WithScanID tags ctx with a fresh time-ordered scan id unless it already
// carries one.
func WithScanID(ctx context.Context) context.Context {
	if _, ok := ctx.Value(scanIDKey{}).(string); ok {
		return ctx
	}

	return context.WithValue(ctx, scanIDKey{}, generateScanID())
}

func GetScanID(ctx context.Context) string {
	scanID, ok := ctx.Value(scanIDKey{}).(string)
	if !ok {
		return ""
	}

	return scanID
}

func generateScanID() string {
	v, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v.String()
}
