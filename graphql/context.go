package graphql

import (
	"context"
)

// Context keys for resolver injection (avoids circular imports).
type contextKey string

const CtxKeyLocationID contextKey = "locationID"

// LocationIDFromContext returns the location ID for the current request, 0 if unset.
func LocationIDFromContext(ctx context.Context) uint {
	if v := ctx.Value(CtxKeyLocationID); v != nil {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// WithLocationID attaches locationID to context.
func WithLocationID(ctx context.Context, locationID uint) context.Context {
	return context.WithValue(ctx, CtxKeyLocationID, locationID)
}

// Location is resolved from: Location header > __Location query param >
// JSON variables.__Location
const (
	HeaderLocation     = "Location"
	QueryParamLocation = "__Location"
	VarLocation        = "__Location"
)
