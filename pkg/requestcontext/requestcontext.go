// Package requestcontext carries per-request metadata through context values.
// Middleware writes these once at the edge; handlers and services only read.
package requestcontext

import (
	"context"

	id "bureau/pkg/domain"
)

type ctxKey int

const (
	keyRequestID ctxKey = iota
	keyPrincipal
	keyDevice
)

// WithRequestID stores the request correlation ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, keyRequestID, requestID)
}

// RequestID returns the request correlation ID, or "" when unset.
func RequestID(ctx context.Context) string {
	if v, ok := ctx.Value(keyRequestID).(string); ok {
		return v
	}
	return ""
}

// WithPrincipal stores the authenticated caller identity.
func WithPrincipal(ctx context.Context, principal id.PrincipalID) context.Context {
	return context.WithValue(ctx, keyPrincipal, principal)
}

// Principal returns the authenticated caller identity, or the zero value when
// the request was not authenticated.
func Principal(ctx context.Context) id.PrincipalID {
	if v, ok := ctx.Value(keyPrincipal).(id.PrincipalID); ok {
		return v
	}
	return ""
}

// WithDevice stores a human-readable device summary for event attribution.
func WithDevice(ctx context.Context, device string) context.Context {
	return context.WithValue(ctx, keyDevice, device)
}

// Device returns the device summary, or "" when unknown.
func Device(ctx context.Context) string {
	if v, ok := ctx.Value(keyDevice).(string); ok {
		return v
	}
	return ""
}
