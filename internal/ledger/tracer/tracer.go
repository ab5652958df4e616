// Package tracer provides a lightweight tracing abstraction for the ledger.
// It keeps the ledger decoupled from OpenTelemetry APIs: NoopTracer for
// tests, OTelTracer for production.
package tracer

import "context"

// Span represents an active trace span.
type Span interface {
	// End completes the span, recording any error that occurred.
	// End must be called exactly once, typically via defer.
	End(err error)

	// SetAttributes adds key-value pairs to the span.
	SetAttributes(attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute represents a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

// String creates a string attribute.
func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

// Bool creates a boolean attribute.
func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

// Int64 creates an int64 attribute.
func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

// Span names used by the ledger.
const (
	SpanUpdateProfile = "ledger.update_profile"
	SpanRecordPayment = "ledger.record_payment"
)

// Attribute keys used by the ledger.
const (
	AttrAccount = "account"
	AttrCaller  = "caller"
	AttrScore   = "score"
	AttrOnTime  = "on_time"
)

// NoopTracer discards all spans.
type NoopTracer struct{}

func NewNoop() NoopTracer {
	return NoopTracer{}
}

func (NoopTracer) Start(ctx context.Context, _ string, _ ...Attribute) (context.Context, Span) {
	return ctx, noopSpan{}
}

type noopSpan struct{}

func (noopSpan) End(error)                  {}
func (noopSpan) SetAttributes(...Attribute) {}
