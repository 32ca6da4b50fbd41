package contextx

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	requestIDKey ctxKey = "request_id"
	rideIDKey    ctxKey = "ride_id"
)

func WithNewRequestID(ctx context.Context) context.Context {
	return context.WithValue(ctx, requestIDKey, NewRequestID())
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func GetRequestID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

func WithRideID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, rideIDKey, id)
}

func GetRideID(ctx context.Context) string {
	if v, ok := ctx.Value(rideIDKey).(string); ok {
		return v
	}
	return ""
}

// NewRequestID mints the id sent as X-Request-Id on outbound calls.
func NewRequestID() string {
	return "req_" + uuid.NewString()
}
