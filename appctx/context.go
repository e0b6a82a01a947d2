package appctx

import "context"

// Context key for storing per-message values
type contextKey string

const RequestIDContextKey contextKey = "request_id"

// SetRequestID adds the inbound message correlation ID to the context
func SetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDContextKey, requestID)
}

// GetRequestID extracts the inbound message correlation ID from the context
func GetRequestID(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(RequestIDContextKey).(string)
	return requestID, ok
}
