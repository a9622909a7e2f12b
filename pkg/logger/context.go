package logger

import "context"

type ctxKey string

// RequestIDKey clave del request id en el context.
const RequestIDKey ctxKey = "request_id"

// WithRequestID adjunta el request id al context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// RequestIDFrom devuelve el request id o "".
func RequestIDFrom(ctx context.Context) string {
	s, _ := ctx.Value(RequestIDKey).(string)
	return s
}
