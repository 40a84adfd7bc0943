package httpapi

import (
	"context"
	"net/http"

	"github.com/oklog/ulid/v2"
)

const TraceIDHeader = "X-Request-ID"

// maxTraceIDLen bounds client-supplied IDs before they reach the logs.
const maxTraceIDLen = 128

type traceIDKey struct{}

// TracingMiddleware tags every request with a trace ID. It reuses the
// X-Request-ID header if present, otherwise generates a new ULID, and echoes
// the ID in the response header.
func TracingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := getTraceID(r)
		w.Header().Set(TraceIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), traceIDKey{}, id)))
	})
}

// TraceIDFromContext returns the ID set by TracingMiddleware.
func TraceIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(traceIDKey{}).(string)
	return id, ok
}

func getTraceID(r *http.Request) string {
	if id := r.Header.Get(TraceIDHeader); id != "" && len(id) <= maxTraceIDLen {
		return id
	}
	return ulid.Make().String()
}
