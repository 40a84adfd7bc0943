package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/dmitrijs2005/userauth/internal/common"
	"github.com/dmitrijs2005/userauth/internal/logging"
)

// responseRecorder wraps http.ResponseWriter to capture the status code and
// the number of bytes written.
type responseRecorder struct {
	http.ResponseWriter
	StatusCode  int
	BytesSent   int
	wroteHeader bool
}

func newResponseRecorder(w http.ResponseWriter) *responseRecorder {
	if rec, ok := w.(*responseRecorder); ok {
		return rec
	}
	// This is default if no response code is written
	return &responseRecorder{ResponseWriter: w, StatusCode: http.StatusOK}
}

func (w *responseRecorder) WriteHeader(code int) {
	if !w.wroteHeader {
		w.StatusCode = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseRecorder) Write(b []byte) (int, error) {
	w.wroteHeader = true
	n, err := w.ResponseWriter.Write(b)
	w.BytesSent += n
	if err != nil {
		return n, fmt.Errorf("write: %w", err)
	}
	return n, nil
}

func (w *responseRecorder) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// LoggingMiddleware logs every response at a level determined by the status
// code:
// - 5xx: ERROR
// - 4xx: WARN
// - Other: INFO.
func LoggingMiddleware(next http.Handler, log logging.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := newResponseRecorder(w)

		next.ServeHTTP(rec, r)

		args := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.StatusCode,
			"bytes_sent", rec.BytesSent,
			"duration", time.Since(start),
		}
		if id, ok := TraceIDFromContext(r.Context()); ok {
			args = append(args, "request_id", id)
		}

		switch {
		case rec.StatusCode >= http.StatusInternalServerError:
			log.Error(r.Context(), "response", args...)
		case rec.StatusCode >= http.StatusBadRequest:
			log.Warn(r.Context(), "response", args...)
		default:
			log.Info(r.Context(), "response", args...)
		}
	})
}

// RescueingMiddleware recovers from panics in handlers, logs the panic with
// its stack and answers 500 if nothing was written yet.
func RescueingMiddleware(next http.Handler, log logging.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := newResponseRecorder(w)
		defer func(ctx context.Context) {
			if p := recover(); p != nil {
				if p == http.ErrAbortHandler {
					panic(p)
				}
				log.Error(ctx, "request panic",
					"method", r.Method,
					"path", r.URL.Path,
					"panic", p,
					"stack", string(debug.Stack()),
				)
				if !rec.wroteHeader {
					writeError(rec, http.StatusInternalServerError, "Internal server error")
				}
			}
		}(r.Context())
		next.ServeHTTP(rec, r)
	})
}

// authedHandlerFunc is a handler that runs after the bearer token has been
// resolved to a user ID.
type authedHandlerFunc func(w http.ResponseWriter, r *http.Request, userID string)

// bearerToken extracts the token from "Authorization: Bearer <token>". The
// scheme is matched case-insensitively.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get(common.AuthorizationHeaderName)
	if len(header) < len(common.BearerPrefix) || !strings.EqualFold(header[:len(common.BearerPrefix)], common.BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(common.BearerPrefix):])
	return token, token != ""
}

// requireBearer rejects requests without a valid access token and passes the
// token subject to next.
func (h *Handler) requireBearer(next authedHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "Missing Authorization Header")
			return
		}

		userID, err := h.users.Authenticate(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, common.ErrTokenExpired):
				writeError(w, http.StatusUnauthorized, "Token has expired")
			case errors.Is(err, common.ErrorUnauthorized):
				writeError(w, http.StatusUnauthorized, "Invalid token")
			default:
				h.logger.Error(r.Context(), "authenticate failed", "error", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		next(w, r, userID)
	}
}
