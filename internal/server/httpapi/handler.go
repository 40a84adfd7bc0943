// Package httpapi exposes the auth service over HTTP with JSON bodies:
// POST /api/register, POST /api/login and GET /api/user, plus /healthz and
// /metrics.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/userauth/internal/common"
	"github.com/dmitrijs2005/userauth/internal/logging"
	"github.com/dmitrijs2005/userauth/internal/server/models"
	"github.com/dmitrijs2005/userauth/internal/server/services"
)

const (
	DefaultMaxRequestBodyBytes = 1 << 20

	healthCheckTimeout = 2 * time.Second
)

// UserService is the part of services.UserService the handlers need.
type UserService interface {
	Register(ctx context.Context, in services.RegisterInput) (*services.AuthResult, error)
	Login(ctx context.Context, in services.LoginInput) (*services.AuthResult, error)
	Authenticate(ctx context.Context, token string) (string, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
}

// Pinger reports storage reachability for /healthz.
type Pinger interface {
	Ping(ctx context.Context) error
}

type registerResponse struct {
	Message     string          `json:"message"`
	AccessToken string          `json:"access_token"`
	User        models.UserView `json:"user"`
}

type loginResponse struct {
	AccessToken string          `json:"access_token"`
	User        models.UserView `json:"user"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// Handler routes API requests. Build it with NewHandler.
type Handler struct {
	users        UserService
	health       Pinger
	metrics      *Metrics
	logger       logging.Logger
	maxBodyBytes int64
	mux          *http.ServeMux
	chain        http.Handler
}

var _ http.Handler = (*Handler)(nil)

// NewHandler wires the routes. health and metrics may be nil; a non-positive
// maxBodyBytes falls back to DefaultMaxRequestBodyBytes.
func NewHandler(us UserService, health Pinger, m *Metrics, l logging.Logger, maxBodyBytes int64) *Handler {
	if l == nil {
		l = logging.NopLogger{}
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxRequestBodyBytes
	}

	h := &Handler{
		users:        us,
		health:       health,
		metrics:      m,
		logger:       l.With("module", "httpapi"),
		maxBodyBytes: maxBodyBytes,
		mux:          http.NewServeMux(),
	}

	h.mux.HandleFunc("POST /api/register", h.HandleRegister)
	h.mux.HandleFunc("POST /api/login", h.HandleLogin)
	h.mux.HandleFunc("GET /api/user", h.requireBearer(h.HandleProfile))
	h.mux.HandleFunc("GET /healthz", h.HandleHealth)
	if m != nil {
		h.mux.Handle("GET /metrics", m.Handler())
	}

	var handler http.Handler = h.mux
	handler = RescueingMiddleware(handler, h.logger)
	handler = LoggingMiddleware(handler, h.logger)
	if m != nil {
		handler = MetricsMiddleware(handler, m)
	}
	h.chain = TracingMiddleware(handler)

	return h
}

// ServeHTTP runs the mux behind the rescue, logging, metrics (if configured)
// and tracing middleware.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.chain.ServeHTTP(w, r)
}

// HandleRegister creates an account and returns 201 with a token.
// Expects JSON: {"name", "email", "password"}.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if err := decodeJSON(w, r, h.maxBodyBytes, &in); err != nil {
		if errors.Is(err, errEmptyBody) {
			writeError(w, http.StatusBadRequest, "Missing required fields")
			return
		}
		writeDecodeError(w, err)
		return
	}

	res, err := h.users.Register(r.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrPasswordTooLong):
			h.observeAuth("register", "invalid")
			writeError(w, http.StatusBadRequest, "Password too long")
		case errors.Is(err, common.ErrFieldTooLong):
			h.observeAuth("register", "invalid")
			writeError(w, http.StatusBadRequest, "Name or email too long")
		case errors.Is(err, common.ErrorValidation):
			h.observeAuth("register", "invalid")
			writeError(w, http.StatusBadRequest, "Missing required fields")
		case errors.Is(err, common.ErrorAlreadyExists):
			h.observeAuth("register", "conflict")
			writeError(w, http.StatusConflict, "Email already registered")
		default:
			h.observeAuth("register", "error")
			h.logger.Error(r.Context(), "user register failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	h.observeAuth("register", "success")
	writeJSON(w, http.StatusCreated, registerResponse{
		Message:     "Registration successful",
		AccessToken: res.AccessToken,
		User:        res.User.View(),
	})
}

// HandleLogin verifies credentials and returns 200 with a token.
// Expects JSON: {"email", "password"}.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput
	if err := decodeJSON(w, r, h.maxBodyBytes, &in); err != nil {
		if errors.Is(err, errEmptyBody) {
			writeError(w, http.StatusBadRequest, "Missing email or password")
			return
		}
		writeDecodeError(w, err)
		return
	}

	res, err := h.users.Login(r.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			h.observeAuth("login", "invalid")
			writeError(w, http.StatusBadRequest, "Missing email or password")
		case errors.Is(err, common.ErrorUnauthorized):
			h.observeAuth("login", "unauthorized")
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
		default:
			h.observeAuth("login", "error")
			h.logger.Error(r.Context(), "user login failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	h.observeAuth("login", "success")
	writeJSON(w, http.StatusOK, loginResponse{AccessToken: res.AccessToken, User: res.User.View()})
}

// HandleProfile returns the authenticated user's view.
func (h *Handler) HandleProfile(w http.ResponseWriter, r *http.Request, userID string) {
	user, err := h.users.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Error(r.Context(), "get user failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, user.View())
}

// HandleHealth answers 200 when storage is reachable and 503 otherwise.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		if err := h.health.Ping(ctx); err != nil {
			h.logger.Warn(r.Context(), "health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

func (h *Handler) observeAuth(event, outcome string) {
	if h.metrics != nil {
		h.metrics.observeAuth(event, outcome)
	}
}
