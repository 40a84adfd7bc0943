package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/userauth/internal/common"
)

var ErrUnavailable = errors.New("server unavailable")

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusBadRequest:
		return common.ErrorValidation
	case http.StatusUnauthorized:
		return common.ErrorUnauthorized
	case http.StatusNotFound:
		return common.ErrorNotFound
	case http.StatusConflict:
		return common.ErrorAlreadyExists
	default:
		return common.ErrorInternal
	}
}
