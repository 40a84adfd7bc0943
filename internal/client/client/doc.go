// Package client contains the HTTP client for the userauth server.
//
// # Overview
//
// The package provides a transport-agnostic API contract (see the Client
// interface) with Register, Login, Profile and Health, and its concrete
// HTTP/JSON implementation, HTTPClient.
//
// # Error Handling
//
// Non-2xx responses become *APIError, which carries the status code and the
// server's error message. APIError matches the sentinels in internal/common
// with errors.Is (400 ErrorValidation, 401 ErrorUnauthorized, 404
// ErrorNotFound, 409 ErrorAlreadyExists). Transport failures match
// ErrUnavailable.
package client
