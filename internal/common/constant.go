package common

// AuthorizationHeaderName carries the bearer token on API requests.
const AuthorizationHeaderName = "Authorization"

// Column limits of the users table, in characters.
const (
	MaxNameLength  = 100
	MaxEmailLength = 120
)

// BearerPrefix is the authorization scheme expected in AuthorizationHeaderName.
const BearerPrefix = "Bearer "
