// Package models holds the client-side views of server responses.
package models

import "time"

// User is the public profile returned by the server.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse is returned by register and login. Message is only set by
// register.
type AuthResponse struct {
	Message     string `json:"message,omitempty"`
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}
