package models

import "time"

// User is the persisted identity record. PasswordHash never leaves the
// server; use View for anything sent to a caller.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}

// UserView is the externally visible projection of a User.
type UserView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// View strips the password hash and normalizes CreatedAt to UTC.
func (u *User) View() UserView {
	return UserView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.UTC(),
	}
}
