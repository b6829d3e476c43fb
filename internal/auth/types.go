package auth

import "time"

// User is a registered account. The email doubles as the login identity and
// is unique across the store.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Photo        string    `json:"photo,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AuthenticatedIdentity is the result of a successful credential check. It
// carries the profile attributes the login endpoint echoes back and never
// the secret in any form.
type AuthenticatedIdentity struct {
	UserID string
	Name   string
	Email  string
	Photo  string
}
