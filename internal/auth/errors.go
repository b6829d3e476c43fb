package auth

import "errors"

var (
	ErrNotFound           = errors.New("auth: user not found")
	ErrAlreadyExists      = errors.New("auth: email already registered")
	ErrInvalidInput       = errors.New("auth: invalid input")
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
)

// Token validation failures. Handlers must surface all three as the same
// generic unauthorized response; the distinction is for internal logs only.
var (
	ErrTokenMalformed = errors.New("auth: token malformed")
	ErrTokenExpired   = errors.New("auth: token expired")
	ErrTokenSignature = errors.New("auth: token signature invalid")
)
