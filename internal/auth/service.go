package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const minPasswordLen = 8

// Authenticator verifies credentials against the user store and manages
// account registration and profile updates.
type Authenticator struct {
	store  UserStore
	tokens *TokenService
}

// NewAuthenticator wires the credential store and token service together.
func NewAuthenticator(store UserStore, tokens *TokenService) *Authenticator {
	return &Authenticator{store: store, tokens: tokens}
}

// Authenticate looks up the identity and checks the secret. Unknown identity
// and secret mismatch fail with the same error so callers cannot enumerate
// accounts.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (AuthenticatedIdentity, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return AuthenticatedIdentity{}, ErrInvalidCredentials
	}
	user, err := a.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return AuthenticatedIdentity{}, ErrInvalidCredentials
		}
		return AuthenticatedIdentity{}, err
	}
	if err := VerifyPassword(user.PasswordHash, password); err != nil {
		return AuthenticatedIdentity{}, ErrInvalidCredentials
	}
	return AuthenticatedIdentity{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Photo:  user.Photo,
	}, nil
}

// LoginResult is what the login endpoint returns to the client.
type LoginResult struct {
	Identity  AuthenticatedIdentity
	Token     string
	ExpiresAt time.Time
}

// Login authenticates the credentials and issues a bearer token bound to the
// identity.
func (a *Authenticator) Login(ctx context.Context, email, password string) (LoginResult, error) {
	identity, err := a.Authenticate(ctx, email, password)
	if err != nil {
		return LoginResult{}, err
	}
	token, expiresAt, err := a.tokens.Issue(identity.Email)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Identity: identity, Token: token, ExpiresAt: expiresAt}, nil
}

// Register creates a new account with a hashed secret. The email must not be
// taken.
func (a *Authenticator) Register(ctx context.Context, u *User, password string) error {
	u.Email = normalizeEmail(u.Email)
	u.Name = strings.TrimSpace(u.Name)
	if err := validateProfile(u.Name, u.Email); err != nil {
		return err
	}
	if len(password) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLen)
	}
	taken, err := a.store.Exists(ctx, u.Email)
	if err != nil {
		return err
	}
	if taken {
		return ErrAlreadyExists
	}
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return a.store.Create(ctx, u)
}

// UpdateProfile updates name, email and photo of an existing account. A new
// password is rehashed only when one is supplied; an email already owned by a
// different account is rejected.
func (a *Authenticator) UpdateProfile(ctx context.Context, u *User, newPassword string) (*User, error) {
	u.Email = normalizeEmail(u.Email)
	u.Name = strings.TrimSpace(u.Name)
	if strings.TrimSpace(u.ID) == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	if err := validateProfile(u.Name, u.Email); err != nil {
		return nil, err
	}
	current, err := a.store.Find(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	owner, err := a.store.FindByEmail(ctx, u.Email)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if owner != nil && owner.ID != u.ID {
		return nil, ErrAlreadyExists
	}
	u.PasswordHash = current.PasswordHash
	if newPassword != "" {
		if len(newPassword) < minPasswordLen {
			return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLen)
		}
		hash, err := HashPassword(newPassword)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	if err := a.store.Update(ctx, u); err != nil {
		return nil, err
	}
	return a.store.Find(ctx, u.ID)
}

func validateProfile(name, email string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}
