package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestAuthenticator(t *testing.T) (*Authenticator, *InMemoryUsers) {
	t.Helper()
	tokens, err := NewTokenService(SecurityConfig{
		SigningKey: testSigningKey,
		TokenTTL:   time.Hour,
		Issuer:     "entrega",
	})
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	store := NewInMemoryUsers()
	return NewAuthenticator(store, tokens), store
}

func TestAuthenticateSuccessAndFailuresShareShape(t *testing.T) {
	authn, _ := newTestAuthenticator(t)
	ctx := context.Background()

	user := &User{Name: "Bob", Email: "bob@example.com"}
	if err := authn.Register(ctx, user, "pw123456"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	identity, err := authn.Authenticate(ctx, "bob@example.com", "pw123456")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if identity.Email != "bob@example.com" || identity.UserID != user.ID {
		t.Fatalf("unexpected identity: %+v", identity)
	}

	_, wrongSecret := authn.Authenticate(ctx, "bob@example.com", "wrong")
	if !errors.Is(wrongSecret, ErrInvalidCredentials) {
		t.Fatalf("wrong secret: expected ErrInvalidCredentials, got %v", wrongSecret)
	}

	_, unknown := authn.Authenticate(ctx, "nobody@example.com", "x")
	if !errors.Is(unknown, ErrInvalidCredentials) {
		t.Fatalf("unknown identity: expected ErrInvalidCredentials, got %v", unknown)
	}
	if wrongSecret.Error() != unknown.Error() {
		t.Fatalf("errors differ between unknown identity and wrong secret: %q vs %q", wrongSecret, unknown)
	}
}

func TestLoginIssuesValidatableToken(t *testing.T) {
	authn, _ := newTestAuthenticator(t)
	ctx := context.Background()

	if err := authn.Register(ctx, &User{Name: "Ana", Email: "Ana@Example.com"}, "pw123456"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	res, err := authn.Login(ctx, "ana@example.com", "pw123456")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Token == "" {
		t.Fatal("expected a token")
	}
	if !res.ExpiresAt.After(time.Now()) {
		t.Fatalf("unexpected expiry: %v", res.ExpiresAt)
	}

	subject, err := authn.tokens.Validate(res.Token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if subject != "ana@example.com" {
		t.Fatalf("token bound to wrong identity: %s", subject)
	}
}

func TestRegisterValidation(t *testing.T) {
	authn, _ := newTestAuthenticator(t)
	ctx := context.Background()

	if err := authn.Register(ctx, &User{Name: "Bob", Email: "bob@example.com"}, "pw123456"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	err := authn.Register(ctx, &User{Name: "Other", Email: "bob@example.com"}, "pw123456")
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("duplicate email: expected ErrAlreadyExists, got %v", err)
	}

	cases := map[string]struct {
		user     User
		password string
	}{
		"missing name":   {User{Email: "x@example.com"}, "pw123456"},
		"bad email":      {User{Name: "X", Email: "not-an-email"}, "pw123456"},
		"short password": {User{Name: "X", Email: "x@example.com"}, "pw"},
	}
	for name, tc := range cases {
		u := tc.user
		if err := authn.Register(ctx, &u, tc.password); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
}

func TestUpdateProfile(t *testing.T) {
	authn, store := newTestAuthenticator(t)
	ctx := context.Background()

	bob := &User{Name: "Bob", Email: "bob@example.com"}
	if err := authn.Register(ctx, bob, "pw123456"); err != nil {
		t.Fatalf("Register bob: %v", err)
	}
	ana := &User{Name: "Ana", Email: "ana@example.com"}
	if err := authn.Register(ctx, ana, "pw123456"); err != nil {
		t.Fatalf("Register ana: %v", err)
	}

	updated, err := authn.UpdateProfile(ctx, &User{ID: bob.ID, Name: "Robert", Email: "bob@example.com", Photo: "avatar.png"}, "")
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Name != "Robert" || updated.Photo != "avatar.png" {
		t.Fatalf("unexpected profile: %+v", updated)
	}
	if _, err := authn.Authenticate(ctx, "bob@example.com", "pw123456"); err != nil {
		t.Fatalf("password was lost during update: %v", err)
	}

	_, err = authn.UpdateProfile(ctx, &User{ID: bob.ID, Name: "Bob", Email: "ana@example.com"}, "")
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("email owned by another user: expected ErrAlreadyExists, got %v", err)
	}

	_, err = authn.UpdateProfile(ctx, &User{ID: "missing", Name: "X", Email: "x@example.com"}, "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown id: expected ErrNotFound, got %v", err)
	}

	if _, err := authn.UpdateProfile(ctx, &User{ID: bob.ID, Name: "Robert", Email: "bob@example.com"}, "newpw12345"); err != nil {
		t.Fatalf("UpdateProfile with password: %v", err)
	}
	if _, err := authn.Authenticate(ctx, "bob@example.com", "newpw12345"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
	stored, err := store.Find(ctx, bob.ID)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if stored.PasswordHash == "newpw12345" {
		t.Fatal("password stored in plaintext")
	}
}

func TestSubjectContextHelpers(t *testing.T) {
	ctx := context.Background()
	if _, ok := SubjectFromContext(ctx); ok {
		t.Fatal("unexpected subject in empty context")
	}
	ctx = ContextWithSubject(ctx, " alice@example.com ")
	subject, ok := SubjectFromContext(ctx)
	if !ok || subject != "alice@example.com" {
		t.Fatalf("unexpected subject: %q ok=%v", subject, ok)
	}
}
