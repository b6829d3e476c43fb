package auth

import "context"

// UserStore describes the persistence operations required by the auth
// subsystem. Record equality is by email.
type UserStore interface {
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	Find(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Exists(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]*User, error)
	SearchByName(ctx context.Context, name string) ([]*User, error)
}
