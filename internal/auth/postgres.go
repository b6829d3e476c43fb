package auth

import (
	"context"
	"database/sql"

	"entrega.dev/internal/ids"
)

var _ UserStore = (*PGUsers)(nil)

// PGUsers implements UserStore on PostgreSQL.
type PGUsers struct {
	db *sql.DB
}

func NewPGUsers(db *sql.DB) *PGUsers {
	return &PGUsers{db: db}
}

const userColumns = `id, name, email, password_hash, photo, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Photo, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *PGUsers) Create(ctx context.Context, u *User) error {
	if u.ID == "" {
		u.ID = ids.New()
	}
	return s.db.QueryRowContext(ctx,
		`insert into users(id, name, email, password_hash, photo)
		 values($1,$2,$3,$4,$5)
		 returning created_at, updated_at`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Photo,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
}

func (s *PGUsers) Update(ctx context.Context, u *User) error {
	res, err := s.db.ExecContext(ctx,
		`update users set name=$2, email=$3, password_hash=$4, photo=$5, updated_at=now() where id=$1`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Photo,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PGUsers) Find(ctx context.Context, id string) (*User, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+userColumns+` from users where id=$1`, id)
	return scanUser(row)
}

func (s *PGUsers) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+userColumns+` from users where email=$1`, email)
	return scanUser(row)
}

func (s *PGUsers) Exists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`select exists(select 1 from users where email=$1)`, email).Scan(&exists)
	return exists, err
}

func (s *PGUsers) List(ctx context.Context) ([]*User, error) {
	rows, err := s.db.QueryContext(ctx,
		`select `+userColumns+` from users order by created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func (s *PGUsers) SearchByName(ctx context.Context, name string) ([]*User, error) {
	rows, err := s.db.QueryContext(ctx,
		`select `+userColumns+` from users where name ilike '%'||$1||'%' order by created_at`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func collectUsers(rows *sql.Rows) ([]*User, error) {
	var out []*User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
