package auth

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGUsersFindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "photo", "created_at", "updated_at"}).
		AddRow("u-1", "Bob", "bob@example.com", "$2a$10$hash", "", now, now)
	mock.ExpectQuery("select .* from users where email").
		WithArgs("bob@example.com").
		WillReturnRows(rows)

	store := NewPGUsers(db)
	u, err := store.FindByEmail(context.Background(), "bob@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if u.ID != "u-1" || u.PasswordHash != "$2a$10$hash" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPGUsersFindByEmailNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("select .* from users where email").
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	store := NewPGUsers(db)
	if _, err := store.FindByEmail(context.Background(), "ghost@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGUsersCreateAssignsID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("insert into users").
		WithArgs(sqlmock.AnyArg(), "Ana", "ana@example.com", "$2a$10$hash", "").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	store := NewPGUsers(db)
	u := &User{Name: "Ana", Email: "ana@example.com", PasswordHash: "$2a$10$hash"}
	if err := store.Create(context.Background(), u); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.ID == "" {
		t.Fatal("expected an assigned id")
	}
	if u.CreatedAt.IsZero() {
		t.Fatal("expected created_at from the database")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPGUsersUpdateNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("update users set").
		WithArgs("u-404", "X", "x@example.com", "hash", "").
		WillReturnResult(sqlmock.NewResult(0, 0))

	store := NewPGUsers(db)
	u := &User{ID: "u-404", Name: "X", Email: "x@example.com", PasswordHash: "hash"}
	if err := store.Update(context.Background(), u); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGUsersExistsAndSearch(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("select exists").
		WithArgs("bob@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	now := time.Now().UTC()
	mock.ExpectQuery("select .* from users where name ilike").
		WithArgs("bo").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "photo", "created_at", "updated_at"}).
			AddRow("u-1", "Bob", "bob@example.com", "hash", "", now, now))

	store := NewPGUsers(db)
	exists, err := store.Exists(context.Background(), "bob@example.com")
	if err != nil || !exists {
		t.Fatalf("Exists: %v exists=%v", err, exists)
	}
	users, err := store.SearchByName(context.Background(), "bo")
	if err != nil {
		t.Fatalf("SearchByName: %v", err)
	}
	if len(users) != 1 || users[0].Name != "Bob" {
		t.Fatalf("unexpected result: %+v", users)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
