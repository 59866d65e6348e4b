package user

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPostgresGetByName(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "phone", "password_hash", "created_at"}).
		AddRow(3, "alice", "0123456789", "$2a$10$hash", "2026-01-01T00:00:00Z")
	mock.ExpectQuery("FROM users WHERE name").WithArgs("alice").WillReturnRows(rows)

	u, err := repo.GetByName("alice")
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if u.ID != 3 || u.Name != "alice" {
		t.Fatalf("unexpected user %+v", u)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresGetByName_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("FROM users WHERE name").WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone", "password_hash", "created_at"}))

	if _, err := repo.GetByName("ghost"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("alice", "0123456789", "$2a$10$hash", "2026-01-01T00:00:00Z").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	u, err := repo.Create(User{
		Name:         "alice",
		Phone:        "0123456789",
		PasswordHash: "$2a$10$hash",
		CreatedAt:    "2026-01-01T00:00:00Z",
	})
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if u.ID != 7 {
		t.Fatalf("expected id 7, got %d", u.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
