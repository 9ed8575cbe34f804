package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-access-portal/internal/logger"
	"github.com/MKhiriev/go-access-portal/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var userColumns = []string{"user_id", "login", "name", "password_hash", "is_staff", "is_active", "created_at"}

var groupColumns = []string{"group_id", "name", "description", "created_at"}

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &userRepository{
		db:     &DB{DB: db, dialect: DialectPostgres, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{
		Login:        "alice",
		Name:         "Alice",
		PasswordHash: "$2a$10$hash",
		IsActive:     true,
	}

	now := time.Now()
	rows := sqlmock.NewRows(userColumns).
		AddRow(1, user.Login, user.Name, user.PasswordHash, false, true, now)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.Login, user.Name, user.PasswordHash, user.IsStaff, user.IsActive).
		WillReturnRows(rows)

	created, err := repo.CreateUser(ctx, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.UserID != 1 {
		t.Errorf("expected UserID=1, got %d", created.UserID)
	}
	if created.Login != user.Login {
		t.Errorf("expected login %s, got %s", user.Login, created.Login)
	}
	if created.Groups == nil {
		t.Error("expected non-nil Groups on created user")
	}
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(ctx, models.User{Login: "alice"})
	if !errors.Is(err, ErrLoginAlreadyExists) {
		t.Fatalf("expected ErrLoginAlreadyExists, got %v", err)
	}
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(ctx, models.User{Login: "alice"})
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestFindUserByLogin_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery("SELECT user_id").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(1, "alice", "Alice", "$2a$10$hash", false, true, now))

	mock.ExpectQuery("SELECT g.group_id").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(groupColumns).
			AddRow(2, "editors", "", now))

	found, err := repo.FindUserByLogin(ctx, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Login != "alice" {
		t.Errorf("expected login alice, got %s", found.Login)
	}
	if len(found.Groups) != 1 || found.Groups[0].Name != "editors" {
		t.Errorf("expected groups [editors], got %+v", found.Groups)
	}
}

func TestFindUserByLogin_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT user_id").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByLogin(ctx, "ghost")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestFindUserByID_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery("SELECT user_id").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(7, "bob", "Bob", "$2a$10$hash", true, true, now))

	mock.ExpectQuery("SELECT g.group_id").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(groupColumns))

	found, err := repo.FindUserByID(ctx, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.UserID != 7 || !found.IsStaff {
		t.Errorf("expected staff user 7, got %+v", found)
	}
}

func TestListUsers_FilterByGroupAndStaff(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()
	isStaff := true

	mock.ExpectQuery("SELECT u.user_id").
		WithArgs("editors", isStaff).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(1, "alice", "Alice", "$2a$10$hash", true, true, now))

	mock.ExpectQuery("SELECT g.group_id").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(groupColumns).
			AddRow(2, "editors", "", now))

	users, err := repo.ListUsers(ctx, models.UserFilter{Group: "editors", IsStaff: &isStaff})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 1 || users[0].Login != "alice" {
		t.Fatalf("expected [alice], got %+v", users)
	}
	if len(users[0].Groups) != 1 {
		t.Errorf("expected groups loaded, got %+v", users[0].Groups)
	}
}

func TestListUsers_QueryError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT u.user_id").
		WillReturnError(errors.New("db failure"))

	_, err := repo.ListUsers(ctx, models.UserFilter{})
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery, got %v", err)
	}
}

func TestUpdateUser_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("UPDATE users").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdateUser(ctx, models.User{UserID: 99, Name: "Nobody"})
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestAddUserToGroup_AlreadyMember(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("INSERT INTO user_groups").
		WithArgs(int64(1), int64(2)).
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	err := repo.AddUserToGroup(ctx, 1, 2)
	if !errors.Is(err, ErrMembershipAlreadyExists) {
		t.Fatalf("expected ErrMembershipAlreadyExists, got %v", err)
	}
}

func TestAddUserToGroup_MissingUser(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("INSERT INTO user_groups").
		WithArgs(int64(99), int64(2)).
		WillReturnError(pgError(pgerrcode.ForeignKeyViolation))

	err := repo.AddUserToGroup(ctx, 99, 2)
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestRemoveUserFromGroup_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("DELETE FROM user_groups").
		WithArgs(int64(1), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.RemoveUserFromGroup(ctx, 1, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
