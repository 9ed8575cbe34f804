package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-access-portal/internal/logger"
	"github.com/MKhiriev/go-access-portal/models"
	"github.com/jackc/pgerrcode"
)

func newTestGroupRepo(t *testing.T) (*groupRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &groupRepository{
		db:     &DB{DB: db, dialect: DialectPostgres, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func TestCreateGroup_Success(t *testing.T) {
	repo, mock, db := newTestGroupRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery("INSERT INTO groups").
		WithArgs("editors", "can edit documents").
		WillReturnRows(sqlmock.NewRows(groupColumns).
			AddRow(2, "editors", "can edit documents", now))

	created, err := repo.CreateGroup(ctx, models.Group{Name: "editors", Description: "can edit documents"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.GroupID != 2 || created.Name != "editors" {
		t.Errorf("unexpected group: %+v", created)
	}
}

func TestCreateGroup_DuplicateName(t *testing.T) {
	repo, mock, db := newTestGroupRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO groups").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateGroup(ctx, models.Group{Name: "editors"})
	if !errors.Is(err, ErrGroupAlreadyExists) {
		t.Fatalf("expected ErrGroupAlreadyExists, got %v", err)
	}
}

func TestFindGroupByName_NotFound(t *testing.T) {
	repo, mock, db := newTestGroupRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT group_id").
		WithArgs("ghosts").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindGroupByName(ctx, "ghosts")
	if !errors.Is(err, ErrNoGroupWasFound) {
		t.Fatalf("expected ErrNoGroupWasFound, got %v", err)
	}
}

func TestListGroups_Success(t *testing.T) {
	repo, mock, db := newTestGroupRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery("SELECT group_id").
		WillReturnRows(sqlmock.NewRows(groupColumns).
			AddRow(1, "admins", "", now).
			AddRow(2, "editors", "", now))

	groups, err := repo.ListGroups(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 2 || groups[0].Name != "admins" || groups[1].Name != "editors" {
		t.Fatalf("unexpected groups: %+v", groups)
	}
}
