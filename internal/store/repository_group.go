package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-access-portal/internal/logger"
	"github.com/MKhiriev/go-access-portal/models"
)

// groupRepository is the SQL-backed implementation of [GroupRepository].
type groupRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewGroupRepository constructs a [GroupRepository] backed by the provided
// database connection and logger.
func NewGroupRepository(db *DB, logger *logger.Logger) GroupRepository {
	logger.Debug().Msg("creating group repository")
	return &groupRepository{
		db:     db,
		logger: logger,
	}
}

// CreateGroup persists a new group and returns it with server-assigned
// fields. Returns [ErrGroupAlreadyExists] on a duplicate name.
func (r *groupRepository) CreateGroup(ctx context.Context, group models.Group) (models.Group, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, r.db.rebind(createGroup), group.Name, group.Description)

	var created models.Group
	if err := row.Scan(&created.GroupID, &created.Name, &created.Description, &created.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return models.Group{}, ErrGroupAlreadyExists
		}
		log.Err(err).Str("func", "*groupRepository.CreateGroup").Msg("error: scanning error")
		return models.Group{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// FindGroupByName retrieves a group by its unique name.
// Returns [ErrNoGroupWasFound] when no row matches.
func (r *groupRepository) FindGroupByName(ctx context.Context, name string) (models.Group, error) {
	log := logger.FromContext(ctx)

	var group models.Group
	row := r.db.QueryRowContext(ctx, r.db.rebind(findGroupByName), name)
	if err := row.Scan(&group.GroupID, &group.Name, &group.Description, &group.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Group{}, ErrNoGroupWasFound
		}
		log.Err(err).Str("func", "*groupRepository.FindGroupByName").Msg("error: scanning error")
		return models.Group{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return group, nil
}

// ListGroups returns all groups ordered by name.
func (r *groupRepository) ListGroups(ctx context.Context) ([]models.Group, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listGroups)
	if err != nil {
		log.Err(err).Str("func", "*groupRepository.ListGroups").Msg("error executing query")
		return nil, errors.Join(ErrExecutingQuery, err)
	}
	defer rows.Close()

	groups := make([]models.Group, 0)
	for rows.Next() {
		var group models.Group
		if err = rows.Scan(&group.GroupID, &group.Name, &group.Description, &group.CreatedAt); err != nil {
			log.Err(err).Str("func", "*groupRepository.ListGroups").Msg("error scanning rows")
			return nil, errors.Join(ErrScanningRows, err)
		}
		groups = append(groups, group)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*groupRepository.ListGroups").Msg("error iterating rows")
		return nil, errors.Join(ErrExecutingQuery, err)
	}

	return groups, nil
}
