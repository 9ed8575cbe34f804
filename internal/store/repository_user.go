package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-access-portal/internal/logger"
	"github.com/MKhiriev/go-access-portal/models"
)

// defaultListLimit caps user listings when the filter does not set one.
const defaultListLimit = 100

// userRepository is the SQL-backed implementation of [UserRepository].
// It manages the "users" table and the "user_groups" membership join table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new account and returns the fully populated
// [models.User] with server-assigned fields (UserID, CreatedAt).
//
// Error handling:
//   - unique-constraint violation on login → [ErrLoginAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, r.db.rebind(createUser),
		user.Login, user.Name, user.PasswordHash, user.IsStaff, user.IsActive)

	var created models.User
	if err := row.Scan(&created.UserID, &created.Login, &created.Name, &created.PasswordHash,
		&created.IsStaff, &created.IsActive, &created.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return models.User{}, ErrLoginAlreadyExists
		}
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	created.Groups = []models.Group{}
	return created, nil
}

// FindUserByLogin retrieves an account by login with its group memberships
// loaded. Returns [ErrNoUserWasFound] when no row matches.
func (r *userRepository) FindUserByLogin(ctx context.Context, login string) (models.User, error) {
	return r.findUser(ctx, findUserByLogin, login)
}

// FindUserByID retrieves an account by ID with its group memberships loaded.
// Returns [ErrNoUserWasFound] when no row matches.
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	return r.findUser(ctx, findUserByID, userID)
}

// findUser runs a single-row user lookup and attaches the user's groups.
func (r *userRepository) findUser(ctx context.Context, query string, arg any) (models.User, error) {
	log := logger.FromContext(ctx)

	var user models.User
	row := r.db.QueryRowContext(ctx, r.db.rebind(query), arg)
	if err := row.Scan(&user.UserID, &user.Login, &user.Name, &user.PasswordHash,
		&user.IsStaff, &user.IsActive, &user.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.findUser").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	groups, err := r.groupsForUser(ctx, user.UserID)
	if err != nil {
		return models.User{}, err
	}
	user.Groups = groups

	return user, nil
}

// ListUsers returns accounts matching the filter ordered by login. The WHERE
// clause is assembled with squirrel so that zero-valued filter fields are
// simply omitted.
func (r *userRepository) ListUsers(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	log := logger.FromContext(ctx)

	limit := filter.Limit
	if limit == 0 {
		limit = defaultListLimit
	}

	builder := squirrel.Select("u.user_id", "u.login", "u.name", "u.password_hash", "u.is_staff", "u.is_active", "u.created_at").
		From("users u").
		OrderBy("u.login").
		Limit(limit).
		Offset(filter.Offset).
		PlaceholderFormat(r.db.placeholders())

	if filter.Login != "" {
		builder = builder.Where(squirrel.Like{"u.login": "%" + filter.Login + "%"})
	}
	if filter.Group != "" {
		builder = builder.Where(`u.user_id IN (
			SELECT ug.user_id FROM user_groups ug
			JOIN groups g ON g.group_id = ug.group_id
			WHERE g.name = ?)`, filter.Group)
	}
	if filter.IsStaff != nil {
		builder = builder.Where(squirrel.Eq{"u.is_staff": *filter.IsStaff})
	}
	if filter.IsActive != nil {
		builder = builder.Where(squirrel.Eq{"u.is_active": *filter.IsActive})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error building query")
		return nil, errors.Join(ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error executing query")
		return nil, errors.Join(ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var user models.User
		if err = rows.Scan(&user.UserID, &user.Login, &user.Name, &user.PasswordHash,
			&user.IsStaff, &user.IsActive, &user.CreatedAt); err != nil {
			log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error scanning rows")
			return nil, errors.Join(ErrScanningRows, err)
		}
		users = append(users, user)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error iterating rows")
		return nil, errors.Join(ErrExecutingQuery, err)
	}

	for i := range users {
		groups, groupsErr := r.groupsForUser(ctx, users[i].UserID)
		if groupsErr != nil {
			return nil, groupsErr
		}
		users[i].Groups = groups
	}

	return users, nil
}

// UpdateUser persists the mutable account fields and returns the refreshed
// record with groups loaded. Returns [ErrNoUserWasFound] when the account
// does not exist.
func (r *userRepository) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, r.db.rebind(updateUser),
		user.Name, user.IsStaff, user.IsActive, user.UserID)

	var updated models.User
	if err := row.Scan(&updated.UserID, &updated.Login, &updated.Name, &updated.PasswordHash,
		&updated.IsStaff, &updated.IsActive, &updated.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	groups, err := r.groupsForUser(ctx, updated.UserID)
	if err != nil {
		return models.User{}, err
	}
	updated.Groups = groups

	return updated, nil
}

// AddUserToGroup inserts a membership row.
//
// Error handling:
//   - unique/primary-key violation → [ErrMembershipAlreadyExists].
//   - foreign-key violation → [ErrNoUserWasFound] (user or group missing).
func (r *userRepository) AddUserToGroup(ctx context.Context, userID, groupID int64) error {
	log := logger.FromContext(ctx)

	_, err := r.db.ExecContext(ctx, r.db.rebind(addUserToGroup), userID, groupID)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return ErrMembershipAlreadyExists
		case isForeignKeyViolation(err):
			return ErrNoUserWasFound
		default:
			log.Err(err).Str("func", "*userRepository.AddUserToGroup").Msg("error executing statement")
			return errors.Join(ErrExecutingStatement, err)
		}
	}

	return nil
}

// RemoveUserFromGroup deletes a membership row. A missing membership is
// silently ignored.
func (r *userRepository) RemoveUserFromGroup(ctx context.Context, userID, groupID int64) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, r.db.rebind(removeUserFromGroup), userID, groupID); err != nil {
		log.Err(err).Str("func", "*userRepository.RemoveUserFromGroup").Msg("error executing statement")
		return errors.Join(ErrExecutingStatement, err)
	}

	return nil
}

// groupsForUser loads the user's group memberships ordered by group name.
func (r *userRepository) groupsForUser(ctx context.Context, userID int64) ([]models.Group, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, r.db.rebind(findGroupsByUserID), userID)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.groupsForUser").Msg("error executing query")
		return nil, errors.Join(ErrExecutingQuery, err)
	}
	defer rows.Close()

	groups := make([]models.Group, 0)
	for rows.Next() {
		var group models.Group
		if err = rows.Scan(&group.GroupID, &group.Name, &group.Description, &group.CreatedAt); err != nil {
			log.Err(err).Str("func", "*userRepository.groupsForUser").Msg("error scanning rows")
			return nil, errors.Join(ErrScanningRows, err)
		}
		groups = append(groups, group)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.groupsForUser").Msg("error iterating rows")
		return nil, errors.Join(ErrExecutingQuery, err)
	}

	return groups, nil
}
