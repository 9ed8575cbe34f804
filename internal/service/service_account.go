package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-access-portal/internal/crypto"
	"github.com/MKhiriev/go-access-portal/internal/logger"
	"github.com/MKhiriev/go-access-portal/internal/store"
	"github.com/MKhiriev/go-access-portal/internal/validators"
	"github.com/MKhiriev/go-access-portal/models"
)

// generatedPasswordBytes is the entropy of a server-generated initial
// password; base64url encoding turns it into 24 characters.
const generatedPasswordBytes = 18

// accountService is the concrete implementation of [AccountService].
// All operations here are staff-only; the transport layer enforces that
// before any call reaches this service.
type accountService struct {
	userRepository  store.UserRepository
	groupRepository store.GroupRepository
	hasher          crypto.PasswordHasher
	validator       validators.Validator
	logger          *logger.Logger
}

// NewAccountService constructs an [AccountService] wired to the given
// repositories, password hasher, and payload validator.
func NewAccountService(userRepository store.UserRepository, groupRepository store.GroupRepository, hasher crypto.PasswordHasher, validator validators.Validator, logger *logger.Logger) AccountService {
	return &accountService{
		userRepository:  userRepository,
		groupRepository: groupRepository,
		hasher:          hasher,
		validator:       validator,
		logger:          logger,
	}
}

// CreateUser creates a new account.
//
// The request is validated first; an empty password means the server
// generates a random one and returns it exactly once in the response.
// Requested group memberships are resolved by name before the account row is
// persisted; an unknown group name fails the whole call without creating
// anything.
func (s *accountService) CreateUser(ctx context.Context, req models.CreateUserRequest) (models.CreateUserResponse, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, req); err != nil {
		log.Warn().Err(err).Str("func", "*accountService.CreateUser").Str("login", req.Login).Msg("invalid create user request")
		return models.CreateUserResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	groups := make([]models.Group, 0, len(req.Groups))
	for _, groupName := range req.Groups {
		group, err := s.groupRepository.FindGroupByName(ctx, groupName)
		if err != nil {
			log.Warn().Err(err).Str("func", "*accountService.CreateUser").Str("group", groupName).Msg("requested group not resolvable")
			return models.CreateUserResponse{}, fmt.Errorf("group search by name failed: %w", err)
		}
		groups = append(groups, group)
	}

	password := req.Password
	generated := ""
	if password == "" {
		var err error
		if generated, err = generatePassword(); err != nil {
			log.Err(err).Str("func", "*accountService.CreateUser").Msg("password generation failed")
			return models.CreateUserResponse{}, fmt.Errorf("password generation failed: %w", err)
		}
		password = generated
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		log.Err(err).Str("func", "*accountService.CreateUser").Msg("password hashing failed")
		return models.CreateUserResponse{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user, err := s.userRepository.CreateUser(ctx, models.User{
		Login:        req.Login,
		Name:         req.Name,
		PasswordHash: passwordHash,
		IsStaff:      req.IsStaff,
		IsActive:     true,
	})
	if err != nil {
		log.Err(err).Str("func", "*accountService.CreateUser").Str("login", req.Login).Msg("user creation ended with error")
		return models.CreateUserResponse{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	for _, group := range groups {
		if err = s.userRepository.AddUserToGroup(ctx, user.UserID, group.GroupID); err != nil && !errors.Is(err, store.ErrMembershipAlreadyExists) {
			return models.CreateUserResponse{}, fmt.Errorf("group assignment failed: %w", err)
		}
	}
	if len(groups) > 0 {
		if user, err = s.userRepository.FindUserByID(ctx, user.UserID); err != nil {
			return models.CreateUserResponse{}, fmt.Errorf("user reload after group assignment failed: %w", err)
		}
	}

	log.Info().Str("func", "*accountService.CreateUser").Int64("id", user.UserID).Str("login", user.Login).Msg("user created")

	return models.CreateUserResponse{
		User:              user,
		GeneratedPassword: generated,
	}, nil
}

// GetUser retrieves an account by ID with groups loaded.
func (s *accountService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}
	return user, nil
}

// ListUsers returns accounts matching the filter.
func (s *accountService) ListUsers(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	users, err := s.userRepository.ListUsers(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("user listing failed: %w", err)
	}
	return users, nil
}

// UpdateUser applies the non-nil fields of req to the account and returns
// the refreshed record.
func (s *accountService) UpdateUser(ctx context.Context, userID int64, req models.UpdateUserRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.IsStaff != nil {
		user.IsStaff = *req.IsStaff
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	updated, err := s.userRepository.UpdateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("func", "*accountService.UpdateUser").Int64("id", userID).Msg("user update failed")
		return models.User{}, fmt.Errorf("user update failed: %w", err)
	}

	log.Info().Str("func", "*accountService.UpdateUser").Int64("id", updated.UserID).Msg("user updated")

	return updated, nil
}

// CreateGroup creates a new authorization group.
func (s *accountService) CreateGroup(ctx context.Context, req models.CreateGroupRequest) (models.Group, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, req); err != nil {
		log.Warn().Err(err).Str("func", "*accountService.CreateGroup").Str("name", req.Name).Msg("invalid create group request")
		return models.Group{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	group, err := s.groupRepository.CreateGroup(ctx, models.Group{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		log.Err(err).Str("func", "*accountService.CreateGroup").Str("name", req.Name).Msg("group creation ended with error")
		return models.Group{}, fmt.Errorf("group creation ended with error: %w", err)
	}

	log.Info().Str("func", "*accountService.CreateGroup").Int64("id", group.GroupID).Str("name", group.Name).Msg("group created")

	return group, nil
}

// ListGroups returns all groups.
func (s *accountService) ListGroups(ctx context.Context) ([]models.Group, error) {
	groups, err := s.groupRepository.ListGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("group listing failed: %w", err)
	}
	return groups, nil
}

// AddUserToGroup adds the account to the named group. Adding an existing
// membership is silently accepted.
func (s *accountService) AddUserToGroup(ctx context.Context, userID int64, groupName string) error {
	group, err := s.groupRepository.FindGroupByName(ctx, groupName)
	if err != nil {
		return fmt.Errorf("group search by name failed: %w", err)
	}

	if err = s.userRepository.AddUserToGroup(ctx, userID, group.GroupID); err != nil {
		if errors.Is(err, store.ErrMembershipAlreadyExists) {
			return nil
		}
		return fmt.Errorf("group assignment failed: %w", err)
	}

	return nil
}

// RemoveUserFromGroup removes the account from the named group.
func (s *accountService) RemoveUserFromGroup(ctx context.Context, userID int64, groupName string) error {
	group, err := s.groupRepository.FindGroupByName(ctx, groupName)
	if err != nil {
		return fmt.Errorf("group search by name failed: %w", err)
	}

	if err = s.userRepository.RemoveUserFromGroup(ctx, userID, group.GroupID); err != nil {
		return fmt.Errorf("group removal failed: %w", err)
	}

	return nil
}

// EnsureAdmin creates the bootstrap staff account on first start. When the
// login already exists (including a concurrent creation racing this call),
// nothing happens.
func (s *accountService) EnsureAdmin(ctx context.Context, login, password string) error {
	log := logger.FromContext(ctx)

	if login == "" || password == "" {
		return nil
	}

	if _, err := s.userRepository.FindUserByLogin(ctx, login); err == nil {
		return nil
	} else if !errors.Is(err, store.ErrNoUserWasFound) {
		return fmt.Errorf("admin lookup failed: %w", err)
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("admin password hashing failed: %w", err)
	}

	_, err = s.userRepository.CreateUser(ctx, models.User{
		Login:        login,
		Name:         "Administrator",
		PasswordHash: passwordHash,
		IsStaff:      true,
		IsActive:     true,
	})
	if err != nil {
		if errors.Is(err, store.ErrLoginAlreadyExists) {
			return nil
		}
		return fmt.Errorf("admin creation failed: %w", err)
	}

	log.Info().Str("func", "*accountService.EnsureAdmin").Str("login", login).Msg("bootstrap admin account created")

	return nil
}

// generatePassword produces a random initial password for accounts created
// without one.
func generatePassword() (string, error) {
	raw := make([]byte, generatedPasswordBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
