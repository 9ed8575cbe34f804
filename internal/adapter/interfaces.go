// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating
// with the portal server.
//
// The primary abstraction is [ServerAdapter], which decouples the terminal
// client from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-access-portal/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the portal
// server. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel
// values defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests. It is called automatically after a
	// successful Login.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Login authenticates with the server and stores the returned bearer
	// token via SetToken. Returns [ErrUnauthorized] (wrapped) on bad
	// credentials.
	Login(ctx context.Context, creds models.Credentials) (models.User, error)

	// Logout tells the server to drop the current session, if any, and
	// clears the stored token.
	Logout(ctx context.Context) error

	// Profile fetches the authenticated account.
	Profile(ctx context.Context) (models.User, error)

	// ListUsers fetches accounts matching the filter. Staff only.
	ListUsers(ctx context.Context, filter models.UserFilter) ([]models.User, error)

	// GetUser fetches one account by ID. Staff only.
	GetUser(ctx context.Context, userID int64) (models.User, error)

	// CreateUser creates a new account. Staff only. Returns [ErrConflict]
	// (wrapped) when the login is taken.
	CreateUser(ctx context.Context, req models.CreateUserRequest) (models.CreateUserResponse, error)

	// UpdateUser applies a partial update to an account. Staff only.
	UpdateUser(ctx context.Context, userID int64, req models.UpdateUserRequest) (models.User, error)

	// AddUserToGroup adds the account to the named group. Staff only.
	AddUserToGroup(ctx context.Context, userID int64, groupName string) error

	// RemoveUserFromGroup removes the account from the named group. Staff only.
	RemoveUserFromGroup(ctx context.Context, userID int64, groupName string) error

	// ListGroups fetches all groups. Staff only.
	ListGroups(ctx context.Context) ([]models.Group, error)

	// CreateGroup creates a new group. Staff only. Returns [ErrConflict]
	// (wrapped) when the name is taken.
	CreateGroup(ctx context.Context, req models.CreateGroupRequest) (models.Group, error)

	// GetServerVersion fetches the server's version string.
	GetServerVersion(ctx context.Context) (string, error)
}
