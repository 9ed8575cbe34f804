package service

import "errors"

var (
	// ErrInvalidDataProvided is returned when a request payload fails
	// validation before any storage call is made.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrWrongCredentials is returned on any login failure: unknown login,
	// wrong password, or deactivated account. Callers present all three
	// identically so the response does not reveal which one occurred.
	ErrWrongCredentials = errors.New("wrong login or password")

	// ErrNotAuthenticated is returned when a session or bearer token does
	// not resolve to an active, authenticated user.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrTokenIsExpiredOrInvalid is returned when a bearer token fails
	// signature, issuer, or expiry checks.
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrTokenCreationFailed is returned when issuing a bearer token fails.
	ErrTokenCreationFailed = errors.New("token creation failed")

	// ErrVersionIsNotSpecified is returned at construction time when the
	// application version is missing from configuration.
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
