package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyLogin       = errors.New("login is required")
	ErrInvalidLogin     = errors.New("login must be 3-64 characters of [a-z0-9._-]")
	ErrEmptyPassword    = errors.New("password is required")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong  = errors.New("password must be at most 128 characters")
	ErrNameTooLong      = errors.New("name must be at most 128 characters")
	ErrEmptyGroupName   = errors.New("group name is required")
	ErrInvalidGroupName = errors.New("group name must be 2-64 characters of [a-z0-9_-]")
)
