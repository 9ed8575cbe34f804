package config

import "errors"

// Validation errors returned by the validate methods when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, empty DSN or unsupported driver).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")

	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, missing token sign key or issuer).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")

	// ErrInvalidSessionConfigs indicates invalid session settings
	// (for example, zero TTL or empty redirect URLs).
	ErrInvalidSessionConfigs = errors.New("invalid sessions configuration")

	// ErrInvalidAdapterConfigs indicates invalid client adapter settings
	// (for example, missing HTTP address or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
)
