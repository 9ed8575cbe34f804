// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides input validation for the portal's business
// rules, decoupled from transport and storage.
//
// The [Validator] interface is intentionally generic: implementations encode
// domain-specific rules (account fields, group names) and are injected into
// services, which call Validate with the value under test and, optionally,
// the names of the fields to check.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input
// values. Implementations may perform structural validation, semantic
// checks, cross-field rules.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
