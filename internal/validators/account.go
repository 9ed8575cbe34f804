package validators

import (
	"context"
	"regexp"

	"github.com/MKhiriev/go-access-portal/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate to restrict validation to a subset
// of fields (field-level scoping).
const (
	// FieldLogin targets the unique login identifier of an account.
	FieldLogin = "login"

	// FieldPassword targets the plaintext password of a credential payload.
	FieldPassword = "password"

	// FieldName targets the display name of an account.
	FieldName = "name"

	// FieldGroupName targets the unique name of a group.
	FieldGroupName = "group_name"
)

var (
	loginPattern     = regexp.MustCompile(`^[a-z0-9._-]{3,64}$`)
	groupNamePattern = regexp.MustCompile(`^[a-z0-9_-]{2,64}$`)
)

const (
	minPasswordLength = 8
	maxPasswordLength = 128
	maxNameLength     = 128
)

// AccountValidator validates account-related payloads: login credentials,
// user-creation requests, and group-creation requests.
type AccountValidator struct {
}

// NewAccountValidator constructs a [Validator] for account payloads.
func NewAccountValidator() Validator {
	return &AccountValidator{}
}

// Validate dispatches on the dynamic type of obj. Supported types:
// [models.Credentials], [models.CreateUserRequest], [models.CreateGroupRequest]
// (values and pointers). Unknown types yield [ErrUnsupportedType].
func (v *AccountValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Credentials:
		return v.validateCredentials(value, fields...)
	case *models.Credentials:
		return v.validateCredentials(*value, fields...)

	case models.CreateUserRequest:
		return v.validateCreateUser(value, fields...)
	case *models.CreateUserRequest:
		return v.validateCreateUser(*value, fields...)

	case models.CreateGroupRequest:
		return v.validateCreateGroup(value, fields...)
	case *models.CreateGroupRequest:
		return v.validateCreateGroup(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *AccountValidator) validateCredentials(creds models.Credentials, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldLogin, FieldPassword}
	}

	for _, field := range fields {
		switch field {
		case FieldLogin:
			if creds.Login == "" {
				return ErrEmptyLogin
			}
		case FieldPassword:
			if creds.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AccountValidator) validateCreateUser(req models.CreateUserRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldLogin, FieldPassword, FieldName}
	}

	for _, field := range fields {
		switch field {
		case FieldLogin:
			if req.Login == "" {
				return ErrEmptyLogin
			}
			if !loginPattern.MatchString(req.Login) {
				return ErrInvalidLogin
			}
		case FieldPassword:
			// empty password means "generate one for me"
			if req.Password == "" {
				continue
			}
			if len(req.Password) < minPasswordLength {
				return ErrPasswordTooShort
			}
			if len(req.Password) > maxPasswordLength {
				return ErrPasswordTooLong
			}
		case FieldName:
			if len(req.Name) > maxNameLength {
				return ErrNameTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AccountValidator) validateCreateGroup(req models.CreateGroupRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldGroupName}
	}

	for _, field := range fields {
		switch field {
		case FieldGroupName:
			if req.Name == "" {
				return ErrEmptyGroupName
			}
			if !groupNamePattern.MatchString(req.Name) {
				return ErrInvalidGroupName
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
