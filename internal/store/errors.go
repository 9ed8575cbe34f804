package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrLoginAlreadyExists is returned when an attempt to create a new user
	// fails because a user with the same login already exists.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least
	// one user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrGroupAlreadyExists is returned when creating a group whose name is
	// already taken.
	ErrGroupAlreadyExists = errors.New("group already exists")

	// ErrNoGroupWasFound is returned when a group lookup produces an empty
	// result set.
	ErrNoGroupWasFound = errors.New("no group was found")

	// ErrMembershipAlreadyExists is returned when adding a user to a group
	// they already belong to.
	ErrMembershipAlreadyExists = errors.New("user already belongs to group")

	// ErrNoSessionWasFound is returned when a session lookup by token hash
	// produces an empty result set.
	ErrNoSessionWasFound = errors.New("no session was found")

	// ErrDocumentNotFound is returned when a requested document does not
	// exist inside the documents root or its name fails sanitisation.
	ErrDocumentNotFound = errors.New("document was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
