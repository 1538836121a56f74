package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrServiceNotFound is returned when no service configuration matches
	// the requested slug.
	ErrServiceNotFound = errors.New("service was not found")

	// ErrNonceAlreadyExists is returned when inserting a nonce record violates
	// the (service_id, nonce) uniqueness constraint. Two requests carrying the
	// same nonce raced and this one lost.
	ErrNonceAlreadyExists = errors.New("nonce already exists")

	// ErrEventNotSaved is returned when an INSERT of a webhook event completes
	// without error but no identifier is returned.
	ErrEventNotSaved = errors.New("webhook event was not saved")

	// ErrUnknownDriver is returned when the configured database driver is
	// neither postgres nor sqlite.
	ErrUnknownDriver = errors.New("unknown database driver")
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
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")
)

// Rate counter errors.
var (
	// ErrCounterUnavailable is returned when the shared counter store cannot
	// be reached or answers with an unexpected value.
	ErrCounterUnavailable = errors.New("rate counter store unavailable")
)
