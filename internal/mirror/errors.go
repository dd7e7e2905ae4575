package mirror

import "errors"

// Construction and layout errors.
var (
	ErrNilDB     = errors.New("mirror: db handle must not be nil")
	ErrNilSchema = errors.New("mirror: schema must not be nil")

	ErrUnsafeIdentifier = errors.New("mirror: identifier is not sql-safe")
	ErrSchemaMismatch   = errors.New("mirror: schema does not match previously initialized layout")
)

// Transaction wrapper errors.
var ErrAlreadyInTransaction = errors.New("mirror: connection already has an open transaction")

// Read-surface errors (internal/mirror/read.go).
var (
	ErrUnknownType        = errors.New("mirror: unknown object type")
	ErrUnknownField       = errors.New("mirror: unknown field for object type")
	ErrNotLinkField       = errors.New("mirror: field is not a link field")
	ErrNotConnectionField = errors.New("mirror: field is not a connection field")
)
