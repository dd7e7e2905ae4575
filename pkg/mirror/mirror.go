// Package mirror provides the public API for the relational GraphQL mirror.
// This package exposes the factory functions for opening and initializing a
// mirror while keeping layout, transaction, and DDL details internal.
package mirror

import (
	"context"
	"database/sql"

	"github.com/localmirror/gqlmirror/internal/mirror"
	"github.com/localmirror/gqlmirror/pkg/schema"
)

// Handle is the opened mirror: a database connection routed through a
// previously (or just now) established relational layout.
type Handle = mirror.Handle

// OwnData is one object's primitive payload and resolved link fields.
type OwnData = mirror.OwnData

// ConnectionPage is one (object, connection field) slot's pagination
// metadata and ordered entries.
type ConnectionPage = mirror.ConnectionPage

// ConnectionEntry is one ordered entry of a connection.
type ConnectionEntry = mirror.ConnectionEntry

// FormatVersion is the compatibility token baked into every meta blob.
const FormatVersion = mirror.FormatVersion

var (
	ErrNilDB              = mirror.ErrNilDB
	ErrNilSchema          = mirror.ErrNilSchema
	ErrUnsafeIdentifier   = mirror.ErrUnsafeIdentifier
	ErrSchemaMismatch     = mirror.ErrSchemaMismatch
	ErrUnknownType        = mirror.ErrUnknownType
	ErrUnknownField       = mirror.ErrUnknownField
	ErrNotLinkField       = mirror.ErrNotLinkField
	ErrNotConnectionField = mirror.ErrNotConnectionField
)

// Open validates db and sch, runs the Layout Initializer against db, and
// returns a Handle through which the mirror can be inspected.
//
// Example:
//
//	h, err := mirror.Open(ctx, db, sch)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	count, err := h.ObjectCount(ctx)
func Open(ctx context.Context, db *sql.DB, sch *schema.Schema) (*Handle, error) {
	return mirror.New(ctx, db, sch)
}

// Initialize runs the Layout Initializer against db without constructing a
// Handle. It is idempotent for a previously-initialized database carrying an
// identical schema, and fails with ErrSchemaMismatch otherwise.
func Initialize(ctx context.Context, db *sql.DB, sch *schema.Schema) error {
	return mirror.Initialize(ctx, db, sch)
}
