package mirror

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/localmirror/gqlmirror/pkg/schema"
)

// Initialize atomically brings db into a state where sch is mirrored, or
// fails and leaves db unmodified. It is safe to call again with an
// identical schema (idempotent no-op DDL); calling it with a schema whose
// canonical blob differs from a previously stored one fails with
// ErrSchemaMismatch and makes no change.
//
// Precondition: db is either empty and not shared with any other writer, or
// was previously initialized by this package with an identical schema.
// Concurrent writers to the same database are undefined behavior.
func Initialize(ctx context.Context, db *sql.DB, sch *schema.Schema) error {
	return initialize(ctx, db, &txState{}, sch)
}

func initialize(ctx context.Context, db *sql.DB, state *txState, sch *schema.Schema) error {
	if db == nil {
		return ErrNilDB
	}
	if sch == nil {
		return ErrNilSchema
	}

	log := slog.Default().With("component", "mirror.layout")
	log.InfoContext(ctx, "layout.init.start", "type_count", sch.Len())

	info, err := schema.Decompose(sch)
	if err != nil {
		return fmt.Errorf("mirror: decomposing schema: %w", err)
	}

	// Identifier safety is checked before any DDL is issued at all: a
	// schema with an unsafe type or field name never opens a transaction.
	if err := validateIdentifiers(info); err != nil {
		return err
	}

	blob, err := computeMetaBlob(sch)
	if err != nil {
		return err
	}

	return inTransaction(ctx, db, state, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, metaTableDDL); err != nil {
			return fmt.Errorf("mirror: creating meta table: %w", err)
		}

		existing, ok, err := readMetaBlob(ctx, tx)
		if err != nil {
			return err
		}
		if ok {
			if existing != blob {
				log.WarnContext(ctx, "layout.init.mismatch")
				return ErrSchemaMismatch
			}
			// Already initialized with an identical schema: nothing else
			// to do. No structural or primitives DDL is issued.
			log.InfoContext(ctx, "layout.init.unchanged")
			return nil
		}

		if err := insertMetaBlob(ctx, tx, blob); err != nil {
			return err
		}

		for _, stmt := range structuralDDL {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("mirror: creating structural layout: %w", err)
			}
		}

		for _, typeName := range objectTypeNames(info) {
			obj := info.ObjectTypes[typeName]
			ddl := primitivesTableDDL(typeName, obj.PrimitiveFieldNames)
			if _, err := tx.ExecContext(ctx, ddl); err != nil {
				return fmt.Errorf("mirror: creating primitives table for %q: %w", typeName, err)
			}
		}

		log.InfoContext(ctx, "layout.init.created", "object_type_count", len(objectTypeNames(info)))
		return nil
	})
}
