package mirror

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/localmirror/gqlmirror/pkg/schema"
)

// FormatVersion is the compatibility token baked into every meta blob. Bump
// it whenever the decomposition or the relational layout changes in a way
// that would make an old database unreadable by a new binary, or vice
// versa; a bump forces every existing database onto a schema-mismatch path
// instead of risking silent corruption.
const FormatVersion = "MIRROR_v1"

func computeMetaBlob(sch *schema.Schema) (string, error) {
	blob, err := schema.CanonicalBlob(FormatVersion, sch)
	if err != nil {
		return "", fmt.Errorf("mirror: computing metadata blob: %w", err)
	}
	return blob, nil
}

// readMetaBlob returns the schema blob stored in the singleton meta row, or
// ok=false if no row exists yet.
func readMetaBlob(ctx context.Context, tx *sql.Tx) (blob string, ok bool, err error) {
	row := tx.QueryRowContext(ctx, `SELECT schema FROM meta WHERE id = 0`)
	if err := row.Scan(&blob); err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, fmt.Errorf("mirror: reading meta row: %w", err)
	}
	return blob, true, nil
}

func insertMetaBlob(ctx context.Context, tx *sql.Tx, blob string) error {
	if _, err := tx.ExecContext(ctx, `INSERT INTO meta (id, schema) VALUES (0, ?)`, blob); err != nil {
		return fmt.Errorf("mirror: inserting meta row: %w", err)
	}
	return nil
}
