package mirror

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/localmirror/gqlmirror/pkg/schema"
)

// Handle is the constructed object exposing the mirror to callers. It owns
// a database connection and a Schema Model exclusively for its lifetime:
// once constructed, no other code should issue transactions against the
// same *sql.DB.
type Handle struct {
	db     *sql.DB
	schema *schema.Schema
	info   *schema.SchemaInfo
	txs    *txState
}

// New validates db and sch, derives SchemaInfo, runs the Layout Initializer,
// and returns a Handle routed through the resulting layout. It fails
// exactly as Initialize fails, plus ErrNilDB/ErrNilSchema for a nil
// argument.
func New(ctx context.Context, db *sql.DB, sch *schema.Schema) (*Handle, error) {
	if db == nil {
		return nil, ErrNilDB
	}
	if sch == nil {
		return nil, ErrNilSchema
	}

	info, err := schema.Decompose(sch)
	if err != nil {
		return nil, fmt.Errorf("mirror: decomposing schema: %w", err)
	}

	h := &Handle{
		db:     db,
		schema: sch,
		info:   info,
		txs:    &txState{},
	}

	if err := initialize(ctx, db, h.txs, sch); err != nil {
		return nil, err
	}

	return h, nil
}

// SchemaInfo returns the decomposed view of the schema this Handle was
// constructed with.
func (h *Handle) SchemaInfo() *schema.SchemaInfo { return h.info }
