package mirror

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// txState guards the single-connection transaction-nesting precondition
// that inTransaction enforces: a Handle (or a bare Initialize call) must
// never have two transactions open against the same database at once. The
// mirror's scheduling model is single-threaded with respect to a given
// connection, so the mutex here is a cheap safety net, not a concurrency
// primitive the design relies on.
type txState struct {
	mu     sync.Mutex
	active bool
}

// inTransaction begins a transaction, invokes fn, and on normal return
// commits if the connection is still in a transaction; on any error from fn
// it rolls back if still in a transaction, then re-raises. fn is permitted
// to commit/rollback/begin its own transactions — this wrapper only acts on
// whatever transaction state remains on exit, detected via sql.ErrTxDone,
// which database/sql already returns from Commit/Rollback on a finished
// *sql.Tx. This tolerates nested-use patterns at the cost of requiring
// callers to understand the final-state rule.
func inTransaction(ctx context.Context, db *sql.DB, state *txState, fn func(tx *sql.Tx) error) error {
	state.mu.Lock()
	if state.active {
		state.mu.Unlock()
		return ErrAlreadyInTransaction
	}
	state.active = true
	state.mu.Unlock()

	defer func() {
		state.mu.Lock()
		state.active = false
		state.mu.Unlock()
	}()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("mirror: beginning transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			return fmt.Errorf("mirror: rolling back after %w: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		if err == sql.ErrTxDone {
			return nil
		}
		return fmt.Errorf("mirror: committing transaction: %w", err)
	}
	return nil
}
