package mirror

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// openTestDB returns an in-memory SQLite handle private to the calling
// test, closed automatically on cleanup. Foreign-key enforcement is turned
// on via the DSN, matching the handle cmd/gqlmirror constructs for real
// use, since modernc.org/sqlite otherwise leaves it off per connection.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(1)")
	if err != nil {
		t.Fatalf("opening in-memory sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
