// Shared helpers for gqlmirror CLI commands.
package main

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"
)

// openDB resolves the configured database path, opens it, and stores the
// handle in the package-level db variable so PersistentPostRunE can close
// it. Safe to call more than once per process; later calls reuse db.
func openDB() (*sql.DB, error) {
	if db != nil {
		return db, nil
	}

	path, err := loadedConfig.DBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}

	// modernc.org/sqlite leaves foreign-key enforcement off per connection
	// by default; every REFERENCES clause in internal/mirror's DDL depends
	// on it being on before any ingestion code writes through this handle.
	opened, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	db = opened
	return db, nil
}

// printResult writes v as indented JSON when --json is set, or via fmt.Println
// of the supplied plain-text rendering otherwise.
func printResult(v any, plain string) error {
	if !flagJSON {
		fmt.Println(plain)
		return nil
	}

	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
