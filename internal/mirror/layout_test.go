package mirror

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localmirror/gqlmirror/pkg/schema"
)

// openFileDB opens a file-backed SQLite handle at path, closed automatically
// on cleanup. Unlike openTestDB's :memory: handle, a second openFileDB call
// against the same path reconnects to the data the first connection left
// behind, which is what exercises a real close-and-reopen.
func openFileDB(t *testing.T, path string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func emptySchema(t *testing.T) *schema.Schema {
	t.Helper()
	return schema.NewSchema()
}

func simpleObjectSchema(t *testing.T) *schema.Schema {
	t.Helper()
	sch := schema.NewSchema()
	require.NoError(t, sch.Add("Issue", schema.NewObjectType(
		schema.NewIDField("id"),
		schema.NewPrimitiveField("title"),
		schema.NewPrimitiveField("body"),
		schema.NewNodeField("author", "User"),
		schema.NewConnectionField("comments", "Comment"),
	)))
	require.NoError(t, sch.Add("User", schema.NewObjectType(
		schema.NewIDField("id"),
		schema.NewPrimitiveField("login"),
	)))
	return sch
}

func unionSchema(t *testing.T) *schema.Schema {
	t.Helper()
	sch := schema.NewSchema()
	require.NoError(t, sch.Add("Issue", schema.NewObjectType(
		schema.NewIDField("id"),
		schema.NewPrimitiveField("title"),
	)))
	require.NoError(t, sch.Add("SearchResult", schema.NewUnionType("Issue")))
	return sch
}

func tableNames(t *testing.T, db *sql.DB) []string {
	t.Helper()
	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name`)
	require.NoError(t, err)
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	return names
}

func TestInitializeEmptySchemaCreatesStructuralTablesOnly(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, Initialize(ctx, db, emptySchema(t)))

	got := tableNames(t, db)
	assert.Equal(t, []string{"connection_entries", "connections", "links", "meta", "objects", "updates"}, got)
}

func TestInitializeSimpleObjectTypeCreatesPrimitivesTables(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, Initialize(ctx, db, simpleObjectSchema(t)))

	got := tableNames(t, db)
	assert.Contains(t, got, "primitives_Issue")
	assert.Contains(t, got, "primitives_User")

	rows, err := db.Query(`PRAGMA table_info("primitives_Issue")`)
	require.NoError(t, err)
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dflt sql.NullString
		require.NoError(t, rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk))
		cols = append(cols, name)
	}
	assert.Equal(t, []string{"id", "title", "body"}, cols)
}

func TestInitializeUnionTypeCreatesNoPrimitivesTable(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, Initialize(ctx, db, unionSchema(t)))

	got := tableNames(t, db)
	assert.Contains(t, got, "primitives_Issue")
	assert.NotContains(t, got, "primitives_SearchResult")
}

func TestInitializeIsIdempotentForIdenticalSchema(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	sch := simpleObjectSchema(t)

	require.NoError(t, Initialize(ctx, db, sch))
	before := tableNames(t, db)

	require.NoError(t, Initialize(ctx, db, sch))
	after := tableNames(t, db)

	assert.Equal(t, before, after)
}

func TestInitializeRejectsMismatchedSchemaOnSecondCall(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, Initialize(ctx, db, simpleObjectSchema(t)))

	mismatched := schema.NewSchema()
	require.NoError(t, mismatched.Add("Issue", schema.NewObjectType(
		schema.NewIDField("id"),
		schema.NewPrimitiveField("title"),
	)))

	err := Initialize(ctx, db, mismatched)
	require.ErrorIs(t, err, ErrSchemaMismatch)
}

// TestInitializeAcceptsMatchingSchemaAcrossReopenedConnection exercises the
// actual S3 scenario: close the connection that initialized the database,
// open a fresh one against the same file, and Initialize again.
func TestInitializeAcceptsMatchingSchemaAcrossReopenedConnection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mirror.sqlite")
	ctx := context.Background()
	sch := simpleObjectSchema(t)

	first := openFileDB(t, path)
	require.NoError(t, Initialize(ctx, first, sch))
	require.NoError(t, first.Close())

	second := openFileDB(t, path)
	require.NoError(t, Initialize(ctx, second, sch))

	got := tableNames(t, second)
	assert.Contains(t, got, "primitives_Issue")
	assert.Contains(t, got, "primitives_User")
}

// TestInitializeRejectsMismatchedSchemaAcrossReopenedConnection exercises
// the actual S4 scenario: the meta-blob gate must survive a real
// close-and-reopen against a file-backed database, not just a second call
// on a connection that was never closed.
func TestInitializeRejectsMismatchedSchemaAcrossReopenedConnection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mirror.sqlite")
	ctx := context.Background()

	first := openFileDB(t, path)
	require.NoError(t, Initialize(ctx, first, simpleObjectSchema(t)))
	require.NoError(t, first.Close())

	mismatched := schema.NewSchema()
	require.NoError(t, mismatched.Add("Issue", schema.NewObjectType(
		schema.NewIDField("id"),
		schema.NewPrimitiveField("title"),
	)))

	second := openFileDB(t, path)
	err := Initialize(ctx, second, mismatched)
	require.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestInitializeRejectsUnsafeTypeName(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	sch := schema.NewSchema()
	require.NoError(t, sch.Add("Bad-Type", schema.NewObjectType(
		schema.NewIDField("id"),
	)))

	err := Initialize(ctx, db, sch)
	require.ErrorIs(t, err, ErrUnsafeIdentifier)

	got := tableNames(t, db)
	assert.Empty(t, got, "a rejected schema must leave the database untouched")
}

func TestInitializeRejectsUnsafeFieldName(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	sch := schema.NewSchema()
	require.NoError(t, sch.Add("Issue", schema.NewObjectType(
		schema.NewIDField("id"),
		schema.NewPrimitiveField("bad field"),
	)))

	err := Initialize(ctx, db, sch)
	require.ErrorIs(t, err, ErrUnsafeIdentifier)

	got := tableNames(t, db)
	assert.Empty(t, got)
}

func TestInitializeRejectsNilArguments(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	require.ErrorIs(t, Initialize(ctx, nil, emptySchema(t)), ErrNilDB)
	require.ErrorIs(t, Initialize(ctx, db, nil), ErrNilSchema)
}

func TestInitializeStoresMetaBlobMatchingFormatVersion(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, Initialize(ctx, db, simpleObjectSchema(t)))

	var blob string
	row := db.QueryRowContext(ctx, `SELECT schema FROM meta WHERE id = 0`)
	require.NoError(t, row.Scan(&blob))
	assert.Contains(t, blob, FormatVersion)
}

func TestInitializeCreatesOnlyOneMetaRow(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, Initialize(ctx, db, simpleObjectSchema(t)))
	require.NoError(t, Initialize(ctx, db, simpleObjectSchema(t)))

	var count int
	row := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM meta`)
	require.NoError(t, row.Scan(&count))
	assert.Equal(t, 1, count)
}
