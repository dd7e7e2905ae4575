package mirror

import (
	"fmt"
	"strings"

	"github.com/localmirror/gqlmirror/pkg/schema"
)

// metaTableDDL creates the singleton meta table if it does not already
// exist. This statement is schema-independent and is safe to run on every
// Initialize call (step 3 of the Layout Initializer algorithm).
const metaTableDDL = `CREATE TABLE IF NOT EXISTS meta (
	id INTEGER PRIMARY KEY CHECK (id = 0),
	schema TEXT NOT NULL
);`

const createUpdates = `CREATE TABLE updates (
	update_id INTEGER PRIMARY KEY,
	time_epoch_millis INTEGER NOT NULL
);`

const createObjects = `CREATE TABLE objects (
	id TEXT PRIMARY KEY,
	typename TEXT NOT NULL,
	last_update INTEGER REFERENCES updates(update_id)
);`

const createLinks = `CREATE TABLE links (
	link_id INTEGER PRIMARY KEY,
	parent_id TEXT NOT NULL REFERENCES objects(id),
	fieldname TEXT NOT NULL,
	child_id TEXT REFERENCES objects(id)
);`

const idxLinksUnique = `CREATE UNIQUE INDEX idx_links_parent_field ON links(parent_id, fieldname);`

const createConnections = `CREATE TABLE connections (
	connection_id INTEGER PRIMARY KEY,
	object_id TEXT NOT NULL REFERENCES objects(id),
	fieldname TEXT NOT NULL,
	last_update INTEGER REFERENCES updates(update_id),
	total_count INTEGER,
	has_next_page INTEGER,
	end_cursor TEXT,
	CHECK ((last_update IS NULL) = (total_count IS NULL)),
	CHECK ((last_update IS NULL) = (has_next_page IS NULL)),
	CHECK ((last_update IS NULL) <= (end_cursor IS NULL))
);`

const idxConnectionsUnique = `CREATE UNIQUE INDEX idx_connections_object_field ON connections(object_id, fieldname);`

const createConnectionEntries = `CREATE TABLE connection_entries (
	entry_id INTEGER PRIMARY KEY,
	connection_id INTEGER NOT NULL REFERENCES connections(connection_id),
	idx INTEGER NOT NULL,
	child_id TEXT REFERENCES objects(id)
);`

const idxConnectionEntriesUnique = `CREATE UNIQUE INDEX idx_connection_entries_idx ON connection_entries(connection_id, idx);`

// structuralDDL lists the non-schema-dependent DDL statements in the exact
// order the Layout Initializer algorithm requires: each table before
// anything that foreign-keys into it, and each table's own uniqueness index
// immediately after it.
var structuralDDL = []string{
	createUpdates,
	createObjects,
	createLinks,
	idxLinksUnique,
	createConnections,
	idxConnectionsUnique,
	createConnectionEntries,
	idxConnectionEntriesUnique,
}

// primitivesTableName returns the table name for an object type's primitive
// payload table. Callers must have already validated typeName with
// isSQLSafe.
func primitivesTableName(typeName string) string {
	return "primitives_" + typeName
}

// primitivesTableDDL builds the CREATE TABLE statement for one object
// type's primitives table: a TEXT primary key id, one nullable column per
// primitive field (named and ordered exactly as declared), and a foreign
// key from id to objects(id). Callers must have already validated typeName
// and every name in primitiveFieldNames with isSQLSafe.
func primitivesTableDDL(typeName string, primitiveFieldNames []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (\n", quoteIdent(primitivesTableName(typeName)))
	b.WriteString("\tid TEXT NOT NULL PRIMARY KEY,\n")
	for _, field := range primitiveFieldNames {
		fmt.Fprintf(&b, "\t%s TEXT,\n", quoteIdent(field))
	}
	b.WriteString("\tFOREIGN KEY (id) REFERENCES objects(id)\n")
	b.WriteString(");")
	return b.String()
}

// objectTypeNames returns the subset of info.TypeOrder that names an object
// type, preserving declaration order. Union types produce no DDL.
func objectTypeNames(info *schema.SchemaInfo) []string {
	var names []string
	for _, name := range info.TypeOrder {
		if _, ok := info.ObjectTypes[name]; ok {
			names = append(names, name)
		}
	}
	return names
}
