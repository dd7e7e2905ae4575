// Package mirror implements the relational Layout Initializer and Mirror
// Handle that decompose a declared GraphQL schema into a versioned
// relational layout and bring a database into that layout transactionally.
//
// Ingestion and readback of GraphQL object data are, per design, owned by a
// separate (out-of-scope) component; this package only establishes and
// verifies the layout, plus a strictly read-only inspection surface over it
// (read.go).
package mirror
