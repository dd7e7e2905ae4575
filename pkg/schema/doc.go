// Package schema defines the in-memory Schema Model for a declared GraphQL
// object graph and the pure decomposition that turns it into a SchemaInfo —
// the per-type partition of fields into identifier/primitive/link/connection
// groups that the relational layout is built from.
//
// Nothing in this package touches a database or performs I/O; Decompose is
// total on well-formed input and deterministic given a single Schema value.
package schema
