package mirror

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// OwnData is the union of primitive fields and link references owned by a
// single object: everything queryable uniformly without connection
// cursors. Link values are omitted from the map when the corresponding
// link row either does not exist yet or is unresolved (child_id IS NULL).
type OwnData struct {
	Primitives map[string]any
	Links      map[string]string
}

// ConnectionEntry is one ordered entry of a connection.
type ConnectionEntry struct {
	Index   int64
	ChildID string
}

// ConnectionPage is the read-only projection of one (object, connection
// field) slot: its pagination metadata plus its ordered entries.
type ConnectionPage struct {
	LastUpdate  sql.NullInt64
	TotalCount  sql.NullInt64
	HasNextPage sql.NullBool
	EndCursor   sql.NullString
	Entries     []ConnectionEntry
}

// ObjectCount returns the number of rows in the objects table.
func (h *Handle) ObjectCount(ctx context.Context) (int64, error) {
	var count int64
	row := h.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM objects`)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("mirror: counting objects: %w", err)
	}
	return count, nil
}

// TypeCounts returns the number of objects rows grouped by typename. Object
// types declared in the schema but with no ingested rows are simply absent
// from the result rather than present with a zero count.
func (h *Handle) TypeCounts(ctx context.Context) (map[string]int64, error) {
	rows, err := h.db.QueryContext(ctx, `SELECT typename, COUNT(*) FROM objects GROUP BY typename`)
	if err != nil {
		return nil, fmt.Errorf("mirror: counting objects by type: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var typeName string
		var count int64
		if err := rows.Scan(&typeName, &count); err != nil {
			return nil, fmt.Errorf("mirror: scanning type count row: %w", err)
		}
		counts[typeName] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("mirror: iterating type counts: %w", err)
	}
	return counts, nil
}

// OwnData reads one object's primitive payload and resolved link fields.
// It performs only SELECT traffic: it never writes to objects, links,
// primitives_<T>, or any other mirror table, so it cannot race with or
// substitute for the (out-of-scope) ingestion API that owns those writes.
func (h *Handle) OwnData(ctx context.Context, typeName, id string) (*OwnData, error) {
	obj, ok := h.info.ObjectTypes[typeName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, typeName)
	}

	cols := obj.PrimitiveFieldNames
	selectCols := "id"
	if len(cols) > 0 {
		quoted := make([]string, len(cols))
		for i, c := range cols {
			quoted[i] = quoteIdent(c)
		}
		selectCols += ", " + strings.Join(quoted, ", ")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = ?`, selectCols, quoteIdent(primitivesTableName(typeName)))

	dest := make([]any, len(cols)+1)
	var rowID string
	dest[0] = &rowID
	vals := make([]sql.NullString, len(cols))
	for i := range cols {
		dest[i+1] = &vals[i]
	}

	row := h.db.QueryRowContext(ctx, query, id)
	if err := row.Scan(dest...); err != nil {
		return nil, fmt.Errorf("mirror: reading own data for %s/%s: %w", typeName, id, err)
	}

	primitives := make(map[string]any, len(cols))
	for i, c := range cols {
		if vals[i].Valid {
			primitives[c] = vals[i].String
		} else {
			primitives[c] = nil
		}
	}

	links := make(map[string]string)
	if len(obj.LinkFieldNames) > 0 {
		rows, err := h.db.QueryContext(ctx, `SELECT fieldname, child_id FROM links WHERE parent_id = ?`, id)
		if err != nil {
			return nil, fmt.Errorf("mirror: reading links for %s/%s: %w", typeName, id, err)
		}
		defer rows.Close()
		for rows.Next() {
			var fieldname string
			var childID sql.NullString
			if err := rows.Scan(&fieldname, &childID); err != nil {
				return nil, fmt.Errorf("mirror: scanning link row: %w", err)
			}
			if childID.Valid {
				links[fieldname] = childID.String
			}
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("mirror: iterating links: %w", err)
		}
	}

	return &OwnData{Primitives: primitives, Links: links}, nil
}

// Connection reads one (object, connection field) slot: its pagination
// metadata and its ordered entries. Returns sql.ErrNoRows (wrapped) if the
// ingestion-owned connections row for this object/field does not exist yet.
func (h *Handle) Connection(ctx context.Context, typeName, id, field string) (*ConnectionPage, error) {
	obj, ok := h.info.ObjectTypes[typeName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, typeName)
	}
	if !containsString(obj.ConnectionFieldNames, field) {
		return nil, fmt.Errorf("%w: %q.%q", ErrNotConnectionField, typeName, field)
	}

	var page ConnectionPage
	var connectionID int64
	row := h.db.QueryRowContext(ctx,
		`SELECT connection_id, last_update, total_count, has_next_page, end_cursor
		 FROM connections WHERE object_id = ? AND fieldname = ?`,
		id, field,
	)
	if err := row.Scan(&connectionID, &page.LastUpdate, &page.TotalCount, &page.HasNextPage, &page.EndCursor); err != nil {
		return nil, fmt.Errorf("mirror: reading connection %s/%s.%s: %w", typeName, id, field, err)
	}

	rows, err := h.db.QueryContext(ctx,
		`SELECT idx, child_id FROM connection_entries WHERE connection_id = ? ORDER BY idx`,
		connectionID,
	)
	if err != nil {
		return nil, fmt.Errorf("mirror: reading connection entries %s/%s.%s: %w", typeName, id, field, err)
	}
	defer rows.Close()

	for rows.Next() {
		var entry ConnectionEntry
		var childID sql.NullString
		if err := rows.Scan(&entry.Index, &childID); err != nil {
			return nil, fmt.Errorf("mirror: scanning connection entry row: %w", err)
		}
		entry.ChildID = childID.String
		page.Entries = append(page.Entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("mirror: iterating connection entries: %w", err)
	}

	return &page, nil
}

func containsString(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
