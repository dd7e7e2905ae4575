package mirror

import (
	"fmt"
	"regexp"

	"github.com/localmirror/gqlmirror/pkg/schema"
)

// identifierSafe matches the only strings this package will interpolate
// into DDL as a table or column identifier. Deliberately conservative: it
// rejects some SQL-safe strings (hyphens, for instance) because the only
// alternative — full SQL-identifier quoting/escaping — is easy to get
// wrong.
var identifierSafe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

func isSQLSafe(s string) bool {
	return identifierSafe.MatchString(s)
}

// validateIdentifiers checks every Typename that becomes a table name and
// every primitive Fieldname that becomes a column name against
// isSQLSafe, returning a single error describing the first violation found
// (in type declaration order) so the caller can fail before issuing any
// DDL at all.
func validateIdentifiers(info *schema.SchemaInfo) error {
	for _, typeName := range info.TypeOrder {
		obj, ok := info.ObjectTypes[typeName]
		if !ok {
			continue // union type: no primitives_<T> table, nothing to validate
		}
		if !isSQLSafe(typeName) {
			return fmt.Errorf("%w: type name %q", ErrUnsafeIdentifier, typeName)
		}
		for _, fieldName := range obj.PrimitiveFieldNames {
			if !isSQLSafe(fieldName) {
				return fmt.Errorf("%w: field %q of type %q", ErrUnsafeIdentifier, fieldName, typeName)
			}
		}
	}
	return nil
}

// quoteIdent double-quotes an already-validated identifier for use in DDL.
// Callers must have passed it through isSQLSafe first; quoting here is
// defense in depth, not the safety mechanism itself.
func quoteIdent(s string) string {
	return `"` + s + `"`
}
