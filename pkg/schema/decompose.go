package schema

import "fmt"

// ObjectInfo is the decomposed view of one object type: its id field name,
// and the three pairwise-disjoint, ordered field-name sequences that
// partition the rest of its field set.
type ObjectInfo struct {
	IDFieldName          string
	PrimitiveFieldNames  []string
	LinkFieldNames       []string
	ConnectionFieldNames []string
	Fields               map[string]Field
}

// UnionInfo is the decomposed view of one union type: its member clause
// names, in declaration order.
type UnionInfo struct {
	Clauses []string
}

// SchemaInfo is the immutable, decomposed view of a Schema produced by
// Decompose. It is the only representation the Layout Initializer consumes.
type SchemaInfo struct {
	ObjectTypes map[string]ObjectInfo
	UnionTypes  map[string]UnionInfo
	// TypeOrder preserves the declaration order of the source Schema so
	// callers that must visit types deterministically (DDL generation)
	// do not have to re-derive it from a map.
	TypeOrder []string
}

// Decompose derives a SchemaInfo from schema. It is pure and total on
// well-formed input: every object type must carry exactly one ID field, and
// every field must be one of the four closed FieldKind variants.
func Decompose(schema *Schema) (*SchemaInfo, error) {
	info := &SchemaInfo{
		ObjectTypes: make(map[string]ObjectInfo),
		UnionTypes:  make(map[string]UnionInfo),
		TypeOrder:   schema.Names(),
	}

	for _, typeName := range info.TypeOrder {
		decl, _ := schema.Get(typeName)
		switch decl.Kind {
		case TypeKindObject:
			obj, err := decomposeObject(typeName, decl)
			if err != nil {
				return nil, err
			}
			info.ObjectTypes[typeName] = obj
		case TypeKindUnion:
			clauses := make([]string, len(decl.Clauses))
			copy(clauses, decl.Clauses)
			info.UnionTypes[typeName] = UnionInfo{Clauses: clauses}
		default:
			return nil, fmt.Errorf("schema: type %q has unknown type kind %v", typeName, decl.Kind)
		}
	}

	return info, nil
}

func decomposeObject(typeName string, decl TypeDecl) (ObjectInfo, error) {
	obj := ObjectInfo{Fields: make(map[string]Field, len(decl.Fields))}

	idSeen := false
	for _, f := range decl.Fields {
		if _, dup := obj.Fields[f.Name]; dup {
			return ObjectInfo{}, fmt.Errorf("schema: type %q declares field %q twice", typeName, f.Name)
		}
		obj.Fields[f.Name] = f

		switch f.Kind {
		case FieldKindID:
			if idSeen {
				return ObjectInfo{}, fmt.Errorf("schema: type %q declares more than one ID field", typeName)
			}
			idSeen = true
			obj.IDFieldName = f.Name
		case FieldKindPrimitive:
			obj.PrimitiveFieldNames = append(obj.PrimitiveFieldNames, f.Name)
		case FieldKindNode:
			obj.LinkFieldNames = append(obj.LinkFieldNames, f.Name)
		case FieldKindConnection:
			obj.ConnectionFieldNames = append(obj.ConnectionFieldNames, f.Name)
		default:
			return ObjectInfo{}, fmt.Errorf("schema: type %q field %q has unknown field kind %v", typeName, f.Name, f.Kind)
		}
	}

	if !idSeen {
		return ObjectInfo{}, fmt.Errorf("schema: type %q declares no ID field", typeName)
	}

	return obj, nil
}
