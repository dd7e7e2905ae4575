package schema

import "fmt"

// FieldKind discriminates the four kinds a GraphQL object field can have in
// this mirror's closed field-kind vocabulary.
type FieldKind int

const (
	// FieldKindUnknown is the zero value and never a valid field; its
	// presence indicates a field was constructed without going through
	// NewIDField/NewPrimitiveField/NewNodeField/NewConnectionField.
	FieldKindUnknown FieldKind = iota
	FieldKindID
	FieldKindPrimitive
	FieldKindNode
	FieldKindConnection
)

func (k FieldKind) String() string {
	switch k {
	case FieldKindID:
		return "ID"
	case FieldKindPrimitive:
		return "PRIMITIVE"
	case FieldKindNode:
		return "NODE"
	case FieldKindConnection:
		return "CONNECTION"
	default:
		return "UNKNOWN"
	}
}

// Field is one named field of an object type. Target is populated only for
// Node and Connection kinds, naming the linked/elemental type.
type Field struct {
	Name   string    `json:"name"`
	Kind   FieldKind `json:"kind"`
	Target string    `json:"target,omitempty"`
}

// NewIDField declares the object's identifier field.
func NewIDField(name string) Field { return Field{Name: name, Kind: FieldKindID} }

// NewPrimitiveField declares a scalar-valued field.
func NewPrimitiveField(name string) Field { return Field{Name: name, Kind: FieldKindPrimitive} }

// NewNodeField declares a single-object link field pointing at targetType.
func NewNodeField(name, targetType string) Field {
	return Field{Name: name, Kind: FieldKindNode, Target: targetType}
}

// NewConnectionField declares a paginated edge-set field over elementType.
func NewConnectionField(name, elementType string) Field {
	return Field{Name: name, Kind: FieldKindConnection, Target: elementType}
}

// TypeKind discriminates the two kinds a declared GraphQL type can have.
type TypeKind int

const (
	TypeKindUnknown TypeKind = iota
	TypeKindObject
	TypeKindUnion
)

func (k TypeKind) String() string {
	switch k {
	case TypeKindObject:
		return "OBJECT"
	case TypeKindUnion:
		return "UNION"
	default:
		return "UNKNOWN"
	}
}

// TypeDecl is a tagged variant: an Object type carries an ordered field
// list, a Union type carries an ordered list of member clause names. Exactly
// one of Fields/Clauses is meaningful, selected by Kind.
type TypeDecl struct {
	Kind    TypeKind `json:"kind"`
	Fields  []Field  `json:"fields,omitempty"`
	Clauses []string `json:"clauses,omitempty"`
}

// NewObjectType declares an object type from its fields, in declaration
// order. Field order here is what later determines the order of the
// primitive/link/connection sequences produced by Decompose.
func NewObjectType(fields ...Field) TypeDecl {
	return TypeDecl{Kind: TypeKindObject, Fields: fields}
}

// NewUnionType declares a union type from its ordered member clause names.
func NewUnionType(clauses ...string) TypeDecl {
	return TypeDecl{Kind: TypeKindUnion, Clauses: clauses}
}

// Schema is the declared GraphQL schema: an ordered mapping from type name
// to its declaration. Iteration order is insertion order and is stable
// across repeated calls to Names, which matters because the Layout
// Initializer is specified to create tables/columns in a deterministic
// sequence given the same Schema value.
type Schema struct {
	order []string
	types map[string]TypeDecl
}

// NewSchema returns an empty Schema ready for Add calls.
func NewSchema() *Schema {
	return &Schema{types: make(map[string]TypeDecl)}
}

// Add declares a type. Returns an error if typeName was already declared.
func (s *Schema) Add(typeName string, decl TypeDecl) error {
	if _, exists := s.types[typeName]; exists {
		return fmt.Errorf("schema: type %q already declared", typeName)
	}
	if s.types == nil {
		s.types = make(map[string]TypeDecl)
	}
	s.order = append(s.order, typeName)
	s.types[typeName] = decl
	return nil
}

// Get returns the declaration for typeName and whether it exists.
func (s *Schema) Get(typeName string) (TypeDecl, bool) {
	decl, ok := s.types[typeName]
	return decl, ok
}

// Names returns all declared type names in declaration order.
func (s *Schema) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of declared types.
func (s *Schema) Len() int { return len(s.order) }
