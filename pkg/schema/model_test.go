package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaNamesPreservesInsertionOrder(t *testing.T) {
	s := NewSchema()
	require.NoError(t, s.Add("Zebra", NewObjectType(NewIDField("id"))))
	require.NoError(t, s.Add("Apple", NewObjectType(NewIDField("id"))))
	require.NoError(t, s.Add("Mango", NewObjectType(NewIDField("id"))))

	assert.Equal(t, []string{"Zebra", "Apple", "Mango"}, s.Names())
}

func TestSchemaGetMissingType(t *testing.T) {
	s := NewSchema()
	_, ok := s.Get("Nope")
	assert.False(t, ok)
}

func TestFieldKindStrings(t *testing.T) {
	assert.Equal(t, "ID", FieldKindID.String())
	assert.Equal(t, "PRIMITIVE", FieldKindPrimitive.String())
	assert.Equal(t, "NODE", FieldKindNode.String())
	assert.Equal(t, "CONNECTION", FieldKindConnection.String())
	assert.Equal(t, "UNKNOWN", FieldKindUnknown.String())
}

func TestNewUnionTypeClauses(t *testing.T) {
	decl := NewUnionType("User", "Bot")
	assert.Equal(t, TypeKindUnion, decl.Kind)
	assert.Equal(t, []string{"User", "Bot"}, decl.Clauses)
	assert.Nil(t, decl.Fields)
}
