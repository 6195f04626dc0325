package query_builder

import (
	"strings"
	"testing"

	"github.com/graphbridge/graphql-mcp/internal/schema"
	"github.com/stretchr/testify/assert"
)

func named(kind schema.Kind, name string) *schema.TypeRef {
	return &schema.TypeRef{Kind: kind, Name: name}
}

func nonNull(inner *schema.TypeRef) *schema.TypeRef {
	return &schema.TypeRef{Kind: schema.KindNonNull, OfType: inner}
}

func list(inner *schema.TypeRef) *schema.TypeRef {
	return &schema.TypeRef{Kind: schema.KindList, OfType: inner}
}

// builderSchema covers the interesting selection cases: plain leaves, a
// self-referential type, a field with a required argument, and a type with
// nothing auto-selectable.
func builderSchema() *schema.Schema {
	return &schema.Schema{
		QueryTypeName: "Query",
		Types: map[string]*schema.TypeDef{
			"Query": {
				Kind: schema.KindObject,
				Name: "Query",
				Fields: []schema.Field{
					{Name: "getUser", Args: []schema.InputValue{{Name: "id", Type: *nonNull(named(schema.KindScalar, "ID"))}}, Type: *named(schema.KindObject, "User")},
				},
			},
			"User": {
				Kind: schema.KindObject,
				Name: "User",
				Fields: []schema.Field{
					{Name: "id", Type: *nonNull(named(schema.KindScalar, "ID"))},
					{Name: "name", Type: *named(schema.KindScalar, "String")},
				},
			},
			"Person": {
				Kind: schema.KindObject,
				Name: "Person",
				Fields: []schema.Field{
					{Name: "name", Type: *named(schema.KindScalar, "String")},
					{Name: "friend", Type: *named(schema.KindObject, "Person")},
				},
			},
			"Locked": {
				Kind: schema.KindObject,
				Name: "Locked",
				Fields: []schema.Field{
					{Name: "secret", Args: []schema.InputValue{{Name: "key", Type: *nonNull(named(schema.KindScalar, "String"))}}, Type: *named(schema.KindScalar, "String")},
				},
			},
			"Role": {
				Kind:       schema.KindEnum,
				Name:       "Role",
				EnumValues: []string{"ADMIN", "VIEWER"},
			},
			"SearchResult": {
				Kind: schema.KindUnion,
				Name: "SearchResult",
			},
		},
	}
}

func TestSynthesizeSelection_LeafTypesNeedNoSelection(t *testing.T) {
	s := builderSchema()

	assert.Equal(t, "", SynthesizeSelection(s, named(schema.KindScalar, "String"), 1))
	assert.Equal(t, "", SynthesizeSelection(s, named(schema.KindEnum, "Role"), 1))
	assert.Equal(t, "", SynthesizeSelection(s, nonNull(list(named(schema.KindScalar, "Int"))), 1))
}

func TestSynthesizeSelection_ObjectFields(t *testing.T) {
	s := builderSchema()

	got := SynthesizeSelection(s, named(schema.KindObject, "User"), 1)
	assert.Equal(t, "{ id name }", got)

	// Wrappers around the object do not change the selection.
	wrapped := SynthesizeSelection(s, nonNull(list(named(schema.KindObject, "User"))), 1)
	assert.Equal(t, got, wrapped)
}

func TestSynthesizeSelection_SelfReferentialTypeTerminates(t *testing.T) {
	s := builderSchema()

	got := SynthesizeSelection(s, named(schema.KindObject, "Person"), 1)

	// Depth 1..3 expand fields, depth 4 collapses to the meta-field.
	assert.Equal(t, "{ name friend { name friend { name friend { __typename } } } }", got)
	assert.Equal(t, 3, strings.Count(got, "friend"))
	assert.NotEmpty(t, got)
}

func TestSynthesizeSelection_FieldsWithRequiredArgsAreSkipped(t *testing.T) {
	s := builderSchema()

	// "secret" needs an argument, so nothing qualifies and the selection
	// falls back to the meta-field to stay syntactically valid.
	got := SynthesizeSelection(s, named(schema.KindObject, "Locked"), 1)
	assert.Equal(t, "{ __typename }", got)
}

func TestSynthesizeSelection_UnionFallsBackToTypename(t *testing.T) {
	s := builderSchema()

	got := SynthesizeSelection(s, named(schema.KindUnion, "SearchResult"), 1)
	assert.Equal(t, "{ __typename }", got)
}

func TestSynthesizeSelection_Deterministic(t *testing.T) {
	s := builderSchema()
	ref := named(schema.KindObject, "Person")

	first := SynthesizeSelection(s, ref, 1)
	for range 5 {
		assert.Equal(t, first, SynthesizeSelection(s, ref, 1))
	}
}
