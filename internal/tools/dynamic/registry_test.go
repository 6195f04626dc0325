package dynamic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphbridge/graphql-mcp/internal/exposure"
	"github.com/graphbridge/graphql-mcp/internal/schema"
	"github.com/graphbridge/graphql-mcp/internal/tools"
)

func named(kind schema.Kind, name string) *schema.TypeRef {
	return &schema.TypeRef{Kind: kind, Name: name}
}

func nonNull(inner *schema.TypeRef) *schema.TypeRef {
	return &schema.TypeRef{Kind: schema.KindNonNull, OfType: inner}
}

// dynamicSchema declares getUser under both roots so the query/mutation name
// collision path is exercised, plus a nested container chain.
func dynamicSchema() *schema.Schema {
	idArg := schema.InputValue{Name: "id", Type: *nonNull(named(schema.KindScalar, "ID"))}
	return &schema.Schema{
		QueryTypeName:    "Query",
		MutationTypeName: "Mutation",
		Types: map[string]*schema.TypeDef{
			"Query": {
				Kind: schema.KindObject,
				Name: "Query",
				Fields: []schema.Field{
					{Name: "getUser", Args: []schema.InputValue{idArg}, Type: *named(schema.KindObject, "User")},
					{Name: "api", Type: *named(schema.KindObject, "Api")},
				},
			},
			"Mutation": {
				Kind: schema.KindObject,
				Name: "Mutation",
				Fields: []schema.Field{
					{Name: "getUser", Args: []schema.InputValue{idArg}, Type: *named(schema.KindObject, "User")},
					{Name: "deleteUser", Args: []schema.InputValue{idArg}, Type: *named(schema.KindScalar, "Boolean")},
				},
			},
			"Api": {
				Kind: schema.KindObject,
				Name: "Api",
				Fields: []schema.Field{
					{Name: "widgets", Type: *named(schema.KindObject, "WidgetOps")},
				},
			},
			"WidgetOps": {
				Kind: schema.KindObject,
				Name: "WidgetOps",
				Fields: []schema.Field{
					{Name: "get", Args: []schema.InputValue{idArg}, Type: *named(schema.KindObject, "Widget")},
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
			"Widget": {
				Kind: schema.KindObject,
				Name: "Widget",
				Fields: []schema.Field{
					{Name: "id", Type: *nonNull(named(schema.KindScalar, "ID"))},
				},
			},
		},
	}
}

func toolNames(t *testing.T, r *Registry) []string {
	t.Helper()
	serverTools := r.GetServerTools(&tools.ToolDependencies{})
	names := make([]string, 0, len(serverTools))
	for _, st := range serverTools {
		names = append(names, st.Tool.Name)
	}
	return names
}

func TestRegistry_MaterializesEnabledOperations(t *testing.T) {
	r := NewRegistry(dynamicSchema(), "", "")
	r.LoadOperations(&exposure.Document{Exposed: exposure.Categories{
		Queries:   exposure.Entries{"getUser": true, "api.widgets.get": true},
		Mutations: exposure.Entries{"deleteUser": true},
	}})

	names := toolNames(t, r)
	assert.ElementsMatch(t, []string{"getUser", "api_widgets_get", "deleteUser"}, names)
}

func TestRegistry_DisabledAndForeignValuesSkipped(t *testing.T) {
	r := NewRegistry(dynamicSchema(), "", "")
	r.LoadOperations(&exposure.Document{Exposed: exposure.Categories{
		Queries: exposure.Entries{
			"getUser": false,
			"api":     "yes",
		},
	}})

	assert.Empty(t, toolNames(t, r))
}

func TestRegistry_CategoryPrefixes(t *testing.T) {
	r := NewRegistry(dynamicSchema(), "query_", "mutation_")
	r.LoadOperations(&exposure.Document{Exposed: exposure.Categories{
		Queries:   exposure.Entries{"getUser": true},
		Mutations: exposure.Entries{"deleteUser": true},
	}})

	assert.ElementsMatch(t, []string{"query_getUser", "mutation_deleteUser"}, toolNames(t, r))
}

func TestRegistry_MutationCollisionGetsSuffix(t *testing.T) {
	r := NewRegistry(dynamicSchema(), "", "")
	r.LoadOperations(&exposure.Document{Exposed: exposure.Categories{
		Queries:   exposure.Entries{"getUser": true},
		Mutations: exposure.Entries{"getUser": true},
	}})

	names := toolNames(t, r)
	assert.ElementsMatch(t, []string{"getUser", "getUser_mutation"}, names)
}

func TestRegistry_RepeatedMaterializationYieldsSameNames(t *testing.T) {
	// Names are claimed at load time, so asking for the tool set again must
	// reproduce it exactly: no spurious _mutation renames, no drops.
	r := NewRegistry(dynamicSchema(), "", "")
	r.LoadOperations(&exposure.Document{Exposed: exposure.Categories{
		Queries:   exposure.Entries{"getUser": true, "api.widgets.get": true},
		Mutations: exposure.Entries{"getUser": true, "deleteUser": true},
	}})

	first := toolNames(t, r)
	require.ElementsMatch(t, []string{"getUser", "api_widgets_get", "getUser_mutation", "deleteUser"}, first)

	for range 3 {
		assert.Equal(t, first, toolNames(t, r))
	}
}

func TestRegistry_UnresolvableEntrySkippedWithoutAbort(t *testing.T) {
	r := NewRegistry(dynamicSchema(), "", "")
	r.LoadOperations(&exposure.Document{Exposed: exposure.Categories{
		Queries: exposure.Entries{
			"getUser":      true,
			"ghost":        true,
			"api.ghost.op": true,
		},
	}})

	// The two stale entries are skipped, the valid one survives.
	assert.Equal(t, []string{"getUser"}, toolNames(t, r))
}

func TestRegistry_ToolShape(t *testing.T) {
	r := NewRegistry(dynamicSchema(), "", "")
	r.LoadOperations(&exposure.Document{Exposed: exposure.Categories{
		Queries: exposure.Entries{"getUser": true},
	}})

	serverTools := r.GetServerTools(&tools.ToolDependencies{})
	require.Len(t, serverTools, 1)
	tool := serverTools[0].Tool

	assert.Equal(t, "getUser", tool.Name)
	assert.Contains(t, tool.Description, "Execute query: getUser(id: ID!): User")
	assert.Contains(t, tool.Description, "Returns: User")
	assert.Contains(t, tool.Description, "Example arguments:")
	assert.Contains(t, string(tool.RawInputSchema), `"id"`)

	require.NotNil(t, tool.Annotations.ReadOnlyHint)
	assert.True(t, *tool.Annotations.ReadOnlyHint)
	require.NotNil(t, serverTools[0].Handler)
}

func TestRegistry_MutationAnnotations(t *testing.T) {
	r := NewRegistry(dynamicSchema(), "", "")
	r.LoadOperations(&exposure.Document{Exposed: exposure.Categories{
		Mutations: exposure.Entries{"deleteUser": true},
	}})

	serverTools := r.GetServerTools(&tools.ToolDependencies{})
	require.Len(t, serverTools, 1)
	ann := serverTools[0].Tool.Annotations
	require.NotNil(t, ann.ReadOnlyHint)
	assert.False(t, *ann.ReadOnlyHint)
	require.NotNil(t, ann.DestructiveHint)
	assert.True(t, *ann.DestructiveHint)
}

func TestRegistry_OperationCount(t *testing.T) {
	r := NewRegistry(dynamicSchema(), "", "")
	r.LoadOperations(&exposure.Document{Exposed: exposure.Categories{
		Queries:   exposure.Entries{"getUser": true, "api.widgets.get": true},
		Mutations: exposure.Entries{"deleteUser": true},
	}})

	assert.Equal(t, 2, r.OperationCount(schema.OperationQuery))
	assert.Equal(t, 1, r.OperationCount(schema.OperationMutation))
}
