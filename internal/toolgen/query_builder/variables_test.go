package query_builder

import (
	"testing"

	"github.com/graphbridge/graphql-mcp/internal/schema"
	"github.com/stretchr/testify/assert"
)

func variableArgs() []schema.InputValue {
	return []schema.InputValue{
		{Name: "id", Type: *nonNull(named(schema.KindScalar, "ID"))},
		{Name: "input", Type: *named(schema.KindInputObject, "UserInput")},
		{Name: "tags", Type: *list(named(schema.KindScalar, "String"))},
	}
}

func variableSchema() *schema.Schema {
	return &schema.Schema{
		Types: map[string]*schema.TypeDef{
			"UserInput": {Kind: schema.KindInputObject, Name: "UserInput"},
		},
	}
}

func TestCoerceVariables_ScalarsPassThrough(t *testing.T) {
	vars := CoerceVariables(variableSchema(), variableArgs(), map[string]any{
		"id": "user-1",
	})
	assert.Equal(t, map[string]any{"id": "user-1"}, vars)
}

func TestCoerceVariables_JSONStringForInputObject(t *testing.T) {
	vars := CoerceVariables(variableSchema(), variableArgs(), map[string]any{
		"input": `{"name": "Ada", "age": 36}`,
	})
	assert.Equal(t, map[string]any{"name": "Ada", "age": float64(36)}, vars["input"])
}

func TestCoerceVariables_JSONStringForList(t *testing.T) {
	vars := CoerceVariables(variableSchema(), variableArgs(), map[string]any{
		"tags": `["a", "b"]`,
	})
	assert.Equal(t, []any{"a", "b"}, vars["tags"])
}

func TestCoerceVariables_UndecodableStringPassesThrough(t *testing.T) {
	vars := CoerceVariables(variableSchema(), variableArgs(), map[string]any{
		"input": `{not json`,
	})
	// Best effort only: the upstream API gets to reject it.
	assert.Equal(t, `{not json`, vars["input"])
}

func TestCoerceVariables_StructuredValueUntouched(t *testing.T) {
	structured := map[string]any{"name": "Ada"}
	vars := CoerceVariables(variableSchema(), variableArgs(), map[string]any{
		"input": structured,
	})
	assert.Equal(t, structured, vars["input"])
}

func TestCoerceVariables_UndeclaredNamesDropped(t *testing.T) {
	vars := CoerceVariables(variableSchema(), variableArgs(), map[string]any{
		"id":      "user-1",
		"unknown": true,
	})
	assert.Equal(t, map[string]any{"id": "user-1"}, vars)
}

func TestCoerceVariables_MissingValuesOmitted(t *testing.T) {
	vars := CoerceVariables(variableSchema(), variableArgs(), map[string]any{})
	assert.Empty(t, vars)
}
