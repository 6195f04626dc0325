// Package toolgen derives the static shape of a tool from an operation's
// argument list: the JSON input schema handed to the MCP client, long-form
// argument documentation, and a representative example value set.
package toolgen

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/graphbridge/graphql-mcp/internal/schema"
)

// BuildInputSchema derives the JSON schema document validating a tool's
// arguments. Scalar names map onto JSON types, enums become closed string
// sets, list-like arguments wrap in an array rule, and anything else passes
// through untyped. An argument is required exactly when its outer wrapper is
// NON_NULL.
func BuildInputSchema(s *schema.Schema, args []schema.InputValue) (json.RawMessage, error) {
	properties := make(map[string]any, len(args))
	required := make([]string, 0, len(args))

	for i := range args {
		arg := &args[i]
		rule := buildRule(s, arg)
		if desc := argumentDescription(s, arg); desc != "" {
			rule["description"] = desc
		}
		properties[arg.Name] = rule
		if schema.IsRequired(&arg.Type) {
			required = append(required, arg.Name)
		}
	}

	doc := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		doc["required"] = required
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal input schema: %w", err)
	}
	return raw, nil
}

func buildRule(s *schema.Schema, arg *schema.InputValue) map[string]any {
	def := s.Definition(&arg.Type)

	var rule map[string]any
	switch def.Kind {
	case schema.KindScalar:
		switch def.Name {
		case "Int":
			rule = map[string]any{"type": "integer"}
		case "Float":
			rule = map[string]any{"type": "number"}
		case "String", "ID":
			rule = map[string]any{"type": "string"}
		case "Boolean":
			rule = map[string]any{"type": "boolean"}
		default:
			// Custom scalars carry no JSON shape; pass through untyped.
			rule = map[string]any{}
		}
	case schema.KindEnum:
		if len(def.EnumValues) == 0 {
			// A spec-conformant schema never declares an empty enum.
			// Degrade to an open string rather than failing the tool.
			slog.Warn("enum type declares no values, degrading to open string",
				"enum", def.Name, "argument", arg.Name)
			rule = map[string]any{"type": "string"}
		} else {
			rule = map[string]any{"type": "string", "enum": def.EnumValues}
		}
	default:
		// Input objects, interfaces, unions, unknowns: untyped passthrough.
		rule = map[string]any{}
	}

	if schema.IsListLike(&arg.Type) {
		rule = map[string]any{"type": "array", "items": rule}
	}
	return rule
}

// argumentDescription returns the argument's own description or a synthesized
// "<rendered type> - <name>" fallback. Description assembly traverses the
// type reference chain of an untrusted schema; a failure here must not abort
// rule construction, so any panic is caught and logged and the rule simply
// ships without a description.
func argumentDescription(s *schema.Schema, arg *schema.InputValue) (desc string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("failed to build argument description",
				"argument", arg.Name, "panic", r)
			desc = ""
		}
	}()
	if arg.Description != "" {
		return arg.Description
	}
	return fmt.Sprintf("%s - %s", schema.Render(&arg.Type), arg.Name)
}
