package query_builder

import (
	"strings"

	"github.com/graphbridge/graphql-mcp/internal/schema"
)

// maxSelectionDepth is the hard recursion bound for selection synthesis.
// Self-referential object types are common in real schemas; rather than
// tracking a visited set, recursion stops here and falls back to the
// __typename meta-field so the query stays syntactically valid.
const maxSelectionDepth = 3

const typenameField = "__typename"

// SynthesizeSelection derives a minimal field selection for a return type,
// sufficient for the upstream query to be valid. It returns the empty string
// when the unwrapped type is a leaf (scalar or enum) and needs no selection.
// The result is a pure function of (schema, type, depth): deterministic for a
// given schema snapshot.
//
// Depth starts at 1 for the operation's own return type and increases by one
// per nested object level.
func SynthesizeSelection(s *schema.Schema, ref *schema.TypeRef, depth int) string {
	def := s.Definition(ref)

	switch def.Kind {
	case schema.KindObject, schema.KindInterface:
		// fall through to field enumeration
	case schema.KindUnion:
		// Unions always need a selection but expose no plain fields.
		return "{ " + typenameField + " }"
	default:
		// Scalars, enums, and unknown leaves need no sub-selection.
		return ""
	}

	if depth > maxSelectionDepth {
		return "{ " + typenameField + " }"
	}

	parts := make([]string, 0, len(def.Fields))
	for _, field := range def.Fields {
		// A field needing arguments cannot be auto-selected: there is no
		// value source at synthesis time.
		if hasRequiredArgs(field) {
			continue
		}
		fieldDef := s.Definition(&field.Type)
		if fieldDef.Kind == schema.KindObject || fieldDef.Kind == schema.KindInterface || fieldDef.Kind == schema.KindUnion {
			sub := SynthesizeSelection(s, &field.Type, depth+1)
			parts = append(parts, field.Name+" "+sub)
			continue
		}
		parts = append(parts, field.Name)
	}

	if len(parts) == 0 {
		return "{ " + typenameField + " }"
	}
	return "{ " + strings.Join(parts, " ") + " }"
}

func hasRequiredArgs(field schema.Field) bool {
	for i := range field.Args {
		if schema.IsRequired(&field.Args[i].Type) {
			return true
		}
	}
	return false
}
