package toolgen

import (
	"fmt"
	"strings"

	"github.com/graphbridge/graphql-mcp/internal/schema"
)

// maxDocDepth caps the recursive structural description of nested input
// objects, mirroring the selection synthesis bound.
const maxDocDepth = 3

// ArgumentDocs produces long-form per-argument documentation for a tool
// description. Input object arguments get a recursive structural breakdown of
// their fields, enums list their declared values.
func ArgumentDocs(s *schema.Schema, args []schema.InputValue) string {
	if len(args) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("Arguments:\n")
	for i := range args {
		writeArgumentDoc(&sb, s, &args[i], 1)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func writeArgumentDoc(sb *strings.Builder, s *schema.Schema, arg *schema.InputValue, depth int) {
	indent := strings.Repeat("  ", depth-1)
	sb.WriteString(fmt.Sprintf("%s- `%s` (%s)", indent, arg.Name, schema.Render(&arg.Type)))
	if schema.IsRequired(&arg.Type) {
		sb.WriteString(" [required]")
	}
	if arg.DefaultValue != nil {
		sb.WriteString(fmt.Sprintf(" [default: %s]", *arg.DefaultValue))
	}
	if arg.Description != "" {
		sb.WriteString(": " + arg.Description)
	}
	sb.WriteString("\n")

	def := s.Definition(&arg.Type)
	switch def.Kind {
	case schema.KindEnum:
		if len(def.EnumValues) > 0 {
			sb.WriteString(fmt.Sprintf("%s  Values: %s\n", indent, strings.Join(def.EnumValues, ", ")))
		}
	case schema.KindInputObject:
		if depth >= maxDocDepth {
			sb.WriteString(fmt.Sprintf("%s  (fields of %s omitted)\n", indent, def.Name))
			return
		}
		for i := range def.InputFields {
			writeArgumentDoc(sb, s, &def.InputFields[i], depth+1)
		}
	}
}

// ExampleArguments synthesizes a representative example value per argument,
// used purely for documentation and never for execution. It returns nil when
// the operation takes no arguments.
func ExampleArguments(s *schema.Schema, args []schema.InputValue) map[string]any {
	if len(args) == 0 {
		return nil
	}
	example := make(map[string]any, len(args))
	for i := range args {
		example[args[i].Name] = exampleValue(s, &args[i].Type, 1)
	}
	return example
}

func exampleValue(s *schema.Schema, ref *schema.TypeRef, depth int) any {
	if schema.IsListLike(ref) {
		inner := schema.Unwrap(ref)
		return []any{exampleValue(s, inner, depth)}
	}

	def := s.Definition(ref)
	switch def.Kind {
	case schema.KindScalar:
		switch def.Name {
		case "Int":
			return 0
		case "Float":
			return 0.0
		case "Boolean":
			return false
		case "ID":
			return "id"
		default:
			return "example"
		}
	case schema.KindEnum:
		if len(def.EnumValues) > 0 {
			return def.EnumValues[0]
		}
		return "example"
	case schema.KindInputObject:
		if depth > maxDocDepth {
			return map[string]any{}
		}
		obj := make(map[string]any, len(def.InputFields))
		for i := range def.InputFields {
			obj[def.InputFields[i].Name] = exampleValue(s, &def.InputFields[i].Type, depth+1)
		}
		return obj
	default:
		return "example"
	}
}
