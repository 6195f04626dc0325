package dynamic

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/graphbridge/graphql-mcp/internal/schema"
	"github.com/graphbridge/graphql-mcp/internal/toolgen"
)

// buildToolDescription assembles the tool description: the operation's own
// description or a synthesized signature line, the rendered return type, the
// long-form argument docs, and a JSON example block.
func buildToolDescription(s *schema.Schema, op schema.Operation) string {
	var sb strings.Builder

	if op.Field.Description != "" {
		sb.WriteString(op.Field.Description)
	} else {
		sb.WriteString(fmt.Sprintf("Execute %s: %s", op.Kind, renderSignature(op.Field)))
	}

	sb.WriteString(fmt.Sprintf("\n\nReturns: %s", schema.Render(&op.Field.Type)))

	if docs := toolgen.ArgumentDocs(s, op.Field.Args); docs != "" {
		sb.WriteString("\n\n")
		sb.WriteString(docs)
	}

	if example := toolgen.ExampleArguments(s, op.Field.Args); example != nil {
		if encoded, err := json.MarshalIndent(example, "", "  "); err == nil {
			sb.WriteString("\n\nExample arguments:\n```json\n")
			sb.Write(encoded)
			sb.WriteString("\n```")
		}
	}

	return sb.String()
}

// renderSignature reproduces the GraphQL field signature, e.g.
// "getUser(id: ID!): User".
func renderSignature(field schema.Field) string {
	var sb strings.Builder
	sb.WriteString(field.Name)
	if len(field.Args) > 0 {
		parts := make([]string, 0, len(field.Args))
		for i := range field.Args {
			parts = append(parts, field.Args[i].Name+": "+schema.Render(&field.Args[i].Type))
		}
		sb.WriteString("(" + strings.Join(parts, ", ") + ")")
	}
	sb.WriteString(": " + schema.Render(&field.Type))
	return sb.String()
}
