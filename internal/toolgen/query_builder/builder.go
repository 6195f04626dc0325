package query_builder

import (
	"strings"

	"github.com/graphbridge/graphql-mcp/internal/schema"
)

// ComposeQuery assembles the literal query or mutation text for an operation.
// Variable declarations are "$name: <rendered type>" joined by commas and
// variable usages are "name: $name". With a multi-segment path the innermost
// segment carries the usages and selection set and every parent segment wraps
// it as a bare container field.
//
// The declared operation name is always the last path segment, regardless of
// nesting depth. That is a compatibility requirement, not a GraphQL one:
// existing exposure configurations and upstream logs key on it.
func ComposeQuery(kind schema.OperationKind, path []string, args []schema.InputValue, selection string) string {
	if len(path) == 0 {
		return ""
	}
	name := path[len(path)-1]

	decls := make([]string, 0, len(args))
	usages := make([]string, 0, len(args))
	for i := range args {
		decls = append(decls, "$"+args[i].Name+": "+schema.Render(&args[i].Type))
		usages = append(usages, args[i].Name+": $"+args[i].Name)
	}

	body := name
	if len(usages) > 0 {
		body += "(" + strings.Join(usages, ", ") + ")"
	}
	if selection != "" {
		body += " " + selection
	}
	for i := len(path) - 2; i >= 0; i-- {
		body = path[i] + " { " + body + " }"
	}

	var sb strings.Builder
	sb.WriteString(kind.String())
	sb.WriteString(" ")
	sb.WriteString(name)
	if len(decls) > 0 {
		sb.WriteString("(" + strings.Join(decls, ", ") + ")")
	}
	sb.WriteString(" { ")
	sb.WriteString(body)
	sb.WriteString(" }")
	return sb.String()
}
