package schema

import (
	"github.com/mark3labs/mcp-go/mcp"
)

func IntrospectSchemaSpec() mcp.Tool {
	return mcp.NewTool("introspect-schema",
		mcp.WithDescription(`
		Retrieve the GraphQL schema of the upstream endpoint.

		Returns a summary of the schema including:
		- Query and mutation root operations with their signatures
		- Object, interface and union types with their fields
		- Enum types with their values
		- Input object types with their fields

		This tool provides complete schema information in one call. Use it to
		understand what the generated operation tools can return before calling them.`),
		mcp.WithTitleAnnotation("Introspect GraphQL Schema"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}
