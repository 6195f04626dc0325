package schema

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	gqlschema "github.com/graphbridge/graphql-mcp/internal/schema"
	"github.com/graphbridge/graphql-mcp/internal/tools"
)

// IntrospectSchemaHandler returns a handler function for the introspect-schema tool
func IntrospectSchemaHandler(deps *tools.ToolDependencies, s *gqlschema.Schema) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleIntrospectSchema(ctx, deps, s)
	}
}

func handleIntrospectSchema(_ context.Context, deps *tools.ToolDependencies, s *gqlschema.Schema) (*mcp.CallToolResult, error) {
	if deps.AnalyticsService == nil {
		errMessage := "analytics service is not initialized"
		slog.Error(errMessage)
		return mcp.NewToolResultError(errMessage), nil
	}
	deps.AnalyticsService.EmitEvent(deps.AnalyticsService.NewToolsEvent("introspect-schema"))

	if s == nil {
		errMessage := "schema is not loaded"
		slog.Error(errMessage)
		return mcp.NewToolResultError(errMessage), nil
	}

	slog.Info("rendering schema summary", "types", len(s.Types))
	return mcp.NewToolResultText(formatSchemaAsMarkdown(s)), nil
}

// formatSchemaAsMarkdown renders the decoded schema in a compact markdown
// layout: root operations first, then type definitions grouped by kind.
func formatSchemaAsMarkdown(s *gqlschema.Schema) string {
	var b strings.Builder

	b.WriteString("# GraphQL Schema\n")

	if query := s.QueryType(); query != nil {
		b.WriteString("\n## Queries\n\n")
		writeRootFields(&b, query)
	}
	if mutation := s.MutationType(); mutation != nil {
		b.WriteString("\n## Mutations\n\n")
		writeRootFields(&b, mutation)
	}

	var objects, enums, inputs []*gqlschema.TypeDef
	for _, def := range sortedTypes(s) {
		switch def.Kind {
		case gqlschema.KindObject, gqlschema.KindInterface, gqlschema.KindUnion:
			if def.Name == s.QueryTypeName || def.Name == s.MutationTypeName {
				continue
			}
			objects = append(objects, def)
		case gqlschema.KindEnum:
			enums = append(enums, def)
		case gqlschema.KindInputObject:
			inputs = append(inputs, def)
		}
	}

	if len(objects) > 0 {
		b.WriteString("\n## Types\n")
		for _, def := range objects {
			writeTypeDef(&b, def)
		}
	}
	if len(enums) > 0 {
		b.WriteString("\n## Enums\n")
		for _, def := range enums {
			fmt.Fprintf(&b, "\n### %s\n\n", def.Name)
			if def.Description != "" {
				b.WriteString(def.Description + "\n\n")
			}
			for _, value := range def.EnumValues {
				fmt.Fprintf(&b, "- %s\n", value)
			}
		}
	}
	if len(inputs) > 0 {
		b.WriteString("\n## Input Types\n")
		for _, def := range inputs {
			fmt.Fprintf(&b, "\n### %s\n\n", def.Name)
			if def.Description != "" {
				b.WriteString(def.Description + "\n\n")
			}
			for _, input := range def.InputFields {
				fmt.Fprintf(&b, "- %s: %s\n", input.Name, gqlschema.Render(&input.Type))
			}
		}
	}

	return b.String()
}

func writeRootFields(b *strings.Builder, def *gqlschema.TypeDef) {
	for _, field := range def.Fields {
		fmt.Fprintf(b, "- `%s`", fieldSignature(&field))
		if field.Description != "" {
			fmt.Fprintf(b, " - %s", firstLine(field.Description))
		}
		b.WriteString("\n")
	}
}

func writeTypeDef(b *strings.Builder, def *gqlschema.TypeDef) {
	fmt.Fprintf(b, "\n### %s (%s)\n\n", def.Name, strings.ToLower(string(def.Kind)))
	if def.Description != "" {
		b.WriteString(firstLine(def.Description) + "\n\n")
	}
	if def.Kind == gqlschema.KindUnion {
		return
	}
	for _, field := range def.Fields {
		fmt.Fprintf(b, "- %s: %s\n", field.Name, gqlschema.Render(&field.Type))
	}
}

func fieldSignature(field *gqlschema.Field) string {
	var b strings.Builder
	b.WriteString(field.Name)
	if len(field.Args) > 0 {
		b.WriteString("(")
		for i, arg := range field.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s: %s", arg.Name, gqlschema.Render(&arg.Type))
		}
		b.WriteString(")")
	}
	b.WriteString(": " + gqlschema.Render(&field.Type))
	return b.String()
}

func firstLine(description string) string {
	if idx := strings.IndexByte(description, '\n'); idx >= 0 {
		return strings.TrimSpace(description[:idx])
	}
	return description
}

func sortedTypes(s *gqlschema.Schema) []*gqlschema.TypeDef {
	names := make([]string, 0, len(s.Types))
	for name := range s.Types {
		names = append(names, name)
	}
	sort.Strings(names)

	defs := make([]*gqlschema.TypeDef, 0, len(names))
	for _, name := range names {
		defs = append(defs, s.Types[name])
	}
	return defs
}
