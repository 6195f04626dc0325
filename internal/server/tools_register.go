package server

import (
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/graphbridge/graphql-mcp/internal/tools"
	toolschema "github.com/graphbridge/graphql-mcp/internal/tools/schema"
)

// registerTools registers all enabled MCP tools and adds them to the MCP server.
// When read-only mode is enabled (Config.Tools.ReadOnly or the
// GRAPHQL_MCP_READ_ONLY environment variable), any tool that performs state
// mutation is excluded; only tools annotated as read-only are registered.
// The filtering relies on the ReadOnlyHint annotation: a tool without the
// annotation counts as mutating.
func (s *GraphQLMCPServer) registerTools() error {
	filteredTools, err := s.getEnabledTools()
	if err != nil {
		return err
	}
	s.MCPServer.AddTools(filteredTools...)
	return nil
}

type toolFilter func(tools []toolDefinition) []toolDefinition

type toolCategory int

const (
	schemaCategory  toolCategory = 0 // Static schema inspection tools
	dynamicCategory toolCategory = 1 // Tools generated from the reflected schema
)

type toolDefinition struct {
	category   toolCategory
	definition server.ServerTool
	readonly   bool
}

func (s *GraphQLMCPServer) getEnabledTools() ([]server.ServerTool, error) {
	filters := make([]toolFilter, 0)

	// If read-only mode is enabled, expose only tools annotated as read-only.
	if s.config != nil && s.config.Tools.ReadOnly {
		filters = append(filters, filterWriteTools)
	}

	toolDefs, err := s.getAllToolDefs(s.dependencies())
	if err != nil {
		return nil, err
	}

	for _, filter := range filters {
		toolDefs = filter(toolDefs)
	}
	enabledTools := make([]server.ServerTool, 0, len(toolDefs))
	for _, toolDef := range toolDefs {
		enabledTools = append(enabledTools, toolDef.definition)
	}
	return enabledTools, nil
}

func (s *GraphQLMCPServer) dependencies() *tools.ToolDependencies {
	return &tools.ToolDependencies{
		GraphQLService:   s.gqlService,
		AnalyticsService: s.anService,
	}
}

func filterWriteTools(tools []toolDefinition) []toolDefinition {
	readOnlyTools := make([]toolDefinition, 0, len(tools))
	for _, t := range tools {
		if t.readonly {
			readOnlyTools = append(readOnlyTools, t)
		}
	}
	return readOnlyTools
}

// getAllToolDefs returns the static tools plus one generated tool per
// operation the exposure document enables.
func (s *GraphQLMCPServer) getAllToolDefs(deps *tools.ToolDependencies) ([]toolDefinition, error) {
	toolDefs := []toolDefinition{
		{
			category: schemaCategory,
			definition: server.ServerTool{
				Tool:    toolschema.IntrospectSchemaSpec(),
				Handler: toolschema.IntrospectSchemaHandler(deps, s.schema),
			},
			readonly: true,
		},
	}

	dynamicTools, err := s.loadDynamicTools(deps)
	if err != nil {
		return nil, err
	}
	return append(toolDefs, dynamicTools...), nil
}

// loadDynamicTools materializes the registry's enabled operations as tools.
func (s *GraphQLMCPServer) loadDynamicTools(deps *tools.ToolDependencies) ([]toolDefinition, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("tool registry is not initialized")
	}

	serverTools := s.registry.GetServerTools(deps)
	if len(serverTools) == 0 {
		slog.Info("no operations enabled in the exposure document")
		return []toolDefinition{}, nil
	}
	slog.Info("loaded generated tools", "count", len(serverTools))

	toolDefs := make([]toolDefinition, 0, len(serverTools))
	for _, serverTool := range serverTools {
		readonly := serverTool.Tool.Annotations.ReadOnlyHint != nil && *serverTool.Tool.Annotations.ReadOnlyHint
		toolDefs = append(toolDefs, toolDefinition{
			category:   dynamicCategory,
			definition: serverTool,
			readonly:   readonly,
		})
	}
	return toolDefs, nil
}
