// Package dynamic synthesizes one MCP tool per exposed GraphQL operation.
// Tool shape (name, input schema, description, selection) is derived once at
// startup from the schema snapshot; only query composition runs per call.
package dynamic

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/graphbridge/graphql-mcp/internal/exposure"
	"github.com/graphbridge/graphql-mcp/internal/schema"
	"github.com/graphbridge/graphql-mcp/internal/toolgen"
	"github.com/graphbridge/graphql-mcp/internal/toolgen/query_builder"
	"github.com/graphbridge/graphql-mcp/internal/tools"
)

// Registry resolves enabled exposure entries against the schema snapshot and
// materializes the tool set.
type Registry struct {
	schema         *schema.Schema
	queryPrefix    string
	mutationPrefix string
	operations     []namedOperation
	takenNames     map[string]bool
}

// namedOperation is an operation together with the tool name it claimed at
// load time. Names are claimed exactly once, so repeated materialization of
// the tool set always yields the same names.
type namedOperation struct {
	op   schema.Operation
	name string
}

// NewRegistry creates a registry over one schema snapshot. The prefixes are
// optional per-category strings prepended to every tool name.
func NewRegistry(s *schema.Schema, queryPrefix, mutationPrefix string) *Registry {
	return &Registry{
		schema:         s,
		queryPrefix:    queryPrefix,
		mutationPrefix: mutationPrefix,
		takenNames:     make(map[string]bool),
	}
}

// LoadOperations resolves the enabled entries of the exposure document into
// operations. Queries load before mutations so a query keeps the bare name on
// a collision. A single entry that fails to resolve is logged and skipped; it
// never aborts the rest.
func (r *Registry) LoadOperations(doc *exposure.Document) {
	r.loadCategory(schema.OperationQuery, doc.Exposed.Queries)
	r.loadCategory(schema.OperationMutation, doc.Exposed.Mutations)
	slog.Info("loaded exposed operations", "count", len(r.operations))
}

func (r *Registry) loadCategory(kind schema.OperationKind, entries exposure.Entries) {
	for _, key := range exposure.EnabledKeys(entries) {
		op, err := schema.ResolveOperation(r.schema, kind, key)
		if err != nil {
			slog.Error("skipping exposure entry", "kind", kind, "operation", key, "error", err)
			continue
		}
		name, err := r.claimToolName(*op)
		if err != nil {
			slog.Error("skipping exposure entry", "kind", kind, "operation", key, "error", err)
			continue
		}
		r.operations = append(r.operations, namedOperation{op: *op, name: name})
	}
}

// OperationCount returns the number of resolved operations per kind.
func (r *Registry) OperationCount(kind schema.OperationKind) int {
	count := 0
	for _, entry := range r.operations {
		if entry.op.Kind == kind {
			count++
		}
	}
	return count
}

// GetServerTools converts the resolved operations into MCP server tools.
// It mutates no registry state, so calling it again yields the same tool
// set. Operations whose input schema cannot be built are logged and skipped.
func (r *Registry) GetServerTools(deps *tools.ToolDependencies) []server.ServerTool {
	serverTools := make([]server.ServerTool, 0, len(r.operations))
	for _, entry := range r.operations {
		tool, err := r.buildServerTool(entry.op, entry.name, deps)
		if err != nil {
			slog.Error("skipping operation", "operation", entry.op.PathKey(), "error", err)
			continue
		}
		serverTools = append(serverTools, tool)
	}
	return serverTools
}

func (r *Registry) buildServerTool(op schema.Operation, name string, deps *tools.ToolDependencies) (server.ServerTool, error) {
	inputSchema, err := toolgen.BuildInputSchema(r.schema, op.Field.Args)
	if err != nil {
		return server.ServerTool{}, fmt.Errorf("failed to build input schema: %w", err)
	}

	selection := query_builder.SynthesizeSelection(r.schema, &op.Field.Type, 1)
	description := buildToolDescription(r.schema, op)

	mcpTool := mcp.NewToolWithRawSchema(name, description, inputSchema)
	readOnly := op.Kind == schema.OperationQuery
	mcpTool.Annotations = mcp.ToolAnnotation{
		Title:           name,
		ReadOnlyHint:    mcp.ToBoolPtr(readOnly),
		DestructiveHint: mcp.ToBoolPtr(!readOnly),
		IdempotentHint:  mcp.ToBoolPtr(readOnly),
		OpenWorldHint:   mcp.ToBoolPtr(true),
	}

	slog.Debug("built dynamic tool",
		"name", name,
		"operation", op.PathKey(),
		"kind", op.Kind,
		"selection", selection)

	return server.ServerTool{
		Tool:    mcpTool,
		Handler: NewOperationHandler(r.schema, op, selection, name, deps),
	}, nil
}

// claimToolName derives the tool name from the operation path and category
// prefix, replacing path dots with underscores. Names are claimed once, at
// load time. When a mutation collides with an already-claimed name it gets a
// "_mutation" suffix; the first-registered category keeps the bare name.
func (r *Registry) claimToolName(op schema.Operation) (string, error) {
	prefix := r.queryPrefix
	if op.Kind == schema.OperationMutation {
		prefix = r.mutationPrefix
	}
	name := prefix + strings.ReplaceAll(op.PathKey(), ".", "_")

	if r.takenNames[name] {
		if op.Kind != schema.OperationMutation {
			return "", fmt.Errorf("tool name %q already registered", name)
		}
		name += "_mutation"
		if r.takenNames[name] {
			return "", fmt.Errorf("tool name %q already registered", name)
		}
	}
	r.takenNames[name] = true
	return name, nil
}
