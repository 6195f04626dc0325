package dynamic

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/graphbridge/graphql-mcp/internal/schema"
	"github.com/graphbridge/graphql-mcp/internal/toolgen/query_builder"
	"github.com/graphbridge/graphql-mcp/internal/tools"
)

// NewOperationHandler creates the handler closure for one operation. The
// closure owns no mutable state: every call composes its own query text and
// issues its own upstream request, so concurrent invocations never interact.
func NewOperationHandler(s *schema.Schema, op schema.Operation, selection, toolName string, deps *tools.ToolDependencies) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleOperation(ctx, request, s, op, selection, toolName, deps)
	}
}

func handleOperation(ctx context.Context, request mcp.CallToolRequest, s *schema.Schema, op schema.Operation, selection, toolName string, deps *tools.ToolDependencies) (*mcp.CallToolResult, error) {
	if deps.GraphQLService == nil {
		errMessage := "graphql service is not initialized"
		slog.Error(errMessage)
		return mcp.NewToolResultError(errMessage), nil
	}
	if deps.AnalyticsService != nil {
		deps.AnalyticsService.EmitEvent(deps.AnalyticsService.NewToolsEvent(toolName))
	}

	variables := query_builder.CoerceVariables(s, op.Field.Args, request.GetArguments())
	query := query_builder.ComposeQuery(op.Kind, op.Path, op.Field.Args, selection)

	slog.Info("executing operation tool", "tool", toolName, "operation", op.PathKey(), "kind", op.Kind)

	raw, err := deps.GraphQLService.Execute(ctx, query, variables)
	if err != nil {
		// Per-call failures become a failed tool result carrying the
		// upstream message, never a process-level error.
		slog.Error("operation tool failed", "tool", toolName, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	pretty, err := prettyJSON(raw)
	if err != nil {
		slog.Error("failed to format upstream response", "tool", toolName, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(pretty), nil
}

func prettyJSON(raw json.RawMessage) (string, error) {
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", err
	}
	out, err := json.MarshalIndent(decoded, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}
