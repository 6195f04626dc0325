package tools

import (
	"github.com/graphbridge/graphql-mcp/internal/analytics"
	"github.com/graphbridge/graphql-mcp/internal/graphql"
)

// ToolDependencies contains all dependencies needed by tools
type ToolDependencies struct {
	GraphQLService   graphql.Service
	AnalyticsService analytics.Service
}
