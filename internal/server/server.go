package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/graphbridge/graphql-mcp/docs"
	"github.com/graphbridge/graphql-mcp/internal/analytics"
	"github.com/graphbridge/graphql-mcp/internal/config"
	"github.com/graphbridge/graphql-mcp/internal/exposure"
	"github.com/graphbridge/graphql-mcp/internal/graphql"
	gqlschema "github.com/graphbridge/graphql-mcp/internal/schema"
	"github.com/graphbridge/graphql-mcp/internal/tools/dynamic"
)

const (
	serverName = "graphql-mcp"

	// Version is stamped at release time.
	Version = "0.3.0"

	usageResourceURI = "graphql-mcp://docs/usage"
)

// GraphQLMCPServer wires the upstream GraphQL endpoint, the persisted
// exposure document, and the MCP transport into one process.
type GraphQLMCPServer struct {
	MCPServer *server.MCPServer

	config     *config.Config
	gqlService graphql.Service
	anService  analytics.Service
	schema     *gqlschema.Schema
	registry   *dynamic.Registry
}

// NewGraphQLMCPServer creates a server from configuration. Initialize must
// be called before Serve.
func NewGraphQLMCPServer(cfg *config.Config) *GraphQLMCPServer {
	mcpServer := server.NewMCPServer(
		serverName,
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithRecovery(),
	)

	return &GraphQLMCPServer{
		MCPServer:  mcpServer,
		config:     cfg,
		gqlService: graphql.NewClient(cfg.GraphQL.Endpoint, cfg.GraphQL.Headers, cfg.RequestTimeout()),
		anService:  analytics.NewLogService(),
	}
}

// Initialize reflects the upstream schema, reconciles the exposure document
// against it, and registers the resulting tools. Any failure here leaves the
// server with no tools, so errors are fatal to startup.
func (s *GraphQLMCPServer) Initialize(ctx context.Context) error {
	reflected, err := s.gqlService.Introspect(ctx)
	if err != nil {
		return fmt.Errorf("failed to introspect %s: %w", s.gqlService.Endpoint(), err)
	}
	s.schema = reflected

	doc, err := exposure.Load(s.config.Tools.ExposureFile)
	if err != nil {
		return fmt.Errorf("failed to load exposure document: %w", err)
	}

	queries := gqlschema.OperationKeys(gqlschema.DiscoverOperations(reflected, gqlschema.OperationQuery))
	mutations := gqlschema.OperationKeys(gqlschema.DiscoverOperations(reflected, gqlschema.OperationMutation))

	queryEntries, queriesDirty := exposure.Reconcile(queries, doc.Exposed.Queries, s.resolves(gqlschema.OperationQuery))
	mutationEntries, mutationsDirty := exposure.Reconcile(mutations, doc.Exposed.Mutations, s.resolves(gqlschema.OperationMutation))
	doc.Exposed.Queries = queryEntries
	doc.Exposed.Mutations = mutationEntries

	if queriesDirty || mutationsDirty {
		if err := exposure.Save(s.config.Tools.ExposureFile, doc); err != nil {
			return fmt.Errorf("failed to persist exposure document %s: %w", s.config.Tools.ExposureFile, err)
		}
		slog.Info("exposure document updated", "file", s.config.Tools.ExposureFile)
	}

	s.registry = dynamic.NewRegistry(reflected, s.config.Tools.QueryPrefix, s.config.Tools.MutationPrefix)
	s.registry.LoadOperations(doc)

	if err := s.registerTools(); err != nil {
		return fmt.Errorf("failed to register tools: %w", err)
	}
	s.registerResources()

	queryCount := s.registry.OperationCount(gqlschema.OperationQuery)
	mutationCount := s.registry.OperationCount(gqlschema.OperationMutation)
	s.anService.EmitEvent(s.anService.NewStartupEvent(analytics.StartupEventInfo{
		Endpoint:      s.gqlService.Endpoint(),
		QueryTools:    queryCount,
		MutationTools: mutationCount,
		Transport:     s.config.Server.Transport,
	}))
	slog.Info("server initialized", "query_tools", queryCount, "mutation_tools", mutationCount)

	return nil
}

// resolves makes the reconcile callback for one operation category. A key
// resolves when its dotted path still names a field in the current schema.
func (s *GraphQLMCPServer) resolves(kind gqlschema.OperationKind) func(key string) bool {
	return func(key string) bool {
		_, err := gqlschema.ResolveOperation(s.schema, kind, key)
		return err == nil
	}
}

// Serve blocks on the configured transport until the client disconnects or
// the listener fails.
func (s *GraphQLMCPServer) Serve() error {
	switch s.config.Server.Transport {
	case config.TransportHTTP:
		slog.Info("serving MCP over streamable HTTP", "addr", s.config.Server.HTTPAddr)
		httpServer := server.NewStreamableHTTPServer(s.MCPServer,
			server.WithStateLess(true),
		)
		return httpServer.Start(s.config.Server.HTTPAddr)
	default:
		slog.Info("serving MCP over stdio")
		return server.ServeStdio(s.MCPServer)
	}
}

func (s *GraphQLMCPServer) registerResources() {
	resource := mcp.NewResource(
		usageResourceURI,
		"GraphQL Tool Usage Guidance",
		mcp.WithResourceDescription("How to discover and call the generated GraphQL operation tools"),
		mcp.WithMIMEType("text/markdown"),
	)
	s.MCPServer.AddResource(resource, func(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "text/markdown",
				Text:     docs.UsageGuidancePrompt,
			},
		}, nil
	})
}
