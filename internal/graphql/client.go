// Package graphql is the upstream boundary: one introspection request at
// startup and one query execution per tool call. The core imposes no timeout
// of its own beyond the configured HTTP client timeout, and performs no
// retries; a failed upstream call fails the tool invocation outright.
package graphql

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	graphql "github.com/hasura/go-graphql-client"

	"github.com/graphbridge/graphql-mcp/internal/schema"
)

//go:generate mockgen -destination=mocks/mock_graphql.go -package=graphql_mocks github.com/graphbridge/graphql-mcp/internal/graphql Service

// Service is the upstream GraphQL API as the rest of the bridge sees it.
type Service interface {
	// Introspect issues the standard full-schema introspection request and
	// decodes the response into a schema snapshot.
	Introspect(ctx context.Context) (*schema.Schema, error)
	// Execute runs composed query text with variable bindings and returns
	// the raw data payload.
	Execute(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error)
	// Endpoint returns the upstream URL, for logging and diagnostics.
	Endpoint() string
}

// Client implements Service over HTTP.
type Client struct {
	endpoint string
	gql      *graphql.Client
}

// NewClient builds a client for the given endpoint. headers are attached to
// every request (authentication is the caller's concern; the bridge only
// forwards what it is configured with).
func NewClient(endpoint string, headers map[string]string, timeout time.Duration) *Client {
	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &headerTransport{
			headers: headers,
			base:    http.DefaultTransport,
		},
	}
	return &Client{
		endpoint: endpoint,
		gql:      graphql.NewClient(endpoint, httpClient),
	}
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

func (c *Client) Introspect(ctx context.Context) (*schema.Schema, error) {
	slog.Info("introspecting upstream schema", "endpoint", c.endpoint)
	raw, err := c.gql.ExecRaw(ctx, schema.IntrospectionQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("introspection request failed: %w", err)
	}
	return schema.DecodeIntrospection(raw)
}

func (c *Client) Execute(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	requestID := uuid.NewString()
	slog.Debug("executing upstream query", "request_id", requestID, "query", query)

	raw, err := c.gql.ExecRaw(ctx, query, variables)
	if err != nil {
		slog.Error("upstream query failed", "request_id", requestID, "error", err)
		return nil, fmt.Errorf("upstream query failed: %w", err)
	}
	return raw, nil
}

// headerTransport injects the configured static headers into every request.
type headerTransport struct {
	headers map[string]string
	base    http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	for name, value := range t.headers {
		if req.Header.Get(name) == "" {
			req.Header.Set(name, value)
		}
	}
	return t.base.RoundTrip(req)
}
