package server

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gopkg.in/yaml.v3"

	"github.com/graphbridge/graphql-mcp/internal/analytics"
	analytics_mocks "github.com/graphbridge/graphql-mcp/internal/analytics/mocks"
	"github.com/graphbridge/graphql-mcp/internal/config"
	"github.com/graphbridge/graphql-mcp/internal/exposure"
	graphql_mocks "github.com/graphbridge/graphql-mcp/internal/graphql/mocks"
)

func initializeConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.NewDefaultConfig()
	cfg.GraphQL.Endpoint = "https://api.example.com/graphql"
	cfg.Tools.ExposureFile = filepath.Join(t.TempDir(), "exposure.yaml")
	return cfg
}

func TestInitialize_PopulatesExposureAndRegistersTools(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := initializeConfig(t)

	gql := graphql_mocks.NewMockService(ctrl)
	gql.EXPECT().Endpoint().Return(cfg.GraphQL.Endpoint).AnyTimes()
	gql.EXPECT().Introspect(gomock.Any()).Return(registrationSchema(), nil)

	an := analytics_mocks.NewMockService(ctrl)
	startup := analytics.TrackEvent{Name: "startup"}
	an.EXPECT().NewStartupEvent(analytics.StartupEventInfo{
		Endpoint:      cfg.GraphQL.Endpoint,
		QueryTools:    1,
		MutationTools: 1,
		Transport:     config.TransportStdio,
	}).Return(startup)
	an.EXPECT().EmitEvent(startup)

	srv := NewGraphQLMCPServer(cfg)
	srv.gqlService = gql
	srv.anService = an

	require.NoError(t, srv.Initialize(context.Background()))

	// Newly discovered operations are written back enabled.
	data, err := os.ReadFile(cfg.Tools.ExposureFile)
	require.NoError(t, err)

	var doc exposure.Document
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, true, doc.Exposed.Queries["getUser"])
	assert.Equal(t, true, doc.Exposed.Mutations["deleteUser"])
}

func TestInitialize_DisabledOperationStaysDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := initializeConfig(t)
	doc := &exposure.Document{
		Exposed: exposure.Categories{
			Queries:   exposure.Entries{"getUser": false},
			Mutations: exposure.Entries{"deleteUser": true},
		},
	}
	require.NoError(t, exposure.Save(cfg.Tools.ExposureFile, doc))

	gql := graphql_mocks.NewMockService(ctrl)
	gql.EXPECT().Endpoint().Return(cfg.GraphQL.Endpoint).AnyTimes()
	gql.EXPECT().Introspect(gomock.Any()).Return(registrationSchema(), nil)

	an := analytics_mocks.NewMockService(ctrl)
	an.EXPECT().NewStartupEvent(gomock.Any()).Return(analytics.TrackEvent{})
	an.EXPECT().EmitEvent(gomock.Any())

	srv := NewGraphQLMCPServer(cfg)
	srv.gqlService = gql
	srv.anService = an

	require.NoError(t, srv.Initialize(context.Background()))

	enabled, err := srv.getEnabledTools()
	require.NoError(t, err)

	names := make([]string, 0, len(enabled))
	for _, tool := range enabled {
		names = append(names, tool.Tool.Name)
	}
	assert.NotContains(t, names, "getUser")
	assert.Contains(t, names, "deleteUser")
}

func TestInitialize_IntrospectionFailureIsFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := initializeConfig(t)

	gql := graphql_mocks.NewMockService(ctrl)
	gql.EXPECT().Endpoint().Return(cfg.GraphQL.Endpoint).AnyTimes()
	gql.EXPECT().Introspect(gomock.Any()).Return(nil, errors.New("upstream unreachable"))

	srv := NewGraphQLMCPServer(cfg)
	srv.gqlService = gql
	srv.anService = analytics_mocks.NewMockService(ctrl)

	err := srv.Initialize(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to introspect")
}

func TestInitialize_MalformedExposureFileIsFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := initializeConfig(t)
	require.NoError(t, os.WriteFile(cfg.Tools.ExposureFile, []byte("exposed: [broken"), 0o644))

	gql := graphql_mocks.NewMockService(ctrl)
	gql.EXPECT().Endpoint().Return(cfg.GraphQL.Endpoint).AnyTimes()
	gql.EXPECT().Introspect(gomock.Any()).Return(registrationSchema(), nil)

	srv := NewGraphQLMCPServer(cfg)
	srv.gqlService = gql
	srv.anService = analytics_mocks.NewMockService(ctrl)

	err := srv.Initialize(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exposure document")
}
