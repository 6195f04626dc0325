package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Transport selects how the MCP server is exposed to clients.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config represents the application configuration.
type Config struct {
	GraphQL GraphQLConfig `yaml:"graphql"`
	Server  ServerConfig  `yaml:"server"`
	Tools   ToolsConfig   `yaml:"tools"`
	Logging LoggingConfig `yaml:"logging"`
}

// GraphQLConfig contains upstream endpoint settings.
type GraphQLConfig struct {
	Endpoint       string            `yaml:"endpoint"`
	Headers        map[string]string `yaml:"headers"`
	TimeoutSeconds int               `yaml:"timeout_seconds"`
}

// ServerConfig contains MCP transport settings.
type ServerConfig struct {
	Transport string `yaml:"transport"`
	HTTPAddr  string `yaml:"http_addr"`
}

// ToolsConfig contains tool synthesis settings. ReadOnly drops every tool
// that is not annotated read-only, regardless of the exposure document.
type ToolsConfig struct {
	ExposureFile   string `yaml:"exposure_file"`
	QueryPrefix    string `yaml:"query_prefix"`
	MutationPrefix string `yaml:"mutation_prefix"`
	ReadOnly       bool   `yaml:"read_only"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// NewDefaultConfig returns the configuration used when no file or
// environment overrides are present. The endpoint has no default.
func NewDefaultConfig() *Config {
	return &Config{
		GraphQL: GraphQLConfig{
			Headers:        map[string]string{},
			TimeoutSeconds: 30,
		},
		Server: ServerConfig{
			Transport: TransportStdio,
			HTTPAddr:  ":8080",
		},
		Tools: ToolsConfig{
			ExposureFile: "exposure.yaml",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load builds configuration with priority: defaults -> file -> env.
// An empty path skips the file stage.
func Load(path string) (*Config, error) {
	config := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks settings that have no workable fallback.
func (c *Config) Validate() error {
	if c.GraphQL.Endpoint == "" {
		return fmt.Errorf("graphql endpoint is required: set graphql.endpoint in the config file or GRAPHQL_MCP_ENDPOINT")
	}
	if c.Server.Transport != TransportStdio && c.Server.Transport != TransportHTTP {
		return fmt.Errorf("unknown transport %q: must be %q or %q", c.Server.Transport, TransportStdio, TransportHTTP)
	}
	if c.GraphQL.TimeoutSeconds <= 0 {
		return fmt.Errorf("graphql timeout must be positive, got %d", c.GraphQL.TimeoutSeconds)
	}
	return nil
}

// RequestTimeout returns the upstream request timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.GraphQL.TimeoutSeconds) * time.Second
}

// applyEnvOverrides applies GRAPHQL_MCP_* environment variable overrides.
// Headers are given as comma separated Name=Value pairs.
func applyEnvOverrides(config *Config) {
	if endpoint := os.Getenv("GRAPHQL_MCP_ENDPOINT"); endpoint != "" {
		config.GraphQL.Endpoint = endpoint
	}
	if headers := os.Getenv("GRAPHQL_MCP_HEADERS"); headers != "" {
		for _, pair := range strings.Split(headers, ",") {
			name, value, ok := strings.Cut(pair, "=")
			if !ok {
				continue
			}
			if config.GraphQL.Headers == nil {
				config.GraphQL.Headers = map[string]string{}
			}
			config.GraphQL.Headers[strings.TrimSpace(name)] = strings.TrimSpace(value)
		}
	}
	if timeout := os.Getenv("GRAPHQL_MCP_TIMEOUT_SECONDS"); timeout != "" {
		if seconds, err := strconv.Atoi(timeout); err == nil {
			config.GraphQL.TimeoutSeconds = seconds
		}
	}
	if transport := os.Getenv("GRAPHQL_MCP_TRANSPORT"); transport != "" {
		config.Server.Transport = transport
	}
	if addr := os.Getenv("GRAPHQL_MCP_HTTP_ADDR"); addr != "" {
		config.Server.HTTPAddr = addr
	}
	if file := os.Getenv("GRAPHQL_MCP_EXPOSURE_FILE"); file != "" {
		config.Tools.ExposureFile = file
	}
	if prefix := os.Getenv("GRAPHQL_MCP_QUERY_PREFIX"); prefix != "" {
		config.Tools.QueryPrefix = prefix
	}
	if prefix := os.Getenv("GRAPHQL_MCP_MUTATION_PREFIX"); prefix != "" {
		config.Tools.MutationPrefix = prefix
	}
	if readOnly := os.Getenv("GRAPHQL_MCP_READ_ONLY"); readOnly != "" {
		if value, err := strconv.ParseBool(readOnly); err == nil {
			config.Tools.ReadOnly = value
		}
	}
	if level := os.Getenv("GRAPHQL_MCP_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, transport, httpAddr string) {
	if transport != "" {
		config.Server.Transport = transport
	}
	if httpAddr != "" {
		config.Server.HTTPAddr = httpAddr
	}
}
