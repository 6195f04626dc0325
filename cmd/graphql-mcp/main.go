package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/graphbridge/graphql-mcp/internal/config"
	"github.com/graphbridge/graphql-mcp/internal/server"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML config file")
	stdio := flag.Bool("stdio", false, "Use stdio transport (for desktop MCP clients)")
	httpAddr := flag.String("http", "", "Serve MCP over streamable HTTP on this address")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	transport := ""
	if *stdio {
		transport = config.TransportStdio
	}
	if *httpAddr != "" {
		transport = config.TransportHTTP
	}
	config.ApplyFlagOverrides(cfg, transport, *httpAddr)

	setupLogger(cfg)

	srv := server.NewGraphQLMCPServer(cfg)
	if err := srv.Initialize(context.Background()); err != nil {
		slog.Error("startup failed", "error", err)
		os.Exit(1)
	}

	if err := srv.Serve(); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

// setupLogger installs the default structured logger. Logs go to stderr
// because stdout carries the MCP protocol in stdio mode.
func setupLogger(cfg *config.Config) {
	var level slog.Level
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
