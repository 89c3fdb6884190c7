package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aretw0/vitrine/internal/logging"
	"github.com/aretw0/vitrine/pkg/adapters/mcp"
)

// MCP transports.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// RunMCP exposes the preview pipeline to MCP clients. Requests are stateless:
// each tool call evaluates its own document.
func RunMCP(ctx context.Context, opts RunOptions, transport string, port int) error {
	cfg := opts.Config
	// Stdout carries JSON-RPC on the stdio transport.
	logger := logging.ForDebug(cfg.Debug)
	log.SetOutput(os.Stderr)

	engine, err := createEngine(opts, logger)
	if err != nil {
		return err
	}
	srv := mcp.NewServer(engine.Pipeline, mcp.WithLogger(logger))

	switch transport {
	case TransportStdio:
		logger.Info("Starting Vitrine MCP Server (Stdio)")
		return srv.ServeStdio()
	case TransportSSE:
		logger.Info("Starting Vitrine MCP Server (SSE)", "port", port)
		if err := srv.ServeSSE(ctx, port); err != nil {
			return err
		}
		logger.Info("MCP Server stopped gracefully")
		return nil
	default:
		return fmt.Errorf("unknown transport: %s. Supported: %s, %s", transport, TransportStdio, TransportSSE)
	}
}
