package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/metrics"
	"github.com/aretw0/automata/internal/presentation/tui"
	httpAdapter "github.com/aretw0/automata/pkg/adapters/http"
	"github.com/aretw0/automata/pkg/adapters/mcp"
	"github.com/aretw0/automata/pkg/ports"
)

// ServeOptions configures the serve command.
type ServeOptions struct {
	Options
	Addr string
}

// Serve runs the HTTP API until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, opts ServeOptions) error {
	logger := createLogger(opts.Debug, opts.Config.LogLevel)
	if !opts.Debug && opts.Config.LogLevel == "" {
		// A server without logs is hard to operate.
		logger = createLogger(false, "info")
	}

	engine, closeFn, err := createEngine(opts.Options, logger)
	if err != nil {
		return commandError("load failed", err)
	}
	defer closeFn()

	handlerOpts := []httpAdapter.Option{
		httpAdapter.WithLogger(logger),
		httpAdapter.WithObserver(metrics.New()),
		httpAdapter.WithMaxInputSize(opts.Config.MaxInputSize),
	}
	if pub, ok := engine.Loader().(ports.Publisher); ok {
		handlerOpts = append(handlerOpts, httpAdapter.WithPublisher(pub))
	}

	addr := opts.Addr
	if addr == "" {
		addr = opts.Config.HTTP.Addr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           httpAdapter.NewHandler(engine, handlerOpts...),
		ReadHeaderTimeout: 10 * time.Second,
	}

	tui.PrintBanner(opts.stdout(), automata.Version)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Starting automata server", "addr", srv.Addr, "source", opts.Config.Source, "backend", opts.Config.Backend)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("Start shutdown")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Graceful shutdown did not complete", "timeout", 5*time.Second, "err", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		logger.Info("Server stopped gracefully")
		return nil
	}
}

// MCPOptions configures the mcp command.
type MCPOptions struct {
	Options
	Transport string
	Port      int
}

// ServeMCP runs the MCP server over stdio or SSE.
func ServeMCP(ctx context.Context, opts MCPOptions) error {
	// Stdout carries JSON-RPC in stdio mode, so logs always go to stderr.
	logger := createLogger(opts.Debug, opts.Config.LogLevel)
	log.SetOutput(os.Stderr)

	engine, closeFn, err := createEngine(opts.Options, logger)
	if err != nil {
		return commandError("load failed", err)
	}
	defer closeFn()

	srv := mcp.NewServer(engine, logger)

	switch strings.ToLower(opts.Transport) {
	case "", "stdio":
		logger.Info("Starting automata MCP server (stdio)")
		return srv.ServeStdio()
	case "sse":
		logger.Info("Starting automata MCP server (SSE)", "port", opts.Port)
		if err := srv.ServeSSE(ctx, opts.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		logger.Info("MCP server stopped gracefully")
		return nil
	default:
		return commandError("", fmt.Errorf("unknown transport %q (supported: stdio, sse)", opts.Transport))
	}
}
