package handlers

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"tubelens/internal/config"
	"tubelens/internal/logger"
	"tubelens/internal/server"
)

// NewServeCmd creates the serve command for starting the HTTP server
func NewServeCmd() *cobra.Command {
	var (
		port     int
		host     string
		provider string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP analysis API",
		Long: `Start the HTTP server exposing the analysis pipeline.

Endpoints:
  POST /api/analyze  Run an analysis request
  GET  /health       Liveness probe
  GET  /api/status   Service status

Examples:
  # Start server on default port 8080
  tubelens serve

  # Start on custom port
  tubelens serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), port, host, provider)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "HTTP server port (default from config: 8080)")
	cmd.Flags().StringVar(&host, "host", "", "HTTP server host (default from config: 0.0.0.0)")
	cmd.Flags().StringVar(&provider, "provider", "", "Search provider override (serpapi, youtube, scrape)")

	return cmd
}

func runServe(ctx context.Context, port int, host, provider string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	serverCfg := cfg.Server
	if port != 0 {
		serverCfg.Port = port
	}
	if host != "" {
		serverCfg.Host = host
	}

	analyzer, err := buildAnalyzer(cfg, provider)
	if err != nil {
		return err
	}

	srv := server.New(analyzer, serverCfg)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Server listening on http://%s:%d", serverCfg.Host, serverCfg.Port))
		logger.Info("Press Ctrl+C to stop")
		serverErrors <- srv.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return err
	case sig := <-shutdown:
		logger.Info("Shutdown signal received", "signal", sig.String())

		timeout := serverCfg.ShutdownTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}
