package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"minebrief/internal/config"
	"minebrief/internal/llm"
	"minebrief/internal/logger"
	"minebrief/internal/server"
	"minebrief/internal/sources"
	"minebrief/internal/synthesis"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

// newServeCmd creates the serve command for starting the HTTP server
func newServeCmd() *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the commodity news HTTP server",
		Long: `Start the minebrief HTTP server.

The server provides:
  • GET  /news/search      search recent commodity news
  • POST /news/paraphrase  synthesize articles into one report
  • POST /export/docx      export a report to DOCX
  • POST /export/pdf       export a report to PDF
  • GET  /health           health check

AI backends are tried in order: Gemini, DeepSeek, a local Ollama model, and
finally a deterministic template, so the server works without any API keys.

Examples:
  # Start server on default port 8001
  minebrief serve

  # Start on custom port
  minebrief serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), port, host)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "HTTP server port (default from config: 8001)")
	cmd.Flags().StringVar(&host, "host", "", "HTTP server host (default from config: 0.0.0.0)")

	return cmd
}

func runServe(ctx context.Context, port int, host string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.SetLevel(cfg.App.LogLevel)

	log := logger.Get()
	log.Info("Starting HTTP server")

	// Override server config from flags if provided
	serverCfg := cfg.Server
	if port != 0 {
		serverCfg.Port = port
	}
	if host != "" {
		serverCfg.Host = host
	}

	chain := llm.NewDefaultChain(&cfg.AI)
	orchestrator := synthesis.NewOrchestrator(chain)
	registry := sources.NewRegistry(cfg.Search)

	srv := server.New(orchestrator, registry, serverCfg)

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	go func() {
		log.Info(fmt.Sprintf("Server listening on http://%s:%d", serverCfg.Host, serverCfg.Port))
		log.Info("Press Ctrl+C to stop")
		serverErrors <- srv.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive our signal or an error from server
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Info("Server shutdown initiated", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown failed, forcing close", "error", err)
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		log.Info("Server stopped successfully")
	}

	return nil
}
