// Readmegend is the readmegen API daemon.
//
// It serves the session, repository-summary, and README-generation HTTP
// endpoints. Configuration is loaded from an optional YAML file and
// environment variables. See internal/config for details.
//
// Usage:
//
//	# Start server with defaults
//	readmegend
//
//	# Configure via environment
//	SERVER_PORT=9090 GROQ_API_KEY=gsk_... readmegend
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/readmegen/internal/config"
	"github.com/fyrsmithlabs/readmegen/internal/github"
	readmehttp "github.com/fyrsmithlabs/readmegen/internal/http"
	"github.com/fyrsmithlabs/readmegen/internal/llm"
	"github.com/fyrsmithlabs/readmegen/internal/logging"
	"github.com/fyrsmithlabs/readmegen/internal/scanner"
	"github.com/fyrsmithlabs/readmegen/internal/session"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default ~/.config/readmegen/config.yaml)")
	flag.Parse()
	args := flag.Args()

	if len(args) > 0 {
		switch args[0] {
		case "version":
			printVersion()
			os.Exit(0)
		default:
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
			fmt.Fprintf(os.Stderr, "\nUsage:\n")
			fmt.Fprintf(os.Stderr, "  readmegend           Start the readmegen daemon\n")
			fmt.Fprintf(os.Stderr, "  readmegend version   Show version information\n")
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		log.Printf("Received signal %v, shutting down gracefully...", sig)
		cancel()
	}()

	if err := run(ctx, *configPath); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	log.Println("Server shutdown complete")
}

func printVersion() {
	fmt.Printf("readmegend by Fyrsmith Labs\n")
	fmt.Printf("Version:    %s\n", version)
	fmt.Printf("Commit:     %s\n", gitCommit)
	fmt.Printf("Build Date: %s\n", buildDate)
}

// run starts the readmegen server and blocks until context is cancelled.
//
// Returns nil on graceful shutdown.
func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logging.Sync(logger)

	logger.Info("Starting readmegend",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.String("model", cfg.LLM.Model),
		zap.Bool("llm_key_configured", cfg.LLM.APIKey.IsSet()),
		zap.Bool("github_token_configured", cfg.GitHub.Token.IsSet()),
		zap.Duration("shutdown_timeout", cfg.Server.ShutdownTimeout))

	sessions := session.NewStore()
	fetcher := github.NewFetcher(logger.Named("github"))
	dirScanner := scanner.New(logger.Named("scanner"))
	completer := llm.NewService(cfg.LLM, logger.Named("llm"))

	srv, err := readmehttp.NewServer(sessions, fetcher, dirScanner, completer, logger.Named("http"), &readmehttp.Config{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		DefaultModel: cfg.LLM.Model,
		GitHubToken:  cfg.GitHub.Token,
	})
	if err != nil {
		return fmt.Errorf("failed to create http server: %w", err)
	}

	logger.Info("Server configured",
		zap.String("health_endpoint", fmt.Sprintf("http://%s:%d/health", cfg.Server.Host, cfg.Server.Port)),
		zap.String("api_prefix", "/api/v1"),
		zap.String("metrics_endpoint", "/metrics"))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
