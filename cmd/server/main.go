package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/entrygroup/gallery/internal/config"
	"github.com/entrygroup/gallery/internal/entry"
	"github.com/entrygroup/gallery/internal/extract"
	"github.com/entrygroup/gallery/internal/groupcode"
	"github.com/entrygroup/gallery/internal/metrics"
	"github.com/entrygroup/gallery/internal/repository/sqlite"
	"github.com/entrygroup/gallery/internal/service"
	"github.com/entrygroup/gallery/internal/transport/client"
	httpTransport "github.com/entrygroup/gallery/internal/transport/http"
)

var rootCmd = &cobra.Command{
	Use:   "gallery",
	Short: "A project group gallery service",
	Long:  "A service that stores lists of creative-coding project links under short codes and renders live gallery pages by re-resolving each project's metadata",
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gallery server",
	RunE:  runServer,
}

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Client commands for interacting with the server",
}

var createCmd = &cobra.Command{
	Use:   "create [URL...]",
	Short: "Create a project group from one or more project URLs",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCreateGroup,
}

var viewCmd = &cobra.Command{
	Use:   "view [CODE]",
	Short: "Resolve and display a project group",
	Args:  cobra.ExactArgs(1),
	RunE:  runViewGroup,
}

func init() {
	// Server command flags
	serverCmd.Flags().StringP("port", "p", "8080", "Server port")
	serverCmd.Flags().String("server-url", "http://localhost:8080", "Server URL (used in generated group links)")
	serverCmd.Flags().String("db-path", "groups.db", "Database file path")

	// External site flags
	serverCmd.Flags().String("entry-base-url", entry.DefaultBaseURL, "Base URL of the external project site")
	serverCmd.Flags().String("query-endpoint", entry.DefaultQueryEndpoint, "External query API endpoint")

	// Resolution flags
	serverCmd.Flags().Int("max-concurrent", 8, "Maximum concurrent item resolutions per group page (0 = unbounded)")
	serverCmd.Flags().Bool("no-query", false, "Skip the query API and render from extracted page metadata only")
	serverCmd.Flags().Duration("token-cache-ttl", 0, "TTL for cached session tokens (0 disables the cache)")

	// Logging configuration flags
	serverCmd.Flags().String("log-level", "info", "Log level (debug, info, warn, error)")

	// Client command flags
	clientCmd.PersistentFlags().StringP("server-url", "u", "http://localhost:8080", "Server URL")

	// Add subcommands
	clientCmd.AddCommand(createCmd, viewCmd)
	rootCmd.AddCommand(serverCmd, clientCmd)
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = lvl
	return zapCfg.Build()
}

func runServer(cmd *cobra.Command, args []string) error {
	// Get configuration from CLI flags
	port, _ := cmd.Flags().GetString("port")
	serverURL, _ := cmd.Flags().GetString("server-url")
	dbPath, _ := cmd.Flags().GetString("db-path")
	baseURL, _ := cmd.Flags().GetString("entry-base-url")
	queryEndpoint, _ := cmd.Flags().GetString("query-endpoint")
	maxConcurrent, _ := cmd.Flags().GetInt("max-concurrent")
	noQuery, _ := cmd.Flags().GetBool("no-query")
	tokenCacheTTL, _ := cmd.Flags().GetDuration("token-cache-ttl")
	logLevel, _ := cmd.Flags().GetString("log-level")

	cfg, err := config.New(port, serverURL, dbPath, baseURL, queryEndpoint, maxConcurrent, !noQuery, tokenCacheTTL, logLevel)
	if err != nil {
		return fmt.Errorf("failed to create configuration: %w", err)
	}

	logger, err := newLogger(cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("starting gallery server",
		zap.String("port", cfg.Server.Port),
		zap.String("entry_base_url", cfg.Entry.BaseURL),
		zap.Bool("query_api", cfg.Resolve.UseQueryAPI),
	)

	// Initialize database
	repo, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Error("error closing repository", zap.Error(err))
		}
	}()

	// Wire up the resolution pipeline
	m := metrics.New()
	groups := service.NewGroupService(
		repo,
		groupcode.New(),
		entry.NewPageFetcher(cfg.Entry.BaseURL),
		entry.NewQueryClient(cfg.Entry.QueryEndpoint),
		extract.NewWithLogger(logger),
		m,
		logger,
		cfg.Server.ServerURL,
		cfg.Resolve,
	)

	// Create and start HTTP server
	server := httpTransport.NewServer(groups, m, logger, cfg.Server.Port)

	// Set up graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start()
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-sigChan:
		logger.Info("received signal, shutting down gracefully", zap.String("signal", sig.String()))

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", zap.Error(err))
		}
	}

	logger.Info("server stopped")
	return nil
}

func runCreateGroup(cmd *cobra.Command, args []string) error {
	serverURL, _ := cmd.Flags().GetString("server-url")
	c := client.NewClient(serverURL)
	commands := client.NewCommands(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return commands.Create(ctx, args)
}

func runViewGroup(cmd *cobra.Command, args []string) error {
	serverURL, _ := cmd.Flags().GetString("server-url")
	c := client.NewClient(serverURL)
	commands := client.NewCommands(c)

	// Group resolution performs remote calls per item
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	return commands.View(ctx, args[0])
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
