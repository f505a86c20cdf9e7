package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pfrederiksen/edison-soccer/internal/aggregator"
	"github.com/pfrederiksen/edison-soccer/internal/api"
	"github.com/pfrederiksen/edison-soccer/internal/config"
	"github.com/pfrederiksen/edison-soccer/internal/logger"
	"github.com/pfrederiksen/edison-soccer/internal/scraper"
	"github.com/pfrederiksen/edison-soccer/internal/tools"
	"github.com/spf13/cobra"
)

// ExitError is the exit status when a command fails
const ExitError = 1

const shutdownTimeout = 5 * time.Second

var (
	flagConfig   string
	flagCurrent  string
	flagPrevious string
	flagVerbose  bool
	flagFormat   string
	flagSort     string
	flagAddr     string
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edison-soccer",
		Short: "Scrape Edison HS boys soccer stats, fixtures and roster",
		Long: `A CLI tool that scrapes the Edison High School boys soccer pages on
highschoolsports.nj.com and normalizes them into one bundle: current and previous
season stats, the current season schedule and the roster.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a YAML config file")
	cmd.PersistentFlags().StringVar(&flagCurrent, "current", "", "Current season label (e.g. 2025-2026)")
	cmd.PersistentFlags().StringVar(&flagPrevious, "previous", "", "Previous season label (e.g. 2024-2025)")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(newScrapeCmd(), newServeCmd(), newMCPCmd())

	return cmd
}

func newScrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Run one aggregation and print the bundle",
		Long: `Runs one aggregation and prints the bundle. Sections that could not be
scraped are reported in the section table and still exit with status 0.`,
		RunE: runScrape,
	}

	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&flagSort, "sort", "source", "Field player order: source, goals, assists, points or name")

	return cmd
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run one aggregation and serve it over HTTP",
		RunE:  runServe,
	}

	cmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (overrides listen_addr)")

	return cmd
}

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run one aggregation and answer MCP tool calls over stdio",
		RunE:  runMCP,
	}
}

// loadConfig reads the config file, if any, and applies flag overrides
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if flagConfig != "" {
		loaded, err := config.Load(flagConfig)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = *loaded
	}

	if flagCurrent != "" {
		cfg.CurrentSeason = flagCurrent
	}
	if flagPrevious != "" {
		cfg.PreviousSeason = flagPrevious
	}
	if flagVerbose {
		cfg.LogLevel = string(logger.LevelDebug)
	}

	cfg.Normalise()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// aggregate runs one aggregation with logs going to stderr
func aggregate(cfg *config.Config, stderr io.Writer) (*aggregator.Report, *logger.Metrics, *logger.Logger) {
	level, _ := logger.ParseLevel(cfg.LogLevel)
	log := logger.New(level, stderr)
	logger.SetDefault(log)

	src := scraper.New(scraper.Options{
		Fetcher: scraper.NewHTTPFetcher(cfg.FetchOptions()),
		Pages:   cfg.Pages(),
		Coach:   cfg.Coach,
		Logger:  log,
	})

	agg := aggregator.New(aggregator.Options{
		Source:   src,
		Current:  cfg.CurrentSeason,
		Previous: cfg.PreviousSeason,
		Logger:   log,
	})

	return agg.Run(), agg.Metrics(), log
}

// runScrape is the scrape command logic
func runScrape(cmd *cobra.Command, args []string) error {
	format, err := ParseOutputFormat(flagFormat)
	if err != nil {
		return err
	}
	order, err := ParseSortOrder(flagSort)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	report, _, _ := aggregate(cfg, cmd.ErrOrStderr())

	if err := WriteOutput(cmd.OutOrStdout(), report, format, order); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// runServe is the serve command logic
func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagAddr != "" {
		cfg.ListenAddr = flagAddr
	}

	report, metrics, log := aggregate(cfg, cmd.ErrOrStderr())
	server := api.NewServer(cfg.ListenAddr, report, metrics, log)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving api: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down api: %w", err)
	}
	return nil
}

// runMCP is the mcp command logic
func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	report, _, _ := aggregate(cfg, cmd.ErrOrStderr())

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := tools.Serve(ctx, tools.NewServer(report)); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("serving mcp: %w", err)
	}
	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
