package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"airbnb-rooms-scraper/config"
	"airbnb-rooms-scraper/scraper"
	"airbnb-rooms-scraper/scraper/airbnb"
	"airbnb-rooms-scraper/services"
	"airbnb-rooms-scraper/storage"
	"airbnb-rooms-scraper/utils"
)

var scrapeFlagKeys = map[string]string{
	"output":       "outputPath",
	"csv":          "csvPath",
	"database-url": "databaseUrl",
	"workers":      "maxWorkers",
	"retries":      "maxRetries",
	"fetcher":      "fetcher",
	"redis-addr":   "redisAddr",
}

func newScrapeCommand() *cobra.Command {
	var (
		inputPath string
		noReport  bool
	)
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Fetch and normalize every room listed in an input file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags(), scrapeFlagKeys)
			if err != nil {
				return err
			}
			return runScrape(cmd, cfg, inputPath, !noReport)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "input JSON file with room URLs (required)")
	cmd.Flags().StringP("output", "o", "", "output JSON file")
	cmd.Flags().String("csv", "", "also write records to this CSV file")
	cmd.Flags().String("database-url", "", "also store the run in this PostgreSQL database")
	cmd.Flags().Int("workers", 0, "number of concurrent fetches")
	cmd.Flags().Int("retries", 0, "retries per room after a transient failure")
	cmd.Flags().String("fetcher", "", `page fetcher: "http" or "chrome"`)
	cmd.Flags().String("redis-addr", "", "cache raw pages in this Redis server")
	cmd.Flags().BoolVar(&noReport, "no-report", false, "skip the summary report")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runScrape(cmd *cobra.Command, cfg *config.Config, inputPath string, report bool) error {
	ctx := cmd.Context()
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	inputs, err := config.LoadInput(inputPath)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	logger = logger.With("run", runID)
	logger.Info("Loaded %d room(s) from %s", len(inputs), inputPath)
	logger.Info("Workers: %d | Rate delay: %v | Retries: %d | Fetcher: %s",
		cfg.MaxWorkers, cfg.RateLimitDelay(), cfg.MaxRetries, cfg.Fetcher)

	fetcher, closeFetcher, err := buildFetcher(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeFetcher()

	sink, err := buildSinks(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := sink.Close(); err != nil {
			logger.Warn("Failed to close outputs: %v", err)
		}
	}()

	orch := scraper.NewOrchestrator(fetcher, services.NewNormalizer(logger), logger,
		scraper.WithRateLimiter(utils.NewRateLimiter(cfg.RateLimitDelay(), cfg.RateBurst)))
	result, runErr := orch.Run(ctx, inputs, orchestratorOptions(cfg))
	if result == nil {
		return runErr
	}
	if runErr != nil {
		logger.Warn("Run interrupted: %v (saving %d completed record(s))", runErr, len(result.Successes))
	}

	// outputs are written even when the run was interrupted
	saveErr := sink.Save(context.WithoutCancel(ctx), runID, result)
	if saveErr != nil {
		logger.Error("Failed to save results: %v", saveErr)
	}

	if report {
		insights := services.NewInsightService(logger).Generate(runID, result)
		services.PrintInsightReport(cmd.OutOrStdout(), insights)
	}
	return errors.Join(runErr, saveErr)
}

func orchestratorOptions(cfg *config.Config) scraper.Options {
	return scraper.Options{
		ConcurrencyLimit: cfg.MaxWorkers,
		MaxRetries:       cfg.MaxRetries,
		BackoffBase:      cfg.BackoffBase,
		BackoffCap:       cfg.BackoffCap,
	}
}

// buildFetcher returns the configured fetcher, wrapped with the Redis cache
// when one is configured, and a function releasing its resources.
func buildFetcher(ctx context.Context, cfg *config.Config, logger *utils.Logger) (scraper.Fetcher, func(), error) {
	var (
		fetcher scraper.Fetcher
		closers []func()
	)
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	switch cfg.Fetcher {
	case config.FetcherChrome:
		chrome, err := airbnb.NewChromeFetcher(airbnb.ChromeOptions{
			Headless:  cfg.Headless,
			UserAgent: cfg.UserAgent,
			Timeout:   cfg.Timeout(),
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		fetcher = chrome
		closers = append(closers, chrome.Close)
	default:
		fetcher = airbnb.NewHTTPFetcher(airbnb.HTTPOptions{
			Timeout:          cfg.Timeout(),
			UserAgent:        cfg.UserAgent,
			TransportRetries: cfg.TransportRetries,
		}, logger)
	}

	if cfg.RedisAddr != "" {
		rdb, err := storage.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		cache := storage.NewRedisDocumentCache(rdb, cfg.CacheTTL, logger)
		closers = append(closers, func() { _ = cache.Close() })
		fetcher = scraper.NewCachedFetcher(fetcher, cache, logger)
		logger.Info("Caching raw pages in Redis at %s for %v", cfg.RedisAddr, cfg.CacheTTL)
	}
	return fetcher, closeAll, nil
}

// buildSinks always writes the JSON output and adds CSV and PostgreSQL when configured.
func buildSinks(ctx context.Context, cfg *config.Config, logger *utils.Logger) (storage.MultiSink, error) {
	sinks := storage.MultiSink{storage.NewJSONWriter(cfg.OutputPath, logger)}
	if cfg.CSVPath != "" {
		sinks = append(sinks, storage.NewCSVWriter(cfg.CSVPath, logger))
	}
	if cfg.DatabaseURL != "" {
		pg, err := storage.NewPostgresWriter(cfg.DatabaseURL, logger)
		if err != nil {
			return nil, fmt.Errorf("cannot connect to PostgreSQL: %w", err)
		}
		if err := pg.CreateTables(ctx); err != nil {
			_ = pg.Close()
			return nil, err
		}
		sinks = append(sinks, pg)
	}
	return sinks, nil
}
