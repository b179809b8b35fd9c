package cmd

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airbnb-rooms-scraper/config"
	"airbnb-rooms-scraper/scraper"
	"airbnb-rooms-scraper/storage"
	"airbnb-rooms-scraper/utils"
)

func TestOrchestratorOptions(t *testing.T) {
	cfg := &config.Config{MaxWorkers: 3, MaxRetries: 1, BackoffBase: time.Second, BackoffCap: 5 * time.Second}

	opts := orchestratorOptions(cfg)
	assert.Equal(t, scraper.Options{ConcurrencyLimit: 3, MaxRetries: 1, BackoffBase: time.Second, BackoffCap: 5 * time.Second}, opts)
	assert.NoError(t, opts.Validate())
}

func TestBuildSinks(t *testing.T) {
	dir := t.TempDir()
	logger := utils.NewNopLogger()

	sinks, err := buildSinks(context.Background(), &config.Config{OutputPath: filepath.Join(dir, "rooms.json")}, logger)
	require.NoError(t, err)
	require.Len(t, sinks, 1)
	assert.IsType(t, &storage.JSONWriter{}, sinks[0])

	sinks, err = buildSinks(context.Background(), &config.Config{
		OutputPath: filepath.Join(dir, "rooms.json"),
		CSVPath:    filepath.Join(dir, "rooms.csv"),
	}, logger)
	require.NoError(t, err)
	require.Len(t, sinks, 2)
	assert.IsType(t, &storage.CSVWriter{}, sinks[1])
}

func TestBuildFetcher_HTTP(t *testing.T) {
	cfg := &config.Config{Fetcher: config.FetcherHTTP, RequestTimeout: 5}

	fetcher, closeFetcher, err := buildFetcher(context.Background(), cfg, utils.NewNopLogger())
	require.NoError(t, err)
	defer closeFetcher()
	assert.NotNil(t, fetcher)
}
