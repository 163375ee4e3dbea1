package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/honeycarbs/jobboard/internal/config"
	"github.com/honeycarbs/jobboard/internal/storage/memory"
	"github.com/honeycarbs/jobboard/pkg/logging"
)

func TestProvideStore_Memory(t *testing.T) {
	cfg := testConfig()
	cfg.StoreBackend = config.StoreMemory

	repo, cleanup, err := provideStore(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	require.NotNil(t, cleanup)
	assert.IsType(t, &memory.JobRepository{}, repo)
	cleanup()
}

func TestProvideStore_Unknown(t *testing.T) {
	cfg := testConfig()
	cfg.StoreBackend = "mongo"

	_, cleanup, err := provideStore(context.Background(), cfg, logging.NewNop())
	assert.ErrorContains(t, err, "mongo")
	assert.Nil(t, cleanup)
}

func TestProvideSheetsClient_DisabledWithoutCredentials(t *testing.T) {
	client, err := provideSheetsClient(context.Background(), testConfig(), logging.NewNop())
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestProvideRetryPolicy(t *testing.T) {
	cfg := testConfig()
	cfg.Feed.RetryAttempts = 4
	cfg.Feed.RetryDelay = 250 * time.Millisecond
	cfg.Feed.Timeout = 10 * time.Second

	p := provideRetryPolicy(cfg)
	assert.Equal(t, 4, p.Attempts)
	assert.Equal(t, 500*time.Millisecond, p.Delay(2))
	assert.Equal(t, 10*time.Second, p.Timeout)
}

func TestInitializeResources_MemoryBackend(t *testing.T) {
	cfg := testConfig()
	cfg.StoreBackend = config.StoreMemory
	cfg.Feed.BaseURL = "http://127.0.0.1:1"
	cfg.Feed.Endpoint = "/jobs"
	cfg.Feed.RetryAttempts = 1
	cfg.Feed.RetryDelay = time.Millisecond
	cfg.Feed.Timeout = time.Second
	cfg.Refresh.Interval = time.Hour

	res, cleanup, err := InitializeResources(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	require.NotNil(t, cleanup)
	require.NotNil(t, res.JobService)
	require.NotNil(t, res.Scheduler)
	assert.Nil(t, res.SheetsClient)

	assert.NoError(t, res.Scheduler.Shutdown(context.Background()))
	cleanup()
}

func TestInitializeResources_ClosesStoreWhenLaterProviderFails(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	cfg := testConfig()
	cfg.StoreBackend = config.StoreMemory
	// no feed URL, so the feed client fails after the store is open
	cfg.Feed.BaseURL = ""

	res, cleanup, err := InitializeResources(context.Background(), cfg, logging.NewWithCore(core))
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Nil(t, cleanup)
	assert.Equal(t, 1, logs.FilterMessage("store closed").Len())
}
