package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/honeycarbs/jobboard/internal/config"
	"github.com/honeycarbs/jobboard/internal/domain/job"
	feedprovider "github.com/honeycarbs/jobboard/internal/domain/job/providers/jobfeed"
	"github.com/honeycarbs/jobboard/internal/mcp/tools"
	"github.com/honeycarbs/jobboard/internal/scheduler"
	"github.com/honeycarbs/jobboard/internal/storage/memory"
	graphstore "github.com/honeycarbs/jobboard/internal/storage/neo4j"
	sqlstore "github.com/honeycarbs/jobboard/internal/storage/postgres"
	"github.com/honeycarbs/jobboard/pkg/jobfeed"
	"github.com/honeycarbs/jobboard/pkg/logging"
	n4j "github.com/honeycarbs/jobboard/pkg/neo4j"
	"github.com/honeycarbs/jobboard/pkg/postgres"
	sheetsclient "github.com/honeycarbs/jobboard/pkg/sheets"
)

// Resources holds the wired services. Store connections are released by
// the cleanup function InitializeResources returns.
type Resources struct {
	JobService   job.Service
	Scheduler    *scheduler.Scheduler
	SheetsClient tools.SheetsClient
}

const storeCloseTimeout = 5 * time.Second

func provideFeedConfig(cfg config.Config) jobfeed.Config {
	return jobfeed.Config{
		BaseURL:   cfg.Feed.BaseURL,
		Endpoint:  cfg.Feed.Endpoint,
		Token:     cfg.Feed.Token,
		UserAgent: cfg.Feed.UserAgent,
		RateLimit: cfg.Feed.RateLimit,
	}
}

func provideFeedProvider(client *jobfeed.Client) (job.Provider, error) {
	return feedprovider.NewProvider(client)
}

func provideRetryPolicy(cfg config.Config) job.RetryPolicy {
	return job.RetryPolicy{
		Attempts:  cfg.Feed.RetryAttempts,
		BaseDelay: cfg.Feed.RetryDelay,
		Timeout:   cfg.Feed.Timeout,
	}
}

func provideFetcher(provider job.Provider, policy job.RetryPolicy, log *logging.Logger) (job.Fetcher, error) {
	return job.NewRetryingFetcher(provider, policy, job.WithFetcherLogger(log))
}

func provideCache(fetcher job.Fetcher, cfg config.Config, log *logging.Logger) *job.RefreshCache {
	return job.NewRefreshCache(fetcher,
		job.WithRefreshLimit(cfg.Feed.RefreshLimit),
		job.WithCacheLogger(log),
	)
}

func provideNeo4jConfig(cfg config.Config) n4j.Config {
	return n4j.Config{
		URI:      cfg.Neo4j.URI,
		Username: cfg.Neo4j.Username,
		Password: cfg.Neo4j.Password,
	}
}

// provideStore opens the backend named by STORE_BACKEND. The returned
// cleanup closes its connections.
func provideStore(ctx context.Context, cfg config.Config, log *logging.Logger) (job.Repository, func(), error) {
	switch cfg.StoreBackend {
	case config.StoreNeo4j:
		client, err := n4j.NewClient(provideNeo4jConfig(cfg))
		if err != nil {
			return nil, nil, err
		}
		log.Info("Neo4j store initialized", "uri", cfg.Neo4j.URI)
		return graphstore.NewJobRepository(client), storeCleanup(log, cfg.StoreBackend, client.Close), nil

	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, postgres.Config{URL: cfg.DatabaseURL})
		if err != nil {
			return nil, nil, err
		}
		repo := sqlstore.NewJobRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		log.Info("PostgreSQL store initialized")
		return repo, storeCleanup(log, cfg.StoreBackend, func(context.Context) error {
			pool.Close()
			return nil
		}), nil

	case config.StoreMemory:
		log.Warn("using in-memory store, created jobs are lost on restart")
		return memory.NewJobRepository(), storeCleanup(log, cfg.StoreBackend, func(context.Context) error {
			return nil
		}), nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func storeCleanup(log *logging.Logger, backend string, closeFn func(ctx context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), storeCloseTimeout)
		defer cancel()

		if err := closeFn(ctx); err != nil {
			log.Warn("store close failed", "backend", backend, "err", err)
			return
		}
		log.Info("store closed", "backend", backend)
	}
}

func provideScheduler(svc job.Service, cfg config.Config, log *logging.Logger) (*scheduler.Scheduler, error) {
	return scheduler.New(svc, cfg.Refresh.Interval, cfg.Refresh.OnStart, log)
}

// provideSheetsClient returns a nil client when no credentials are configured;
// sheets_export is then left unregistered.
func provideSheetsClient(ctx context.Context, cfg config.Config, log *logging.Logger) (tools.SheetsClient, error) {
	if cfg.SheetsCredsPath == "" {
		log.Info("GOOGLE_SHEETS_CREDENTIALS_PATH not set, sheets export disabled")
		return nil, nil
	}
	client, err := sheetsclient.NewClient(ctx, sheetsclient.Config{CredentialsPath: cfg.SheetsCredsPath})
	if err != nil {
		return nil, err
	}
	return newSheetsClientAdapter(client), nil
}

func newResources(
	jobService job.Service,
	sched *scheduler.Scheduler,
	sheetsClient tools.SheetsClient,
) *Resources {
	return &Resources{
		JobService:   jobService,
		Scheduler:    sched,
		SheetsClient: sheetsClient,
	}
}
