//go:build wireinject
// +build wireinject

package mcp

import (
	"context"

	"github.com/google/wire"

	"github.com/honeycarbs/jobboard/internal/config"
	"github.com/honeycarbs/jobboard/internal/domain/job"
	"github.com/honeycarbs/jobboard/pkg/jobfeed"
	"github.com/honeycarbs/jobboard/pkg/logging"
)

// InitializeResources creates Resources with all resources wired up
func InitializeResources(ctx context.Context, cfg config.Config, log *logging.Logger) (*Resources, func(), error) {
	wire.Build(
		// Remote feed
		provideFeedConfig,
		jobfeed.NewClient,
		provideFeedProvider,
		provideRetryPolicy,
		provideFetcher,
		provideCache,

		// Persistent store
		provideStore,

		// Services
		job.NewServiceWithDeps,
		provideScheduler,
		provideSheetsClient,
		newResources,
	)

	return &Resources{}, nil, nil
}
