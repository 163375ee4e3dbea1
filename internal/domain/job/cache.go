package job

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/pkg/logging"
)

// DefaultRefreshLimit is large enough to capture the whole remote dataset
const DefaultRefreshLimit = 200000

// CacheOption configures RefreshCache
type CacheOption func(*RefreshCache)

// WithRefreshLimit sets the page size requested on every refresh
func WithRefreshLimit(limit int) CacheOption {
	return func(c *RefreshCache) {
		if limit > 0 {
			c.limit = limit
		}
	}
}

// WithCacheClock sets the clock used for snapshot timestamps
func WithCacheClock(clock func() time.Time) CacheOption {
	return func(c *RefreshCache) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithCacheLogger sets the cache logger
func WithCacheLogger(log *logging.Logger) CacheOption {
	return func(c *RefreshCache) {
		if log != nil {
			c.log = log
		}
	}
}

// RefreshCache owns the external snapshot. Readers always see a complete
// snapshot; a failed refresh never replaces one that holds data.
type RefreshCache struct {
	fetcher Fetcher
	limit   int
	clock   func() time.Time
	log     *logging.Logger

	current atomic.Pointer[domain.Snapshot]
	group   singleflight.Group
}

// NewRefreshCache creates an empty, never-fetched cache over fetcher
func NewRefreshCache(fetcher Fetcher, opts ...CacheOption) *RefreshCache {
	c := &RefreshCache{
		fetcher: fetcher,
		limit:   DefaultRefreshLimit,
		clock:   time.Now,
		log:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.Named("refresh")
	c.current.Store(&domain.Snapshot{
		Records: []domain.JobRecord{},
		Status:  domain.StatusNeverFetched,
	})
	return c
}

// Get returns the current snapshot
func (c *RefreshCache) Get() domain.Snapshot {
	return *c.current.Load()
}

// Refresh fetches the full remote dataset and swaps it in on success.
// Concurrent callers share one in-flight refresh. The refresh is detached
// from ctx and always runs to completion; ctx only bounds how long the
// caller waits for it, returning ctx.Err() when the wait is cut short.
func (c *RefreshCache) Refresh(ctx context.Context) error {
	ch := c.group.DoChan("refresh", func() (any, error) {
		return nil, c.refresh(context.WithoutCancel(ctx))
	})

	select {
	case res := <-ch:
		if res.Shared {
			c.log.Debug("joined in-flight refresh")
		}
		return res.Err
	case <-ctx.Done():
		c.log.Debug("caller stopped waiting for refresh", "err", ctx.Err())
		return ctx.Err()
	}
}

func (c *RefreshCache) refresh(ctx context.Context) error {
	started := c.clock()
	res, err := c.fetcher.Fetch(ctx, FetchParams{Limit: c.limit})
	now := c.clock()

	if err != nil {
		prev := c.current.Load()
		next := *prev
		next.LastError = err.Error()
		next.LastAttemptAt = now
		if prev.HasData() {
			next.Status = domain.StatusStale
		}
		c.current.Store(&next)

		c.log.Warn("external refresh failed, serving previous snapshot",
			"status", next.Status,
			"records", len(next.Records),
			"fetchedAt", next.FetchedAt,
			"err", err,
		)
		return err
	}

	records := make([]domain.JobRecord, len(res.Records))
	for i, r := range res.Records {
		records[i] = Normalize(r, domain.SourceExternal)
	}

	c.current.Store(&domain.Snapshot{
		Records:       records,
		FetchedAt:     now,
		Status:        domain.StatusFresh,
		LastAttemptAt: now,
	})
	c.log.Info("external refresh completed",
		"records", len(records),
		"total", res.Total,
		"duration", now.Sub(started),
	)
	return nil
}
