package job

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/pkg/logging"
)

// FetchParams describes one remote query
type FetchParams struct {
	Limit   int
	Offset  int
	Filters map[string]string
}

// FetchResult is a successful remote fetch
type FetchResult struct {
	Records []domain.JobRecord
	Total   int
	HasMore bool
}

// Provider represents an external job data source.
// Implementations make a single attempt and classify failures as
// domain.ErrTransport or domain.ErrDataShape.
type Provider interface {
	// e.g. "jobfeed"
	Name() string

	List(ctx context.Context, params FetchParams) (FetchResult, error)
}

// Fetcher returns external records or a failure
type Fetcher interface {
	Fetch(ctx context.Context, params FetchParams) (FetchResult, error)
}

// Sleeper waits for d or until ctx is done
type Sleeper func(ctx context.Context, d time.Duration) error

// RetryPolicy bounds the fetch retry loop
type RetryPolicy struct {
	Attempts  int
	BaseDelay time.Duration
	Timeout   time.Duration // per attempt; zero disables it
}

// DefaultRetryPolicy mirrors the feed defaults
var DefaultRetryPolicy = RetryPolicy{
	Attempts:  3,
	BaseDelay: time.Second,
	Timeout:   30 * time.Second,
}

// Delay returns the wait before retry k (k >= 1): BaseDelay * 2^(k-1)
func (p RetryPolicy) Delay(k int) time.Duration {
	if k < 1 {
		return 0
	}
	return p.BaseDelay << (k - 1)
}

// FetcherOption configures RetryingFetcher
type FetcherOption func(*RetryingFetcher)

// WithSleeper replaces the real timer, mainly for tests
func WithSleeper(sleep Sleeper) FetcherOption {
	return func(f *RetryingFetcher) {
		if sleep != nil {
			f.sleep = sleep
		}
	}
}

// WithFetcherLogger sets the logger used for attempt outcomes
func WithFetcherLogger(log *logging.Logger) FetcherOption {
	return func(f *RetryingFetcher) {
		if log != nil {
			f.log = log
		}
	}
}

// RetryingFetcher wraps a Provider with bounded retry and exponential backoff
type RetryingFetcher struct {
	provider Provider
	policy   RetryPolicy
	sleep    Sleeper
	log      *logging.Logger
}

// NewRetryingFetcher builds a fetcher around provider
func NewRetryingFetcher(provider Provider, policy RetryPolicy, opts ...FetcherOption) (*RetryingFetcher, error) {
	if provider == nil {
		return nil, fmt.Errorf("job.Fetcher: provider is required")
	}
	if policy.Attempts < 1 {
		policy.Attempts = 1
	}
	if policy.BaseDelay < 0 {
		policy.BaseDelay = 0
	}

	f := &RetryingFetcher{
		provider: provider,
		policy:   policy,
		sleep:    sleepContext,
		log:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.log = f.log.Named("fetcher").With("provider", provider.Name())
	return f, nil
}

// Fetch queries the provider, retrying transport failures.
// A malformed response is returned at once. After the last attempt the
// error is a *domain.FetchError wrapping the last cause.
func (f *RetryingFetcher) Fetch(ctx context.Context, params FetchParams) (FetchResult, error) {
	var lastErr error

	for attempt := 1; attempt <= f.policy.Attempts; attempt++ {
		if attempt > 1 {
			delay := f.policy.Delay(attempt - 1)
			f.log.Info("retrying fetch", "attempt", attempt, "delay", delay)
			if err := f.sleep(ctx, delay); err != nil {
				lastErr = fmt.Errorf("%w: backoff interrupted: %v", domain.ErrTransport, err)
				return FetchResult{}, f.fail(attempt-1, lastErr)
			}
		}

		f.log.Debug("fetch attempt", "attempt", attempt, "limit", params.Limit, "offset", params.Offset)
		res, err := f.attempt(ctx, params)
		if err == nil {
			f.log.Info("fetch succeeded", "attempt", attempt, "records", len(res.Records), "total", res.Total)
			return res, nil
		}
		lastErr = err

		if domain.IsDataShape(err) {
			f.log.Error("fetch returned malformed data", "attempt", attempt, "err", err)
			return FetchResult{}, f.fail(attempt, err)
		}
		f.log.Warn("fetch attempt failed", "attempt", attempt, "of", f.policy.Attempts, "err", err)
	}

	return FetchResult{}, f.fail(f.policy.Attempts, lastErr)
}

func (f *RetryingFetcher) attempt(ctx context.Context, params FetchParams) (FetchResult, error) {
	attemptCtx := ctx
	if f.policy.Timeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, f.policy.Timeout)
		defer cancel()
	}

	res, err := f.provider.List(attemptCtx, params)
	if err == nil {
		return res, nil
	}
	if domain.IsDataShape(err) || domain.IsTransport(err) {
		return FetchResult{}, err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return FetchResult{}, fmt.Errorf("%w: attempt timed out: %v", domain.ErrTransport, err)
	}
	return FetchResult{}, fmt.Errorf("%w: %v", domain.ErrTransport, err)
}

func (f *RetryingFetcher) fail(attempts int, err error) error {
	f.log.Error("fetch gave up", "attempts", attempts, "err", err)
	return &domain.FetchError{
		Provider: f.provider.Name(),
		Attempts: attempts,
		Err:      err,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
