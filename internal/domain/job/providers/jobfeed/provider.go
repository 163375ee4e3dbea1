package jobfeed

import (
	"context"
	"errors"
	"fmt"

	"github.com/honeycarbs/jobboard/internal/domain"
	jobdomain "github.com/honeycarbs/jobboard/internal/domain/job"
	"github.com/honeycarbs/jobboard/pkg/jobfeed"
)

// listClient describes the subset of the feed client used by the provider.
type listClient interface {
	ListJobs(ctx context.Context, params jobfeed.ListParams) (jobfeed.Page, error)
}

// Provider implements job.Provider using the public job feed
type Provider struct {
	client listClient
}

// NewProvider builds a job feed provider
func NewProvider(client listClient) (*Provider, error) {
	if client == nil {
		return nil, fmt.Errorf("jobfeed provider: client is required")
	}
	return &Provider{client: client}, nil
}

// Name returns provider identifier
func (p *Provider) Name() string {
	return "jobfeed"
}

// List makes one feed request and returns normalized jobs
func (p *Provider) List(ctx context.Context, params jobdomain.FetchParams) (jobdomain.FetchResult, error) {
	if p == nil || p.client == nil {
		return jobdomain.FetchResult{}, fmt.Errorf("jobfeed provider: client is nil")
	}

	page, err := p.client.ListJobs(ctx, jobfeed.ListParams{
		Limit:   params.Limit,
		Offset:  params.Offset,
		Filters: params.Filters,
	})
	if err != nil {
		return jobdomain.FetchResult{}, classify(err)
	}

	out := make([]domain.JobRecord, 0, len(page.Records))
	for _, raw := range page.Records {
		out = append(out, jobdomain.FromExternal(raw))
	}

	return jobdomain.FetchResult{
		Records: out,
		Total:   page.Total,
		HasMore: params.Limit > 0 && len(out) == params.Limit,
	}, nil
}

// classify maps client errors onto the domain taxonomy
func classify(err error) error {
	if errors.Is(err, jobfeed.ErrMalformedResponse) {
		return fmt.Errorf("%w: %w", domain.ErrDataShape, err)
	}
	return fmt.Errorf("%w: %w", domain.ErrTransport, err)
}

var _ jobdomain.Provider = (*Provider)(nil)
