package job

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/honeycarbs/jobboard/internal/domain"
)

type stubProvider struct {
	mu      sync.Mutex
	calls   int
	results []stubResult
	block   chan struct{}
}

type stubResult struct {
	res FetchResult
	err error
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) List(_ context.Context, _ FetchParams) (FetchResult, error) {
	if p.block != nil {
		<-p.block
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	i := p.calls
	p.calls++
	if len(p.results) == 0 {
		return FetchResult{}, nil
	}
	if i >= len(p.results) {
		i = len(p.results) - 1
	}
	return p.results[i].res, p.results[i].err
}

func (p *stubProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// scriptedFetcher returns queued outcomes, repeating the last one
type scriptedFetcher struct {
	mu       sync.Mutex
	calls    int
	outcomes []stubResult
}

func (f *scriptedFetcher) Fetch(context.Context, FetchParams) (FetchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	i := min(f.calls, len(f.outcomes)-1)
	f.calls++
	return f.outcomes[i].res, f.outcomes[i].err
}

func ok(records ...domain.JobRecord) stubResult {
	return stubResult{res: FetchResult{Records: records, Total: len(records)}}
}

func failWith(err error) stubResult {
	return stubResult{err: err}
}

type memRepo struct {
	mu      sync.Mutex
	records []domain.JobRecord
	err     error
}

func (r *memRepo) FindAll(_ context.Context, filter Filter) ([]domain.JobRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return nil, r.err
	}
	out := make([]domain.JobRecord, 0, len(r.records))
	for _, rec := range r.records {
		if filter.Title != "" && !strings.Contains(strings.ToLower(rec.Title), strings.ToLower(filter.Title)) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *memRepo) Insert(_ context.Context, rec domain.JobRecord) (domain.JobRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return domain.JobRecord{}, r.err
	}
	r.records = append(r.records, rec)
	return rec, nil
}

func (r *memRepo) FindByID(_ context.Context, id string) (domain.JobRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return domain.JobRecord{}, r.err
	}
	for _, rec := range r.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return domain.JobRecord{}, domain.ErrJobNotFound
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func ids(records []domain.JobRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}
