package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/internal/domain/job"
)

// Ensure JobRepository implements job.Repository
var _ job.Repository = (*JobRepository)(nil)

// JobRepository keeps jobs in process memory in insertion order.
// Used when no database is configured and in tests.
type JobRepository struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]domain.JobRecord
}

func NewJobRepository() *JobRepository {
	return &JobRepository{byID: make(map[string]domain.JobRecord)}
}

func (r *JobRepository) FindAll(_ context.Context, filter job.Filter) ([]domain.JobRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(filter.Title))
	out := make([]domain.JobRecord, 0, len(r.order))
	for _, id := range r.order {
		rec := r.byID[id]
		if needle != "" && !strings.Contains(strings.ToLower(rec.Title), needle) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// Insert stores rec, replacing any job with the same id in place
func (r *JobRepository) Insert(_ context.Context, rec domain.JobRecord) (domain.JobRecord, error) {
	if rec.ID == "" {
		return domain.JobRecord{}, fmt.Errorf("memory: insert job: %w: id is required", domain.ErrStore)
	}
	rec = job.Normalize(rec, domain.SourcePersistent)
	rec.Source = domain.SourcePersistent

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[rec.ID]; !exists {
		r.order = append(r.order, rec.ID)
	}
	r.byID[rec.ID] = rec
	return rec, nil
}

func (r *JobRepository) FindByID(_ context.Context, id string) (domain.JobRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return domain.JobRecord{}, fmt.Errorf("memory: job %q: %w", id, domain.ErrJobNotFound)
	}
	return rec, nil
}
