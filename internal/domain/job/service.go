package job

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/pkg/logging"
)

type Service interface {
	GetJobs(ctx context.Context, limit, offset int) (JobsPage, error)
	SearchJobs(ctx context.Context, term string, limit, offset int) (SearchPage, error)
	GetJob(ctx context.Context, id string) (domain.JobRecord, error)
	GetStats(ctx context.Context) (domain.Stats, error)
	AddJob(ctx context.Context, raw map[string]any) (domain.JobRecord, error)

	// RefreshExternal refreshes the snapshot and waits for the outcome
	RefreshExternal(ctx context.Context) error

	// TriggerRefresh starts a refresh in the background and returns at once
	TriggerRefresh()

	ExternalStatus() ExternalState
}

// JobsPage is a page of the merged view
type JobsPage struct {
	Data               []domain.JobRecord    `json:"data"`
	Total              int                   `json:"total"`
	HasMore            bool                  `json:"hasMore"`
	FromCache          bool                  `json:"fromCache"`
	LastExternalUpdate time.Time             `json:"lastExternalUpdate,omitzero"`
	ExternalStatus     domain.SnapshotStatus `json:"externalStatus"`
}

// SearchPage is a page of search results
type SearchPage struct {
	Data    []domain.JobRecord `json:"data"`
	Total   int                `json:"total"`
	HasMore bool               `json:"hasMore"`
	Query   string             `json:"query"`
}

// ExternalState summarizes the snapshot for health reporting
type ExternalState struct {
	Status        domain.SnapshotStatus `json:"status"`
	Records       int                   `json:"records"`
	LastUpdate    time.Time             `json:"lastUpdate,omitzero"`
	LastAttemptAt time.Time             `json:"lastAttemptAt,omitzero"`
	LastError     string                `json:"lastError,omitempty"`
}

// Option configures Service
type Option func(*config)

type config struct {
	repo  Repository
	cache *RefreshCache
	clock func() time.Time
	log   *logging.Logger
}

// WithRepository sets the repository
func WithRepository(repo Repository) Option {
	return func(c *config) {
		c.repo = repo
	}
}

// WithCache sets the external snapshot cache
func WithCache(cache *RefreshCache) Option {
	return func(c *config) {
		c.cache = cache
	}
}

// WithClock sets a custom clock
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// WithLogger sets the logger
func WithLogger(log *logging.Logger) Option {
	return func(c *config) {
		c.log = log
	}
}

// NewService builds Service from options
func NewService(opts ...Option) (Service, error) {
	cfg := &config{
		clock: time.Now,
		log:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.repo == nil {
		return nil, fmt.Errorf("job.Service: repository is required")
	}
	if cfg.cache == nil {
		return nil, fmt.Errorf("job.Service: refresh cache is required")
	}

	return &service{
		repo:   cfg.repo,
		cache:  cfg.cache,
		merger: NewMerger(cfg.repo, cfg.cache),
		clock:  cfg.clock,
		log:    cfg.log.Named("jobs"),
	}, nil
}

// NewServiceWithDeps creates a Service with direct dependencies (Wire-compatible)
func NewServiceWithDeps(repo Repository, cache *RefreshCache, log *logging.Logger) (Service, error) {
	return NewService(WithRepository(repo), WithCache(cache), WithLogger(log))
}

type service struct {
	repo   Repository
	cache  *RefreshCache
	merger *Merger
	clock  func() time.Time
	log    *logging.Logger
}

// GetJobs pages through the merged view
func (s *service) GetJobs(ctx context.Context, limit, offset int) (JobsPage, error) {
	view, err := s.merger.BuildView(ctx)
	if err != nil {
		s.log.Error("build view failed", "err", err)
		return JobsPage{}, err
	}

	page := Paginate(view.Records, limit, offset)
	return JobsPage{
		Data:               page.Data,
		Total:              page.Total,
		HasMore:            page.HasMore,
		FromCache:          view.Snapshot.HasData(),
		LastExternalUpdate: view.Snapshot.FetchedAt,
		ExternalStatus:     view.Snapshot.Status,
	}, nil
}

// SearchJobs filters the merged view by term and pages the result
func (s *service) SearchJobs(ctx context.Context, term string, limit, offset int) (SearchPage, error) {
	view, err := s.merger.BuildView(ctx)
	if err != nil {
		s.log.Error("build view failed", "err", err)
		return SearchPage{}, err
	}

	query := strings.TrimSpace(term)
	matched := Search(view.Records, query)
	page := Paginate(matched, limit, offset)

	s.log.Debug("search completed", "query", query, "matched", len(matched))
	return SearchPage{
		Data:    page.Data,
		Total:   page.Total,
		HasMore: page.HasMore,
		Query:   query,
	}, nil
}

// GetJob loads one stored job
func (s *service) GetJob(ctx context.Context, id string) (domain.JobRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.JobRecord{}, &domain.ValidationError{Field: "id", Msg: "is required"}
	}

	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.JobRecord{}, err
	}
	return Normalize(rec, domain.SourcePersistent), nil
}

// GetStats aggregates the external snapshot. A never-fetched cache gets
// one refresh first.
func (s *service) GetStats(ctx context.Context) (domain.Stats, error) {
	snap := s.cache.Get()
	if snap.Status == domain.StatusNeverFetched {
		if err := s.cache.Refresh(ctx); err != nil {
			return domain.Stats{}, err
		}
		snap = s.cache.Get()
	}

	return ComputeStats(snap.Records, s.clock()), nil
}

// AddJob normalizes raw as a stored job and writes it through
func (s *service) AddJob(ctx context.Context, raw map[string]any) (domain.JobRecord, error) {
	if len(raw) == 0 {
		return domain.JobRecord{}, &domain.ValidationError{Field: "job", Msg: "is empty"}
	}

	rec := FromPersistent(raw)
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.PostedDate.IsZero() {
		rec.PostedDate = s.clock().UTC()
	}

	saved, err := s.repo.Insert(ctx, rec)
	if err != nil {
		s.log.Error("insert job failed", "id", rec.ID, "err", err)
		return domain.JobRecord{}, err
	}

	s.log.Info("job added", "id", saved.ID, "title", saved.Title)
	return Normalize(saved, domain.SourcePersistent), nil
}

func (s *service) RefreshExternal(ctx context.Context) error {
	return s.cache.Refresh(ctx)
}

func (s *service) TriggerRefresh() {
	go func() {
		if err := s.cache.Refresh(context.Background()); err != nil {
			s.log.Warn("manual refresh failed", "err", err)
		}
	}()
}

func (s *service) ExternalStatus() ExternalState {
	snap := s.cache.Get()
	return ExternalState{
		Status:        snap.Status,
		Records:       len(snap.Records),
		LastUpdate:    snap.FetchedAt,
		LastAttemptAt: snap.LastAttemptAt,
		LastError:     snap.LastError,
	}
}
