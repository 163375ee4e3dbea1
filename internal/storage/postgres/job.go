package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/internal/domain/job"
)

// Ensure JobRepository implements job.Repository
var _ job.Repository = (*JobRepository)(nil)

// querier is the subset of *pgxpool.Pool the repository uses
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const schema = `
CREATE TABLE IF NOT EXISTS job_postings (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL DEFAULT '',
	posted_at   TIMESTAMPTZ,
	payload     JSONB NOT NULL,
	inserted_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// JobRepository implements job.Repository on a job_postings table.
// The full record lives in a jsonb payload; title and posted_at are
// copied out for filtering.
type JobRepository struct {
	db querier
}

// NewJobRepository creates a JobRepository over a pool
func NewJobRepository(db querier) *JobRepository {
	return &JobRepository{db: db}
}

// EnsureSchema creates the job_postings table if it is missing
func (r *JobRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("postgres: create job_postings: %w", err)
	}
	return nil
}

// FindAll loads stored jobs, optionally narrowed to a title substring
func (r *JobRepository) FindAll(ctx context.Context, filter job.Filter) ([]domain.JobRecord, error) {
	rows, err := r.db.Query(ctx,
		`SELECT payload
		 FROM job_postings
		 WHERE $1 = '' OR strpos(lower(title), lower($1)) > 0
		 ORDER BY inserted_at, id`,
		strings.TrimSpace(filter.Title),
	)
	if err != nil {
		return nil, fmt.Errorf("postgres: query job_postings: %w: %v", domain.ErrStore, err)
	}
	defer rows.Close()

	jobs := make([]domain.JobRecord, 0)
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("postgres: scan: %w: %v", domain.ErrStore, err)
		}
		rec, err := decodePayload(payload)
		if err != nil {
			return nil, fmt.Errorf("postgres: decode payload: %w: %v", domain.ErrStore, err)
		}
		jobs = append(jobs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: rows: %w: %v", domain.ErrStore, err)
	}

	return jobs, nil
}

// FindByID loads a single job by id
func (r *JobRepository) FindByID(ctx context.Context, id string) (domain.JobRecord, error) {
	var payload []byte
	err := r.db.QueryRow(ctx, `SELECT payload FROM job_postings WHERE id = $1`, id).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.JobRecord{}, fmt.Errorf("postgres: job %q: %w", id, domain.ErrJobNotFound)
	}
	if err != nil {
		return domain.JobRecord{}, fmt.Errorf("postgres: find job %q: %w: %v", id, domain.ErrStore, err)
	}

	rec, err := decodePayload(payload)
	if err != nil {
		return domain.JobRecord{}, fmt.Errorf("postgres: decode payload: %w: %v", domain.ErrStore, err)
	}
	return rec, nil
}

// Insert upserts the job by id
func (r *JobRepository) Insert(ctx context.Context, rec domain.JobRecord) (domain.JobRecord, error) {
	rec.Source = domain.SourcePersistent

	payload, err := json.Marshal(rec)
	if err != nil {
		return domain.JobRecord{}, fmt.Errorf("postgres: encode job %q: %w: %v", rec.ID, domain.ErrStore, err)
	}

	var postedAt *time.Time
	if !rec.PostedDate.IsZero() {
		t := rec.PostedDate
		postedAt = &t
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO job_postings (id, title, posted_at, payload)
		 VALUES ($1, $2, $3, $4::jsonb)
		 ON CONFLICT (id) DO UPDATE
		 SET title = EXCLUDED.title, posted_at = EXCLUDED.posted_at, payload = EXCLUDED.payload`,
		rec.ID, rec.Title, postedAt, string(payload),
	)
	if err != nil {
		return domain.JobRecord{}, fmt.Errorf("postgres: insert job %q: %w: %v", rec.ID, domain.ErrStore, err)
	}

	return rec, nil
}

func decodePayload(payload []byte) (domain.JobRecord, error) {
	var rec domain.JobRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return domain.JobRecord{}, err
	}
	rec.Source = domain.SourcePersistent
	return job.Normalize(rec, domain.SourcePersistent), nil
}
