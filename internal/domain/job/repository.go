package job

import (
	"context"

	"github.com/honeycarbs/jobboard/internal/domain"
)

// Filter narrows FindAll. Empty fields match everything.
type Filter struct {
	// Title is a case-insensitive substring of the job title
	Title string
}

// Repository persists and loads locally created jobs
type Repository interface {
	// FindAll returns every stored job matching filter
	FindAll(ctx context.Context, filter Filter) ([]domain.JobRecord, error)

	// Insert stores rec and returns it as persisted
	Insert(ctx context.Context, rec domain.JobRecord) (domain.JobRecord, error)

	// FindByID returns domain.ErrJobNotFound when no job has the id
	FindByID(ctx context.Context, id string) (domain.JobRecord, error)
}
