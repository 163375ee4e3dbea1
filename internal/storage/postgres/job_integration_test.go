package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/internal/domain/job"
	pgpool "github.com/honeycarbs/jobboard/pkg/postgres"
)

func TestJobRepositoryIntegration(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL must be set to run this test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgpool.NewPool(ctx, pgpool.Config{URL: url})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	repo := NewJobRepository(pool)
	require.NoError(t, repo.EnsureSchema(ctx))

	id := "it-" + uuid.NewString()
	_, err = repo.Insert(ctx, domain.JobRecord{ID: id, Title: "Integration " + id, Company: "Acme"})
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Company)

	found, err := repo.FindAll(ctx, job.Filter{Title: id})
	require.NoError(t, err)
	require.Len(t, found, 1)
}
