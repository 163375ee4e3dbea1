package neo4j

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

	pkgneo4j "github.com/honeycarbs/jobboard/pkg/neo4j"
)

func TestJobRepositoryIntegration(t *testing.T) {
	uri := os.Getenv("NEO4J_URI")
	if uri == "" {
		t.Skip("NEO4J_URI must be set to run this test")
	}

	client, err := pkgneo4j.NewClient(pkgneo4j.Config{
		URI:      uri,
		Username: os.Getenv("NEO4J_USERNAME"),
		Password: os.Getenv("NEO4J_PASSWORD"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close(context.Background()) })

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo := NewJobRepository(client)
	id := "it-" + uuid.NewString()
	title := "Integration Engineer " + id

	saved, err := repo.Insert(ctx, domain.JobRecord{
		ID:         id,
		Title:      title,
		Company:    "Integration Co",
		PostedDate: time.Now().UTC().Truncate(time.Millisecond),
		Tags:       []domain.Tag{{Label: "go"}},
		Skills:     []domain.Tag{{Label: "neo4j"}},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SourcePersistent, saved.Source)

	got, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, title, got.Title)
	assert.Equal(t, "Integration Co", got.Company)
	assert.Equal(t, []domain.Tag{{Label: "neo4j"}}, got.Skills)

	found, err := repo.FindAll(ctx, job.Filter{Title: id})
	require.NoError(t, err)
	require.Len(t, found, 1)

	_, err = repo.FindByID(ctx, "missing-"+id)
	assert.True(t, domain.IsNotFound(err))
}
