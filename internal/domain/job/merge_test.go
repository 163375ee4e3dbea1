package job

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobboard/internal/domain"
)

type staticSnapshot domain.Snapshot

func (s staticSnapshot) Get() domain.Snapshot { return domain.Snapshot(s) }

func TestBuildView_NewestFirst(t *testing.T) {
	repo := &memRepo{records: []domain.JobRecord{{ID: "P", PostedDate: date("2024-01-01")}}}
	snap := staticSnapshot{
		Records: []domain.JobRecord{{ID: "E", PostedDate: date("2024-06-01")}},
		Status:  domain.StatusFresh,
	}

	view, err := NewMerger(repo, snap).BuildView(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"E", "P"}, ids(view.Records))
	assert.Equal(t, domain.SourceExternal, view.Records[0].Source)
	assert.Equal(t, domain.SourcePersistent, view.Records[1].Source)
	assert.Equal(t, domain.StatusFresh, view.Snapshot.Status)
}

func TestMergeRecords_Ordering(t *testing.T) {
	persistent := []domain.JobRecord{
		{ID: "p-undated"},
		{ID: "p-jan", PostedDate: date("2024-01-01")},
		{ID: "p-mar", PostedDate: date("2024-03-01")},
	}
	external := []domain.JobRecord{
		{ID: "e-mar", PostedDate: date("2024-03-01")},
		{ID: "e-undated"},
		{ID: "e-jun", PostedDate: date("2024-06-01")},
	}

	merged := MergeRecords(persistent, external)

	assert.Equal(t, []string{"e-jun", "p-mar", "e-mar", "p-jan", "p-undated", "e-undated"}, ids(merged))
	for _, r := range merged {
		assert.NotNil(t, r.Tags)
		assert.NotNil(t, r.Skills)
	}
}

func TestMergeRecords_Deterministic(t *testing.T) {
	persistent := []domain.JobRecord{{ID: "a"}, {ID: "b"}}
	external := []domain.JobRecord{{ID: "c"}, {ID: "d"}}

	first := MergeRecords(persistent, external)
	second := MergeRecords(persistent, external)
	assert.Equal(t, ids(first), ids(second))
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(first))
}

func TestBuildView_StoreFailure(t *testing.T) {
	repo := &memRepo{err: errors.New("connection refused")}
	snap := staticSnapshot{Records: []domain.JobRecord{{ID: "E"}}, Status: domain.StatusFresh}

	_, err := NewMerger(repo, snap).BuildView(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsStore(err))
}
