package job

import (
	"context"
	"fmt"
	"slices"

	"github.com/honeycarbs/jobboard/internal/domain"
)

// SnapshotSource exposes the current external snapshot
type SnapshotSource interface {
	Get() domain.Snapshot
}

// View is the per-request merged projection of stored and external jobs
type View struct {
	Records  []domain.JobRecord
	Snapshot domain.Snapshot
}

// Merger builds views from the store and the refresh cache
type Merger struct {
	repo  Repository
	cache SnapshotSource
}

func NewMerger(repo Repository, cache SnapshotSource) *Merger {
	return &Merger{repo: repo, cache: cache}
}

// BuildView loads every stored job, appends the snapshot and sorts by date.
// A store failure fails the view; the snapshot is never consulted for errors.
func (m *Merger) BuildView(ctx context.Context) (View, error) {
	stored, err := m.repo.FindAll(ctx, Filter{})
	if err != nil {
		if !domain.IsStore(err) {
			err = fmt.Errorf("%w: %v", domain.ErrStore, err)
		}
		return View{}, fmt.Errorf("merge: load stored jobs: %w", err)
	}

	snap := m.cache.Get()
	return View{
		Records:  MergeRecords(stored, snap.Records),
		Snapshot: snap,
	}, nil
}

// MergeRecords concatenates persistent then external records, normalizes
// each and sorts newest first. Undated records go last; equal keys keep
// input order, so persistent records precede external ones.
func MergeRecords(persistent, external []domain.JobRecord) []domain.JobRecord {
	out := make([]domain.JobRecord, 0, len(persistent)+len(external))
	for _, r := range persistent {
		out = append(out, Normalize(r, domain.SourcePersistent))
	}
	for _, r := range external {
		out = append(out, Normalize(r, domain.SourceExternal))
	}

	slices.SortStableFunc(out, comparePostedDesc)
	return out
}

func comparePostedDesc(a, b domain.JobRecord) int {
	az, bz := a.PostedDate.IsZero(), b.PostedDate.IsZero()
	switch {
	case az && bz:
		return 0
	case az:
		return 1
	case bz:
		return -1
	}
	return b.PostedDate.Compare(a.PostedDate)
}
