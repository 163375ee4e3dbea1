package job

import (
	"time"

	"github.com/honeycarbs/jobboard/internal/domain"
)

// ComputeStats counts records by exact company, location and category.
// Empty keys are not counted.
func ComputeStats(records []domain.JobRecord, now time.Time) domain.Stats {
	stats := domain.Stats{
		Total:       len(records),
		ByCompany:   make(map[string]int),
		ByLocation:  make(map[string]int),
		ByCategory:  make(map[string]int),
		LastUpdated: now,
	}

	for _, r := range records {
		if r.Company != "" {
			stats.ByCompany[r.Company]++
		}
		if r.Location != "" {
			stats.ByLocation[r.Location]++
		}
		if r.Category != "" {
			stats.ByCategory[r.Category]++
		}
	}

	return stats
}
