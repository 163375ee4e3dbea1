package domain

import (
	"time"
)

// Source tells where a job record came from
type Source string

const (
	SourcePersistent Source = "persistent"
	SourceExternal   Source = "external"
)

// Tag is a tag or skill entry. Plain string tags keep the string in Label.
type Tag struct {
	Label string `json:"label"`
	Value string `json:"value,omitempty"`
	// Name is shown for object tags carrying no label; search ignores it
	Name string `json:"name,omitempty"`
}

// JobRecord is the normalized job posting served to callers
type JobRecord struct {
	ID               string         `json:"id"`
	Title            string         `json:"title"`
	Company          string         `json:"company"`
	Description      string         `json:"description"`
	Location         string         `json:"location"`
	Category         string         `json:"category,omitempty"`
	PostedDate       time.Time      `json:"postedDate,omitzero"`
	Tags             []Tag          `json:"tags"`
	Skills           []Tag          `json:"skills"`
	Requirements     []string       `json:"requirements,omitempty"`
	Responsibilities []string       `json:"responsibilities,omitempty"`
	Source           Source         `json:"source"`
	Extra            map[string]any `json:"extra,omitempty"`
}

// SnapshotStatus describes the health of the external snapshot
type SnapshotStatus string

const (
	StatusNeverFetched SnapshotStatus = "never-fetched"
	StatusFresh        SnapshotStatus = "fresh"
	StatusStale        SnapshotStatus = "stale"
)

// Snapshot is the last successfully captured copy of the external feed
type Snapshot struct {
	Records       []JobRecord
	FetchedAt     time.Time // zero until the first successful refresh
	Status        SnapshotStatus
	LastError     string
	LastAttemptAt time.Time
}

// HasData reports whether a refresh ever succeeded
func (s Snapshot) HasData() bool {
	return !s.FetchedAt.IsZero()
}

// Stats groups jobs by company, location and category
type Stats struct {
	Total       int            `json:"total"`
	ByCompany   map[string]int `json:"byCompany"`
	ByLocation  map[string]int `json:"byLocation"`
	ByCategory  map[string]int `json:"byCategory"`
	LastUpdated time.Time      `json:"lastUpdated"`
}
