package job

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/honeycarbs/jobboard/internal/domain"
)

func searchFixture() []domain.JobRecord {
	return []domain.JobRecord{
		FromExternal(map[string]any{"id": "1", "position": "Senior Software Engineer", "company": "Acme"}),
		FromPersistent(map[string]any{"id": "2", "title": "Designer", "city": "Lisbon"}),
		FromExternal(map[string]any{"id": "3", "title": "Analyst", "tags": []any{map[string]any{"label": "Data Engineering"}}}),
		FromExternal(map[string]any{"id": "4", "title": "Ops", "skills": []any{"kubernetes"}, "job_requirements": []any{"Linux"}}),
		FromPersistent(map[string]any{"id": "5", "title": "Writer", "job_responsibilities": "Edit engineering docs"}),
		FromExternal(map[string]any{"id": "6", "title": "Chef", "job_category": "Hospitality", "job_description": "Kitchen lead"}),
		FromExternal(map[string]any{"id": "7", "title": "Backend", "tags": []any{map[string]any{"name": "Golang"}, json.Number("2024")}}),
	}
}

func TestSearch_Identity(t *testing.T) {
	view := searchFixture()

	assert.Equal(t, view, Search(view, ""))
	assert.Equal(t, view, Search(view, "   "))
}

func TestSearch_CaseInsensitive(t *testing.T) {
	view := searchFixture()

	upper := Search(view, "ENGINEER")
	lower := Search(view, "engineer")
	assert.Equal(t, lower, upper)
	assert.Equal(t, []string{"1", "3", "5"}, ids(lower))
}

func TestSearch_Attributes(t *testing.T) {
	view := searchFixture()

	cases := map[string][]string{
		"acme":        {"1"},
		"lisbon":      {"2"},
		"data eng":    {"3"},
		"KUBERNETES":  {"4"},
		"linux":       {"4"},
		"hospitality": {"6"},
		"kitchen":     {"6"},
		" designer ":  {"2"},
		"nothing":     {},
		"golang":      {},
		"2024":        {},
	}

	for term, want := range cases {
		t.Run(term, func(t *testing.T) {
			assert.Equal(t, want, ids(Search(view, term)))
		})
	}
}

func TestSearch_DoesNotMutateView(t *testing.T) {
	view := searchFixture()
	before := ids(view)

	_ = Search(view, "engineer")
	_ = Search(view, "ops")

	assert.Equal(t, before, ids(view))
}
