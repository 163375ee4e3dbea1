package job

import (
	"strings"

	"github.com/honeycarbs/jobboard/internal/domain"
)

// searchable lists the attributes a term is matched against, in order
var searchable = []Attribute{
	AttrTitle,
	AttrCompany,
	AttrDescription,
	AttrLocation,
	AttrCategory,
	AttrTags,
	AttrSkills,
	AttrRequirements,
	AttrResponsibilities,
}

// Search keeps the records where any searchable attribute contains term,
// ignoring case. A blank term returns records unchanged.
func Search(records []domain.JobRecord, term string) []domain.JobRecord {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return records
	}

	out := make([]domain.JobRecord, 0)
	for _, r := range records {
		if matches(r, needle) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r domain.JobRecord, needle string) bool {
	for _, attr := range searchable {
		if candidateContains(r, attr, needle) {
			return true
		}
	}
	return false
}

// candidateContains checks the alias-resolved value of attr. Records hold
// the resolved value already, having passed through the normalizer.
func candidateContains(r domain.JobRecord, attr Attribute, needle string) bool {
	switch attr {
	case AttrTitle:
		return containsFold(r.Title, needle)
	case AttrCompany:
		return containsFold(r.Company, needle)
	case AttrDescription:
		return containsFold(r.Description, needle)
	case AttrLocation:
		return containsFold(r.Location, needle)
	case AttrCategory:
		return containsFold(r.Category, needle)
	case AttrTags:
		return tagsContain(r.Tags, needle)
	case AttrSkills:
		return tagsContain(r.Skills, needle)
	case AttrRequirements:
		return linesContain(r.Requirements, needle)
	case AttrResponsibilities:
		return linesContain(r.Responsibilities, needle)
	}
	return false
}

func tagsContain(tags []domain.Tag, needle string) bool {
	for _, t := range tags {
		if containsFold(t.Label, needle) {
			return true
		}
	}
	return false
}

func linesContain(lines []string, needle string) bool {
	for _, l := range lines {
		if containsFold(l, needle) {
			return true
		}
	}
	return false
}

// needle must already be lowercase
func containsFold(s, needle string) bool {
	return s != "" && strings.Contains(strings.ToLower(s), needle)
}
