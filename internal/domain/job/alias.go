package job

// Attribute is a logical job attribute that may arrive under several source keys
type Attribute string

const (
	AttrID               Attribute = "id"
	AttrTitle            Attribute = "title"
	AttrCompany          Attribute = "company"
	AttrDescription      Attribute = "description"
	AttrLocation         Attribute = "location"
	AttrCategory         Attribute = "category"
	AttrPostedDate       Attribute = "postedDate"
	AttrTags             Attribute = "tags"
	AttrSkills           Attribute = "skills"
	AttrRequirements     Attribute = "requirements"
	AttrResponsibilities Attribute = "responsibilities"
)

// aliases maps each attribute to the source keys consulted in order.
// The first non-empty value wins.
var aliases = map[Attribute][]string{
	AttrID:               {"id", "job_id", "_id"},
	AttrTitle:            {"title", "position", "job_title"},
	AttrCompany:          {"company", "company_name"},
	AttrDescription:      {"description", "job_description"},
	AttrLocation:         {"location", "job_location", "city"},
	AttrCategory:         {"category", "job_category"},
	AttrPostedDate:       {"postedDate", "posted_date", "created_at", "createdAt"},
	AttrTags:             {"tags"},
	AttrSkills:           {"skills"},
	AttrRequirements:     {"requirements", "job_requirements"},
	AttrResponsibilities: {"responsibilities", "job_responsibilities"},
}

// knownKeys is every source key claimed by some attribute
var knownKeys = func() map[string]struct{} {
	out := make(map[string]struct{})
	for _, keys := range aliases {
		for _, k := range keys {
			out[k] = struct{}{}
		}
	}
	// source is derived from the adapter, never read from the payload
	out["source"] = struct{}{}
	return out
}()

// Aliases returns the ordered source keys for attr
func Aliases(attr Attribute) []string {
	keys := aliases[attr]
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

// Resolve walks the alias chain of attr and returns the first non-empty value
func Resolve(raw map[string]any, attr Attribute) (any, bool) {
	for _, key := range aliases[attr] {
		v, ok := raw[key]
		if !ok || isEmpty(v) {
			continue
		}
		return v, true
	}
	return nil, false
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case []string:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	}
	return false
}
