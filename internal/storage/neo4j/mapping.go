package neo4j

import (
	"encoding/json"
	"slices"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/honeycarbs/jobboard/internal/domain"
)

// jobParams flattens a record into Cypher parameters. Tags and extra
// fields have no native graph shape and are kept as JSON strings.
func jobParams(rec domain.JobRecord) (map[string]any, error) {
	tags, err := json.Marshal(nonNilTags(rec.Tags))
	if err != nil {
		return nil, err
	}

	var extra any
	if len(rec.Extra) > 0 {
		b, err := json.Marshal(rec.Extra)
		if err != nil {
			return nil, err
		}
		extra = string(b)
	}

	var postedAt any
	if !rec.PostedDate.IsZero() {
		postedAt = rec.PostedDate.UnixMilli()
	}

	skills := make([]map[string]any, 0, len(rec.Skills))
	for i, s := range rec.Skills {
		if s.Label == "" {
			continue
		}
		skills = append(skills, map[string]any{
			"label": s.Label,
			"value": s.Value,
			"pos":   int64(i),
		})
	}

	return map[string]any{
		"id":               rec.ID,
		"title":            rec.Title,
		"company":          rec.Company,
		"description":      rec.Description,
		"location":         rec.Location,
		"category":         rec.Category,
		"postedAt":         postedAt,
		"tags":             string(tags),
		"skills":           skills,
		"requirements":     nonNilStrings(rec.Requirements),
		"responsibilities": nonNilStrings(rec.Responsibilities),
		"extra":            extra,
	}, nil
}

// recordFromNode rebuilds a record from a Job node, its company name and
// the collected skill maps
func recordFromNode(props map[string]any, company string, skills []any) domain.JobRecord {
	rec := domain.JobRecord{
		ID:               stringProp(props, "id"),
		Title:            stringProp(props, "title"),
		Company:          company,
		Description:      stringProp(props, "description"),
		Location:         stringProp(props, "location"),
		Category:         stringProp(props, "category"),
		PostedDate:       timeProp(props, "postedAt"),
		Tags:             []domain.Tag{},
		Skills:           []domain.Tag{},
		Requirements:     stringsProp(props, "requirements"),
		Responsibilities: stringsProp(props, "responsibilities"),
		Source:           domain.SourcePersistent,
	}

	if s := stringProp(props, "tags"); s != "" {
		var tags []domain.Tag
		if err := json.Unmarshal([]byte(s), &tags); err == nil && tags != nil {
			rec.Tags = tags
		}
	}
	if s := stringProp(props, "extra"); s != "" {
		var extra map[string]any
		if err := json.Unmarshal([]byte(s), &extra); err == nil && len(extra) > 0 {
			rec.Extra = extra
		}
	}

	type positioned struct {
		pos int64
		tag domain.Tag
	}
	ordered := make([]positioned, 0, len(skills))
	for _, v := range skills {
		m, ok := v.(map[string]any)
		if !ok {
			continue
		}
		p := positioned{tag: domain.Tag{Label: stringProp(m, "label"), Value: stringProp(m, "value")}}
		p.pos, _ = m["pos"].(int64)
		ordered = append(ordered, p)
	}
	slices.SortStableFunc(ordered, func(a, b positioned) int {
		switch {
		case a.pos < b.pos:
			return -1
		case a.pos > b.pos:
			return 1
		}
		return 0
	})
	for _, p := range ordered {
		rec.Skills = append(rec.Skills, p.tag)
	}

	return rec
}

func stringProp(props map[string]any, key string) string {
	s, _ := props[key].(string)
	return s
}

func stringsProp(props map[string]any, key string) []string {
	list, ok := props[key].([]any)
	if !ok || len(list) == 0 {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, v := range list {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func timeProp(props map[string]any, key string) time.Time {
	switch v := props[key].(type) {
	case time.Time:
		return v.UTC()
	case neo4j.LocalDateTime:
		return v.Time().UTC()
	case neo4j.Date:
		return v.Time().UTC()
	}
	return time.Time{}
}

func nonNilTags(tags []domain.Tag) []domain.Tag {
	if tags == nil {
		return []domain.Tag{}
	}
	return tags
}

func nonNilStrings(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
