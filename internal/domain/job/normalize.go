package job

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/honeycarbs/jobboard/internal/domain"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FromExternal adapts a raw external feed record into a JobRecord.
// Records without any id alias get a generated one.
func FromExternal(raw map[string]any) domain.JobRecord {
	rec := fromRaw(raw, domain.SourceExternal)
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	return rec
}

// FromPersistent adapts a raw record created through the local store path
func FromPersistent(raw map[string]any) domain.JobRecord {
	return fromRaw(raw, domain.SourcePersistent)
}

// Normalize fills defaults on an already typed record so downstream code
// never sees nil lists or a missing source.
func Normalize(rec domain.JobRecord, source domain.Source) domain.JobRecord {
	if rec.Source == "" {
		rec.Source = source
	}
	if rec.Tags == nil {
		rec.Tags = []domain.Tag{}
	}
	if rec.Skills == nil {
		rec.Skills = []domain.Tag{}
	}
	return rec
}

func fromRaw(raw map[string]any, source domain.Source) domain.JobRecord {
	rec := domain.JobRecord{
		ID:               stringAttr(raw, AttrID),
		Title:            stringAttr(raw, AttrTitle),
		Company:          stringAttr(raw, AttrCompany),
		Description:      stringAttr(raw, AttrDescription),
		Location:         stringAttr(raw, AttrLocation),
		Category:         stringAttr(raw, AttrCategory),
		Tags:             tagsAttr(raw, AttrTags),
		Skills:           tagsAttr(raw, AttrSkills),
		Requirements:     linesAttr(raw, AttrRequirements),
		Responsibilities: linesAttr(raw, AttrResponsibilities),
		Source:           source,
	}
	if v, ok := Resolve(raw, AttrPostedDate); ok {
		rec.PostedDate = ParseDate(v)
	}

	for k, v := range raw {
		if _, known := knownKeys[k]; known {
			continue
		}
		if rec.Extra == nil {
			rec.Extra = make(map[string]any)
		}
		rec.Extra[k] = v
	}

	return Normalize(rec, source)
}

// ParseDate converts the date shapes seen in feeds into a UTC time.
// Numbers are epoch milliseconds. Anything unparsable yields the zero time.
func ParseDate(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t.UTC()
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range dateLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts.UTC()
			}
		}
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
			return time.UnixMilli(ms).UTC()
		}
	case json.Number:
		if ms, err := t.Int64(); err == nil {
			return time.UnixMilli(ms).UTC()
		}
		if f, err := t.Float64(); err == nil {
			return fromMillis(f)
		}
	case float64:
		return fromMillis(t)
	case int64:
		return time.UnixMilli(t).UTC()
	case int:
		return time.UnixMilli(int64(t)).UTC()
	}
	return time.Time{}
}

// fromMillis rejects values an int64 cannot hold
func fromMillis(f float64) time.Time {
	if math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return time.Time{}
	}
	return time.UnixMilli(int64(f)).UTC()
}

func stringAttr(raw map[string]any, attr Attribute) string {
	v, ok := Resolve(raw, attr)
	if !ok {
		return ""
	}
	return toString(v)
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case map[string]any:
		return labelOf(t)
	}
	return fmt.Sprint(v)
}

// tagsAttr coerces a missing, singleton or mixed tag field into a list
func tagsAttr(raw map[string]any, attr Attribute) []domain.Tag {
	v, ok := Resolve(raw, attr)
	if !ok {
		return []domain.Tag{}
	}

	var items []any
	switch t := v.(type) {
	case []any:
		items = t
	case []string:
		items = make([]any, len(t))
		for i, s := range t {
			items[i] = s
		}
	default:
		items = []any{t}
	}

	out := make([]domain.Tag, 0, len(items))
	for _, item := range items {
		switch it := item.(type) {
		case nil:
			continue
		case string:
			if it == "" {
				continue
			}
			out = append(out, domain.Tag{Label: it})
		case map[string]any:
			var tag domain.Tag
			tag.Label, _ = it["label"].(string)
			if tag.Label == "" {
				tag.Name, _ = it["name"].(string)
			}
			if val, ok := it["value"]; ok && val != nil {
				tag.Value = toString(val)
			}
			if tag.Label == "" && tag.Name == "" && tag.Value == "" {
				continue
			}
			out = append(out, tag)
		default:
			// numbers and booleans are kept but are not labels
			out = append(out, domain.Tag{Value: toString(it)})
		}
	}
	return out
}

// linesAttr coerces a string or list field into a list of strings
func linesAttr(raw map[string]any, attr Attribute) []string {
	v, ok := Resolve(raw, attr)
	if !ok {
		return nil
	}

	switch t := v.(type) {
	case string:
		return []string{t}
	case []string:
		return append([]string(nil), t...)
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if item == nil {
				continue
			}
			s := toString(item)
			if s == "" {
				continue
			}
			out = append(out, s)
		}
		return out
	}
	return []string{toString(v)}
}

func labelOf(m map[string]any) string {
	for _, key := range []string{"label", "name"} {
		if s, ok := m[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
