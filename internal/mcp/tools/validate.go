package tools

import (
	"strconv"
	"strings"

	"github.com/honeycarbs/jobboard/internal/domain"
)

// Limits bounds pagination and search input accepted by the tools
type Limits struct {
	DefaultLimit   int
	MaxLimit       int
	MaxQueryLength int
}

// DefaultLimits match the server defaults
var DefaultLimits = Limits{
	DefaultLimit:   50,
	MaxLimit:       500,
	MaxQueryLength: 200,
}

func (l Limits) withDefaults() Limits {
	if l.DefaultLimit <= 0 {
		l.DefaultLimit = DefaultLimits.DefaultLimit
	}
	if l.MaxLimit <= 0 {
		l.MaxLimit = DefaultLimits.MaxLimit
	}
	if l.MaxQueryLength <= 0 {
		l.MaxQueryLength = DefaultLimits.MaxQueryLength
	}
	return l
}

// Page resolves optional limit and offset. Absent values take defaults;
// present values must be in range.
func (l Limits) Page(limit, offset *int) (int, int, error) {
	l = l.withDefaults()

	lim, off := l.DefaultLimit, 0
	if limit != nil {
		if *limit < 1 || *limit > l.MaxLimit {
			return 0, 0, &domain.ValidationError{
				Field: "limit",
				Msg:   "must be between 1 and " + strconv.Itoa(l.MaxLimit),
			}
		}
		lim = *limit
	}
	if offset != nil {
		if *offset < 0 {
			return 0, 0, &domain.ValidationError{Field: "offset", Msg: "must be a non-negative integer"}
		}
		off = *offset
	}
	return lim, off, nil
}

// Query trims q and enforces the length bound. Empty is allowed.
func (l Limits) Query(q string) (string, error) {
	l = l.withDefaults()

	q = strings.TrimSpace(q)
	if len([]rune(q)) > l.MaxQueryLength {
		return "", &domain.ValidationError{
			Field: "query",
			Msg:   "must be at most " + strconv.Itoa(l.MaxQueryLength) + " characters",
		}
	}
	return q, nil
}
