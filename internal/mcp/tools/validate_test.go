package tools

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobboard/internal/domain"
)

func intPtr(n int) *int { return &n }

func TestLimitsPage(t *testing.T) {
	l := Limits{DefaultLimit: 50, MaxLimit: 500}

	limit, offset, err := l.Page(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 50, limit)
	assert.Equal(t, 0, offset)

	limit, offset, err = l.Page(intPtr(500), intPtr(20))
	require.NoError(t, err)
	assert.Equal(t, 500, limit)
	assert.Equal(t, 20, offset)

	cases := map[string]struct {
		limit, offset *int
		field         string
	}{
		"ZeroLimit":      {intPtr(0), nil, "limit"},
		"NegativeLimit":  {intPtr(-1), nil, "limit"},
		"OverMax":        {intPtr(501), nil, "limit"},
		"NegativeOffset": {nil, intPtr(-5), "offset"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := l.Page(tc.limit, tc.offset)
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestLimitsQuery(t *testing.T) {
	l := Limits{MaxQueryLength: 10}

	q, err := l.Query("  go dev  ")
	require.NoError(t, err)
	assert.Equal(t, "go dev", q)

	q, err = l.Query("   ")
	require.NoError(t, err)
	assert.Empty(t, q)

	_, err = l.Query(strings.Repeat("x", 11))
	assert.True(t, domain.IsValidation(err))

	_, err = l.Query(strings.Repeat("é", 10))
	assert.NoError(t, err)
}

func TestLimitsZeroValueUsesDefaults(t *testing.T) {
	limit, _, err := Limits{}.Page(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultLimits.DefaultLimit, limit)
}
