package sheets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestA1(t *testing.T) {
	tests := []struct {
		tab, ref, want string
	}{
		{"", "A1", "Sheet1!A1"},
		{"Jobs", "A2", "Jobs!A2"},
		{"Open Roles", "A2:Z", "'Open Roles'!A2:Z"},
		{"Bob's", "", "'Bob''s'"},
		{"jobs_2024", "", "jobs_2024"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, A1(tc.tab, tc.ref))
	}
}

func TestNewClient_RequiresCredentials(t *testing.T) {
	_, err := NewClient(context.Background(), Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credentials")
}

func TestNilClient(t *testing.T) {
	var c *Client
	_, err := c.AppendRows(context.Background(), "id", "Sheet1!A1", nil)
	assert.Error(t, err)
	assert.Error(t, c.Clear(context.Background(), "id", "Sheet1"))
}
