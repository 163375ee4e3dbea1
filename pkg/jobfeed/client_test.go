package jobfeed

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{
		BaseURL:    srv.URL,
		Endpoint:   "/jobs/public",
		Token:      token,
		HTTPClient: srv.Client(),
	})
	require.NoError(t, err)
	return c
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient(Config{})
	require.Error(t, err)
}

func TestListJobs_RequestShape(t *testing.T) {
	var got *http.Request
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r
		_, _ = w.Write([]byte(`[]`))
	}, "secret")

	_, err := c.ListJobs(context.Background(), ListParams{
		Limit:   25,
		Offset:  50,
		Filters: map[string]string{"job_position": "engineer", "empty": ""},
	})
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "/jobs/public", got.URL.Path)
	assert.Equal(t, "25", got.URL.Query().Get("limit"))
	assert.Equal(t, "50", got.URL.Query().Get("offset"))
	assert.Equal(t, "engineer", got.URL.Query().Get("job_position"))
	assert.False(t, got.URL.Query().Has("empty"))
	assert.Equal(t, "Bearer secret", got.Header.Get("Authorization"))
	assert.Equal(t, "application/json", got.Header.Get("Accept"))
	assert.Equal(t, defaultUserAgent, got.Header.Get("User-Agent"))
}

func TestListJobs_TokenWithSchemeSentVerbatim(t *testing.T) {
	var auth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}, "Token abc")

	_, err := c.ListJobs(context.Background(), ListParams{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, "Token abc", auth)
}

func TestListJobs_NoTokenNoHeader(t *testing.T) {
	var present bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, present = r.Header["Authorization"]
		_, _ = w.Write([]byte(`[]`))
	}, "")

	_, err := c.ListJobs(context.Background(), ListParams{Limit: 1})
	require.NoError(t, err)
	assert.False(t, present)
}

func TestListJobs_BodyShapes(t *testing.T) {
	t.Run("BareArray", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`[{"id":"1","title":"Go dev"},{"id":"2","position":"SRE"}]`))
		}, "")

		page, err := c.ListJobs(context.Background(), ListParams{Limit: 10})
		require.NoError(t, err)
		require.Len(t, page.Records, 2)
		assert.Equal(t, 2, page.Total)
		assert.Equal(t, "Go dev", page.Records[0]["title"])
		assert.Equal(t, "SRE", page.Records[1]["position"])
	})

	t.Run("DataEnvelope", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"data":[{"id":"1","created_at":1717200000000}],"meta":{}}`))
		}, "")

		page, err := c.ListJobs(context.Background(), ListParams{Limit: 10})
		require.NoError(t, err)
		require.Len(t, page.Records, 1)
		assert.Equal(t, json.Number("1717200000000"), page.Records[0]["created_at"])
	})

	t.Run("TotalHeader", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("X-Total-Count", "120")
			_, _ = w.Write([]byte(`[{"id":"1"}]`))
		}, "")

		page, err := c.ListJobs(context.Background(), ListParams{Limit: 1})
		require.NoError(t, err)
		assert.Equal(t, 120, page.Total)
	})
}

func TestListJobs_MalformedBodies(t *testing.T) {
	bodies := map[string]string{
		"Empty":         ``,
		"Scalar":        `"nope"`,
		"MissingData":   `{"items":[]}`,
		"NullData":      `{"data":null}`,
		"DataNotArray":  `{"data":{"id":1}}`,
		"NonObjectItem": `[1,2]`,
		"NullItem":      `[null]`,
		"Truncated":     `[{"id":`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(body))
			}, "")

			_, err := c.ListJobs(context.Background(), ListParams{Limit: 1})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedResponse), "got %v", err)
		})
	}
}

func TestListJobs_StatusError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}, "")

	_, err := c.ListJobs(context.Background(), ListParams{Limit: 1})
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.Code)
	assert.Contains(t, statusErr.Error(), "upstream down")
	assert.False(t, errors.Is(err, ErrMalformedResponse))
}

func TestListJobs_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	c, err := NewClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = c.ListJobs(context.Background(), ListParams{Limit: 1})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrMalformedResponse))
}
