package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobboard/internal/config"
	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/internal/domain/job"
	"github.com/honeycarbs/jobboard/pkg/logging"
)

type statusService struct {
	job.Service
	state job.ExternalState
}

func (s statusService) ExternalStatus() job.ExternalState { return s.state }

func testConfig() config.Config {
	var cfg config.Config
	cfg.Host = "127.0.0.1"
	cfg.Port = "0"
	cfg.Pagination.DefaultLimit = 50
	cfg.Pagination.MaxLimit = 500
	cfg.Pagination.MaxQueryLength = 200
	return cfg
}

func getHealth(t *testing.T, srv *Server) (int, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHealth(t *testing.T) {
	tests := map[string]struct {
		status domain.SnapshotStatus
		code   int
		want   string
	}{
		"Fresh":        {domain.StatusFresh, http.StatusOK, "healthy"},
		"Stale":        {domain.StatusStale, http.StatusServiceUnavailable, "degraded"},
		"NeverFetched": {domain.StatusNeverFetched, http.StatusServiceUnavailable, "degraded"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			svc := statusService{state: job.ExternalState{Status: tc.status, Records: 3}}
			srv := NewServer(logging.NewNop(), testConfig(), &Resources{JobService: svc})

			code, body := getHealth(t, srv)
			assert.Equal(t, tc.code, code)
			assert.Equal(t, tc.want, body["status"])

			external, ok := body["external"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, string(tc.status), external["status"])
			assert.EqualValues(t, 3, external["records"])
		})
	}
}

func TestHealth_NoService(t *testing.T) {
	srv := NewServer(logging.NewNop(), testConfig(), &Resources{})

	code, body := getHealth(t, srv)
	assert.Equal(t, http.StatusOK, code)
	assert.NotContains(t, body, "external")
}

func TestServer_RunAfterShutdown(t *testing.T) {
	srv := NewServer(logging.NewNop(), testConfig(), &Resources{})
	require.NoError(t, srv.Shutdown(context.Background()))
	assert.NoError(t, srv.Run())
}
