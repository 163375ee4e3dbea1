package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobboard/internal/config"
	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/internal/domain/job"
	"github.com/honeycarbs/jobboard/internal/mcp/tools"
	"github.com/honeycarbs/jobboard/pkg/logging"
)

// Server wraps an MCP SDK server with an HTTP listener
type Server struct {
	logger *logging.Logger
	config config.Config
	status func() job.ExternalState

	srv     *http.Server
	started atomic.Bool
}

// NewServer constructs the MCP HTTP server and registers every configured tool
func NewServer(log *logging.Logger, cfg config.Config, res *Resources) *Server {
	impl := &sdkmcp.Implementation{
		Name:    "jobboard",
		Version: "0.1.0",
	}
	mcpServer := sdkmcp.NewServer(impl, nil)

	limits := tools.Limits{
		DefaultLimit:   cfg.Pagination.DefaultLimit,
		MaxLimit:       cfg.Pagination.MaxLimit,
		MaxQueryLength: cfg.Pagination.MaxQueryLength,
	}
	tools.Register(mcpServer, log,
		tools.WithJobTools(res.JobService, limits),
		tools.WithSheetsExport(res.SheetsClient, res.JobService, limits),
	)

	s := &Server{
		logger: log.Named("http"),
		config: cfg,
	}
	if res.JobService != nil {
		s.status = res.JobService.ExternalStatus
	}

	handler := sdkmcp.NewStreamableHTTPHandler(func(*http.Request) *sdkmcp.Server {
		return mcpServer
	}, nil)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Handle("/mcp/stream", handler)
	r.Get("/healthz", s.health)

	s.srv = &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler exposes the router, mostly for tests
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Run starts the HTTP server and blocks until shutdown
func (s *Server) Run() error {
	if !s.started.CompareAndSwap(false, true) {
		return nil
	}

	s.logger.Info("MCP HTTP server listening", "addr", s.srv.Addr)

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutdown requested for MCP HTTP server")
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Warn("MCP HTTP server shutdown with error", "err", err)
		return err
	}

	s.logger.Info("MCP HTTP server shutdown complete")
	return nil
}

type healthResponse struct {
	Status    string             `json:"status"`
	Timestamp time.Time          `json:"timestamp"`
	External  *job.ExternalState `json:"external,omitempty"`
}

// health reports degraded until the external snapshot has been fetched
// successfully and while it is being served stale.
func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	resp := healthResponse{Status: "healthy", Timestamp: time.Now().UTC()}
	code := http.StatusOK

	if s.status != nil {
		state := s.status()
		resp.External = &state
		if state.Status != domain.StatusFresh {
			resp.Status = "degraded"
			code = http.StatusServiceUnavailable
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Warn("write health response", "err", err)
	}
}
