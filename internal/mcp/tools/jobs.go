package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobboard/internal/domain/job"
	"github.com/honeycarbs/jobboard/pkg/logging"
)

// JobListParams defines the arguments for the job_list tool
type JobListParams struct {
	Limit  *int `json:"limit,omitempty" jsonschema:"Page size, 1 to the configured maximum (default 50)"`
	Offset *int `json:"offset,omitempty" jsonschema:"Number of jobs to skip (default 0)"`
}

// JobSearchParams defines the arguments for the job_search tool
type JobSearchParams struct {
	Query  string `json:"query" jsonschema:"Case-insensitive text matched against title, company, description, location, category, tags and skills"`
	Limit  *int   `json:"limit,omitempty" jsonschema:"Page size (default 50)"`
	Offset *int   `json:"offset,omitempty" jsonschema:"Number of matches to skip (default 0)"`
}

// JobGetParams defines the arguments for the job_get tool
type JobGetParams struct {
	ID string `json:"id" jsonschema:"Identifier of a locally created job"`
}

// JobAddParams defines the arguments for the job_add tool
type JobAddParams struct {
	Job map[string]any `json:"job" jsonschema:"Job fields, e.g. title, company, description, location, tags"`
}

// JobRefreshParams defines the arguments for the job_refresh tool
type JobRefreshParams struct {
	Wait bool `json:"wait,omitempty" jsonschema:"Block until the refresh finishes instead of running it in the background"`
}

// JobStatsParams defines the arguments for the job_stats tool
type JobStatsParams struct{}

type jobTools struct {
	service job.Service
	limits  Limits
	logger  *logging.Logger
}

// WithJobTools registers job_list, job_search, job_get, job_add, job_refresh and job_stats
func WithJobTools(service job.Service, limits Limits) Option {
	return func(reg *registry) {
		if service == nil {
			reg.logger.Warn("job service not configured, job tools skipped")
			return
		}
		t := &jobTools{service: service, limits: limits.withDefaults(), logger: reg.logger}

		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "job_list",
			Description: "List stored and external job postings, newest first, with pagination and cache status",
		}, t.list)
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "job_search",
			Description: "Search stored and external job postings by free text",
		}, t.search)
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "job_get",
			Description: "Fetch one locally created job posting by id",
		}, t.get)
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "job_add",
			Description: "Create a job posting in the local store; it is visible immediately",
		}, t.add)
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "job_refresh",
			Description: "Refresh the external job snapshot from the remote feed",
		}, t.refresh)
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "job_stats",
			Description: "Count external jobs by company, location and category",
		}, t.stats)

		reg.add("job_list")
		reg.add("job_search")
		reg.add("job_get")
		reg.add("job_add")
		reg.add("job_refresh")
		reg.add("job_stats")
	}
}

func (t *jobTools) list(ctx context.Context, _ *sdkmcp.CallToolRequest, params JobListParams) (*sdkmcp.CallToolResult, any, error) {
	limit, offset, err := t.limits.Page(params.Limit, params.Offset)
	if err != nil {
		t.logger.Warn("job_list: invalid request", "err", err)
		return nil, nil, err
	}

	page, err := t.service.GetJobs(ctx, limit, offset)
	if err != nil {
		t.logger.Error("job_list: failed", "err", err)
		return nil, nil, fmt.Errorf("list jobs: %w", err)
	}

	t.logger.Info("job_list completed",
		"limit", limit,
		"offset", offset,
		"returned", len(page.Data),
		"total", page.Total,
		"external_status", page.ExternalStatus,
	)
	summary := fmt.Sprintf("[job_list] %d of %d job(s), external snapshot %s", len(page.Data), page.Total, page.ExternalStatus)
	return jsonResult(summary, page), page, nil
}

func (t *jobTools) search(ctx context.Context, _ *sdkmcp.CallToolRequest, params JobSearchParams) (*sdkmcp.CallToolResult, any, error) {
	query, err := t.limits.Query(params.Query)
	if err != nil {
		t.logger.Warn("job_search: invalid query", "err", err)
		return nil, nil, err
	}
	limit, offset, err := t.limits.Page(params.Limit, params.Offset)
	if err != nil {
		t.logger.Warn("job_search: invalid request", "err", err)
		return nil, nil, err
	}

	page, err := t.service.SearchJobs(ctx, query, limit, offset)
	if err != nil {
		t.logger.Error("job_search: failed", "err", err, "query", query)
		return nil, nil, fmt.Errorf("search jobs: %w", err)
	}

	t.logger.Info("job_search completed", "query", query, "returned", len(page.Data), "total", page.Total)
	summary := fmt.Sprintf("[job_search] %d of %d match(es) for %q", len(page.Data), page.Total, page.Query)
	return jsonResult(summary, page), page, nil
}

func (t *jobTools) get(ctx context.Context, _ *sdkmcp.CallToolRequest, params JobGetParams) (*sdkmcp.CallToolResult, any, error) {
	rec, err := t.service.GetJob(ctx, params.ID)
	if err != nil {
		t.logger.Warn("job_get: failed", "err", err, "id", params.ID)
		return nil, nil, fmt.Errorf("get job: %w", err)
	}

	return jsonResult(fmt.Sprintf("[job_get] %s", rec.Title), rec), rec, nil
}

func (t *jobTools) add(ctx context.Context, _ *sdkmcp.CallToolRequest, params JobAddParams) (*sdkmcp.CallToolResult, any, error) {
	rec, err := t.service.AddJob(ctx, params.Job)
	if err != nil {
		t.logger.Error("job_add: failed", "err", err)
		return nil, nil, fmt.Errorf("add job: %w", err)
	}

	t.logger.Info("job_add completed", "id", rec.ID)
	return jsonResult(fmt.Sprintf("[job_add] created job %s", rec.ID), rec), rec, nil
}

func (t *jobTools) refresh(ctx context.Context, _ *sdkmcp.CallToolRequest, params JobRefreshParams) (*sdkmcp.CallToolResult, any, error) {
	if !params.Wait {
		t.service.TriggerRefresh()
		state := t.service.ExternalStatus()
		return jsonResult("[job_refresh] refresh started in the background", state), state, nil
	}

	if err := t.service.RefreshExternal(ctx); err != nil {
		t.logger.Warn("job_refresh: refresh failed", "err", err)
		return nil, nil, fmt.Errorf("refresh: %w", err)
	}

	state := t.service.ExternalStatus()
	return jsonResult(fmt.Sprintf("[job_refresh] snapshot holds %d job(s)", state.Records), state), state, nil
}

func (t *jobTools) stats(ctx context.Context, _ *sdkmcp.CallToolRequest, _ JobStatsParams) (*sdkmcp.CallToolResult, any, error) {
	stats, err := t.service.GetStats(ctx)
	if err != nil {
		t.logger.Error("job_stats: failed", "err", err)
		return nil, nil, fmt.Errorf("stats: %w", err)
	}

	return jsonResult(fmt.Sprintf("[job_stats] %d external job(s)", stats.Total), stats), stats, nil
}
