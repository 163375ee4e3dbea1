package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/internal/domain/job"
	"github.com/honeycarbs/jobboard/pkg/logging"
)

// SheetRow defines a row written to Sheets
type SheetRow struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Company    string `json:"company"`
	Location   string `json:"location"`
	Category   string `json:"category"`
	PostedDate string `json:"posted_date"`
	Source     string `json:"source"`
	Tags       string `json:"tags"`
}

// SheetTarget identifies the destination tab
type SheetTarget struct {
	SpreadsheetID string `json:"spreadsheet_id" jsonschema:"Google Sheets document ID"`
	Tab           string `json:"tab,omitempty" jsonschema:"Tab name to write into (default Sheet1)"`
	Range         string `json:"range,omitempty" jsonschema:"Optional A1 range override"`
}

// SheetsExportParams defines the arguments for the sheets_export tool
type SheetsExportParams struct {
	JobIDs   []string    `json:"job_ids,omitempty" jsonschema:"Locally stored jobs to export"`
	Query    string      `json:"query,omitempty" jsonschema:"Export search matches instead of explicit ids; empty exports the merged list"`
	Limit    *int        `json:"limit,omitempty" jsonschema:"Maximum jobs to export when using query (default 50)"`
	Upsert   bool        `json:"upsert,omitempty" jsonschema:"Overwrite from row 2 (true) or append (false)"`
	ClearTab bool        `json:"clear_tab,omitempty" jsonschema:"If true, clears the tab and writes a header row first"`
	Sheet    SheetTarget `json:"sheet" jsonschema:"Destination sheet information"`
}

// SheetsExportRequest is what the sheets client writes
type SheetsExportRequest struct {
	Sheet    SheetTarget
	Rows     []SheetRow
	Upsert   bool
	ClearTab bool
}

// SheetsExportResult describes the summary returned after export
type SheetsExportResult struct {
	SpreadsheetID string    `json:"spreadsheet_id"`
	Tab           string    `json:"tab,omitempty"`
	WrittenRows   int       `json:"written_rows"`
	Mode          string    `json:"mode"`
	CompletedAt   time.Time `json:"completed_at"`
	Message       string    `json:"message,omitempty"`
}

// SheetsClient writes rows to a spreadsheet
type SheetsClient interface {
	Export(ctx context.Context, req SheetsExportRequest) (SheetsExportResult, error)
}

type sheetsExportTool struct {
	client  SheetsClient
	service job.Service
	limits  Limits
	logger  *logging.Logger
}

// WithSheetsExport registers the sheets_export tool
func WithSheetsExport(client SheetsClient, service job.Service, limits Limits) Option {
	return func(reg *registry) {
		if client == nil || service == nil {
			reg.logger.Warn("sheets export not configured, sheets_export skipped")
			return
		}
		handler := &sheetsExportTool{client: client, service: service, limits: limits.withDefaults(), logger: reg.logger}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "sheets_export",
			Description: "Export job postings to Google Sheets",
		}, handler.handle)
		reg.add("sheets_export")
	}
}

func (t *sheetsExportTool) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params SheetsExportParams) (*sdkmcp.CallToolResult, any, error) {
	if strings.TrimSpace(params.Sheet.SpreadsheetID) == "" {
		return nil, nil, &domain.ValidationError{Field: "sheet.spreadsheet_id", Msg: "is required"}
	}

	jobs, mode, err := t.selectJobs(ctx, params)
	if err != nil {
		t.logger.Warn("sheets_export: selecting jobs failed", "err", err)
		return nil, nil, err
	}

	rows := make([]SheetRow, 0, len(jobs))
	for _, j := range jobs {
		rows = append(rows, toSheetRow(j))
	}

	result, err := t.client.Export(ctx, SheetsExportRequest{
		Sheet:    params.Sheet,
		Rows:     rows,
		Upsert:   params.Upsert,
		ClearTab: params.ClearTab,
	})
	if err != nil {
		t.logger.Error("sheets_export: export failed", "err", err, "spreadsheet_id", params.Sheet.SpreadsheetID)
		return nil, nil, fmt.Errorf("sheets export: %w", err)
	}
	result.Mode = mode

	t.logger.Info("sheets_export completed",
		"spreadsheet_id", result.SpreadsheetID,
		"tab", result.Tab,
		"rows", result.WrittenRows,
		"mode", mode,
	)
	msg := fmt.Sprintf("[sheets_export] mode=%s rows=%d spreadsheet_id=%q tab=%q", mode, result.WrittenRows, result.SpreadsheetID, result.Tab)
	return jsonResult(msg, result), result, nil
}

func (t *sheetsExportTool) selectJobs(ctx context.Context, params SheetsExportParams) ([]domain.JobRecord, string, error) {
	if len(params.JobIDs) > 0 {
		out := make([]domain.JobRecord, 0, len(params.JobIDs))
		for _, id := range params.JobIDs {
			rec, err := t.service.GetJob(ctx, id)
			if err != nil {
				return nil, "", fmt.Errorf("job %q: %w", id, err)
			}
			out = append(out, rec)
		}
		return out, "ids", nil
	}

	query, err := t.limits.Query(params.Query)
	if err != nil {
		return nil, "", err
	}
	limit, _, err := t.limits.Page(params.Limit, nil)
	if err != nil {
		return nil, "", err
	}

	page, err := t.service.SearchJobs(ctx, query, limit, 0)
	if err != nil {
		return nil, "", err
	}
	return page.Data, "query", nil
}

func toSheetRow(rec domain.JobRecord) SheetRow {
	row := SheetRow{
		ID:       rec.ID,
		Title:    rec.Title,
		Company:  rec.Company,
		Location: rec.Location,
		Category: rec.Category,
		Source:   string(rec.Source),
	}
	if !rec.PostedDate.IsZero() {
		row.PostedDate = rec.PostedDate.UTC().Format(time.RFC3339)
	}

	labels := make([]string, 0, len(rec.Tags))
	for _, tag := range rec.Tags {
		switch {
		case tag.Label != "":
			labels = append(labels, tag.Label)
		case tag.Name != "":
			labels = append(labels, tag.Name)
		}
	}
	row.Tags = strings.Join(labels, ", ")
	return row
}
