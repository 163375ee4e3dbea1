package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/honeycarbs/jobboard/internal/mcp/tools"
	sheetsclient "github.com/honeycarbs/jobboard/pkg/sheets"
)

var sheetHeader = []any{"ID", "Title", "Company", "Location", "Category", "Posted", "Source", "Tags"}

type valuesWriter interface {
	AppendRows(ctx context.Context, spreadsheetID, rng string, rows [][]any) (int, error)
	UpdateRows(ctx context.Context, spreadsheetID, rng string, rows [][]any) (int, error)
	Clear(ctx context.Context, spreadsheetID, rng string) error
}

type sheetsClientAdapter struct {
	client valuesWriter
	now    func() time.Time
}

func newSheetsClientAdapter(client valuesWriter) *sheetsClientAdapter {
	return &sheetsClientAdapter{client: client, now: time.Now}
}

func (a *sheetsClientAdapter) Export(ctx context.Context, req tools.SheetsExportRequest) (tools.SheetsExportResult, error) {
	tab := req.Sheet.Tab
	if tab == "" {
		tab = sheetsclient.DefaultTab
	}
	result := tools.SheetsExportResult{
		SpreadsheetID: req.Sheet.SpreadsheetID,
		Tab:           tab,
	}

	if req.ClearTab {
		if err := a.client.Clear(ctx, req.Sheet.SpreadsheetID, sheetsclient.A1(tab, "A:Z")); err != nil {
			return result, err
		}
		if _, err := a.client.UpdateRows(ctx, req.Sheet.SpreadsheetID, sheetsclient.A1(tab, "A1"), [][]any{sheetHeader}); err != nil {
			return result, err
		}
	}

	if len(req.Rows) == 0 {
		result.CompletedAt = a.now().UTC()
		result.Message = "no rows to export"
		return result, nil
	}

	rng := buildRange(req, tab)
	values := convertRowsToValues(req.Rows)

	var (
		written int
		err     error
	)
	if req.Upsert || req.ClearTab {
		written, err = a.client.UpdateRows(ctx, req.Sheet.SpreadsheetID, rng, values)
	} else {
		written, err = a.client.AppendRows(ctx, req.Sheet.SpreadsheetID, rng, values)
	}
	if err != nil {
		return result, err
	}

	result.WrittenRows = written
	result.CompletedAt = a.now().UTC()
	result.Message = fmt.Sprintf("exported %d row(s)", written)
	return result, nil
}

// buildRange picks where rows land: an explicit range wins, overwrites start
// below the header and appends search from the top of the tab.
func buildRange(req tools.SheetsExportRequest, tab string) string {
	if req.Sheet.Range != "" {
		return req.Sheet.Range
	}
	if req.Upsert || req.ClearTab {
		return sheetsclient.A1(tab, "A2")
	}
	return sheetsclient.A1(tab, "A1")
}

func convertRowsToValues(rows []tools.SheetRow) [][]any {
	values := make([][]any, len(rows))
	for i, row := range rows {
		values[i] = []any{
			row.ID,
			row.Title,
			row.Company,
			row.Location,
			row.Category,
			row.PostedDate,
			row.Source,
			row.Tags,
		}
	}
	return values
}
