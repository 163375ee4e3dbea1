package sheets

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// DefaultTab is used when a caller names no tab
const DefaultTab = "Sheet1"

// Client writes value ranges through the Sheets v4 API
type Client struct {
	service   *sheets.Service
	inputMode string
}

// Config holds Sheets credentials. Exactly one of CredentialsPath or
// CredentialsJSON is required.
type Config struct {
	CredentialsPath string
	CredentialsJSON []byte
	// InputMode is passed as valueInputOption: RAW (default) or USER_ENTERED
	InputMode string
}

// NewClient builds a Sheets service from service-account credentials
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	var opts []option.ClientOption

	switch {
	case cfg.CredentialsPath != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	case len(cfg.CredentialsJSON) > 0:
		opts = append(opts, option.WithCredentialsJSON(cfg.CredentialsJSON))
	default:
		return nil, fmt.Errorf("sheets: credentials path or JSON is required")
	}
	opts = append(opts, option.WithScopes(sheets.SpreadsheetsScope))

	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: create service: %w", err)
	}

	mode := strings.ToUpper(strings.TrimSpace(cfg.InputMode))
	if mode == "" {
		mode = "RAW"
	}
	return &Client{service: service, inputMode: mode}, nil
}

// AppendRows appends rows after the table found at rng and returns the
// number of rows the API reports as written.
func (c *Client) AppendRows(ctx context.Context, spreadsheetID, rng string, rows [][]any) (int, error) {
	if c == nil || c.service == nil {
		return 0, fmt.Errorf("sheets: service is nil")
	}

	resp, err := c.service.Spreadsheets.Values.Append(spreadsheetID, rng, &sheets.ValueRange{Values: rows}).
		ValueInputOption(c.inputMode).
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("sheets: append %s: %w", rng, err)
	}
	if resp.Updates == nil {
		return len(rows), nil
	}
	return int(resp.Updates.UpdatedRows), nil
}

// UpdateRows overwrites cells starting at rng
func (c *Client) UpdateRows(ctx context.Context, spreadsheetID, rng string, rows [][]any) (int, error) {
	if c == nil || c.service == nil {
		return 0, fmt.Errorf("sheets: service is nil")
	}

	resp, err := c.service.Spreadsheets.Values.Update(spreadsheetID, rng, &sheets.ValueRange{Values: rows}).
		ValueInputOption(c.inputMode).
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("sheets: update %s: %w", rng, err)
	}
	return int(resp.UpdatedRows), nil
}

// Clear empties every cell in rng
func (c *Client) Clear(ctx context.Context, spreadsheetID, rng string) error {
	if c == nil || c.service == nil {
		return fmt.Errorf("sheets: service is nil")
	}

	_, err := c.service.Spreadsheets.Values.Clear(spreadsheetID, rng, &sheets.ClearValuesRequest{}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: clear %s: %w", rng, err)
	}
	return nil
}

// A1 builds an A1 reference such as 'Open Roles'!A2. Tab names containing
// anything but letters, digits and underscores are quoted.
func A1(tab, ref string) string {
	if tab == "" {
		tab = DefaultTab
	}
	if needsQuoting(tab) {
		tab = "'" + strings.ReplaceAll(tab, "'", "''") + "'"
	}
	if ref == "" {
		return tab
	}
	return tab + "!" + ref
}

func needsQuoting(tab string) bool {
	for _, r := range tab {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		default:
			return true
		}
	}
	return false
}
