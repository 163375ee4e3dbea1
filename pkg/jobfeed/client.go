package jobfeed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/time/rate"
)

const (
	defaultUserAgent = "JobBoard-API/1.0"
	maxErrorBody     = 4096
)

// NewClient instantiates a job feed API client
func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("jobfeed: base url is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("jobfeed: parse base url: %w", err)
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint != "" && !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}

	return &Client{
		baseURL:    baseURL,
		endpoint:   endpoint,
		token:      strings.TrimSpace(cfg.Token),
		userAgent:  userAgent,
		httpClient: httpClient,
		limiter:    limiter,
	}, nil
}

// ListJobs performs a single GET against the feed. It does not retry.
func (c *Client) ListJobs(ctx context.Context, params ListParams) (Page, error) {
	if c == nil {
		return Page{}, fmt.Errorf("jobfeed: client is nil")
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return Page{}, fmt.Errorf("jobfeed: rate limiter: %w", err)
		}
	}

	u, err := c.buildListURL(params)
	if err != nil {
		return Page{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Page{}, fmt.Errorf("jobfeed: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if auth := c.authorization(); auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("jobfeed: request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return Page{}, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Page{}, fmt.Errorf("jobfeed: read body: %w", err)
	}

	records, err := decodeRecords(body)
	if err != nil {
		return Page{}, err
	}

	total := len(records)
	if v := resp.Header.Get("X-Total-Count"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n >= 0 {
			total = n
		}
	}

	return Page{Records: records, Total: total}, nil
}

func (c *Client) buildListURL(params ListParams) (string, error) {
	u, err := url.Parse(c.baseURL + c.endpoint)
	if err != nil {
		return "", fmt.Errorf("jobfeed: parse url: %w", err)
	}

	values := u.Query()
	values.Set("limit", strconv.Itoa(params.Limit))
	values.Set("offset", strconv.Itoa(params.Offset))
	for k, v := range params.Filters {
		if k == "" || v == "" {
			continue
		}
		values.Set(k, v)
	}

	u.RawQuery = values.Encode()
	return u.String(), nil
}

func (c *Client) authorization() string {
	if c.token == "" {
		return ""
	}
	// already carries a scheme, e.g. "Bearer abc" or "Basic abc"
	if strings.Contains(c.token, " ") {
		return c.token
	}
	return "Bearer " + c.token
}

// decodeRecords accepts either a bare array of objects or an object holding
// a "data" array.
func decodeRecords(body []byte) ([]map[string]any, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrMalformedResponse)
	}

	var records []map[string]any
	switch trimmed[0] {
	case '[':
		if err := decodeNumbers(trimmed, &records); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
	case '{':
		var env envelope
		if err := decodeNumbers(trimmed, &env); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		if env.Data == nil {
			return nil, fmt.Errorf("%w: object without a data array", ErrMalformedResponse)
		}
		records = *env.Data
	default:
		return nil, fmt.Errorf("%w: unexpected body starting with %q", ErrMalformedResponse, trimmed[0])
	}

	for i, r := range records {
		if r == nil {
			return nil, fmt.Errorf("%w: record %d is not an object", ErrMalformedResponse, i)
		}
	}

	if records == nil {
		records = []map[string]any{}
	}
	return records, nil
}

func decodeNumbers(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}
