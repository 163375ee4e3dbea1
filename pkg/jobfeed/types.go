package jobfeed

import (
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/time/rate"
)

// ErrMalformedResponse marks a 2xx response whose body is not a job list
var ErrMalformedResponse = errors.New("jobfeed: malformed response")

// Config defines job feed API client settings
type Config struct {
	BaseURL    string
	Endpoint   string
	Token      string // sent as a bearer token
	UserAgent  string
	HTTPClient *http.Client
	RateLimit  float64 // requests per second, 0 = unlimited
}

// Client queries the public job board feed
type Client struct {
	baseURL    string
	endpoint   string
	token      string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// ListParams describe one page request against the feed
type ListParams struct {
	Limit   int
	Offset  int
	Filters map[string]string
}

// Page is one decoded feed response. Records keep the provider's own field
// names; callers normalize them.
type Page struct {
	Records []map[string]any
	Total   int
}

// StatusError reports a non-2xx response
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("jobfeed: API error (%d %s)", e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("jobfeed: API error (%d %s): %s", e.Code, http.StatusText(e.Code), e.Body)
}

type envelope struct {
	Data *[]map[string]any `json:"data"`
}
