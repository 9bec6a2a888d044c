package client

import (
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// DefaultBaseURL is the Meraki dashboard API v1 endpoint.
const DefaultBaseURL = "https://api.meraki.com/api/v1"

const userAgent = "MVSnapshotCollector CiscoGVEDevNet"

type DashboardClient struct {
	HTTP   *resty.Client
	Config ClientConfig

	// Snapshot URLs are pre-signed and served from a different host, so
	// they are fetched with a separate client carrying no auth header.
	raw *resty.Client
}

type ClientConfig struct {
	BaseURL string
	APIKey  string
}

// APIError is a non-2xx response from the dashboard API. Meraki wraps
// diagnostics as {"errors": ["..."]}; Message holds the first entry when
// the body parses, otherwise the raw body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("dashboard API error (status %d): %s", e.StatusCode, e.Message)
}

func New(cfg ClientConfig) *DashboardClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	r := resty.New()
	r.SetBaseURL(cfg.BaseURL)
	r.SetHeader("Content-Type", "application/json")
	r.SetHeader("Accept", "application/json")
	r.SetHeader("User-Agent", userAgent)
	r.SetAuthToken(cfg.APIKey)

	return &DashboardClient{
		HTTP:   r,
		Config: cfg,
		raw:    resty.New().SetHeader("User-Agent", userAgent),
	}
}

// apiError converts a failed resty response into an *APIError.
func apiError(resp *resty.Response) *APIError {
	var body struct {
		Errors []string `json:"errors"`
	}
	msg := resp.String()
	if err := json.Unmarshal(resp.Body(), &body); err == nil && len(body.Errors) > 0 {
		msg = body.Errors[0]
	}
	return &APIError{StatusCode: resp.StatusCode(), Message: msg}
}
