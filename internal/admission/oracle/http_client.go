package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"admission/pkg/platform/sentinel"
)

const (
	dateLayout      = "2006-01-02"
	maxResponseSize = 1 << 16
)

// HTTPClient asks an external credit scoring service for base limits:
//
//	GET {baseURL}/credit-limit?last_name=Boleyn&date_of_birth=2001-05-19
//	200 {"credit_limit": 600}
//
// Calls are made once; there are no retries.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPClient builds a client for the scoring service at baseURL. Each call
// is bounded by timeout.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type creditLimitResponse struct {
	CreditLimit *int64 `json:"credit_limit"`
}

func (c *HTTPClient) CreditLimit(ctx context.Context, lastName string, dateOfBirth time.Time) (int64, error) {
	q := url.Values{}
	q.Set("last_name", lastName)
	q.Set("date_of_birth", dateOfBirth.Format(dateLayout))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/credit-limit?"+q.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("build credit limit request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("credit limit request: %w: %w", sentinel.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body := io.LimitReader(resp.Body, maxResponseSize)
	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= http.StatusInternalServerError:
		return 0, fmt.Errorf("credit limit service returned %d: %w", resp.StatusCode, sentinel.ErrUnavailable)
	default:
		msg, _ := io.ReadAll(body)
		return 0, fmt.Errorf("credit limit service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out creditLimitResponse
	if err := json.NewDecoder(body).Decode(&out); err != nil {
		return 0, fmt.Errorf("decode credit limit response: %w", err)
	}
	if out.CreditLimit == nil {
		return 0, fmt.Errorf("decode credit limit response: credit_limit missing")
	}
	return *out.CreditLimit, nil
}
