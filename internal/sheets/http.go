package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"checkin/pkg/platform/sentinel"
)

// HTTPClient talks to the spreadsheet REST API. It authenticates with an API
// key and maps store-side status codes onto sentinel errors so callers can
// decide what is retryable.
type HTTPClient struct {
	baseURL       string
	apiKey        string
	spreadsheetID string
	httpClient    *http.Client
}

// NewHTTPClient builds a REST client for one spreadsheet document.
func NewHTTPClient(baseURL, apiKey, spreadsheetID string) *HTTPClient {
	return &HTTPClient{
		baseURL:       baseURL,
		apiKey:        apiKey,
		spreadsheetID: spreadsheetID,
		httpClient:    &http.Client{Timeout: 15 * time.Second},
	}
}

type spreadsheetMeta struct {
	Sheets []struct {
		Properties struct {
			Title string `json:"title"`
		} `json:"properties"`
	} `json:"sheets"`
}

type valueRange struct {
	Values [][]string `json:"values"`
}

// Titles lists the sheet titles of the document.
func (c *HTTPClient) Titles(ctx context.Context) ([]string, error) {
	u := fmt.Sprintf("%s/v4/spreadsheets/%s?fields=sheets.properties.title", c.baseURL, url.PathEscape(c.spreadsheetID))

	var meta spreadsheetMeta
	if err := c.do(ctx, http.MethodGet, u, nil, &meta); err != nil {
		return nil, fmt.Errorf("list sheet titles: %w", err)
	}

	titles := make([]string, 0, len(meta.Sheets))
	for _, s := range meta.Sheets {
		titles = append(titles, s.Properties.Title)
	}
	return titles, nil
}

// Rows reads every row of one table, header included.
func (c *HTTPClient) Rows(ctx context.Context, table string) ([][]string, error) {
	u := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s", c.baseURL, url.PathEscape(c.spreadsheetID), url.PathEscape(table))

	var vr valueRange
	if err := c.do(ctx, http.MethodGet, u, nil, &vr); err != nil {
		return nil, fmt.Errorf("read rows of %q: %w", table, err)
	}
	return vr.Values, nil
}

// Append adds one row at the end of the table.
func (c *HTTPClient) Append(ctx context.Context, table string, row []string) error {
	u := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s:append?valueInputOption=USER_ENTERED",
		c.baseURL, url.PathEscape(c.spreadsheetID), url.PathEscape(table))

	body := valueRange{Values: [][]string{row}}
	if err := c.do(ctx, http.MethodPost, u, &body, nil); err != nil {
		return fmt.Errorf("append row to %q: %w", table, err)
	}
	return nil
}

// do performs one HTTP exchange, decoding the JSON response into out when
// non-nil. The API key travels as a query parameter.
func (c *HTTPClient) do(ctx context.Context, method, rawURL string, in, out any) error {
	if c.apiKey != "" {
		sep := "?"
		if u, err := url.Parse(rawURL); err == nil && u.RawQuery != "" {
			sep = "&"
		}
		rawURL += sep + "key=" + url.QueryEscape(c.apiKey)
	}

	var reqBody *bytes.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := statusError(resp.StatusCode); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// statusError maps store-side status codes onto sentinel errors.
func statusError(status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("store quota exceeded: %w", sentinel.ErrRateLimited)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("store rejected credentials (status %d): %w", status, sentinel.ErrUnauthorized)
	case status == http.StatusNotFound:
		return fmt.Errorf("table or document missing: %w", sentinel.ErrNotFound)
	case status >= 500:
		return fmt.Errorf("store unavailable (status %d): %w", status, sentinel.ErrUnavailable)
	default:
		return fmt.Errorf("store returned unexpected status %d", status)
	}
}
