// Package surveyapi is the HTTP client for the survey backend.
package surveyapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is where the backend listens when run locally.
const DefaultBaseURL = "http://localhost:8000"

// maxBodySize caps how much of a response body is read.
const maxBodySize = 32 << 20

// Client talks to the survey backend. It performs no retries; every
// failure is returned to the caller immediately.
type Client struct {
	baseURL string
	client  *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the backend base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.client.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// NewClient creates a Client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		client:  &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend base URL.
func (c *Client) BaseURL() string { return c.baseURL }

type submitRequest struct {
	EmpID   string            `json:"emp_id"`
	Answers map[string]string `json:"answers"`
}

// Submit sends the full answer set for one employee.
func (c *Client) Submit(ctx context.Context, empID string, answers map[string]string) (*Ack, error) {
	if answers == nil {
		answers = map[string]string{}
	}
	body, err := json.Marshal(submitRequest{EmpID: empID, Answers: answers})
	if err != nil {
		return nil, &SubmissionError{Reason: "Failed to submit survey", Err: err}
	}

	resp, data, err := c.do(ctx, http.MethodPost, "/submissions/", body)
	if err != nil {
		return nil, &SubmissionError{Reason: "Could not reach the survey service", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reason := detailReason(data)
		if reason == "" {
			reason = "Failed to submit survey"
		}
		return nil, &SubmissionError{
			StatusCode: resp.StatusCode,
			Reason:     reason,
			Err:        fmt.Errorf("HTTP %d", resp.StatusCode),
		}
	}

	var ack Ack
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &ack); err != nil {
			return nil, &SubmissionError{
				StatusCode: resp.StatusCode,
				Reason:     "Failed to submit survey",
				Err:        fmt.Errorf("decode acknowledgement: %w", err),
			}
		}
	}
	return &ack, nil
}

// FetchAll lists every stored submission, newest first.
func (c *Client) FetchAll(ctx context.Context) ([]Submission, error) {
	resp, data, err := c.do(ctx, http.MethodGet, "/submissions", nil)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{StatusCode: resp.StatusCode}
	}

	var subs []Submission
	if err := json.Unmarshal(data, &subs); err != nil {
		return nil, &FetchError{Err: fmt.Errorf("decode submissions: %w", err)}
	}
	if subs == nil {
		subs = []Submission{}
	}
	return subs, nil
}

// FetchSubmission returns one employee's submission. A 404 means the
// employee has not submitted yet and yields (nil, nil).
func (c *Client) FetchSubmission(ctx context.Context, empID string) (*SubmissionDetail, error) {
	resp, data, err := c.do(ctx, http.MethodGet, "/submissions/"+url.PathEscape(empID), nil)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode != http.StatusOK:
		return nil, &FetchError{StatusCode: resp.StatusCode}
	}

	var detail SubmissionDetail
	if err := json.Unmarshal(data, &detail); err != nil {
		return nil, &FetchError{Err: fmt.Errorf("decode submission: %w", err)}
	}
	return &detail, nil
}

// ExportRows returns the spreadsheet rows for one employee.
func (c *Client) ExportRows(ctx context.Context, empID string) ([]Row, error) {
	resp, data, err := c.do(ctx, http.MethodGet, "/export/"+url.PathEscape(empID), nil)
	if err != nil {
		return nil, &ExportError{EmpID: empID, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &ExportError{EmpID: empID, StatusCode: resp.StatusCode}
	}

	rows, err := ParseRows(data)
	if err != nil {
		return nil, &ExportError{EmpID: empID, Err: fmt.Errorf("decode rows: %w", err)}
	}
	return rows, nil
}

// Ping fetches the service banner.
func (c *Client) Ping(ctx context.Context) (*Banner, error) {
	resp, data, err := c.do(ctx, http.MethodGet, "/", nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, c.baseURL)
	}
	var b Banner
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("decode banner: %w", err)
	}
	return &b, nil
}

// do performs a request and reads the whole response body.
func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, []byte, error) {
	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, nil, fmt.Errorf("read response: %w", err)
	}
	return resp, data, nil
}
