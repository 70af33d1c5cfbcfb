// Package client provides a typed HTTP client for the job board API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/joblane/jobboard/internal/domain/model"
)

// Operation failures are collapsed into one sentinel per operation. Status
// codes and response bodies are intentionally discarded, so callers cannot
// distinguish a validation rejection from an outage; they only learn which
// operation failed.
var (
	// ErrFetchJobsFailed indicates the job listing could not be retrieved.
	ErrFetchJobsFailed = errors.New("failed to fetch jobs")
	// ErrCreateJobFailed indicates a new posting could not be created.
	ErrCreateJobFailed = errors.New("failed to create job")
	// ErrUpdateJobFailed indicates an existing posting could not be updated.
	ErrUpdateJobFailed = errors.New("failed to update job")
	// ErrDeleteJobFailed indicates a posting could not be deleted.
	ErrDeleteJobFailed = errors.New("failed to delete job")
)

const defaultTimeout = 10 * time.Second

// Client talks to the job board API at a fixed base URL.
type Client struct {
	baseURL string
	http    *http.Client
}

// Options configures a Client.
type Options struct {
	// BaseURL is the API root, e.g. "http://localhost:8080".
	BaseURL string
	// HTTPClient is optional; a default with a 10s timeout is used when nil.
	HTTPClient *http.Client
}

// New creates a Client for the given options.
func New(opts Options) (*Client, error) {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		return nil, errors.New("base URL is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{baseURL: base, http: hc}, nil
}

// FetchJobs retrieves all postings, most recently created first.
func (c *Client) FetchJobs(ctx context.Context) ([]*model.Job, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/jobs", nil)
	if err != nil {
		return nil, ErrFetchJobsFailed
	}

	var jobs []*model.Job
	if err := c.do(req, http.StatusOK, &jobs); err != nil {
		return nil, ErrFetchJobsFailed
	}
	return jobs, nil
}

// CreateJob submits a new posting and returns the stored record.
func (c *Client) CreateJob(ctx context.Context, req *model.CreateJobRequest) (*model.Job, error) {
	httpReq, err := c.newJSONRequest(ctx, http.MethodPost, "/api/jobs", req)
	if err != nil {
		return nil, ErrCreateJobFailed
	}

	var job model.Job
	if err := c.do(httpReq, http.StatusCreated, &job); err != nil {
		return nil, ErrCreateJobFailed
	}
	return &job, nil
}

// UpdateJob applies a partial update and returns the stored record.
func (c *Client) UpdateJob(ctx context.Context, id string, req model.UpdateJobRequest) (*model.Job, error) {
	httpReq, err := c.newJSONRequest(ctx, http.MethodPatch, "/api/jobs/"+url.PathEscape(id), req)
	if err != nil {
		return nil, ErrUpdateJobFailed
	}

	var job model.Job
	if err := c.do(httpReq, http.StatusOK, &job); err != nil {
		return nil, ErrUpdateJobFailed
	}
	return &job, nil
}

// DeleteJob removes a posting permanently.
func (c *Client) DeleteJob(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/api/jobs/"+url.PathEscape(id), nil)
	if err != nil {
		return ErrDeleteJobFailed
	}

	if err := c.do(req, http.StatusNoContent, nil); err != nil {
		return ErrDeleteJobFailed
	}
	return nil
}

func (c *Client) newJSONRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// do executes the request and decodes the response when it matches wantStatus.
func (c *Client) do(req *http.Request, wantStatus int, dst any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != wantStatus {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if dst == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}
