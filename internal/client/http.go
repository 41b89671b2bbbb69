package client

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

	"github.com/groblegark/trak/internal/model"
)

// HTTPClient implements IssueClient against the trak HTTP/JSON REST API.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewHTTPClient creates a new HTTP client targeting the given base URL
// (e.g. "http://localhost:8080"). When token is non-empty, an Authorization
// header is set on every request.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{},
	}
}

// Close is a no-op for the HTTP client.
func (c *HTTPClient) Close() error { return nil }

// --- Issues ---

func (c *HTTPClient) ListIssues(ctx context.Context, scope Scope) ([]model.RawIssue, error) {
	path := "/v1/issues"
	if scope.ProjectID != nil {
		q := url.Values{}
		q.Set("project_id", strconv.Itoa(*scope.ProjectID))
		path += "?" + q.Encode()
	}
	var issues []model.RawIssue
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

func (c *HTTPClient) GetIssue(ctx context.Context, id int) (*model.RawIssue, error) {
	var issue model.RawIssue
	if err := c.doJSON(ctx, http.MethodGet, "/v1/issues/"+strconv.Itoa(id), nil, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

func (c *HTTPClient) CreateIssue(ctx context.Context, req *CreateIssueRequest) (*model.RawIssue, error) {
	var issue model.RawIssue
	if err := c.doJSON(ctx, http.MethodPost, "/v1/issues", req, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

func (c *HTTPClient) UpdateIssue(ctx context.Context, id int, req *UpdateIssueRequest) (*model.RawIssue, error) {
	var issue model.RawIssue
	if err := c.doJSON(ctx, http.MethodPatch, "/v1/issues/"+strconv.Itoa(id), req, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

func (c *HTTPClient) DeleteIssue(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1/issues/"+strconv.Itoa(id), nil, nil)
}

// --- Reference data ---

func (c *HTTPClient) ListProjects(ctx context.Context) ([]model.RawProject, error) {
	var projects []model.RawProject
	if err := c.doJSON(ctx, http.MethodGet, "/v1/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (c *HTTPClient) ListUsers(ctx context.Context) ([]model.RawUser, error) {
	var users []model.RawUser
	if err := c.doJSON(ctx, http.MethodGet, "/v1/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// --- Health ---

func (c *HTTPClient) Health(ctx context.Context) (string, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/health", nil, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

// --- internal helpers ---

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// envelope is the response wrapper every trak endpoint uses.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// doJSON performs an HTTP request with optional JSON body, unwraps the
// response envelope, and decodes the data payload into result. If result is
// nil, the payload is discarded (for DELETE responses).
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	// 204 No Content — success with no body.
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	var env envelope
	envOK := json.Unmarshal(respBody, &env) == nil

	if resp.StatusCode >= 400 || (envOK && !env.Success && env.Message != "") {
		if envOK && env.Message != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: env.Message}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if result != nil {
		payload := respBody
		if envOK && len(env.Data) > 0 {
			payload = env.Data
		}
		if err := json.Unmarshal(payload, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
