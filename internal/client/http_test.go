package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// testHandler captures the incoming request details and returns a canned response.
type testHandler struct {
	// captured from the request
	method      string
	path        string
	query       string
	body        string
	contentType string
	auth        string

	// canned response
	statusCode   int
	responseBody string
}

func (h *testHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.method = r.Method
	h.path = r.URL.Path
	h.query = r.URL.RawQuery
	h.contentType = r.Header.Get("Content-Type")
	h.auth = r.Header.Get("Authorization")
	if r.Body != nil {
		data, _ := io.ReadAll(r.Body)
		h.body = string(data)
	}

	w.Header().Set("Content-Type", "application/json")
	if h.statusCode != 0 {
		w.WriteHeader(h.statusCode)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	if h.responseBody != "" {
		_, _ = w.Write([]byte(h.responseBody))
	}
}

// newTestClient creates an HTTPClient pointed at a test server with the given handler.
func newTestClient(h http.Handler) (*HTTPClient, *httptest.Server) {
	srv := httptest.NewServer(h)
	c := NewHTTPClient(srv.URL, "")
	return c, srv
}

func TestHTTPClient_ListIssues(t *testing.T) {
	h := &testHandler{
		responseBody: `{
			"success": true,
			"message": "ok",
			"data": [
				{"id": 1, "name": "Fix login", "type": "bug", "status": "todo", "priority": "high", "project_id": 2},
				{"id": 2, "name": "Add search", "type": "feature", "status": "qa", "priority": "moderate"}
			]
		}`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	issues, err := c.ListIssues(context.Background(), ScopeAll())
	if err != nil {
		t.Fatalf("ListIssues error: %v", err)
	}

	if h.method != http.MethodGet || h.path != "/v1/issues" {
		t.Errorf("request = %s %s, want GET /v1/issues", h.method, h.path)
	}
	if h.query != "" {
		t.Errorf("query = %q, want empty", h.query)
	}
	if len(issues) != 2 {
		t.Fatalf("got %d issues, want 2", len(issues))
	}
	if issues[0].ID != 1 || issues[0].Name != "Fix login" || issues[0].ProjectID != 2 {
		t.Errorf("issues[0] = %+v", issues[0])
	}
	if issues[1].Priority != "moderate" {
		t.Errorf("issues[1].Priority = %q, want moderate", issues[1].Priority)
	}
}

func TestHTTPClient_ListIssues_ProjectScope(t *testing.T) {
	h := &testHandler{responseBody: `{"success": true, "message": "ok", "data": []}`}
	c, srv := newTestClient(h)
	defer srv.Close()

	if _, err := c.ListIssues(context.Background(), ScopeProject(7)); err != nil {
		t.Fatalf("ListIssues error: %v", err)
	}
	if h.query != "project_id=7" {
		t.Errorf("query = %q, want project_id=7", h.query)
	}
}

func TestHTTPClient_UpdateIssue_StatusOnly(t *testing.T) {
	h := &testHandler{
		responseBody: `{"success": true, "message": "ok", "data": {"id": 5, "name": "x", "type": "task", "status": "qa"}}`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	issue, err := c.UpdateIssue(context.Background(), 5, StatusUpdate("qa"))
	if err != nil {
		t.Fatalf("UpdateIssue error: %v", err)
	}

	if h.method != http.MethodPatch || h.path != "/v1/issues/5" {
		t.Errorf("request = %s %s, want PATCH /v1/issues/5", h.method, h.path)
	}
	if h.contentType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", h.contentType)
	}

	// Nil fields must be omitted so the server treats them as "don't change".
	var sent map[string]any
	if err := json.Unmarshal([]byte(h.body), &sent); err != nil {
		t.Fatalf("unmarshaling request body: %v", err)
	}
	if len(sent) != 1 || sent["status"] != "qa" {
		t.Errorf("request body = %s, want only status=qa", h.body)
	}
	if issue.Status != "qa" {
		t.Errorf("issue.Status = %q, want qa", issue.Status)
	}
}

func TestHTTPClient_DeleteIssue(t *testing.T) {
	h := &testHandler{statusCode: http.StatusNoContent}
	c, srv := newTestClient(h)
	defer srv.Close()

	if err := c.DeleteIssue(context.Background(), 9); err != nil {
		t.Fatalf("DeleteIssue error: %v", err)
	}
	if h.method != http.MethodDelete || h.path != "/v1/issues/9" {
		t.Errorf("request = %s %s, want DELETE /v1/issues/9", h.method, h.path)
	}
}

func TestHTTPClient_ErrorEnvelope(t *testing.T) {
	h := &testHandler{
		statusCode:   http.StatusNotFound,
		responseBody: `{"success": false, "message": "issue not found", "data": null}`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	_, err := c.GetIssue(context.Background(), 404)
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", apiErr.StatusCode)
	}
	if apiErr.Message != "issue not found" {
		t.Errorf("Message = %q, want issue not found", apiErr.Message)
	}
}

func TestHTTPClient_AuthToken(t *testing.T) {
	h := &testHandler{responseBody: `{"success": true, "message": "ok", "data": {"status": "ok"}}`}
	srv := httptest.NewServer(h)
	defer srv.Close()

	c := NewHTTPClient(srv.URL+"/", "secret-token")
	if _, err := c.Health(context.Background()); err != nil {
		t.Fatalf("Health error: %v", err)
	}
	if h.auth != "Bearer secret-token" {
		t.Errorf("Authorization = %q, want Bearer secret-token", h.auth)
	}
	if strings.Contains(h.path, "//") {
		t.Errorf("path %q contains doubled slash; base URL not trimmed", h.path)
	}
}
