package board

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/groblegark/trak/internal/client"
	"github.com/groblegark/trak/internal/model"
)

// fakeClient is a scriptable IssueClient for store tests.
type fakeClient struct {
	mu sync.Mutex

	issues   []model.RawIssue
	projects []model.RawProject

	listIssuesErr   error
	listProjectsErr error
	updateErr       error
	deleteErr       error

	// updateGate, when non-nil, blocks UpdateIssue until the channel closes.
	updateGate chan struct{}

	updateCalls []updateCall
	deleteCalls []int
}

type updateCall struct {
	id     int
	status string
}

func (f *fakeClient) ListIssues(ctx context.Context, scope client.Scope) ([]model.RawIssue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listIssuesErr != nil {
		return nil, f.listIssuesErr
	}
	return append([]model.RawIssue(nil), f.issues...), nil
}

func (f *fakeClient) ListProjects(ctx context.Context) ([]model.RawProject, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listProjectsErr != nil {
		return nil, f.listProjectsErr
	}
	return append([]model.RawProject(nil), f.projects...), nil
}

func (f *fakeClient) GetIssue(ctx context.Context, id int) (*model.RawIssue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, issue := range f.issues {
		if issue.ID == id {
			out := issue
			return &out, nil
		}
	}
	return nil, &client.APIError{StatusCode: 404, Message: "issue not found"}
}

func (f *fakeClient) CreateIssue(ctx context.Context, req *client.CreateIssueRequest) (*model.RawIssue, error) {
	return nil, nil
}

func (f *fakeClient) UpdateIssue(ctx context.Context, id int, req *client.UpdateIssueRequest) (*model.RawIssue, error) {
	if f.updateGate != nil {
		<-f.updateGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	call := updateCall{id: id}
	if req.Status != nil {
		call.status = *req.Status
	}
	f.updateCalls = append(f.updateCalls, call)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &model.RawIssue{ID: id}, nil
}

func (f *fakeClient) DeleteIssue(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls = append(f.deleteCalls, id)
	return f.deleteErr
}

func (f *fakeClient) ListUsers(ctx context.Context) ([]model.RawUser, error) { return nil, nil }

func (f *fakeClient) Health(ctx context.Context) (string, error) { return "ok", nil }

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) updateCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.updateCalls)
}

// recordingNotifier captures toast notifications.
type recordingNotifier struct {
	mu     sync.Mutex
	infos  []string
	errors []string
}

func (n *recordingNotifier) Info(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.infos = append(n.infos, msg)
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// boardFixture returns a fake client preloaded with a small board: three
// issues across two projects, two of them assigned to user 1.
func boardFixture() *fakeClient {
	return &fakeClient{
		issues: []model.RawIssue{
			{ID: 1, Name: "Fix login", Type: "bug", Status: "todo", Priority: "high",
				ProjectID: 1, Assignee: &model.RawUser{ID: 1, Name: "Alice Smith"}},
			{ID: 2, Name: "Fix login page", Type: "task", Status: "qa", Priority: "moderate",
				ProjectID: 1, Assignee: &model.RawUser{ID: 2, Name: "Bob Jones"}},
			{ID: 3, Name: "Write docs", Type: "story", Status: "in_progress",
				ProjectID: 2, Assignee: &model.RawUser{ID: 1, Name: "Alice Smith"}},
		},
		projects: []model.RawProject{
			{ID: 1, Name: "Auth Service"},
			{ID: 2, Name: "Handbook"},
		},
	}
}

// loadedStore builds a store over the fake client and runs an initial load.
func loadedStore(t *testing.T, fake *fakeClient) *Store {
	t.Helper()
	s := NewStore(fake, testLogger(), nil)
	if err := s.Load(context.Background(), client.ScopeAll()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s
}
