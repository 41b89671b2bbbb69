package backup

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/groblegark/trak/internal/model"
	"github.com/groblegark/trak/internal/store"
)

// exportStore is a minimal in-memory store.Store for export tests.
type exportStore struct {
	issues   []*model.RawIssue
	projects []*model.RawProject
	users    []*model.RawUser
	fail     error
}

func (m *exportStore) ListIssues(_ context.Context, _ store.IssueFilter) ([]*model.RawIssue, error) {
	return m.issues, m.fail
}
func (m *exportStore) ListProjects(_ context.Context) ([]*model.RawProject, error) {
	return m.projects, nil
}
func (m *exportStore) ListUsers(_ context.Context) ([]*model.RawUser, error) {
	return m.users, nil
}
func (m *exportStore) CreateIssue(_ context.Context, _ *model.RawIssue) error { return nil }
func (m *exportStore) GetIssue(_ context.Context, _ int) (*model.RawIssue, error) {
	return nil, sql.ErrNoRows
}
func (m *exportStore) UpdateIssue(_ context.Context, _ *model.RawIssue) error { return nil }
func (m *exportStore) DeleteIssue(_ context.Context, _ int) error             { return nil }
func (m *exportStore) CreateProject(_ context.Context, _ *model.RawProject) error {
	return nil
}
func (m *exportStore) GetProject(_ context.Context, _ int) (*model.RawProject, error) {
	return nil, sql.ErrNoRows
}
func (m *exportStore) Close() error { return nil }

func nonEmptyLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func TestExportJSONL_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportJSONL(context.Background(), &exportStore{}, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := nonEmptyLines(buf.String())
	if len(lines) != 1 {
		t.Fatalf("expected 1 line (header only), got %d", len(lines))
	}

	var h header
	if err := json.Unmarshal([]byte(lines[0]), &h); err != nil {
		t.Fatalf("unmarshal header: %v", err)
	}
	if h.Version != "1" || h.Type != "header" || h.IssueCount != 0 {
		t.Fatalf("unexpected header: %+v", h)
	}
}

func TestExportJSONL_Full(t *testing.T) {
	now := time.Now().UTC()
	ms := &exportStore{
		// Out of ID order to verify sorting.
		issues: []*model.RawIssue{
			{ID: 9, Name: "Second", Type: "task", Status: "qa", CreatedAt: now, UpdatedAt: now},
			{ID: 1, Name: "First", Type: "bug", Status: "todo", CreatedAt: now, UpdatedAt: now},
		},
		projects: []*model.RawProject{{ID: 1, Name: "Auth Service"}},
		users:    []*model.RawUser{{ID: 1, Name: "Alice Johnson"}},
	}

	var buf bytes.Buffer
	if err := ExportJSONL(context.Background(), ms, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := nonEmptyLines(buf.String())
	// 1 header + 1 project + 1 user + 2 issues = 5 lines
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d:\n%s", len(lines), buf.String())
	}

	var h header
	if err := json.Unmarshal([]byte(lines[0]), &h); err != nil {
		t.Fatalf("unmarshal header: %v", err)
	}
	if h.IssueCount != 2 || h.ProjectCount != 1 || h.UserCount != 1 {
		t.Fatalf("header counts: %+v", h)
	}

	// Record order: projects, users, then issues sorted by ID.
	var recs []record
	for _, line := range lines[1:] {
		var rec record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("unmarshal record: %v", err)
		}
		recs = append(recs, rec)
	}
	wantTypes := []string{"project", "user", "issue", "issue"}
	for i, rec := range recs {
		if rec.Type != wantTypes[i] {
			t.Errorf("record %d: expected type %q, got %q", i, wantTypes[i], rec.Type)
		}
	}

	var first struct {
		ID int `json:"id"`
	}
	data, _ := json.Marshal(recs[2].Data)
	if err := json.Unmarshal(data, &first); err != nil {
		t.Fatalf("unmarshal first issue: %v", err)
	}
	if first.ID != 1 {
		t.Errorf("issues not sorted by id: first is %d", first.ID)
	}
}

func TestExportClientJSONL(t *testing.T) {
	issues := []model.Issue{
		{DisplayID: "AS-1", Title: "Fix login", Status: model.StatusTodo},
		{DisplayID: "AS-2", Title: "Fix logout", Status: model.StatusQA},
	}

	var buf bytes.Buffer
	if err := ExportClientJSONL(issues, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := nonEmptyLines(buf.String())
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[1], `"AS-1"`) {
		t.Errorf("expected first issue record to mention AS-1: %s", lines[1])
	}
}

func TestSchedulerWritesDestinations(t *testing.T) {
	ms := &exportStore{
		issues: []*model.RawIssue{{ID: 1, Name: "First", Type: "task", Status: "todo"}},
	}
	dest := &captureDestination{}
	logger := testLogger()

	sched := NewScheduler(ms, []Destination{dest}, 50*time.Millisecond, logger)
	sched.Start()
	defer sched.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for dest.count() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("scheduler never wrote to destination")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if !strings.Contains(string(dest.last()), `"type":"header"`) {
		t.Errorf("expected JSONL header in payload: %s", dest.last())
	}
}
