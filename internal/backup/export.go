// Package backup exports the full issues dataset as JSONL and ships it to
// configured destinations (stdout, files, S3) on demand or on a schedule.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/groblegark/trak/internal/model"
	"github.com/groblegark/trak/internal/store"
)

// header is the first JSONL record written by ExportJSONL.
type header struct {
	Version      string    `json:"version"`
	Type         string    `json:"type"`
	Timestamp    time.Time `json:"timestamp"`
	IssueCount   int       `json:"issue_count"`
	ProjectCount int       `json:"project_count"`
	UserCount    int       `json:"user_count"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// ExportJSONL writes all projects, users, and issues from the store as JSONL
// to w. Issues are sorted by ID and include their joined references, so an
// export is readable without the projects that produced it.
func ExportJSONL(ctx context.Context, s store.Store, w io.Writer) error {
	issues, err := s.ListIssues(ctx, store.IssueFilter{})
	if err != nil {
		return fmt.Errorf("list issues: %w", err)
	}
	sort.Slice(issues, func(i, j int) bool {
		return issues[i].ID < issues[j].ID
	})

	projects, err := s.ListProjects(ctx)
	if err != nil {
		return fmt.Errorf("list projects: %w", err)
	}

	users, err := s.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(header{
		Version:      "1",
		Type:         "header",
		Timestamp:    time.Now().UTC(),
		IssueCount:   len(issues),
		ProjectCount: len(projects),
		UserCount:    len(users),
	}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	for _, p := range projects {
		if err := enc.Encode(record{Type: "project", Data: p}); err != nil {
			return fmt.Errorf("encode project %d: %w", p.ID, err)
		}
	}
	for _, u := range users {
		if err := enc.Encode(record{Type: "user", Data: u}); err != nil {
			return fmt.Errorf("encode user %d: %w", u.ID, err)
		}
	}
	for _, issue := range issues {
		if err := enc.Encode(record{Type: "issue", Data: issue}); err != nil {
			return fmt.Errorf("encode issue %d: %w", issue.ID, err)
		}
	}

	return nil
}

// ExportClientJSONL is ExportJSONL for the board side: it exports the issue
// list a client already holds, without a server-side store.
func ExportClientJSONL(issues []model.Issue, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(header{
		Version:    "1",
		Type:       "header",
		Timestamp:  time.Now().UTC(),
		IssueCount: len(issues),
	}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}
	for i := range issues {
		if err := enc.Encode(record{Type: "issue", Data: &issues[i]}); err != nil {
			return fmt.Errorf("encode issue %s: %w", issues[i].DisplayID, err)
		}
	}
	return nil
}
