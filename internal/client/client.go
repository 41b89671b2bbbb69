// Package client provides a transport-agnostic interface for the trak issues
// service and an HTTP/JSON implementation that talks to its REST API.
package client

import (
	"context"

	"github.com/groblegark/trak/internal/model"
)

// IssueClient is the interface the board store and CLI commands use to talk
// to the issues service. All four mutating/listing operations are fallible;
// callers are expected to handle errors without crashing (the board store
// converts them into rollbacks or error states).
type IssueClient interface {
	// Issues
	ListIssues(ctx context.Context, scope Scope) ([]model.RawIssue, error)
	GetIssue(ctx context.Context, id int) (*model.RawIssue, error)
	CreateIssue(ctx context.Context, req *CreateIssueRequest) (*model.RawIssue, error)
	UpdateIssue(ctx context.Context, id int, req *UpdateIssueRequest) (*model.RawIssue, error)
	DeleteIssue(ctx context.Context, id int) error

	// Reference data
	ListProjects(ctx context.Context) ([]model.RawProject, error)
	ListUsers(ctx context.Context) ([]model.RawUser, error)

	// Health
	Health(ctx context.Context) (string, error)

	// Lifecycle
	Close() error
}

// Scope narrows a listing to one project; the zero value means "all issues".
type Scope struct {
	ProjectID *int
}

// ScopeAll returns the unrestricted scope.
func ScopeAll() Scope { return Scope{} }

// ScopeProject returns a scope restricted to one project.
func ScopeProject(id int) Scope { return Scope{ProjectID: &id} }

// CreateIssueRequest holds parameters for creating an issue.
type CreateIssueRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type"`
	Status      string `json:"status,omitempty"`
	Priority    string `json:"priority"`
	StoryPoint  int    `json:"story_point,omitempty"`
	ProjectID   int    `json:"project_id"`
	SprintID    *int   `json:"sprint_id,omitempty"`
	AssignedTo  *int   `json:"assigned_to,omitempty"`
}

// UpdateIssueRequest holds optional parameters for updating an issue.
// Nil pointer fields mean "don't change". Status-only updates (the board's
// drag transitions) set just the Status field.
type UpdateIssueRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Type        *string `json:"type,omitempty"`
	Status      *string `json:"status,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	StoryPoint  *int    `json:"story_point,omitempty"`
	AssignedTo  *int    `json:"assigned_to,omitempty"`
}

// StatusUpdate returns an UpdateIssueRequest that changes only the status.
func StatusUpdate(status model.Status) *UpdateIssueRequest {
	s := status.String()
	return &UpdateIssueRequest{Status: &s}
}
