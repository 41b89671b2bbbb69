package store

import (
	"context"

	"github.com/groblegark/trak/internal/model"
)

// IssueFilter narrows a ListIssues query. Zero values mean "no constraint".
type IssueFilter struct {
	ProjectID *int
	Status    []model.Status
	Search    string
}

// Store defines the persistence interface for the issues service. Not-found
// lookups surface sql.ErrNoRows so handlers can map them to 404s.
type Store interface {
	// Issues
	CreateIssue(ctx context.Context, issue *model.RawIssue) error
	GetIssue(ctx context.Context, id int) (*model.RawIssue, error)
	ListIssues(ctx context.Context, filter IssueFilter) ([]*model.RawIssue, error)
	UpdateIssue(ctx context.Context, issue *model.RawIssue) error
	DeleteIssue(ctx context.Context, id int) error

	// Projects
	CreateProject(ctx context.Context, project *model.RawProject) error
	GetProject(ctx context.Context, id int) (*model.RawProject, error)
	ListProjects(ctx context.Context) ([]*model.RawProject, error)

	// Users
	ListUsers(ctx context.Context) ([]*model.RawUser, error)

	// Lifecycle
	Close() error
}
