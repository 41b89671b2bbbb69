// Package board implements the issue board state engine: a store that owns
// the loaded issue collection, a memoized filter/partition view over it, and
// the drag-session controller that turns drops into status transitions.
package board

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/groblegark/trak/internal/client"
	"github.com/groblegark/trak/internal/model"
)

// Notifier receives user-facing transient notifications (the toast channel).
// Network failures surface here, never as raw errors to view code.
type Notifier interface {
	Info(msg string)
	Error(msg string)
}

type noopNotifier struct{}

func (noopNotifier) Info(string)  {}
func (noopNotifier) Error(string) {}

// Store is the single source of truth for the loaded issue collection and
// project list. All reads go through Snapshot/Lookup so optimistic updates
// and rollbacks are immediately visible to every consumer.
type Store struct {
	client client.IssueClient
	logger *slog.Logger
	notify Notifier

	mu         sync.Mutex
	issues     []*model.Issue
	projects   []model.Project
	loaded     bool
	loadErr    error
	generation uint64
}

// NewStore creates a board store. A nil notifier disables notifications.
func NewStore(c client.IssueClient, logger *slog.Logger, notify Notifier) *Store {
	if notify == nil {
		notify = noopNotifier{}
	}
	return &Store{client: c, logger: logger, notify: notify}
}

// Load fetches issues and projects for the scope concurrently, normalizes the
// batch, and replaces the collection. The store is not considered loaded until
// both fetches have settled. A failed projects fetch degrades project-name
// resolution but does not fail the load; a failed issues fetch leaves the
// store in an empty, error-flagged state that a repeated Load clears.
func (s *Store) Load(ctx context.Context, scope client.Scope) error {
	var (
		wg          sync.WaitGroup
		rawIssues   []model.RawIssue
		rawProjects []model.RawProject
		issuesErr   error
		projectsErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		rawIssues, issuesErr = s.client.ListIssues(ctx, scope)
	}()
	go func() {
		defer wg.Done()
		rawProjects, projectsErr = s.client.ListProjects(ctx)
	}()
	wg.Wait()

	projectsByID := make(map[int]model.RawProject, len(rawProjects))
	var projects []model.Project
	if projectsErr != nil {
		s.logger.Warn("loading projects failed; issue project names fall back to embedded references",
			"err", projectsErr)
	} else {
		for _, p := range rawProjects {
			projectsByID[p.ID] = p
			projects = append(projects, model.Project{BackendID: p.ID, Name: p.Name})
		}
	}

	if issuesErr != nil {
		s.mu.Lock()
		s.issues = nil
		s.projects = projects
		s.loaded = true
		s.loadErr = issuesErr
		s.generation++
		s.mu.Unlock()
		s.notify.Error("Failed to load issues")
		return fmt.Errorf("loading issues: %w", issuesErr)
	}

	issues := model.NormalizeAll(rawIssues, projectsByID, s.logger)

	// Last load wins: the whole collection is replaced atomically, including
	// any in-flight optimistic edits made against the previous collection.
	s.mu.Lock()
	s.issues = issues
	s.projects = projects
	s.loaded = true
	s.loadErr = nil
	s.generation++
	s.mu.Unlock()
	return nil
}

// SetStatus optimistically moves an issue to a new status. The in-memory
// mutation is visible to all consumers before the backend call is dispatched;
// on backend failure the previous status is restored in full and false is
// returned. An unknown display id, an issue without a backend id, or an
// invalid status returns false with no network call. Moving an issue to its
// current status is a no-op success.
func (s *Store) SetStatus(ctx context.Context, displayID string, status model.Status) bool {
	if !status.IsValid() {
		return false
	}

	s.mu.Lock()
	issue := s.findLocked(displayID)
	if issue == nil || issue.BackendID == 0 {
		s.mu.Unlock()
		return false
	}
	prev := issue.Status
	backendID := issue.BackendID
	s.mu.Unlock()

	if prev == status {
		return true
	}

	ok := s.mutate(ctx,
		func() { issue.Status = status },
		func() { issue.Status = prev },
		func(ctx context.Context) error {
			_, err := s.client.UpdateIssue(ctx, backendID, client.StatusUpdate(status))
			return err
		},
	)
	if !ok {
		s.logger.Warn("status update failed, rolled back",
			"issue", displayID, "from", prev, "to", status)
		s.notify.Error("Failed to update issue status")
		return false
	}
	s.notify.Info("Issue status updated")
	return true
}

// Remove deletes an issue on the backend and, only on success, drops it from
// the collection. On failure the issue remains untouched.
func (s *Store) Remove(ctx context.Context, backendID int) bool {
	if err := s.client.DeleteIssue(ctx, backendID); err != nil {
		s.logger.Warn("issue delete failed", "id", backendID, "err", err)
		s.notify.Error("Failed to delete issue")
		return false
	}

	s.mu.Lock()
	for i, issue := range s.issues {
		if issue.BackendID == backendID {
			s.issues = append(s.issues[:i], s.issues[i+1:]...)
			s.generation++
			break
		}
	}
	s.mu.Unlock()
	s.notify.Info("Issue deleted")
	return true
}

// Snapshot returns a copy of the current collection in load order, plus the
// store generation. The generation increments on every visible change and is
// what the view layer keys its memoization on.
func (s *Store) Snapshot() ([]model.Issue, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Issue, len(s.issues))
	for i, issue := range s.issues {
		out[i] = *issue
	}
	return out, s.generation
}

// Lookup returns a copy of the issue with the given display id.
func (s *Store) Lookup(displayID string) (model.Issue, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if issue := s.findLocked(displayID); issue != nil {
		return *issue, true
	}
	return model.Issue{}, false
}

// Projects returns the loaded project reference list.
func (s *Store) Projects() []model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// Loaded reports whether a load cycle has settled (successfully or not).
func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// LoadErr returns the error from the last load cycle, if any. Callers surface
// it as a retryable empty state; a subsequent successful Load clears it.
func (s *Store) LoadErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

func (s *Store) findLocked(displayID string) *model.Issue {
	for _, issue := range s.issues {
		if issue.DisplayID == displayID {
			return issue
		}
	}
	return nil
}
