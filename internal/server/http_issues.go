package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/groblegark/trak/internal/events"
	"github.com/groblegark/trak/internal/model"
	"github.com/groblegark/trak/internal/store"
)

// createIssueInput is the request body for POST /v1/issues.
type createIssueInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	StoryPoint  int    `json:"story_point"`
	ProjectID   int    `json:"project_id"`
	SprintID    *int   `json:"sprint_id"`
	AssignedTo  *int   `json:"assigned_to"`
	AssignedBy  *int   `json:"assigned_by"`
}

// updateIssueInput is the request body for PATCH /v1/issues/{id}.
// Nil fields are left unchanged.
type updateIssueInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Type        *string `json:"type"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	StoryPoint  *int    `json:"story_point"`
	SprintID    *int    `json:"sprint_id"`
	AssignedTo  *int    `json:"assigned_to"`
}

// handleCreateIssue handles POST /v1/issues.
func (s *IssueServer) handleCreateIssue(w http.ResponseWriter, r *http.Request) {
	var in createIssueInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	issue, err := s.createIssue(r.Context(), in)
	if err != nil {
		var ie inputError
		if errors.As(err, &ie) {
			writeError(w, http.StatusBadRequest, ie.Error())
		} else {
			s.logger.Error("failed to create issue", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to create issue")
		}
		return
	}

	writeData(w, http.StatusCreated, issue)
}

func (s *IssueServer) createIssue(ctx context.Context, in createIssueInput) (*model.RawIssue, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, inputError("name is required")
	}
	if in.Type == "" {
		in.Type = string(model.TypeTask)
	}
	if in.Status == "" {
		in.Status = string(model.StatusTodo)
	}
	if !model.Status(in.Status).IsValid() {
		return nil, inputError("invalid status: " + in.Status)
	}
	if in.Priority == "" {
		in.Priority = string(model.PriorityMedium)
	}

	issue := &model.RawIssue{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Type:        in.Type,
		Status:      in.Status,
		Priority:    in.Priority,
		StoryPoint:  in.StoryPoint,
		ProjectID:   in.ProjectID,
		SprintID:    in.SprintID,
	}
	if in.AssignedTo != nil {
		issue.AssignedTo = *in.AssignedTo
	}
	if in.AssignedBy != nil {
		issue.AssignedBy = *in.AssignedBy
	}

	if err := s.store.CreateIssue(ctx, issue); err != nil {
		return nil, err
	}

	// Re-read so the response carries the joined references.
	created, err := s.store.GetIssue(ctx, issue.ID)
	if err != nil {
		created = issue
	}

	s.publish(ctx, events.TopicIssueCreated, events.IssueCreated{Issue: created})
	return created, nil
}

// handleListIssues handles GET /v1/issues.
func (s *IssueServer) handleListIssues(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.IssueFilter{Search: q.Get("search")}

	if v := q.Get("project_id"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid project_id")
			return
		}
		filter.ProjectID = &n
	}
	if v := q.Get("status"); v != "" {
		for _, st := range strings.Split(v, ",") {
			filter.Status = append(filter.Status, model.Status(st))
		}
	}

	issues, err := s.store.ListIssues(r.Context(), filter)
	if err != nil {
		s.logger.Error("failed to list issues", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list issues")
		return
	}

	// Never serve null for an empty board.
	if issues == nil {
		issues = []*model.RawIssue{}
	}
	writeData(w, http.StatusOK, issues)
}

// handleGetIssue handles GET /v1/issues/{id}.
func (s *IssueServer) handleGetIssue(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid issue id")
		return
	}

	issue, err := s.store.GetIssue(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "issue not found")
			return
		}
		s.logger.Error("failed to get issue", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get issue")
		return
	}

	writeData(w, http.StatusOK, issue)
}

// handleUpdateIssue handles PATCH /v1/issues/{id}. The handler reads the
// current row, applies only the fields present in the body, and writes the
// merged record back.
func (s *IssueServer) handleUpdateIssue(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid issue id")
		return
	}

	var in updateIssueInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	issue, changes, err := s.updateIssue(r.Context(), id, in)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			writeError(w, http.StatusNotFound, "issue not found")
		case errors.As(err, new(inputError)):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			s.logger.Error("failed to update issue", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to update issue")
		}
		return
	}

	s.publish(r.Context(), events.TopicIssueUpdated, events.IssueUpdated{Issue: issue, Changes: changes})
	writeData(w, http.StatusOK, issue)
}

func (s *IssueServer) updateIssue(ctx context.Context, id int, in updateIssueInput) (*model.RawIssue, map[string]any, error) {
	issue, err := s.store.GetIssue(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	changes := make(map[string]any)
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, nil, inputError("name cannot be empty")
		}
		issue.Name = strings.TrimSpace(*in.Name)
		changes["name"] = issue.Name
	}
	if in.Description != nil {
		issue.Description = *in.Description
		changes["description"] = issue.Description
	}
	if in.Type != nil {
		issue.Type = *in.Type
		changes["type"] = issue.Type
	}
	if in.Status != nil {
		if !model.Status(*in.Status).IsValid() {
			return nil, nil, inputError("invalid status: " + *in.Status)
		}
		issue.Status = *in.Status
		changes["status"] = issue.Status
	}
	if in.Priority != nil {
		issue.Priority = *in.Priority
		changes["priority"] = issue.Priority
	}
	if in.StoryPoint != nil {
		issue.StoryPoint = *in.StoryPoint
		changes["story_point"] = issue.StoryPoint
	}
	if in.SprintID != nil {
		issue.SprintID = in.SprintID
		changes["sprint_id"] = *in.SprintID
	}
	if in.AssignedTo != nil {
		issue.AssignedTo = *in.AssignedTo
		changes["assigned_to"] = issue.AssignedTo
	}

	if err := s.store.UpdateIssue(ctx, issue); err != nil {
		return nil, nil, err
	}

	// Re-read so the response reflects refreshed timestamps and references.
	updated, err := s.store.GetIssue(ctx, id)
	if err != nil {
		updated = issue
	}
	return updated, changes, nil
}

// handleDeleteIssue handles DELETE /v1/issues/{id}.
func (s *IssueServer) handleDeleteIssue(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid issue id")
		return
	}

	if err := s.store.DeleteIssue(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "issue not found")
			return
		}
		s.logger.Error("failed to delete issue", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete issue")
		return
	}

	s.publish(r.Context(), events.TopicIssueDeleted, events.IssueDeleted{IssueID: id})
	w.WriteHeader(http.StatusNoContent)
}
