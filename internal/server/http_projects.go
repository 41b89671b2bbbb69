package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/groblegark/trak/internal/events"
	"github.com/groblegark/trak/internal/model"
)

// handleCreateProject handles POST /v1/projects.
func (s *IssueServer) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(in.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	project := &model.RawProject{Name: strings.TrimSpace(in.Name)}
	if err := s.store.CreateProject(r.Context(), project); err != nil {
		s.logger.Error("failed to create project", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create project")
		return
	}

	s.publish(r.Context(), events.TopicProjectCreated, events.ProjectCreated{Project: project})
	writeData(w, http.StatusCreated, project)
}

// handleListProjects handles GET /v1/projects.
func (s *IssueServer) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.store.ListProjects(r.Context())
	if err != nil {
		s.logger.Error("failed to list projects", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list projects")
		return
	}
	if projects == nil {
		projects = []*model.RawProject{}
	}
	writeData(w, http.StatusOK, projects)
}

// handleGetProject handles GET /v1/projects/{id}.
func (s *IssueServer) handleGetProject(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	project, err := s.store.GetProject(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		s.logger.Error("failed to get project", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get project")
		return
	}

	writeData(w, http.StatusOK, project)
}

// handleListUsers handles GET /v1/users.
func (s *IssueServer) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.ListUsers(r.Context())
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	if users == nil {
		users = []*model.RawUser{}
	}
	writeData(w, http.StatusOK, users)
}
