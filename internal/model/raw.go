package model

import "time"

// Raw types mirror the backend's wire shapes. Optional references arrive
// either embedded (assignee, project) or flat (assigned_to, project_id);
// nothing downstream of Normalize ever branches on which shape was sent.

// RawUser is a backend user record.
type RawUser struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// RawProject is a backend project record.
type RawProject struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// RawIssue is a backend issue record as served by the issues API.
type RawIssue struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Type        string      `json:"type"`
	Status      string      `json:"status"`
	Priority    string      `json:"priority,omitempty"`
	StoryPoint  int         `json:"story_point,omitempty"`
	ProjectID   int         `json:"project_id,omitempty"`
	Project     *RawProject `json:"project,omitempty"`
	SprintID    *int        `json:"sprint_id,omitempty"`
	AssignedTo  int         `json:"assigned_to,omitempty"`
	AssignedBy  int         `json:"assigned_by,omitempty"`
	Assignee    *RawUser    `json:"assignee,omitempty"`
	Reporter    *RawUser    `json:"reporter,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
