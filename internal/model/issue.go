package model

import "time"

// Status represents the workflow state of an issue. The declaration order of
// Statuses below is the board's column order.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusQA         Status = "qa"
	StatusHold       Status = "hold"
	StatusBlocked    Status = "blocked"
	StatusCancelled  Status = "cancelled"
	StatusCompleted  Status = "completed"
)

// Statuses lists every canonical status in board column order.
var Statuses = []Status{
	StatusTodo,
	StatusInProgress,
	StatusQA,
	StatusHold,
	StatusBlocked,
	StatusCancelled,
	StatusCompleted,
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsValid checks whether the status is a known value.
func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusQA, StatusHold,
		StatusBlocked, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Label returns the human-readable column header for the status.
func (s Status) Label() string {
	switch s {
	case StatusTodo:
		return "To Do"
	case StatusInProgress:
		return "In Progress"
	case StatusQA:
		return "QA"
	case StatusHold:
		return "Hold"
	case StatusBlocked:
		return "Blocked"
	case StatusCancelled:
		return "Cancelled"
	case StatusCompleted:
		return "Done"
	}
	return string(s)
}

// Type categorizes an issue. Well-known constants are provided below, but
// types are extensible; values the backend invents display under "other"
// rather than being rejected.
type Type string

const (
	TypeStory   Type = "story"
	TypeTask    Type = "task"
	TypeBug     Type = "bug"
	TypeEpic    Type = "epic"
	TypeSubtask Type = "subtask"
	TypeFeature Type = "feature"
	TypeOther   Type = "other"
)

// String returns the string representation of the type.
func (t Type) String() string {
	return string(t)
}

// IsKnown reports whether the type is one of the well-known values.
func (t Type) IsKnown() bool {
	switch t {
	case TypeStory, TypeTask, TypeBug, TypeEpic, TypeSubtask, TypeFeature:
		return true
	}
	return false
}

// DisplayBucket returns the type used for display grouping: the type itself
// when well-known, otherwise "other".
func (t Type) DisplayBucket() Type {
	if t.IsKnown() {
		return t
	}
	return TypeOther
}

// Priority is the canonical priority vocabulary. The backend uses a different
// one (see MapPriority); only canonical values exist past the normalization
// boundary.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// String returns the string representation of the priority.
func (p Priority) String() string {
	return string(p)
}

// IsValid checks whether the priority is a known value.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// UserRef is a normalized reference to a user as shown on an issue card.
type UserRef struct {
	DisplayName string `json:"display_name"`
	Initials    string `json:"initials"`
	BackendID   *int   `json:"backend_id,omitempty"`
}

// ProjectRef is a normalized reference to the project an issue belongs to.
// Key is cosmetic, recomputed from the name, and never persisted.
type ProjectRef struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	BackendID *int   `json:"backend_id,omitempty"`
}

// Issue is the canonical, view-facing issue record. Issues are produced by
// Normalize during a load cycle and mutated only through the board store.
type Issue struct {
	DisplayID   string     `json:"display_id"`
	BackendID   int        `json:"backend_id"`
	Title       string     `json:"title"`
	Type        Type       `json:"type"`
	Priority    Priority   `json:"priority"`
	Status      Status     `json:"status"`
	Assignee    UserRef    `json:"assignee"`
	Reporter    UserRef    `json:"reporter"`
	Project     ProjectRef `json:"project"`
	StoryPoints int        `json:"story_points"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreatedAgo renders the creation time relative to now.
func (i *Issue) CreatedAgo(now time.Time) string {
	return RelTime(i.CreatedAt, now)
}

// UpdatedAgo renders the last-update time relative to now.
func (i *Issue) UpdatedAgo(now time.Time) string {
	return RelTime(i.UpdatedAt, now)
}

// Project is read-only reference data loaded alongside issues, used to
// resolve project names for issues that carry only a project id.
type Project struct {
	BackendID int    `json:"backend_id"`
	Name      string `json:"name"`
}
