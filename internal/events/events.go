// Package events defines the issue lifecycle event bus: topic names, payload
// types, and the Publisher/Subscriber interfaces with NATS and no-op
// implementations. The server publishes on every successful mutation; board
// clients subscribe (tk watch) to notice changes made elsewhere and reload.
package events

import (
	"context"

	"github.com/groblegark/trak/internal/idgen"
	"github.com/groblegark/trak/internal/model"
)

// Event topic constants.
const (
	TopicIssueCreated   = "trak.issue.created"
	TopicIssueUpdated   = "trak.issue.updated"
	TopicIssueDeleted   = "trak.issue.deleted"
	TopicProjectCreated = "trak.project.created"

	// TopicAll subscribes to every trak event (NATS wildcard).
	TopicAll = "trak.>"
)

// Envelope wraps every published payload with a unique event id.
type Envelope struct {
	ID    string `json:"id"`
	Topic string `json:"topic"`
	Data  any    `json:"data"`
}

// NewEnvelope wraps data for publishing. Event ids are informational; if id
// generation fails the envelope is still usable with an empty id.
func NewEnvelope(topic string, data any) Envelope {
	id, _ := idgen.Generate()
	return Envelope{ID: id, Topic: topic, Data: data}
}

// Event payload types.

type IssueCreated struct {
	Issue *model.RawIssue `json:"issue"`
}

type IssueUpdated struct {
	Issue   *model.RawIssue `json:"issue"`
	Changes map[string]any  `json:"changes"` // field name -> new value
}

type IssueDeleted struct {
	IssueID int `json:"issue_id"`
}

type ProjectCreated struct {
	Project *model.RawProject `json:"project"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
