// Package server implements the trak HTTP/JSON API: issue and project CRUD,
// reference data, and health, with lifecycle events published on every
// successful mutation.
package server

import (
	"context"
	"log/slog"

	"github.com/groblegark/trak/internal/events"
	"github.com/groblegark/trak/internal/store"
)

// IssueServer serves the issues API backed by the given store.
type IssueServer struct {
	store     store.Store
	publisher events.Publisher
	logger    *slog.Logger
}

// NewIssueServer returns a new IssueServer backed by the given store and
// publisher. A nil logger falls back to slog.Default().
func NewIssueServer(s store.Store, p events.Publisher, logger *slog.Logger) *IssueServer {
	if logger == nil {
		logger = slog.Default()
	}
	if p == nil {
		p = &events.NoopPublisher{}
	}
	return &IssueServer{store: s, publisher: p, logger: logger}
}

// publish emits a lifecycle event. Publishing is best-effort; failures are
// logged and never block the mutation that triggered them.
func (s *IssueServer) publish(ctx context.Context, topic string, event any) {
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		s.logger.Warn("failed to publish event", "topic", topic, "error", err)
	}
}

// inputError indicates invalid user input. Handlers map it to 400.
type inputError string

func (e inputError) Error() string { return string(e) }
