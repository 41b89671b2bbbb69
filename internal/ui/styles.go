package ui

import (
	"fmt"

	"github.com/groblegark/trak/internal/model"
)

// ANSI256 color codes for board rendering.
const (
	colorAccent = 74  // blue
	colorMuted  = 245 // medium gray
	colorGreen  = 35
	colorYellow = 178
	colorRed    = 160
	colorPurple = 135
)

var noColor bool

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}

func colorize(code int, s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", code, s)
}

// RenderAccent returns s in the accent (blue) color.
func RenderAccent(s string) string {
	return colorize(colorAccent, s)
}

// RenderMuted returns s in the muted (gray) color.
func RenderMuted(s string) string {
	return colorize(colorMuted, s)
}

// RenderStatus returns the status label in its column color.
func RenderStatus(s model.Status) string {
	switch s {
	case model.StatusTodo, model.StatusCancelled:
		return colorize(colorMuted, s.Label())
	case model.StatusInProgress:
		return colorize(colorAccent, s.Label())
	case model.StatusQA:
		return colorize(colorPurple, s.Label())
	case model.StatusHold:
		return colorize(colorYellow, s.Label())
	case model.StatusBlocked:
		return colorize(colorRed, s.Label())
	case model.StatusCompleted:
		return colorize(colorGreen, s.Label())
	}
	return s.Label()
}

// RenderPriority returns the priority name colored by severity.
func RenderPriority(p model.Priority) string {
	switch p {
	case model.PriorityLow:
		return colorize(colorMuted, p.String())
	case model.PriorityMedium:
		return colorize(colorYellow, p.String())
	case model.PriorityHigh, model.PriorityCritical:
		return colorize(colorRed, p.String())
	}
	return p.String()
}
