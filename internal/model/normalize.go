package model

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode"
)

// Normalize converts a raw backend issue into its canonical form. It is the
// single boundary where shape differences in the payload (embedded vs. flat
// references, foreign priority vocabulary) are resolved; everything past it
// consumes one strict shape.
//
// Records without a backend id and records carrying a status outside the
// canonical set cannot be represented and return an error; batch callers drop
// them (see NormalizeAll).
func Normalize(raw RawIssue, projectsByID map[int]RawProject) (*Issue, error) {
	if raw.ID == 0 {
		return nil, fmt.Errorf("issue %q: missing backend id", raw.Name)
	}

	status := Status(raw.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("issue %d: unknown status %q", raw.ID, raw.Status)
	}

	project := resolveProject(raw, projectsByID)
	displayID := project.Key + "-" + strconv.Itoa(raw.ID)

	points := raw.StoryPoint
	if points < 0 {
		points = 0
	}

	return &Issue{
		DisplayID:   displayID,
		BackendID:   raw.ID,
		Title:       raw.Name,
		Type:        Type(raw.Type),
		Priority:    MapPriority(raw.Priority),
		Status:      status,
		Assignee:    resolveUser(raw.Assignee, raw.AssignedTo, "Unassigned"),
		Reporter:    resolveUser(raw.Reporter, raw.AssignedBy, "Unknown"),
		Project:     project,
		StoryPoints: points,
		CreatedAt:   raw.CreatedAt,
		UpdatedAt:   raw.UpdatedAt,
	}, nil
}

// NormalizeAll normalizes a batch of raw records, preserving order. Malformed
// records are logged and skipped so one bad entry cannot abort a load.
func NormalizeAll(raws []RawIssue, projectsByID map[int]RawProject, logger *slog.Logger) []*Issue {
	issues := make([]*Issue, 0, len(raws))
	for _, raw := range raws {
		issue, err := Normalize(raw, projectsByID)
		if err != nil {
			logger.Warn("dropping malformed issue record", "err", err)
			continue
		}
		issues = append(issues, issue)
	}
	return issues
}

// resolveProject prefers the embedded project object, then the projects map,
// and finally synthesizes a placeholder so normalization never fails on a
// missing project reference.
func resolveProject(raw RawIssue, projectsByID map[int]RawProject) ProjectRef {
	var name string
	var id *int

	switch {
	case raw.Project != nil:
		name = raw.Project.Name
		if raw.Project.ID != 0 {
			v := raw.Project.ID
			id = &v
		} else if raw.ProjectID != 0 {
			v := raw.ProjectID
			id = &v
		}
	default:
		if p, ok := projectsByID[raw.ProjectID]; ok && raw.ProjectID != 0 {
			name = p.Name
			v := raw.ProjectID
			id = &v
		}
	}

	if name == "" {
		name = "Unknown Project"
		if raw.ProjectID != 0 {
			v := raw.ProjectID
			id = &v
		}
	}

	return ProjectRef{Key: ProjectKey(name), Name: name, BackendID: id}
}

func resolveUser(u *RawUser, flatID int, fallbackName string) UserRef {
	name := fallbackName
	var id *int
	if u != nil && u.Name != "" {
		name = u.Name
	}
	switch {
	case u != nil && u.ID != 0:
		v := u.ID
		id = &v
	case flatID != 0:
		v := flatID
		id = &v
	}
	return UserRef{DisplayName: name, Initials: Initials(name), BackendID: id}
}

// ProjectKey derives the short cosmetic key shown in issue display ids: the
// first two letters of a single-word name, or the first letter of up to three
// words. It is recomputed wherever displayed and never persisted.
func ProjectKey(name string) string {
	words := strings.Fields(name)
	switch len(words) {
	case 0:
		return ""
	case 1:
		r := []rune(words[0])
		if len(r) > 2 {
			r = r[:2]
		}
		return strings.ToUpper(string(r))
	default:
		if len(words) > 3 {
			words = words[:3]
		}
		var b strings.Builder
		for _, w := range words {
			b.WriteRune(unicode.ToUpper([]rune(w)[0]))
		}
		return b.String()
	}
}

// Initials derives the one- or two-letter avatar text for a user name.
func Initials(name string) string {
	words := strings.Fields(name)
	switch len(words) {
	case 0:
		return "U"
	case 1:
		return strings.ToUpper(string([]rune(words[0])[0]))
	default:
		first := unicode.ToUpper([]rune(words[0])[0])
		second := unicode.ToUpper([]rune(words[1])[0])
		return string([]rune{first, second})
	}
}

// MapPriority maps the backend priority vocabulary onto the canonical one.
// Unknown or empty values become medium.
func MapPriority(raw string) Priority {
	switch strings.ToLower(raw) {
	case "low":
		return PriorityLow
	case "medium", "moderate":
		return PriorityMedium
	case "high":
		return PriorityHigh
	case "critical":
		return PriorityCritical
	}
	return PriorityMedium
}
