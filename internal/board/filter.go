package board

import (
	"strconv"
	"strings"
	"sync"

	"github.com/groblegark/trak/internal/model"
)

// Scope filter values understood by the view, besides a canonical status name.
const (
	FilterAll  = "all"
	FilterMine = "mine"
)

// Results is one derivation of the board view: the filtered list in load
// order, and the same issues partitioned by status. Every canonical status is
// present as a key, empty columns included; no issue appears in more than one
// column.
type Results struct {
	Filtered []model.Issue
	ByStatus map[model.Status][]model.Issue
}

type viewKey struct {
	generation uint64
	search     string
	scope      string
	actor      string
}

// View is a memoized filter/partition derivation over a store. It recomputes
// only when the collection generation, search text, scope filter, or actor
// changes; otherwise the previously derived Results pointer is returned
// unchanged, so consumers can cheaply detect "nothing to re-render".
type View struct {
	store *Store

	mu     sync.Mutex
	key    viewKey
	cached *Results
}

// NewView creates a view over the store. Views hold no issue data of their
// own; every derivation starts from the store's current snapshot.
func NewView(store *Store) *View {
	return &View{store: store}
}

// Results derives the filtered and partitioned board state. Search text
// matches case-insensitively against display id, title, and project name;
// scope is "all", "mine", or a canonical status. The actor identity backs the
// "mine" filter and is compared string-normalized against the assignee's
// backend id — an issue without a resolvable assignee id never matches.
func (v *View) Results(search, scope, actor string) *Results {
	issues, generation := v.store.Snapshot()
	key := viewKey{generation: generation, search: search, scope: scope, actor: actor}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.cached != nil && v.key == key {
		return v.cached
	}

	filtered := make([]model.Issue, 0, len(issues))
	for _, issue := range issues {
		if matches(issue, search, scope, actor) {
			filtered = append(filtered, issue)
		}
	}

	byStatus := make(map[model.Status][]model.Issue, len(model.Statuses))
	for _, status := range model.Statuses {
		byStatus[status] = []model.Issue{}
	}
	for _, issue := range filtered {
		byStatus[issue.Status] = append(byStatus[issue.Status], issue)
	}

	v.key = key
	v.cached = &Results{Filtered: filtered, ByStatus: byStatus}
	return v.cached
}

func matches(issue model.Issue, search, scope, actor string) bool {
	if search != "" {
		q := strings.ToLower(search)
		if !strings.Contains(strings.ToLower(issue.DisplayID), q) &&
			!strings.Contains(strings.ToLower(issue.Title), q) &&
			!strings.Contains(strings.ToLower(issue.Project.Name), q) {
			return false
		}
	}

	switch scope {
	case FilterAll, "":
		return true
	case FilterMine:
		if issue.Assignee.BackendID == nil {
			return false
		}
		id := strings.TrimSpace(actor)
		if id == "" {
			return false
		}
		return strconv.Itoa(*issue.Assignee.BackendID) == id
	default:
		return issue.Status == model.Status(scope)
	}
}
