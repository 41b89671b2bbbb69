package board

import (
	"context"
	"errors"
	"sync"

	"github.com/groblegark/trak/internal/model"
)

// ErrSessionActive is returned by Start while a prior drag session has not
// yet resolved back to idle.
var ErrSessionActive = errors.New("drag session already active")

// sessionState makes the drag lifecycle explicit: a session is either idle,
// holding a dragged issue, or resolving a drop against the store. Starting a
// new session anywhere but idle is rejected rather than silently clobbering
// the active one.
type sessionState int

const (
	stateIdle sessionState = iota
	stateDragging
	stateResolving
)

// Outcome reports how a drag session ended.
type Outcome int

const (
	// OutcomeCancelled: no drop target, or no session to resolve.
	OutcomeCancelled Outcome = iota
	// OutcomeNoChange: target unresolvable, dragged issue gone, or same column.
	OutcomeNoChange
	// OutcomeMoved: the status transition was accepted (optimistically applied
	// and confirmed by the backend).
	OutcomeMoved
	// OutcomeFailed: the transition was applied and rolled back on backend
	// failure; the store already restored the previous status.
	OutcomeFailed
)

// DragController interprets drag sessions against the store. Exactly one
// session can be active at a time; every End resolves to idle no matter how
// the session terminates, so a cancelled or failed drop can never wedge the
// controller.
type DragController struct {
	store *Store

	mu       sync.Mutex
	state    sessionState
	activeID string
}

// NewDragController creates a controller bound to the store.
func NewDragController(store *Store) *DragController {
	return &DragController{store: store}
}

// Start begins a drag session for the issue with the given display id. It
// records presentational state only; no mutation happens until End.
func (d *DragController) Start(displayID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != stateIdle {
		return ErrSessionActive
	}
	d.state = stateDragging
	d.activeID = displayID
	return nil
}

// Active returns the display id of the issue being dragged, if any. Renderers
// use it for the floating card preview.
func (d *DragController) Active() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == stateIdle {
		return "", false
	}
	return d.activeID, true
}

// End resolves the active drag session against dropTarget and returns the
// controller to idle. An empty target cancels the session with no side
// effects. A target naming a status column implies that column's status; a
// target naming another issue implies that issue's current status (dropping
// onto a card lands in the card's column). Unresolvable targets and
// same-status drops are no-ops. Otherwise the store's optimistic SetStatus
// runs, and its rollback semantics govern what consumers see on failure.
func (d *DragController) End(ctx context.Context, dropTarget string) Outcome {
	d.mu.Lock()
	if d.state != stateDragging {
		d.mu.Unlock()
		return OutcomeCancelled
	}
	draggedID := d.activeID
	if dropTarget == "" {
		d.resetLocked()
		d.mu.Unlock()
		return OutcomeCancelled
	}
	d.state = stateResolving
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.resetLocked()
		d.mu.Unlock()
	}()

	implied, ok := d.resolveTarget(dropTarget)
	if !ok {
		return OutcomeNoChange
	}
	dragged, ok := d.store.Lookup(draggedID)
	if !ok {
		return OutcomeNoChange
	}
	if dragged.Status == implied {
		return OutcomeNoChange
	}

	if d.store.SetStatus(ctx, draggedID, implied) {
		return OutcomeMoved
	}
	return OutcomeFailed
}

// resolveTarget maps a drop target id to the status it implies: either a
// status column key directly, or the current status of the issue dropped on.
func (d *DragController) resolveTarget(dropTarget string) (model.Status, bool) {
	if status := model.Status(dropTarget); status.IsValid() {
		return status, true
	}
	if target, ok := d.store.Lookup(dropTarget); ok {
		return target.Status, true
	}
	return "", false
}

func (d *DragController) resetLocked() {
	d.state = stateIdle
	d.activeID = ""
}
