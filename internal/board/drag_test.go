package board

import (
	"context"
	"errors"
	"testing"

	"github.com/groblegark/trak/internal/model"
)

func TestDrag_DropOnColumn(t *testing.T) {
	fake := boardFixture()
	s := loadedStore(t, fake)
	d := NewDragController(s)

	if err := d.Start("AS-1"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if id, ok := d.Active(); !ok || id != "AS-1" {
		t.Errorf("Active = %q/%v, want AS-1/true", id, ok)
	}

	if got := d.End(context.Background(), "qa"); got != OutcomeMoved {
		t.Fatalf("End = %v, want OutcomeMoved", got)
	}
	issue, _ := s.Lookup("AS-1")
	if issue.Status != model.StatusQA {
		t.Errorf("status = %q, want qa", issue.Status)
	}
	if _, ok := d.Active(); ok {
		t.Error("controller not idle after End")
	}
}

func TestDrag_DropOnCardLandsInItsColumn(t *testing.T) {
	s := loadedStore(t, boardFixture())
	d := NewDragController(s)

	// AS-1 is todo, AS-2 is qa; dropping onto the card implies qa.
	if err := d.Start("AS-1"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if got := d.End(context.Background(), "AS-2"); got != OutcomeMoved {
		t.Fatalf("End = %v, want OutcomeMoved", got)
	}
	issue, _ := s.Lookup("AS-1")
	if issue.Status != model.StatusQA {
		t.Errorf("status = %q, want qa (the target card's column)", issue.Status)
	}
}

func TestDrag_CancelledSessionHasNoSideEffects(t *testing.T) {
	fake := boardFixture()
	s := loadedStore(t, fake)
	d := NewDragController(s)

	if err := d.Start("AS-1"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if got := d.End(context.Background(), ""); got != OutcomeCancelled {
		t.Fatalf("End = %v, want OutcomeCancelled", got)
	}

	issue, _ := s.Lookup("AS-1")
	if issue.Status != model.StatusTodo {
		t.Errorf("status = %q changed by cancelled drag", issue.Status)
	}
	if fake.updateCount() != 0 {
		t.Errorf("update calls = %d, want 0", fake.updateCount())
	}
	// The controller is idle again: a new session starts immediately.
	if err := d.Start("AS-2"); err != nil {
		t.Errorf("Start after cancel: %v", err)
	}
}

func TestDrag_SameColumnIsNoop(t *testing.T) {
	fake := boardFixture()
	s := loadedStore(t, fake)
	d := NewDragController(s)

	if err := d.Start("AS-1"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if got := d.End(context.Background(), "todo"); got != OutcomeNoChange {
		t.Fatalf("End = %v, want OutcomeNoChange", got)
	}
	if fake.updateCount() != 0 {
		t.Errorf("update calls = %d, want 0 for same-column drop", fake.updateCount())
	}
}

func TestDrag_UnresolvableTargetIsNoop(t *testing.T) {
	fake := boardFixture()
	s := loadedStore(t, fake)
	d := NewDragController(s)

	if err := d.Start("AS-1"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if got := d.End(context.Background(), "ZZ-404"); got != OutcomeNoChange {
		t.Fatalf("End = %v, want OutcomeNoChange", got)
	}
	if fake.updateCount() != 0 {
		t.Errorf("update calls = %d, want 0", fake.updateCount())
	}
	if err := d.Start("AS-1"); err != nil {
		t.Errorf("Start after no-op: %v", err)
	}
}

func TestDrag_DraggedIssueGoneIsNoop(t *testing.T) {
	s := loadedStore(t, boardFixture())
	d := NewDragController(s)

	if err := d.Start("GONE-1"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if got := d.End(context.Background(), "qa"); got != OutcomeNoChange {
		t.Fatalf("End = %v, want OutcomeNoChange", got)
	}
}

func TestDrag_SingleSession(t *testing.T) {
	s := loadedStore(t, boardFixture())
	d := NewDragController(s)

	if err := d.Start("AS-1"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := d.Start("AS-2"); !errors.Is(err, ErrSessionActive) {
		t.Errorf("second Start = %v, want ErrSessionActive", err)
	}
	d.End(context.Background(), "")
	if err := d.Start("AS-2"); err != nil {
		t.Errorf("Start after resolution: %v", err)
	}
}

func TestDrag_BackendFailureRollsBack(t *testing.T) {
	fake := boardFixture()
	fake.updateErr = errors.New("backend rejected")
	s := loadedStore(t, fake)
	d := NewDragController(s)

	if err := d.Start("AS-1"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if got := d.End(context.Background(), "qa"); got != OutcomeFailed {
		t.Fatalf("End = %v, want OutcomeFailed", got)
	}

	// The store already compensated; the controller is idle either way.
	issue, _ := s.Lookup("AS-1")
	if issue.Status != model.StatusTodo {
		t.Errorf("status = %q, want todo restored", issue.Status)
	}
	if err := d.Start("AS-1"); err != nil {
		t.Errorf("Start after failed drop: %v", err)
	}
}

func TestDrag_EndWithoutStart(t *testing.T) {
	s := loadedStore(t, boardFixture())
	d := NewDragController(s)

	if got := d.End(context.Background(), "qa"); got != OutcomeCancelled {
		t.Errorf("End without session = %v, want OutcomeCancelled", got)
	}
}
