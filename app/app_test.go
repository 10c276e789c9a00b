package app

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"

	"tasklist/model"
)

func newTestService() *Service {
	n := 0
	return NewService(WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("t%d", n)
	}))
}

func mustAddTask(t *testing.T, svc *Service, title string) model.Task {
	t.Helper()
	svc.SetDraft(title)
	task, err := svc.AddTask()
	if err != nil {
		t.Fatalf("add task %q failed: %v", title, err)
	}
	return task
}

func TestNewServiceUsesUUIDs(t *testing.T) {
	svc := NewService()
	a := mustAddTask(t, svc, "A")
	b := mustAddTask(t, svc, "B")
	if len(a.ID) != 36 || a.ID == b.ID {
		t.Fatalf("expected distinct uuid ids, got %q and %q", a.ID, b.ID)
	}
}

func TestAddNTasksInInsertionOrder(t *testing.T) {
	svc := newTestService()
	titles := []string{"one", "two", "three", "four"}
	for _, title := range titles {
		mustAddTask(t, svc, title)
	}

	tasks := svc.Tasks()
	if len(tasks) != len(titles) {
		t.Fatalf("expected %d tasks, got %d", len(titles), len(tasks))
	}
	for i, task := range tasks {
		if task.Title != titles[i] || task.Done {
			t.Fatalf("task %d: expected {%s due}, got %+v", i, titles[i], task)
		}
	}
}

func TestBlankSubmissionNeverChangesLength(t *testing.T) {
	svc := newTestService()
	mustAddTask(t, svc, "keep")

	for _, draft := range []string{"", "   ", "\t"} {
		svc.SetDraft(draft)
		if _, err := svc.AddTask(); !errors.Is(err, ErrEmptyTitle) {
			t.Fatalf("expected ErrEmptyTitle for %q, got %v", draft, err)
		}
	}
	if got := len(svc.Tasks()); got != 1 {
		t.Fatalf("expected 1 task, got %d", got)
	}
}

func TestEndToEndScenario(t *testing.T) {
	svc := newTestService()

	milk := mustAddTask(t, svc, "Buy milk")
	want := []model.Task{{ID: milk.ID, Title: "Buy milk", Done: false}}
	if got := svc.Tasks(); !reflect.DeepEqual(got, want) {
		t.Fatalf("after add\nwant=%+v\ngot=%+v", want, got)
	}

	if _, err := svc.ToggleDone(milk.ID); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	want[0].Done = true
	if got := svc.Tasks(); !reflect.DeepEqual(got, want) {
		t.Fatalf("after toggle\nwant=%+v\ngot=%+v", want, got)
	}

	if err := svc.BeginEdit(milk.ID); err != nil {
		t.Fatalf("begin edit failed: %v", err)
	}
	if err := svc.SetEditDraft("Buy oat milk"); err != nil {
		t.Fatalf("set edit draft failed: %v", err)
	}
	updated, err := svc.SaveEdit()
	if err != nil {
		t.Fatalf("save edit failed: %v", err)
	}
	if updated.Title != "Buy oat milk" || !updated.Done {
		t.Fatalf("unexpected saved task: %+v", updated)
	}
	want[0].Title = "Buy oat milk"
	if got := svc.Tasks(); !reflect.DeepEqual(got, want) {
		t.Fatalf("after edit\nwant=%+v\ngot=%+v", want, got)
	}

	if err := svc.DeleteTask(milk.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if got := svc.Tasks(); len(got) != 0 {
		t.Fatalf("expected empty list, got %+v", got)
	}
}

func TestCancelEditLeavesListUnchanged(t *testing.T) {
	svc := newTestService()
	a := mustAddTask(t, svc, "A")
	mustAddTask(t, svc, "B")
	before := svc.Tasks()

	if err := svc.BeginEdit(a.ID); err != nil {
		t.Fatalf("begin edit failed: %v", err)
	}
	if err := svc.SetEditDraft("nope"); err != nil {
		t.Fatalf("set edit draft failed: %v", err)
	}
	svc.CancelEdit()

	if got := svc.Tasks(); !reflect.DeepEqual(before, got) {
		t.Fatalf("cancel changed the list\nwant=%+v\ngot=%+v", before, got)
	}
	if st := svc.Screen(); st.ModalOpen {
		t.Fatalf("expected modal closed")
	}
}

func TestDeletingTaskUnderEditClosesModal(t *testing.T) {
	svc := newTestService()
	a := mustAddTask(t, svc, "A")
	if err := svc.BeginEdit(a.ID); err != nil {
		t.Fatalf("begin edit failed: %v", err)
	}
	if err := svc.DeleteTask(a.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.SaveEdit(); !errors.Is(err, ErrNotEditing) {
		t.Fatalf("expected ErrNotEditing after deleting the edit target, got %v", err)
	}
}

func TestScreenReturnsCopy(t *testing.T) {
	svc := newTestService()
	mustAddTask(t, svc, "A")

	st := svc.Screen()
	st.Tasks[0].Title = "mutated"
	tasks := svc.Tasks()
	tasks[0].Done = true

	if got := svc.Tasks()[0]; got.Title != "A" || got.Done {
		t.Fatalf("service state leaked through a returned copy: %+v", got)
	}
}

func TestUndoRevertsTaskMutations(t *testing.T) {
	svc := newTestService()
	a := mustAddTask(t, svc, "A")
	b := mustAddTask(t, svc, "B")
	if _, err := svc.ToggleDone(a.ID); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if err := svc.BeginEdit(b.ID); err != nil {
		t.Fatalf("begin edit failed: %v", err)
	}
	if err := svc.SetEditDraft("B2"); err != nil {
		t.Fatalf("set edit draft failed: %v", err)
	}
	if _, err := svc.SaveEdit(); err != nil {
		t.Fatalf("save edit failed: %v", err)
	}
	if err := svc.DeleteTask(a.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if err := svc.Undo(); err != nil {
		t.Fatalf("undo delete failed: %v", err)
	}
	if got := len(svc.Tasks()); got != 2 {
		t.Fatalf("expected 2 tasks after undo delete, got %d", got)
	}

	if err := svc.Undo(); err != nil {
		t.Fatalf("undo edit failed: %v", err)
	}
	if got := svc.Tasks()[1].Title; got != "B" {
		t.Fatalf("expected title B after undo edit, got %q", got)
	}

	if err := svc.Undo(); err != nil {
		t.Fatalf("undo toggle failed: %v", err)
	}
	if svc.Tasks()[0].Done {
		t.Fatalf("expected A due after undo toggle")
	}

	for i := 0; i < 2; i++ {
		if err := svc.Undo(); err != nil {
			t.Fatalf("undo add %d failed: %v", i, err)
		}
	}
	if got := len(svc.Tasks()); got != 0 {
		t.Fatalf("expected 0 tasks after undoing adds, got %d", got)
	}
	if err := svc.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("expected ErrNothingToUndo, got %v", err)
	}
}

func TestRejectedCommandsAreNotUndoable(t *testing.T) {
	svc := newTestService()
	svc.SetDraft("  ")
	_, _ = svc.AddTask()
	_, _ = svc.ToggleDone("missing")
	_ = svc.BeginEdit("missing")

	if err := svc.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("expected empty undo stack, got %v", err)
	}
}

func TestUndoClosesSessionForVanishedTask(t *testing.T) {
	svc := newTestService()
	a := mustAddTask(t, svc, "A")
	if err := svc.BeginEdit(a.ID); err != nil {
		t.Fatalf("begin edit failed: %v", err)
	}
	if err := svc.Undo(); err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if st := svc.Screen(); st.ModalOpen || st.EditingID != "" {
		t.Fatalf("expected edit session closed after undoing its task, got %+v", st)
	}
}

func TestUndoStackLimit20(t *testing.T) {
	svc := newTestService()
	for i := 0; i < 25; i++ {
		mustAddTask(t, svc, "Task")
	}
	for i := 0; i < 20; i++ {
		if err := svc.Undo(); err != nil {
			t.Fatalf("undo %d failed: %v", i, err)
		}
	}
	if got := len(svc.Tasks()); got != 5 {
		t.Fatalf("expected 5 tasks after undoing capped stack, got %d", got)
	}
	if err := svc.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("expected ErrNothingToUndo after consuming capped stack, got %v", err)
	}
}

func TestConcurrentTogglesAreSerialized(t *testing.T) {
	svc := newTestService()
	a := mustAddTask(t, svc, "A")

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.ToggleDone(a.ID)
		}()
	}
	wg.Wait()

	if svc.Tasks()[0].Done {
		t.Fatalf("an even number of toggles must leave the task due")
	}
}
