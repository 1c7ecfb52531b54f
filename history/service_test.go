package history

import (
	"testing"

	"github.com/saniainf/tablecore/model"
)

func newTestModel(rows, cols int) *model.TableModel {
	return model.NewTableModel(model.NewDocument("t", rows, cols), nil)
}

func TestRecordSuppressesDuplicates(t *testing.T) {
	s := NewService(10)
	m := newTestModel(2, 2)

	if !s.Record(m) {
		t.Fatal("expected the first Record to succeed")
	}
	if s.Record(m) {
		t.Fatal("expected an unchanged model to be suppressed as a duplicate")
	}
	if _, err := m.SetCellValue(0, 0, "x"); err != nil {
		t.Fatal(err)
	}
	if !s.Record(m) {
		t.Fatal("expected a changed model to record")
	}
}

func TestUndoRedoCursor(t *testing.T) {
	s := NewService(10)
	m := newTestModel(2, 2)
	s.Record(m)
	mustSet(t, m, 0, 0, "a")
	s.Record(m)
	mustSet(t, m, 0, 0, "b")
	s.Record(m)

	if !s.CanUndo() {
		t.Fatal("expected CanUndo to be true")
	}
	doc, ok := s.Undo()
	if !ok || doc.Cells[0].Value != "a" {
		t.Fatalf("Undo() = %+v, ok=%v, want the snapshot with value a", doc, ok)
	}
	doc, ok = s.Undo()
	if !ok || len(doc.Cells) != 0 {
		t.Fatalf("Undo() = %+v, ok=%v, want the initial empty snapshot", doc, ok)
	}
	if s.CanUndo() {
		t.Fatal("expected CanUndo to be false at the bottom of the stack")
	}
	if !s.CanRedo() {
		t.Fatal("expected CanRedo to be true after undoing")
	}
	doc, ok = s.Redo()
	if !ok || doc.Cells[0].Value != "a" {
		t.Fatalf("Redo() = %+v, ok=%v, want the snapshot with value a", doc, ok)
	}
}

func TestRecordTruncatesTailAfterUndo(t *testing.T) {
	s := NewService(10)
	m := newTestModel(2, 2)
	s.Record(m)
	mustSet(t, m, 0, 0, "a")
	s.Record(m)
	mustSet(t, m, 0, 0, "b")
	s.Record(m)

	s.Undo()
	mustSet(t, m, 0, 0, "c")
	if !s.Record(m) {
		t.Fatal("expected the new branch to record")
	}
	if s.CanRedo() {
		t.Fatal("expected the redo tail (value b) to have been truncated")
	}
}

func TestRecordEvictsOldestWhenOverLimit(t *testing.T) {
	s := NewService(2)
	m := newTestModel(2, 2)
	s.Record(m)
	mustSet(t, m, 0, 0, "a")
	s.Record(m)
	mustSet(t, m, 0, 0, "b")
	s.Record(m)

	doc, ok := s.Undo()
	if !ok || doc.Cells[0].Value != "a" {
		t.Fatalf("Undo() = %+v, ok=%v, want value a (the oldest snapshot should have been evicted)", doc, ok)
	}
	if s.CanUndo() {
		t.Fatal("expected no further undo once the oldest snapshot was evicted")
	}
}

func TestRestoreClearsSuspendEvenOnError(t *testing.T) {
	s := NewService(10)
	doc := model.NewDocument("t", 2, 2)
	errBoom := testErr("boom")

	err := s.Restore(func(*model.Document) error { return errBoom }, doc)
	if err != errBoom {
		t.Fatalf("Restore returned %v, want errBoom", err)
	}
	if s.IsSuspended() {
		t.Fatal("expected suspend to be cleared even when applyFn errors")
	}
}

func TestRecordIsNoOpWhileSuspended(t *testing.T) {
	s := NewService(10)
	m := newTestModel(2, 2)
	_ = s.Restore(func(*model.Document) error {
		if s.Record(m) {
			t.Error("expected Record to be a no-op while suspended")
		}
		return nil
	}, model.NewDocument("t", 2, 2))
}

type testErr string

func (e testErr) Error() string { return string(e) }

func mustSet(t *testing.T, m *model.TableModel, r, c int, value string) {
	t.Helper()
	if _, err := m.SetCellValue(r, c, value); err != nil {
		t.Fatal(err)
	}
}
