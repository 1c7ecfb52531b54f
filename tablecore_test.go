package tablecore

import (
	"testing"
	"time"

	"github.com/saniainf/tablecore/eventbus"
	"github.com/saniainf/tablecore/model"
	"github.com/saniainf/tablecore/registry"
)

func TestBuildRejectsInvalidShape(t *testing.T) {
	doc := model.NewDocument("t", 3, 3)
	doc.Cells = append(doc.Cells, model.Cell{R: 0, C: 0, RowSpan: 1, ColSpan: 1})
	doc.Cells = append(doc.Cells, model.Cell{R: 0, C: 0, RowSpan: 1, ColSpan: 1})
	if _, err := Open(doc).Build(); err == nil {
		t.Fatal("expected Build to reject a document with duplicate coordinates")
	}
}

func TestBuildRejectsRegistryViolation(t *testing.T) {
	doc := model.NewDocument("t", 2, 2)
	doc.Cells = []model.Cell{{R: 0, C: 0, RowSpan: 1, ColSpan: 1, Classes: []string{"not-a-real-class"}}}
	if _, err := Open(doc).Build(); err == nil {
		t.Fatal("expected Build to reject an unknown class against the default registry")
	}
}

func TestBuildSucceedsAndTakesInitialSnapshot(t *testing.T) {
	doc := model.NewDocument("t", 2, 2)
	table, err := Open(doc).Build()
	if err != nil {
		t.Fatal(err)
	}
	defer table.Close()

	if table.History().CanUndo() {
		t.Fatal("expected no undo available immediately after Build (only one snapshot exists)")
	}
}

func TestWithProjectRegistryMergesExtraClass(t *testing.T) {
	project := registry.Registry{
		Classes: []registry.ClassDesc{{Name: "highlight-red"}},
	}
	doc := model.NewDocument("t", 2, 2)
	doc.Cells = []model.Cell{{R: 0, C: 0, RowSpan: 1, ColSpan: 1, Classes: []string{"highlight-red"}}}

	if _, err := Open(doc).Build(); err == nil {
		t.Fatal("expected the base build to reject the project-only class")
	}
	if _, err := Open(doc).WithProjectRegistry(project).Build(); err != nil {
		t.Fatalf("expected WithProjectRegistry to admit the merged class, got %v", err)
	}
}

func TestSetCellValueSchedulesDebouncedSnapshot(t *testing.T) {
	doc := model.NewDocument("t", 2, 2)
	table, err := Open(doc).WithDebounceDelay(10 * time.Millisecond).Build()
	if err != nil {
		t.Fatal(err)
	}
	defer table.Close()

	if _, err := table.SetCellValue(0, 0, "hello"); err != nil {
		t.Fatal(err)
	}
	if table.History().CanUndo() {
		t.Fatal("expected no new snapshot before the debounce delay elapses")
	}
	time.Sleep(30 * time.Millisecond)
	if !table.History().CanUndo() {
		t.Fatal("expected a debounced snapshot to have been recorded")
	}
}

func TestMergeRecordsHistoryImmediately(t *testing.T) {
	doc := model.NewDocument("t", 3, 3)
	table, err := Open(doc).WithDebounceDelay(time.Hour).Build()
	if err != nil {
		t.Fatal(err)
	}
	defer table.Close()

	if _, err := table.Merge(0, 0, 1, 1); err != nil {
		t.Fatal(err)
	}
	if !table.History().CanUndo() {
		t.Fatal("expected Merge to record history immediately, without waiting for the debounce delay")
	}
}

func TestUndoRedoRoundTripsThroughTable(t *testing.T) {
	doc := model.NewDocument("t", 2, 2)
	table, err := Open(doc).WithDebounceDelay(time.Hour).Build()
	if err != nil {
		t.Fatal(err)
	}
	defer table.Close()

	if _, err := table.Merge(0, 0, 1, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := table.Split(0, 0); err != nil {
		t.Fatal(err)
	}

	ok, err := table.Undo()
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected Undo to succeed")
	}
	if !table.Model().IsCovered(1, 1) {
		t.Fatal("expected Undo to restore the merged state where (1,1) is covered")
	}

	ok, err = table.Redo()
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected Redo to succeed")
	}
	if table.Model().IsCovered(1, 1) {
		t.Fatal("expected Redo to restore the split state where (1,1) is no longer covered")
	}
}

func TestPasteAppliesTSVAndRecordsHistory(t *testing.T) {
	doc := model.NewDocument("t", 3, 3)
	table, err := Open(doc).WithDebounceDelay(time.Hour).Build()
	if err != nil {
		t.Fatal(err)
	}
	defer table.Close()

	table.Paste(0, 0, "a\tb\nc\td")

	cell, ok := table.Model().GetCell(1, 1)
	if !ok || cell.Value != "d" {
		t.Fatalf("GetCell(1,1) = %+v, ok=%v, want value \"d\"", cell, ok)
	}
	if !table.History().CanUndo() {
		t.Fatal("expected Paste to record history immediately")
	}
}

func TestImportReplacesContentAndEmitsStructureChangeImport(t *testing.T) {
	doc := model.NewDocument("t", 2, 2)
	table, err := Open(doc).WithDebounceDelay(time.Hour).Build()
	if err != nil {
		t.Fatal(err)
	}
	defer table.Close()

	var seen model.StructureChangePayload
	changes := 0
	table.Bus().On(eventbus.EventStructureChange, func(p any) {
		changes++
		seen = p.(model.StructureChangePayload)
	})

	imported := model.NewDocument("imported", 3, 3)
	imported.Cells = []model.Cell{{R: 0, C: 0, RowSpan: 1, ColSpan: 1, Value: "x"}}
	if err := table.Import(imported); err != nil {
		t.Fatal(err)
	}

	if table.Model().Rows() != 3 || table.Model().Cols() != 3 {
		t.Fatalf("Rows/Cols = %d/%d, want 3/3", table.Model().Rows(), table.Model().Cols())
	}
	cell, ok := table.Model().GetCell(0, 0)
	if !ok || cell.Value != "x" {
		t.Fatalf("GetCell(0,0) = %+v, ok=%v, want value x", cell, ok)
	}
	if changes != 1 || seen.Type != model.StructureChangeImport {
		t.Fatalf("structure:change payload = %+v (count %d), want one import event", seen, changes)
	}
	if !table.History().CanUndo() {
		t.Fatal("expected Import to record history immediately")
	}
}

func TestMustPanicsOnBuildError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Must to panic when Build fails")
		}
	}()
	doc := model.NewDocument("t", 2, 2)
	doc.Version = 99
	Must(Open(doc).Build())
}
