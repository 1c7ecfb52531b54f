package tablecore

import (
	"github.com/saniainf/tablecore/clipboard"
	"github.com/saniainf/tablecore/eventbus"
	"github.com/saniainf/tablecore/history"
	"github.com/saniainf/tablecore/merge"
	"github.com/saniainf/tablecore/model"
	"github.com/saniainf/tablecore/registry"
	"github.com/saniainf/tablecore/selection"
)

// Table wires a [model.TableModel] together with its event bus, registry,
// undo/redo history, and selection engine behind one handle.
type Table struct {
	model     *model.TableModel
	bus       *eventbus.Bus
	registry  registry.Registry
	history   *history.Service
	debouncer *history.Debouncer
	selection *selection.Engine
}

// Model returns the underlying table model for direct access to read-only
// queries and structural edits not wrapped by Table.
func (t *Table) Model() *model.TableModel { return t.model }

// Bus returns the event bus cell, structure, merge, split, selection, and
// paste events are emitted on.
func (t *Table) Bus() *eventbus.Bus { return t.bus }

// Registry returns the composed registry Table was built with.
func (t *Table) Registry() registry.Registry { return t.registry }

// History returns the undo/redo history service.
func (t *Table) History() *history.Service { return t.history }

// Selection returns the selection engine.
func (t *Table) Selection() *selection.Engine { return t.selection }

// SetCellValue sets a cell's value, schedules a debounced history snapshot,
// and returns the resulting cell.
func (t *Table) SetCellValue(r, c int, value string) (model.Cell, error) {
	cell, err := t.model.SetCellValue(r, c, value)
	if err != nil {
		return model.Cell{}, err
	}
	t.debouncer.Schedule()
	return cell, nil
}

// SetCellClasses sets a cell's classes, normalized against the registry's
// exclusive groups, and schedules a debounced history snapshot.
func (t *Table) SetCellClasses(r, c int, classes []string) (model.Cell, error) {
	normalized := registry.NormalizeClasses(classes, t.registry)
	cell, err := t.model.SetCellClasses(r, c, normalized)
	if err != nil {
		return model.Cell{}, err
	}
	t.debouncer.Schedule()
	return cell, nil
}

// SetCellData sets a cell's data attributes and schedules a debounced
// history snapshot.
func (t *Table) SetCellData(r, c int, data map[string]any) (model.Cell, error) {
	cell, err := t.model.SetCellData(r, c, data)
	if err != nil {
		return model.Cell{}, err
	}
	t.debouncer.Schedule()
	return cell, nil
}

// Merge merges the rectangle spanning (r1,c1)-(r2,c2) and records the
// result to history immediately rather than debouncing, since merge is a
// discrete structural action.
func (t *Table) Merge(r1, c1, r2, c2 int) (model.Rect, error) {
	rect, err := merge.MergeRange(t.model, r1, c1, r2, c2)
	if err != nil {
		return model.Rect{}, err
	}
	t.debouncer.Flush()
	t.history.Record(t.model)
	return rect, nil
}

// Split splits the leading cell at (r,c) back into its covered cells and
// records the result to history immediately.
func (t *Table) Split(r, c int) (model.Rect, error) {
	rect, err := merge.SplitCell(t.model, r, c)
	if err != nil {
		return model.Rect{}, err
	}
	t.debouncer.Flush()
	t.history.Record(t.model)
	return rect, nil
}

// SplitRange splits every leading cell selected by mode within the
// rectangle spanning (r1,c1)-(r2,c2) and records the result to history
// immediately.
func (t *Table) SplitRange(r1, c1, r2, c2 int, mode merge.SplitMode) (int, error) {
	n, err := merge.SplitAllInRange(t.model, r1, c1, r2, c2, mode)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		t.debouncer.Flush()
		t.history.Record(t.model)
	}
	return n, nil
}

// Paste applies a plain-text TSV matrix starting at (startR,startC) and
// records the result to history immediately, since paste is a discrete
// bulk action rather than incremental typing.
func (t *Table) Paste(startR, startC int, raw string) {
	matrix := clipboard.ParseTSV(raw)
	clipboard.ApplyPaste(t.model, startR, startC, matrix)
	t.debouncer.Flush()
	t.history.Record(t.model)
}

// PasteHTML parses an HTML table fragment and applies it starting at
// (startR,startC), reproducing rowspan/colspan as merges, and records the
// result to history immediately.
func (t *Table) PasteHTML(startR, startC int, fragment string) clipboard.ParsedTable {
	parsed := clipboard.ParseHTMLTable(fragment)
	if parsed.Success {
		clipboard.ApplyHTMLTablePaste(t.model, startR, startC, parsed)
		t.debouncer.Flush()
		t.history.Record(t.model)
	}
	return parsed
}

// Import replaces the table's content with doc, sourced from an external
// format conversion rather than a history restore, and records the result
// to history immediately.
func (t *Table) Import(doc *model.Document) error {
	if err := t.model.ImportDocument(doc); err != nil {
		return err
	}
	t.debouncer.Flush()
	t.history.Record(t.model)
	return nil
}

// Undo reverts the model to the previous history snapshot, if any.
func (t *Table) Undo() (bool, error) {
	doc, ok := t.history.Undo()
	if !ok {
		return false, nil
	}
	if err := t.history.Restore(func(d *model.Document) error {
		return t.model.ApplyDocument(d, true)
	}, doc); err != nil {
		return false, err
	}
	return true, nil
}

// Redo reapplies the next history snapshot, if any.
func (t *Table) Redo() (bool, error) {
	doc, ok := t.history.Redo()
	if !ok {
		return false, nil
	}
	if err := t.history.Restore(func(d *model.Document) error {
		return t.model.ApplyDocument(d, true)
	}, doc); err != nil {
		return false, err
	}
	return true, nil
}

// Close flushes any pending history snapshot and stops the debouncer.
func (t *Table) Close() {
	t.debouncer.Flush()
	t.debouncer.Close()
}
