// Package tablecore provides a fluent API over the table document core: the
// model, merge engine, clipboard ingestion, undo/redo history, selection,
// and registry validation packages wired together behind one handle.
//
// Basic usage:
//
//	doc := model.NewDocument("sheet1", 20, 8)
//	table, err := tablecore.Open(doc).Build()
//	if err != nil {
//	    // handle error
//	}
//	defer table.Close()
//	table.SetCellValue(0, 0, "hello")
//
// With options:
//
//	table, err := tablecore.Open(doc).
//	    WithProjectRegistry(myRegistry).
//	    WithHistoryLimit(200).
//	    Build()
package tablecore

import (
	"github.com/saniainf/tablecore/model"
)

// Open begins building a Table over doc.
//
// Example:
//
//	table, err := tablecore.Open(model.NewDocument("t", 10, 10)).Build()
func Open(doc *model.Document) *Builder {
	return &Builder{doc: doc, options: defaultOptions()}
}

// Must is a helper that wraps a call to a function returning (T, error) and
// panics if the error is non-nil. Intended for scripts and tests where
// error handling would be cumbersome.
//
// Example:
//
//	table := tablecore.Must(tablecore.Open(doc).Build())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
