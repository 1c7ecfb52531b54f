package tablecore

import (
	"fmt"
	"time"

	"github.com/saniainf/tablecore/eventbus"
	"github.com/saniainf/tablecore/history"
	"github.com/saniainf/tablecore/model"
	"github.com/saniainf/tablecore/registry"
	"github.com/saniainf/tablecore/selection"
)

// Builder accumulates configuration for a Table before it is built. Each
// With* method returns a new Builder, leaving the receiver untouched.
type Builder struct {
	doc     *model.Document
	options buildOptions
	err     error
}

// clone creates a copy of the Builder with a deep copy of its options.
func (b *Builder) clone() *Builder {
	return &Builder{doc: b.doc, options: b.options.clone(), err: b.err}
}

// WithProjectRegistry merges a project-level registry onto the built-in core
// registry via [registry.MergeCoreAndProject] before it is used for
// validation and class normalization.
//
// Example:
//
//	table, err := tablecore.Open(doc).WithProjectRegistry(myRegistry).Build()
func (b *Builder) WithProjectRegistry(project registry.Registry) *Builder {
	nb := b.clone()
	nb.options.registry = registry.MergeCoreAndProject(nb.options.registry, project)
	return nb
}

// WithHistoryLimit sets the maximum number of undo snapshots retained.
func (b *Builder) WithHistoryLimit(n int) *Builder {
	nb := b.clone()
	nb.options.historyLimit = n
	return nb
}

// WithDebounceDelay sets the idle delay before a pending edit is recorded to
// history.
func (b *Builder) WithDebounceDelay(d time.Duration) *Builder {
	nb := b.clone()
	nb.options.debounceDelay = d
	return nb
}

// Build validates the configured document against the configured registry
// and wires a Table over it. It is a terminal operation.
//
// Example:
//
//	table, err := tablecore.Open(doc).Build()
//	if err != nil {
//	    // handle error
//	}
//	defer table.Close()
func (b *Builder) Build() (*Table, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.doc == nil {
		return nil, fmt.Errorf("tablecore: no document to build from")
	}
	if err := model.ValidateShape(b.doc); err != nil {
		return nil, fmt.Errorf("tablecore: invalid document shape: %w", err)
	}
	if res := registry.ValidateDocument(b.doc, b.options.registry); !res.OK {
		return nil, fmt.Errorf("tablecore: document fails registry validation: %s", res.ErrorString())
	}

	bus := eventbus.New()
	m := model.NewTableModel(b.doc, bus)
	hist := history.NewService(b.options.historyLimit)
	hist.Record(m)
	deb := history.NewDebouncer(hist, m, b.options.debounceDelay)
	sel := selection.New(m)

	return &Table{
		model:     m,
		bus:       bus,
		registry:  b.options.registry,
		history:   hist,
		debouncer: deb,
		selection: sel,
	}, nil
}
