package model

// DocumentVersion is the only wire-format version this package understands.
const DocumentVersion = 1

// Document is the wire-level JSON representation of a table document.
type Document struct {
	Version int    `json:"version"`
	Meta    Meta   `json:"meta"`
	Grid    Grid   `json:"grid"`
	Cells   []Cell `json:"cells"`
}

// Meta carries document-level, non-structural information.
type Meta struct {
	ID         string `json:"id,omitempty"`
	Name       string `json:"name"`
	CreatedUtc string `json:"createdUtc,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// Grid carries the document's dimensions and optional column sizing.
type Grid struct {
	Rows        int          `json:"rows"`
	Cols        int          `json:"cols"`
	HeaderRows  int          `json:"headerRows"`
	ColumnSizes []ColumnSize `json:"columnSizes,omitempty"`
}

// ColumnSizeUnit is the unit a [ColumnSize] is expressed in.
type ColumnSizeUnit string

const (
	ColumnSizeUnitPx    ColumnSizeUnit = "px"
	ColumnSizeUnitRatio ColumnSizeUnit = "ratio"
)

// ColumnSize describes the width of a single column. The absent/default
// value is {V: 1, U: ratio}.
type ColumnSize struct {
	V float64        `json:"v"`
	U ColumnSizeUnit `json:"u"`
}

// DefaultColumnSize is the value implied when a column has no explicit size.
func DefaultColumnSize() ColumnSize {
	return ColumnSize{V: 1, U: ColumnSizeUnitRatio}
}

// NewDocument creates an empty, valid document of the given dimensions. rows
// and cols are clamped to at least 1; headerRows starts at 0.
func NewDocument(name string, rows, cols int) *Document {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	return &Document{
		Version: DocumentVersion,
		Meta:    Meta{Name: name},
		Grid: Grid{
			Rows: rows,
			Cols: cols,
		},
		Cells: make([]Cell, 0),
	}
}

// NewDocumentWithID creates an empty, valid document like [NewDocument] and
// stamps its Meta.ID with id. The model package itself never generates IDs;
// callers (e.g. the tablectl CLI) supply one, typically a UUID.
func NewDocumentWithID(id, name string, rows, cols int) *Document {
	doc := NewDocument(name, rows, cols)
	doc.Meta.ID = id
	return doc
}

// clone returns a deep copy of the document, safe to mutate independently of
// the original.
func (d *Document) clone() *Document {
	out := &Document{
		Version: d.Version,
		Meta:    d.Meta,
		Grid: Grid{
			Rows:       d.Grid.Rows,
			Cols:       d.Grid.Cols,
			HeaderRows: d.Grid.HeaderRows,
		},
	}
	if d.Grid.ColumnSizes != nil {
		out.Grid.ColumnSizes = append([]ColumnSize(nil), d.Grid.ColumnSizes...)
	}
	out.Cells = make([]Cell, len(d.Cells))
	for i, c := range d.Cells {
		out.Cells[i] = c.clone()
	}
	return out
}
