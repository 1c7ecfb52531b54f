package model

// CellChangeField identifies which part of a cell changed.
type CellChangeField string

const (
	CellChangeValue   CellChangeField = "value"
	CellChangeClasses CellChangeField = "classes"
	CellChangeData    CellChangeField = "data"
)

// CellChangePayload is the payload of a "cell:change" event.
type CellChangePayload struct {
	R, C     int
	Field    CellChangeField
	OldValue any
	NewValue any
}

// StructureChangeType identifies the kind of structural change that
// occurred.
type StructureChangeType string

const (
	StructureChangeResize         StructureChangeType = "resize"
	StructureChangeHeaderRows     StructureChangeType = "headerRows"
	StructureChangeMeta           StructureChangeType = "meta"
	StructureChangeApplyDocument  StructureChangeType = "applyDocument"
	StructureChangeInsertRows     StructureChangeType = "insertRows"
	StructureChangeInsertColumns  StructureChangeType = "insertColumns"
	StructureChangeDeleteRows     StructureChangeType = "deleteRows"
	StructureChangeDeleteColumns  StructureChangeType = "deleteColumns"
	StructureChangeColumnSizes    StructureChangeType = "columnSizes"
	StructureChangeImport         StructureChangeType = "import"
)

// StructureChangePayload is the payload of a "structure:change" event. Only
// the fields relevant to Type are meaningful; the rest are left at their
// zero value.
type StructureChangePayload struct {
	Type StructureChangeType

	// resize / applyDocument / import
	Rows, Cols int

	// headerRows
	HeaderRows int

	// insertRows / insertColumns / deleteRows / deleteColumns
	Index, Count int
}
