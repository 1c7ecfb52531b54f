// Package xlsx provides XLSX (Office Open XML Spreadsheet) document parsing,
// including native merged-cell regions, and imports a chosen sheet into a
// [model.Document].
package xlsx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/saniainf/tablecore/model"
)

// Reader provides access to XLSX document content.
type Reader struct {
	zipReader     *zip.ReadCloser
	workbook      *workbookXML
	sharedStrings []string
	styles        *stylesXML
	rels          *relationshipsXML
	sheets        []*Sheet
	sheetRels     map[string]string // RID -> target path
}

// Open opens an XLSX file for reading.
func Open(filename string) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	r := &Reader{
		zipReader: zr,
		sheetRels: make(map[string]string),
	}

	// Validate required files exist
	if err := r.validate(); err != nil {
		zr.Close()
		return nil, err
	}

	// Parse relationships first
	if err := r.parseRelationships(); err != nil {
		zr.Close()
		return nil, fmt.Errorf("parsing relationships: %w", err)
	}

	// Parse workbook to get sheet list
	if err := r.parseWorkbook(); err != nil {
		zr.Close()
		return nil, fmt.Errorf("parsing workbook: %w", err)
	}

	// Parse shared strings (optional but common)
	_ = r.parseSharedStrings()

	// Parse styles (optional)
	_ = r.parseStyles()

	// Parse all worksheets
	if err := r.parseWorksheets(); err != nil {
		zr.Close()
		return nil, fmt.Errorf("parsing worksheets: %w", err)
	}

	return r, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	if r.zipReader != nil {
		err := r.zipReader.Close()
		r.zipReader = nil
		return err
	}
	return nil
}

// validate checks that required XLSX files exist.
func (r *Reader) validate() error {
	required := []string{
		"[Content_Types].xml",
		"xl/workbook.xml",
	}

	fileMap := make(map[string]bool)
	for _, f := range r.zipReader.File {
		fileMap[f.Name] = true
	}

	for _, name := range required {
		if !fileMap[name] {
			return fmt.Errorf("missing required file: %s", name)
		}
	}

	return nil
}

// getFileContent reads the content of a file from the ZIP archive.
func (r *Reader) getFileContent(name string) ([]byte, error) {
	for _, f := range r.zipReader.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("file not found: %s", name)
}

// parseRelationships parses the workbook relationships file.
func (r *Reader) parseRelationships() error {
	data, err := r.getFileContent("xl/_rels/workbook.xml.rels")
	if err != nil {
		// Try alternate location
		data, err = r.getFileContent("xl/_rels/workbook.rels")
		if err != nil {
			return nil // Relationships are optional
		}
	}

	r.rels = &relationshipsXML{}
	if err := xml.Unmarshal(data, r.rels); err != nil {
		return err
	}

	// Build map of RID to target
	for _, rel := range r.rels.Relationship {
		r.sheetRels[rel.ID] = rel.Target
	}

	return nil
}

// parseWorkbook parses the main workbook file.
func (r *Reader) parseWorkbook() error {
	data, err := r.getFileContent("xl/workbook.xml")
	if err != nil {
		return err
	}

	r.workbook = &workbookXML{}
	return xml.Unmarshal(data, r.workbook)
}

// parseSharedStrings parses the shared strings table.
func (r *Reader) parseSharedStrings() error {
	data, err := r.getFileContent("xl/sharedStrings.xml")
	if err != nil {
		return err // Shared strings are optional
	}

	var sst sharedStringsXML
	if err := xml.Unmarshal(data, &sst); err != nil {
		return err
	}

	r.sharedStrings = make([]string, len(sst.SI))
	for i, si := range sst.SI {
		if si.T != "" {
			r.sharedStrings[i] = si.T
		} else {
			// Rich text - concatenate all runs
			var text strings.Builder
			for _, run := range si.R {
				text.WriteString(run.T)
			}
			r.sharedStrings[i] = text.String()
		}
	}

	return nil
}

// parseStyles parses the styles file.
func (r *Reader) parseStyles() error {
	data, err := r.getFileContent("xl/styles.xml")
	if err != nil {
		return err // Styles are optional
	}

	r.styles = &stylesXML{}
	return xml.Unmarshal(data, r.styles)
}

// parseWorksheets parses all worksheet files.
func (r *Reader) parseWorksheets() error {
	if r.workbook == nil {
		return fmt.Errorf("workbook not parsed")
	}

	r.sheets = make([]*Sheet, 0, len(r.workbook.Sheets.Sheet))

	for i, sheetRef := range r.workbook.Sheets.Sheet {
		// Find the sheet file path from relationships
		target := r.sheetRels[sheetRef.RID]
		if target == "" {
			// Try default naming
			target = fmt.Sprintf("worksheets/sheet%d.xml", i+1)
		}

		// Normalize path
		if !strings.HasPrefix(target, "xl/") && !strings.HasPrefix(target, "/") {
			target = "xl/" + target
		}
		target = strings.TrimPrefix(target, "/")

		data, err := r.getFileContent(target)
		if err != nil {
			// Try without xl/ prefix
			target = strings.TrimPrefix(target, "xl/")
			data, err = r.getFileContent("xl/" + target)
			if err != nil {
				continue // Skip sheets we can't read
			}
		}

		sheet, err := r.parseWorksheet(data, sheetRef.Name, i)
		if err != nil {
			continue // Skip sheets that fail to parse
		}

		r.sheets = append(r.sheets, sheet)
	}

	if len(r.sheets) == 0 {
		return fmt.Errorf("no worksheets found")
	}

	return nil
}

// parseWorksheet parses a single worksheet.
func (r *Reader) parseWorksheet(data []byte, name string, index int) (*Sheet, error) {
	var ws worksheetXML
	if err := xml.Unmarshal(data, &ws); err != nil {
		return nil, err
	}

	sheet := &Sheet{
		Name:  name,
		Index: index,
	}

	// Parse merged regions first
	if ws.MergeCells != nil {
		for _, mc := range ws.MergeCells.MergeCell {
			startCol, startRow, endCol, endRow, err := ParseRangeRef(mc.Ref)
			if err != nil {
				continue
			}
			sheet.MergedRegions = append(sheet.MergedRegions, MergedRegion{
				StartRow: startRow,
				StartCol: startCol,
				EndRow:   endRow,
				EndCol:   endCol,
			})
		}
	}

	// Determine dimensions
	maxRow := 0
	maxCol := 0

	// First pass: find dimensions
	for _, row := range ws.SheetData.Rows {
		if row.R > maxRow {
			maxRow = row.R
		}
		for _, cell := range row.Cells {
			col, _, err := ParseCellRef(cell.R)
			if err != nil {
				continue
			}
			if col > maxCol {
				maxCol = col
			}
		}
	}

	sheet.MaxRow = maxRow - 1 // Convert to 0-indexed
	sheet.MaxCol = maxCol

	// Initialize rows
	sheet.Rows = make([][]Cell, maxRow)
	for i := range sheet.Rows {
		sheet.Rows[i] = make([]Cell, maxCol+1)
		for j := range sheet.Rows[i] {
			sheet.Rows[i][j] = Cell{
				Row:       i,
				Col:       j,
				Type:      CellTypeEmpty,
				MergeRows: 1,
				MergeCols: 1,
			}
		}
	}

	// Second pass: populate cells
	for _, row := range ws.SheetData.Rows {
		rowIdx := row.R - 1 // Convert to 0-indexed
		if rowIdx < 0 || rowIdx >= len(sheet.Rows) {
			continue
		}

		for _, cellXML := range row.Cells {
			col, _, err := ParseCellRef(cellXML.R)
			if err != nil {
				continue
			}
			if col < 0 || col >= len(sheet.Rows[rowIdx]) {
				continue
			}

			cell := &sheet.Rows[rowIdx][col]
			cell.RawValue = cellXML.V
			cell.StyleIndex = cellXML.S
			cell.Formula = cellXML.F

			// Determine cell type and value
			switch cellXML.T {
			case "s": // Shared string
				cell.Type = CellTypeString
				idx, err := strconv.Atoi(cellXML.V)
				if err == nil && idx >= 0 && idx < len(r.sharedStrings) {
					cell.Value = r.sharedStrings[idx]
				}
			case "b": // Boolean
				cell.Type = CellTypeBoolean
				if cellXML.V == "1" {
					cell.Value = "TRUE"
				} else {
					cell.Value = "FALSE"
				}
			case "e": // Error
				cell.Type = CellTypeError
				cell.Value = cellXML.V
			case "str": // Inline string formula result
				cell.Type = CellTypeString
				cell.Value = cellXML.V
			case "inlineStr": // Inline string
				cell.Type = CellTypeString
				if cellXML.Is != nil {
					cell.Value = cellXML.Is.T
				}
			default: // Number or empty
				if cellXML.V != "" {
					cell.Type = CellTypeNumber
					cell.Value = r.formatNumber(cellXML.V, cellXML.S)
				} else if cellXML.F != "" {
					cell.Type = CellTypeFormula
					cell.Value = "" // Formula without cached value
				}
			}
		}
	}

	// Apply merged region info to cells
	for _, mr := range sheet.MergedRegions {
		for row := mr.StartRow; row <= mr.EndRow && row < len(sheet.Rows); row++ {
			for col := mr.StartCol; col <= mr.EndCol && col < len(sheet.Rows[row]); col++ {
				cell := &sheet.Rows[row][col]
				cell.IsMerged = true
				if row == mr.StartRow && col == mr.StartCol {
					cell.IsMergeRoot = true
					cell.MergeRows = mr.EndRow - mr.StartRow + 1
					cell.MergeCols = mr.EndCol - mr.StartCol + 1
				}
			}
		}
	}

	return sheet, nil
}

// formatNumber returns the cell's raw numeric text unchanged; the number
// format referenced by styleIndex is not applied.
func (r *Reader) formatNumber(value string, styleIndex int) string {
	return value
}

// SheetCount returns the number of sheets in the workbook.
func (r *Reader) SheetCount() int {
	return len(r.sheets)
}

// SheetNames returns the names of all sheets.
func (r *Reader) SheetNames() []string {
	names := make([]string, len(r.sheets))
	for i, s := range r.sheets {
		names[i] = s.Name
	}
	return names
}

// Sheet returns the sheet at the given index (0-indexed).
func (r *Reader) Sheet(index int) (*Sheet, error) {
	if index < 0 || index >= len(r.sheets) {
		return nil, fmt.Errorf("sheet index %d out of range (0-%d)", index, len(r.sheets)-1)
	}
	return r.sheets[index], nil
}

// SheetByName returns the sheet with the given name.
func (r *Reader) SheetByName(name string) (*Sheet, error) {
	for _, s := range r.sheets {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("sheet not found: %s", name)
}

// Document imports the sheet at index into a [model.Document], trimmed to
// the bounding box of its non-empty cells and merged regions. Coordinates
// covered by a merge but not at its top-left are dropped, matching
// [model.Document]'s leading-cell-only cell storage.
func (r *Reader) Document(index int) (*model.Document, error) {
	sheet, err := r.Sheet(index)
	if err != nil {
		return nil, err
	}
	return sheetToDocument(sheet), nil
}

// DocumentByName is [Reader.Document] keyed by sheet name.
func (r *Reader) DocumentByName(name string) (*model.Document, error) {
	sheet, err := r.SheetByName(name)
	if err != nil {
		return nil, err
	}
	return sheetToDocument(sheet), nil
}

func sheetToDocument(sheet *Sheet) *model.Document {
	minRow, maxRow, minCol, maxCol := findContentBounds(sheet)
	if minRow > maxRow || minCol > maxCol {
		return model.NewDocument(sheet.Name, 1, 1)
	}

	rows := maxRow - minRow + 1
	cols := maxCol - minCol + 1
	doc := model.NewDocument(sheet.Name, rows, cols)
	if rows > 1 {
		doc.Grid.HeaderRows = 1
	}

	for rowIdx := minRow; rowIdx <= maxRow; rowIdx++ {
		for colIdx := minCol; colIdx <= maxCol; colIdx++ {
			cell := sheet.Rows[rowIdx][colIdx]
			if cell.IsMerged && !cell.IsMergeRoot {
				continue
			}
			if cell.IsEmpty() && cell.MergeRows <= 1 && cell.MergeCols <= 1 {
				continue
			}

			modelCell := model.Cell{
				R:     rowIdx - minRow,
				C:     colIdx - minCol,
				Value: cell.Value,
			}
			if cell.MergeRows > 1 {
				modelCell.RowSpan = cell.MergeRows
			}
			if cell.MergeCols > 1 {
				modelCell.ColSpan = cell.MergeCols
			}
			doc.Cells = append(doc.Cells, modelCell)
		}
	}

	return doc
}

// findContentBounds finds the bounds of non-empty cells and merged regions
// in a sheet, so an imported document isn't padded with trailing blank rows
// and columns the original file never wrote.
func findContentBounds(sheet *Sheet) (minRow, maxRow, minCol, maxCol int) {
	minRow = len(sheet.Rows)
	maxRow = -1
	minCol = sheet.MaxCol + 1
	maxCol = -1

	for rowIdx, row := range sheet.Rows {
		for colIdx, cell := range row {
			if !cell.IsEmpty() || cell.IsMergeRoot {
				if rowIdx < minRow {
					minRow = rowIdx
				}
				if rowIdx > maxRow {
					maxRow = rowIdx
				}
				if colIdx < minCol {
					minCol = colIdx
				}
				if colIdx > maxCol {
					maxCol = colIdx
				}
			}
		}
	}

	for _, mr := range sheet.MergedRegions {
		if mr.StartRow < minRow {
			minRow = mr.StartRow
		}
		if mr.EndRow > maxRow {
			maxRow = mr.EndRow
		}
		if mr.StartCol < minCol {
			minCol = mr.StartCol
		}
		if mr.EndCol > maxCol {
			maxCol = mr.EndCol
		}
	}

	return minRow, maxRow, minCol, maxCol
}
