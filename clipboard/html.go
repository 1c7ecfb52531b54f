package clipboard

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// ParsedCell is one normalized leading-cell record recovered from an HTML
// table: R is the source row index, C is the column the occupancy grid
// computed after skipping positions reserved by earlier rowspans.
type ParsedCell struct {
	R, C             int
	Value            string
	RowSpan, ColSpan int
}

// ParsedTable is the result of ParseHTMLTable.
type ParsedTable struct {
	Success bool
	Rows    int
	Cols    int
	Cells   []ParsedCell
}

// ParseHTMLTable finds the first <table> in fragment and returns its cells
// with rowspan/colspan expanded into occupancy-aware coordinates. It
// reports Success=false if the fragment contains no table or the table has
// no rows.
func ParseHTMLTable(fragment string) ParsedTable {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return ParsedTable{}
	}

	table := findTable(doc)
	if table == nil {
		return ParsedTable{}
	}

	rows := tableRows(table)
	if len(rows) == 0 {
		return ParsedTable{}
	}

	occupied := make(map[[2]int]bool)
	var cells []ParsedCell
	maxRows, maxCols := 0, 0

	for r, tr := range rows {
		c := 0
		for _, td := range rowCells(tr) {
			for occupied[[2]int{r, c}] {
				c++
			}
			rowSpan, colSpan := cellSpans(td)
			value := norm.NFC.String(strings.TrimSpace(textContent(td)))

			cells = append(cells, ParsedCell{R: r, C: c, Value: value, RowSpan: rowSpan, ColSpan: colSpan})

			for dr := 1; dr < rowSpan; dr++ {
				for dc := 0; dc < colSpan; dc++ {
					occupied[[2]int{r + dr, c + dc}] = true
				}
			}
			if r+rowSpan > maxRows {
				maxRows = r + rowSpan
			}
			if c+colSpan > maxCols {
				maxCols = c + colSpan
			}
			c += colSpan
		}
	}

	return ParsedTable{Success: true, Rows: maxRows, Cols: maxCols, Cells: cells}
}

func findTable(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "table" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTable(c); t != nil {
			return t
		}
	}
	return nil
}

// tableRows returns every <tr> under table, in document order, regardless
// of whether it's nested inside <thead>/<tbody>/<tfoot> or a direct child.
func tableRows(table *html.Node) []*html.Node {
	var rows []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "tr":
				rows = append(rows, c)
			case "thead", "tbody", "tfoot":
				walk(c)
			}
		}
	}
	walk(table)
	return rows
}

func rowCells(tr *html.Node) []*html.Node {
	var cells []*html.Node
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
			cells = append(cells, c)
		}
	}
	return cells
}

func cellSpans(td *html.Node) (rowSpan, colSpan int) {
	rowSpan, colSpan = 1, 1
	for _, attr := range td.Attr {
		switch attr.Key {
		case "rowspan":
			if v, err := strconv.Atoi(strings.TrimSpace(attr.Val)); err == nil && v >= 1 {
				rowSpan = v
			}
		case "colspan":
			if v, err := strconv.Atoi(strings.TrimSpace(attr.Val)); err == nil && v >= 1 {
				colSpan = v
			}
		}
	}
	return rowSpan, colSpan
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
