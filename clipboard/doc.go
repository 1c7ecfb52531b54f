// Package clipboard parses text/html and text/plain clipboard payloads into
// a normalized shape the document core can ingest, and applies the result
// into a [model.TableModel] at a target origin.
//
// ParseHTMLTable walks the first <table> element found in an HTML fragment
// with golang.org/x/net/html, expanding rowspan/colspan via an occupancy
// grid so every emitted cell record carries the column it actually lands on
// rather than its raw position in the source markup. ParseTSV handles the
// text/plain sibling of a clipboard event. ApplyPaste and
// ApplyHTMLTablePaste are the two ways a parsed payload becomes table
// mutations.
package clipboard
