// Package history implements undo/redo over table documents: a bounded
// snapshot stack with a cursor and duplicate suppression ([Service]), and a
// debounced recorder that turns a burst of rapid changes into a single
// snapshot ([Debouncer]).
//
// Snapshots are compared by their canonical JSON encoding — Go's
// encoding/json already sorts map keys and preserves struct field order, so
// two semantically identical documents always marshal to the same bytes.
package history
