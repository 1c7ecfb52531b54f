// Package registry describes the set of CSS classes and data-* attributes a
// document is permitted to use, and validates documents and merge
// operations against that registry in strict-import mode.
//
// A [Registry] is composed from a core descriptor and an optional
// project descriptor with [MergeCoreAndProject]; project entries win on
// name collisions. [NormalizeClasses] resolves exclusive-group conflicts in
// a class list by keeping only the last occurrence per group.
// [ValidateDocument] and [ValidateMergeOperation] are the two structural
// checks the core performs: the former over a whole document (shape,
// merge-overlap, and registry conformance), the latter defensively, ahead of
// a single merge.
package registry
