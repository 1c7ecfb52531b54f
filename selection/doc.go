// Package selection implements cell selection and rectangular-range
// selection over a [model.TableModel], including merge-aware keyboard
// navigation: moving off a merge's own rectangle jumps past it in one step,
// and moving onto someone else's merge lands on its leading cell rather
// than a covered coordinate.
package selection
