package registry

import (
	"fmt"
	"strings"

	"github.com/saniainf/tablecore/model"
)

// ErrorKind classifies a validation failure per the core's error-handling
// design: shape, bounds, geometry, registry, or argument errors.
type ErrorKind string

const (
	ErrorKindShape    ErrorKind = "shape"
	ErrorKindBounds   ErrorKind = "bounds"
	ErrorKindGeometry ErrorKind = "geometry"
	ErrorKindRegistry ErrorKind = "registry"
	ErrorKindArgument ErrorKind = "argument"
)

// ValidationError is one reported problem, located at a cell coordinate when
// applicable.
type ValidationError struct {
	Kind    ErrorKind
	R, C    int
	HasCell bool
	Key     string // class name or data-* key, when relevant
	Message string
}

func (e ValidationError) Error() string {
	if e.HasCell {
		return fmt.Sprintf("%s at (%d,%d): %s", e.Kind, e.R, e.C, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// ValidationResult is the structured {ok, ...} result every pure validation
// entry point returns.
type ValidationResult struct {
	OK     bool
	Errors []ValidationError
}

// ErrorString concatenates every error into one human-readable,
// newline-joined list, suitable for surfacing a strict-import failure to a
// caller.
func (v ValidationResult) ErrorString() string {
	lines := make([]string, len(v.Errors))
	for i, e := range v.Errors {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}

func ok() ValidationResult { return ValidationResult{OK: true} }

func fail(errs ...ValidationError) ValidationResult {
	return ValidationResult{OK: false, Errors: errs}
}

// ValidateDocument checks a document's shape, its merge non-overlap
// invariant, and — in strict mode — every cell's classes and data
// attributes against reg. Unknown class names, unknown data-* keys,
// out-of-range or wrong-typed attribute values, and exclusive-group
// conflicts are all reported as registry errors.
func ValidateDocument(doc *model.Document, reg Registry) ValidationResult {
	if err := model.ValidateShape(doc); err != nil {
		return fail(ValidationError{Kind: ErrorKindShape, Message: err.Error()})
	}

	var errs []ValidationError
	for _, cell := range doc.Cells {
		errs = append(errs, validateCellClasses(cell, reg)...)
		errs = append(errs, validateCellData(cell, reg)...)
	}
	if len(errs) > 0 {
		return fail(errs...)
	}
	return ok()
}

func validateCellClasses(cell model.Cell, reg Registry) []ValidationError {
	var errs []ValidationError
	seenGroup := make(map[string]string) // exclusiveGroup -> first class name seen

	for _, name := range cell.Classes {
		desc, known := reg.ClassByName(name)
		if !known {
			errs = append(errs, ValidationError{
				Kind: ErrorKindRegistry, R: cell.R, C: cell.C, HasCell: true, Key: name,
				Message: fmt.Sprintf("unknown class %q (неизвестный класс)", name),
			})
			continue
		}
		if desc.ExclusiveGroup == "" {
			continue
		}
		if first, exists := seenGroup[desc.ExclusiveGroup]; exists && first != name {
			errs = append(errs, ValidationError{
				Kind: ErrorKindRegistry, R: cell.R, C: cell.C, HasCell: true, Key: name,
				Message: fmt.Sprintf("exclusive-group %q conflict: %q and %q both present", desc.ExclusiveGroup, first, name),
			})
			continue
		}
		seenGroup[desc.ExclusiveGroup] = name
	}
	return errs
}

func validateCellData(cell model.Cell, reg Registry) []ValidationError {
	var errs []ValidationError
	for key, value := range cell.Data {
		attr, known := reg.AttrByName(key)
		if !known {
			errs = append(errs, ValidationError{
				Kind: ErrorKindRegistry, R: cell.R, C: cell.C, HasCell: true, Key: key,
				Message: fmt.Sprintf("unknown data attribute %q", key),
			})
			continue
		}
		if msg := ValidateAttributeValue(attr, value); msg != "" {
			errs = append(errs, ValidationError{
				Kind: ErrorKindRegistry, R: cell.R, C: cell.C, HasCell: true, Key: key,
				Message: msg,
			})
		}
	}
	return errs
}

// ValidateAttributeValue checks value against attr's declared type and
// constraints, returning an empty string if valid or a human-readable
// problem description otherwise.
func ValidateAttributeValue(attr AttrDesc, value any) string {
	switch attr.Type {
	case AttrTypeEnum:
		s, ok := value.(string)
		if !ok {
			return fmt.Sprintf("data attribute %q expects an enum string, got %T", attr.Name, value)
		}
		for _, v := range attr.Values {
			if v == s {
				return ""
			}
		}
		return fmt.Sprintf("data attribute %q value %q is not one of %v", attr.Name, s, attr.Values)

	case AttrTypeNumber:
		n, ok := toFloat(value)
		if !ok {
			return fmt.Sprintf("data attribute %q expects a number, got %T", attr.Name, value)
		}
		if attr.Min != nil && n < *attr.Min {
			return fmt.Sprintf("data attribute %q value %v is below minimum %v", attr.Name, n, *attr.Min)
		}
		if attr.Max != nil && n > *attr.Max {
			return fmt.Sprintf("data attribute %q value %v is above maximum %v", attr.Name, n, *attr.Max)
		}
		return ""

	case AttrTypeBoolean:
		if _, ok := value.(bool); !ok {
			return fmt.Sprintf("data attribute %q expects a boolean, got %T", attr.Name, value)
		}
		return ""

	default:
		return fmt.Sprintf("data attribute %q has unknown type %q", attr.Name, attr.Type)
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// ValidateMergeOperation defensively checks a candidate merge rectangle
// against the grid bounds and every existing leading cell. Beyond bounds
// checking, only two overlap shapes are legal: the new rectangle fully
// contains an existing one (absorption), or an existing rectangle fully
// contains the new one (a no-op merge). Any other overlap is rejected.
func ValidateMergeOperation(cells []model.Cell, rows, cols, r1, c1, r2, c2 int) ValidationResult {
	rect := model.NormalizeRange(r1, c1, r2, c2)
	if rect.Top() < 0 || rect.Left() < 0 || rect.Bottom() > rows || rect.Right() > cols {
		return fail(ValidationError{
			Kind:    ErrorKindBounds,
			Message: fmt.Sprintf("merge rectangle (%d,%d)-(%d,%d) outside %dx%d grid", rect.Top(), rect.Left(), rect.Bottom()-1, rect.Right()-1, rows, cols),
		})
	}

	for _, cell := range cells {
		existing := cell.Rect()
		if !rect.Overlaps(existing) {
			continue
		}
		if rect.ContainsRect(existing) || existing.ContainsRect(rect) {
			continue
		}
		return fail(ValidationError{
			Kind: ErrorKindGeometry, R: cell.R, C: cell.C, HasCell: true,
			Message: fmt.Sprintf("merge rectangle (%d,%d)-(%d,%d) partially overlaps existing merge at (%d,%d)", rect.Top(), rect.Left(), rect.Bottom()-1, rect.Right()-1, cell.R, cell.C),
		})
	}
	return ok()
}
