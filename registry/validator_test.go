package registry

import (
	"strings"
	"testing"

	"github.com/saniainf/tablecore/model"
)

func TestValidateAttributeValueEnum(t *testing.T) {
	attr := AttrDesc{Name: "data-sort", Type: AttrTypeEnum, Values: []string{"asc", "desc", "none"}}

	if msg := ValidateAttributeValue(attr, "asc"); msg != "" {
		t.Fatalf("expected valid enum value, got error %q", msg)
	}
	if msg := ValidateAttributeValue(attr, "up"); msg == "" {
		t.Fatal("expected error for value outside enum")
	}
	if msg := ValidateAttributeValue(attr, 1); msg == "" {
		t.Fatal("expected error for non-string enum value")
	}
}

func TestValidateAttributeValueNumberRange(t *testing.T) {
	min, max := 0.0, 10.0
	attr := AttrDesc{Name: "data-priority", Type: AttrTypeNumber, Min: &min, Max: &max}

	if msg := ValidateAttributeValue(attr, float64(5)); msg != "" {
		t.Fatalf("expected value in range to be valid, got %q", msg)
	}
	if msg := ValidateAttributeValue(attr, float64(11)); msg == "" {
		t.Fatal("expected error for value above max")
	}
	if msg := ValidateAttributeValue(attr, float64(-1)); msg == "" {
		t.Fatal("expected error for value below min")
	}
	if msg := ValidateAttributeValue(attr, "5"); msg == "" {
		t.Fatal("expected error for non-numeric value")
	}
}

func TestValidateAttributeValueBoolean(t *testing.T) {
	attr := AttrDesc{Name: "data-pinned", Type: AttrTypeBoolean}

	if msg := ValidateAttributeValue(attr, true); msg != "" {
		t.Fatalf("expected valid boolean, got %q", msg)
	}
	if msg := ValidateAttributeValue(attr, "true"); msg == "" {
		t.Fatal("expected error for non-boolean value")
	}
}

func TestValidateDocumentRejectsUnknownClass(t *testing.T) {
	doc := model.NewDocument("t", 2, 2)
	doc.Cells = []model.Cell{{R: 0, C: 0, RowSpan: 1, ColSpan: 1, Classes: []string{"no_such_class"}}}

	result := ValidateDocument(doc, DefaultCoreRegistry())
	if result.OK {
		t.Fatal("expected ValidateDocument to reject an unknown class")
	}
	if len(result.Errors) != 1 || result.Errors[0].Kind != ErrorKindRegistry {
		t.Fatalf("Errors = %+v, want one registry error", result.Errors)
	}

	errStr := result.ErrorString()
	if !strings.Contains(errStr, "неизвестный класс") {
		t.Errorf("ErrorString() = %q, want it to contain %q", errStr, "неизвестный класс")
	}
	if !strings.Contains(errStr, "(0,0)") {
		t.Errorf("ErrorString() = %q, want it to contain the cell's coordinates", errStr)
	}
}

func TestValidateDocumentRejectsExclusiveGroupConflict(t *testing.T) {
	doc := model.NewDocument("t", 2, 2)
	doc.Cells = []model.Cell{{R: 0, C: 0, RowSpan: 1, ColSpan: 1, Classes: []string{"align-left", "align-right"}}}

	result := ValidateDocument(doc, DefaultCoreRegistry())
	if result.OK {
		t.Fatal("expected ValidateDocument to reject conflicting exclusive-group classes")
	}
}

func TestValidateDocumentRejectsUnknownDataAttribute(t *testing.T) {
	doc := model.NewDocument("t", 2, 2)
	doc.Cells = []model.Cell{{R: 0, C: 0, RowSpan: 1, ColSpan: 1, Data: map[string]any{"data-nope": true}}}

	result := ValidateDocument(doc, DefaultCoreRegistry())
	if result.OK {
		t.Fatal("expected ValidateDocument to reject an unknown data attribute")
	}
}

func TestValidateDocumentAcceptsWellFormedDocument(t *testing.T) {
	doc := model.NewDocument("t", 2, 2)
	doc.Cells = []model.Cell{{R: 0, C: 0, RowSpan: 1, ColSpan: 1, Classes: []string{"align-left"}, Data: map[string]any{"data-pinned": true}}}

	result := ValidateDocument(doc, DefaultCoreRegistry())
	if !result.OK {
		t.Fatalf("expected well-formed document to validate, got errors: %v", result.ErrorString())
	}
}

func TestValidateDocumentPropagatesShapeError(t *testing.T) {
	doc := model.NewDocument("t", 2, 2)
	doc.Version = 99

	result := ValidateDocument(doc, DefaultCoreRegistry())
	if result.OK || len(result.Errors) != 1 || result.Errors[0].Kind != ErrorKindShape {
		t.Fatalf("result = %+v, want a single shape error", result)
	}
}

func TestValidateMergeOperationAcceptsAbsorption(t *testing.T) {
	existing := []model.Cell{{R: 1, C: 1, RowSpan: 1, ColSpan: 1}}
	result := ValidateMergeOperation(existing, 5, 5, 0, 0, 2, 2)
	if !result.OK {
		t.Fatalf("expected absorbing merge to be accepted, got %v", result.ErrorString())
	}
}

func TestValidateMergeOperationAcceptsContainment(t *testing.T) {
	existing := []model.Cell{{R: 0, C: 0, RowSpan: 3, ColSpan: 3}}
	result := ValidateMergeOperation(existing, 5, 5, 1, 1, 1, 1)
	if !result.OK {
		t.Fatalf("expected contained merge to be accepted, got %v", result.ErrorString())
	}
}

func TestValidateMergeOperationRejectsPartialOverlap(t *testing.T) {
	existing := []model.Cell{{R: 0, C: 0, RowSpan: 2, ColSpan: 2}}
	result := ValidateMergeOperation(existing, 5, 5, 1, 1, 2, 2)
	if result.OK {
		t.Fatal("expected partially overlapping merge to be rejected")
	}
	if result.Errors[0].Kind != ErrorKindGeometry {
		t.Fatalf("Errors[0].Kind = %v, want geometry", result.Errors[0].Kind)
	}
}

func TestValidateMergeOperationRejectsOutOfBounds(t *testing.T) {
	result := ValidateMergeOperation(nil, 5, 5, 0, 0, 5, 0)
	if result.OK {
		t.Fatal("expected out-of-bounds merge to be rejected")
	}
	if result.Errors[0].Kind != ErrorKindBounds {
		t.Fatalf("Errors[0].Kind = %v, want bounds", result.Errors[0].Kind)
	}
}
