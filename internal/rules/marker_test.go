package rules

import (
	"testing"

	"github.com/rolfedh/adocfix/internal/adoc"
	"github.com/rolfedh/adocfix/internal/diag"
)

func TestMarkerRoundTrip(t *testing.T) {
	m := Marker(diag.CnrInstructional, "Avoid instructions here")
	if m != "// TODO adocfix(CNR300): Avoid instructions here" {
		t.Errorf("Marker = %q", m)
	}
	code, ok := MarkerCode(m)
	if !ok || code != diag.CnrInstructional {
		t.Errorf("MarkerCode(%q) = %v, %v", m, code, ok)
	}
	if !IsMarker(m) {
		t.Error("IsMarker should accept a generated marker")
	}
}

func TestMarkerCodeSurvivesRewording(t *testing.T) {
	// detection keys on the code, not the message text
	code, ok := MarkerCode("// TODO adocfix(PRC404): completely different wording")
	if !ok || code != diag.PrcBadTrailingTitle {
		t.Errorf("got %v, %v", code, ok)
	}
}

func TestMarkerCodeRejects(t *testing.T) {
	tests := []string{
		"// ordinary comment",
		"// TODO fix this later",
		"plain text",
		"// TODO adocfix(XYZ123): unknown code",
		"// TODO adocfix(CNR300 no closing paren",
	}
	for _, text := range tests {
		if _, ok := MarkerCode(text); ok {
			t.Errorf("MarkerCode(%q) should fail", text)
		}
	}
}

func TestHasMarkerAbove(t *testing.T) {
	lines := adoc.ClassifyAll([]string{
		"prose",                              // 0
		Marker(diag.CnrInstructional, "msg"), // 1
		"// an unrelated comment",            // 2
		"* Configure the thing",              // 3
		"",                                   // 4
		"* Another item",                     // 5
	})

	if !hasMarkerAbove(lines, 3, diag.CnrInstructional) {
		t.Error("marker within the contiguous comment run should be found")
	}
	if hasMarkerAbove(lines, 3, diag.CnrNumberedStep) {
		t.Error("a different code must not match")
	}
	// the blank line at 4 breaks the run
	if hasMarkerAbove(lines, 5, diag.CnrInstructional) {
		t.Error("the search must stop at the first non-comment line")
	}
}

func TestHasMarkerBelow(t *testing.T) {
	lines := adoc.ClassifyAll([]string{
		"image::a.png[]",                       // 0
		Marker(diag.UniImageAltMissing, "alt"), // 1
		"prose",                                // 2
	})
	if !hasMarkerBelow(lines, 0, diag.UniImageAltMissing) {
		t.Error("marker below should be found")
	}
	if hasMarkerBelow(lines, 2, diag.UniImageAltMissing) {
		t.Error("no marker below line 2")
	}
}

func TestHasMarkerAnywhere(t *testing.T) {
	lines := adoc.ClassifyAll([]string{
		"= T",
		Marker(diag.AsmContextAttr, "set context"),
	})
	if !hasMarkerAnywhere(lines, diag.AsmContextAttr) {
		t.Error("marker should be found anywhere in the document")
	}
	if hasMarkerAnywhere(lines, diag.AsmTopConditional) {
		t.Error("absent code must not match")
	}
}
