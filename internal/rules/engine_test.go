package rules_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/rolfedh/adocfix/internal/adoc"
	"github.com/rolfedh/adocfix/internal/diag"
	"github.com/rolfedh/adocfix/internal/rules"
)

func run(t *testing.T, filename, text string) *rules.Result {
	t.Helper()
	res, err := rules.Process(text, filename, adoc.KindUnknown, rules.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return res
}

// runStable re-runs the engine on its own output and fails unless the
// second pass is a byte-identical no-op.
func runStable(t *testing.T, filename string, first *rules.Result) {
	t.Helper()
	second, err := rules.Process(first.Text, filename, adoc.KindUnknown, rules.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if second.Changed {
		t.Error("second pass reported changes")
	}
	if second.Text != first.Text {
		t.Errorf("second pass rewrote the output:\nfirst:\n%s\nsecond:\n%s", first.Text, second.Text)
	}
}

func codes(diags []diag.Diagnostic) []diag.Code {
	out := make([]diag.Code, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Code)
	}
	return out
}

func hasCode(diags []diag.Diagnostic, code diag.Code) bool {
	for _, d := range diags {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestProcessProcedureHeader(t *testing.T) {
	in := strings.Join([]string{
		"= Installing the thing",
		"",
		"Some text.",
		"",
		".Procedure",
		". Step one",
		". Step two",
		"",
	}, "\n")

	res := run(t, "proc_installing.adoc", in)

	want := strings.Join([]string{
		`[id="proc_installing_{context}"]`,
		":_mod-docs-content-type: PROCEDURE",
		"= Installing the thing",
		"",
		"Some text.",
		"",
		".Procedure",
		". Step one",
		". Step two",
		"",
	}, "\n")
	if res.Text != want {
		t.Errorf("output:\n%s\nwant:\n%s", res.Text, want)
	}
	if !res.Changed {
		t.Error("expected Changed")
	}
	if res.Kind != adoc.KindProcedure {
		t.Errorf("kind = %v", res.Kind)
	}
	if len(res.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %v", codes(res.Diagnostics))
	}

	runStable(t, "proc_installing.adoc", res)
}

func TestProcessAssembly(t *testing.T) {
	in := strings.Join([]string{
		"= Getting started",
		"",
		"An assembly intro.",
		"",
		"include::modules/proc_one.adoc[leveloffset=+1]",
		"include::modules/proc_two.adoc[leveloffset=+1]",
		"",
	}, "\n")

	res := run(t, "assembly_getting-started.adoc", in)

	want := strings.Join([]string{
		"// TODO adocfix(ASM202): Set a :context: attribute",
		"ifdef::context[:parent-context: {context}]",
		`[id="assembly_getting-started_{context}"]`,
		":_mod-docs-content-type: ASSEMBLY",
		"= Getting started",
		"",
		"An assembly intro.",
		"",
		"include::modules/proc_one.adoc[leveloffset=+1]",
		"",
		"include::modules/proc_two.adoc[leveloffset=+1]",
		"",
		"ifdef::parent-context[:context: {parent-context}]",
		"ifndef::parent-context[:!context:]",
		"",
	}, "\n")
	if res.Text != want {
		t.Errorf("output:\n%s\nwant:\n%s", res.Text, want)
	}
	if res.Kind != adoc.KindAssembly {
		t.Errorf("kind = %v", res.Kind)
	}
	if !hasCode(res.Diagnostics, diag.AsmContextAttr) {
		t.Errorf("missing ASM202 diagnostic, got %v", codes(res.Diagnostics))
	}

	runStable(t, "assembly_getting-started.adoc", res)
}

func TestProcessMissingIntro(t *testing.T) {
	in := strings.Join([]string{
		"= Title",
		"",
		".Procedure",
		". Step",
		"",
	}, "\n")

	res := run(t, "proc_thing.adoc", in)
	if !hasCode(res.Diagnostics, diag.UniShortIntro) {
		t.Errorf("missing UNI104, got %v", codes(res.Diagnostics))
	}
	if !strings.Contains(res.Text, "// TODO adocfix(UNI104):") {
		t.Errorf("marker not inserted:\n%s", res.Text)
	}
	runStable(t, "proc_thing.adoc", res)
}

// Documents are processed in parallel by the driver, so repeated
// concurrent passes over the same instructional content must all agree.
// Run with -race to catch shared state inside the rule sets.
func TestProcessConcurrentDocuments(t *testing.T) {
	in := strings.Join([]string{
		"= Widgets",
		"",
		"A concept module.",
		"",
		"* Configure the widget before use.",
		"* Delete the widget afterwards.",
		"",
	}, "\n")

	want := run(t, "con_widgets.adoc", in)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				res, err := rules.Process(in, "con_widgets.adoc", adoc.KindUnknown, rules.Options{})
				if err != nil {
					t.Error(err)
					return
				}
				if res.Text != want.Text {
					t.Errorf("concurrent pass diverged:\n%s", res.Text)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestProcessConceptInstructional(t *testing.T) {
	in := strings.Join([]string{
		"= Widgets",
		"",
		"A concept module.",
		"",
		"* Configure the widget before use.",
		"",
	}, "\n")

	res := run(t, "con_widgets.adoc", in)
	if res.Kind != adoc.KindConcept {
		t.Errorf("kind = %v", res.Kind)
	}
	if !hasCode(res.Diagnostics, diag.CnrInstructional) {
		t.Errorf("missing CNR300, got %v", codes(res.Diagnostics))
	}
	if !strings.Contains(res.Text, "// TODO adocfix(CNR300):") {
		t.Errorf("marker not inserted:\n%s", res.Text)
	}
	runStable(t, "con_widgets.adoc", res)
}

func TestProcessConceptLinkExemptions(t *testing.T) {
	in := strings.Join([]string{
		"= Widgets",
		"",
		"A concept module.",
		"",
		"* link:https://example.com/setup[Set up the widget]",
		"",
		"For more information about widgets, see link:https://example.com[the docs].",
		"",
	}, "\n")

	res := run(t, "con_widgets.adoc", in)
	if hasCode(res.Diagnostics, diag.CnrInstructional) {
		t.Errorf("link-only content must not be flagged: %v", codes(res.Diagnostics))
	}
}

func TestProcessCodeBlockSuppression(t *testing.T) {
	in := strings.Join([]string{
		"= Widgets",
		"",
		"A concept module.",
		"",
		"----",
		"* Configure the widget",
		"=== not a heading",
		":_mod-docs-content-type: PROCEDURE",
		"----",
		"",
	}, "\n")

	res := run(t, "con_widgets.adoc", in)
	if res.Kind != adoc.KindConcept {
		t.Errorf("kind = %v; the fenced attribute must not decide", res.Kind)
	}
	for _, code := range []diag.Code{diag.CnrInstructional, diag.CnrIllegalHeading, diag.StrUnterminatedBlock} {
		if hasCode(res.Diagnostics, code) {
			t.Errorf("unexpected %s inside a code block: %v", code, codes(res.Diagnostics))
		}
	}
	runStable(t, "con_widgets.adoc", res)
}

func TestProcessKindConflict(t *testing.T) {
	in := strings.Join([]string{
		":_mod-docs-content-type: CONCEPT",
		"",
		"= X",
		"",
		"Intro text.",
		"",
		".Procedure",
		". Step",
		"",
	}, "\n")

	res := run(t, "proc_x.adoc", in)
	if res.Kind != adoc.KindProcedure {
		t.Errorf("filename prefix should win, kind = %v", res.Kind)
	}
	if !hasCode(res.Diagnostics, diag.StrKindConflict) {
		t.Errorf("missing STR002, got %v", codes(res.Diagnostics))
	}
}

func TestProcessDeclaredKindWins(t *testing.T) {
	in := ":_mod-docs-content-type: CONCEPT\n\n= X\n\nIntro.\n"
	res, err := rules.Process(in, "proc_x.adoc", adoc.KindReference, rules.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Kind != adoc.KindReference {
		t.Errorf("kind = %v, want declared REFERENCE", res.Kind)
	}
	if hasCode(res.Diagnostics, diag.StrKindConflict) {
		t.Error("a declared kind is an override, not a conflict")
	}
	if hasCode(res.Diagnostics, diag.PrcMissingProcedure) {
		t.Error("procedure rules must not run for a reference document")
	}
}

func TestProcessUnterminatedFence(t *testing.T) {
	in := "= T\n\nIntro text.\n\n----\nstuck open\n"
	res := run(t, "con_t.adoc", in)
	found := false
	for _, d := range res.Diagnostics {
		if d.Code == diag.StrUnterminatedBlock {
			found = true
			if d.Line != 5 {
				t.Errorf("STR001 at line %d, want 5", d.Line)
			}
		}
	}
	if !found {
		t.Errorf("missing STR001, got %v", codes(res.Diagnostics))
	}
}

func TestProcessImageAltRules(t *testing.T) {
	in := strings.Join([]string{
		"= Images",
		"",
		"Intro text.",
		"",
		"image::shot.png[A screenshot]",
		"",
		"image::bare.png[]",
		"",
	}, "\n")

	res := run(t, "con_images.adoc", in)
	if !strings.Contains(res.Text, `image::shot.png["A screenshot"]`) {
		t.Errorf("alt text not quoted:\n%s", res.Text)
	}
	if !hasCode(res.Diagnostics, diag.UniImageAltMissing) {
		t.Errorf("missing UNI105, got %v", codes(res.Diagnostics))
	}
	if !strings.Contains(res.Text, "// TODO adocfix(UNI105):") {
		t.Errorf("alt-text marker not inserted:\n%s", res.Text)
	}
	runStable(t, "con_images.adoc", res)
}

func TestProcessDuplicateTitle(t *testing.T) {
	in := "= One\n\nIntro text.\n\n= Two\n"
	res := run(t, "con_t.adoc", in)
	if !hasCode(res.Diagnostics, diag.UniDuplicateTitle) {
		t.Errorf("missing UNI102, got %v", codes(res.Diagnostics))
	}
	runStable(t, "con_t.adoc", res)
}

func TestProcessBlankAfterTitle(t *testing.T) {
	in := "= Title\nText right below.\n"
	res := run(t, "con_t.adoc", in)
	if !strings.Contains(res.Text, "= Title\n\nText right below.") {
		t.Errorf("blank line not inserted:\n%s", res.Text)
	}
	runStable(t, "con_t.adoc", res)
}

func TestProcessResourcesRole(t *testing.T) {
	in := strings.Join([]string{
		"= T",
		"",
		"Intro text.",
		"",
		"== Additional resources",
		"",
		"* link:https://example.com[More]",
		"",
	}, "\n")

	res := run(t, "con_t.adoc", in)
	if !strings.Contains(res.Text, "[role=\"_additional-resources\"]\n== Additional resources") {
		t.Errorf("role marker not inserted:\n%s", res.Text)
	}
	runStable(t, "con_t.adoc", res)
}

func TestProcessProcedureTrailingContent(t *testing.T) {
	in := strings.Join([]string{
		"= T",
		"",
		"Intro text.",
		"",
		".Procedure",
		". Step",
		"",
		"Stray prose after the steps.",
		"",
	}, "\n")

	res := run(t, "proc_t.adoc", in)
	if !hasCode(res.Diagnostics, diag.PrcTrailingContent) {
		t.Errorf("missing PRC405, got %v", codes(res.Diagnostics))
	}
	runStable(t, "proc_t.adoc", res)
}

func TestProcessProcedureTrailingContentRepeated(t *testing.T) {
	in := strings.Join([]string{
		"= T",
		"",
		"Intro text.",
		"",
		".Procedure",
		". Step",
		"",
		"Stray one.",
		"",
		"Stray two.",
		"",
	}, "\n")

	res := run(t, "proc_t.adoc", in)
	if n := strings.Count(res.Text, "adocfix(PRC405)"); n != 1 {
		t.Errorf("want exactly one marker for the first stray line, got %d:\n%s", n, res.Text)
	}
	runStable(t, "proc_t.adoc", res)
}

func TestProcessProcedureBadTrailingTitle(t *testing.T) {
	in := strings.Join([]string{
		"= T",
		"",
		"Intro text.",
		"",
		".Procedure",
		". Step",
		"",
		".Bogus section",
		"Stuff under it.",
		"",
	}, "\n")

	res := run(t, "proc_t.adoc", in)
	if !hasCode(res.Diagnostics, diag.PrcBadTrailingTitle) {
		t.Errorf("missing PRC404, got %v", codes(res.Diagnostics))
	}
	runStable(t, "proc_t.adoc", res)
}

func TestProcessProcedureAllowedTrailing(t *testing.T) {
	in := strings.Join([]string{
		"= T",
		"",
		"Intro text.",
		"",
		".Procedure",
		". Step",
		"",
		".Verification",
		"Check that it worked.",
		"",
	}, "\n")

	res := run(t, "proc_t.adoc", in)
	for _, code := range []diag.Code{diag.PrcBadTrailingTitle, diag.PrcTrailingContent} {
		if hasCode(res.Diagnostics, code) {
			t.Errorf("unexpected %s: %v", code, codes(res.Diagnostics))
		}
	}
}

func TestProcessAssemblyPartialBottomPair(t *testing.T) {
	in := strings.Join([]string{
		"= T",
		"",
		"Intro text.",
		"",
		"ifdef::parent-context[:context: {parent-context}]",
		"",
	}, "\n")

	res := run(t, "assembly_t.adoc", in)
	if !hasCode(res.Diagnostics, diag.AsmBottomConditional) {
		t.Errorf("missing ASM201, got %v", codes(res.Diagnostics))
	}
	// appending the pair again would duplicate the present line
	if strings.Contains(res.Text, "ifndef::parent-context[:!context:]") {
		t.Errorf("pair must not be appended over a partial pair:\n%s", res.Text)
	}
}

func TestProcessUnknownKindContentType(t *testing.T) {
	in := "= Mystery\n\nSome prose here.\n"
	res := run(t, "notes.adoc", in)
	if res.Kind != adoc.KindUnknown {
		t.Errorf("kind = %v", res.Kind)
	}
	if !strings.Contains(res.Text, ":_mod-docs-content-type: TBD") {
		t.Errorf("TBD placeholder not inserted:\n%s", res.Text)
	}
	if !strings.Contains(res.Text, "// TODO adocfix(UNI100):") {
		t.Errorf("content-type marker not inserted:\n%s", res.Text)
	}
	if !hasCode(res.Diagnostics, diag.UniContentType) {
		t.Errorf("missing UNI100, got %v", codes(res.Diagnostics))
	}
	runStable(t, "notes.adoc", res)
}

func TestProcessDisabledRule(t *testing.T) {
	opts := rules.Options{Disabled: map[diag.Code]bool{diag.UniTopicID: true}}
	res, err := rules.Process("= T\n\nIntro text.\n", "con_t.adoc", adoc.KindUnknown, opts)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(res.Text, `[id="`) {
		t.Errorf("disabled rule still rewrote:\n%s", res.Text)
	}
	if hasCode(res.Diagnostics, diag.UniTopicID) {
		t.Error("disabled rule still reported")
	}
}

func TestProcessMaxDiagnostics(t *testing.T) {
	in := strings.Join([]string{
		"= T",
		"",
		"Intro text.",
		"",
		"=== Deep one",
		"",
		"=== Deep two",
		"",
		"=== Deep three",
		"",
	}, "\n")

	opts := rules.Options{MaxDiagnostics: 2}
	res, err := rules.Process(in, "con_t.adoc", adoc.KindUnknown, opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Diagnostics) != 2 {
		t.Errorf("got %d diagnostics, want the cap of 2", len(res.Diagnostics))
	}
}

func TestProcessExtraVerbs(t *testing.T) {
	in := "= T\n\nIntro text.\n\nFrobnicate the system daily.\n"

	plain := run(t, "con_t.adoc", in)
	if hasCode(plain.Diagnostics, diag.CnrInstructional) {
		t.Fatalf("unknown verb flagged without config: %v", codes(plain.Diagnostics))
	}

	opts := rules.Options{ExtraVerbs: []string{"frobnicate"}}
	res, err := rules.Process(in, "con_t.adoc", adoc.KindUnknown, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !hasCode(res.Diagnostics, diag.CnrInstructional) {
		t.Errorf("configured verb not flagged: %v", codes(res.Diagnostics))
	}
}

func TestProcessExtraTrailingTitles(t *testing.T) {
	in := strings.Join([]string{
		"= T",
		"",
		"Intro text.",
		"",
		".Procedure",
		". Step",
		"",
		".Known issues",
		"Some text about them.",
		"",
	}, "\n")

	plain := run(t, "proc_t.adoc", in)
	if !hasCode(plain.Diagnostics, diag.PrcBadTrailingTitle) {
		t.Fatalf("unlisted trailing title not flagged: %v", codes(plain.Diagnostics))
	}

	opts := rules.Options{ExtraTrailingTitles: []string{".Known issues"}}
	res, err := rules.Process(in, "proc_t.adoc", adoc.KindUnknown, opts)
	if err != nil {
		t.Fatal(err)
	}
	if hasCode(res.Diagnostics, diag.PrcBadTrailingTitle) {
		t.Errorf("configured trailing title still flagged: %v", codes(res.Diagnostics))
	}
}

func TestProcessBinaryInput(t *testing.T) {
	_, err := rules.Process("text\x00more", "x.adoc", adoc.KindUnknown, rules.Options{})
	if !errors.Is(err, rules.ErrBinaryInput) {
		t.Errorf("err = %v, want ErrBinaryInput", err)
	}
}

func TestProcessBadDeclaredKind(t *testing.T) {
	_, err := rules.Process("= T\n", "x.adoc", adoc.Kind(99), rules.Options{})
	if !errors.Is(err, rules.ErrBadKind) {
		t.Errorf("err = %v, want ErrBadKind", err)
	}
}

func TestProcessEmptyInput(t *testing.T) {
	res := run(t, "proc_t.adoc", "")
	if !res.Changed {
		t.Error("an empty procedure module still needs its header")
	}
	if !strings.HasSuffix(res.Text, "\n") {
		t.Errorf("rewritten output must end in a newline: %q", res.Text)
	}
	runStable(t, "proc_t.adoc", res)
}

func TestProcessDiagnosticsSorted(t *testing.T) {
	in := strings.Join([]string{
		"= T",
		"",
		"Intro text.",
		"",
		"=== Deep",
		"",
		"* Configure the thing now.",
		"",
	}, "\n")

	res := run(t, "con_t.adoc", in)
	for i := 1; i < len(res.Diagnostics); i++ {
		if res.Diagnostics[i-1].Line > res.Diagnostics[i].Line {
			t.Errorf("diagnostics out of order: %v", res.Diagnostics)
		}
	}
}
