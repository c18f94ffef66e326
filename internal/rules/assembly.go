package rules

import (
	"strings"

	"github.com/rolfedh/adocfix/internal/adoc"
	"github.com/rolfedh/adocfix/internal/diag"
)

// The context conditionals every assembly carries so that nested includes
// resolve {context} correctly.
const (
	topConditional     = "ifdef::context[:parent-context: {context}]"
	bottomConditional1 = "ifdef::parent-context[:context: {parent-context}]"
	bottomConditional2 = "ifndef::parent-context[:!context:]"
)

// topConditionalWindow is how many leading lines may precede the top
// conditional before it counts as missing.
const topConditionalWindow = 10

// bottomConditionalWindow mirrors it for the trailing pair.
const bottomConditionalWindow = 5

// ruleTopConditional inserts the parent-context conditional at the top of
// the file when the first lines do not carry it.
func ruleTopConditional(p *Pass) {
	end := topConditionalWindow
	if end > len(p.Lines) {
		end = len(p.Lines)
	}
	for i := 0; i < end; i++ {
		if strings.TrimSpace(p.Lines[i].Text) == topConditional {
			return
		}
	}
	p.Edits.InsertBefore(0, prioTopConditional, topConditional)
}

// ruleBottomConditionals appends the closing conditional pair when the
// tail of the file carries neither line. A tail with exactly one of the
// two is malformed; appending the pair again would duplicate, so that
// case is only reported.
func ruleBottomConditionals(p *Pass) {
	start := len(p.Lines) - bottomConditionalWindow
	if start < 0 {
		start = 0
	}
	have1, have2 := false, false
	for i := start; i < len(p.Lines); i++ {
		switch strings.TrimSpace(p.Lines[i].Text) {
		case bottomConditional1:
			have1 = true
		case bottomConditional2:
			have2 = true
		}
	}
	switch {
	case have1 && have2:
	case !have1 && !have2:
		p.Edits.Append("")
		p.Edits.Append(bottomConditional1)
		p.Edits.Append(bottomConditional2)
	default:
		p.Report(diag.AsmBottomConditional, diag.SevWarning, len(p.Lines)-1,
			"Bottom parent-context conditional pair is incomplete; restore both lines")
	}
}

// ruleContextAttr reminds the author to declare :context:; the right
// value is a human decision.
func ruleContextAttr(p *Pass) {
	for i := range p.Lines {
		if p.Suppressed(i) {
			continue
		}
		if p.Lines[i].Kind == adoc.LineAttribute && p.Lines[i].AttrName == "context" {
			return
		}
	}
	if hasMarkerAnywhere(p.Lines, diag.AsmContextAttr) {
		return
	}
	msg := "Set a :context: attribute"
	p.Edits.InsertBefore(0, prioContextTodo, Marker(diag.AsmContextAttr, msg))
	p.Report(diag.AsmContextAttr, diag.SevWarning, 0, msg)
}

// ruleIncludeSpacing inserts one blank line between adjacent include
// directives.
func ruleIncludeSpacing(p *Pass) {
	for i := 0; i+1 < len(p.Lines); i++ {
		if p.Suppressed(i) || p.Suppressed(i+1) {
			continue
		}
		if p.Lines[i].Kind == adoc.LineInclude && p.Lines[i+1].Kind == adoc.LineInclude {
			p.Edits.InsertAfter(i, prioBody, "")
		}
	}
}

// ruleAsmIllegalHeading flags level 2 or deeper section titles. Inside an
// admonition block they are legal.
func ruleAsmIllegalHeading(p *Pass) {
	flagIllegalHeadings(p, diag.AsmIllegalHeading, "Remove or revise this level 2+ heading")
}

// ruleAsmBlockTitle flags every block title: assemblies structure content
// with headings, not block titles.
func ruleAsmBlockTitle(p *Pass) {
	for i := range p.Lines {
		if p.Suppressed(i) || p.Lines[i].Kind != adoc.LineBlockTitle {
			continue
		}
		p.Flag(diag.AsmBlockTitle, i, "Replace the following block title with a `== <subheading>`")
	}
}

// flagIllegalHeadings is shared by the assembly and concept/reference
// sets; only the rule code differs.
func flagIllegalHeadings(p *Pass, code diag.Code, msg string) {
	for i := range p.Lines {
		if p.Suppressed(i) || p.InAdmonition(i) {
			continue
		}
		if p.Lines[i].Kind == adoc.LineSectionTitle && p.Lines[i].Depth >= 3 {
			p.Flag(code, i, msg)
		}
	}
}
