package rules

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"

	"github.com/rolfedh/adocfix/internal/adoc"
	"github.com/rolfedh/adocfix/internal/diag"
)

// Conservative list of directive verbs; anything fancier risks flagging
// descriptive prose. Extended per project via Options.ExtraVerbs.
var imperativeVerbs = []string{
	"configure", "add", "set", "click", "open", "run", "create",
	"delete", "update", "install", "enable", "disable",
}

// fold lowers text for caseless comparison that survives non-ASCII verbs
// from project config. A cases.Caser may carry internal state and must
// not be shared between the driver's file workers, so each call builds
// its own.
func fold(s string) string {
	return cases.Fold().String(s)
}

var (
	linkOnlyRe     = regexp.MustCompile(`^(?:\*|\d+\.)\s+link:[^\[]+\[[^\]]+\]\s*$`)
	numberedStepRe = regexp.MustCompile(`^\.\s+([A-Z][a-z]+)`)
)

func (p *Pass) verbs() []string {
	if len(p.opts.ExtraVerbs) == 0 {
		return imperativeVerbs
	}
	out := make([]string, 0, len(imperativeVerbs)+len(p.opts.ExtraVerbs))
	out = append(out, imperativeVerbs...)
	out = append(out, p.opts.ExtraVerbs...)
	return out
}

// startsWithVerb reports whether folded text begins with one of the verbs
// as a whole word.
func startsWithVerb(folded string, verbs []string) bool {
	for _, verb := range verbs {
		v := fold(verb)
		if strings.HasPrefix(folded, v+" ") {
			return true
		}
	}
	return false
}

// ruleInstructional flags list items and paragraphs that read as
// instructions. Link-only items and "for more information ... see" lead-ins
// are the documented safe forms and stay unflagged. The heuristic is
// deliberately narrow: flag only a leading imperative verb, prefer
// missing a violation over rewriting prose.
func ruleInstructional(p *Pass) {
	verbs := p.verbs()
	inListItem := false

	for i := range p.Lines {
		if p.Suppressed(i) {
			continue
		}
		ln := &p.Lines[i]
		switch ln.Kind {
		case adoc.LineComment:
			continue
		case adoc.LineBlank:
			inListItem = false
			continue
		}

		stripped := strings.TrimSpace(ln.Text)
		folded := fold(stripped)

		if strings.HasPrefix(folded, "link:") ||
			strings.Contains(folded, "see link:") ||
			(strings.HasPrefix(folded, "for more information") && strings.Contains(folded, "see")) ||
			linkOnlyRe.MatchString(folded) {
			continue
		}

		if ln.Kind == adoc.LineListItem {
			inListItem = true
			// "Term: Configure the thing" hides the verb behind a label
			head := folded
			if _, rest, found := strings.Cut(folded, ":"); found {
				head = strings.TrimSpace(rest)
			}
			head = strings.TrimLeft(head, "*-+. \t")
			head = strings.TrimLeft(head, "0123456789.")
			head = strings.TrimSpace(head)
			if startsWithVerb(head, verbs) {
				p.Flag(diag.CnrInstructional, i, "Avoid instructions in concept and reference modules")
			}
			continue
		}

		// follow-up lines of a list item are not independently flagged
		if inListItem {
			continue
		}

		if ln.Kind == adoc.LineText && startsWithVerb(folded, verbs) {
			p.Flag(diag.CnrInstructional, i, "Avoid instructions in concept and reference modules")
		}
	}
}

// ruleConrefProcedureBlock flags .Procedure and .Prerequisites block
// titles: their presence suggests the module is really a procedure.
func ruleConrefProcedureBlock(p *Pass) {
	for i := range p.Lines {
		if p.Suppressed(i) || p.Lines[i].Kind != adoc.LineBlockTitle {
			continue
		}
		switch p.Lines[i].BlockTitle {
		case ".Procedure", ".Prerequisites":
			p.Flag(diag.CnrProcedureBlock, i,
				"Consider changing the :_mod-docs-content-type: to PROCEDURE or moving this procedure to a new file")
		}
	}
}

// ruleNumberedStep flags dotted steps opening with a capitalized
// imperative verb, another sign of misplaced procedure content.
func ruleNumberedStep(p *Pass) {
	verbs := p.verbs()
	for i := range p.Lines {
		if p.Suppressed(i) || p.Lines[i].Kind != adoc.LineListItem {
			continue
		}
		m := numberedStepRe.FindStringSubmatch(strings.TrimSpace(p.Lines[i].Text))
		if m == nil {
			continue
		}
		if startsWithVerb(fold(m[1])+" ", verbs) {
			p.Flag(diag.CnrNumberedStep, i,
				"Consider changing the :_mod-docs-content-type: to PROCEDURE or moving this procedure to a new file")
		}
	}
}

func ruleCnrIllegalHeading(p *Pass) {
	flagIllegalHeadings(p, diag.CnrIllegalHeading,
		"This file should not contain a level 2 (===) section title or lower")
}

// conrefAllowedTitles are the only block titles a concept or reference
// module may carry without an attached structural block.
var conrefAllowedTitles = map[string]bool{
	".Next steps":           true,
	".Additional resources": true,
}

// blockTitleLookahead bounds how far past a block title the search for an
// attached structural block goes.
const blockTitleLookahead = 5

// ruleCnrBlockTitle flags block titles outside the allow-list unless a
// table, listing, or admonition block follows within the lookahead.
func ruleCnrBlockTitle(p *Pass) {
	for i := range p.Lines {
		if p.Suppressed(i) || p.Lines[i].Kind != adoc.LineBlockTitle {
			continue
		}
		if conrefAllowedTitles[p.Lines[i].BlockTitle] {
			continue
		}
		if followedByStructuralBlock(p.Lines, i) {
			continue
		}
		p.Flag(diag.CnrBlockTitle, i,
			"Unexpected block title. Use only `.Next steps` or `.Additional resources` in concept/reference modules")
	}
}

func followedByStructuralBlock(lines []adoc.Line, i int) bool {
	end := i + 1 + blockTitleLookahead
	if end > len(lines) {
		end = len(lines)
	}
	for j := i + 1; j < end; j++ {
		switch lines[j].Kind {
		case adoc.LineBlank, adoc.LineBlockAttr, adoc.LineID:
			continue // formatting lines between title and block
		case adoc.LineCodeFence, adoc.LineTableFence, adoc.LineAdmonition:
			return true
		default:
			return false
		}
	}
	return false
}
