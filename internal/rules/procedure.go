package rules

import (
	"strings"

	"github.com/rolfedh/adocfix/internal/adoc"
	"github.com/rolfedh/adocfix/internal/diag"
)

// procedureTrailingTitles are the block titles permitted after the step
// list, in the order modules conventionally carry them.
var procedureTrailingTitles = map[string]bool{
	".Verification":          true,
	".Troubleshooting":       true,
	".Troubleshooting steps": true,
	".Next steps":            true,
	".Next step":             true,
	".Additional resources":  true,
}

func (p *Pass) trailingAllowed(title string) bool {
	if procedureTrailingTitles[title] {
		return true
	}
	for _, extra := range p.opts.ExtraTrailingTitles {
		if title == extra {
			return true
		}
	}
	return false
}

// procedureTitles returns the indexes of every non-suppressed .Procedure
// block title, embellished or not.
func procedureTitles(p *Pass) []int {
	var out []int
	for i := range p.Lines {
		if p.Suppressed(i) || p.Lines[i].Kind != adoc.LineBlockTitle {
			continue
		}
		if isProcedureTitle(p.Lines[i].BlockTitle) {
			out = append(out, i)
		}
	}
	return out
}

func isProcedureTitle(title string) bool {
	return title == ".Procedure" || strings.HasPrefix(title, ".Procedure ")
}

// ruleProcedurePresent flags a procedure module with no .Procedure block
// title at all.
func ruleProcedurePresent(p *Pass) {
	if len(procedureTitles(p)) > 0 {
		return
	}
	if hasMarkerAnywhere(p.Lines, diag.PrcMissingProcedure) {
		return
	}
	msg := "Must include a `.Procedure` block title followed by an ordered or unordered list"
	p.Edits.InsertBefore(0, prioBody, Marker(diag.PrcMissingProcedure, msg))
	p.Report(diag.PrcMissingProcedure, diag.SevWarning, 0, msg)
}

// ruleProcedureSingle flags every .Procedure title beyond the first.
func ruleProcedureSingle(p *Pass) {
	titles := procedureTitles(p)
	for _, i := range titles[min(1, len(titles)):] {
		p.Flag(diag.PrcMultipleProcedure, i, "Must include only one `.Procedure` block title and list")
	}
}

// ruleProcedureTitleBare flags a .Procedure title with trailing words.
func ruleProcedureTitleBare(p *Pass) {
	for _, i := range procedureTitles(p) {
		if p.Lines[i].BlockTitle != ".Procedure" {
			p.Flag(diag.PrcEmbellishedTitle, i, "The .Procedure block title must not contain additional words")
		}
	}
}

// ruleProcedureList checks that the first .Procedure title is followed by
// a list, allowing blank lines and comments in between.
func ruleProcedureList(p *Pass) {
	titles := procedureTitles(p)
	if len(titles) == 0 {
		return
	}
	proc := titles[0]
	for j := proc + 1; j < len(p.Lines); j++ {
		switch p.Lines[j].Kind {
		case adoc.LineBlank, adoc.LineComment:
			continue
		case adoc.LineListItem:
			return
		}
		break
	}
	if hasMarkerBelow(p.Lines, proc, diag.PrcMissingList) {
		return
	}
	msg := "Must include a `.Procedure` block title followed by an ordered or unordered list"
	p.Edits.InsertAfter(proc, prioBody, Marker(diag.PrcMissingList, msg))
	p.Report(diag.PrcMissingList, diag.SevWarning, proc, msg)
}

// ruleProcedureTrailing walks the document after the step list closes.
// Only allow-listed block titles may open trailing sections; content that
// belongs to no such section is out of place. The walk ends at the first
// stray content line, marked or not, so one structural slip does not bury
// the document in markers and repeat runs stop at the same line.
func ruleProcedureTrailing(p *Pass) {
	stepsEnd := p.Track.StepsEnd
	if stepsEnd < 0 {
		return
	}

	inAllowedSection := false
	for i := stepsEnd + 1; i < len(p.Lines); i++ {
		if p.Suppressed(i) {
			continue
		}
		ln := &p.Lines[i]
		switch ln.Kind {
		case adoc.LineBlank, adoc.LineComment, adoc.LineContinuation,
			adoc.LineBlockAttr, adoc.LineConditional:
			continue
		case adoc.LineListItem:
			continue // still list material (sub-steps, resource lists)
		case adoc.LineBlockTitle:
			if p.trailingAllowed(ln.BlockTitle) {
				inAllowedSection = true
				continue
			}
			p.Flag(diag.PrcBadTrailingTitle, i,
				"Only `.Verification`, `.Troubleshooting`, `.Next steps`, `.Additional resources`, etc. are allowed block titles in procedure modules")
			inAllowedSection = false
		default:
			if inAllowedSection {
				continue
			}
			// a paragraph attached to the previous line (continuation
			// marker or no blank separator) still belongs to the step
			if i > 0 {
				switch p.Lines[i-1].Kind {
				case adoc.LineBlank, adoc.LineComment, adoc.LineBlockTitle:
				default:
					continue
				}
			}
			p.Flag(diag.PrcTrailingContent, i,
				"Content found after last procedure step. Only allowed sections may follow")
			return
		}
	}
}
