package rules

import (
	"fmt"
	"strings"

	"github.com/rolfedh/adocfix/internal/adoc"
	"github.com/rolfedh/adocfix/internal/diag"
)

const roleAdditionalResources = `[role="_additional-resources"]`

// introWindow is how far past the title the intro check looks before
// giving up. Attribute, comment, and blank lines do not consume it.
const introWindow = 8

// ruleTopicID inserts the [id="<filename>_{context}"] declaration when no
// topic id is present.
func ruleTopicID(p *Pass) {
	for i := range p.Lines {
		if p.Suppressed(i) {
			continue
		}
		if p.Lines[i].Kind == adoc.LineID && strings.HasSuffix(p.Lines[i].AttrValue, "_{context}") {
			return
		}
	}
	base := strings.TrimSuffix(p.Filename, ".adoc")
	p.Edits.InsertBefore(0, prioTopicID, fmt.Sprintf(`[id="%s_{context}"]`, base))
}

// ruleContentType inserts the content-type attribute when absent. With an
// undecidable kind it inserts a TBD placeholder plus a marker and asks
// for a declared content type instead of guessing.
func ruleContentType(p *Pass) {
	if attr, attrKind := adoc.ContentTypeAttr(p.Lines, p.Track.Contexts); attr != nil {
		if p.Kind == adoc.KindUnknown && attrKind == adoc.KindUnknown {
			// a placeholder or unrecognised value still needs the author
			p.Report(diag.UniContentType, diag.SevWarning, attr.Index,
				fmt.Sprintf("Set the :%s: attribute to ASSEMBLY, CONCEPT, REFERENCE, or PROCEDURE", adoc.AttrName))
		}
		return
	}
	if p.Kind != adoc.KindUnknown {
		p.Edits.InsertBefore(0, prioContentType, fmt.Sprintf(":%s: %s", adoc.AttrName, p.Kind))
		return
	}
	msg := fmt.Sprintf("Set the :%s: attribute and value", adoc.AttrName)
	p.Edits.InsertBefore(0, prioContentTypeMarker, Marker(diag.UniContentType, msg))
	p.Edits.InsertBefore(0, prioContentType, fmt.Sprintf(":%s: TBD", adoc.AttrName))
	p.Report(diag.UniContentType, diag.SevWarning, 0, msg)
}

// ruleDuplicateTitle flags every level 0 title after the first. Merging
// or deleting titles is destructive, so this never rewrites.
func ruleDuplicateTitle(p *Pass) {
	seen := false
	for i := range p.Lines {
		if p.Suppressed(i) || p.Lines[i].Kind != adoc.LineTitle0 {
			continue
		}
		if !seen {
			seen = true
			continue
		}
		p.Flag(diag.UniDuplicateTitle, i, `Review this file to ensure it has only one level zero "= " title`)
	}
}

// ruleBlankAfterTitle inserts one blank line when the line directly after
// the first level 0 title is non-blank.
func ruleBlankAfterTitle(p *Pass) {
	for i := range p.Lines {
		if p.Suppressed(i) || p.Lines[i].Kind != adoc.LineTitle0 {
			continue
		}
		if i+1 < len(p.Lines) && p.Lines[i+1].Kind != adoc.LineBlank {
			p.Edits.InsertAfter(i, prioBody, "")
		}
		return
	}
}

// ruleShortIntro checks that some prose appears shortly after the title.
// Structural content (a section, include, list, fence...) arriving first
// means the module lacks an introduction.
func ruleShortIntro(p *Pass) {
	title := -1
	for i := range p.Lines {
		if !p.Suppressed(i) && p.Lines[i].Kind == adoc.LineTitle0 {
			title = i
			break
		}
	}
	if title < 0 {
		return
	}

	end := title + 1 + introWindow
	if end > len(p.Lines) {
		end = len(p.Lines)
	}
scan:
	for j := title + 1; j < end; j++ {
		switch p.Lines[j].Kind {
		case adoc.LineBlank, adoc.LineAttribute, adoc.LineID, adoc.LineConditional:
			continue
		case adoc.LineComment:
			if c, ok := MarkerCode(p.Lines[j].Text); ok && c == diag.UniShortIntro {
				return // already flagged on an earlier run
			}
			continue
		case adoc.LineText:
			return // intro present
		default:
			break scan // structural content before any prose
		}
	}

	anchor := title
	if title+1 < len(p.Lines) && p.Lines[title+1].Kind == adoc.LineBlank {
		anchor = title + 1
	}
	msg := "Add a short introductory sentence here that explains the purpose of this module or assembly"
	p.Edits.InsertAfter(anchor, prioBody, Marker(diag.UniShortIntro, msg))
	p.Edits.InsertAfter(anchor, prioBody, "")
	p.Report(diag.UniShortIntro, diag.SevWarning, title, msg)
}

// ruleImageAltMissing flags image directives without alt text. Alt text
// is prose; generating it automatically would be guessing.
func ruleImageAltMissing(p *Pass) {
	for i := range p.Lines {
		if p.Suppressed(i) {
			continue
		}
		ln := &p.Lines[i]
		if ln.Kind == adoc.LineImage && !ln.HasAlt {
			p.FlagBelow(diag.UniImageAltMissing, i, "Add descriptive alt text in quotation marks for accessibility")
		}
	}
}

// ruleImageAltQuoting wraps unquoted alt text in quotation marks. The
// quote check on the first and last characters makes this a no-op for
// already-quoted text.
func ruleImageAltQuoting(p *Pass) {
	for i := range p.Lines {
		if p.Suppressed(i) {
			continue
		}
		ln := &p.Lines[i]
		if ln.Kind != adoc.LineImage || !ln.HasAlt || ln.AltQuoted {
			continue
		}
		p.Edits.Replace(i, fmt.Sprintf(`image::%s["%s"]`, ln.ImageTarget, strings.TrimSpace(ln.ImageAlt)))
	}
}

// ruleResourcesRole inserts the additional-resources role marker above an
// "Additional resources" section or block title that lacks one. Both the
// heading and the block-title spelling count.
func ruleResourcesRole(p *Pass) {
	for i := range p.Lines {
		if p.Suppressed(i) || !isAdditionalResources(&p.Lines[i]) {
			continue
		}
		if i > 0 && strings.TrimSpace(p.Lines[i-1].Text) == roleAdditionalResources {
			continue
		}
		p.Edits.InsertBefore(i, prioBody, roleAdditionalResources)
	}
}

func isAdditionalResources(ln *adoc.Line) bool {
	switch ln.Kind {
	case adoc.LineBlockTitle:
		return ln.BlockTitle == ".Additional resources"
	case adoc.LineSectionTitle:
		return strings.TrimSpace(ln.Text) == "== Additional resources"
	}
	return false
}
