package rules

import (
	"github.com/rolfedh/adocfix/internal/adoc"
	"github.com/rolfedh/adocfix/internal/diag"
)

// Rule is one structural check. Rules are independent: each observes the
// classified line stream plus block context and either rewrites, inserts
// a remediation marker, or stays quiet. Ordering inside a set only
// matters for insertions at the same position, which the edit priorities
// and emission sequence keep deterministic.
type Rule struct {
	Code diag.Code
	Run  func(p *Pass)
}

// universalRules apply to every document kind, Unknown included.
var universalRules = []Rule{
	{diag.UniTopicID, ruleTopicID},
	{diag.UniContentType, ruleContentType},
	{diag.UniDuplicateTitle, ruleDuplicateTitle},
	{diag.UniBlankAfterTitle, ruleBlankAfterTitle},
	{diag.UniShortIntro, ruleShortIntro},
	{diag.UniImageAltMissing, ruleImageAltMissing},
	{diag.UniImageAltQuoting, ruleImageAltQuoting},
	{diag.UniResourcesRole, ruleResourcesRole},
}

// kindRules holds the kind-gated rule subsets. Selection is one lookup;
// a Concept document never sees a Procedure rule and vice versa.
var kindRules = map[adoc.Kind][]Rule{
	adoc.KindAssembly: {
		{diag.AsmTopConditional, ruleTopConditional},
		{diag.AsmBottomConditional, ruleBottomConditionals},
		{diag.AsmContextAttr, ruleContextAttr},
		{diag.AsmIncludeSpacing, ruleIncludeSpacing},
		{diag.AsmIllegalHeading, ruleAsmIllegalHeading},
		{diag.AsmBlockTitle, ruleAsmBlockTitle},
	},
	adoc.KindConcept: {
		{diag.CnrInstructional, ruleInstructional},
		{diag.CnrProcedureBlock, ruleConrefProcedureBlock},
		{diag.CnrNumberedStep, ruleNumberedStep},
		{diag.CnrIllegalHeading, ruleCnrIllegalHeading},
		{diag.CnrBlockTitle, ruleCnrBlockTitle},
	},
	adoc.KindProcedure: {
		{diag.PrcMissingProcedure, ruleProcedurePresent},
		{diag.PrcMultipleProcedure, ruleProcedureSingle},
		{diag.PrcEmbellishedTitle, ruleProcedureTitleBare},
		{diag.PrcMissingList, ruleProcedureList},
		{diag.PrcBadTrailingTitle, ruleProcedureTrailing},
	},
}

func init() {
	// Reference shares the concept subset wholesale.
	kindRules[adoc.KindReference] = kindRules[adoc.KindConcept]
}

// Pass carries the per-invocation state every rule reads: the classified
// lines, the block contexts, the resolved kind, and the edit list under
// construction. Rules never touch the line slice itself.
type Pass struct {
	Filename string
	Kind     adoc.Kind
	Lines    []adoc.Line
	Track    adoc.TrackResult
	Edits    *EditList

	opts Options
	rep  diag.Reporter
}

// Suppressed reports whether structural rule evaluation is off at line i
// (a code block frame is on top of the stack there).
func (p *Pass) Suppressed(i int) bool {
	return p.Track.Contexts[i].Suppressed
}

// InAdmonition reports whether line i sits inside an admonition block.
func (p *Pass) InAdmonition(i int) bool {
	return p.Track.Contexts[i].InAdmonition
}

// Report emits a diagnostic at 0-based line i.
func (p *Pass) Report(code diag.Code, sev diag.Severity, i int, msg string) {
	p.rep.Report(code, sev, i+1, msg)
}

// Flag inserts a remediation marker directly above line i and emits a
// warning, unless an earlier run already left the same marker there.
// Returns true when the marker was scheduled.
func (p *Pass) Flag(code diag.Code, i int, msg string) bool {
	if hasMarkerAbove(p.Lines, i, code) {
		return false
	}
	p.Edits.InsertBefore(i, prioBody, Marker(code, msg))
	p.Report(code, diag.SevWarning, i, msg)
	return true
}

// FlagBelow inserts the marker directly below line i instead.
func (p *Pass) FlagBelow(code diag.Code, i int, msg string) bool {
	if hasMarkerBelow(p.Lines, i, code) {
		return false
	}
	p.Edits.InsertAfter(i, prioBody, Marker(code, msg))
	p.Report(code, diag.SevWarning, i, msg)
	return true
}
