package rules

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rolfedh/adocfix/internal/adoc"
	"github.com/rolfedh/adocfix/internal/diag"
	"github.com/rolfedh/adocfix/internal/source"
)

// ErrBinaryInput is returned for input that is not text.
var ErrBinaryInput = errors.New("input is not text")

// ErrBadKind is returned for a declared kind outside the enumeration.
var ErrBadKind = errors.New("invalid declared document kind")

// Result is the outcome of one engine pass over one document.
type Result struct {
	// Text is the rewritten document. Always produced, even for
	// structurally anomalous input.
	Text string
	// Changed reports whether Text differs from the input.
	Changed bool
	// Kind is the resolved document kind.
	Kind adoc.Kind
	// Diagnostics lists the findings that need human judgment, ordered
	// by line number. Line numbers refer to the input text.
	Diagnostics []diag.Diagnostic
}

// Process runs the structural rule engine over one document: classify
// every line, fold the block context, resolve the document kind, then
// apply the universal rule set plus the kind's subset in a single forward
// pass. It performs no I/O and keeps no state between invocations.
//
// Only caller misuse returns an error; structural anomalies in the
// document degrade to diagnostics and a best-effort rewrite.
func Process(text, filename string, declared adoc.Kind, opts Options) (*Result, error) {
	if strings.ContainsRune(text, 0) {
		return nil, fmt.Errorf("%s: %w", filename, ErrBinaryInput)
	}
	if declared > adoc.KindProcedure {
		return nil, fmt.Errorf("%s: %w: %d", filename, ErrBadKind, declared)
	}

	raw, trailingNL := source.SplitLines(text)
	lines := adoc.ClassifyAll(raw)
	track := adoc.Track(lines)
	res := adoc.ResolveKind(filename, lines, track.Contexts, declared)

	bag := diag.NewBag(opts.maxDiagnostics())
	rep := diag.BagReporter{Bag: bag}

	reportAnomalies(rep, lines, track, res, opts)

	p := &Pass{
		Filename: filename,
		Kind:     res.Kind,
		Lines:    lines,
		Track:    track,
		Edits:    NewEditList(),
		opts:     opts,
		rep:      filtered{rep: rep, opts: opts},
	}

	for _, rule := range universalRules {
		if !opts.disabled(rule.Code) {
			rule.Run(p)
		}
	}
	for _, rule := range kindRules[res.Kind] {
		if !opts.disabled(rule.Code) {
			rule.Run(p)
		}
	}

	out, changed := p.Edits.Apply(raw)
	// an edited document always ends with a newline
	if changed && !trailingNL {
		trailingNL = true
	}

	bag.Sort()
	return &Result{
		Text:        source.JoinLines(out, trailingNL),
		Changed:     changed,
		Kind:        res.Kind,
		Diagnostics: bag.Items(),
	}, nil
}

// reportAnomalies emits the structural-anomaly diagnostics that belong to
// no single rule: unterminated frames, kind conflicts, malformed
// attribute lines.
func reportAnomalies(rep diag.Reporter, lines []adoc.Line, track adoc.TrackResult, res adoc.Resolution, opts Options) {
	if !opts.disabled(diag.StrUnterminatedBlock) {
		for _, fr := range track.Unterminated {
			rep.Report(diag.StrUnterminatedBlock, diag.SevWarning, fr.OpenLine+1,
				fmt.Sprintf("The %s opened here is never closed", fr.Kind))
		}
	}
	if res.Conflict && !opts.disabled(diag.StrKindConflict) {
		rep.Report(diag.StrKindConflict, diag.SevWarning, res.ConflictLine+1,
			fmt.Sprintf("Declared content type conflicts with the filename prefix; keeping %s", res.Kind))
	}
	if !opts.disabled(diag.StrBadAttribute) {
		for i := range lines {
			if track.Contexts[i].Suppressed || lines[i].Kind != adoc.LineText {
				continue
			}
			if looksLikeAttribute(lines[i].Text) {
				rep.Report(diag.StrBadAttribute, diag.SevInfo, i+1,
					"Attribute-like line does not parse as an attribute declaration")
			}
		}
	}
}

// looksLikeAttribute spots a line that starts like ":name" but fails the
// attribute grammar, usually a missing closing colon.
func looksLikeAttribute(text string) bool {
	s := strings.TrimSpace(text)
	if len(s) < 2 || s[0] != ':' {
		return false
	}
	// a well-formed declaration would have classified as LineAttribute,
	// so an attribute-looking LineText is malformed by construction
	c := s[1]
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// filtered drops reports for disabled rules before they reach the bag.
type filtered struct {
	rep  diag.Reporter
	opts Options
}

func (f filtered) Report(code diag.Code, sev diag.Severity, line int, msg string) {
	if f.opts.disabled(code) {
		return
	}
	f.rep.Report(code, sev, line, msg)
}
