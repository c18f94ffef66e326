package rules

import "github.com/rolfedh/adocfix/internal/diag"

// DefaultMaxDiagnostics bounds the diagnostics collected per document.
const DefaultMaxDiagnostics = 256

// Options tunes a single engine invocation. The zero value is usable.
type Options struct {
	// Disabled rules are skipped entirely: no rewrites, no diagnostics.
	Disabled map[diag.Code]bool
	// ExtraVerbs extends the imperative-verb list used by the
	// concept/reference instructional-content heuristic.
	ExtraVerbs []string
	// ExtraTrailingTitles extends the block titles permitted after the
	// procedure step list.
	ExtraTrailingTitles []string
	// MaxDiagnostics caps the bag; 0 means DefaultMaxDiagnostics.
	MaxDiagnostics int
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return DefaultMaxDiagnostics
	}
	return o.MaxDiagnostics
}

func (o Options) disabled(code diag.Code) bool {
	return o.Disabled[code]
}
