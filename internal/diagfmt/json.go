package diagfmt

import (
	"encoding/json"
	"io"

	"github.com/rolfedh/adocfix/internal/diag"
)

// DiagnosticJSON is one finding in machine output.
type DiagnosticJSON struct {
	File     string `json:"file,omitempty"`
	Line     int    `json:"line"`
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Message  string `json:"message"`
}

// SummaryJSON counts findings per severity.
type SummaryJSON struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`
}

// DiagnosticsOutput is the root of the JSON document.
type DiagnosticsOutput struct {
	SchemaVersion int              `json:"schema_version"`
	Diagnostics   []DiagnosticJSON `json:"diagnostics"`
	Summary       SummaryJSON      `json:"summary"`
}

const jsonSchemaVersion = 1

// JSON writes the diagnostics as one JSON document. Expects bag.Sort().
func JSON(w io.Writer, bag *diag.Bag, opts JSONOpts) error {
	out := DiagnosticsOutput{
		SchemaVersion: jsonSchemaVersion,
		Diagnostics:   make([]DiagnosticJSON, 0, bag.Len()),
	}
	for _, d := range bag.Items() {
		out.Diagnostics = append(out.Diagnostics, DiagnosticJSON{
			File:     displayPath(d.Path, opts.PathMode),
			Line:     d.Line,
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
		})
		switch d.Severity {
		case diag.SevError:
			out.Summary.Errors++
		case diag.SevWarning:
			out.Summary.Warnings++
		default:
			out.Summary.Infos++
		}
	}

	enc := json.NewEncoder(w)
	if opts.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}
