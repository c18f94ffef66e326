// Package diagfmt renders diagnostics for humans and machines. It owns
// no diagnostic state; everything arrives pre-sorted in a diag.Bag.
package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/rolfedh/adocfix/internal/diag"
	"github.com/rolfedh/adocfix/internal/source"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan)
	codeColor = color.New(color.Faint)
)

// Pretty writes one "<path>:<line>: <SEV> <CODE>: <message>" record per
// diagnostic, optionally followed by the offending source line. Expects
// bag.Sort() to have run. The FileSet is optional; without it no context
// lines are printed.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		path := displayPath(d.Path, opts.PathMode)
		sev := d.Severity.String()
		if opts.Color {
			sev = severityColor(d.Severity).Sprint(sev)
		}
		code := d.Code.ID()
		if opts.Color {
			code = codeColor.Sprint(code)
		}
		fmt.Fprintf(w, "%s:%d: %s %s: %s\n", path, d.Line, sev, code, d.Message)

		if opts.ShowContext && fs != nil {
			if text, ok := lineText(fs, d.Path, d.Line); ok {
				fmt.Fprintf(w, "  | %s\n", text)
			}
		}
	}
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errColor
	case diag.SevWarning:
		return warnColor
	}
	return infoColor
}

func displayPath(path string, mode PathMode) string {
	if path == "" {
		return "<input>"
	}
	if mode == PathModeBasename {
		return filepath.Base(path)
	}
	return path
}

func lineText(fs *source.FileSet, path string, line int) (string, bool) {
	id, ok := fs.Lookup(path)
	if !ok {
		return "", false
	}
	lines, _ := source.SplitLines(fs.Get(id).Text())
	if line < 1 || line > len(lines) {
		return "", false
	}
	return lines[line-1], true
}
