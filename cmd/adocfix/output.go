package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/rolfedh/adocfix/internal/diag"
	"github.com/rolfedh/adocfix/internal/diagfmt"
	"github.com/rolfedh/adocfix/internal/driver"
	"github.com/rolfedh/adocfix/internal/source"
	"github.com/rolfedh/adocfix/internal/version"
)

type outputFormat string

const (
	formatPretty outputFormat = "pretty"
	formatJSON   outputFormat = "json"
	formatSarif  outputFormat = "sarif"
)

func readOutputFormat(value string) (outputFormat, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "pretty":
		return formatPretty, nil
	case "json":
		return formatJSON, nil
	case "sarif":
		return formatSarif, nil
	default:
		return "", fmt.Errorf("invalid --format value %q (expected pretty|json|sarif)", value)
	}
}

// renderDiagnostics prints the merged findings of a run in the requested
// format. Pretty output optionally quotes the offending source lines.
func renderDiagnostics(w io.Writer, run *driver.RunResult, format outputFormat, showContext, useColor bool) error {
	bag := run.Diagnostics()
	switch format {
	case formatJSON:
		return diagfmt.JSON(w, bag, diagfmt.JSONOpts{Indent: true})
	case formatSarif:
		return diagfmt.Sarif(w, bag, diagfmt.SarifRunMeta{
			ToolName:    "adocfix",
			ToolVersion: version.Version,
		})
	default:
		var fs *source.FileSet
		if showContext {
			fs = loadContextFiles(bag)
		}
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:       useColor,
			ShowContext: showContext,
		})
		return nil
	}
}

// loadContextFiles reloads the files named by a bag so that pretty
// output can quote them. Files that fail to load are simply not quoted.
func loadContextFiles(bag *diag.Bag) *source.FileSet {
	fs := source.NewFileSet()
	seen := make(map[string]bool)
	for _, d := range bag.Items() {
		if d.Path == "" || seen[d.Path] {
			continue
		}
		seen[d.Path] = true
		_, _ = fs.Load(d.Path)
	}
	return fs
}

// printSummary writes the one-line run outcome.
func printSummary(w io.Writer, run *driver.RunResult, checkOnly bool) {
	verb := "fixed"
	if checkOnly {
		verb = "fixable"
	}
	fmt.Fprintf(w, "%d %s, %d clean, %d skipped, %d errors\n",
		run.Fixed, verb, run.Clean, run.Skipped, run.Errors)
}
