package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rolfedh/adocfix/internal/driver"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file.adoc|directory>",
	Short: "Audit AsciiDoc modules and rewrite what can be fixed mechanically",
	Long:  "Run the structural rules over a file or a directory tree, apply the mechanical rewrites, and report what remains for a human.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFixCmd,
}

func init() {
	fixCmd.Flags().Bool("dry-run", false, "report rewrites without touching any file")
	fixCmd.Flags().String("ui", "auto", "interactive progress display (auto|on|off)")
	fixCmd.Flags().Bool("no-cache", false, "process every file even if recorded clean")
	fixCmd.Flags().String("format", "pretty", "diagnostic output format (pretty|json|sarif)")
	fixCmd.Flags().Bool("context", false, "quote the offending source line under each finding")
}

func runFixCmd(cmd *cobra.Command, args []string) error {
	target := args[0]

	setup, err := buildRunSetup(cmd, target, false)
	if err != nil {
		return err
	}
	setup.opts.DryRun, err = cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}

	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	run, err := executeRun(cmd, "fixing AsciiDoc modules", setup, mode)
	if err != nil {
		return err
	}

	if err := renderDiagnostics(cmd.OutOrStdout(), run, setup.format, setup.context, setup.useColor); err != nil {
		return err
	}
	if !setup.quiet && setup.format == formatPretty {
		printSummary(cmd.OutOrStdout(), run, setup.opts.CheckOnly)
	}
	if run.Errors > 0 {
		return fmt.Errorf("%d file(s) failed", run.Errors)
	}
	return nil
}

// executeRun dispatches between the plain driver and the TUI runner.
// The TUI only makes sense for pretty output on a terminal.
func executeRun(cmd *cobra.Command, title string, setup runSetup, mode uiMode) (*driver.RunResult, error) {
	ctx := cmd.Context()
	if setup.format == formatPretty && shouldUseTUI(mode) {
		return runWithUI(ctx, title, setup.target, setup.opts)
	}
	return driver.Run(ctx, setup.target, setup.opts)
}
