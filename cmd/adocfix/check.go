package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.adoc|directory>",
	Short: "Audit AsciiDoc modules without modifying anything",
	Long:  "Run the structural rules and report findings. Files are never written; the exit status reflects whether anything was found.",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheckCmd,
}

func init() {
	checkCmd.Flags().String("ui", "off", "interactive progress display (auto|on|off)")
	checkCmd.Flags().Bool("no-cache", true, "process every file even if recorded clean")
	checkCmd.Flags().String("format", "pretty", "diagnostic output format (pretty|json|sarif)")
	checkCmd.Flags().Bool("context", false, "quote the offending source line under each finding")
}

func runCheckCmd(cmd *cobra.Command, args []string) error {
	target := args[0]

	setup, err := buildRunSetup(cmd, target, true)
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

	run, err := executeRun(cmd, "checking AsciiDoc modules", setup, mode)
	if err != nil {
		return err
	}

	if err := renderDiagnostics(cmd.OutOrStdout(), run, setup.format, setup.context, setup.useColor); err != nil {
		return err
	}
	if !setup.quiet && setup.format == formatPretty {
		printSummary(cmd.OutOrStdout(), run, true)
	}

	if run.Errors > 0 {
		return fmt.Errorf("%d file(s) failed", run.Errors)
	}
	if bag := run.Diagnostics(); bag.HasWarnings() || run.Fixed > 0 {
		return fmt.Errorf("check found %d finding(s), %d file(s) fixable", bag.Len(), run.Fixed)
	}
	return nil
}
