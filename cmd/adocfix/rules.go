package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rolfedh/adocfix/internal/diag"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List every rule the engine knows",
	RunE: func(cmd *cobra.Command, args []string) error {
		colorMode, err := cmd.Flags().GetString("color")
		if err != nil {
			return err
		}
		if err := applyColorMode(colorMode); err != nil {
			return err
		}

		idStyle := color.New(color.FgCyan, color.Bold)
		out := cmd.OutOrStdout()
		for _, meta := range diag.Catalogue() {
			fmt.Fprintf(out, "%s  %s\n", idStyle.Sprintf("%-7s", meta.Code.ID()), meta.Summary)
		}
		return nil
	},
}
