package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rolfedh/adocfix/internal/config"
	"github.com/rolfedh/adocfix/internal/driver"
)

// runSetup gathers everything a fix or check invocation needs after flag
// parsing.
type runSetup struct {
	target   string
	opts     driver.Options
	format   outputFormat
	context  bool
	quiet    bool
	useColor bool
}

// buildRunSetup resolves persistent and command flags, discovers the
// manifest, and assembles driver options for one run.
func buildRunSetup(cmd *cobra.Command, target string, checkOnly bool) (runSetup, error) {
	setup := runSetup{target: target}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		return setup, err
	}
	if err := applyColorMode(colorMode); err != nil {
		return setup, err
	}
	setup.useColor = isTerminal(os.Stdout) && colorMode != "off"

	setup.quiet, err = cmd.Flags().GetBool("quiet")
	if err != nil {
		return setup, err
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return setup, err
	}
	maxDiags, err := cmd.Flags().GetInt("max-diagnostics")
	if err != nil {
		return setup, err
	}

	formatValue, err := cmd.Flags().GetString("format")
	if err != nil {
		return setup, err
	}
	setup.format, err = readOutputFormat(formatValue)
	if err != nil {
		return setup, err
	}

	setup.context, err = cmd.Flags().GetBool("context")
	if err != nil {
		return setup, err
	}

	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return setup, err
	}

	cfg, err := config.Discover(configStartDir(target))
	if err != nil {
		return setup, err
	}
	engineOpts, err := cfg.EngineOptions()
	if err != nil {
		return setup, err
	}
	if maxDiags > 0 {
		engineOpts.MaxDiagnostics = maxDiags
	}

	setup.opts = driver.Options{
		CheckOnly: checkOnly,
		Jobs:      jobs,
		Engine:    engineOpts,
	}

	if !noCache && !checkOnly {
		cache, err := driver.OpenCache("adocfix")
		if err != nil {
			// degraded but usable: warn and run uncached
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: cache unavailable: %v\n", err)
		} else {
			setup.opts.Cache = cache
		}
	}

	return setup, nil
}

// configStartDir picks where manifest discovery begins: the target
// directory itself, or the parent directory for a single file.
func configStartDir(target string) string {
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		return target
	}
	return filepath.Dir(target)
}
