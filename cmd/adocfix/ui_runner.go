package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rolfedh/adocfix/internal/driver"
	"github.com/rolfedh/adocfix/internal/ui"
)

type runOutcome struct {
	result *driver.RunResult
	err    error
}

// runWithUI drives a run in the background while a Bubble Tea program
// renders per-file progress from the driver's event channel.
func runWithUI(ctx context.Context, title, target string, opts driver.Options) (*driver.RunResult, error) {
	files, err := driver.ListTargets(target)
	if err != nil {
		return nil, err
	}

	events := make(chan driver.Event, 256)
	opts.Events = events
	outcomeCh := make(chan runOutcome, 1)

	go func() {
		res, err := driver.Run(ctx, target, opts)
		outcomeCh <- runOutcome{result: res, err: err}
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
