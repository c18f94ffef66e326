package main

import (
	"fmt"
	"os"
	"strings"
)

// uiMode selects between the live progress view and plain line output.
// "auto" follows the terminal: interactive stdout gets the progress
// view, pipes and redirects get plain output.
type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", string(uiModeAuto):
		return uiModeAuto, nil
	case string(uiModeOn):
		return uiModeOn, nil
	case string(uiModeOff):
		return uiModeOff, nil
	}
	return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

func shouldUseTUI(mode uiMode) bool {
	if mode == uiModeAuto {
		return isTerminal(os.Stdout)
	}
	return mode == uiModeOn
}
