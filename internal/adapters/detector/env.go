// Package detector provides environment detection for output mode selection.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode represents the rendering mode for progress output.
type OutputMode int

const (
	// ModeAuto selects a mode based on the environment.
	ModeAuto OutputMode = iota
	// ModeTUI renders a live interactive status display.
	ModeTUI
	// ModeLinear prints plain log lines suitable for CI output.
	ModeLinear
)

// DetectEnvironment inspects the process environment and recommends an
// output mode. Interactive terminals get the TUI; CI systems and
// redirected output get linear logs.
func DetectEnvironment() OutputMode {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return ModeLinear
	}
	return ModeTUI
}

// ResolveMode combines the auto-detected mode with an explicit user
// choice. The user's choice wins; unknown values fall back to
// auto-detection.
func ResolveMode(autoDetected OutputMode, userChoice string) OutputMode {
	switch userChoice {
	case "tui":
		return ModeTUI
	case "linear", "ci":
		return ModeLinear
	case "auto", "":
		return autoDetected
	default:
		return autoDetected
	}
}
