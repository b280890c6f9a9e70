// Package main provides UI utilities for the importer CLI.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// newProgressBar creates a progress bar for deterministic document progress.
func newProgressBar(total int64, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions64(
		total,
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("docs"),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// withSpinner runs fn behind a spinner with the given message.
func withSpinner(message string, fn func() error) error {
	if outputJSON {
		return fn()
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message
	s.Start()
	defer s.Stop()

	return fn()
}

// printSuccess prints a green success line.
func printSuccess(format string, args ...interface{}) {
	if outputJSON {
		return
	}
	color.New(color.FgGreen).Printf("✓ %s\n", fmt.Sprintf(format, args...))
}

// printFailure prints a red failure line.
func printFailure(format string, args ...interface{}) {
	if outputJSON {
		return
	}
	color.New(color.FgRed).Printf("✗ %s\n", fmt.Sprintf(format, args...))
}
