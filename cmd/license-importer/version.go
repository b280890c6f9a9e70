package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Build information, set via -ldflags at release time.
var (
	version = "dev"
	commit  = "none"
)

// newVersionCmd creates the version subcommand.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("license-importer %s (%s)\n", version, commit)
		},
	}
}
