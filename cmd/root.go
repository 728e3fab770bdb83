// Package cmd holds the command line entry points of the leads service.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "leads",
	Short: "Drone spraying booking and contact form service",
	Long: `Serves the booking forms of the XroneTech website: form sessions, field
validation, location capture and delivery of submissions to the configured webhooks.`,
	// Running without a subcommand starts the server.
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, areaCmd)
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
