// Package cli implements the TaskPulse command-line interface using Cobra.
// Each subcommand maps to a daemon capability (serve, summary, complete,
// checkin).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "taskpulse",
	Short: "TaskPulse — Behavioral scoring for your tasks and habits",
	Long: `TaskPulse turns completed tasks and habit check-ins into XP, streaks,
badges, and personalized challenges. State lives locally in SQLite;
the serve command exposes the REST API for clients.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
