// Package cli implements the command-line interface for watersort.
//
// Commands:
//   - solve: search for a pour sequence and optionally narrate it
//   - play: step through a solution in an interactive viewer
//   - enter: build a puzzle file interactively
//   - palette: manage named colors
//   - history: browse previous solves
//
// All commands support --verbose (-v) for debug-level logging. The logger
// travels in the command context.
package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

var (
	// Global flags
	dbPath      string
	palettePath string
	verbose     bool
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "watersort",
	Short: "Water sort puzzle solver",
	Long: `watersort - A CLI tool for solving water sort puzzles.

Describe a puzzle in a TOML file (or build one with "watersort enter"),
let the best-first solver find a pour sequence, and replay the solution
step by step in the terminal.`,
	Version:      version,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := log.InfoLevel
		if verbose {
			level = log.DebugLevel
		}
		cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.watersort/watersort.db)")
	rootCmd.PersistentFlags().StringVar(&palettePath, "palette", "", "Palette file path (default: ~/.watersort/palette.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}
