// Package cmd implements the tinyelf command-line tool.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tinyelf",
	Short: "tinyelf assembles programs into minimal ELF64 executables",
	Long: `tinyelf builds a typed x86-64 instruction program in memory,
resolves every label reference with a two-pass back-patcher, and
serializes the result as a freestanding ELF64 executable.`,
}

// Execute runs the root command, exiting the process with status 1 on
// failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
