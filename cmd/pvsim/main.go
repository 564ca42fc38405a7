// Command pvsim runs the firmware against a simulated board.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose bool

	rootCmd = &cobra.Command{
		Use:           "pvsim",
		Short:         "PiVoyager firmware simulator",
		Long:          "Run the application firmware and the bootloader on a simulated board.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "echo the firmware console")
	rootCmd.AddCommand(runCmd, flashCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "pvsim:", err)
		os.Exit(1)
	}
}
