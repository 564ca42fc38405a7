package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/omzlo/pivoyager-firmware/sim"
)

var runCmd = &cobra.Command{
	Use:   "run scenario.yaml",
	Short: "Run a timed scenario against the application firmware",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		sc, err := sim.Load(f)
		if err != nil {
			return err
		}

		var log io.Writer = io.Discard
		if verbose {
			log = cmd.ErrOrStderr()
		}
		rep, err := sim.Run(sc, log)
		if rep != nil {
			printReport(cmd.OutOrStdout(), sc, rep)
		}
		return err
	},
}

func printReport(w io.Writer, sc *sim.Scenario, rep *sim.Report) {
	name := sc.Name
	if name == "" {
		name = "scenario"
	}
	fmt.Fprintf(w, "%s: ran to %d ms\n", name, rep.EndedAt)
	for _, r := range rep.Reads {
		fmt.Fprintf(w, "  t=%d read [%d] % x\n", r.At, r.Index, r.Bytes)
	}
	if rep.Standby {
		fmt.Fprintf(w, "  standby at %d ms\n", rep.StandbyAt)
	}
	for _, f := range rep.Failures {
		fmt.Fprintf(w, "  FAIL %s\n", f)
	}
}
