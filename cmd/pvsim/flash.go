package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/omzlo/pivoyager-firmware/flashprog"
	"github.com/omzlo/pivoyager-firmware/platform"
	"github.com/omzlo/pivoyager-firmware/sim"
)

var (
	mcuid uint32

	flashCmd = &cobra.Command{
		Use:   "flash image.bin",
		Short: "Program an image through the bootloader protocol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var log io.Writer = io.Discard
			if verbose {
				log = cmd.ErrOrStderr()
			}
			b := platform.NewBootSim(mcuid, log)
			out := cmd.OutOrStdout()
			err = sim.Program(b, image, func(op flashprog.Op, addr uint32) {
				if verbose {
					fmt.Fprintf(out, "%-5s %08x\n", op, addr)
				}
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "programmed %d bytes, started at %08x\n", len(image), b.Handoff.Entry)
			return nil
		},
	}
)

func init() {
	flashCmd.Flags().Uint32Var(&mcuid, "mcuid", 0x5056_0001, "identity word the bootloader reports")
}
