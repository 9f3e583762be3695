package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lcox74/minicomp/internal/codegen"
	"github.com/lcox74/minicomp/internal/lang"
)

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <definitions>",
		Short: "Dump each equation's lowered machine code as commented hex",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			equations, err := lang.ParseDefinitions(args[0])
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return err
			}
			for _, eq := range equations {
				fmt.Print(codegen.DumpHex(eq))
			}
			return nil
		},
	}
}
