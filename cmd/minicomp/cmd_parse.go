package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lcox74/minicomp/internal/lang"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <definitions>",
		Short: "Dump each equation's parsed expression tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			equations, err := lang.ParseDefinitions(args[0])
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return err
			}
			for _, eq := range equations {
				fmt.Printf("%s(%s) = %s\n", eq.Name, string(eq.Params), eq.Body.String())
			}
			return nil
		},
	}
}
