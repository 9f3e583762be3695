// Command minicomp compiles arithmetic function definitions straight to a
// native ELF64 Linux executable.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lcox74/minicomp/internal/compiler"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "minicomp <output_file> <definitions>",
		Short: "Compile arithmetic function definitions to an ELF64 executable",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			outFile, definitions := args[0], args[1]

			out, err := compiler.Compile(definitions)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return err
			}

			if err := os.WriteFile(outFile, out, 0755); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return err
			}

			fmt.Printf("compiled %q -> %s\n", definitions, outFile)
			return nil
		},
	}

	root.AddCommand(newTokensCmd(), newParseCmd(), newDumpCmd())
	return root
}
