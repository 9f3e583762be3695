package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lcox74/minicomp/internal/lang"
)

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <expression>",
		Short: "Dump the lexer's token stream for a single expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			toks, err := lang.Lex(args[0])
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return err
			}
			for _, tok := range toks {
				fmt.Printf("%d\t%s\n", tok.Pos.Offset, tok.String())
			}
			return nil
		},
	}
}
