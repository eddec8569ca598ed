package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/phpgen/format"
	"github.com/dhamidi/phpgen/php/parser"
	"github.com/spf13/cobra"
)

func newTokensCmd() *cobra.Command {
	var whitespace bool

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "List the tokens of a .php file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}
			enc := format.NewTokenEncoder(os.Stdout)
			enc.ShowWhitespace(whitespace)
			return enc.Encode(parser.Tokenize(data))
		},
	}

	cmd.Flags().BoolVar(&whitespace, "whitespace", false, "include whitespace tokens")

	return cmd
}
