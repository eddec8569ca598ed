package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dhamidi/phpgen/format"
	"github.com/dhamidi/phpgen/php/parser"
	"github.com/spf13/cobra"
)

func newFmtCmd(a *app) *cobra.Command {
	var fmtOverwrite bool

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Regenerate and re-indent a .php file without applying annotations",
		Long: `Regenerate a .php file from its parsed tree and lay it out.

If a file is provided, it must have a .php extension.
If no file is provided, reads PHP source from stdin.

Use -w to overwrite the file in place (requires a file argument).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var source []byte
			var err error
			var filename string

			if len(args) == 0 {
				if fmtOverwrite {
					return fmt.Errorf("-w requires a file argument")
				}
				source, err = io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
			} else {
				filename = args[0]
				ext := filepath.Ext(filename)
				if ext != ".php" {
					return fmt.Errorf("expected .php file, got %s", ext)
				}
				source, err = os.ReadFile(filename)
				if err != nil {
					return fmt.Errorf("read file: %w", err)
				}
			}

			root, err := parser.New(parser.WithFile(filename)).Parse(source)
			if err != nil {
				return err
			}

			layout := format.NewLayout(os.Stdout)
			layout.SetIndent(a.indent())

			if fmtOverwrite {
				return os.WriteFile(filename, []byte(layout.Format(root.Generate())), 0644)
			}
			return layout.Print(root.Generate())
		},
	}

	cmd.Flags().BoolVarP(&fmtOverwrite, "write", "w", false, "overwrite the file in place")

	return cmd
}
