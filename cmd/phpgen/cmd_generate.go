package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dhamidi/phpgen/transform"
	"github.com/spf13/cobra"
)

func newGenerateCmd(a *app) *cobra.Command {
	var output string
	var raw bool
	var showApplied bool

	cmd := &cobra.Command{
		Use:   "generate [file]",
		Short: "Apply the annotations of a PHP file and print the result",
		Long: `Parse a PHP file, apply every annotation found in its doc comments
and print the regenerated source.

If no file is provided, reads PHP source from stdin.
Use -o to write the result to a file instead of stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []transform.Option
			if raw {
				opts = append(opts, transform.WithLayout(""))
			}
			p := a.pipeline(opts...)

			var source []byte
			var err error
			name := "stdin"
			if len(args) == 0 {
				source, err = io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
			} else {
				name = args[0]
				source, err = os.ReadFile(name)
				if err != nil {
					return fmt.Errorf("read file: %w", err)
				}
			}

			res, err := p.Process(cmd.Context(), source, name)
			if err != nil {
				return err
			}

			if showApplied {
				for _, inst := range res.Applied {
					fmt.Fprintf(os.Stderr, "%s:%d: %s\n", name, inst.Line, inst)
				}
			}

			if output != "" {
				return os.WriteFile(output, []byte(res.Output), 0644)
			}
			_, err = io.WriteString(os.Stdout, res.Output)
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the result to this file")
	cmd.Flags().BoolVar(&raw, "raw", false, "skip the layout pass")
	cmd.Flags().BoolVar(&showApplied, "applied", false, "list applied annotations on stderr")

	return cmd
}
