package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRunCmd(a *app) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "run [dir]",
		Short: "Generate every source file below a directory",
		Long: `Process every source file below dir (default: the current directory)
and write the results below the output directory, mirroring the source
layout. The output directory defaults to phpgen.output.dir.

A file that fails is reported and skipped; the command fails if any file
failed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}
			cb := a.codebase(root, outDir)
			err := cb.ScanAll(cmd.Context())

			applied := 0
			for _, path := range cb.Files() {
				applied += len(cb.GetFile(path).Applied)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d file(s), %d annotation(s) applied\n", len(cb.Files()), applied)
			return err
		},
	}

	cmd.Flags().StringVarP(&outDir, "output", "o", "", "output directory")

	return cmd
}
