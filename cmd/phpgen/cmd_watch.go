package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dhamidi/phpgen/codebase"
	"github.com/spf13/cobra"
)

func newWatchCmd(a *app) *cobra.Command {
	var outDir string
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Regenerate sources below a directory whenever they change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}
			cb := a.codebase(root, outDir)
			if cb.OutputPath(root) == "" {
				return fmt.Errorf("watch needs an output directory (-o or phpgen.output.dir)")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			w := codebase.NewFileWatcher(cb)
			w.SetPollInterval(interval)
			w.Run(ctx)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "output", "o", "", "output directory")
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "poll interval")

	return cmd
}
