package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nebbyJammin/inkramp/internal/batch"
)

func newBatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "batch DIR",
		Short: "Convert every image under a directory",
		Long:  "Walk DIR and convert every file whose name matches one of the batch.include glob patterns.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asciiconv, err := a.converter()
			if err != nil {
				return err
			}

			width, height := a.targetSize()

			runner, err := batch.New(asciiconv, cmd.OutOrStdout(), batch.Options{
				Width:   width,
				Height:  height,
				Include: a.cfg.Batch.Include,
				Timing:  a.cfg.Output.Timing,
				Logger:  a.log,
			})
			if err != nil {
				return err
			}

			res, err := runner.Run(cmd.Context(), args[0])

			summary := color.New(color.FgGreen)
			if res.Failed > 0 {
				summary = color.New(color.FgYellow)
			}
			summary.Fprintf(cmd.ErrOrStderr(), "%d converted, %d failed, %d skipped\n", res.Converted, res.Failed, res.Skipped)

			return err
		},
	}
}
