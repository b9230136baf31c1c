package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(a.cfg.Sources) == 0 {
				fmt.Fprintln(out, "# no config file found, showing defaults")
			}
			for _, src := range a.cfg.Sources {
				fmt.Fprintf(out, "# loaded from %s\n", src)
			}

			return a.cfg.WriteTOML(out)
		},
	}
}
