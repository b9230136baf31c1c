package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/nebbyJammin/inkramp/pkg/asciiart"
)

const appName = "inkramp"

var (
	Version     = "0.1.0"
	CommitSha   = "unknown"
	FullVersion = Version + "-" + CommitSha
)

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   appName + " [files...]",
		Short: "Render images as text, with characters ranked by how much ink they use",
		Long: color.New(color.FgHiMagenta).Sprintf(
			"Render images as ascii art, with a palette measured from a real font. %s",
			color.New(color.FgBlue).Sprintf("(%s)", FullVersion),
		),
		Args:          cobra.ArbitraryArgs,
		Version:       FullVersion,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && stdinIsTerminal(cmd) {
				return cmd.Help()
			}

			return runConvert(cmd, a, args)
		},
	}

	registerFlags(rootCmd, &a.configPath, &a.flags)

	rootCmd.AddCommand(
		newPaletteCmd(a),
		newGrayCmd(a),
		newBatchCmd(a),
		newConfigCmd(a),
	)

	return rootCmd
}

// stdinIsTerminal reports whether the command reads from an interactive terminal.
func stdinIsTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.InOrStdin().(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// runConvert converts every file named in args, or every path read from stdin when there are none.
func runConvert(cmd *cobra.Command, a *app, args []string) error {
	asciiconv, err := a.converter()
	if err != nil {
		return err
	}

	width, height := a.targetSize()
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	if len(args) == 0 {
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			if filename := scanner.Text(); filename != "" {
				convertOne(a, asciiconv, out, errOut, filename, width, height)
			}
		}
		return scanner.Err()
	}

	for _, arg := range args {
		convertOne(a, asciiconv, out, errOut, arg, width, height)
	}

	return nil
}

// convertOne prints the art for one file. Failures are reported and do not stop the run.
func convertOne(a *app, asciiconv *asciiart.AsciiConverter, out, errOut io.Writer, path string, width, height int) {
	start := time.Now()

	res, err := asciiconv.ConvertFile(path, width, height)
	if err != nil {
		a.log.Warn("conversion failed", "file", path, "error", err)
		color.New(color.FgRed).Fprintf(errOut, "Error converting %s: %s\n", path, err)
		return
	}

	fmt.Fprint(out, res)

	if a.cfg.Output.Timing {
		fmt.Fprintf(errOut, "Conversion took %dms\n", time.Since(start).Milliseconds())
	}
}

// execute runs cmd and releases what a opened, whether or not the command failed.
func execute(ctx context.Context, a *app, cmd *cobra.Command) error {
	defer a.teardown()

	return cmd.ExecuteContext(ctx)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := &app{}
	if err := execute(ctx, a, newRootCmd(a)); err != nil {
		slog.Error("Error executing command", "error", err)
		stop()
		os.Exit(1)
	}
}
