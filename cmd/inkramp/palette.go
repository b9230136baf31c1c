package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nebbyJammin/inkramp/pkg/glyph"
	"github.com/nebbyJammin/inkramp/pkg/palette"
)

func newPaletteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "palette [text]",
		Short: "Print the palette, or the darkness of every character of text",
		Long: "Without arguments, print the palette built from the configured font, darkest first, with the darkness score of every character.\n" +
			"With text, print the darkness score the configured font gives each of its characters.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return printDarkness(cmd.OutOrStdout(), a, args[0])
			}

			p, err := a.buildPalette()
			if err != nil {
				return err
			}

			printPalette(cmd.OutOrStdout(), p)
			return nil
		},
	}
}

func printPalette(w io.Writer, p *palette.Palette) {
	bold := color.New(color.Bold)

	bold.Fprintf(w, "%q\n", p.String())
	for i, e := range p.Entries() {
		fmt.Fprintf(w, "%3d  %q  %.4f\n", i, e.Char, e.Score)
	}
}

func printDarkness(w io.Writer, a *app, text string) error {
	spec, err := a.cfg.FontSpec()
	if err != nil {
		return err
	}

	r, err := glyph.Load(spec)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, c := range text {
		bm, err := r.Rasterize(c)
		if err != nil {
			return &palette.RenderError{Rune: c, Err: err}
		}

		if bm.Degenerate() {
			fmt.Fprintf(w, "%q  %s\n", c, color.New(color.FgYellow).Sprint("empty glyph"))
			continue
		}

		fmt.Fprintf(w, "%q  %.4f  (%d/%d px)\n", c, bm.Darkness(), bm.Ink, bm.Area())
	}

	return nil
}
