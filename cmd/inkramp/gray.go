package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nebbyJammin/inkramp/pkg/asciiart"
)

func newGrayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "gray IN OUT",
		Short: "Save the grayscale image the characters are picked from",
		Long: "Apply the configured filters, downscaling and grayscale mode to IN and save the result to OUT.\n" +
			"The output format follows the extension of OUT (png, jpg, gif, bmp, tif).",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := args[0], args[1]

			opts, err := a.cfg.ConverterOptions()
			if err != nil {
				return err
			}
			conv := asciiart.New(append(opts, asciiart.WithLogger(a.log))...)

			f, err := os.Open(in)
			if err != nil {
				return err
			}
			defer f.Close()

			img, format, err := asciiart.Decode(f)
			if err != nil {
				return fmt.Errorf("%s: %w", in, err)
			}

			width, height := a.targetSize()
			gray, err := conv.Grayscale(img, width, height)
			if err != nil {
				return err
			}

			if err := asciiart.SaveGray(out, gray); err != nil {
				return err
			}

			a.log.Info("saved grayscale image",
				"in", in,
				"format", format,
				"out", out,
				"size", fmt.Sprintf("%dx%d", gray.Rect.Dx(), gray.Rect.Dy()),
			)

			return nil
		},
	}
}
