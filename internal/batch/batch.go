package batch

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gobwas/glob"
)

// Converter turns one image file into text art.
type Converter interface {
	ConvertFile(path string, targetWidth, targetHeight int) (string, error)
}

type Options struct {
	Width, Height int
	// Include holds glob patterns matched case-insensitively against file names. Empty means every file.
	Include []string
	// Timing prints how long each conversion took.
	Timing bool
	Logger *slog.Logger
}

// Result counts what happened to the files under the walked directory.
type Result struct {
	Converted int
	Failed    int
	Skipped   int
}

type Runner struct {
	conv    Converter
	out     io.Writer
	opts    Options
	include []glob.Glob
	log     *slog.Logger
}

// New compiles the include patterns. Art is written to out.
func New(conv Converter, out io.Writer, opts Options) (*Runner, error) {
	r := &Runner{
		conv: conv,
		out:  out,
		opts: opts,
		log:  opts.Logger,
	}
	if r.log == nil {
		r.log = slog.New(slog.DiscardHandler)
	}

	for _, pattern := range opts.Include {
		g, err := glob.Compile(strings.ToLower(pattern))
		if err != nil {
			return nil, fmt.Errorf("include pattern %q: %w", pattern, err)
		}
		r.include = append(r.include, g)
	}

	return r, nil
}

// Matches reports whether a file name passes the include filter.
func (r *Runner) Matches(name string) bool {
	if len(r.include) == 0 {
		return true
	}

	name = strings.ToLower(name)
	for _, g := range r.include {
		if g.Match(name) {
			return true
		}
	}

	return false
}

/*
Run converts every matching file under dir, in lexical order, and prints for each one its name and size, the art and, when enabled, the conversion time.

A file that fails to convert is logged and counted, and the walk goes on. Run stops early when ctx is cancelled or dir cannot be walked.
*/
func (r *Runner) Run(ctx context.Context, dir string) (Result, error) {
	var res Result

	err := filepath.Walk(dir, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		if !r.Matches(info.Name()) {
			res.Skipped++
			return nil
		}

		start := time.Now()

		asciiStr, err := r.conv.ConvertFile(path, r.opts.Width, r.opts.Height)
		if err != nil {
			res.Failed++
			r.log.Warn("conversion failed", "file", path, "error", err)
			return nil
		}

		timeTaken := time.Since(start)

		fmt.Fprintf(r.out, "Image: %s (%s)\n", info.Name(), humanize.Bytes(uint64(info.Size())))
		fmt.Fprintln(r.out, asciiStr)

		if r.opts.Timing {
			fmt.Fprintf(r.out, "Conversion took %dms\n", timeTaken.Milliseconds())
		}

		r.log.Debug("converted", "file", path, "took", timeTaken)
		res.Converted++

		return nil
	})

	return res, err
}
