package main

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with an empty XDG config home and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	return runApp(t, &app{}, "", args...)
}

// runApp is run with the given app state and stdin contents.
func runApp(t *testing.T, a *app, stdin string, args ...string) (string, string, error) {
	t.Helper()

	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(a)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := execute(context.Background(), a, cmd)
	return stdout.String(), stderr.String(), err
}

func writePNG(t *testing.T, dir, name string, values ...uint8) string {
	t.Helper()

	img := image.NewGray(image.Rect(0, 0, len(values), 1))
	copy(img.Pix, values)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	return path
}

func TestConvert_Files(t *testing.T) {
	dir := t.TempDir()
	a := writePNG(t, dir, "a.png", 0, 64, 128, 255)
	b := writePNG(t, dir, "b.png", 255, 0)

	stdout, stderr, err := run(t, "--ramp", "#:. ", "--downscale-mode", "none", a, b)
	require.NoError(t, err)
	assert.Equal(t, "#:. \n #\n", stdout)
	assert.Empty(t, stderr)
}

func TestConvert_BadFileContinues(t *testing.T) {
	dir := t.TempDir()
	good := writePNG(t, dir, "good.png", 0)

	stdout, stderr, err := run(t, "--ramp", "#:. ", "--downscale-mode", "none", filepath.Join(dir, "missing.png"), good)
	require.NoError(t, err)
	assert.Equal(t, "#\n", stdout)
	assert.Contains(t, stderr, "missing.png")
}

func TestConvert_Stdin(t *testing.T) {
	dir := t.TempDir()
	a := writePNG(t, dir, "a.png", 0, 255)
	b := writePNG(t, dir, "b.png", 128)

	stdout, stderr, err := runApp(t, &app{}, a+"\n\n"+b+"\n", "--ramp", "#:. ", "--downscale-mode", "none")
	require.NoError(t, err)
	assert.Equal(t, "# \n.\n", stdout)
	assert.Empty(t, stderr)
}

func TestConvert_PaletteFailureStopsBeforeOutput(t *testing.T) {
	dir := t.TempDir()
	img := writePNG(t, dir, "a.png", 0)
	logFile := filepath.Join(dir, "logs", "inkramp.log")

	a := &app{}
	stdout, _, err := runApp(t, a, "", "--log-file", logFile, "--font", filepath.Join(dir, "nope.ttf"), img)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "build palette")
	assert.Empty(t, stdout)

	// the log file was opened during setup and released although the command failed
	assert.FileExists(t, logFile)
	assert.Nil(t, a.logCloser)
}

func TestConvert_InvalidFlag(t *testing.T) {
	_, _, err := run(t, "--resampler", "sinc", "x.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resampler")
}

func TestPaletteCmd(t *testing.T) {
	stdout, _, err := run(t, "palette", "--ramp", "#:. ")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], `"#:. "`)
	assert.Contains(t, lines[1], "1.0000")
	assert.Contains(t, lines[4], "0.0000")
}

func TestPaletteCmd_Font(t *testing.T) {
	stdout, _, err := run(t, "palette")
	require.NoError(t, err)

	// 95 default candidates, every 8th kept, plus the ramp line
	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	assert.Len(t, lines, 13)
}

func TestPaletteCmd_Text(t *testing.T) {
	stdout, _, err := run(t, "palette", "# ")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], `'#'`))
	assert.True(t, strings.HasPrefix(lines[1], `' '  0.0000`))
}

func TestGrayCmd(t *testing.T) {
	dir := t.TempDir()
	in := writePNG(t, dir, "in.png", 10, 20, 30, 40)
	out := filepath.Join(dir, "out.png")

	_, _, err := run(t, "gray", "--downscale-mode", "none", in, out)
	require.NoError(t, err)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 1), img.Bounds())
}

func TestBatchCmd(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "a.png", 0)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644))

	stdout, stderr, err := run(t, "batch", "--ramp", "#:. ", "--downscale-mode", "none", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Image: a.png")
	assert.Contains(t, stdout, "#\n")
	assert.Contains(t, stderr, "1 converted, 0 failed, 1 skipped")
}

func TestConfigCmd(t *testing.T) {
	stdout, _, err := run(t, "config", "--width", "42")
	require.NoError(t, err)
	assert.Contains(t, stdout, "# no config file found")
	assert.Contains(t, stdout, "width = 42")
}

func TestConfigCmd_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extra.toml")
	require.NoError(t, os.WriteFile(path, []byte("[palette]\nstride = 3\n"), 0o644))

	stdout, _, err := run(t, "config", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "# loaded from "+path)
	assert.Contains(t, stdout, "stride = 3")
}
