// This package implements the command line tool that uses the API.
// It provides an easy and reliable interface to quickly generate ascii art in
// the terminal from an image on the filesystem, with a palette measured from a real font.
//
// By default, the converter is compatible with .png, .jpg, .jpeg, .gif, .bmp and .webp file formats
// (See github.com/nebbyJammin/inkramp/pkg/asciiart).
//
// Settings are read from $XDG_CONFIG_HOME/inkramp/config.toml, ./inkramp.toml and --config,
// in that order; flags given on the command line override them.
package main
