// seehuhn.de/go/png - a decoder for PNG images
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Pnginfo decodes a PNG file and prints a summary of the image.
//
// Usage:
//
//	pnginfo [--verbose] [--verify] [--preview] file.png
//
// With --preview, a down-scaled version of the image is shown using ANSI
// true-colour escape sequences, if standard output is a terminal.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"seehuhn.de/go/png"
)

type options struct {
	verbose bool
	verify  bool
	preview bool
	width   int
}

func main() {
	cmd := newRootCommand()
	err := cmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opt := &options{}
	cmd := &cobra.Command{
		Use:   "pnginfo file.png",
		Short: "Decode a PNG file and show information about the image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], opt)
		},
	}
	flags := cmd.Flags()
	flags.BoolVarP(&opt.verbose, "verbose", "v", false, "log the structure of the file")
	flags.BoolVar(&opt.verify, "verify", false, "verify chunk CRCs and the Adler-32 checksum")
	flags.BoolVarP(&opt.preview, "preview", "p", false, "show a preview of the image")
	flags.IntVar(&opt.width, "width", 0, "preview width in characters (default: terminal width)")
	return cmd
}

func run(stdout, stderr io.Writer, fname string, opt *options) error {
	level := zerolog.InfoLevel
	if opt.verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: !isTerminal(stderr)}).
		Level(level).
		With().Timestamp().Logger()

	data, err := os.ReadFile(fname)
	if err != nil {
		return err
	}
	logger.Debug().Str("file", fname).Int("size", len(data)).Msg("read file")

	img, err := png.Decode(data, &png.Options{
		VerifyChecksums: opt.verify,
		Logger:          &logger,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", fname, err)
	}

	fmt.Fprintf(stdout, "%s: %dx%d RGB, %d bytes of pixel data\n",
		fname, img.Width, img.Height, len(img.Pix))

	if opt.preview {
		cols := opt.width
		if cols <= 0 {
			cols = terminalWidth(stdout)
		}
		if cols <= 0 {
			logger.Info().Msg("standard output is not a terminal, no preview shown")
			return nil
		}
		return writePreview(stdout, img, cols)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the number of columns of the terminal w,
// or 0 if w is not a terminal.
func terminalWidth(w io.Writer) int {
	if !isTerminal(w) {
		return 0
	}
	width, _, err := term.GetSize(int(w.(*os.File).Fd()))
	if err != nil {
		return 0
	}
	return width
}
