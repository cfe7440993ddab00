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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/png"
	"seehuhn.de/go/png/internal/pngtest"
)

func writeFile(t *testing.T, data []byte) string {
	t.Helper()
	fname := filepath.Join(t.TempDir(), "test.png")
	require.NoError(t, os.WriteFile(fname, data, 0o644))
	return fname
}

func execute(args ...string) (string, string, error) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd := newRootCommand()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestSummary(t *testing.T) {
	fname := writeFile(t, pngtest.Encode(7, 5, pngtest.Pattern(7, 5), nil))

	stdout, _, err := execute(fname)
	require.NoError(t, err)
	assert.Contains(t, stdout, "7x5 RGB, 105 bytes of pixel data")
}

func TestArgs(t *testing.T) {
	stdout, stderr, err := execute()
	require.Error(t, err)
	assert.Contains(t, stdout+stderr, "Usage:")

	_, _, err = execute("a.png", "b.png")
	require.Error(t, err)
}

func TestDecodeError(t *testing.T) {
	data := pngtest.Encode(3, 3, pngtest.Pattern(3, 3), nil)
	data[0] = 0
	fname := writeFile(t, data)

	stdout, stderr, err := execute(fname)
	require.Error(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "invalid signature")
	assert.NotContains(t, stderr, "Usage:")
}

func TestVerbose(t *testing.T) {
	fname := writeFile(t, pngtest.Encode(2, 2, pngtest.Pattern(2, 2), nil))

	_, stderr, err := execute("--verbose", fname)
	require.NoError(t, err)
	assert.Contains(t, stderr, "IHDR")
	assert.Contains(t, stderr, "deflate block")
}

func TestVerify(t *testing.T) {
	data := pngtest.Encode(2, 2, pngtest.Pattern(2, 2), nil)
	data[8+8+13] ^= 0xFF // IHDR CRC
	fname := writeFile(t, data)

	_, _, err := execute(fname)
	require.NoError(t, err)

	_, stderr, err := execute("--verify", fname)
	require.Error(t, err)
	assert.Contains(t, stderr, "checksum mismatch")
}

func TestPreview(t *testing.T) {
	img := &png.Image{Width: 4, Height: 4, Pix: bytes.Repeat([]byte{255, 0, 0}, 16)}

	buf := &bytes.Buffer{}
	require.NoError(t, writePreview(buf, img, 2))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 1)
	assert.Equal(t, 2, strings.Count(lines[0], "▀"))
	assert.Contains(t, lines[0], "\x1b[38;2;255;0;0m")

	// Without a terminal, the preview needs an explicit width.
	fname := writeFile(t, pngtest.Encode(4, 4, pngtest.Pattern(4, 4), nil))
	stdout, _, err := execute("--preview", fname)
	require.NoError(t, err)
	assert.NotContains(t, stdout, "▀")

	stdout, _, err = execute("--preview", "--width", "4", fname)
	require.NoError(t, err)
	assert.Contains(t, stdout, "▀")
}
