package main

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile("\x1b\\[[0-9;]*m")

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeInput(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.bin")
	require.Nil(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestRunBasicDump(t *testing.T) {
	input := writeInput(t, []byte("Hi!"))
	output := filepath.Join(t.TempDir(), "out.txt")
	_, err := runCommand(t, "--row-label-style", "none", "-y", "none", input, output)
	require.Nil(t, err)
	data, err := os.ReadFile(output)
	require.Nil(t, err)
	require.Equal(t, "486921\n", string(ansiPattern.ReplaceAllString(string(data), "")))
}

func TestRunWithCalcAndGradient(t *testing.T) {
	input := writeInput(t, []byte{0x00, 0x7f, 0xff})
	output := filepath.Join(t.TempDir(), "out.txt")
	_, err := runCommand(t,
		"-x", ">>>7",
		"-z", "black,white",
		"--row-label-style", "none",
		"-y", "none",
		input, output)
	require.Nil(t, err)
	data, err := os.ReadFile(output)
	require.Nil(t, err)
	require.Equal(t, "007fff\n", ansiPattern.ReplaceAllString(string(data), ""))
}

func TestRunColsWithoutGroups(t *testing.T) {
	// -c counts chunks per line; without -g it divides by the base's
	// natural word size, so -c 8 in hex is two 4-byte words per line.
	input := writeInput(t, []byte{
		0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07,
		0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f,
	})
	output := filepath.Join(t.TempDir(), "out.txt")
	_, err := runCommand(t, "-c", "8", "--row-label-style", "none", "-y", "none", input, output)
	require.Nil(t, err)
	data, err := os.ReadFile(output)
	require.Nil(t, err)
	require.Equal(t,
		"00010203 04050607\n08090a0b 0c0d0e0f\n",
		ansiPattern.ReplaceAllString(string(data), ""))
}

func TestOpenFilesClosesInputOnOutputError(t *testing.T) {
	input := writeInput(t, []byte{1})
	badOutput := filepath.Join(t.TempDir(), "missing", "out.txt")
	in, _, cleanup, err := openFiles([]string{input, badOutput})
	require.NotNil(t, err)
	cleanup()
	f, ok := in.(*os.File)
	require.True(t, ok)
	require.NotNil(t, f.Close())
}

func TestRunBadExpressionIsFatal(t *testing.T) {
	// Compilation happens before any input is opened.
	_, err := runCommand(t, "-x", "x $")
	require.NotNil(t, err)
}

func TestRunBadGradientIsFatal(t *testing.T) {
	input := writeInput(t, []byte{1})
	_, err := runCommand(t, "-z", "nope,red", input)
	require.NotNil(t, err)
}

func TestRunBadBaseIsFatal(t *testing.T) {
	input := writeInput(t, []byte{1})
	_, err := runCommand(t, "-b", "10", input)
	require.NotNil(t, err)
}

func TestRunSeekAndOffset(t *testing.T) {
	input := writeInput(t, []byte{1, 2, 3, 4})
	output := filepath.Join(t.TempDir(), "out.txt")
	_, err := runCommand(t,
		"-s", "2",
		"--row-label-style", "byte",
		"-y", "none",
		input, output)
	require.Nil(t, err)
	data, err := os.ReadFile(output)
	require.Nil(t, err)
	require.Equal(t, "0x00000002:  0304\n", ansiPattern.ReplaceAllString(string(data), ""))
}

func TestResolveTruecolor(t *testing.T) {
	on, err := resolveTruecolor("on")
	require.Nil(t, err)
	require.True(t, on)

	off, err := resolveTruecolor("off")
	require.Nil(t, err)
	require.False(t, off)

	_, err = resolveTruecolor("sideways")
	require.NotNil(t, err)
}
