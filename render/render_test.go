package render

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cloudcmds/eks/compiler"
	"github.com/cloudcmds/eks/errz"
	"github.com/cloudcmds/eks/gradient"
)

var ansiPattern = regexp.MustCompile("\x1b\\[[0-9;]*m")

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func renderString(t *testing.T, opts Options, input []byte) string {
	t.Helper()
	r, err := New(opts)
	require.Nil(t, err)
	var out bytes.Buffer
	require.Nil(t, r.Render(bytes.NewReader(input), &out))
	return out.String()
}

func hexOptions(t *testing.T) Options {
	t.Helper()
	enc, err := NewEncoding(16, false)
	require.Nil(t, err)
	return Options{Encoding: enc, RowLabel: LabelNone}
}

func TestRenderHexLine(t *testing.T) {
	out := renderString(t, hexOptions(t), []byte{0x00, 0x01, 0xab, 0xff})
	require.Equal(t, "0001abff\n", stripANSI(out))
}

func TestRenderWordGrouping(t *testing.T) {
	opts := hexOptions(t)
	opts.ChunksPerWord = 2
	opts.WordsPerLine = 2
	out := renderString(t, opts, []byte{1, 2, 3, 4, 5, 6})
	require.Equal(t, "0102 0304\n0506\n", stripANSI(out))
}

func TestRenderRowLabels(t *testing.T) {
	opts := hexOptions(t)
	opts.RowLabel = LabelByte
	opts.ChunksPerWord = 2
	opts.WordsPerLine = 1
	out := renderString(t, opts, []byte{1, 2, 3, 4})
	require.Equal(t, "0x00000000:  0102\n0x00000002:  0304\n", stripANSI(out))
}

func TestRenderDisplayOffset(t *testing.T) {
	opts := hexOptions(t)
	opts.RowLabel = LabelByte
	opts.DisplayOffset = 0x1000
	out := renderString(t, opts, []byte{1})
	require.Equal(t, "0x00001000:  01\n", stripANSI(out))
}

func TestRenderLimit(t *testing.T) {
	opts := hexOptions(t)
	opts.Limit = 2
	out := renderString(t, opts, []byte{1, 2, 3, 4})
	require.Equal(t, "0102\n", stripANSI(out))
}

func TestRenderShortChunkZeroPadded(t *testing.T) {
	enc, err := NewEncoding(64, false)
	require.Nil(t, err)
	opts := Options{Encoding: enc, RowLabel: LabelNone}

	// EOF in the middle of a 3-byte chunk fills the missing bytes with zero.
	out := renderString(t, opts, []byte{0x4d, 0x61})
	require.Equal(t, "jm40\n", stripANSI(out))

	// A byte limit splitting a chunk pads the same way.
	opts.Limit = 2
	out = renderString(t, opts, []byte{0x4d, 0x61, 0x6e})
	require.Equal(t, "jm40\n", stripANSI(out))
}

func TestRenderASCIIGutter(t *testing.T) {
	opts := hexOptions(t)
	opts.ChunksPerWord = 4
	opts.WordsPerLine = 1
	ascii, err := ParseASCIIPalette("mariana")
	require.Nil(t, err)
	opts.ASCII = ascii
	out := renderString(t, opts, []byte{'A', 'b', '1', 0x00})
	require.Equal(t, "41623100  |Ab1·|\n", stripANSI(out))
}

func TestRenderASCIIGutterPadsShortLines(t *testing.T) {
	opts := hexOptions(t)
	opts.ChunksPerWord = 2
	opts.WordsPerLine = 2
	ascii, err := ParseASCIIPalette("monokai")
	require.Nil(t, err)
	opts.ASCII = ascii
	out := renderString(t, opts, []byte{'H', 'i', '!'})
	// A full line is 9 glyph columns (two 4-glyph words plus a separator);
	// the short final line pads before the gutter.
	require.Equal(t, "4869 21    |Hi!|\n", stripANSI(out))
}

func TestRenderLittleEndian(t *testing.T) {
	enc, err := NewEncoding(64, false)
	require.Nil(t, err)
	opts := Options{Encoding: enc, RowLabel: LabelNone}
	big := renderString(t, opts, []byte{1, 2, 3})
	opts.LittleEndian = true
	little := renderString(t, opts, []byte{1, 2, 3})
	require.NotEqual(t, stripANSI(big), stripANSI(little))

	hexEnc, err := NewEncoding(16, false)
	require.Nil(t, err)
	// Single-byte chunks are unaffected by endianness.
	opts = Options{Encoding: hexEnc, RowLabel: LabelNone, LittleEndian: true}
	out := renderString(t, opts, []byte{0x12, 0x34})
	require.Equal(t, "1234\n", stripANSI(out))
}

func TestRenderWithProgram(t *testing.T) {
	program, err := compiler.CompileString(">>>7")
	require.Nil(t, err)
	opts := hexOptions(t)
	opts.Program = program
	out := renderString(t, opts, []byte{0x00, 0xff})
	require.Equal(t, "00ff\n", stripANSI(out))
}

func TestRenderProgramFailureIsFatal(t *testing.T) {
	program, err := compiler.CompileString("x /")
	require.Nil(t, err)
	opts := hexOptions(t)
	opts.Program = program
	r, err := New(opts)
	require.Nil(t, err)
	var out bytes.Buffer
	err = r.Render(bytes.NewReader([]byte{2, 0}), &out)
	require.NotNil(t, err)
	require.ErrorIs(t, err, errz.ErrDivisionByZero)
}

func TestRenderTruecolorEscapes(t *testing.T) {
	g, err := gradient.Build([]gradient.Color{{R: 0, G: 0, B: 0}, {R: 255, G: 255, B: 255}})
	require.Nil(t, err)

	opts := hexOptions(t)
	opts.Gradient = g
	opts.Truecolor = true
	out := renderString(t, opts, []byte{0xff})
	require.Contains(t, out, "\x1b[38;2;255;255;255m")

	opts.Truecolor = false
	out = renderString(t, opts, []byte{0xff})
	require.Contains(t, out, "\x1b[38;5;231m")
	require.NotContains(t, out, "38;2;")
}

func TestRenderColorChangeDeduplication(t *testing.T) {
	opts := hexOptions(t)
	opts.Truecolor = true
	out := renderString(t, opts, []byte{0x41, 0x41, 0x41})
	// One escape for the run of identical bytes, plus the resets around
	// the line.
	require.Equal(t, 1, strings.Count(out, "\x1b[38;2;"))
}

func TestRenderEmptyInput(t *testing.T) {
	out := renderString(t, hexOptions(t), nil)
	require.Equal(t, "", stripANSI(out))
}

func TestRenderBinary(t *testing.T) {
	enc, err := NewEncoding(2, false)
	require.Nil(t, err)
	opts := Options{Encoding: enc, RowLabel: LabelNone, WordsPerLine: 2, ChunksPerWord: 1}
	out := renderString(t, opts, []byte{0xa5, 0x01})
	require.Equal(t, "10100101 00000001\n", stripANSI(out))
}

func TestParseRowLabelStyle(t *testing.T) {
	for spec, want := range map[string]RowLabelStyle{
		"none":  LabelNone,
		"hide":  LabelNone,
		"byte":  LabelByte,
		"Bytes": LabelByte,
		"word":  LabelWord,
		"lines": LabelLine,
	} {
		got, err := ParseRowLabelStyle(spec)
		require.Nil(t, err, "spec: %q", spec)
		require.Equal(t, want, got, "spec: %q", spec)
	}
	_, err := ParseRowLabelStyle("sideways")
	require.NotNil(t, err)
}

func TestParseASCIIPalette(t *testing.T) {
	p, err := ParseASCIIPalette("mariana")
	require.Nil(t, err)
	require.NotNil(t, p)
	require.Equal(t, gradient.Color{R: 197, G: 148, B: 197}, p.Upper)
	require.Equal(t, gradient.Color{R: 112, G: 128, B: 144}, p.Unprintable)

	p, err = ParseASCIIPalette("none")
	require.Nil(t, err)
	require.Nil(t, p)

	p, err = ParseASCIIPalette("red,green,blue,black,white")
	require.Nil(t, err)
	require.Equal(t, gradient.Color{R: 255, G: 0, B: 0}, p.Upper)
	require.Equal(t, gradient.Color{R: 255, G: 255, B: 255}, p.Unprintable)

	_, err = ParseASCIIPalette("red,green")
	require.NotNil(t, err)

	_, err = ParseASCIIPalette("red,green,blue,black,nope")
	require.NotNil(t, err)
}
