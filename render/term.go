package render

import (
	"fmt"
	"io"

	"github.com/cloudcmds/eks/gradient"
)

// TermColor is a color that can be written to a terminal: a 24-bit RGB
// value, an xterm-256 palette index, or the reset sequence.
type TermColor struct {
	mode  termMode
	index int
	rgb   gradient.Color
}

type termMode int

const (
	termReset termMode = iota
	termIndex
	termRGB
)

// Reset is the TermColor that restores the default foreground.
var Reset = TermColor{mode: termReset}

// Indexed returns a TermColor for an xterm-256 palette index.
func Indexed(index int) TermColor {
	return TermColor{mode: termIndex, index: index}
}

// RGB returns a 24-bit truecolor TermColor.
func RGB(c gradient.Color) TermColor {
	return TermColor{mode: termRGB, rgb: c}
}

// Fg writes the escape sequence that sets the foreground to this color.
func (t TermColor) Fg(w io.Writer) error {
	var err error
	switch t.mode {
	case termIndex:
		_, err = fmt.Fprintf(w, "\x1b[38;5;%dm", t.index)
	case termRGB:
		_, err = fmt.Fprintf(w, "\x1b[38;2;%d;%d;%dm", t.rgb.R, t.rgb.G, t.rgb.B)
	default:
		_, err = io.WriteString(w, "\x1b[39m")
	}
	return err
}

// Bg writes the escape sequence that sets the background to this color.
func (t TermColor) Bg(w io.Writer) error {
	var err error
	switch t.mode {
	case termIndex:
		_, err = fmt.Fprintf(w, "\x1b[48;5;%dm", t.index)
	case termRGB:
		_, err = fmt.Fprintf(w, "\x1b[48;2;%d;%d;%dm", t.rgb.R, t.rgb.G, t.rgb.B)
	default:
		_, err = io.WriteString(w, "\x1b[49m")
	}
	return err
}
