package render

import (
	"fmt"
	"strings"

	"github.com/cloudcmds/eks/gradient"
)

// ASCIIPalette holds the five colors used by the ASCII gutter, one per
// character class.
type ASCIIPalette struct {
	Upper       gradient.Color
	Lower       gradient.Color
	Digit       gradient.Color
	Punct       gradient.Color
	Unprintable gradient.Color
}

// Gutter themes, each five comma-separated color specs in class order.
var asciiThemes = map[string]string{
	"mariana": "#c594c5,#5fb3b3,#fab763,#ee6a6f,slategray",
	"monokai": "#ae81ff,#66d9ef,#a6e22e,#f92672,slategray",
}

// ParseASCIIPalette parses an ASCII gutter specification: "none" or "false"
// to disable the gutter (nil palette), a theme name, or five comma-separated
// color specs for uppercase, lowercase, digits, punctuation, and unprintable
// characters.
func ParseASCIIPalette(spec string) (*ASCIIPalette, error) {
	s := strings.ToLower(strings.TrimSpace(spec))
	switch s {
	case "none", "false":
		return nil, nil
	}
	if theme, ok := asciiThemes[s]; ok {
		s = theme
	}
	colors, err := gradient.ParseList(s)
	if err != nil {
		return nil, err
	}
	if len(colors) != 5 {
		return nil, fmt.Errorf("expected 5 colors, got %d", len(colors))
	}
	return &ASCIIPalette{
		Upper:       colors[0],
		Lower:       colors[1],
		Digit:       colors[2],
		Punct:       colors[3],
		Unprintable: colors[4],
	}, nil
}

// Character classes, indexed into the gutter color table.
const (
	classUnprintable = iota
	classUpper
	classLower
	classDigit
	classPunct
)

func classify(b byte) int {
	switch {
	case b >= 'A' && b <= 'Z':
		return classUpper
	case b >= 'a' && b <= 'z':
		return classLower
	case b >= '0' && b <= '9':
		return classDigit
	case b > 0x20 && b < 0x7f:
		return classPunct
	default:
		return classUnprintable
	}
}

// colors returns the palette in character-class order.
func (p *ASCIIPalette) colors() [5]gradient.Color {
	return [5]gradient.Color{
		classUnprintable: p.Unprintable,
		classUpper:       p.Upper,
		classLower:       p.Lower,
		classDigit:       p.Digit,
		classPunct:       p.Punct,
	}
}
