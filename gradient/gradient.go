// Package gradient provides colors, color gradients, and the color selection
// used to highlight bytes.
//
// A Gradient is an ordered list of color stops supporting continuous linear
// interpolation. Interpolated channels round half away from zero, so the
// midpoint of black and white is 128.
package gradient

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/cloudcmds/eks/errz"
)

// Color is an RGB triple of 8-bit channels.
type Color struct {
	R, G, B uint8
}

// Hex returns the "#rrggbb" form of the color.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Stop is one color stop of a gradient.
type Stop struct {
	Position float64 // In [0, 1]
	Color    Color
}

// Gradient is an immutable ordered sequence of color stops. Gradients are
// built once at startup and may be shared by reference across concurrent
// readers.
type Gradient struct {
	stops []Stop
}

// New creates a Gradient from explicit stops. At least two stops are
// required; stops must be sorted ascending by position, position-unique,
// and within [0, 1].
func New(stops []Stop) (*Gradient, error) {
	if len(stops) < 2 {
		return nil, errz.Color(nil, "gradient requires at least two stops")
	}
	for i, s := range stops {
		if s.Position < 0 || s.Position > 1 {
			return nil, errz.Color(nil,
				"gradient stop %d is out of range: %f", i, s.Position)
		}
		if i > 0 && s.Position <= stops[i-1].Position {
			return nil, errz.Color(nil,
				"gradient stops must be sorted and unique at position %d", i)
		}
	}
	owned := make([]Stop, len(stops))
	copy(owned, stops)
	return &Gradient{stops: owned}, nil
}

// Build creates a Gradient from a list of colors spaced evenly across [0, 1].
// A single color yields a two-stop constant gradient.
func Build(colors []Color) (*Gradient, error) {
	switch len(colors) {
	case 0:
		return nil, errz.Color(nil, "gradient requires at least one color")
	case 1:
		return &Gradient{stops: []Stop{
			{Position: 0, Color: colors[0]},
			{Position: 1, Color: colors[0]},
		}}, nil
	}
	stops := make([]Stop, len(colors))
	for i, c := range colors {
		stops[i] = Stop{
			Position: float64(i) / float64(len(colors)-1),
			Color:    c,
		}
	}
	return &Gradient{stops: stops}, nil
}

// Stops returns the gradient's stops. The returned slice is shared and must
// be treated as read-only.
func (g *Gradient) Stops() []Stop {
	return g.stops
}

// At returns the color at a fractional position. Positions outside [0, 1]
// are clamped, never an error. Querying a stop's exact position returns the
// stop color exactly.
func (g *Gradient) At(position float64) Color {
	if position <= g.stops[0].Position || math.IsNaN(position) {
		return g.stops[0].Color
	}
	last := g.stops[len(g.stops)-1]
	if position >= last.Position {
		return last.Color
	}
	// First stop at or beyond the position; i >= 1 because position is
	// greater than the first stop here.
	i := sort.Search(len(g.stops), func(i int) bool {
		return g.stops[i].Position >= position
	})
	s0, s1 := g.stops[i-1], g.stops[i]
	if s1.Position == position {
		return s1.Color
	}
	t := (position - s0.Position) / (s1.Position - s0.Position)
	return Color{
		R: lerpChannel(s0.Color.R, s1.Color.R, t),
		G: lerpChannel(s0.Color.G, s1.Color.G, t),
		B: lerpChannel(s0.Color.B, s1.Color.B, t),
	}
}

// Pick maps an evaluator output value onto the gradient by normalizing it
// against the largest value representable in the given bit width.
func (g *Gradient) Pick(value uint64, width uint) Color {
	if width == 0 || width > 64 {
		width = 64
	}
	var max float64
	if width == 64 {
		max = float64(math.MaxUint64)
	} else {
		max = float64(uint64(1)<<width - 1)
	}
	return g.At(float64(value) / max)
}

// lerpChannel interpolates one 8-bit channel, rounding half away from zero.
func lerpChannel(c0, c1 uint8, t float64) uint8 {
	v := math.Round(float64(c0) + (float64(c1)-float64(c0))*t)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Parse parses one color specification: a named color from the built-in
// table, or a "#rrggbb", "#rgb", or "rrggbb" hex literal.
func Parse(spec string) (Color, error) {
	name := strings.ToLower(strings.TrimSpace(spec))
	if c, ok := Named(name); ok {
		return c, nil
	}
	if c, ok := parseHex(name); ok {
		return c, nil
	}
	if strings.HasPrefix(name, "#") {
		return Color{}, errz.Color(errz.ErrBadColorSpec,
			"malformed color literal %q", spec)
	}
	return Color{}, errz.Color(errz.ErrUnknownColor, "unknown color name %q", spec)
}

// ParseList parses a comma-separated list of color specifications,
// collecting every bad entry into one error.
func ParseList(spec string) ([]Color, error) {
	var colors []Color
	var errs error
	for _, part := range strings.Split(spec, ",") {
		c, err := Parse(part)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		colors = append(colors, c)
	}
	if errs != nil {
		return nil, errs
	}
	return colors, nil
}

func parseHex(s string) (Color, bool) {
	s = strings.TrimPrefix(s, "#")
	var r, g, b uint8
	switch len(s) {
	case 3:
		for i, ch := range []byte(s) {
			v, ok := hexDigit(ch)
			if !ok {
				return Color{}, false
			}
			switch i {
			case 0:
				r = v*16 + v
			case 1:
				g = v*16 + v
			case 2:
				b = v*16 + v
			}
		}
		return Color{R: r, G: g, B: b}, true
	case 6:
		channels := [3]uint8{}
		for i := 0; i < 3; i++ {
			hi, ok1 := hexDigit(s[i*2])
			lo, ok2 := hexDigit(s[i*2+1])
			if !ok1 || !ok2 {
				return Color{}, false
			}
			channels[i] = hi*16 + lo
		}
		return Color{R: channels[0], G: channels[1], B: channels[2]}, true
	}
	return Color{}, false
}

func hexDigit(ch byte) (uint8, bool) {
	switch {
	case ch >= '0' && ch <= '9':
		return ch - '0', true
	case ch >= 'a' && ch <= 'f':
		return ch - 'a' + 10, true
	case ch >= 'A' && ch <= 'F':
		return ch - 'A' + 10, true
	}
	return 0, false
}
