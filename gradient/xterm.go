package gradient

// xterm256 holds the 240 non-system colors of the xterm-256color palette:
// the 6x6x6 color cube (indices 16-231) followed by the 24-step grayscale
// ramp (indices 232-255). The 16 system colors are skipped because their
// actual values vary between terminals.
var xterm256 = buildXterm256()

func buildXterm256() [240]Color {
	var palette [240]Color
	levels := [6]uint8{0, 95, 135, 175, 215, 255}
	i := 0
	for _, r := range levels {
		for _, g := range levels {
			for _, b := range levels {
				palette[i] = Color{R: r, G: g, B: b}
				i++
			}
		}
	}
	for step := 0; step < 24; step++ {
		v := uint8(8 + 10*step)
		palette[i] = Color{R: v, G: v, B: v}
		i++
	}
	return palette
}

// Quantize returns the xterm-256 palette index (16 through 255) of the
// nearest palette entry by squared RGB distance.
func Quantize(c Color) int {
	best := 0
	bestScore := int64(1) << 62
	for i, p := range xterm256 {
		dr := int64(c.R) - int64(p.R)
		dg := int64(c.G) - int64(p.G)
		db := int64(c.B) - int64(p.B)
		score := dr*dr + dg*dg + db*db
		if score < bestScore {
			bestScore = score
			best = i
		}
	}
	return best + 16
}
