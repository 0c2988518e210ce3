package gradient

import (
	"sort"
	"strings"
)

// presets are built-in multi-stop palettes usable anywhere a color list is.
// The perceptual palettes (viridis, inferno, turbo) are coarse samplings of
// the matplotlib/d3 originals; the rest are hand-picked.
var presets = map[string][]Color{
	"fire": {
		{255, 0, 0},     // red
		{255, 69, 0},    // orangered
		{255, 165, 0},   // orange
		{255, 215, 0},   // gold
		{255, 255, 0},   // yellow
		{255, 255, 224}, // lightyellow
	},
	"grayscale": {
		{0, 0, 0},
		{255, 255, 255},
	},
	"ice": {
		{25, 25, 112},   // midnightblue
		{70, 130, 180},  // steelblue
		{135, 206, 235}, // skyblue
		{224, 255, 255}, // lightcyan
	},
	"rainbow": {
		{255, 0, 0},
		{255, 165, 0},
		{255, 255, 0},
		{0, 128, 0},
		{0, 0, 255},
		{75, 0, 130},
		{238, 130, 238},
	},
	"viridis": {
		{68, 1, 84},
		{59, 82, 139},
		{33, 145, 140},
		{94, 201, 98},
		{253, 231, 37},
	},
	"inferno": {
		{0, 0, 4},
		{87, 16, 110},
		{188, 55, 84},
		{249, 142, 9},
		{252, 255, 164},
	},
	"turbo": {
		{48, 18, 59},
		{70, 134, 251},
		{27, 229, 181},
		{164, 252, 60},
		{228, 150, 27},
		{122, 4, 3},
	},
}

// Preset returns the color list for a built-in palette name.
func Preset(name string) ([]Color, bool) {
	colors, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	return colors, ok
}

// Presets returns the sorted list of built-in palette names.
func Presets() []string {
	out := make([]string, 0, len(presets))
	for name := range presets {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Default is the gradient used when none is configured.
func Default() *Gradient {
	g, err := Build(presets["fire"])
	if err != nil {
		panic(err)
	}
	return g
}
