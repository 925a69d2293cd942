package core

import "math/rand/v2"

// Color is a CSS hex color handed out to a display name.
type Color string

// DefaultPalette is the fixed set of colors display names are drawn from.
var DefaultPalette = []Color{
	"#e53935", // red
	"#d81b60", // pink
	"#8e24aa", // purple
	"#5e35b1", // deep purple
	"#3949ab", // indigo
	"#1e88e5", // blue
	"#039be5", // light blue
	"#00acc1", // cyan
	"#00897b", // teal
	"#43a047", // green
	"#7cb342", // light green
	"#c0ca33", // lime
	"#fdd835", // yellow
	"#ffb300", // amber
	"#fb8c00", // orange
	"#f4511e", // deep orange
	"#6d4c41", // brown
	"#757575", // grey
	"#546e7a", // blue grey
}

// Picker returns an index in [0, n).
type Picker func(n int) int

// ColorBook remembers the color assigned to every display name it has seen.
// A name keeps its color for the lifetime of the book, across all rooms.
// It is not safe for concurrent use; the hub goroutine owns it.
type ColorBook struct {
	palette []Color
	pick    Picker
	colors  map[string]Color
}

// NewColorBook builds a book over palette. A nil picker draws uniformly at random.
func NewColorBook(palette []Color, pick Picker) *ColorBook {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	if pick == nil {
		pick = rand.IntN
	}
	return &ColorBook{
		palette: append([]Color(nil), palette...),
		pick:    pick,
		colors:  make(map[string]Color),
	}
}

// ColorOf returns the color of name, assigning one on first sight.
func (b *ColorBook) ColorOf(name string) Color {
	if c, ok := b.colors[name]; ok {
		return c
	}
	c := b.palette[b.pick(len(b.palette))]
	b.colors[name] = c
	return c
}
