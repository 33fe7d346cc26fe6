package sprig

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ToGray darkens c toward gray by value in [0, 1], where 1 leaves the color
// untouched. White is scaled linearly; any other color has its HSL saturation
// and lightness multiplied by value. A negative alpha keeps c's alpha.
func (c Color) ToGray(value, alpha float64) Color {
	if alpha < 0 {
		alpha = c.A
	}
	if math.Abs(value-1) < 1e-6 {
		return c.WithAlpha(alpha)
	}
	if c.R == 1 && c.G == 1 && c.B == 1 {
		return Color{R: value, G: value, B: value, A: alpha}
	}
	h, s, l := colorful.Color{R: c.R, G: c.G, B: c.B}.Hsl()
	g := colorful.Hsl(h, s*value, l*value).Clamped()
	return Color{R: g.R, G: g.G, B: g.B, A: alpha}
}

// Gray returns an opaque-RGB gray of the given level with alpha a.
func Gray(level, a float64) Color {
	return Color{R: level, G: level, B: level, A: a}
}
