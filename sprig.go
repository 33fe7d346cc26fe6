package sprig

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA converts to a premultiplied 8-bit color for Ebitengine.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Vec2 is a 2D vector used for positions, offsets, sizes, and scales
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// NodeType distinguishes what a Node contributes to a widget's visuals.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no visual output
	NodeTypeImage                     // color-bearing surface (sprite, panel, icon)
	NodeTypeText                      // label; tinted like an image
	NodeTypeGraphic                   // raw graphic; gray level replaces its RGB
)

// EventType identifies a kind of interaction event.
type EventType uint8

const (
	EventPointerDown   EventType = iota // fires when a pointer button is pressed
	EventPointerUp                      // fires when a pointer button is released
	EventClick                          // fires on press then release over the same node
	EventPointerEnter                   // fires when the pointer enters a node's bounds
	EventPointerLeave                   // fires when the pointer leaves a node's bounds
	EventButtonPress                    // a button entered its down state
	EventButtonRelease                  // a button's press cycle ended
	EventButtonClick                    // a button reported a click to its owner
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// ButtonState is the visual interaction state of a Button.
type ButtonState uint8

const (
	StateResting  ButtonState = iota // default, not hovered, not pressed
	StateHovered                     // desktop pointer inside, not pressed
	StateDown                        // pointer physically held on the button
	StateDisabled                    // interactable == false
)

// String returns the state name.
func (s ButtonState) String() string {
	switch s {
	case StateResting:
		return "resting"
	case StateHovered:
		return "hovered"
	case StateDown:
		return "down"
	case StateDisabled:
		return "disabled"
	}
	return "unknown"
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
