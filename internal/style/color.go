package style

import (
	"fmt"
	"strconv"

	"braces.dev/errtrace"
	"github.com/lucasb-eyer/go-colorful"
)

// Color is a resolved RGB color with an optional alpha channel.
// The zero value is unset, which is distinct from any real color.
type Color struct {
	R, G, B uint8
	A       uint8

	set      bool
	hasAlpha bool
}

// RGB builds an opaque color from its components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, set: true}
}

// ParseColor parses a hex color literal in "#rgb", "#rrggbb",
// or "#rrggbbaa" form.
func ParseColor(s string) (Color, error) {
	if len(s) == 9 && s[0] == '#' {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, errtrace.Wrap(fmt.Errorf("parse color %q: %w", s, err))
		}
		c, err := ParseColor(s[:7])
		if err != nil {
			return Color{}, errtrace.Wrap(err)
		}
		c.A = uint8(a)
		c.hasAlpha = true
		return c, nil
	}

	cf, err := colorful.Hex(s)
	if err != nil {
		return Color{}, errtrace.Wrap(fmt.Errorf("parse color %q: %w", s, err))
	}
	r, g, b := cf.RGB255()
	return RGB(r, g, b), nil
}

// Set reports whether the color holds a real value.
func (c Color) Set() bool { return c.set }

// Hex formats the color as a lowercase hex literal,
// including the alpha channel only if one was given.
func (c Color) Hex() string {
	h := colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}.Hex()
	if c.hasAlpha {
		h += fmt.Sprintf("%02x", c.A)
	}
	return h
}

func (c Color) String() string {
	if !c.set {
		return "none"
	}
	return c.Hex()
}
