// Package color resolves xcolor expressions as they appear in TikZ styles,
// e.g. red, red!40, red!40!blue, into RGB.
package color

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"
)

type RGB struct {
	Red   uint8 `json:"red"`
	Green uint8 `json:"green"`
	Blue  uint8 `json:"blue"`
}

func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.Red, c.Green, c.Blue)
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.Red) / 255,
		G: float64(c.Green) / 255,
		B: float64(c.Blue) / 255,
	}
}

func fromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{Red: r, Green: g, Blue: b}
}

var (
	White = RGB{255, 255, 255}
	Black = RGB{0, 0, 0}
)

// xcolor base and dvipsnames-free names. These differ from CSS for a few
// entries (green is full intensity in xcolor), so they take precedence.
var xcolorNames = map[string]RGB{
	"red":       {255, 0, 0},
	"green":     {0, 255, 0},
	"blue":      {0, 0, 255},
	"cyan":      {0, 255, 255},
	"magenta":   {255, 0, 255},
	"yellow":    {255, 255, 0},
	"black":     {0, 0, 0},
	"white":     {255, 255, 255},
	"gray":      {128, 128, 128},
	"darkgray":  {64, 64, 64},
	"lightgray": {191, 191, 191},
	"brown":     {191, 128, 64},
	"lime":      {191, 255, 0},
	"olive":     {128, 128, 0},
	"orange":    {255, 128, 0},
	"pink":      {255, 191, 191},
	"purple":    {191, 0, 64},
	"teal":      {0, 128, 128},
	"violet":    {128, 0, 128},
}

// Name2RGB returns the RGB of a named color, or the zero RGB and false.
func Name2RGB(name string) (RGB, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if c, ok := xcolorNames[name]; ok {
		return c, true
	}
	return RGB{}, false
}

// Parse resolves an xcolor mix expression. Each !pct!color step mixes pct
// percent of the color so far with the next color; a trailing !pct mixes with
// white. Names unknown to xcolor fall back to CSS syntax (#rrggbb, rgb(...)).
func Parse(expr string) (RGB, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return RGB{}, fmt.Errorf("empty color")
	}
	parts := strings.Split(expr, "!")
	cur, err := parseBase(parts[0])
	if err != nil {
		return RGB{}, err
	}
	for i := 1; i < len(parts); i += 2 {
		pct, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil || pct < 0 || pct > 100 {
			return RGB{}, fmt.Errorf("invalid mix percentage %q in %q", parts[i], expr)
		}
		other := White
		if i+1 < len(parts) {
			other, err = parseBase(parts[i+1])
			if err != nil {
				return RGB{}, err
			}
		}
		cur = Mix(cur, other, pct/100)
	}
	return cur, nil
}

// Mix returns t of a and 1-t of b, linearly in RGB as xcolor does.
func Mix(a, b RGB, t float64) RGB {
	return fromColorful(b.colorful().BlendRgb(a.colorful(), t))
}

func parseBase(s string) (RGB, error) {
	if c, ok := Name2RGB(s); ok {
		return c, nil
	}
	c, err := csscolorparser.Parse(strings.TrimSpace(s))
	if err != nil {
		return RGB{}, fmt.Errorf("unknown color %q", s)
	}
	return fromColorful(colorful.Color{R: c.R, G: c.G, B: c.B}), nil
}

// Luminance is the perceived brightness of c in [0, 1].
func Luminance(c RGB) float64 {
	return (0.299*float64(c.Red) + 0.587*float64(c.Green) + 0.114*float64(c.Blue)) / 255
}

// Darken lowers c's HSL lightness by 10%, used for selection outlines.
func Darken(c RGB) RGB {
	h, s, l := c.colorful().Hsl()
	return fromColorful(colorful.Hsl(h, s, l-.1))
}
