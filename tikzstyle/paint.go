package tikzstyle

import (
	"fmt"
	"strconv"
	"strings"

	"oss.terrastruct.com/tikzed/lib/color"
)

// DefaultLineWidth is TikZ's default line width in pt.
const DefaultLineWidth = 0.4

// Paint is what a renderer needs to draw an element with a style.
type Paint struct {
	HasFill   bool      `json:"hasFill"`
	Fill      color.RGB `json:"fill"`
	HasStroke bool      `json:"hasStroke"`
	Stroke    color.RGB `json:"stroke"`
	LineWidth float64   `json:"lineWidth"`
	Shape     string    `json:"shape"`
	Dash      string    `json:"dash,omitempty"`
	ArrowHead bool      `json:"arrowHead,omitempty"`
	ArrowTail bool      `json:"arrowTail,omitempty"`
}

// DefaultPaint draws with a thin black stroke and no fill.
func DefaultPaint() Paint {
	return Paint{
		HasStroke: true,
		Stroke:    color.Black,
		LineWidth: DefaultLineWidth,
		Shape:     "rectangle",
	}
}

var lineWidthKeywords = map[string]float64{
	"ultra thin":  0.1,
	"very thin":   0.2,
	"thin":        0.4,
	"semithick":   0.6,
	"thick":       0.8,
	"very thick":  1.2,
	"ultra thick": 1.6,
}

// Paint resolves the named style. Unknown names and None give DefaultPaint.
func (r *Registry) Paint(name string) (Paint, error) {
	s, ok := r.Get(name)
	if !ok {
		return DefaultPaint(), nil
	}
	return s.Paint()
}

func (s Style) Paint() (Paint, error) {
	p := DefaultPaint()
	for _, prop := range s.Props {
		if w, ok := lineWidthKeywords[prop.Key]; ok && prop.Value == "" {
			p.LineWidth = w
			continue
		}
		switch prop.Key {
		case "fill":
			c, has, err := parseColorProp(prop.Value)
			if err != nil {
				return Paint{}, fmt.Errorf("style %q: fill: %w", s.Name, err)
			}
			p.HasFill, p.Fill = has, c
		case "draw":
			c, has, err := parseColorProp(prop.Value)
			if err != nil {
				return Paint{}, fmt.Errorf("style %q: draw: %w", s.Name, err)
			}
			p.HasStroke, p.Stroke = has, c
		case "line width":
			w, err := parseLength(prop.Value)
			if err != nil {
				return Paint{}, fmt.Errorf("style %q: line width: %w", s.Name, err)
			}
			p.LineWidth = w
		case "shape":
			p.Shape = prop.Value
		case "dashed", "dotted", "densely dashed", "loosely dashed", "densely dotted", "loosely dotted":
			p.Dash = prop.Key
		case "solid":
			p.Dash = ""
		case "->":
			p.ArrowHead = true
		case "<-":
			p.ArrowTail = true
		case "<->":
			p.ArrowHead, p.ArrowTail = true, true
		}
	}
	return p, nil
}

func parseColorProp(v string) (color.RGB, bool, error) {
	if v == "" || v == "none" {
		return color.RGB{}, false, nil
	}
	c, err := color.Parse(v)
	if err != nil {
		return color.RGB{}, false, err
	}
	return c, true, nil
}

// parseLength accepts pt (the default unit), mm and cm.
func parseLength(v string) (float64, error) {
	v = strings.TrimSpace(v)
	scale := 1.0
	switch {
	case strings.HasSuffix(v, "pt"):
		v = strings.TrimSuffix(v, "pt")
	case strings.HasSuffix(v, "mm"):
		v = strings.TrimSuffix(v, "mm")
		scale = 72.27 / 25.4
	case strings.HasSuffix(v, "cm"):
		v = strings.TrimSuffix(v, "cm")
		scale = 72.27 / 2.54
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid length %q", v)
	}
	return f * scale, nil
}

// LabelColor is the text color that stays readable on the fill.
func (p Paint) LabelColor() color.RGB {
	if p.HasFill && color.Luminance(p.Fill) < 0.5 {
		return color.White
	}
	return color.Black
}

// Selected is p as drawn while selected: a darker, always visible outline.
func (p Paint) Selected() Paint {
	if !p.HasStroke {
		p.HasStroke = true
		p.Stroke = color.Black
		if p.HasFill {
			p.Stroke = p.Fill
		}
	}
	p.Stroke = color.Darken(p.Stroke)
	return p
}
