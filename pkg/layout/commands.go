// Package layout turns a metrics model into positioned draw commands.
//
// Coordinates are millimetres with the origin at the top-left corner of the
// page and y growing downwards. Renderers convert to their own units.
package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// RGB is a color with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// ParseHex parses "#rrggbb" (the leading '#' is optional).
func ParseHex(hex string) (RGB, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("invalid hex color %q", hex)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Hex returns the color as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Fixed colors used outside the palette.
var (
	// White is used for text on the header bands.
	White = RGB{255, 255, 255}
	// Black is the fallback text color.
	Black = RGB{0, 0, 0}
)

// Weight selects the font face of a Text command.
type Weight int

const (
	// Regular selects Helvetica.
	Regular Weight = iota
	// Bold selects Helvetica-Bold.
	Bold
)

// Command is one draw primitive. Commands are values; a page paints them in
// slice order so later commands overwrite earlier ones.
type Command interface {
	// Bounds returns the bounding box as top-left and bottom-right corners.
	Bounds() (x0, y0, x1, y1 float64)
	command()
}

// Rect is a filled rectangle.
type Rect struct {
	// X and Y locate the top-left corner.
	X, Y float64
	// W and H are the width and height in millimetres.
	W, H float64
	// Color fills the rectangle.
	Color RGB
}

// Text is a single line of text. Y is the baseline.
type Text struct {
	// X is the left edge and Y the baseline.
	X, Y float64
	// Content is drawn on one line; it is never wrapped here.
	Content string
	// Size is the font size in points.
	Size float64
	// Color is the fill color of the glyphs.
	Color RGB
	// Weight selects the font face.
	Weight Weight
}

// Line is a stroked segment.
type Line struct {
	// X1, Y1 and X2, Y2 are the end points.
	X1, Y1, X2, Y2 float64
	// Width is the stroke width in millimetres.
	Width float64
	// Color is the stroke color.
	Color RGB
}

func (Rect) command() {}
func (Text) command() {}
func (Line) command() {}

// Bounds returns the rectangle's own corners.
func (r Rect) Bounds() (float64, float64, float64, float64) {
	return r.X, r.Y, r.X + r.W, r.Y + r.H
}

// Bounds spans from one em above the baseline down to the baseline, and
// across the fixed-advance width of Content.
func (t Text) Bounds() (float64, float64, float64, float64) {
	return t.X, t.Y - PointsToMM(t.Size), t.X + EstimateWidth(t.Content, t.Size), t.Y
}

// Bounds covers both end points widened by half the stroke width vertically.
func (l Line) Bounds() (float64, float64, float64, float64) {
	half := l.Width / 2
	return min(l.X1, l.X2), min(l.Y1, l.Y2) - half, max(l.X1, l.X2), max(l.Y1, l.Y2) + half
}

// Page is an ordered list of commands for one page of the document.
type Page struct {
	// Index is the 1-based page number.
	Index int
	// Width and Height are the page size in millimetres.
	Width, Height float64
	// Commands are painted in order.
	Commands []Command
}

// Texts returns the content of every text command on the page in paint order.
func (p Page) Texts() []string {
	var out []string
	for _, c := range p.Commands {
		if t, ok := c.(Text); ok {
			out = append(out, t.Content)
		}
	}
	return out
}

// PointsToMM converts typographic points to millimetres.
func PointsToMM(pt float64) float64 {
	return pt * 25.4 / 72
}

// EstimateWidth returns the fixed-advance width of s in millimetres:
// every rune is assumed to be half the font size wide.
func EstimateWidth(s string, size float64) float64 {
	return PointsToMM(float64(len([]rune(s))) * size * 0.5)
}
