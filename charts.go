package charts

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when a Surface submits the color.
type Color struct {
	R, G, B, A float64
}

// Commonly used colors.
var (
	ColorWhite       = Color{1, 1, 1, 1}
	ColorBlack       = Color{0, 0, 0, 1}
	ColorTransparent = Color{}
)

// RGB255 builds an opaque Color from 8-bit channel values.
func RGB255(r, g, b uint8) Color {
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255, 1}
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// RGBA implements color.Color. The returned values are alpha-premultiplied.
func (c Color) RGBA() (r, g, b, a uint32) {
	p := c.toRGBA()
	return p.RGBA()
}

// toRGBA converts a Color to a premultiplied 8-bit color.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A)*255 + 0.5),
		G: uint8(clamp01(c.G*c.A)*255 + 0.5),
		B: uint8(clamp01(c.B*c.A)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

// HSB returns the hue (degrees), saturation and brightness of c.
func (c Color) HSB() (h, s, v float64) {
	return colorful.Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B)}.Hsv()
}

// ColorFromHSB builds a Color from hue (degrees), saturation, brightness and alpha.
func ColorFromHSB(h, s, v, a float64) Color {
	cf := colorful.Hsv(h, s, v)
	return Color{cf.R, cf.G, cf.B, a}
}

// ScaleBrightness converts c to hue/saturation/brightness, multiplies the
// brightness by f and converts back. Hue, saturation and alpha are kept.
func (c Color) ScaleBrightness(f float64) Color {
	h, s, v := c.HSB()
	return ColorFromHSB(h, s, clamp01(v*f), c.A)
}

// ErrInvalidColor is returned when a color string cannot be parsed.
var ErrInvalidColor = errors.New("charts: invalid color")

// ParseColor parses "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (Color, error) {
	if len(s) == 9 && s[0] == '#' {
		var a uint8
		if _, err := fmt.Sscanf(s[7:], "%02x", &a); err != nil {
			return Color{}, fmt.Errorf("%w %q: %w", ErrInvalidColor, s, err)
		}
		cf, err := colorful.Hex(s[:7])
		if err != nil {
			return Color{}, fmt.Errorf("%w %q: %w", ErrInvalidColor, s, err)
		}
		return Color{cf.R, cf.G, cf.B, float64(a) / 255}, nil
	}
	cf, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("%w %q: %w", ErrInvalidColor, s, err)
	}
	return Color{cf.R, cf.G, cf.B, 1}, nil
}

// Hex formats c as "#rrggbb", or "#rrggbbaa" when not opaque.
func (c Color) Hex() string {
	base := colorful.Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B)}.Hex()
	if c.A >= 1 {
		return base
	}
	return fmt.Sprintf("%s%02x", base, uint8(clamp01(c.A)*255+0.5))
}

// Vec2 is a 2D vector used for points, offsets and anchors.
type Vec2 struct {
	X, Y float64
}

// Size is a width/height pair.
type Size struct {
	Width, Height float64
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

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 { return Vec2{r.X + r.Width/2, r.Y + r.Height/2} }

// ExpandY grows the rectangle by d/2 above and below.
func (r Rect) ExpandY(d float64) Rect {
	r.Y -= d / 2
	r.Height += d
	return r
}

// Intersect returns the overlap of r and other. The result has zero size
// when they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	x0 := math.Max(r.X, other.X)
	y0 := math.Max(r.Y, other.Y)
	x1 := math.Min(r.Right(), other.Right())
	y1 := math.Min(r.Bottom(), other.Bottom())
	if x1 < x0 || y1 < y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

// TextAlign controls horizontal text alignment around the draw point.
type TextAlign uint8

const (
	TextAlignLeft   TextAlign = iota // text starts at the draw point (default)
	TextAlignCenter                  // text is centered on the draw point
	TextAlignRight                   // text ends at the draw point
)

// AxisDependency selects which y axis a data set is plotted against.
type AxisDependency uint8

const (
	AxisLeft  AxisDependency = iota // left y axis (default)
	AxisRight                       // right y axis
)

// XAxisLabelPosition places axis labels relative to the content rect.
type XAxisLabelPosition uint8

const (
	LabelPositionTop          XAxisLabelPosition = iota // outside, past the right content edge
	LabelPositionBottom                                 // outside, before the left content edge
	LabelPositionBothSided                              // on both outer edges
	LabelPositionTopInside                              // inside the right content edge
	LabelPositionBottomInside                           // inside the left content edge
)

// LimitLabelPosition places a limit line label at one of four corners.
type LimitLabelPosition uint8

const (
	LimitLabelRightTop    LimitLabelPosition = iota // above the line, right aligned
	LimitLabelRightBottom                           // below the line, right aligned
	LimitLabelLeftTop                               // above the line, left aligned
	LimitLabelLeftBottom                            // below the line, left aligned
)

// Rounding selects how a lookup resolves an x value between two entries.
type Rounding uint8

const (
	RoundClosest Rounding = iota // nearest entry
	RoundUp                      // first entry at or after x
	RoundDown                    // last entry at or before x
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func deg2rad(d float64) float64 { return d * math.Pi / 180 }
