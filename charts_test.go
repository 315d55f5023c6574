package charts

import (
	"errors"
	"math"
	"testing"
)

func colorNear(a, b Color) bool {
	const eps = 1e-6
	return math.Abs(a.R-b.R) < eps && math.Abs(a.G-b.G) < eps &&
		math.Abs(a.B-b.B) < eps && math.Abs(a.A-b.A) < eps
}

// --- Rect.Contains ---

func TestRectContains(t *testing.T) {
	r := Rect{10, 20, 100, 50}
	tests := []struct {
		name   string
		x, y   float64
		expect bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"left edge", 10, 40, true},
		{"right edge", 110, 40, true},
		{"outside left", 9, 40, false},
		{"outside right", 111, 40, false},
		{"outside above", 50, 19, false},
		{"outside below", 50, 71, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Contains(tt.x, tt.y)
			if got != tt.expect {
				t.Errorf("Rect%v.Contains(%v, %v) = %v, want %v", r, tt.x, tt.y, got, tt.expect)
			}
		})
	}
}

// --- Rect.Intersects ---

func TestRectIntersects(t *testing.T) {
	base := Rect{10, 10, 100, 100}
	tests := []struct {
		name   string
		other  Rect
		expect bool
	}{
		{"overlapping", Rect{50, 50, 100, 100}, true},
		{"fully contained", Rect{20, 20, 10, 10}, true},
		{"containing", Rect{0, 0, 200, 200}, true},
		{"adjacent right", Rect{110, 10, 50, 50}, true},
		{"adjacent top", Rect{10, -50, 50, 60}, true},
		{"disjoint right", Rect{111, 10, 50, 50}, false},
		{"disjoint below", Rect{10, 111, 50, 50}, false},
		{"zero-size at corner", Rect{110, 110, 0, 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := base.Intersects(tt.other)
			if got != tt.expect {
				t.Errorf("Rect%v.Intersects(Rect%v) = %v, want %v", base, tt.other, got, tt.expect)
			}
		})
	}
}

func TestRectIntersect(t *testing.T) {
	a := Rect{0, 0, 50, 40}
	if got, want := a.Intersect(Rect{30, 10, 50, 50}), (Rect{30, 10, 20, 30}); got != want {
		t.Errorf("Intersect = %v, want %v", got, want)
	}
	got := a.Intersect(Rect{60, 0, 10, 10})
	if got.Width != 0 || got.Height != 0 {
		t.Errorf("disjoint Intersect = %v, want zero size", got)
	}
}

func TestRectHelpers(t *testing.T) {
	r := Rect{10, 20, 30, 40}
	assertNear(t, "Right", r.Right(), 40)
	assertNear(t, "Bottom", r.Bottom(), 60)
	if c := r.Center(); c != (Vec2{25, 40}) {
		t.Errorf("Center() = %v, want {25 40}", c)
	}
	e := r.ExpandY(10)
	if e != (Rect{10, 15, 30, 50}) {
		t.Errorf("ExpandY(10) = %v, want {10 15 30 50}", e)
	}
}

// --- Color ---

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#ff8000", Color{1, 128.0 / 255, 0, 1}},
		{"#ff000080", Color{1, 0, 0, 128.0 / 255}},
		{"#000000", ColorBlack},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tt.in, err)
			continue
		}
		if !colorNear(got, tt.want) {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseColorInvalid(t *testing.T) {
	for _, in := range []string{"", "red", "#12", "#gggggg", "#ff0000zz"} {
		if _, err := ParseColor(in); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("ParseColor(%q) error = %v, want ErrInvalidColor", in, err)
		}
	}
}

func TestColorHexRoundTrip(t *testing.T) {
	for _, in := range []string{"#336699", "#10203040"} {
		c, err := ParseColor(in)
		if err != nil {
			t.Fatalf("ParseColor(%q): %v", in, err)
		}
		if got := c.Hex(); got != in {
			t.Errorf("Hex() = %q, want %q", got, in)
		}
	}
}

func TestColorScaleBrightness(t *testing.T) {
	c := RGB255(200, 100, 50).WithAlpha(0.5)
	d := c.ScaleBrightness(0.5)

	h0, s0, v0 := c.HSB()
	h1, s1, v1 := d.HSB()
	if math.Abs(h1-h0) > 1e-6 || math.Abs(s1-s0) > 1e-6 {
		t.Errorf("hue/saturation = %v/%v, want %v/%v", h1, s1, h0, s0)
	}
	if math.Abs(v1-v0/2) > 1e-6 {
		t.Errorf("brightness = %v, want %v", v1, v0/2)
	}
	assertNear(t, "alpha", d.A, 0.5)

	if w := ColorWhite.ScaleBrightness(3); !colorNear(w, ColorWhite) {
		t.Errorf("over-bright white = %v, want clamped white", w)
	}
}

func TestColorRGBAPremultiplied(t *testing.T) {
	r, g, b, a := Color{1, 0.5, 0, 0.5}.RGBA()
	// 8-bit premultiplied: 128, 64, 0, 128; widened by 0x101.
	if r != 128*0x101 || g != 64*0x101 || b != 0 || a != 128*0x101 {
		t.Errorf("RGBA() = %d %d %d %d", r, g, b, a)
	}
}

func TestRGB255(t *testing.T) {
	c := RGB255(255, 0, 51)
	if !colorNear(c, Color{1, 0, 0.2, 1}) {
		t.Errorf("RGB255 = %v", c)
	}
	if c.WithAlpha(0.25).A != 0.25 {
		t.Error("WithAlpha did not replace alpha")
	}
}
