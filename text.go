package charts

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Font is the interface for text measurement. Surfaces that can render a
// concrete Font type do so; others fall back to DefaultFont.
type Font interface {
	// MeasureString returns the size of s. Lines are separated by '\n'.
	MeasureString(s string) (width, height float64)
	LineHeight() float64
	// Size is the nominal point size.
	Size() float64
	// Resized returns a copy of the font delta points larger (or smaller
	// when negative). Fonts that cannot scale return themselves.
	Resized(delta float64) Font
}

// --- FaceFont ---

// FaceFont wraps a golang.org/x/image font.Face. It backs the headless
// surfaces and can be drawn by the ebiten surface as well.
type FaceFont struct {
	face font.Face
	otf  *opentype.Font // nil for fixed faces
	size float64
	lh   float64
	asc  float64
}

var defaultFont = NewFaceFont(basicfont.Face7x13, 13)

// DefaultFont returns the built-in 7x13 bitmap font.
func DefaultFont() *FaceFont { return defaultFont }

// NewFaceFont wraps a fixed-size face. size is reported by Size.
func NewFaceFont(face font.Face, size float64) *FaceFont {
	m := face.Metrics()
	return &FaceFont{
		face: face,
		size: size,
		lh:   fixedToFloat(m.Height),
		asc:  fixedToFloat(m.Ascent),
	}
}

// LoadFaceFont parses TrueType/OpenType data and builds a face at size points.
func LoadFaceFont(ttfData []byte, size float64) (*FaceFont, error) {
	f, err := opentype.Parse(ttfData)
	if err != nil {
		return nil, fmt.Errorf("charts: failed to parse font data: %w", err)
	}
	return newOpenTypeFont(f, size)
}

func newOpenTypeFont(f *opentype.Font, size float64) (*FaceFont, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("charts: failed to create face at %.1fpt: %w", size, err)
	}
	ff := NewFaceFont(face, size)
	ff.otf = f
	return ff, nil
}

// Face returns the underlying x/image face.
func (f *FaceFont) Face() font.Face { return f.face }

// Ascent is the distance from the top of a line to its baseline.
func (f *FaceFont) Ascent() float64 { return f.asc }

func (f *FaceFont) Size() float64 { return f.size }

func (f *FaceFont) LineHeight() float64 { return f.lh }

func (f *FaceFont) MeasureString(s string) (width, height float64) {
	n := 0
	for line := range strings.SplitSeq(s, "\n") {
		w := fixedToFloat(font.MeasureString(f.face, line))
		width = math.Max(width, w)
		n++
	}
	return width, float64(n) * f.lh
}

func (f *FaceFont) Resized(delta float64) Font {
	if f.otf == nil || f.size+delta <= 0 {
		return f
	}
	r, err := newOpenTypeFont(f.otf, f.size+delta)
	if err != nil {
		return f
	}
	return r
}

// --- TTFFont ---

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering.
type TTFFont struct {
	face   *text.GoTextFace
	source *text.GoTextFaceSource
	size   float64
	lh     float64 // cached line height
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("charts: failed to parse TTF data: %w", err)
	}
	return newTTFFont(source, size), nil
}

func newTTFFont(source *text.GoTextFaceSource, size float64) *TTFFont {
	face := &text.GoTextFace{
		Source: source,
		Size:   size,
	}
	m := face.Metrics()
	return &TTFFont{
		face:   face,
		source: source,
		size:   size,
		lh:     m.HAscent + m.HDescent + m.HLineGap,
	}
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

func (f *TTFFont) Size() float64 { return f.size }

func (f *TTFFont) Resized(delta float64) Font {
	if f.size+delta <= 0 {
		return f
	}
	return newTTFFont(f.source, f.size+delta)
}

// Face returns the underlying GoTextFace for direct Ebitengine text/v2 rendering.
func (f *TTFFont) Face() *text.GoTextFace {
	return f.face
}

// fontOrDefault substitutes DefaultFont for a nil Font.
func fontOrDefault(f Font) Font {
	if f == nil {
		return defaultFont
	}
	return f
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
