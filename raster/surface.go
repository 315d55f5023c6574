// Package raster renders charts into an in-memory RGBA image without a GPU
// or window, for PNG export and pixel tests.
package raster

import (
	"image"
	"image/png"
	"io"
	"math"

	"github.com/phanxgames/charts"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Surface implements charts.Surface on an *image.RGBA. Shapes are
// rasterized with anti-aliasing into a coverage mask and composited with
// draw.Over inside the current clip.
type Surface struct {
	charts.StateStack

	img  *image.RGBA
	ras  *vector.Rasterizer
	mask *image.Alpha
}

// New creates a transparent w x h surface.
func New(w, h int) *Surface {
	return NewFromImage(image.NewRGBA(image.Rect(0, 0, w, h)))
}

// NewFromImage creates a surface drawing onto img.
func NewFromImage(img *image.RGBA) *Surface {
	b := img.Bounds()
	ras := vector.NewRasterizer(b.Dx(), b.Dy())
	ras.DrawOp = draw.Src
	return &Surface{
		StateStack: charts.NewStateStack(),
		img:        img,
		ras:        ras,
		mask:       image.NewAlpha(image.Rect(0, 0, b.Dx(), b.Dy())),
	}
}

// Image returns the backing image.
func (s *Surface) Image() *image.RGBA { return s.img }

// Clear fills the whole image with c, ignoring the clip.
func (s *Surface) Clear(c charts.Color) {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// Encode writes the image as PNG.
func (s *Surface) Encode(w io.Writer) error {
	return png.Encode(w, s.img)
}

// SavePNG writes the image to a PNG file.
func (s *Surface) SavePNG(path string) error {
	return charts.SavePNG(path, s.img)
}

// clipBounds is the device rectangle drawing is limited to.
func (s *Surface) clipBounds() image.Rectangle {
	b := s.img.Bounds()
	st := s.State()
	if !st.Clipped {
		return b
	}
	c := st.Clip
	return image.Rect(
		int(math.Floor(c.X)), int(math.Floor(c.Y)),
		int(math.Ceil(c.X+c.Width)), int(math.Ceil(c.Y+c.Height)),
	).Add(b.Min).Intersect(b)
}

// --- path building in device space ---

func (s *Surface) moveTo(x, y float64) {
	dx, dy := s.State().Apply(x, y)
	s.ras.MoveTo(float32(dx), float32(dy))
}

func (s *Surface) lineTo(x, y float64) {
	dx, dy := s.State().Apply(x, y)
	s.ras.LineTo(float32(dx), float32(dy))
}

func (s *Surface) cubicTo(c1, c2, p charts.Vec2) {
	st := s.State()
	x1, y1 := st.Apply(c1.X, c1.Y)
	x2, y2 := st.Apply(c2.X, c2.Y)
	x3, y3 := st.Apply(p.X, p.Y)
	s.ras.CubicTo(float32(x1), float32(y1), float32(x2), float32(y2), float32(x3), float32(y3))
}

func (s *Surface) beginPath() {
	b := s.img.Bounds()
	s.ras.Reset(b.Dx(), b.Dy())
}

// fill composites the accumulated path in color c.
func (s *Surface) fill(c charts.Color) {
	if c.A <= 0 {
		return
	}
	r := s.clipBounds()
	if r.Empty() {
		return
	}
	s.ras.Draw(s.mask, s.mask.Bounds(), image.Opaque, image.Point{})
	b := s.img.Bounds()
	draw.DrawMask(s.img, r, image.NewUniform(c), image.Point{}, s.mask, r.Min.Sub(b.Min), draw.Over)
}

func (s *Surface) rectPath(r charts.Rect, reverse bool) {
	if reverse {
		s.moveTo(r.X, r.Y)
		s.lineTo(r.X, r.Y+r.Height)
		s.lineTo(r.X+r.Width, r.Y+r.Height)
		s.lineTo(r.X+r.Width, r.Y)
	} else {
		s.moveTo(r.X, r.Y)
		s.lineTo(r.X+r.Width, r.Y)
		s.lineTo(r.X+r.Width, r.Y+r.Height)
		s.lineTo(r.X, r.Y+r.Height)
	}
	s.ras.ClosePath()
}

func (s *Surface) ellipsePath(r charts.Rect, reverse bool) {
	start, curves := charts.EllipseCurves(r)
	s.moveTo(start.X, start.Y)
	if reverse {
		for i := len(curves) - 1; i >= 0; i-- {
			end := start
			if i > 0 {
				end = curves[i-1][2]
			}
			s.cubicTo(curves[i][1], curves[i][0], end)
		}
	} else {
		for _, c := range curves {
			s.cubicTo(c[0], c[1], c[2])
		}
	}
	s.ras.ClosePath()
}

// segmentQuad adds the rectangle covering a line of the current width.
func (s *Surface) segmentQuad(x0, y0, x1, y1 float64) {
	l := math.Hypot(x1-x0, y1-y0)
	if l == 0 {
		return
	}
	hw := s.State().LineWidth / 2
	nx, ny := -(y1-y0)/l*hw, (x1-x0)/l*hw
	s.moveTo(x0+nx, y0+ny)
	s.lineTo(x1+nx, y1+ny)
	s.lineTo(x1-nx, y1-ny)
	s.lineTo(x0-nx, y0-ny)
	s.ras.ClosePath()
}

func inset(r charts.Rect, d float64) charts.Rect {
	return charts.Rect{X: r.X + d, Y: r.Y + d, Width: r.Width - 2*d, Height: r.Height - 2*d}
}

// --- charts.Surface primitives ---

func (s *Surface) StrokeLine(x0, y0, x1, y1 float64) {
	st := s.State()
	s.beginPath()
	for _, seg := range charts.DashSegments(x0, y0, x1, y1, st.DashPhase, st.Dash) {
		s.segmentQuad(seg[0], seg[1], seg[2], seg[3])
	}
	s.fill(st.Stroke)
}

func (s *Surface) FillRect(r charts.Rect) {
	s.beginPath()
	s.rectPath(r, false)
	s.fill(s.State().Fill)
}

func (s *Surface) StrokeRect(r charts.Rect) {
	hw := s.State().LineWidth / 2
	s.beginPath()
	s.rectPath(inset(r, -hw), false)
	if in := inset(r, hw); in.Width > 0 && in.Height > 0 {
		s.rectPath(in, true)
	}
	s.fill(s.State().Stroke)
}

func (s *Surface) FillEllipse(r charts.Rect) {
	s.beginPath()
	s.ellipsePath(r, false)
	s.fill(s.State().Fill)
}

func (s *Surface) StrokeEllipse(r charts.Rect) {
	hw := s.State().LineWidth / 2
	s.beginPath()
	s.ellipsePath(inset(r, -hw), false)
	if in := inset(r, hw); in.Width > 0 && in.Height > 0 {
		s.ellipsePath(in, true)
	}
	s.fill(s.State().Stroke)
}

// faceFont returns the x/image face behind f. Fonts without one fall back
// to the default bitmap font.
func faceFont(f charts.Font) *charts.FaceFont {
	if ff, ok := f.(*charts.FaceFont); ok && ff != nil {
		return ff
	}
	return charts.DefaultFont()
}

// clipped returns the backing image restricted to the clip.
func (s *Surface) clipped() *image.RGBA {
	return s.img.SubImage(s.clipBounds()).(*image.RGBA)
}

// toAff3 converts a [a b c d tx ty] affine to x/image's row-major layout.
func toAff3(m [6]float64) f64.Aff3 {
	return f64.Aff3{m[0], m[2], m[4], m[1], m[3], m[5]}
}

func mulAff3(a, b f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		a[0]*b[0] + a[1]*b[3], a[0]*b[1] + a[1]*b[4], a[0]*b[2] + a[1]*b[5] + a[2],
		a[3]*b[0] + a[4]*b[3], a[3]*b[1] + a[4]*b[4], a[3]*b[2] + a[4]*b[5] + a[5],
	}
}

// deviceAff3 maps user space, after local, to image coordinates.
func (s *Surface) deviceAff3(local f64.Aff3) f64.Aff3 {
	b := s.img.Bounds()
	origin := f64.Aff3{1, 0, float64(b.Min.X), 0, 1, float64(b.Min.Y)}
	return mulAff3(origin, mulAff3(toAff3(s.State().Transform), local))
}

// translationOnly reports whether m only moves points.
func translationOnly(m [6]float64) bool {
	return m[0] == 1 && m[1] == 0 && m[2] == 0 && m[3] == 1
}

func (s *Surface) DrawText(str string, x, y float64, f charts.Font, c charts.Color) {
	if str == "" || c.A <= 0 {
		return
	}
	ff := faceFont(f)
	st := s.State()
	src := image.NewUniform(c)

	if translationOnly(st.Transform) {
		dx, dy := st.Apply(x, y)
		b := s.img.Bounds()
		d := &font.Drawer{
			Dst:  s.clipped(),
			Src:  src,
			Face: ff.Face(),
			Dot: fixed.Point26_6{
				X: fixed.Int26_6(math.Round((dx + float64(b.Min.X)) * 64)),
				Y: fixed.Int26_6(math.Round((dy + ff.Ascent() + float64(b.Min.Y)) * 64)),
			},
		}
		d.DrawString(str)
		return
	}

	// Rotated or scaled text is drawn upright into a scratch image and
	// resampled into place.
	w, h := ff.MeasureString(str)
	tmp := image.NewRGBA(image.Rect(0, 0, int(math.Ceil(w))+1, int(math.Ceil(h))+1))
	d := &font.Drawer{
		Dst:  tmp,
		Src:  src,
		Face: ff.Face(),
		Dot:  fixed.P(0, int(math.Round(ff.Ascent()))),
	}
	d.DrawString(str)
	m := s.deviceAff3(f64.Aff3{1, 0, x, 0, 1, y})
	draw.BiLinear.Transform(s.clipped(), m, tmp, tmp.Bounds(), draw.Over, nil)
}

func (s *Surface) DrawImage(img image.Image, dst charts.Rect) {
	if img == nil {
		return
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 || dst.Width <= 0 || dst.Height <= 0 {
		return
	}
	sx := dst.Width / float64(b.Dx())
	sy := dst.Height / float64(b.Dy())
	place := f64.Aff3{
		sx, 0, dst.X - float64(b.Min.X)*sx,
		0, sy, dst.Y - float64(b.Min.Y)*sy,
	}
	m := s.deviceAff3(place)
	draw.BiLinear.Transform(s.clipped(), m, img, b, draw.Over, nil)
}
