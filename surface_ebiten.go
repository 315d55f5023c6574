package charts

import (
	"image"
	"math"
	"reflect"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// whiteSubImage is the 1x1 center of a 3x3 white image, used as the source
// for solid-color triangles so sampling never bleeds past the edges.
var whiteSubImage *ebiten.Image

func whiteSource() *ebiten.Image {
	if whiteSubImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(ColorWhite.toRGBA())
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// EbitenSurface draws onto an *ebiten.Image. Shapes are tessellated with
// ebiten's vector package and submitted with DrawTriangles; text goes
// through text/v2.
type EbitenSurface struct {
	StateStack
	dst *ebiten.Image

	path   vector.Path
	verts  []ebiten.Vertex
	inds   []uint16
	images imageCache
	xfaces map[*FaceFont]*text.GoXFace
}

// NewEbitenSurface creates a surface drawing onto dst.
func NewEbitenSurface(dst *ebiten.Image) *EbitenSurface {
	return &EbitenSurface{
		StateStack: NewStateStack(),
		dst:        dst,
		images:     imageCache{max: maxCachedImages},
		xfaces:     make(map[*FaceFont]*text.GoXFace),
	}
}

// Begin retargets the surface for a new frame and resets its state.
// Converted images stay cached, up to maxCachedImages of them.
func (s *EbitenSurface) Begin(dst *ebiten.Image) {
	s.dst = dst
	s.StateStack = NewStateStack()
}

// target returns the destination restricted to the current clip.
func (s *EbitenSurface) target() *ebiten.Image {
	if !s.cur.Clipped {
		return s.dst
	}
	c := s.cur.Clip
	r := image.Rect(
		int(math.Floor(c.X)), int(math.Floor(c.Y)),
		int(math.Ceil(c.Right())), int(math.Ceil(c.Bottom())),
	).Intersect(s.dst.Bounds())
	return s.dst.SubImage(r).(*ebiten.Image)
}

// affineGeoM converts an affine matrix to an ebiten.GeoM.
func affineGeoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// transformVertices maps vertices through the current transform, points
// them at the white source pixel and applies the premultiplied color.
func transformVertices(verts []ebiten.Vertex, transform [6]float64, c Color) {
	a, b, cc, d, tx, ty := transform[0], transform[1], transform[2], transform[3], transform[4], transform[5]
	ca := float32(clamp01(c.A))
	cr := float32(clamp01(c.R)) * ca
	cg := float32(clamp01(c.G)) * ca
	cb := float32(clamp01(c.B)) * ca

	for i := range verts {
		v := &verts[i]
		ox := float64(v.DstX)
		oy := float64(v.DstY)
		v.DstX = float32(a*ox + cc*oy + tx)
		v.DstY = float32(b*ox + d*oy + ty)
		v.SrcX = 1
		v.SrcY = 1
		v.ColorR = cr
		v.ColorG = cg
		v.ColorB = cb
		v.ColorA = ca
	}
}

func (s *EbitenSurface) submit(c Color) {
	if len(s.inds) == 0 || c.A <= 0 {
		return
	}
	transformVertices(s.verts, s.cur.Transform, c)
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true, FillRule: ebiten.NonZero}
	s.target().DrawTriangles(s.verts, s.inds, whiteSource(), op)
}

func (s *EbitenSurface) fillPath(c Color) {
	s.verts, s.inds = s.path.AppendVerticesAndIndicesForFilling(s.verts[:0], s.inds[:0])
	s.submit(c)
}

func (s *EbitenSurface) strokePath() {
	s.verts, s.inds = s.path.AppendVerticesAndIndicesForStroke(s.verts[:0], s.inds[:0], &vector.StrokeOptions{
		Width:      float32(s.cur.LineWidth),
		LineJoin:   vector.LineJoinMiter,
		LineCap:    vector.LineCapButt,
		MiterLimit: 10,
	})
	s.submit(s.cur.Stroke)
}

func (s *EbitenSurface) StrokeLine(x0, y0, x1, y1 float64) {
	s.path = vector.Path{}
	for _, seg := range DashSegments(x0, y0, x1, y1, s.cur.DashPhase, s.cur.Dash) {
		s.path.MoveTo(float32(seg[0]), float32(seg[1]))
		s.path.LineTo(float32(seg[2]), float32(seg[3]))
	}
	s.strokePath()
}

func (s *EbitenSurface) rectPath(r Rect) {
	s.path = vector.Path{}
	s.path.MoveTo(float32(r.X), float32(r.Y))
	s.path.LineTo(float32(r.Right()), float32(r.Y))
	s.path.LineTo(float32(r.Right()), float32(r.Bottom()))
	s.path.LineTo(float32(r.X), float32(r.Bottom()))
	s.path.Close()
}

func (s *EbitenSurface) FillRect(r Rect) {
	s.rectPath(r)
	s.fillPath(s.cur.Fill)
}

func (s *EbitenSurface) StrokeRect(r Rect) {
	s.rectPath(r)
	s.strokePath()
}

func (s *EbitenSurface) ellipsePath(r Rect) {
	s.path = vector.Path{}
	start, curves := EllipseCurves(r)
	s.path.MoveTo(float32(start.X), float32(start.Y))
	for _, c := range curves {
		s.path.CubicTo(
			float32(c[0].X), float32(c[0].Y),
			float32(c[1].X), float32(c[1].Y),
			float32(c[2].X), float32(c[2].Y),
		)
	}
	s.path.Close()
}

func (s *EbitenSurface) FillEllipse(r Rect) {
	s.ellipsePath(r)
	s.fillPath(s.cur.Fill)
}

func (s *EbitenSurface) StrokeEllipse(r Rect) {
	s.ellipsePath(r)
	s.strokePath()
}

func (s *EbitenSurface) face(f Font) text.Face {
	switch ff := f.(type) {
	case *TTFFont:
		return ff.Face()
	case *FaceFont:
		xf, ok := s.xfaces[ff]
		if !ok {
			xf = text.NewGoXFace(ff.Face())
			s.xfaces[ff] = xf
		}
		return xf
	default:
		return s.face(defaultFont)
	}
}

func (s *EbitenSurface) DrawText(str string, x, y float64, f Font, c Color) {
	if str == "" || c.A <= 0 {
		return
	}
	f = fontOrDefault(f)
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(affineGeoM(s.cur.Transform))
	op.ColorScale.ScaleWithColor(c)
	op.LineSpacing = f.LineHeight()
	text.Draw(s.target(), str, s.face(f), op)
}

func (s *EbitenSurface) DrawImage(img image.Image, dst Rect) {
	if img == nil {
		return
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	eimg, isEbiten := img.(*ebiten.Image)
	if !isEbiten {
		eimg = s.images.get(img, ebiten.NewImageFromImage)
	}
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Scale(dst.Width/float64(b.Dx()), dst.Height/float64(b.Dy()))
	op.GeoM.Translate(dst.X, dst.Y)
	op.GeoM.Concat(affineGeoM(s.cur.Transform))
	s.target().DrawImage(eimg, op)
}

const maxCachedImages = 256

// imageCache keeps ebiten copies of source images across frames. Only
// pointer-typed images are cached; others are converted on every call.
// The cache starts over once it holds max entries.
type imageCache struct {
	m   map[image.Image]*ebiten.Image
	max int
}

func (c *imageCache) get(img image.Image, convert func(image.Image) *ebiten.Image) *ebiten.Image {
	if reflect.TypeOf(img).Kind() != reflect.Pointer {
		return convert(img)
	}
	if e, ok := c.m[img]; ok {
		return e
	}
	if c.m == nil || len(c.m) >= c.max {
		c.m = make(map[image.Image]*ebiten.Image)
	}
	e := convert(img)
	c.m[img] = e
	return e
}

func (c *imageCache) len() int { return len(c.m) }
