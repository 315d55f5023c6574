// Package svg renders charts as SVG documents.
package svg

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"io"
	"strconv"
	"strings"

	svgo "github.com/ajstarks/svgo"
	"github.com/phanxgames/charts"
)

// Surface implements charts.Surface by writing SVG elements. Every element
// carries the current transform as a matrix attribute and is wrapped in a
// clip group while a clip is active.
type Surface struct {
	charts.StateStack

	canvas *svgo.SVG
	clips  map[charts.Rect]string
	nextID int
	closed bool

	// FontFamily is used for every text element.
	FontFamily string
}

// New starts a width x height SVG document on w. Call Close to finish it.
func New(w io.Writer, width, height int) *Surface {
	s := &Surface{
		StateStack: charts.NewStateStack(),
		canvas:     svgo.New(w),
		clips:      make(map[charts.Rect]string),
		FontFamily: "monospace",
	}
	s.canvas.Start(width, height)
	return s
}

// Close ends the document. Further drawing is ignored.
func (s *Surface) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.canvas.End()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func (s *Surface) genid(prefix string) string {
	s.nextID++
	return prefix + strconv.Itoa(s.nextID)
}

// paint returns the attributes for painting kind ("fill" or "stroke")
// with c.
func paint(kind string, c charts.Color) []string {
	if c.A <= 0 {
		return []string{kind + `="none"`}
	}
	attrs := []string{fmt.Sprintf(`%s="%s"`, kind, c.WithAlpha(1).Hex())}
	if c.A < 1 {
		attrs = append(attrs, fmt.Sprintf(`%s-opacity="%s"`, kind, num(c.A)))
	}
	return attrs
}

func (s *Surface) strokeAttrs() []string {
	st := s.State()
	attrs := append(paint("stroke", st.Stroke), `fill="none"`, fmt.Sprintf(`stroke-width="%s"`, num(st.LineWidth)))
	if len(st.Dash) > 0 {
		parts := make([]string, len(st.Dash))
		for i, d := range st.Dash {
			parts[i] = num(d)
		}
		attrs = append(attrs, fmt.Sprintf(`stroke-dasharray="%s"`, strings.Join(parts, ",")))
		if st.DashPhase != 0 {
			attrs = append(attrs, fmt.Sprintf(`stroke-dashoffset="%s"`, num(st.DashPhase)))
		}
	}
	return attrs
}

// mul returns the affine a·b, with matrices stored as [a b c d tx ty].
func mul(a, b [6]float64) [6]float64 {
	return [6]float64{
		a[0]*b[0] + a[2]*b[1],
		a[1]*b[0] + a[3]*b[1],
		a[0]*b[2] + a[2]*b[3],
		a[1]*b[2] + a[3]*b[3],
		a[0]*b[4] + a[2]*b[5] + a[4],
		a[1]*b[4] + a[3]*b[5] + a[5],
	}
}

func transformAttr(m [6]float64) []string {
	if m == [6]float64{1, 0, 0, 1, 0, 0} {
		return nil
	}
	return []string{fmt.Sprintf(`transform="matrix(%s %s %s %s %s %s)"`,
		num(m[0]), num(m[1]), num(m[2]), num(m[3]), num(m[4]), num(m[5]))}
}

// emit writes one element through draw with transform m, inside a clip
// group when a clip is active.
func (s *Surface) emit(draw func(attrs ...string), m [6]float64, attrs ...string) {
	if s.closed {
		return
	}
	attrs = append(attrs, transformAttr(m)...)
	st := s.State()
	if !st.Clipped {
		draw(attrs...)
		return
	}
	id, ok := s.clips[st.Clip]
	if !ok {
		id = s.genid("clip")
		s.clips[st.Clip] = id
		c := st.Clip
		s.canvas.Def()
		s.canvas.ClipPath(`id="` + id + `"`)
		s.canvas.Path(rectPath(c))
		s.canvas.ClipEnd()
		s.canvas.DefEnd()
	}
	s.canvas.Group(`clip-path="url(#` + id + `)"`)
	draw(attrs...)
	s.canvas.Gend()
}

func (s *Surface) path(d string, attrs ...string) {
	s.emit(func(a ...string) { s.canvas.Path(d, a...) }, s.State().Transform, attrs...)
}

func rectPath(r charts.Rect) string {
	return fmt.Sprintf("M%s %sH%sV%sH%sZ",
		num(r.X), num(r.Y), num(r.X+r.Width), num(r.Y+r.Height), num(r.X))
}

func ellipsePath(r charts.Rect) string {
	start, curves := charts.EllipseCurves(r)
	var b strings.Builder
	fmt.Fprintf(&b, "M%s %s", num(start.X), num(start.Y))
	for _, c := range curves {
		fmt.Fprintf(&b, "C%s %s,%s %s,%s %s",
			num(c[0].X), num(c[0].Y), num(c[1].X), num(c[1].Y), num(c[2].X), num(c[2].Y))
	}
	b.WriteString("Z")
	return b.String()
}

func (s *Surface) StrokeLine(x0, y0, x1, y1 float64) {
	d := fmt.Sprintf("M%s %sL%s %s", num(x0), num(y0), num(x1), num(y1))
	s.path(d, s.strokeAttrs()...)
}

func (s *Surface) FillRect(r charts.Rect) {
	s.path(rectPath(r), paint("fill", s.State().Fill)...)
}

func (s *Surface) StrokeRect(r charts.Rect) {
	s.path(rectPath(r), s.strokeAttrs()...)
}

func (s *Surface) FillEllipse(r charts.Rect) {
	s.path(ellipsePath(r), paint("fill", s.State().Fill)...)
}

func (s *Surface) StrokeEllipse(r charts.Rect) {
	s.path(ellipsePath(r), s.strokeAttrs()...)
}

// ascent is the baseline offset below the text's top edge.
func ascent(f charts.Font) float64 {
	if ff, ok := f.(*charts.FaceFont); ok && ff != nil {
		return ff.Ascent()
	}
	if f == nil {
		return charts.DefaultFont().Ascent()
	}
	return f.LineHeight() * 0.8
}

func (s *Surface) DrawText(str string, x, y float64, f charts.Font, c charts.Color) {
	if str == "" || c.A <= 0 {
		return
	}
	if f == nil {
		f = charts.DefaultFont()
	}
	// svgo takes integer coordinates; fractional placement goes into the
	// element transform.
	attrs := append(paint("fill", c),
		fmt.Sprintf(`font-size="%s"`, num(f.Size())),
		fmt.Sprintf(`font-family="%s"`, s.FontFamily),
	)
	m := mul(s.State().Transform, [6]float64{1, 0, 0, 1, x, y + ascent(f)})
	s.emit(func(a ...string) { s.canvas.Text(0, 0, str, a...) }, m, attrs...)
}

// dataURI encodes img as a base64 PNG data URI.
func dataURI(img image.Image) (string, error) {
	var buf bytes.Buffer
	buf.WriteString("data:image/png;base64,")
	w := base64.NewEncoder(base64.StdEncoding, &buf)
	if err := png.Encode(w, img); err != nil {
		return "", fmt.Errorf("svg: encode image: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("svg: encode image: %w", err)
	}
	return buf.String(), nil
}

func (s *Surface) DrawImage(img image.Image, dst charts.Rect) {
	if img == nil {
		return
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	uri, err := dataURI(img)
	if err != nil {
		return
	}
	place := [6]float64{dst.Width / float64(b.Dx()), 0, 0, dst.Height / float64(b.Dy()), dst.X, dst.Y}
	m := mul(s.State().Transform, place)
	s.emit(func(a ...string) {
		s.canvas.Image(0, 0, b.Dx(), b.Dy(), uri, a...)
	}, m, `preserveAspectRatio="none"`)
}
