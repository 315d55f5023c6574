package charts

import (
	"image"
	"math"
	"strings"
)

// Surface is the 2D drawing target renderers issue primitives to. All
// coordinates are in pixels and pass through the current transform. Text is
// drawn with its top-left corner at (x, y).
type Surface interface {
	SaveState()
	RestoreState()
	// ClipRect intersects the clip region with r.
	ClipRect(r Rect)
	Translate(dx, dy float64)
	Rotate(radians float64)

	SetLineWidth(w float64)
	// SetLineDash sets the dash pattern; empty lengths draw solid lines.
	SetLineDash(phase float64, lengths []float64)
	SetStrokeColor(c Color)
	SetFillColor(c Color)

	StrokeLine(x0, y0, x1, y1 float64)
	FillRect(r Rect)
	StrokeRect(r Rect)
	FillEllipse(r Rect)
	StrokeEllipse(r Rect)
	DrawText(s string, x, y float64, f Font, c Color)
	DrawImage(img image.Image, dst Rect)
}

// DrawState is the graphics state saved and restored by SaveState and
// RestoreState.
type DrawState struct {
	Stroke    Color
	Fill      Color
	LineWidth float64
	DashPhase float64
	Dash      []float64
	// Transform maps user coordinates to device pixels.
	Transform [6]float64
	// Clip is in device pixels; only meaningful when Clipped is set.
	Clip    Rect
	Clipped bool
}

// Apply maps a user-space point to device space.
func (d *DrawState) Apply(x, y float64) (float64, float64) {
	return transformPoint(d.Transform, x, y)
}

// DeviceRect returns the device-space bounding box of a user-space rect.
func (d *DrawState) DeviceRect(r Rect) Rect {
	return worldAABB(d.Transform, r)
}

// Identity reports whether no transform is active.
func (d *DrawState) Identity() bool {
	return d.Transform == identityTransform
}

// DeviceLineWidth scales the line width by the transform.
func (d *DrawState) DeviceLineWidth() float64 {
	m := d.Transform
	return d.LineWidth * math.Sqrt(math.Abs(m[0]*m[3]-m[1]*m[2]))
}

// StateStack implements the state half of Surface. Backends embed it and
// add the drawing primitives.
type StateStack struct {
	cur   DrawState
	stack []DrawState
}

// NewStateStack returns a stack with black stroke and fill, width 1 and the
// identity transform.
func NewStateStack() StateStack {
	return StateStack{cur: DrawState{
		Stroke:    ColorBlack,
		Fill:      ColorBlack,
		LineWidth: 1,
		Transform: identityTransform,
	}}
}

// State returns the current graphics state.
func (s *StateStack) State() *DrawState { return &s.cur }

// Depth returns the number of saved states.
func (s *StateStack) Depth() int { return len(s.stack) }

func (s *StateStack) SaveState() {
	saved := s.cur
	saved.Dash = append([]float64(nil), s.cur.Dash...)
	s.stack = append(s.stack, saved)
}

// RestoreState pops the last saved state. Unbalanced calls are ignored.
func (s *StateStack) RestoreState() {
	if len(s.stack) == 0 {
		return
	}
	s.cur = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *StateStack) ClipRect(r Rect) {
	dev := s.cur.DeviceRect(r)
	if s.cur.Clipped {
		dev = s.cur.Clip.Intersect(dev)
	}
	s.cur.Clip = dev
	s.cur.Clipped = true
}

func (s *StateStack) Translate(dx, dy float64) {
	s.cur.Transform = multiplyAffine(s.cur.Transform, translateAffine(dx, dy))
}

func (s *StateStack) Rotate(radians float64) {
	s.cur.Transform = multiplyAffine(s.cur.Transform, rotateAffine(radians))
}

func (s *StateStack) SetLineWidth(w float64) { s.cur.LineWidth = w }

func (s *StateStack) SetLineDash(phase float64, lengths []float64) {
	s.cur.DashPhase = phase
	s.cur.Dash = append(s.cur.Dash[:0], lengths...)
}

func (s *StateStack) SetStrokeColor(c Color) { s.cur.Stroke = c }
func (s *StateStack) SetFillColor(c Color)   { s.cur.Fill = c }

// worldAABB computes the axis-aligned bounding box of r transformed by m.
func worldAABB(m [6]float64, r Rect) Rect {
	x0, y0 := transformPoint(m, r.X, r.Y)
	x1, y1 := transformPoint(m, r.Right(), r.Y)
	x2, y2 := transformPoint(m, r.Right(), r.Bottom())
	x3, y3 := transformPoint(m, r.X, r.Bottom())

	minX := math.Min(math.Min(x0, x1), math.Min(x2, x3))
	minY := math.Min(math.Min(y0, y1), math.Min(y2, y3))
	maxX := math.Max(math.Max(x0, x1), math.Max(x2, x3))
	maxY := math.Max(math.Max(y0, y1), math.Max(y2, y3))

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// --- Text helpers ---

// DrawText draws text whose first line's top edge sits at pt.Y, aligned
// horizontally around pt.X. Each line is aligned independently.
func DrawText(s Surface, str string, pt Vec2, align TextAlign, f Font, c Color) {
	f = fontOrDefault(f)
	lh := f.LineHeight()
	y := pt.Y
	for line := range strings.SplitSeq(str, "\n") {
		w, _ := f.MeasureString(line)
		x := pt.X
		switch align {
		case TextAlignCenter:
			x -= w / 2
		case TextAlignRight:
			x -= w
		}
		s.DrawText(line, x, y, f, c)
		y += lh
	}
}

// DrawTextAnchored draws text positioned so that anchor (fractions of the
// text block size) lands on pt, rotated by angle radians around pt.
func DrawTextAnchored(s Surface, str string, pt Vec2, anchor Vec2, angle float64, f Font, c Color) {
	drawTextBlock(s, str, pt, anchor, angle, TextAlignLeft, f, c)
}

// DrawMultilineText is DrawTextAnchored with every line centered inside the
// text block.
func DrawMultilineText(s Surface, str string, pt Vec2, anchor Vec2, angle float64, f Font, c Color) {
	drawTextBlock(s, str, pt, anchor, angle, TextAlignCenter, f, c)
}

func drawTextBlock(s Surface, str string, pt Vec2, anchor Vec2, angle float64, align TextAlign, f Font, c Color) {
	f = fontOrDefault(f)
	w, h := f.MeasureString(str)
	ox := -w * anchor.X
	oy := -h * anchor.Y
	if align == TextAlignCenter {
		ox += w / 2
	}
	if angle == 0 {
		DrawText(s, str, Vec2{pt.X + ox, pt.Y + oy}, align, f, c)
		return
	}
	s.SaveState()
	s.Translate(pt.X, pt.Y)
	s.Rotate(angle)
	DrawText(s, str, Vec2{ox, oy}, align, f, c)
	s.RestoreState()
}

// --- Dashes ---

// DashSegments splits the line (x0,y0)-(x1,y1) into the "on" segments of a
// dash pattern starting at phase. A nil or all-zero pattern yields the
// whole line. Each segment is {x0, y0, x1, y1}.
func DashSegments(x0, y0, x1, y1, phase float64, lengths []float64) [][4]float64 {
	total := 0.0
	for _, l := range lengths {
		if l < 0 {
			return [][4]float64{{x0, y0, x1, y1}}
		}
		total += l
	}
	length := math.Hypot(x1-x0, y1-y0)
	if total <= 0 || length == 0 {
		return [][4]float64{{x0, y0, x1, y1}}
	}
	ux, uy := (x1-x0)/length, (y1-y0)/length

	// Find the pattern position at distance 0.
	idx := 0
	rem := lengths[0]
	p := math.Mod(phase, total)
	if p < 0 {
		p += total
	}
	for p > 0 {
		if p >= rem {
			p -= rem
			idx = (idx + 1) % len(lengths)
			rem = lengths[idx]
		} else {
			rem -= p
			p = 0
		}
	}

	var segs [][4]float64
	pos := 0.0
	for pos < length {
		step := math.Min(rem, length-pos)
		if idx%2 == 0 && step > 0 {
			segs = append(segs, [4]float64{
				x0 + ux*pos, y0 + uy*pos,
				x0 + ux*(pos+step), y0 + uy*(pos+step),
			})
		}
		pos += step
		idx = (idx + 1) % len(lengths)
		rem = lengths[idx]
	}
	return segs
}

// ellipseKappa places cubic Bézier control points for a quarter ellipse.
const ellipseKappa = 0.5522847498307936

// EllipseCurves approximates the ellipse inscribed in r with four cubic
// Bézier segments. The path starts at start; each curve is {c1, c2, end}.
func EllipseCurves(r Rect) (start Vec2, curves [4][3]Vec2) {
	rx, ry := r.Width/2, r.Height/2
	cx, cy := r.X+rx, r.Y+ry
	kx, ky := rx*ellipseKappa, ry*ellipseKappa

	start = Vec2{cx + rx, cy}
	curves = [4][3]Vec2{
		{{cx + rx, cy + ky}, {cx + kx, cy + ry}, {cx, cy + ry}},
		{{cx - kx, cy + ry}, {cx - rx, cy + ky}, {cx - rx, cy}},
		{{cx - rx, cy - ky}, {cx - kx, cy - ry}, {cx, cy - ry}},
		{{cx + kx, cy - ry}, {cx + rx, cy - ky}, {cx + rx, cy}},
	}
	return start, curves
}
