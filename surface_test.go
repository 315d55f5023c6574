package charts

import (
	"math"
	"testing"
)

// --- DashSegments ---

func TestDashSegmentsSolid(t *testing.T) {
	segs := DashSegments(0, 0, 40, 0, 0, nil)
	if len(segs) != 1 || segs[0] != [4]float64{0, 0, 40, 0} {
		t.Errorf("solid = %v, want the whole line", segs)
	}
	segs = DashSegments(0, 0, 40, 0, 0, []float64{5, -1})
	if len(segs) != 1 {
		t.Errorf("negative pattern = %v, want the whole line", segs)
	}
}

func TestDashSegmentsPattern(t *testing.T) {
	segs := DashSegments(0, 0, 40, 0, 0, []float64{10, 10})
	want := [][4]float64{{0, 0, 10, 0}, {20, 0, 30, 0}}
	if len(segs) != len(want) {
		t.Fatalf("segments = %v, want %v", segs, want)
	}
	for i := range want {
		for j := range 4 {
			assertNear(t, "segment", segs[i][j], want[i][j])
		}
	}
}

func TestDashSegmentsPhase(t *testing.T) {
	segs := DashSegments(0, 0, 40, 0, 5, []float64{10, 10})
	want := [][4]float64{{0, 0, 5, 0}, {15, 0, 25, 0}, {35, 0, 40, 0}}
	if len(segs) != len(want) {
		t.Fatalf("segments = %v, want %v", segs, want)
	}
	for i := range want {
		assertNear(t, "start", segs[i][0], want[i][0])
		assertNear(t, "end", segs[i][2], want[i][2])
	}
}

func TestDashSegmentsDiagonal(t *testing.T) {
	segs := DashSegments(0, 0, 30, 40, 0, []float64{25, 100})
	if len(segs) != 1 {
		t.Fatalf("segments = %v, want 1", segs)
	}
	assertNear(t, "end x", segs[0][2], 15)
	assertNear(t, "end y", segs[0][3], 20)
}

// --- EllipseCurves ---

func TestEllipseCurvesEndpoints(t *testing.T) {
	start, curves := EllipseCurves(Rect{X: 0, Y: 0, Width: 20, Height: 10})
	if start != (Vec2{20, 5}) {
		t.Errorf("start = %v, want {20 5}", start)
	}
	ends := []Vec2{{10, 10}, {0, 5}, {10, 0}, {20, 5}}
	for i, want := range ends {
		if got := curves[i][2]; got != want {
			t.Errorf("curve %d end = %v, want %v", i, got, want)
		}
	}
	// The midpoint of the first quarter lies on the ellipse.
	c := curves[0]
	p0 := start
	mid := Vec2{
		X: (p0.X + 3*c[0].X + 3*c[1].X + c[2].X) / 8,
		Y: (p0.Y + 3*c[0].Y + 3*c[1].Y + c[2].Y) / 8,
	}
	dx, dy := (mid.X-10)/10, (mid.Y-5)/5
	if r := math.Hypot(dx, dy); math.Abs(r-1) > 1e-3 {
		t.Errorf("curve midpoint radius = %v, want 1", r)
	}
}

// --- StateStack ---

func TestStateStackDefaults(t *testing.T) {
	s := NewStateStack()
	st := s.State()
	if st.Stroke != ColorBlack || st.Fill != ColorBlack {
		t.Errorf("default colors = %v, %v, want black", st.Stroke, st.Fill)
	}
	assertNear(t, "LineWidth", st.LineWidth, 1)
	if !st.Identity() || st.Clipped {
		t.Error("default state has a transform or clip")
	}
}

func TestStateStackSaveRestore(t *testing.T) {
	s := NewStateStack()
	s.SetLineDash(0, []float64{4, 2})
	s.SaveState()
	s.SetLineWidth(5)
	s.SetLineDash(1, []float64{9})
	s.Translate(10, 0)
	s.RestoreState()

	st := s.State()
	assertNear(t, "LineWidth", st.LineWidth, 1)
	if len(st.Dash) != 2 || st.Dash[0] != 4 {
		t.Errorf("Dash = %v, want [4 2]", st.Dash)
	}
	if !st.Identity() {
		t.Errorf("Transform = %v, want identity", st.Transform)
	}
	s.RestoreState()
	if s.Depth() != 0 {
		t.Errorf("Depth() = %d after unbalanced restore, want 0", s.Depth())
	}
}

func TestStateStackClipInDeviceSpace(t *testing.T) {
	s := NewStateStack()
	s.Translate(10, 5)
	s.ClipRect(Rect{X: 0, Y: 0, Width: 50, Height: 50})
	s.ClipRect(Rect{X: 20, Y: 20, Width: 100, Height: 100})

	st := s.State()
	want := Rect{X: 30, Y: 25, Width: 30, Height: 30}
	if !st.Clipped || st.Clip != want {
		t.Errorf("Clip = %v (clipped %v), want %v", st.Clip, st.Clipped, want)
	}
}

func TestStateStackRotate(t *testing.T) {
	s := NewStateStack()
	s.Translate(10, 0)
	s.Rotate(math.Pi / 2)
	x, y := s.State().Apply(1, 0)
	assertNear(t, "x", x, 10)
	assertNear(t, "y", y, 1)

	s.SetLineWidth(2)
	assertNear(t, "DeviceLineWidth", s.State().DeviceLineWidth(), 2)

	r := s.State().DeviceRect(Rect{Width: 4, Height: 2})
	assertNear(t, "rotated width", r.Width, 2)
	assertNear(t, "rotated height", r.Height, 4)
}

// --- text helpers ---

func TestDrawTextAlignsEachLine(t *testing.T) {
	rec := NewRecorder()
	DrawText(rec, "ab\ncdef", Vec2{50, 10}, TextAlignRight, nil, ColorBlack)

	texts := rec.Filter(CommandText)
	if len(texts) != 2 {
		t.Fatalf("texts = %d, want 2", len(texts))
	}
	assertNear(t, "line 1 x", texts[0].X0, 36)
	assertNear(t, "line 1 y", texts[0].Y0, 10)
	assertNear(t, "line 2 x", texts[1].X0, 22)
	assertNear(t, "line 2 y", texts[1].Y0, 23)
	if texts[0].Font != Font(DefaultFont()) {
		t.Error("nil font was not replaced by the default")
	}
}

func TestDrawTextAnchoredCenter(t *testing.T) {
	rec := NewRecorder()
	DrawTextAnchored(rec, "abcd", Vec2{100, 100}, Vec2{0.5, 0.5}, 0, nil, ColorBlack)
	c := rec.Filter(CommandText)[0]
	assertNear(t, "x", c.X0, 86)
	assertNear(t, "y", c.Y0, 93.5)
}

func TestDrawMultilineTextCentersLines(t *testing.T) {
	rec := NewRecorder()
	DrawMultilineText(rec, "ab\nabcd", Vec2{100, 100}, Vec2{0.5, 0.5}, 0, nil, ColorBlack)
	texts := rec.Filter(CommandText)
	if len(texts) != 2 {
		t.Fatalf("texts = %d, want 2", len(texts))
	}
	assertNear(t, "short line x", texts[0].X0, 93)
	assertNear(t, "long line x", texts[1].X0, 86)
	assertNear(t, "first line y", texts[0].Y0, 87)
}

func TestDrawTextAnchoredRotated(t *testing.T) {
	rec := NewRecorder()
	DrawTextAnchored(rec, "ab", Vec2{30, 40}, Vec2{0, 0}, math.Pi/2, nil, ColorBlack)

	if rec.Depth() != 0 {
		t.Errorf("state depth = %d, want 0", rec.Depth())
	}
	c := rec.Filter(CommandText)[0]
	x, y := c.State.Apply(c.X0, c.Y0)
	assertNear(t, "device x", x, 30)
	assertNear(t, "device y", y, 40)
}
