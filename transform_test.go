package charts

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want [6]float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

// testTransformer returns a 200x100 viewport with a {10,5,180,80} content
// rect and a transformer mapping x in [0, 9] and y in [-10, 30] onto it.
func testTransformer(inverted bool) (*ViewPortHandler, *Transformer) {
	vp := NewViewPortHandler(200, 100)
	vp.RestrainViewPort(10, 5, 10, 15)
	tr := NewTransformer(vp)
	tr.PrepareMatrixValuePx(0, 9, 40, -10)
	tr.PrepareMatrixOffset(inverted)
	return vp, tr
}

// --- affine helpers ---

func TestMultiplyAffineIdentity(t *testing.T) {
	m := [6]float64{2, 1, -1, 3, 10, 20}
	assertMatrix(t, "I*m", multiplyAffine(identityTransform, m), m)
	assertMatrix(t, "m*I", multiplyAffine(m, identityTransform), m)
}

func TestMultiplyAffineOrder(t *testing.T) {
	// Scale then translate: the child is applied first.
	m := multiplyAffine(translateAffine(5, 7), scaleAffine(2, 3))
	x, y := transformPoint(m, 1, 1)
	assertNear(t, "x", x, 7)
	assertNear(t, "y", y, 10)
}

func TestInvertAffine(t *testing.T) {
	m := multiplyAffine(translateAffine(5, -3), multiplyAffine(rotateAffine(0.7), scaleAffine(2, 4)))
	assertMatrix(t, "m*inv", multiplyAffine(m, invertAffine(m)), identityTransform)
}

func TestInvertAffineSingular(t *testing.T) {
	got := invertAffine([6]float64{0, 0, 0, 0, 5, 5})
	assertMatrix(t, "singular", got, identityTransform)
}

func TestRotateAffine90(t *testing.T) {
	x, y := transformPoint(rotateAffine(math.Pi/2), 1, 0)
	assertNear(t, "x", x, 0)
	assertNear(t, "y", y, 1)
}

// --- Transformer ---

func TestPointValueToPixelCorners(t *testing.T) {
	_, tr := testTransformer(false)

	x, y := tr.PointValueToPixel(0, -10)
	assertNear(t, "bottom-left x", x, 10)
	assertNear(t, "bottom-left y", y, 85)

	x, y = tr.PointValueToPixel(9, 30)
	assertNear(t, "top-right x", x, 190)
	assertNear(t, "top-right y", y, 5)
}

func TestPointValueToPixelInverted(t *testing.T) {
	_, tr := testTransformer(true)

	x, y := tr.PointValueToPixel(0, -10)
	assertNear(t, "min x", x, 10)
	assertNear(t, "min y", y, 5)

	x, y = tr.PointValueToPixel(9, 30)
	assertNear(t, "max x", x, 190)
	assertNear(t, "max y", y, 85)
}

func TestValueForTouchPointRoundTrip(t *testing.T) {
	vp, tr := testTransformer(false)
	check := func(name string) {
		px, py := tr.PointValueToPixel(3.5, 7)
		x, y := tr.ValueForTouchPoint(px, py)
		assertNear(t, name+" x", x, 3.5)
		assertNear(t, name+" y", y, 7)
	}
	check("unzoomed")
	vp.Zoom(2, 3, 60, 40)
	check("zoomed")
	vp.Translate(-15, 10)
	check("panned")
}

func TestPointValuesToPixelInPlace(t *testing.T) {
	_, tr := testTransformer(false)
	pts := []Vec2{{0, -10}, {9, 30}}
	tr.PointValuesToPixel(pts)
	assertNear(t, "pts[0].X", pts[0].X, 10)
	assertNear(t, "pts[1].Y", pts[1].Y, 5)

	tr.PixelsToValue(pts)
	assertNear(t, "back[1].X", pts[1].X, 9)
	assertNear(t, "back[1].Y", pts[1].Y, 30)
}

func TestRectValueToPixel(t *testing.T) {
	_, tr := testTransformer(false)
	got := tr.RectValueToPixel(Rect{X: 0, Y: -10, Width: 9, Height: 40})
	want := Rect{X: 10, Y: 5, Width: 180, Height: 80}
	assertNear(t, "X", got.X, want.X)
	assertNear(t, "Y", got.Y, want.Y)
	assertNear(t, "Width", got.Width, want.Width)
	assertNear(t, "Height", got.Height, want.Height)
}

func TestPrepareMatrixValuePxZeroDelta(t *testing.T) {
	vp := NewViewPortHandler(100, 100)
	tr := NewTransformer(vp)
	tr.PrepareMatrixValuePx(0, 0, 0, 0)
	tr.PrepareMatrixOffset(false)

	x, y := tr.PointValueToPixel(1, 1)
	assertNear(t, "x", x, 100)
	assertNear(t, "y", y, 0)
}

func TestPixelToValueMatrixIsInverse(t *testing.T) {
	vp, tr := testTransformer(false)
	vp.Zoom(1.5, 1.5, 100, 50)
	m := multiplyAffine(tr.ValueToPixelMatrix(), tr.PixelToValueMatrix())
	assertMatrix(t, "v2p*p2v", m, identityTransform)
}
