package charts

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ≈ 0).
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

func translateAffine(tx, ty float64) [6]float64 {
	return [6]float64{1, 0, 0, 1, tx, ty}
}

func scaleAffine(sx, sy float64) [6]float64 {
	return [6]float64{sx, 0, 0, sy, 0, 0}
}

func rotateAffine(rad float64) [6]float64 {
	sin, cos := math.Sincos(rad)
	return [6]float64{cos, sin, -sin, cos, 0, 0}
}

// PixelTransformer maps data values to pixels and back.
type PixelTransformer interface {
	PointValueToPixel(x, y float64) (px, py float64)
	ValueForTouchPoint(px, py float64) (x, y float64)
}

// Transformer converts data-space values into pixel space for one axis
// dependency. The pixel matrix is Offset * Touch * Value, where Touch is
// the zoom/pan matrix owned by the ViewPortHandler.
type Transformer struct {
	vp *ViewPortHandler

	matrixValueToPx [6]float64
	matrixOffset    [6]float64
}

// NewTransformer creates a Transformer bound to vp.
func NewTransformer(vp *ViewPortHandler) *Transformer {
	return &Transformer{
		vp:              vp,
		matrixValueToPx: identityTransform,
		matrixOffset:    identityTransform,
	}
}

// PrepareMatrixValuePx builds the value matrix: translate by (-xChartMin,
// -yChartMin), then scale so deltaX spans the content width and deltaY the
// content height, flipping y. Zero deltas are treated as 1.
func (t *Transformer) PrepareMatrixValuePx(xChartMin, deltaX, deltaY, yChartMin float64) {
	if deltaX == 0 || math.IsNaN(deltaX) || math.IsInf(deltaX, 0) {
		deltaX = 1
	}
	if deltaY == 0 || math.IsNaN(deltaY) || math.IsInf(deltaY, 0) {
		deltaY = 1
	}
	sx := t.vp.ContentWidth() / deltaX
	sy := t.vp.ContentHeight() / deltaY
	t.matrixValueToPx = multiplyAffine(scaleAffine(sx, -sy), translateAffine(-xChartMin, -yChartMin))
}

// PrepareMatrixOffset builds the offset matrix that places the value origin
// at the bottom-left content corner, or the top-left when inverted.
func (t *Transformer) PrepareMatrixOffset(inverted bool) {
	if !inverted {
		t.matrixOffset = translateAffine(t.vp.OffsetLeft(), t.vp.ChartHeight()-t.vp.OffsetBottom())
		return
	}
	t.matrixOffset = multiplyAffine(scaleAffine(1, -1), translateAffine(t.vp.OffsetLeft(), -t.vp.OffsetTop()))
}

// ValueToPixelMatrix returns the composite value-to-pixel matrix.
func (t *Transformer) ValueToPixelMatrix() [6]float64 {
	return multiplyAffine(t.matrixOffset, multiplyAffine(t.vp.TouchMatrix(), t.matrixValueToPx))
}

// PixelToValueMatrix returns the inverse of ValueToPixelMatrix.
func (t *Transformer) PixelToValueMatrix() [6]float64 {
	return invertAffine(t.ValueToPixelMatrix())
}

// PointValueToPixel transforms a data point into pixel coordinates.
func (t *Transformer) PointValueToPixel(x, y float64) (px, py float64) {
	return transformPoint(t.ValueToPixelMatrix(), x, y)
}

// PointValuesToPixel transforms pts in place.
func (t *Transformer) PointValuesToPixel(pts []Vec2) {
	m := t.ValueToPixelMatrix()
	for i := range pts {
		pts[i].X, pts[i].Y = transformPoint(m, pts[i].X, pts[i].Y)
	}
}

// RectValueToPixel transforms a data-space rect (X,Y is the lower-left
// value corner) into a pixel rect.
func (t *Transformer) RectValueToPixel(r Rect) Rect {
	m := t.ValueToPixelMatrix()
	x0, y0 := transformPoint(m, r.X, r.Y)
	x1, y1 := transformPoint(m, r.X+r.Width, r.Y+r.Height)
	return Rect{
		X:      math.Min(x0, x1),
		Y:      math.Min(y0, y1),
		Width:  math.Abs(x1 - x0),
		Height: math.Abs(y1 - y0),
	}
}

// ValueForTouchPoint transforms a pixel position into data values.
func (t *Transformer) ValueForTouchPoint(px, py float64) (x, y float64) {
	return transformPoint(t.PixelToValueMatrix(), px, py)
}

// PixelsToValue transforms pts from pixel space into data space in place.
func (t *Transformer) PixelsToValue(pts []Vec2) {
	m := t.PixelToValueMatrix()
	for i := range pts {
		pts[i].X, pts[i].Y = transformPoint(m, pts[i].X, pts[i].Y)
	}
}
