package charts

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ViewPort is the part of the viewport handler renderers depend on: the
// content rect, bounds predicates and current zoom factors.
type ViewPort interface {
	ContentRect() Rect
	ContentLeft() float64
	ContentRight() float64
	ContentTop() float64
	ContentBottom() float64
	ContentWidth() float64
	ContentHeight() float64
	ScaleX() float64
	ScaleY() float64
	IsInBoundsX(x float64) bool
	IsInBoundsY(y float64) bool
	IsInBoundsLeft(x float64) bool
	IsInBoundsRight(x float64) bool
	IsInBoundsTop(y float64) bool
	IsInBoundsBottom(y float64) bool
	IsFullyZoomedOutY() bool
}

// zoomAnim holds active zoom tweens for both scale factors.
type zoomAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
	cx, cy float64
}

// ViewPortHandler owns the chart dimensions, the content rect inside them
// and the touch matrix that applies zoom and pan. The touch matrix works in
// content space with the origin at the bottom-left content corner.
type ViewPortHandler struct {
	chartWidth, chartHeight float64

	offsetLeft, offsetTop, offsetRight, offsetBottom float64

	// touch is [scaleX, 0, 0, scaleY, transX, transY].
	touch [6]float64

	minScaleX, maxScaleX float64
	minScaleY, maxScaleY float64

	// TransOffsetX and TransOffsetY let content be dragged past its edges.
	TransOffsetX, TransOffsetY float64

	zoomTween *zoomAnim
	inverted  bool
}

// NewViewPortHandler creates a handler with no zoom and no content offsets.
func NewViewPortHandler(width, height float64) *ViewPortHandler {
	vp := &ViewPortHandler{
		touch:     identityTransform,
		minScaleX: 1,
		maxScaleX: math.MaxFloat64,
		minScaleY: 1,
		maxScaleY: math.MaxFloat64,
	}
	vp.SetChartDimens(width, height)
	return vp
}

// SetChartDimens sets the full chart size, keeping the current offsets.
func (vp *ViewPortHandler) SetChartDimens(width, height float64) {
	vp.chartWidth = width
	vp.chartHeight = height
}

// RestrainViewPort sets the space between the chart edges and the content rect.
func (vp *ViewPortHandler) RestrainViewPort(left, top, right, bottom float64) {
	vp.offsetLeft = left
	vp.offsetTop = top
	vp.offsetRight = right
	vp.offsetBottom = bottom
}

// HasChartDimens reports whether the chart has a usable size.
func (vp *ViewPortHandler) HasChartDimens() bool {
	return vp.chartWidth > 0 && vp.chartHeight > 0
}

func (vp *ViewPortHandler) ChartWidth() float64   { return vp.chartWidth }
func (vp *ViewPortHandler) ChartHeight() float64  { return vp.chartHeight }
func (vp *ViewPortHandler) OffsetLeft() float64   { return vp.offsetLeft }
func (vp *ViewPortHandler) OffsetTop() float64    { return vp.offsetTop }
func (vp *ViewPortHandler) OffsetRight() float64  { return vp.offsetRight }
func (vp *ViewPortHandler) OffsetBottom() float64 { return vp.offsetBottom }

// ContentRect returns the area inside the offsets where data is drawn.
func (vp *ViewPortHandler) ContentRect() Rect {
	return Rect{
		X:      vp.offsetLeft,
		Y:      vp.offsetTop,
		Width:  vp.ContentWidth(),
		Height: vp.ContentHeight(),
	}
}

func (vp *ViewPortHandler) ContentLeft() float64   { return vp.offsetLeft }
func (vp *ViewPortHandler) ContentRight() float64  { return vp.chartWidth - vp.offsetRight }
func (vp *ViewPortHandler) ContentTop() float64    { return vp.offsetTop }
func (vp *ViewPortHandler) ContentBottom() float64 { return vp.chartHeight - vp.offsetBottom }

func (vp *ViewPortHandler) ContentWidth() float64 {
	return math.Max(0, vp.chartWidth-vp.offsetLeft-vp.offsetRight)
}

func (vp *ViewPortHandler) ContentHeight() float64 {
	return math.Max(0, vp.chartHeight-vp.offsetTop-vp.offsetBottom)
}

// ContentCenter returns the midpoint of the content rect.
func (vp *ViewPortHandler) ContentCenter() Vec2 {
	return vp.ContentRect().Center()
}

// TouchMatrix returns the current zoom/pan matrix.
func (vp *ViewPortHandler) TouchMatrix() [6]float64 { return vp.touch }

func (vp *ViewPortHandler) ScaleX() float64 { return vp.touch[0] }
func (vp *ViewPortHandler) ScaleY() float64 { return vp.touch[3] }
func (vp *ViewPortHandler) TransX() float64 { return vp.touch[4] }
func (vp *ViewPortHandler) TransY() float64 { return vp.touch[5] }

// SetMinMaxScaleX limits horizontal zoom. A minimum below 1 is raised to 1.
func (vp *ViewPortHandler) SetMinMaxScaleX(lo, hi float64) {
	vp.minScaleX = math.Max(1, lo)
	vp.maxScaleX = math.Max(vp.minScaleX, hi)
	vp.Refresh(vp.touch)
}

// SetMinMaxScaleY limits vertical zoom. A minimum below 1 is raised to 1.
func (vp *ViewPortHandler) SetMinMaxScaleY(lo, hi float64) {
	vp.minScaleY = math.Max(1, lo)
	vp.maxScaleY = math.Max(vp.minScaleY, hi)
	vp.Refresh(vp.touch)
}

// SetInverted mirrors pixel y when mapping into touch space. It must match
// the flag the transformers' offset matrices were prepared with.
func (vp *ViewPortHandler) SetInverted(inverted bool) { vp.inverted = inverted }

// toTouchSpace converts a pixel position into the space the touch matrix
// operates in.
func (vp *ViewPortHandler) toTouchSpace(px, py float64) (float64, float64) {
	if vp.inverted {
		return px - vp.offsetLeft, vp.offsetTop - py
	}
	return px - vp.offsetLeft, py - (vp.chartHeight - vp.offsetBottom)
}

// Zoom multiplies the current scale by (sx, sy) around the pixel (px, py).
func (vp *ViewPortHandler) Zoom(sx, sy, px, py float64) {
	cx, cy := vp.toTouchSpace(px, py)
	m := multiplyAffine(translateAffine(-cx, -cy), vp.touch)
	m = multiplyAffine(scaleAffine(sx, sy), m)
	m = multiplyAffine(translateAffine(cx, cy), m)
	vp.Refresh(m)
}

// Translate pans the content by (dx, dy) pixels.
func (vp *ViewPortHandler) Translate(dx, dy float64) {
	if vp.inverted {
		dy = -dy
	}
	vp.Refresh(multiplyAffine(translateAffine(dx, dy), vp.touch))
}

// ResetZoom restores the identity touch matrix.
func (vp *ViewPortHandler) ResetZoom() {
	vp.zoomTween = nil
	vp.Refresh(identityTransform)
}

// Refresh installs m as the touch matrix after clamping its scale to the
// configured limits and its translation so content covers the viewport.
func (vp *ViewPortHandler) Refresh(m [6]float64) [6]float64 {
	sx := clamp(m[0], vp.minScaleX, vp.maxScaleX)
	sy := clamp(m[3], vp.minScaleY, vp.maxScaleY)

	w := vp.ContentWidth()
	h := vp.ContentHeight()

	maxTransX := -w * (sx - 1)
	tx := math.Min(math.Max(m[4], maxTransX-vp.TransOffsetX), vp.TransOffsetX)

	maxTransY := h * (sy - 1)
	ty := math.Max(math.Min(m[5], maxTransY+vp.TransOffsetY), -vp.TransOffsetY)

	vp.touch = [6]float64{sx, 0, 0, sy, tx, ty}
	return vp.touch
}

// ZoomTo animates the scale factors to (sx, sy) around the pixel (px, py)
// over duration seconds. Call Update each frame to advance it.
func (vp *ViewPortHandler) ZoomTo(sx, sy, px, py float64, duration float32, easeFn ease.TweenFunc) {
	if easeFn == nil {
		easeFn = ease.OutQuad
	}
	vp.zoomTween = &zoomAnim{
		tweenX: gween.New(float32(vp.ScaleX()), float32(sx), duration, easeFn),
		tweenY: gween.New(float32(vp.ScaleY()), float32(sy), duration, easeFn),
		cx:     px,
		cy:     py,
	}
}

// Zooming reports whether an animated zoom is in progress.
func (vp *ViewPortHandler) Zooming() bool { return vp.zoomTween != nil }

// Update advances an animated zoom by dt seconds. Reports whether the touch
// matrix changed.
func (vp *ViewPortHandler) Update(dt float32) bool {
	z := vp.zoomTween
	if z == nil {
		return false
	}
	tsx, tsy := vp.ScaleX(), vp.ScaleY()
	if !z.doneX {
		val, done := z.tweenX.Update(dt)
		tsx = float64(val)
		z.doneX = done
	}
	if !z.doneY {
		val, done := z.tweenY.Update(dt)
		tsy = float64(val)
		z.doneY = done
	}
	vp.Zoom(tsx/vp.ScaleX(), tsy/vp.ScaleY(), z.cx, z.cy)
	if z.doneX && z.doneY {
		vp.zoomTween = nil
	}
	return true
}

func (vp *ViewPortHandler) IsInBoundsTop(y float64) bool {
	return vp.ContentTop() <= y
}

func (vp *ViewPortHandler) IsInBoundsBottom(y float64) bool {
	y = math.Trunc(y*100) / 100
	return vp.ContentBottom() >= y
}

func (vp *ViewPortHandler) IsInBoundsLeft(x float64) bool {
	return vp.ContentLeft() <= x+1
}

func (vp *ViewPortHandler) IsInBoundsRight(x float64) bool {
	x = math.Trunc(x*100) / 100
	return vp.ContentRight() >= x-1
}

func (vp *ViewPortHandler) IsInBoundsX(x float64) bool {
	return vp.IsInBoundsLeft(x) && vp.IsInBoundsRight(x)
}

func (vp *ViewPortHandler) IsInBoundsY(y float64) bool {
	return vp.IsInBoundsTop(y) && vp.IsInBoundsBottom(y)
}

// IsInBounds reports whether the pixel lies inside the content rect.
func (vp *ViewPortHandler) IsInBounds(x, y float64) bool {
	return vp.IsInBoundsX(x) && vp.IsInBoundsY(y)
}

func (vp *ViewPortHandler) IsFullyZoomedOutX() bool {
	return !(vp.ScaleX() > vp.minScaleX || vp.minScaleX > 1)
}

func (vp *ViewPortHandler) IsFullyZoomedOutY() bool {
	return !(vp.ScaleY() > vp.minScaleY || vp.minScaleY > 1)
}

func (vp *ViewPortHandler) IsFullyZoomedOut() bool {
	return vp.IsFullyZoomedOutX() && vp.IsFullyZoomedOutY()
}
