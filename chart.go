package charts

import (
	"math"
	"time"

	"github.com/tanema/gween/ease"
)

// Chart wires the viewport, transformers, animator, data, axis, renderers,
// highlights and callouts of one bubble chart together and draws them in
// order.
type Chart struct {
	vp       *ViewPortHandler
	left     *Transformer
	right    *Transformer
	animator *ChartAnimator

	data  *BubbleChartData
	xAxis *XAxis

	bubbles *BubbleRenderer
	axis    *XAxisRendererHorizontalBar

	highlights []*Highlight
	callouts   []*Callout

	maxVisibleCount int
	// Inverted flips the value axis so values grow downward.
	Inverted bool
	// MinOffset is the padding around the content rect.
	MinOffset float64
	// Background fills the whole chart before drawing when its alpha is
	// non-zero.
	Background Color
	// Debug logs per-frame stats to stderr.
	Debug bool

	// OnSelect is called from HighlightAt with the selected entry, or with
	// nils when the selection is cleared.
	OnSelect func(e *Entry, h *Highlight)

	xMin, xMax, yMin, yMax float64
	warned                 bool
}

// NewChart creates an empty chart of the given pixel size.
func NewChart(width, height float64) *Chart {
	vp := NewViewPortHandler(width, height)
	c := &Chart{
		vp:              vp,
		left:            NewTransformer(vp),
		right:           NewTransformer(vp),
		animator:        NewChartAnimator(),
		xAxis:           NewXAxis(),
		maxVisibleCount: 100,
		MinOffset:       15,
	}
	c.bubbles = NewBubbleRenderer(c, vp, c.animator)
	c.axis = NewXAxisRendererHorizontalBar(vp, c.xAxis, c.left, nil)
	return c
}

// ViewPortHandler returns the chart's viewport.
func (c *Chart) ViewPortHandler() *ViewPortHandler { return c.vp }

// Animator returns the chart's animator.
func (c *Chart) Animator() *ChartAnimator { return c.animator }

// XAxis returns the category axis configuration.
func (c *Chart) XAxis() *XAxis { return c.xAxis }

// Renderer returns the bubble renderer.
func (c *Chart) Renderer() *BubbleRenderer { return c.bubbles }

// AxisRenderer returns the axis renderer.
func (c *Chart) AxisRenderer() *XAxisRendererHorizontalBar { return c.axis }

// BubbleData implements BubbleDataProvider.
func (c *Chart) BubbleData() *BubbleChartData { return c.data }

// Transformer implements BubbleDataProvider.
func (c *Chart) Transformer(axis AxisDependency) PixelTransformer {
	if axis == AxisRight {
		return c.right
	}
	return c.left
}

// LowestVisibleX implements BubbleDataProvider.
func (c *Chart) LowestVisibleX() float64 {
	x, _ := c.left.ValueForTouchPoint(c.vp.ContentLeft(), c.vp.ContentBottom())
	return math.Max(c.xMin, x)
}

// HighestVisibleX implements BubbleDataProvider.
func (c *Chart) HighestVisibleX() float64 {
	x, _ := c.left.ValueForTouchPoint(c.vp.ContentRight(), c.vp.ContentBottom())
	return math.Min(c.xMax, x)
}

// MaxVisibleCount implements BubbleDataProvider.
func (c *Chart) MaxVisibleCount() int { return c.maxVisibleCount }

// SetMaxVisibleCount caps the entries that get value text, scaled by zoom.
func (c *Chart) SetMaxVisibleCount(n int) { c.maxVisibleCount = n }

// SetData installs data and recomputes the layout.
func (c *Chart) SetData(d *BubbleChartData) {
	c.data = d
	c.axis.Spacing = d
	c.highlights = nil
	c.NotifyDataSetChanged()
}

// Data returns the chart data.
func (c *Chart) Data() *BubbleChartData { return c.data }

// Resize changes the chart size and recomputes the layout.
func (c *Chart) Resize(width, height float64) {
	c.vp.SetChartDimens(width, height)
	c.NotifyDataSetChanged()
}

// NotifyDataSetChanged recomputes ranges, axis ticks, offsets and matrices.
// Call it after modifying data or axis configuration.
func (c *Chart) NotifyDataSetChanged() {
	c.bubbles.Output().Reset()
	if c.data == nil {
		return
	}
	c.calcMinMax()
	c.axis.ComputeAxisValues(c.yMin, c.yMax)
	c.axis.ComputeSize()
	c.calculateOffsets()
	c.prepareMatrices()
}

// calcMinMax pads x by half a category and y by a tenth of its range so
// edge bubbles are not cut off.
func (c *Chart) calcMinMax() {
	xMin, xMax, yMin, yMax := c.data.Bounds()
	c.xMin, c.xMax = xMin-0.5, xMax+0.5
	pad := (yMax - yMin) * 0.1
	if pad == 0 {
		pad = 1
	}
	c.yMin, c.yMax = yMin-pad, yMax+pad
}

func (c *Chart) calculateOffsets() {
	left, right := c.MinOffset, c.MinOffset
	a := c.xAxis
	if a.Enabled && a.DrawLabels {
		w := a.LabelRotatedWidth()
		switch a.LabelPosition {
		case LabelPositionBottom:
			left += w
		case LabelPositionTop:
			right += w
		case LabelPositionBothSided:
			left += w
			right += w
		}
	}
	c.vp.RestrainViewPort(left, c.MinOffset, right, c.MinOffset)
}

func (c *Chart) prepareMatrices() {
	c.vp.SetInverted(c.Inverted)
	for _, t := range []*Transformer{c.left, c.right} {
		t.PrepareMatrixValuePx(c.xMin, c.xMax-c.xMin, c.yMax-c.yMin, c.yMin)
		t.PrepareMatrixOffset(c.Inverted)
	}
}

// Draw renders the whole chart onto s.
func (c *Chart) Draw(s Surface) {
	start := time.Now()
	var stats *statsSurface
	if c.Debug {
		stats = &statsSurface{Surface: s}
		s = stats
	}
	if err := c.bubbles.Validate(); err != nil {
		c.warn(err)
		return
	}

	if c.Background.A > 0 {
		s.SetFillColor(c.Background)
		s.FillRect(Rect{0, 0, c.vp.ChartWidth(), c.vp.ChartHeight()})
	}

	c.axis.ComputeAxis(c.yMin, c.yMax, c.Inverted)

	c.axis.RenderGridAreas(s)
	c.axis.RenderGridLines(s)
	c.axis.RenderAxisLine(s)
	if c.xAxis.DrawLimitLinesBehindData {
		c.axis.RenderLimitLines(s)
	}

	s.SaveState()
	s.ClipRect(c.vp.ContentRect())
	c.bubbles.DrawData(s)
	c.axis.RenderDiagonalLines(s)
	c.bubbles.DrawHighlighted(s, c.highlights)
	s.RestoreState()

	c.bubbles.DrawExtras(s)
	c.bubbles.DrawValues(s)
	c.axis.RenderAxisLabels(s)
	if !c.xAxis.DrawLimitLinesBehindData {
		c.axis.RenderLimitLines(s)
	}
	c.drawCallouts(s)

	if stats != nil {
		c.debugLog(frameStats{
			drawTime:   time.Since(start),
			marks:      c.bubbles.Output().Len(),
			primitives: stats.primitives,
			highlights: len(c.highlights),
			callouts:   len(c.callouts),
		})
	}
}

func (c *Chart) drawCallouts(s Surface) {
	if len(c.callouts) == 0 {
		return
	}
	var e *Entry
	var h *Highlight
	if len(c.highlights) > 0 {
		h = c.highlights[0]
		e, _ = c.data.EntryForHighlight(h)
	}
	for _, co := range c.callouts {
		if e != nil {
			co.RefreshContent(e, h)
		}
		pt := co.Position
		if co.HasValuePoint {
			pt.X, pt.Y = c.left.PointValueToPixel(co.ValuePoint.X, co.ValuePoint.Y)
		}
		co.Draw(s, pt)
	}
}

// AddCallout adds an overlay callout.
func (c *Chart) AddCallout(co *Callout) { c.callouts = append(c.callouts, co) }

// RemoveCallout removes co if present.
func (c *Chart) RemoveCallout(co *Callout) {
	for i, x := range c.callouts {
		if x == co {
			c.callouts = append(c.callouts[:i], c.callouts[i+1:]...)
			return
		}
	}
}

// Callouts returns the overlay callouts.
func (c *Chart) Callouts() []*Callout { return c.callouts }

// Highlights returns the current selection.
func (c *Chart) Highlights() []*Highlight { return c.highlights }

// HighlightValue selects the entry of data set ds nearest (x, y).
func (c *Chart) HighlightValue(x, y float64, ds int) *Highlight {
	h := NewHighlight(x, y, ds)
	c.highlights = []*Highlight{h}
	return h
}

// ClearHighlights removes the selection.
func (c *Chart) ClearHighlights() { c.highlights = nil }

// HighlightAt selects the bubble under the pixel (px, py) as drawn in the
// last frame. Tapping empty space clears the selection.
func (c *Chart) HighlightAt(px, py float64) *Highlight {
	var e *Entry
	k, ok := c.bubbles.Output().HitTest(px, py)
	if ok && c.data != nil {
		if ds := c.data.DataSetByIndex(k.DataSet); ds != nil {
			e = ds.EntryForIndex(k.Entry)
		}
	}
	if e == nil {
		c.ClearHighlights()
		if c.OnSelect != nil {
			c.OnSelect(nil, nil)
		}
		return nil
	}
	h := c.HighlightValue(e.X, e.Y, k.DataSet)
	if c.OnSelect != nil {
		c.OnSelect(e, h)
	}
	return h
}

// Zoom scales the view by (sx, sy) around the pixel (px, py).
func (c *Chart) Zoom(sx, sy, px, py float64) { c.vp.Zoom(sx, sy, px, py) }

// ZoomTo animates to the absolute scale (sx, sy) around the content center.
func (c *Chart) ZoomTo(sx, sy float64, duration float32) {
	center := c.vp.ContentCenter()
	c.vp.ZoomTo(sx, sy, center.X, center.Y, duration, ease.OutCubic)
}

// Pan moves the view by (dx, dy) pixels.
func (c *Chart) Pan(dx, dy float64) { c.vp.Translate(dx, dy) }

// ResetZoom returns to the unzoomed view.
func (c *Chart) ResetZoom() { c.vp.ResetZoom() }

// AnimateXY starts the entrance animation.
func (c *Chart) AnimateXY(durationX, durationY float32) {
	c.animator.AnimateXY(durationX, durationY, ease.Linear, ease.OutQuad)
}

// Update advances animations by dt seconds and reports whether a redraw is
// needed.
func (c *Chart) Update(dt float32) bool {
	a := c.animator.Update(dt)
	z := c.vp.Update(dt)
	return a || z
}
