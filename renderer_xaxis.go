package charts

import (
	"errors"
	"math"

	"github.com/aclements/go-moremath/scale"
)

// XAxisRendererHorizontalBar renders the category axis of a horizontal
// bar layout: values run vertically, labels sit beside the content rect
// and gridlines and limit lines are horizontal.
//
// As with BubbleRenderer, every render method is a no-op while Validate
// fails.
type XAxisRendererHorizontalBar struct {
	Axis        *XAxis
	ViewPort    ViewPort
	Transformer PixelTransformer
	// Spacing supplies category layout for grid areas. Without it grid
	// areas are skipped.
	Spacing CategorySpacing
}

// NewXAxisRendererHorizontalBar creates an axis renderer.
func NewXAxisRendererHorizontalBar(vp ViewPort, axis *XAxis, t PixelTransformer, spacing CategorySpacing) *XAxisRendererHorizontalBar {
	return &XAxisRendererHorizontalBar{
		Axis:        axis,
		ViewPort:    vp,
		Transformer: t,
		Spacing:     spacing,
	}
}

// Validate reports every missing collaborator.
func (r *XAxisRendererHorizontalBar) Validate() error {
	var errs []error
	if r.Axis == nil {
		errs = append(errs, missing("axis"))
	}
	if r.ViewPort == nil {
		errs = append(errs, missing("viewport handler"))
	}
	if r.Transformer == nil {
		errs = append(errs, missing("transformer"))
	}
	return errors.Join(errs...)
}

// ComputeAxis recomputes the ticks for [min, max]. While zoomed in
// vertically the range is re-derived from the visible content edges.
func (r *XAxisRendererHorizontalBar) ComputeAxis(min, max float64, inverted bool) {
	if r.Validate() != nil {
		return
	}
	vp := r.ViewPort
	if vp.ContentWidth() > 10 && !vp.IsFullyZoomedOutY() {
		_, y1 := r.Transformer.ValueForTouchPoint(vp.ContentLeft(), vp.ContentBottom())
		_, y2 := r.Transformer.ValueForTouchPoint(vp.ContentLeft(), vp.ContentTop())
		if inverted {
			min, max = y2, y1
		} else {
			min, max = y1, y2
		}
	}
	r.ComputeAxisValues(min, max)
}

// ComputeAxisValues fills the axis entries with at most LabelCount nice
// ticks inside [min, max], spaced no closer than Granularity.
func (r *XAxisRendererHorizontalBar) ComputeAxisValues(min, max float64) {
	if r.Axis == nil {
		return
	}
	r.Axis.SetEntries(axisTicks(min, max, r.Axis.LabelCount, r.Axis.Granularity))
}

func axisTicks(min, max float64, count int, granularity float64) []float64 {
	if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) || count <= 0 {
		return nil
	}
	if min > max {
		min, max = max, min
	}
	ticks, _ := scale.Linear{Min: min, Max: max}.Ticks(scale.TickOptions{Max: count})
	ticks = denserTicks(min, max, count, ticks)
	if granularity <= 0 || len(ticks) < 2 || ticks[1]-ticks[0] >= granularity {
		return ticks
	}

	step := granularity
	for math.Floor(max/step)-math.Ceil(min/step)+1 > float64(count) {
		step += granularity
	}
	var out []float64
	for n := math.Ceil(min / step); n*step <= max; n++ {
		out = append(out, n*step)
	}
	return out
}

// denserTicks fills the gap between a 5·10^k step and the next denser
// 10^k level with 2·10^k or 2.5·10^k steps when those still fit count.
func denserTicks(min, max float64, count int, ticks []float64) []float64 {
	if len(ticks) < 2 {
		return ticks
	}
	step := ticks[1] - ticks[0]
	mag := math.Pow(10, math.Floor(math.Log10(step)))
	if math.Abs(step/mag-5) > 1e-6 {
		return ticks
	}
	for _, f := range []float64{0.4, 0.5} {
		if out := ticksAt(min, max, step*f); len(out) <= count && len(out) > len(ticks) {
			return out
		}
	}
	return ticks
}

// ticksAt returns the multiples of step inside [min, max].
func ticksAt(min, max, step float64) []float64 {
	const eps = 1e-9
	var out []float64
	for n := math.Ceil(min/step - eps); n <= math.Floor(max/step+eps); n++ {
		out = append(out, n*step)
	}
	return out
}

// ComputeSize measures the longest label to size the label column,
// including the bounding box of the rotated label.
func (r *XAxisRendererHorizontalBar) ComputeSize() {
	a := r.Axis
	if a == nil {
		return
	}
	w, h := fontOrDefault(a.LabelFont).MeasureString(a.LongestLabel())
	rw, rh := rotatedSize(w, h, deg2rad(a.LabelRotationAngle))

	a.labelWidth = math.Floor(w + a.XOffset*3.5)
	a.labelHeight = h
	a.labelRotatedWidth = math.Round(rw + a.XOffset*3.5)
	a.labelRotatedHeight = math.Round(rh)
}

// rotatedSize returns the bounding box of a w×h rectangle rotated by rad.
func rotatedSize(w, h, rad float64) (float64, float64) {
	sin, cos := math.Sincos(rad)
	return math.Abs(w*cos) + math.Abs(h*sin), math.Abs(w*sin) + math.Abs(h*cos)
}

// RenderAxisLabels draws the tick labels at the configured position.
func (r *XAxisRendererHorizontalBar) RenderAxisLabels(s Surface) {
	if r.Validate() != nil {
		return
	}
	a := r.Axis
	if !a.Enabled || !a.DrawLabels {
		return
	}
	vp := r.ViewPort
	xo := a.XOffset

	switch a.LabelPosition {
	case LabelPositionTop:
		r.DrawLabels(s, vp.ContentRight()+xo, Vec2{0, 0.5})
	case LabelPositionTopInside:
		r.DrawLabels(s, vp.ContentRight()-xo, Vec2{1, 0.5})
	case LabelPositionBottom:
		r.DrawLabels(s, vp.ContentLeft()-xo, Vec2{1, 0.5})
	case LabelPositionBottomInside:
		r.DrawLabels(s, vp.ContentLeft()+xo, Vec2{0, 0.5})
	default:
		r.DrawLabels(s, vp.ContentRight()+xo, Vec2{0, 0.5})
		r.DrawLabels(s, vp.ContentLeft()-xo, Vec2{1, 0.5})
	}
}

// DrawLabels draws every tick label whose projected y is inside the content
// rect at horizontal position pos.
func (r *XAxisRendererHorizontalBar) DrawLabels(s Surface, pos float64, anchor Vec2) {
	if r.Validate() != nil {
		return
	}
	a := r.Axis
	angle := deg2rad(a.LabelRotationAngle)
	centered := a.CenterAxisLabels && len(a.centeredEntries) == len(a.entries)

	for i, v := range a.entries {
		if centered {
			v = a.centeredEntries[i]
		}
		_, y := r.Transformer.PointValueToPixel(0, v)
		if !r.ViewPort.IsInBoundsY(y) {
			continue
		}
		label := a.FormattedLabel(i)
		if label == "" {
			continue
		}
		DrawTextAnchored(s, label, Vec2{pos, y}, anchor, angle, a.LabelFont, a.LabelColor)
	}
}

// GridClippingRect is the content rect grown vertically by the grid line
// width so lines on the edges are not cut in half.
func (r *XAxisRendererHorizontalBar) GridClippingRect() Rect {
	rect := r.ViewPort.ContentRect()
	if r.Axis != nil {
		rect = rect.ExpandY(r.Axis.GridLineWidth)
	}
	return rect
}

// RenderGridLines draws a horizontal gridline at every tick.
func (r *XAxisRendererHorizontalBar) RenderGridLines(s Surface) {
	if r.Validate() != nil {
		return
	}
	a := r.Axis
	if !a.Enabled || !a.DrawGridLines || len(a.entries) == 0 {
		return
	}
	s.SaveState()
	defer s.RestoreState()

	s.ClipRect(r.GridClippingRect())
	s.SetStrokeColor(a.GridColor)
	s.SetLineWidth(a.GridLineWidth)
	s.SetLineDash(a.GridDashPhase, a.GridDashLengths)

	for _, v := range a.entries {
		_, y := r.Transformer.PointValueToPixel(0, v)
		r.DrawGridLine(s, 0, y)
	}
}

// DrawGridLine strokes one gridline across the content rect at y.
func (r *XAxisRendererHorizontalBar) DrawGridLine(s Surface, _, y float64) {
	vp := r.ViewPort
	if vp.IsInBoundsY(y) {
		s.StrokeLine(vp.ContentLeft(), y, vp.ContentRight(), y)
	}
}

// RenderAxisLine draws the axis line on the edge or edges that carry labels.
func (r *XAxisRendererHorizontalBar) RenderAxisLine(s Surface) {
	if r.Validate() != nil {
		return
	}
	a := r.Axis
	if !a.Enabled || !a.DrawAxisLine {
		return
	}
	vp := r.ViewPort

	s.SaveState()
	defer s.RestoreState()

	s.SetStrokeColor(a.AxisLineColor)
	s.SetLineWidth(a.AxisLineWidth)
	s.SetLineDash(a.AxisLineDashPhase, a.AxisLineDashLengths)

	switch a.LabelPosition {
	case LabelPositionTop, LabelPositionTopInside, LabelPositionBothSided:
		s.StrokeLine(vp.ContentRight(), vp.ContentTop(), vp.ContentRight(), vp.ContentBottom())
	}
	switch a.LabelPosition {
	case LabelPositionBottom, LabelPositionBottomInside, LabelPositionBothSided:
		s.StrokeLine(vp.ContentLeft(), vp.ContentTop(), vp.ContentLeft(), vp.ContentBottom())
	}
}

// RenderLimitLines strokes every enabled limit line across the content
// rect and draws its label at the configured corner.
func (r *XAxisRendererHorizontalBar) RenderLimitLines(s Surface) {
	if r.Validate() != nil {
		return
	}
	vp := r.ViewPort
	for _, l := range r.Axis.limitLines {
		if !l.Enabled {
			continue
		}
		r.renderLimitLine(s, vp, l)
	}
}

func (r *XAxisRendererHorizontalBar) renderLimitLine(s Surface, vp ViewPort, l *LimitLine) {
	s.SaveState()
	defer s.RestoreState()

	s.ClipRect(vp.ContentRect().ExpandY(l.LineWidth()))

	_, y := r.Transformer.PointValueToPixel(0, l.Limit)

	s.SetStrokeColor(l.LineColor)
	s.SetLineWidth(l.LineWidth())
	s.SetLineDash(l.DashPhase, l.DashLengths)
	s.StrokeLine(vp.ContentLeft(), y, vp.ContentRight(), y)

	if !l.DrawLabel || l.Label == "" {
		return
	}

	lh := fontOrDefault(l.ValueFont).LineHeight()
	xo := 4 + l.XOffset
	yo := l.LineWidth() + lh + l.YOffset

	var pt Vec2
	align := TextAlignLeft
	switch l.LabelPosition {
	case LimitLabelRightTop:
		pt, align = Vec2{vp.ContentRight() - xo, y - yo}, TextAlignRight
	case LimitLabelRightBottom:
		pt, align = Vec2{vp.ContentRight() - xo, y + yo - lh}, TextAlignRight
	case LimitLabelLeftTop:
		pt = Vec2{vp.ContentLeft() + xo, y - yo}
	default:
		pt = Vec2{vp.ContentLeft() + xo, y + yo - lh}
	}
	DrawText(s, l.Label, pt, align, l.ValueFont, l.ValueTextColor)
}

// RenderGridAreas fills a band for each axis area, spanning from the
// start of category StartX to the start of category EndX and the full
// content height, clipped to the content rect.
func (r *XAxisRendererHorizontalBar) RenderGridAreas(s Surface) {
	if r.Validate() != nil || r.Spacing == nil {
		return
	}
	a := r.Axis
	if !a.DrawGridAreas || !a.Enabled || len(a.areas) == 0 {
		return
	}
	vp := r.ViewPort
	step := r.Spacing.DataSetCount()
	space := r.Spacing.GroupSpace()

	s.SaveState()
	defer s.RestoreState()

	s.ClipRect(vp.ContentRect())
	for _, area := range a.areas {
		x0, _ := r.Transformer.PointValueToPixel(CategoryPosition(int(area.StartX), step, space), 0)
		x1, _ := r.Transformer.PointValueToPixel(CategoryPosition(int(area.EndX), step, space), 0)
		rect := Rect{X: x0, Y: vp.ContentTop(), Width: x1 - x0, Height: vp.ContentHeight()}

		s.SetFillColor(area.Color)
		s.SetStrokeColor(area.Color)
		s.SetLineWidth(1)
		s.FillRect(rect)
		s.StrokeRect(rect)
	}
}

// RenderDiagonalLines strokes every enabled diagonal line between its two
// data points, clipped to the content rect.
func (r *XAxisRendererHorizontalBar) RenderDiagonalLines(s Surface) {
	if r.Validate() != nil || len(r.Axis.diagonalLines) == 0 {
		return
	}
	s.SaveState()
	defer s.RestoreState()

	s.ClipRect(r.ViewPort.ContentRect())
	for _, l := range r.Axis.diagonalLines {
		if !l.Enabled {
			continue
		}
		x0, y0 := r.Transformer.PointValueToPixel(l.StartX, l.StartY)
		x1, y1 := r.Transformer.PointValueToPixel(l.EndX, l.EndY)
		s.SetStrokeColor(l.LineColor)
		s.SetLineWidth(l.LineWidth())
		s.SetLineDash(l.DashPhase, l.DashLengths)
		s.StrokeLine(x0, y0, x1, y1)
	}
}
