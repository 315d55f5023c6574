package charts

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// BubbleDataProvider is what the bubble renderer needs from its chart.
type BubbleDataProvider interface {
	BubbleData() *BubbleChartData
	Transformer(axis AxisDependency) PixelTransformer
	// LowestVisibleX and HighestVisibleX bound the x range on screen.
	LowestVisibleX() float64
	HighestVisibleX() float64
	// MaxVisibleCount caps the entries for which values are drawn,
	// multiplied by the current x scale.
	MaxVisibleCount() int
}

// DetailText builds the two-line text shown on a highlighted bubble while
// zoomed in past the data set's threshold.
type DetailText func(e *Entry) string

// DefaultDetailText renders the entry's X as a ratio and Y as a percentage.
func DefaultDetailText(e *Entry) string {
	return fmt.Sprintf("P/E: %.0fx\nGrowth: %.0f%%", e.X, e.Y)
}

// BubbleRenderer draws bubble marks, their value and label text, icons and
// highlight rings.
//
// Missing collaborators are not an error at draw time: every Draw method
// checks Validate first and returns without drawing when it fails.
type BubbleRenderer struct {
	Provider BubbleDataProvider
	ViewPort ViewPort
	Animator Animator

	// Detail overrides DefaultDetailText.
	Detail DetailText

	out     *RenderOutput
	bounds  xBounds
	indices []*Highlight
}

// NewBubbleRenderer creates a renderer over the given collaborators. Any
// of them may be nil; drawing is skipped until all are set.
func NewBubbleRenderer(p BubbleDataProvider, vp ViewPort, a Animator) *BubbleRenderer {
	return &BubbleRenderer{
		Provider: p,
		ViewPort: vp,
		Animator: a,
		out:      NewRenderOutput(),
	}
}

// Validate reports every missing collaborator.
func (r *BubbleRenderer) Validate() error {
	var errs []error
	if r.Provider == nil {
		errs = append(errs, missing("data provider"))
	} else if r.Provider.BubbleData() == nil {
		errs = append(errs, missing("bubble data"))
	}
	if r.ViewPort == nil {
		errs = append(errs, missing("viewport handler"))
	}
	if r.Animator == nil {
		errs = append(errs, missing("animator"))
	}
	return errors.Join(errs...)
}

// Output returns the geometry computed by the last DrawData call.
func (r *BubbleRenderer) Output() *RenderOutput { return r.out }

// DrawData draws the bubbles of every visible data set and refreshes the
// render output table.
func (r *BubbleRenderer) DrawData(s Surface) {
	if r.Validate() != nil {
		return
	}
	r.out.Reset()
	data := r.Provider.BubbleData()
	for i, ds := range data.DataSets() {
		if ds.Visible && ds.EntryCount() > 0 {
			r.drawDataSet(s, data, i, ds)
		}
	}
}

func (r *BubbleRenderer) drawDataSet(s Surface, data *BubbleChartData, dsIndex int, ds *BubbleDataSet) {
	vp := r.ViewPort
	t := r.Provider.Transformer(ds.AxisDependency)
	if t == nil {
		return
	}
	phaseY := r.Animator.PhaseY()
	r.bounds.set(r.Provider, ds, r.Animator.PhaseX())
	ref := ReferenceSize(t, vp)

	s.SaveState()
	defer s.RestoreState()

	for j := r.bounds.min; j <= r.bounds.rng+r.bounds.min; j++ {
		e := ds.EntryForIndex(j)
		if e == nil {
			continue
		}

		px, py := t.PointValueToPixel(e.X, e.Y*phaseY)
		shape := ShapeSize(e.Size, ds.MaxSize(), ref, ds.NormalizeSize, data.sizeMultiplier())
		half := shape / 2

		if !vp.IsInBoundsTop(py+half) || !vp.IsInBoundsBottom(py-half) {
			continue
		}
		if !vp.IsInBoundsLeft(px + half) {
			continue
		}
		// Entries are x-ordered: everything after this one is further right.
		if !vp.IsInBoundsRight(px - half) {
			break
		}

		r.out.put(EntryKey{dsIndex, j}, EntryGeometry{XPx: px - half, YPx: py - half, ShapeSize: shape})

		if e.Icon != nil && ds.DrawIcons {
			continue
		}
		s.SetFillColor(ds.Color(int(e.X)))
		s.FillEllipse(Rect{px - half, py - half, shape, shape})
	}
}

// drawingValuesAllowed reports whether few enough entries are on screen
// for value text to stay legible.
func (r *BubbleRenderer) drawingValuesAllowed(data *BubbleChartData) bool {
	return float64(data.EntryCount()) < float64(r.Provider.MaxVisibleCount())*r.ViewPort.ScaleX()
}

func shouldDrawValues(ds *BubbleDataSet) bool {
	return ds.Visible && (ds.DrawValues || ds.DrawIcons) && ds.EntryCount() > 0
}

// highlightedKeys resolves the highlights passed to the last
// DrawHighlighted call into entry keys.
func (r *BubbleRenderer) highlightedKeys(data *BubbleChartData) map[EntryKey]bool {
	keys := make(map[EntryKey]bool, len(r.indices))
	for _, h := range r.indices {
		ds := data.DataSetByIndex(h.DataSetIndex)
		if ds == nil || !ds.HighlightEnabled {
			continue
		}
		if _, j := ds.EntryForXValue(h.X, h.Y); j >= 0 {
			keys[EntryKey{h.DataSetIndex, j}] = true
		}
	}
	return keys
}

// deferredIcon is a highlighted icon held back so it is drawn above every
// other mark.
type deferredIcon struct {
	e      *Entry
	ds     *BubbleDataSet
	px, py float64
	ref    float64
	zoomed bool
}

// DrawValues draws value text, icons and entry labels. Values fade in with
// the animation phases. A highlighted icon is drawn after all others.
func (r *BubbleRenderer) DrawValues(s Surface) {
	if r.Validate() != nil {
		return
	}
	data := r.Provider.BubbleData()
	if !r.drawingValuesAllowed(data) {
		return
	}
	vp := r.ViewPort

	phaseX := math.Max(0, math.Min(1, r.Animator.PhaseX()))
	phaseY := r.Animator.PhaseY()
	alpha := phaseX
	if phaseX == 1 {
		alpha = phaseY
	}

	highlighted := r.highlightedKeys(data)
	var deferred *deferredIcon

	for i, ds := range data.DataSets() {
		if !shouldDrawValues(ds) || ds.ValueFormatter == nil {
			continue
		}
		t := r.Provider.Transformer(ds.AxisDependency)
		if t == nil {
			continue
		}
		r.bounds.set(r.Provider, ds, r.Animator.PhaseX())
		ref := ReferenceSize(t, vp)
		zoomed := vp.ScaleX() > ds.ZoomThreshold

		for j := r.bounds.min; j <= r.bounds.rng+r.bounds.min; j++ {
			e := ds.EntryForIndex(j)
			if e == nil {
				break
			}
			px, py := t.PointValueToPixel(e.X, e.Y*phaseY)
			if !vp.IsInBoundsLeft(px) || !vp.IsInBoundsY(py) {
				continue
			}

			isHigh := highlighted[EntryKey{i, j}]

			if e.Icon != nil && ds.DrawIcons {
				if isHigh {
					deferred = &deferredIcon{e: e, ds: ds, px: px, py: py, ref: ref, zoomed: zoomed}
				} else {
					r.drawIcon(s, e.Icon, e.Icon, px+ds.IconsOffset.X, py+ds.IconsOffset.Y, ds.IconSizeMultiplier)
				}
			}

			if zoomed && isHigh {
				continue
			}

			if ds.DrawValues {
				valueFont := ds.ValueFont
				y := py - 0.5*fontOrDefault(valueFont).LineHeight()
				if zoomed {
					y -= 15
					valueFont = ds.ZoomedInValueFont
				}
				text := ds.ValueFormatter.StringForValue(e.Size, nil)
				DrawText(s, text, Vec2{px, y}, TextAlignCenter, valueFont, ds.ValueColor(j).WithAlpha(alpha))
				r.drawEntryLabel(s, data, ds, e, isHigh, ref, px, py)
			}
		}
	}

	if d := deferred; d != nil {
		img := d.e.Icon
		if d.e.HighlightedIcon != nil {
			img = d.e.HighlightedIcon
		}
		r.drawIcon(s, img, d.e.Icon, d.px+d.ds.IconsOffset.X, d.py+d.ds.IconsOffset.Y, d.ds.IconSizeMultiplier)
		if d.zoomed || !d.ds.DrawValues {
			r.drawEntryLabel(s, data, d.ds, d.e, true, d.ref, d.px, d.py)
		}
	}
}

// drawIcon draws img centered on (x, y) at the size of base scaled by the
// data set multiplier, or by the zoom factors when zoomed in.
func (r *BubbleRenderer) drawIcon(s Surface, img, base image.Image, x, y, mult float64) {
	sz := iconSize(base, mult, r.ViewPort)
	s.DrawImage(img, Rect{x - sz.Width/2, y - sz.Height/2, sz.Width, sz.Height})
}

func iconSize(icon image.Image, mult float64, vp ViewPort) Size {
	b := icon.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	if vp.ScaleX() > 1 {
		return Size{w * vp.ScaleX() * 1.2, h * vp.ScaleY() * 1.2}
	}
	return Size{w * mult, h * mult}
}

// drawEntryLabel draws the entry's label in one of three regimes chosen by
// the x scale against the data set's zoom threshold.
func (r *BubbleRenderer) drawEntryLabel(s Surface, data *BubbleChartData, ds *BubbleDataSet, e *Entry, highlighted bool, ref, px, py float64) {
	if !e.ShowLabel {
		return
	}

	shape := ShapeSize(e.Size, ds.MaxSize(), ref, ds.NormalizeSize, data.sizeMultiplier())
	half := shape / 2
	if e.Icon != nil {
		half = float64(e.Icon.Bounds().Dy()) / 2 * ds.IconSizeMultiplier
	}

	labelFont := fontOrDefault(e.LabelFont)
	lh := labelFont.LineHeight()
	center := Vec2{0.5, 0.5}
	zoomed := r.ViewPort.ScaleX() > ds.ZoomThreshold

	switch {
	case zoomed && highlighted:
		detail := r.Detail
		if detail == nil {
			detail = DefaultDetailText
		}
		DrawMultilineText(s, detail(e), Vec2{px, py}, center, 0, labelFont, ColorWhite)

	case zoomed:
		y := py + lh - 4
		if e.Multiline {
			y = py + lh + 2
		}
		if w, _ := labelFont.MeasureString(e.Label); w > 100 {
			labelFont = labelFont.Resized(-2.5)
		}
		DrawMultilineText(s, e.Label, Vec2{px, y}, center, 0, labelFont, ColorWhite)

	default:
		modifier := 10.0
		if e.Multiline {
			modifier = 16
		}
		modifier *= ds.IconSizeMultiplier
		c := ds.Color(0)
		if highlighted {
			c = ds.HighlightLabelColor
		}
		DrawMultilineText(s, e.Label, Vec2{px, py + half + modifier}, center, 0, labelFont, c)
	}
}

// DrawHighlighted strokes a darkened ring around each highlighted entry
// and records the drawn position back into the highlight.
func (r *BubbleRenderer) DrawHighlighted(s Surface, highlights []*Highlight) {
	if r.Validate() != nil {
		return
	}
	r.indices = highlights
	data := r.Provider.BubbleData()
	vp := r.ViewPort
	phaseX := r.Animator.PhaseX()
	phaseY := r.Animator.PhaseY()

	s.SaveState()
	defer s.RestoreState()

	for _, h := range highlights {
		h.clearDraw()
		ds := data.DataSetByIndex(h.DataSetIndex)
		if ds == nil || !ds.HighlightEnabled {
			continue
		}
		e, j := ds.EntryForXValue(h.X, h.Y)
		if e == nil || float64(j) >= float64(ds.EntryCount())*phaseX {
			continue
		}
		t := r.Provider.Transformer(ds.AxisDependency)
		if t == nil {
			continue
		}

		ref := ReferenceSize(t, vp)
		px, py := t.PointValueToPixel(e.X, e.Y*phaseY)
		shape := ShapeSize(e.Size, ds.MaxSize(), ref, ds.NormalizeSize, data.sizeMultiplier())
		half := shape / 2

		if !vp.IsInBoundsTop(py+half) || !vp.IsInBoundsBottom(py-half) {
			continue
		}
		if !vp.IsInBoundsLeft(px + half) {
			continue
		}
		if !vp.IsInBoundsRight(px - half) {
			break
		}

		s.SetLineWidth(ds.HighlightCircleWidth)
		s.SetStrokeColor(ds.Color(int(e.X)).ScaleBrightness(0.5))
		s.StrokeEllipse(Rect{px - half, py - half, shape, shape})

		h.SetDraw(px, py)
	}
}

// DrawExtras has nothing to draw for bubble charts.
func (r *BubbleRenderer) DrawExtras(Surface) {}
