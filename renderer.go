package charts

import (
	"errors"
	"fmt"
	"math"
)

// ErrMissingCollaborator is wrapped by Validate errors naming a nil
// collaborator. Draw calls on a renderer that fails Validate do nothing.
var ErrMissingCollaborator = errors.New("charts: missing collaborator")

func missing(name string) error {
	return fmt.Errorf("%w: %s", ErrMissingCollaborator, name)
}

// ShapeSize returns the pixel diameter of a bubble. With normalize set the
// size maps to area (square root of size/maxSize, or 1 when maxSize is 0);
// otherwise size scales the reference directly. The result is divided by
// multiplier, which is treated as 1 when zero.
func ShapeSize(size, maxSize, reference float64, normalize bool, multiplier float64) float64 {
	factor := size
	if normalize {
		if maxSize == 0 {
			factor = 1
		} else {
			factor = math.Sqrt(size / maxSize)
		}
	}
	if multiplier == 0 {
		multiplier = 1
	}
	return reference * factor / multiplier
}

// ReferenceSize is the largest bubble that fits: the smaller of the content
// height and the pixel width of one x unit.
func ReferenceSize(t PixelTransformer, vp ViewPort) float64 {
	x0, _ := t.PointValueToPixel(0, 0)
	x1, _ := t.PointValueToPixel(1, 0)
	w := math.Abs(x1 - x0)
	h := math.Abs(vp.ContentBottom() - vp.ContentTop())
	return math.Min(h, w)
}

// xBounds is the window of entry indices visible on screen, reduced by
// the x animation phase.
type xBounds struct {
	min, max, rng int
}

func (b *xBounds) set(p BubbleDataProvider, ds *BubbleDataSet, phaseX float64) {
	phaseX = math.Max(0, math.Min(1, phaseX))
	low, high := p.LowestVisibleX(), p.HighestVisibleX()

	lo := ds.EntryIndex(low, math.NaN(), RoundDown)
	hi := ds.EntryIndex(high, math.NaN(), RoundUp)
	if lo < 0 || hi < 0 {
		b.min, b.max, b.rng = 0, -1, -1
		return
	}
	b.min = lo
	b.max = hi
	b.rng = int(float64(hi-lo) * phaseX)
}

// EntryKey identifies an entry by data set and entry index.
type EntryKey struct {
	DataSet, Entry int
}

// EntryGeometry is the pixel geometry computed for one entry in a frame.
// XPx and YPx are the top-left corner of the shape's bounding square.
type EntryGeometry struct {
	XPx, YPx  float64
	ShapeSize float64
}

// Center returns the center of the shape.
func (g EntryGeometry) Center() Vec2 {
	return Vec2{g.XPx + g.ShapeSize/2, g.YPx + g.ShapeSize/2}
}

// RenderOutput is the per-frame table of computed entry geometry. It is
// cleared at the start of each DrawData pass.
type RenderOutput struct {
	rows  map[EntryKey]EntryGeometry
	order []EntryKey
}

// NewRenderOutput returns an empty table.
func NewRenderOutput() *RenderOutput {
	return &RenderOutput{rows: make(map[EntryKey]EntryGeometry)}
}

// Reset empties the table, keeping its storage.
func (o *RenderOutput) Reset() {
	clear(o.rows)
	o.order = o.order[:0]
}

func (o *RenderOutput) put(k EntryKey, g EntryGeometry) {
	if _, ok := o.rows[k]; !ok {
		o.order = append(o.order, k)
	}
	o.rows[k] = g
}

// Lookup returns the geometry recorded for entry i of data set ds.
func (o *RenderOutput) Lookup(ds, i int) (EntryGeometry, bool) {
	g, ok := o.rows[EntryKey{ds, i}]
	return g, ok
}

// Len returns the number of recorded entries.
func (o *RenderOutput) Len() int { return len(o.order) }

// Each calls fn for every recorded entry in draw order.
func (o *RenderOutput) Each(fn func(EntryKey, EntryGeometry)) {
	for _, k := range o.order {
		fn(k, o.rows[k])
	}
}

// HitTest returns the topmost entry whose circle contains (x, y).
func (o *RenderOutput) HitTest(x, y float64) (EntryKey, bool) {
	for i := len(o.order) - 1; i >= 0; i-- {
		k := o.order[i]
		g := o.rows[k]
		c := g.Center()
		r := g.ShapeSize / 2
		if math.Hypot(x-c.X, y-c.Y) <= r {
			return k, true
		}
	}
	return EntryKey{}, false
}
