package charts

import "image"

// Callout is an image annotation anchored to a point on the chart and drawn
// above everything else.
type Callout struct {
	Image image.Image
	Tag   int

	// Position is the canvas point the callout is drawn at when ValuePoint
	// is unset.
	Position Vec2
	// Offset is added to the draw point.
	Offset Vec2
	// ValuePoint anchors the callout in data space so it follows pan and
	// zoom. Only used when HasValuePoint is set.
	ValuePoint    Vec2
	HasValuePoint bool

	// OffsetFunc, when set, replaces Offset for a given draw point.
	OffsetFunc func(c *Callout, point Vec2) Vec2
	// RefreshFunc, when set, runs from RefreshContent before each redraw.
	RefreshFunc func(c *Callout, e *Entry, h *Highlight)

	rect Rect
}

// NewCallout creates a callout showing img.
func NewCallout(img image.Image) *Callout {
	return &Callout{Image: img}
}

// Size is the image size, or zero without an image.
func (c *Callout) Size() Size {
	if c.Image == nil {
		return Size{}
	}
	b := c.Image.Bounds()
	return Size{float64(b.Dx()), float64(b.Dy())}
}

// Rect returns the rectangle of the last Draw.
func (c *Callout) Rect() Rect { return c.rect }

// OffsetForDrawingAtPos returns the offset to apply when drawing at point.
func (c *Callout) OffsetForDrawingAtPos(point Vec2) Vec2 {
	if c.OffsetFunc != nil {
		return c.OffsetFunc(c, point)
	}
	return c.Offset
}

// Draw blits the image at point plus the offset. It does nothing without
// an image.
func (c *Callout) Draw(s Surface, point Vec2) {
	if c.Image == nil {
		return
	}
	off := c.OffsetForDrawingAtPos(point)
	sz := c.Size()
	c.rect = Rect{point.X + off.X, point.Y + off.Y, sz.Width, sz.Height}
	s.DrawImage(c.Image, c.rect)
}

// RefreshContent lets the callout update itself for the highlighted entry
// before a redraw.
func (c *Callout) RefreshContent(e *Entry, h *Highlight) {
	if c.RefreshFunc != nil {
		c.RefreshFunc(c, e, h)
	}
}
