package charts

// Highlight selects the entry of one data set nearest (X, Y). The renderer
// writes the pixel position it drew the selection at back into it so the
// host can hit-test against it.
type Highlight struct {
	X, Y         float64
	DataSetIndex int

	drawX, drawY float64
	drawn        bool
}

// NewHighlight creates a Highlight for the given value in data set ds.
func NewHighlight(x, y float64, ds int) *Highlight {
	return &Highlight{X: x, Y: y, DataSetIndex: ds}
}

// SetDraw records the pixel position the highlight was drawn at.
func (h *Highlight) SetDraw(x, y float64) {
	h.drawX, h.drawY = x, y
	h.drawn = true
}

func (h *Highlight) DrawX() float64 { return h.drawX }
func (h *Highlight) DrawY() float64 { return h.drawY }

// Drawn reports whether the last frame drew this highlight.
func (h *Highlight) Drawn() bool { return h.drawn }

// Equal reports whether h and o select the same value.
func (h *Highlight) Equal(o *Highlight) bool {
	if h == nil || o == nil {
		return h == o
	}
	return h.X == o.X && h.Y == o.Y && h.DataSetIndex == o.DataSetIndex
}

func (h *Highlight) clearDraw() { h.drawn = false }
