package charts

import (
	"image"
	"math"
	"sort"
)

// Entry is one bubble: a category position X, a value Y and a Size that
// drives the mark's area. Renderers never modify entries; computed pixel
// geometry lives in RenderOutput.
type Entry struct {
	X, Y, Size float64

	// Icon replaces the filled circle when the data set draws icons.
	Icon image.Image
	// HighlightedIcon is drawn instead of Icon while the entry is selected.
	HighlightedIcon image.Image

	Label     string
	LabelFont Font
	ShowLabel bool
	Multiline bool

	// Data is free for callers to attach their own payload.
	Data any
}

// BubbleDataSet is an x-ordered series of entries sharing one style.
type BubbleDataSet struct {
	Label   string
	entries []Entry

	// Colors are indexed per entry and wrap around.
	Colors []Color
	// ValueColors color the value text per entry and wrap around.
	ValueColors []Color

	ValueFont         Font
	ZoomedInValueFont Font
	ValueFormatter    ValueFormatter

	NormalizeSize bool
	// ZoomThreshold is the x scale above which the zoomed-in label regime
	// applies.
	ZoomThreshold float64

	HighlightEnabled     bool
	HighlightCircleWidth float64
	HighlightLabelColor  Color

	IconsOffset        Vec2
	IconSizeMultiplier float64

	DrawIcons      bool
	DrawValues     bool
	Visible        bool
	AxisDependency AxisDependency

	xMin, xMax, yMin, yMax float64
	maxSize                float64
}

// NewBubbleDataSet creates a data set over entries, sorting them by X.
func NewBubbleDataSet(label string, entries []Entry) *BubbleDataSet {
	ds := &BubbleDataSet{
		Label:                label,
		entries:              append([]Entry(nil), entries...),
		Colors:               []Color{RGB255(140, 234, 255)},
		ValueColors:          []Color{ColorBlack},
		ValueFont:            DefaultFont(),
		ZoomedInValueFont:    DefaultFont(),
		ValueFormatter:       DefaultValueFormatter{Decimals: 2},
		NormalizeSize:        true,
		ZoomThreshold:        2,
		HighlightEnabled:     true,
		HighlightCircleWidth: 2.5,
		HighlightLabelColor:  ColorBlack,
		IconSizeMultiplier:   1,
		DrawIcons:            true,
		DrawValues:           true,
		Visible:              true,
	}
	sort.SliceStable(ds.entries, func(i, j int) bool { return ds.entries[i].X < ds.entries[j].X })
	ds.calcMinMax()
	return ds
}

func (ds *BubbleDataSet) calcMinMax() {
	ds.xMin, ds.yMin = math.Inf(1), math.Inf(1)
	ds.xMax, ds.yMax = math.Inf(-1), math.Inf(-1)
	ds.maxSize = 0
	for i := range ds.entries {
		ds.include(&ds.entries[i])
	}
}

func (ds *BubbleDataSet) include(e *Entry) {
	ds.xMin = math.Min(ds.xMin, e.X)
	ds.xMax = math.Max(ds.xMax, e.X)
	ds.yMin = math.Min(ds.yMin, e.Y)
	ds.yMax = math.Max(ds.yMax, e.Y)
	ds.maxSize = math.Max(ds.maxSize, e.Size)
}

// AddEntry inserts e keeping the entries ordered by X.
func (ds *BubbleDataSet) AddEntry(e Entry) {
	i := sort.Search(len(ds.entries), func(i int) bool { return ds.entries[i].X > e.X })
	ds.entries = append(ds.entries, Entry{})
	copy(ds.entries[i+1:], ds.entries[i:])
	ds.entries[i] = e
	ds.include(&ds.entries[i])
}

// RemoveEntry deletes the entry at index i. Out-of-range indices are ignored.
func (ds *BubbleDataSet) RemoveEntry(i int) {
	if i < 0 || i >= len(ds.entries) {
		return
	}
	ds.entries = append(ds.entries[:i], ds.entries[i+1:]...)
	ds.calcMinMax()
}

// EntryCount returns the number of entries.
func (ds *BubbleDataSet) EntryCount() int { return len(ds.entries) }

// EntryForIndex returns the entry at i, or nil when out of range.
func (ds *BubbleDataSet) EntryForIndex(i int) *Entry {
	if i < 0 || i >= len(ds.entries) {
		return nil
	}
	return &ds.entries[i]
}

// MaxSize is the largest entry size in the set.
func (ds *BubbleDataSet) MaxSize() float64 { return ds.maxSize }

func (ds *BubbleDataSet) XMin() float64 { return ds.xMin }
func (ds *BubbleDataSet) XMax() float64 { return ds.xMax }
func (ds *BubbleDataSet) YMin() float64 { return ds.yMin }
func (ds *BubbleDataSet) YMax() float64 { return ds.yMax }

// Color returns the mark color for entry index i.
func (ds *BubbleDataSet) Color(i int) Color {
	return pickColor(ds.Colors, i)
}

// ValueColor returns the value text color for entry index i.
func (ds *BubbleDataSet) ValueColor(i int) Color {
	return pickColor(ds.ValueColors, i)
}

func pickColor(cs []Color, i int) Color {
	if len(cs) == 0 {
		return ColorBlack
	}
	if i < 0 {
		i = -i
	}
	return cs[i%len(cs)]
}

// EntryIndex returns the index of the entry closest to x, resolved by
// rounding when x falls between entries. When closestToY is not NaN and
// several entries share that x, the one whose Y is nearest wins. Returns -1
// for an empty set.
func (ds *BubbleDataSet) EntryIndex(x, closestToY float64, rounding Rounding) int {
	n := len(ds.entries)
	if n == 0 {
		return -1
	}

	low, high := 0, n-1
	for low < high {
		m := (low + high) / 2
		d1 := ds.entries[m].X - x
		d2 := ds.entries[m+1].X - x
		ad1, ad2 := math.Abs(d1), math.Abs(d2)
		switch {
		case ad2 < ad1:
			low = m + 1
		case ad1 < ad2:
			high = m
		case d1 >= 0:
			high = m
		case d2 < 0:
			low = m + 1
		default:
			high = m
		}
	}

	closest := high
	cx := ds.entries[closest].X
	switch rounding {
	case RoundUp:
		if cx < x && closest < n-1 {
			closest++
		}
	case RoundDown:
		if cx > x && closest > 0 {
			closest--
		}
	}

	if math.IsNaN(closestToY) {
		return closest
	}

	cx = ds.entries[closest].X
	for closest > 0 && ds.entries[closest-1].X == cx {
		closest--
	}
	best := closest
	bestY := ds.entries[closest].Y
	for j := closest + 1; j < n && ds.entries[j].X == cx; j++ {
		if math.Abs(ds.entries[j].Y-closestToY) <= math.Abs(bestY-closestToY) {
			best = j
			bestY = ds.entries[j].Y
		}
	}
	return best
}

// EntryForXValue returns the entry nearest x (and nearest closestToY among
// entries sharing that x), or nil for an empty set.
func (ds *BubbleDataSet) EntryForXValue(x, closestToY float64) (*Entry, int) {
	i := ds.EntryIndex(x, closestToY, RoundClosest)
	if i < 0 {
		return nil, -1
	}
	return &ds.entries[i], i
}
