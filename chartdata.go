package charts

import "math"

// CategorySpacing describes how grouped categories are laid out along the
// category axis: each category holds one slot per data set followed by
// GroupSpace of padding.
type CategorySpacing interface {
	DataSetCount() int
	GroupSpace() float64
}

// CategoryPosition returns the axis value where category index starts when
// each category holds step slots and groupSpace padding. Gridlines, grid
// areas and grouped bars must all place categories with this function.
func CategoryPosition(index, step int, groupSpace float64) float64 {
	return float64(index*step) + float64(index)*groupSpace - 0.5
}

// GroupedBarLayout positions bars of several data sets within categories
// using CategoryPosition.
type GroupedBarLayout struct {
	Spacing CategorySpacing
}

// GroupStart returns the axis value where category i begins.
func (l GroupedBarLayout) GroupStart(i int) float64 {
	return CategoryPosition(i, l.Spacing.DataSetCount(), l.Spacing.GroupSpace())
}

// BarCenter returns the center of data set ds's bar within category i.
func (l GroupedBarLayout) BarCenter(i, ds int) float64 {
	return l.GroupStart(i) + float64(ds) + 0.5
}

// BubbleChartData owns the data sets of a bubble chart and chart-wide
// sizing constants.
type BubbleChartData struct {
	dataSets []*BubbleDataSet

	// MaxSize overrides the chart-wide maximum size when positive.
	MaxSize float64
	// BubbleSizeMultiplier divides every computed shape size.
	BubbleSizeMultiplier float64

	groupSpace float64
}

// NewBubbleChartData creates chart data over sets.
func NewBubbleChartData(sets ...*BubbleDataSet) *BubbleChartData {
	return &BubbleChartData{
		dataSets:             sets,
		BubbleSizeMultiplier: 1,
	}
}

// AddDataSet appends a data set.
func (d *BubbleChartData) AddDataSet(ds *BubbleDataSet) {
	d.dataSets = append(d.dataSets, ds)
}

// DataSets returns the data sets in order.
func (d *BubbleChartData) DataSets() []*BubbleDataSet { return d.dataSets }

func (d *BubbleChartData) DataSetCount() int { return len(d.dataSets) }

// DataSetByIndex returns the set at i, or nil when out of range.
func (d *BubbleChartData) DataSetByIndex(i int) *BubbleDataSet {
	if i < 0 || i >= len(d.dataSets) {
		return nil
	}
	return d.dataSets[i]
}

func (d *BubbleChartData) GroupSpace() float64 { return d.groupSpace }

// SetGroupSpace sets the padding between categories.
func (d *BubbleChartData) SetGroupSpace(v float64) { d.groupSpace = v }

// SetHighlightCircleWidth sets the highlight ring width of every data set.
func (d *BubbleChartData) SetHighlightCircleWidth(w float64) {
	for _, ds := range d.dataSets {
		ds.HighlightCircleWidth = w
	}
}

// ChartMaxSize returns MaxSize when set, otherwise the largest MaxSize of
// the data sets.
func (d *BubbleChartData) ChartMaxSize() float64 {
	if d.MaxSize > 0 {
		return d.MaxSize
	}
	m := 0.0
	for _, ds := range d.dataSets {
		m = math.Max(m, ds.MaxSize())
	}
	return m
}

// sizeMultiplier returns BubbleSizeMultiplier, treating zero as 1.
func (d *BubbleChartData) sizeMultiplier() float64 {
	if d.BubbleSizeMultiplier == 0 {
		return 1
	}
	return d.BubbleSizeMultiplier
}

// EntryCount returns the total number of entries in all sets.
func (d *BubbleChartData) EntryCount() int {
	n := 0
	for _, ds := range d.dataSets {
		n += ds.EntryCount()
	}
	return n
}

// Bounds returns the data range across all sets. Empty data yields zeros.
func (d *BubbleChartData) Bounds() (xMin, xMax, yMin, yMax float64) {
	xMin, yMin = math.Inf(1), math.Inf(1)
	xMax, yMax = math.Inf(-1), math.Inf(-1)
	for _, ds := range d.dataSets {
		if ds.EntryCount() == 0 {
			continue
		}
		xMin = math.Min(xMin, ds.XMin())
		xMax = math.Max(xMax, ds.XMax())
		yMin = math.Min(yMin, ds.YMin())
		yMax = math.Max(yMax, ds.YMax())
	}
	if math.IsInf(xMin, 1) {
		return 0, 0, 0, 0
	}
	return xMin, xMax, yMin, yMax
}

// EntryForHighlight resolves h to an entry and its index.
func (d *BubbleChartData) EntryForHighlight(h *Highlight) (*Entry, int) {
	ds := d.DataSetByIndex(h.DataSetIndex)
	if ds == nil {
		return nil, -1
	}
	return ds.EntryForXValue(h.X, h.Y)
}
