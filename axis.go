package charts

import (
	"math"
	"slices"
)

// XAxis holds the configuration and computed layout of the category axis.
// In the horizontal bar layout its values run vertically and its labels
// sit beside the content rect.
type XAxis struct {
	Enabled       bool
	DrawLabels    bool
	DrawAxisLine  bool
	DrawGridLines bool
	DrawGridAreas bool
	// DrawLimitLinesBehindData draws limit lines before the data.
	DrawLimitLinesBehindData bool

	LabelPosition XAxisLabelPosition
	LabelFont     Font
	LabelColor    Color
	// LabelRotationAngle is in degrees.
	LabelRotationAngle float64
	XOffset, YOffset   float64

	AxisLineColor       Color
	AxisLineWidth       float64
	AxisLineDashPhase   float64
	AxisLineDashLengths []float64

	GridColor       Color
	GridLineWidth   float64
	GridDashPhase   float64
	GridDashLengths []float64

	// LabelCount is the maximum number of ticks.
	LabelCount int
	// Granularity is the minimum spacing between ticks when positive.
	Granularity float64
	// CenterAxisLabels shifts labels half a tick step forward.
	CenterAxisLabels bool

	ValueFormatter ValueFormatter

	limitLines    []*LimitLine
	areas         []AxisArea
	diagonalLines []*DiagonalLine

	entries         []float64
	centeredEntries []float64
	labels          []string
	decimals        int

	labelWidth, labelHeight               float64
	labelRotatedWidth, labelRotatedHeight float64
}

// NewXAxis returns an enabled axis with labels on the bottom (left) edge.
func NewXAxis() *XAxis {
	return &XAxis{
		Enabled:        true,
		DrawLabels:     true,
		DrawAxisLine:   true,
		DrawGridLines:  true,
		DrawGridAreas:  true,
		LabelPosition:  LabelPositionBottom,
		LabelFont:      DefaultFont(),
		LabelColor:     ColorBlack,
		XOffset:        5,
		YOffset:        5,
		AxisLineColor:  RGB255(128, 128, 128),
		AxisLineWidth:  0.5,
		GridColor:      RGB255(200, 200, 200),
		GridLineWidth:  0.5,
		LabelCount:     6,
		ValueFormatter: DefaultValueFormatter{Decimals: -1},
	}
}

// Entries returns the computed tick values in ascending order.
func (a *XAxis) Entries() []float64 { return a.entries }

// CenteredEntries returns the ticks shifted half a step; empty unless
// CenterAxisLabels is set.
func (a *XAxis) CenteredEntries() []float64 { return a.centeredEntries }

// EntryCount returns the number of ticks.
func (a *XAxis) EntryCount() int { return len(a.entries) }

// Decimals is the number of decimals the tick step needs.
func (a *XAxis) Decimals() int { return a.decimals }

// SetEntries installs ticks directly, sorted ascending, and refreshes the
// label cache.
func (a *XAxis) SetEntries(ticks []float64) {
	a.entries = append(a.entries[:0], ticks...)
	slices.Sort(a.entries)
	a.centeredEntries = a.centeredEntries[:0]
	if a.CenterAxisLabels && len(a.entries) > 1 {
		half := (a.entries[1] - a.entries[0]) / 2
		for _, v := range a.entries {
			a.centeredEntries = append(a.centeredEntries, v+half)
		}
	}
	a.decimals = 0
	if len(a.entries) > 1 {
		if step := a.entries[1] - a.entries[0]; step > 0 {
			a.decimals = max(0, int(math.Ceil(-math.Log10(step))))
		}
	}
	a.refreshLabels()
}

func (a *XAxis) refreshLabels() {
	a.labels = a.labels[:0]
	for _, v := range a.entries {
		a.labels = append(a.labels, a.formatValue(v))
	}
}

func (a *XAxis) formatValue(v float64) string {
	if a.ValueFormatter == nil {
		return ""
	}
	return a.ValueFormatter.StringForValue(v, a)
}

// FormattedLabel returns the cached label of tick i, or "" out of range.
func (a *XAxis) FormattedLabel(i int) string {
	if i < 0 || i >= len(a.labels) {
		return ""
	}
	return a.labels[i]
}

// LongestLabel returns the label with the most characters.
func (a *XAxis) LongestLabel() string {
	longest := ""
	for _, l := range a.labels {
		if len(l) > len(longest) {
			longest = l
		}
	}
	return longest
}

func (a *XAxis) LabelWidth() float64         { return a.labelWidth }
func (a *XAxis) LabelHeight() float64        { return a.labelHeight }
func (a *XAxis) LabelRotatedWidth() float64  { return a.labelRotatedWidth }
func (a *XAxis) LabelRotatedHeight() float64 { return a.labelRotatedHeight }

// AddLimitLine appends l.
func (a *XAxis) AddLimitLine(l *LimitLine) {
	a.limitLines = append(a.limitLines, l)
}

// RemoveLimitLine removes l if present.
func (a *XAxis) RemoveLimitLine(l *LimitLine) {
	a.limitLines = slices.DeleteFunc(a.limitLines, func(x *LimitLine) bool { return x == l })
}

// RemoveAllLimitLines clears every limit line.
func (a *XAxis) RemoveAllLimitLines() { a.limitLines = nil }

// LimitLines returns the limit lines in draw order.
func (a *XAxis) LimitLines() []*LimitLine { return a.limitLines }

// AddArea appends a shaded grid area.
func (a *XAxis) AddArea(area AxisArea) { a.areas = append(a.areas, area) }

// Areas returns the grid areas in draw order.
func (a *XAxis) Areas() []AxisArea { return a.areas }

// RemoveAllAreas clears every grid area.
func (a *XAxis) RemoveAllAreas() { a.areas = nil }

// AddDiagonalLine appends a diagonal reference line.
func (a *XAxis) AddDiagonalLine(l *DiagonalLine) {
	a.diagonalLines = append(a.diagonalLines, l)
}

// DiagonalLines returns the diagonal lines in draw order.
func (a *XAxis) DiagonalLines() []*DiagonalLine { return a.diagonalLines }

// AxisArea is a shaded band between two category indices.
type AxisArea struct {
	StartX, EndX float64
	Color        Color
}

// DefaultAreaColor is the fill of an AxisArea created by NewAxisArea.
var DefaultAreaColor = Color{215.0 / 255, 231.0 / 255, 241.0 / 255, 0.5}

// NewAxisArea creates an area in the default color.
func NewAxisArea(startX, endX float64) AxisArea {
	return AxisArea{StartX: startX, EndX: endX, Color: DefaultAreaColor}
}

// LimitLine is a horizontal reference line at a fixed axis value.
type LimitLine struct {
	Limit float64
	Label string

	LineColor   Color
	lineWidth   float64
	DashPhase   float64
	DashLengths []float64

	LabelPosition  LimitLabelPosition
	ValueFont      Font
	ValueTextColor Color
	XOffset        float64
	YOffset        float64

	Enabled   bool
	DrawLabel bool
}

// NewLimitLine creates an enabled limit line with a visible label.
func NewLimitLine(limit float64, label string) *LimitLine {
	return &LimitLine{
		Limit:          limit,
		Label:          label,
		LineColor:      RGB255(237, 91, 91),
		lineWidth:      2,
		ValueFont:      DefaultFont(),
		ValueTextColor: ColorBlack,
		Enabled:        true,
		DrawLabel:      true,
	}
}

// LineWidth returns the stroke width.
func (l *LimitLine) LineWidth() float64 { return l.lineWidth }

// SetLineWidth sets the stroke width, clamped to [0.2, 12].
func (l *LimitLine) SetLineWidth(w float64) { l.lineWidth = clampLineWidth(w) }

// DiagonalLine is a straight reference line between two data points.
type DiagonalLine struct {
	StartX, EndX float64
	StartY, EndY float64

	LineColor   Color
	lineWidth   float64
	DashPhase   float64
	DashLengths []float64
	Enabled     bool
}

// NewDiagonalLine creates an enabled line from (startX, startY) to (endX, endY).
func NewDiagonalLine(startX, endX, startY, endY float64) *DiagonalLine {
	return &DiagonalLine{
		StartX:    startX,
		EndX:      endX,
		StartY:    startY,
		EndY:      endY,
		LineColor: RGB255(237, 91, 91),
		lineWidth: 2,
		Enabled:   true,
	}
}

// LineWidth returns the stroke width.
func (l *DiagonalLine) LineWidth() float64 { return l.lineWidth }

// SetLineWidth sets the stroke width, clamped to [0.2, 12].
func (l *DiagonalLine) SetLineWidth(w float64) { l.lineWidth = clampLineWidth(w) }

func clampLineWidth(w float64) float64 {
	return clamp(w, 0.2, 12)
}
