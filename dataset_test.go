package charts

import (
	"math"
	"testing"
)

func newIndexSet() *BubbleDataSet {
	return NewBubbleDataSet("idx", []Entry{
		{X: 4, Y: 1},
		{X: 0, Y: 5},
		{X: 2, Y: 7},
		{X: 1, Y: 6},
		{X: 2, Y: 9},
	})
}

func TestNewBubbleDataSetSortsByX(t *testing.T) {
	ds := newIndexSet()
	for i := 1; i < ds.EntryCount(); i++ {
		if ds.EntryForIndex(i).X < ds.EntryForIndex(i-1).X {
			t.Fatalf("entries not sorted at %d", i)
		}
	}
	// Stable: the two x=2 entries keep their order.
	if ds.EntryForIndex(2).Y != 7 || ds.EntryForIndex(3).Y != 9 {
		t.Errorf("equal-x entries reordered: %v, %v", ds.EntryForIndex(2).Y, ds.EntryForIndex(3).Y)
	}
}

func TestEntryIndexRounding(t *testing.T) {
	ds := newIndexSet() // x: 0 1 2 2 4
	nan := math.NaN()
	tests := []struct {
		name     string
		x        float64
		rounding Rounding
		want     int
	}{
		{"exact", 1, RoundClosest, 1},
		{"closest up", 3.5, RoundClosest, 4},
		{"round down", 3.5, RoundDown, 3},
		{"round up", 2.5, RoundUp, 4},
		{"below range", -10, RoundDown, 0},
		{"above range", 10, RoundUp, 4},
	}
	for _, tt := range tests {
		if got := ds.EntryIndex(tt.x, nan, tt.rounding); got != tt.want {
			t.Errorf("%s: EntryIndex(%v) = %d, want %d", tt.name, tt.x, got, tt.want)
		}
	}
}

func TestEntryIndexClosestToY(t *testing.T) {
	ds := newIndexSet()
	if got := ds.EntryIndex(2, 8.5, RoundClosest); got != 3 {
		t.Errorf("EntryIndex(2, 8.5) = %d, want 3", got)
	}
	if got := ds.EntryIndex(2, 6, RoundClosest); got != 2 {
		t.Errorf("EntryIndex(2, 6) = %d, want 2", got)
	}
}

func TestEntryIndexEmpty(t *testing.T) {
	ds := NewBubbleDataSet("empty", nil)
	if got := ds.EntryIndex(1, math.NaN(), RoundClosest); got != -1 {
		t.Errorf("EntryIndex on empty set = %d, want -1", got)
	}
	if e, i := ds.EntryForXValue(1, 0); e != nil || i != -1 {
		t.Errorf("EntryForXValue on empty set = %v, %d", e, i)
	}
}

func TestAddRemoveEntry(t *testing.T) {
	ds := newIndexSet()
	ds.AddEntry(Entry{X: 3, Y: 2, Size: 50})
	if ds.EntryForIndex(4).X != 3 {
		t.Errorf("AddEntry placed x=3 at wrong index")
	}
	assertNear(t, "MaxSize", ds.MaxSize(), 50)

	ds.RemoveEntry(4)
	assertNear(t, "MaxSize after remove", ds.MaxSize(), 0)
	ds.RemoveEntry(99)
	if ds.EntryCount() != 5 {
		t.Errorf("EntryCount() = %d, want 5", ds.EntryCount())
	}
	if ds.EntryForIndex(-1) != nil || ds.EntryForIndex(5) != nil {
		t.Error("EntryForIndex out of range is not nil")
	}
}

func TestDataSetBounds(t *testing.T) {
	ds := newIndexSet()
	assertNear(t, "XMin", ds.XMin(), 0)
	assertNear(t, "XMax", ds.XMax(), 4)
	assertNear(t, "YMin", ds.YMin(), 1)
	assertNear(t, "YMax", ds.YMax(), 9)
}

func TestDataSetColorsWrap(t *testing.T) {
	ds := NewBubbleDataSet("c", nil)
	red, green := RGB255(255, 0, 0), RGB255(0, 255, 0)
	ds.Colors = []Color{red, green}
	if ds.Color(3) != green || ds.Color(4) != red {
		t.Errorf("Color wrap = %v, %v", ds.Color(3), ds.Color(4))
	}
	if ds.Color(-1) != green {
		t.Errorf("Color(-1) = %v, want green", ds.Color(-1))
	}
	ds.Colors = nil
	if ds.Color(0) != ColorBlack {
		t.Errorf("Color with no colors = %v, want black", ds.Color(0))
	}
}

// --- chart data ---

func TestChartDataBoundsAndCounts(t *testing.T) {
	a := NewBubbleDataSet("a", []Entry{{X: 0, Y: 1, Size: 3}, {X: 2, Y: 5, Size: 8}})
	b := NewBubbleDataSet("b", []Entry{{X: -1, Y: 10, Size: 20}})
	empty := NewBubbleDataSet("empty", nil)
	d := NewBubbleChartData(a, b, empty)

	xMin, xMax, yMin, yMax := d.Bounds()
	assertNear(t, "xMin", xMin, -1)
	assertNear(t, "xMax", xMax, 2)
	assertNear(t, "yMin", yMin, 1)
	assertNear(t, "yMax", yMax, 10)

	if d.EntryCount() != 3 {
		t.Errorf("EntryCount() = %d, want 3", d.EntryCount())
	}
	assertNear(t, "ChartMaxSize", d.ChartMaxSize(), 20)
	d.MaxSize = 5
	assertNear(t, "ChartMaxSize override", d.ChartMaxSize(), 5)

	if d.DataSetByIndex(3) != nil || d.DataSetByIndex(-1) != nil {
		t.Error("DataSetByIndex out of range is not nil")
	}

	d.SetHighlightCircleWidth(4)
	assertNear(t, "HighlightCircleWidth", b.HighlightCircleWidth, 4)
}

func TestChartDataEmptyBounds(t *testing.T) {
	xMin, xMax, yMin, yMax := NewBubbleChartData().Bounds()
	if xMin != 0 || xMax != 0 || yMin != 0 || yMax != 0 {
		t.Errorf("Bounds() = %v %v %v %v, want zeros", xMin, xMax, yMin, yMax)
	}
}

func TestEntryForHighlight(t *testing.T) {
	d := NewBubbleChartData(newIndexSet())
	e, i := d.EntryForHighlight(NewHighlight(2, 9, 0))
	if e == nil || i != 3 {
		t.Fatalf("EntryForHighlight = %v, %d, want index 3", e, i)
	}
	if e, _ := d.EntryForHighlight(NewHighlight(2, 9, 1)); e != nil {
		t.Error("EntryForHighlight with a bad data set returned an entry")
	}
}

func TestCategoryPosition(t *testing.T) {
	assertNear(t, "first", CategoryPosition(0, 3, 0.5), -0.5)
	assertNear(t, "second", CategoryPosition(1, 3, 0.5), 3)
	assertNear(t, "third", CategoryPosition(2, 3, 0.5), 6.5)

	l := GroupedBarLayout{Spacing: testSpacing{sets: 3, space: 0.5}}
	assertNear(t, "BarCenter", l.BarCenter(1, 2), 5.5)
}

func TestHighlightEqual(t *testing.T) {
	a := NewHighlight(1, 2, 0)
	b := NewHighlight(1, 2, 0)
	if !a.Equal(b) {
		t.Error("equal highlights compare unequal")
	}
	if a.Equal(NewHighlight(1, 2, 1)) {
		t.Error("highlights of different sets compare equal")
	}
	var n *Highlight
	if a.Equal(n) || !n.Equal(nil) {
		t.Error("nil handling is wrong")
	}
}
