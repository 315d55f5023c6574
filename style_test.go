package charts

import (
	"errors"
	"image"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

const testChartYAML = `
title: Test
width: 400
height: 300
background: "#102030"
groupSpace: 0.5
bubbleSizeMultiplier: 2
inverted: true
minOffset: 8
xAxis:
  position: both
  labelColor: "#ff0000"
  labelCount: 4
  gridDash: [4, 2]
  areas:
    - {start: 0, end: 1}
    - {start: 1, end: 2, color: "#00ff0080"}
  limitLines:
    - {limit: 12, label: Cap, width: 3, position: left_bottom, color: "#0000ff"}
  diagonalLines:
    - {from: [0, 0], to: [2, 20], width: 1}
dataSets:
  - label: first
    colors: ["#ff0000", "#00ff00"]
    normalizeSize: false
    drawValues: false
    decimals: 1
    zoomThreshold: 3
    entries:
      - {x: 1, y: 5, size: 2, label: one, showLabel: true}
      - {x: 0, y: 7, size: 4}
  - label: second
    axis: right
    entries:
      - {x: 2, y: 9, size: 1}
highlight: {x: 1, y: 5, dataSet: 0}
`

func TestParseChartSpecBuild(t *testing.T) {
	cs, err := ParseChartSpec([]byte(testChartYAML), "")
	if err != nil {
		t.Fatalf("ParseChartSpec: %v", err)
	}
	if cs.Title != "Test" || cs.Width != 400 || cs.Height != 300 {
		t.Errorf("header = %q %dx%d", cs.Title, cs.Width, cs.Height)
	}

	c, err := cs.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if !colorNear(c.Background, RGB255(0x10, 0x20, 0x30)) {
		t.Errorf("Background = %v", c.Background)
	}
	if !c.Inverted {
		t.Error("Inverted not applied")
	}
	assertNear(t, "MinOffset", c.MinOffset, 8)

	a := c.XAxis()
	if a.LabelPosition != LabelPositionBothSided {
		t.Errorf("LabelPosition = %v, want both", a.LabelPosition)
	}
	if !colorNear(a.LabelColor, RGB255(255, 0, 0)) {
		t.Errorf("LabelColor = %v", a.LabelColor)
	}
	if a.LabelCount != 4 {
		t.Errorf("LabelCount = %d, want 4", a.LabelCount)
	}
	if len(a.GridDashLengths) != 2 {
		t.Errorf("GridDashLengths = %v", a.GridDashLengths)
	}

	areas := a.Areas()
	if len(areas) != 2 {
		t.Fatalf("areas = %d, want 2", len(areas))
	}
	if areas[0].Color != DefaultAreaColor {
		t.Errorf("default area color = %v", areas[0].Color)
	}
	assertNear(t, "area alpha", areas[1].Color.A, 128.0/255)

	lines := a.LimitLines()
	if len(lines) != 1 {
		t.Fatalf("limit lines = %d, want 1", len(lines))
	}
	l := lines[0]
	assertNear(t, "Limit", l.Limit, 12)
	assertNear(t, "LineWidth", l.LineWidth(), 3)
	if l.LabelPosition != LimitLabelLeftBottom || !colorNear(l.LineColor, RGB255(0, 0, 255)) {
		t.Errorf("limit line = %+v", l)
	}
	if d := a.DiagonalLines(); len(d) != 1 || d[0].EndX != 2 || d[0].EndY != 20 {
		t.Errorf("diagonal lines = %v", d)
	}

	data := c.Data()
	if data.DataSetCount() != 2 {
		t.Fatalf("data sets = %d, want 2", data.DataSetCount())
	}
	assertNear(t, "GroupSpace", data.GroupSpace(), 0.5)
	assertNear(t, "BubbleSizeMultiplier", data.BubbleSizeMultiplier, 2)

	first := data.DataSetByIndex(0)
	if first.NormalizeSize || first.DrawValues {
		t.Error("data set booleans not applied")
	}
	if len(first.Colors) != 2 {
		t.Errorf("Colors = %v", first.Colors)
	}
	assertNear(t, "ZoomThreshold", first.ZoomThreshold, 3)
	if got := first.ValueFormatter.StringForValue(2, nil); got != "2.0" {
		t.Errorf("formatted value = %q, want %q", got, "2.0")
	}
	if e := first.EntryForIndex(0); e.X != 0 {
		t.Error("entries not sorted by x")
	}
	if e := first.EntryForIndex(1); e.Label != "one" || !e.ShowLabel {
		t.Errorf("entry = %+v", e)
	}
	if data.DataSetByIndex(1).AxisDependency != AxisRight {
		t.Error("axis: right not applied")
	}

	hs := c.Highlights()
	if len(hs) != 1 || hs[0].X != 1 || hs[0].DataSetIndex != 0 {
		t.Errorf("highlights = %v", hs)
	}
}

func TestParseChartSpecErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"no size", "dataSets: []", "must be positive"},
		{"unknown field", "width: 10\nheight: 10\nbogus: 1", "bogus"},
		{"bad color", "width: 10\nheight: 10\nbackground: \"#zz\"", "line 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseChartSpec([]byte(tt.yaml), "")
			if err == nil {
				t.Fatal("ParseChartSpec succeeded")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestParseChartSpecBadColorWrapsSentinel(t *testing.T) {
	_, err := ParseChartSpec([]byte("width: 10\nheight: 10\nbackground: \"#12\""), "")
	if !errors.Is(err, ErrInvalidColor) {
		t.Errorf("error = %v, want ErrInvalidColor", err)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"axis position", "width: 10\nheight: 10\nxAxis: {position: middle}", "axis position"},
		{"limit position", "width: 10\nheight: 10\nxAxis: {limitLines: [{limit: 1, position: nowhere}]}", "limit label position"},
		{"data set axis", "width: 10\nheight: 10\ndataSets: [{label: a, axis: up, entries: []}]", "unknown axis"},
		{"highlight set", "width: 10\nheight: 10\ndataSets: []\nhighlight: {x: 0, y: 0, dataSet: 1}", "out of range"},
		{"missing icon", "width: 10\nheight: 10\ndataSets: [{label: a, entries: [{x: 0, y: 0, size: 1, icon: nope.png}]}]", "icon"},
		{"missing font", "width: 10\nheight: 10\nxAxis: {font: {path: nope.ttf}}", "font"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs, err := ParseChartSpec([]byte(tt.yaml), t.TempDir())
			if err != nil {
				t.Fatalf("ParseChartSpec: %v", err)
			}
			_, err = cs.Build()
			if err == nil {
				t.Fatal("Build succeeded")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestBuildLoadsIconRelativeToChartFile(t *testing.T) {
	dir := t.TempDir()
	icon := image.NewRGBA(image.Rect(0, 0, 6, 4))
	if err := SavePNG(filepath.Join(dir, "badge.png"), icon); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	src := "width: 50\nheight: 50\ndataSets: [{label: a, entries: [{x: 0, y: 0, size: 1, icon: badge.png}]}]"
	cs, err := ParseChartSpec([]byte(src), dir)
	if err != nil {
		t.Fatalf("ParseChartSpec: %v", err)
	}
	c, err := cs.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	e := c.Data().DataSetByIndex(0).EntryForIndex(0)
	if e.Icon == nil || e.Icon.Bounds().Dx() != 6 {
		t.Errorf("icon = %v, want a 6x4 image", e.Icon)
	}
}

func TestLoadChartSpecExample(t *testing.T) {
	cs, err := LoadChartSpec(filepath.Join("examples", "bubbles", "chart.yaml"))
	if err != nil {
		t.Fatalf("LoadChartSpec: %v", err)
	}
	c, err := cs.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if c.Data().DataSetCount() != 3 {
		t.Errorf("data sets = %d, want 3", c.Data().DataSetCount())
	}
	rec := NewRecorder()
	c.Draw(rec)
	if c.Renderer().Output().Len() == 0 {
		t.Error("example chart drew no bubbles")
	}
}

func TestLoadStyleEmpty(t *testing.T) {
	s, err := LoadStyle(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadStyle: %v", err)
	}
	c := NewChart(10, 10)
	if err := s.Apply(c); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	assertNear(t, "MinOffset", c.MinOffset, 15)
	if c.XAxis().LabelPosition != LabelPositionBottom {
		t.Error("empty style changed the axis position")
	}
}

func TestLoadStyleDisablesAxisParts(t *testing.T) {
	s, err := LoadStyle(strings.NewReader("xAxis: {drawLabels: false, drawGridLines: false}"))
	if err != nil {
		t.Fatalf("LoadStyle: %v", err)
	}
	c := NewChart(10, 10)
	if err := s.Apply(c); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	a := c.XAxis()
	if a.DrawLabels || a.DrawGridLines || !a.DrawAxisLine {
		t.Errorf("axis flags = labels %v grid %v line %v", a.DrawLabels, a.DrawGridLines, a.DrawAxisLine)
	}
}

func TestColorYAMLRoundTrip(t *testing.T) {
	in := struct {
		C Color `yaml:"c"`
	}{C: Color{R: 1, G: 0.5, B: 0, A: 0.5}}
	out, err := yaml.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(out), "#ff800080") {
		t.Errorf("marshaled = %q, want the hex color", out)
	}
}
