package charts

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png" // icon files
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML reads a color from a "#rrggbb" or "#rrggbbaa" string.
func (c *Color) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*c = parsed
	return nil
}

// MarshalYAML writes a color as a hex string.
func (c Color) MarshalYAML() (any, error) {
	return c.Hex(), nil
}

// FontSpec names a TrueType/OpenType file and a size in points. An empty
// path selects the built-in bitmap font.
type FontSpec struct {
	Path string  `yaml:"path"`
	Size float64 `yaml:"size"`
}

// LimitLineSpec describes a LimitLine.
type LimitLineSpec struct {
	Limit     float64   `yaml:"limit"`
	Label     string    `yaml:"label"`
	Color     *Color    `yaml:"color,omitempty"`
	TextColor *Color    `yaml:"textColor,omitempty"`
	Width     float64   `yaml:"width,omitempty"`
	Dash      []float64 `yaml:"dash,omitempty"`
	Position  string    `yaml:"position,omitempty"`
}

// AreaSpec describes an AxisArea.
type AreaSpec struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
	Color *Color  `yaml:"color,omitempty"`
}

// DiagonalLineSpec describes a DiagonalLine in data coordinates.
type DiagonalLineSpec struct {
	From  [2]float64 `yaml:"from"`
	To    [2]float64 `yaml:"to"`
	Color *Color     `yaml:"color,omitempty"`
	Width float64    `yaml:"width,omitempty"`
	Dash  []float64  `yaml:"dash,omitempty"`
}

// AxisStyle configures the category axis. Unset fields keep the NewXAxis
// defaults.
type AxisStyle struct {
	Enabled              *bool     `yaml:"enabled,omitempty"`
	DrawLabels           *bool     `yaml:"drawLabels,omitempty"`
	DrawAxisLine         *bool     `yaml:"drawAxisLine,omitempty"`
	DrawGridLines        *bool     `yaml:"drawGridLines,omitempty"`
	DrawGridAreas        *bool     `yaml:"drawGridAreas,omitempty"`
	LimitLinesBehindData bool      `yaml:"limitLinesBehindData,omitempty"`
	Position             string    `yaml:"position,omitempty"`
	Labels               []string  `yaml:"labels,omitempty"`
	LabelColor           *Color    `yaml:"labelColor,omitempty"`
	LabelRotation        float64   `yaml:"labelRotation,omitempty"`
	LabelCount           int       `yaml:"labelCount,omitempty"`
	Granularity          float64   `yaml:"granularity,omitempty"`
	CenterLabels         bool      `yaml:"centerLabels,omitempty"`
	Font                 *FontSpec `yaml:"font,omitempty"`
	GridColor            *Color    `yaml:"gridColor,omitempty"`
	GridWidth            float64   `yaml:"gridWidth,omitempty"`
	GridDash             []float64 `yaml:"gridDash,omitempty"`
	AxisLineColor        *Color    `yaml:"axisLineColor,omitempty"`
	AxisLineWidth        float64   `yaml:"axisLineWidth,omitempty"`

	LimitLines    []LimitLineSpec    `yaml:"limitLines,omitempty"`
	Areas         []AreaSpec         `yaml:"areas,omitempty"`
	DiagonalLines []DiagonalLineSpec `yaml:"diagonalLines,omitempty"`
}

// Style is the presentation part of a chart description.
type Style struct {
	Background Color     `yaml:"background,omitempty"`
	Inverted   bool      `yaml:"inverted,omitempty"`
	MinOffset  *float64  `yaml:"minOffset,omitempty"`
	Debug      bool      `yaml:"debug,omitempty"`
	XAxis      AxisStyle `yaml:"xAxis,omitempty"`

	// baseDir resolves relative font and icon paths.
	baseDir string
}

// LoadStyle decodes a Style from YAML.
func LoadStyle(r io.Reader) (*Style, error) {
	var s Style
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && err != io.EOF {
		return nil, fmt.Errorf("charts: decode style: %w", err)
	}
	return &s, nil
}

var labelPositions = map[string]XAxisLabelPosition{
	"top":           LabelPositionTop,
	"bottom":        LabelPositionBottom,
	"both":          LabelPositionBothSided,
	"top_inside":    LabelPositionTopInside,
	"bottom_inside": LabelPositionBottomInside,
}

var limitLabelPositions = map[string]LimitLabelPosition{
	"right_top":    LimitLabelRightTop,
	"right_bottom": LimitLabelRightBottom,
	"left_top":     LimitLabelLeftTop,
	"left_bottom":  LimitLabelLeftBottom,
}

func (s *Style) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || s.baseDir == "" {
		return path
	}
	return filepath.Join(s.baseDir, path)
}

func (s *Style) loadFont(spec *FontSpec) (Font, error) {
	if spec == nil || spec.Path == "" {
		return DefaultFont(), nil
	}
	data, err := os.ReadFile(s.resolve(spec.Path))
	if err != nil {
		return nil, fmt.Errorf("charts: font: %w", err)
	}
	size := spec.Size
	if size <= 0 {
		size = 12
	}
	f, err := LoadFaceFont(data, size)
	if err != nil {
		return nil, fmt.Errorf("charts: font %s: %w", spec.Path, err)
	}
	return f, nil
}

// Apply configures c from the style.
func (s *Style) Apply(c *Chart) error {
	c.Background = s.Background
	c.Inverted = s.Inverted
	c.Debug = s.Debug
	if s.MinOffset != nil {
		c.MinOffset = *s.MinOffset
	}

	st := &s.XAxis
	a := c.XAxis()
	setBool := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}
	setBool(&a.Enabled, st.Enabled)
	setBool(&a.DrawLabels, st.DrawLabels)
	setBool(&a.DrawAxisLine, st.DrawAxisLine)
	setBool(&a.DrawGridLines, st.DrawGridLines)
	setBool(&a.DrawGridAreas, st.DrawGridAreas)
	a.DrawLimitLinesBehindData = st.LimitLinesBehindData
	a.LabelRotationAngle = st.LabelRotation
	a.CenterAxisLabels = st.CenterLabels
	a.Granularity = st.Granularity

	if st.Position != "" {
		p, ok := labelPositions[st.Position]
		if !ok {
			return fmt.Errorf("charts: unknown axis position %q", st.Position)
		}
		a.LabelPosition = p
	}
	if len(st.Labels) > 0 {
		a.ValueFormatter = IndexLabelFormatter{Labels: st.Labels}
	}
	if st.LabelColor != nil {
		a.LabelColor = *st.LabelColor
	}
	if st.LabelCount > 0 {
		a.LabelCount = st.LabelCount
	}
	if st.Font != nil {
		f, err := s.loadFont(st.Font)
		if err != nil {
			return err
		}
		a.LabelFont = f
	}
	if st.GridColor != nil {
		a.GridColor = *st.GridColor
	}
	if st.GridWidth > 0 {
		a.GridLineWidth = st.GridWidth
	}
	a.GridDashLengths = st.GridDash
	if st.AxisLineColor != nil {
		a.AxisLineColor = *st.AxisLineColor
	}
	if st.AxisLineWidth > 0 {
		a.AxisLineWidth = st.AxisLineWidth
	}

	a.RemoveAllLimitLines()
	for _, ls := range st.LimitLines {
		l := NewLimitLine(ls.Limit, ls.Label)
		if ls.Color != nil {
			l.LineColor = *ls.Color
		}
		if ls.TextColor != nil {
			l.ValueTextColor = *ls.TextColor
		}
		if ls.Width > 0 {
			l.SetLineWidth(ls.Width)
		}
		l.DashLengths = ls.Dash
		if ls.Position != "" {
			p, ok := limitLabelPositions[ls.Position]
			if !ok {
				return fmt.Errorf("charts: unknown limit label position %q", ls.Position)
			}
			l.LabelPosition = p
		}
		a.AddLimitLine(l)
	}

	a.RemoveAllAreas()
	for _, as := range st.Areas {
		area := NewAxisArea(as.Start, as.End)
		if as.Color != nil {
			area.Color = *as.Color
		}
		a.AddArea(area)
	}

	for _, ds := range st.DiagonalLines {
		l := NewDiagonalLine(ds.From[0], ds.To[0], ds.From[1], ds.To[1])
		if ds.Color != nil {
			l.LineColor = *ds.Color
		}
		if ds.Width > 0 {
			l.SetLineWidth(ds.Width)
		}
		l.DashLengths = ds.Dash
		a.AddDiagonalLine(l)
	}
	return nil
}

// EntrySpec describes one bubble.
type EntrySpec struct {
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Size      float64 `yaml:"size"`
	Label     string  `yaml:"label,omitempty"`
	ShowLabel bool    `yaml:"showLabel,omitempty"`
	Multiline bool    `yaml:"multiline,omitempty"`
	// Icon is a PNG file path.
	Icon string `yaml:"icon,omitempty"`
}

// DataSetSpec describes a BubbleDataSet. Unset fields keep the
// NewBubbleDataSet defaults.
type DataSetSpec struct {
	Label                string      `yaml:"label"`
	Colors               []Color     `yaml:"colors,omitempty"`
	ValueColors          []Color     `yaml:"valueColors,omitempty"`
	NormalizeSize        *bool       `yaml:"normalizeSize,omitempty"`
	DrawValues           *bool       `yaml:"drawValues,omitempty"`
	DrawIcons            *bool       `yaml:"drawIcons,omitempty"`
	Decimals             *int        `yaml:"decimals,omitempty"`
	ZoomThreshold        float64     `yaml:"zoomThreshold,omitempty"`
	HighlightCircleWidth float64     `yaml:"highlightCircleWidth,omitempty"`
	HighlightLabelColor  *Color      `yaml:"highlightLabelColor,omitempty"`
	Axis                 string      `yaml:"axis,omitempty"`
	Entries              []EntrySpec `yaml:"entries"`
}

// HighlightSpec preselects an entry.
type HighlightSpec struct {
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	DataSet int     `yaml:"dataSet"`
}

// ChartSpec is a complete chart description: size, style and data.
type ChartSpec struct {
	Title                string  `yaml:"title,omitempty"`
	Width                int     `yaml:"width"`
	Height               int     `yaml:"height"`
	GroupSpace           float64 `yaml:"groupSpace,omitempty"`
	BubbleSizeMultiplier float64 `yaml:"bubbleSizeMultiplier,omitempty"`

	Style `yaml:",inline"`

	DataSets  []DataSetSpec  `yaml:"dataSets"`
	Highlight *HighlightSpec `yaml:"highlight,omitempty"`
}

// ParseChartSpec decodes a ChartSpec from YAML. Relative paths resolve
// against baseDir.
func ParseChartSpec(data []byte, baseDir string) (*ChartSpec, error) {
	var cs ChartSpec
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cs); err != nil {
		return nil, fmt.Errorf("charts: decode chart: %w", err)
	}
	if cs.Width <= 0 || cs.Height <= 0 {
		return nil, fmt.Errorf("charts: chart size %dx%d must be positive", cs.Width, cs.Height)
	}
	cs.baseDir = baseDir
	return &cs, nil
}

// LoadChartSpec reads a ChartSpec from a YAML file.
func LoadChartSpec(path string) (*ChartSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("charts: %w", err)
	}
	return ParseChartSpec(data, filepath.Dir(path))
}

func (cs *ChartSpec) loadIcon(path string) (image.Image, error) {
	f, err := os.Open(cs.resolve(path))
	if err != nil {
		return nil, fmt.Errorf("charts: icon: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("charts: icon %s: %w", path, err)
	}
	return img, nil
}

func (cs *ChartSpec) dataSet(spec DataSetSpec) (*BubbleDataSet, error) {
	entries := make([]Entry, 0, len(spec.Entries))
	for _, es := range spec.Entries {
		e := Entry{
			X: es.X, Y: es.Y, Size: es.Size,
			Label: es.Label, ShowLabel: es.ShowLabel, Multiline: es.Multiline,
		}
		if es.Icon != "" {
			img, err := cs.loadIcon(es.Icon)
			if err != nil {
				return nil, err
			}
			e.Icon = img
		}
		entries = append(entries, e)
	}

	ds := NewBubbleDataSet(spec.Label, entries)
	if len(spec.Colors) > 0 {
		ds.Colors = spec.Colors
	}
	if len(spec.ValueColors) > 0 {
		ds.ValueColors = spec.ValueColors
	}
	if spec.NormalizeSize != nil {
		ds.NormalizeSize = *spec.NormalizeSize
	}
	if spec.DrawValues != nil {
		ds.DrawValues = *spec.DrawValues
	}
	if spec.DrawIcons != nil {
		ds.DrawIcons = *spec.DrawIcons
	}
	if spec.Decimals != nil {
		ds.ValueFormatter = DefaultValueFormatter{Decimals: *spec.Decimals}
	}
	if spec.ZoomThreshold > 0 {
		ds.ZoomThreshold = spec.ZoomThreshold
	}
	if spec.HighlightCircleWidth > 0 {
		ds.HighlightCircleWidth = spec.HighlightCircleWidth
	}
	if spec.HighlightLabelColor != nil {
		ds.HighlightLabelColor = *spec.HighlightLabelColor
	}
	switch spec.Axis {
	case "", "left":
	case "right":
		ds.AxisDependency = AxisRight
	default:
		return nil, fmt.Errorf("charts: data set %q: unknown axis %q", spec.Label, spec.Axis)
	}
	return ds, nil
}

// Build creates a chart from the description.
func (cs *ChartSpec) Build() (*Chart, error) {
	c := NewChart(float64(cs.Width), float64(cs.Height))
	if err := cs.Style.Apply(c); err != nil {
		return nil, err
	}

	data := NewBubbleChartData()
	data.SetGroupSpace(cs.GroupSpace)
	if cs.BubbleSizeMultiplier > 0 {
		data.BubbleSizeMultiplier = cs.BubbleSizeMultiplier
	}
	for _, spec := range cs.DataSets {
		ds, err := cs.dataSet(spec)
		if err != nil {
			return nil, err
		}
		data.AddDataSet(ds)
	}
	c.SetData(data)

	if h := cs.Highlight; h != nil {
		if h.DataSet < 0 || h.DataSet >= data.DataSetCount() {
			return nil, fmt.Errorf("charts: highlight data set %d out of range", h.DataSet)
		}
		c.HighlightValue(h.X, h.Y, h.DataSet)
	}
	return c, nil
}
