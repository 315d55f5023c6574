package svg_test

import (
	"bytes"
	"image"
	"strings"
	"testing"

	"github.com/phanxgames/charts"
	"github.com/phanxgames/charts/svg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, draw func(s *svg.Surface)) string {
	t.Helper()
	var buf bytes.Buffer
	s := svg.New(&buf, 100, 80)
	draw(s)
	s.Close()
	out := buf.String()
	require.True(t, strings.HasPrefix(strings.TrimSpace(out), "<?xml"))
	require.Contains(t, out, "</svg>")
	return out
}

func TestFillRectEmitsPath(t *testing.T) {
	out := render(t, func(s *svg.Surface) {
		s.SetFillColor(charts.Color{R: 1, A: 0.5})
		s.FillRect(charts.Rect{X: 1.5, Y: 2, Width: 10, Height: 20})
	})
	assert.Contains(t, out, `d="M1.5 2H11.5V22H1.5Z"`)
	assert.Contains(t, out, `fill="#ff0000"`)
	assert.Contains(t, out, `fill-opacity="0.5"`)
	assert.NotContains(t, out, "transform=")
}

func TestStrokeLineDashes(t *testing.T) {
	out := render(t, func(s *svg.Surface) {
		s.SetStrokeColor(charts.ColorBlack)
		s.SetLineWidth(2)
		s.SetLineDash(3, []float64{10, 5})
		s.StrokeLine(0, 0, 50, 0)
	})
	assert.Contains(t, out, `stroke="#000000"`)
	assert.Contains(t, out, `stroke-width="2"`)
	assert.Contains(t, out, `stroke-dasharray="10,5"`)
	assert.Contains(t, out, `stroke-dashoffset="3"`)
	assert.Contains(t, out, `fill="none"`)
}

func TestTransformAttribute(t *testing.T) {
	out := render(t, func(s *svg.Surface) {
		s.Translate(10, 20)
		s.FillEllipse(charts.Rect{Width: 4, Height: 4})
	})
	assert.Contains(t, out, `transform="matrix(1 0 0 1 10 20)"`)
	assert.Equal(t, 4, strings.Count(out, "C"), "ellipse is four cubic segments")
}

func TestClipGroupsReuseDefinitions(t *testing.T) {
	out := render(t, func(s *svg.Surface) {
		s.SaveState()
		s.ClipRect(charts.Rect{X: 0, Y: 0, Width: 50, Height: 50})
		s.FillRect(charts.Rect{Width: 80, Height: 80})
		s.FillRect(charts.Rect{Width: 10, Height: 10})
		s.RestoreState()
		s.FillRect(charts.Rect{Width: 5, Height: 5})
	})
	assert.Equal(t, 1, strings.Count(out, "<clipPath"))
	assert.Equal(t, 2, strings.Count(out, `clip-path="url(#clip1)"`))
}

func TestTextIsEscaped(t *testing.T) {
	out := render(t, func(s *svg.Surface) {
		s.DrawText("a<b & c", 5, 5, charts.DefaultFont(), charts.ColorBlack)
	})
	assert.Contains(t, out, "a&lt;b &amp; c")
	assert.Contains(t, out, `font-family="monospace"`)
	// Top-left placement: the baseline sits one ascent below y.
	assert.Contains(t, out, `transform="matrix(1 0 0 1 5 16)"`)
}

func TestDrawImageEmbedsPNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	out := render(t, func(s *svg.Surface) {
		s.DrawImage(img, charts.Rect{X: 10, Y: 10, Width: 8, Height: 4})
		s.DrawImage(nil, charts.Rect{Width: 1, Height: 1})
	})
	assert.Equal(t, 1, strings.Count(out, "<image"))
	assert.Contains(t, out, "data:image/png;base64,")
	assert.Contains(t, out, `transform="matrix(2 0 0 2 10 10)"`)
}

func TestDrawingAfterCloseIsIgnored(t *testing.T) {
	var buf bytes.Buffer
	s := svg.New(&buf, 10, 10)
	s.Close()
	n := buf.Len()
	s.FillRect(charts.Rect{Width: 1, Height: 1})
	s.Close()
	assert.Equal(t, n, buf.Len())
}

func TestChartRendersBubbles(t *testing.T) {
	ds := charts.NewBubbleDataSet("set", []charts.Entry{
		{X: 0, Y: 1, Size: 4},
		{X: 1, Y: 2, Size: 9},
		{X: 2, Y: 3, Size: 1},
	})
	ds.DrawValues = false
	c := charts.NewChart(300, 200)
	c.SetData(charts.NewBubbleChartData(ds))

	out := render(t, func(s *svg.Surface) { c.Draw(s) })
	assert.Equal(t, 3, c.Renderer().Output().Len())
	assert.GreaterOrEqual(t, strings.Count(out, `fill="#8ceaff"`), 3)
}
