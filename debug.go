package charts

import (
	"fmt"
	"image"
	"os"
	"time"
)

// frameStats holds per-frame timing and draw metrics.
// Only populated when Chart.Debug is true.
type frameStats struct {
	drawTime   time.Duration
	marks      int
	primitives int
	highlights int
	callouts   int
}

// debugLog prints frame stats to stderr.
func (c *Chart) debugLog(stats frameStats) {
	if !c.Debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[charts] draw: %v | marks: %d | primitives: %d | highlights: %d | callouts: %d\n",
		stats.drawTime, stats.marks, stats.primitives, stats.highlights, stats.callouts)
}

// warn reports a skipped frame once per chart.
func (c *Chart) warn(err error) {
	if c.warned || !c.Debug {
		return
	}
	c.warned = true
	_, _ = fmt.Fprintf(os.Stderr, "[charts] warning: draw skipped: %v\n", err)
}

// statsSurface counts the pixel-producing calls made on the wrapped Surface.
type statsSurface struct {
	Surface
	primitives int
}

func (s *statsSurface) StrokeLine(x0, y0, x1, y1 float64) {
	s.primitives++
	s.Surface.StrokeLine(x0, y0, x1, y1)
}

func (s *statsSurface) FillRect(r Rect) {
	s.primitives++
	s.Surface.FillRect(r)
}

func (s *statsSurface) StrokeRect(r Rect) {
	s.primitives++
	s.Surface.StrokeRect(r)
}

func (s *statsSurface) FillEllipse(r Rect) {
	s.primitives++
	s.Surface.FillEllipse(r)
}

func (s *statsSurface) StrokeEllipse(r Rect) {
	s.primitives++
	s.Surface.StrokeEllipse(r)
}

func (s *statsSurface) DrawText(str string, x, y float64, f Font, c Color) {
	s.primitives++
	s.Surface.DrawText(str, x, y, f, c)
}

func (s *statsSurface) DrawImage(img image.Image, dst Rect) {
	s.primitives++
	s.Surface.DrawImage(img, dst)
}
