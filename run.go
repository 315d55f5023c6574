package charts

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// Background clears the window each frame. Zero means dark gray.
	Background Color
	ShowFPS    bool
	// ScreenshotDir receives PNGs captured with the S key or a script.
	// Defaults to "screenshots".
	ScreenshotDir string
	// Script, when set, drives the window before real input is read.
	Script *ScriptRunner
	// ExitAfterScript closes the window once Script is done.
	ExitAfterScript bool
}

// zoomStep is the scale factor applied per mouse wheel notch.
const zoomStep = 1.1

// tapSlop is how far the cursor may move between press and release for the
// gesture to count as a tap rather than a drag.
const tapSlop = 4

// chartGame adapts a Chart to ebiten.Game with wheel zoom, drag pan and tap
// selection. R resets the zoom, S saves a screenshot and Escape quits. An
// attached ScriptRunner feeds the same gestures through injectQueue.
type chartGame struct {
	chart   *Chart
	cfg     RunConfig
	surface *EbitenSurface
	fps     *fpsOverlay

	down, dragging bool
	pressX, pressY float64
	lastX, lastY   float64

	injectQueue     []pointerEvent
	screenshotQueue []string
}

// Run opens a window showing chart and blocks until it is closed.
func Run(chart *Chart, cfg RunConfig) error {
	if chart == nil {
		return errors.New("charts: Run: nil chart")
	}
	if cfg.Width <= 0 {
		cfg.Width = int(chart.ViewPortHandler().ChartWidth())
	}
	if cfg.Height <= 0 {
		cfg.Height = int(chart.ViewPortHandler().ChartHeight())
	}
	if cfg.Background.A == 0 {
		cfg.Background = Color{R: 0.118, G: 0.118, B: 0.157, A: 1}
	}
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "screenshots"
	}
	chart.Resize(float64(cfg.Width), float64(cfg.Height))

	g := &chartGame{chart: chart, cfg: cfg}
	if cfg.ShowFPS {
		g.fps = newFPSOverlay()
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run %q: %w", cfg.Title, err)
	}
	return nil
}

func (g *chartGame) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	const dt = 1.0 / 60.0

	if sc := g.cfg.Script; sc != nil {
		if sc.Done() && g.cfg.ExitAfterScript && len(g.screenshotQueue) == 0 {
			return ebiten.Termination
		}
		sc.step(g)
	}

	mx, my := ebiten.CursorPosition()
	if _, wy := ebiten.Wheel(); wy != 0 {
		f := zoomStep
		if wy < 0 {
			f = 1 / zoomStep
		}
		g.chart.Zoom(f, f, float64(mx), float64(my))
	}

	if !g.processInjectedInput() {
		pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
		if pressed || g.down {
			g.pointer(float64(mx), float64(my), pressed)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.chart.ResetZoom()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Screenshot(g.cfg.Title)
	}

	g.chart.Update(dt)
	if g.fps != nil {
		g.fps.update(dt)
	}
	return nil
}

func (g *chartGame) Draw(screen *ebiten.Image) {
	screen.Fill(g.cfg.Background.toRGBA())
	if g.surface == nil {
		g.surface = NewEbitenSurface(screen)
	} else {
		g.surface.Begin(screen)
	}
	g.chart.Draw(g.surface)
	g.flushScreenshots(screen)
	if g.fps != nil {
		g.fps.draw(screen)
	}
}

func (g *chartGame) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}
