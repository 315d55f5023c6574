// Package charts draws zoomable bubble charts with a horizontal-bar style
// category axis for [Ebitengine], PNG and SVG.
//
// A [Chart] owns everything one chart needs: the [ViewPortHandler] tracking
// pan and zoom, the [Transformer] mapping data values to pixels, the
// [ChartAnimator], the data and axis, the [BubbleRenderer] and the
// [XAxisRendererHorizontalBar]. Drawing goes through the small [Surface]
// interface so the same chart renders to a window, an image or a document.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	ds := charts.NewBubbleDataSet("sales", []charts.Entry{
//		{X: 0, Y: 12, Size: 40},
//		{X: 1, Y: 18, Size: 25},
//	})
//	c := charts.NewChart(640, 480)
//	c.SetData(charts.NewBubbleChartData(ds))
//	charts.Run(c, charts.RunConfig{Title: "Sales", Width: 640, Height: 480})
//
// For full control, implement [ebiten.Game] yourself, call [Chart.Update]
// each tick and draw through an [EbitenSurface]:
//
//	func (g *Game) Draw(screen *ebiten.Image) {
//		g.surface.Begin(screen)
//		g.chart.Draw(g.surface)
//	}
//
// Headless rendering uses the raster and svg subpackages, and
// [LoadChartSpec] builds a chart from a YAML description.
//
// # Bubbles
//
// A bubble's diameter comes from [ShapeSize]: the reference size (the
// smaller of the content height and one x unit in pixels) scaled by the
// square root of the entry's share of the largest size, so areas compare
// linearly. Entries are culled against the content rect; because entries
// are sorted by x, the first bubble past the right edge ends the pass.
//
// Every drawn bubble is recorded in the renderer's [RenderOutput], keyed
// by data set and entry index. [Chart.HighlightAt] hit-tests against it.
//
// # Labels
//
// Entry labels switch between three layouts depending on whether the x
// scale exceeds the data set's ZoomThreshold and whether the entry is
// highlighted: a label below the bubble, a compact white label inside it,
// and a multi-line detail text produced by [BubbleRenderer.Detail].
//
// # Scripted playback
//
// [LoadScript] reads a YAML list of taps, drags, zooms, waits and
// screenshots. Set it as RunConfig.Script to replay the steps through the
// same gesture handling as the mouse, one step per frame.
//
// # Collaborators
//
// Renderers depend on interfaces ([ViewPort], [PixelTransformer],
// [Animator], [BubbleDataProvider]). A renderer with a missing collaborator
// reports it from Validate and draws nothing.
package charts
