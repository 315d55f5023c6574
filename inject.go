package charts

// pointerEvent is a single injected pointer sample in window coordinates.
type pointerEvent struct {
	x, y    float64
	pressed bool
}

// InjectPress queues a pointer press at the given window coordinates. The
// event is consumed on the next frame.
func (g *chartGame) InjectPress(x, y float64) {
	g.injectQueue = append(g.injectQueue, pointerEvent{x: x, y: y, pressed: true})
}

// InjectMove queues a pointer move with the button held. Use it between
// InjectPress and InjectRelease to pan.
func (g *chartGame) InjectMove(x, y float64) {
	g.injectQueue = append(g.injectQueue, pointerEvent{x: x, y: y, pressed: true})
}

// InjectRelease queues a pointer release at the given window coordinates.
func (g *chartGame) InjectRelease(x, y float64) {
	g.injectQueue = append(g.injectQueue, pointerEvent{x: x, y: y})
}

// InjectTap queues a press followed by a release at the same point. A tap
// selects the bubble under it. Consumes two frames.
func (g *chartGame) InjectTap(x, y float64) {
	g.InjectPress(x, y)
	g.InjectRelease(x, y)
}

// InjectDrag queues a press at (fromX, fromY), frames-2 interpolated moves
// and a release at (toX, toY). Minimum frames is 2.
func (g *chartGame) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	g.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		g.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	g.InjectRelease(toX, toY)
}

// processInjectedInput pops one event and feeds it through pointer.
// Returns true if an event was consumed, in which case real mouse input is
// skipped for the frame.
func (g *chartGame) processInjectedInput() bool {
	if len(g.injectQueue) == 0 {
		return false
	}
	evt := g.injectQueue[0]
	copy(g.injectQueue, g.injectQueue[1:])
	g.injectQueue = g.injectQueue[:len(g.injectQueue)-1]

	g.pointer(evt.x, evt.y, evt.pressed)
	return true
}

// pointer advances the press/drag/tap state machine with one sample.
func (g *chartGame) pointer(x, y float64, pressed bool) {
	switch {
	case pressed && !g.down:
		g.down = true
		g.dragging = false
		g.pressX, g.pressY = x, y
		g.lastX, g.lastY = x, y
	case pressed:
		if absf(x-g.pressX) > tapSlop || absf(y-g.pressY) > tapSlop {
			g.dragging = true
		}
		if g.dragging {
			g.chart.Pan(x-g.lastX, y-g.lastY)
		}
		g.lastX, g.lastY = x, y
	case g.down:
		if !g.dragging {
			g.chart.HighlightAt(x, y)
		} else if x != g.lastX || y != g.lastY {
			g.chart.Pan(x-g.lastX, y-g.lastY)
		}
		g.down = false
		g.dragging = false
	}
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
