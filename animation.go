package charts

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Animator supplies the entrance animation phases. Both are fractions in
// [0, 1]; renderers multiply geometry by them.
type Animator interface {
	PhaseX() float64
	PhaseY() float64
}

// StaticAnimator reports fixed phases.
type StaticAnimator struct {
	X, Y float64
}

func (a StaticAnimator) PhaseX() float64 { return a.X }
func (a StaticAnimator) PhaseY() float64 { return a.Y }

// Completed is a StaticAnimator with both phases at 1.
var Completed = StaticAnimator{X: 1, Y: 1}

// ChartAnimator tweens phaseX and phaseY from 0 to 1. Phases are 1 when no
// animation has been started.
//
// There is no global animation clock: callers advance it with Update.
type ChartAnimator struct {
	phaseX, phaseY float64

	tweenX *gween.Tween
	tweenY *gween.Tween

	// OnUpdate is called after each Update that changed a phase.
	OnUpdate func()
}

// NewChartAnimator returns an animator at full phase.
func NewChartAnimator() *ChartAnimator {
	return &ChartAnimator{phaseX: 1, phaseY: 1}
}

func (a *ChartAnimator) PhaseX() float64 { return a.phaseX }
func (a *ChartAnimator) PhaseY() float64 { return a.phaseY }

// SetPhase sets both phases directly and stops any running animation.
func (a *ChartAnimator) SetPhase(x, y float64) {
	a.Stop()
	a.phaseX = x
	a.phaseY = y
}

// AnimateX tweens phaseX from 0 to 1 over duration seconds.
func (a *ChartAnimator) AnimateX(duration float32, fn ease.TweenFunc) {
	if fn == nil {
		fn = ease.Linear
	}
	a.phaseX = 0
	a.tweenX = gween.New(0, 1, duration, fn)
}

// AnimateY tweens phaseY from 0 to 1 over duration seconds.
func (a *ChartAnimator) AnimateY(duration float32, fn ease.TweenFunc) {
	if fn == nil {
		fn = ease.Linear
	}
	a.phaseY = 0
	a.tweenY = gween.New(0, 1, duration, fn)
}

// AnimateXY tweens both phases with independent durations and easing.
func (a *ChartAnimator) AnimateXY(durationX, durationY float32, fnX, fnY ease.TweenFunc) {
	a.AnimateX(durationX, fnX)
	a.AnimateY(durationY, fnY)
}

// Animating reports whether either phase is still tweening.
func (a *ChartAnimator) Animating() bool {
	return a.tweenX != nil || a.tweenY != nil
}

// Stop ends any running animation, leaving the phases where they are.
func (a *ChartAnimator) Stop() {
	a.tweenX = nil
	a.tweenY = nil
}

// Update advances the tweens by dt seconds and reports whether a phase
// changed.
func (a *ChartAnimator) Update(dt float32) bool {
	if !a.Animating() {
		return false
	}
	if a.tweenX != nil {
		val, done := a.tweenX.Update(dt)
		a.phaseX = float64(val)
		if done {
			a.phaseX = 1
			a.tweenX = nil
		}
	}
	if a.tweenY != nil {
		val, done := a.tweenY.Update(dt)
		a.phaseY = float64(val)
		if done {
			a.phaseY = 1
			a.tweenY = nil
		}
	}
	if a.OnUpdate != nil {
		a.OnUpdate()
	}
	return true
}
