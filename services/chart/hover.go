package chart

import "math"

// Listener maps cursor columns to the nearest plotted point. A Renderer
// owns exactly one live Listener; each Render releases the previous one.
type Listener struct {
	points   []point
	selected int
	released bool
}

func newListener(points []point) *Listener {
	return &Listener{points: points, selected: -1}
}

// Release detaches the listener from its points. Released listeners ignore
// further input.
func (l *Listener) Release() {
	l.released = true
	l.points = nil
	l.selected = -1
}

// Released reports whether Release has been called.
func (l *Listener) Released() bool {
	return l.released
}

// nearest selects the point whose x is closest to x.
func (l *Listener) nearest(x float64) bool {
	if l.released || len(l.points) == 0 {
		return false
	}

	best, bestDist := 0, math.Inf(1)
	for i, p := range l.points {
		if d := math.Abs(p.x - x); d < bestDist {
			best, bestDist = i, d
		}
	}
	l.selected = best
	return true
}

// step moves the selection by delta points, starting from the last point
// when nothing is selected yet.
func (l *Listener) step(delta int) bool {
	if l.released || len(l.points) == 0 {
		return false
	}

	if l.selected < 0 {
		l.selected = len(l.points) - 1
		if delta > 0 {
			l.selected = 0
		}
		return true
	}

	l.selected = min(max(l.selected+delta, 0), len(l.points)-1)
	return true
}

func (l *Listener) clear() {
	l.selected = -1
}

func (l *Listener) current() (point, bool) {
	if l.released || l.selected < 0 || l.selected >= len(l.points) {
		return point{}, false
	}
	return l.points[l.selected], true
}
