package engine

import "math"

// DragMode is what a held mouse button does to the camera.
type DragMode int

const (
	DragNone DragMode = iota
	DragOrbit
	DragPan
)

// Button is an engine-level mouse button, independent of glfw so the tracker
// can be tested headless.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// pointerTracker separates clicks from drags. A left press released without
// the pointer ever leaving the slop radius is a click; any further movement
// turns it into an orbit drag. Right and middle buttons pan.
type pointerTracker struct {
	slop float64

	held     bool
	button   Button
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	dragging bool
}

func newPointerTracker(slop float64) *pointerTracker {
	return &pointerTracker{slop: slop}
}

// Press starts tracking button at (x, y). A second button pressed while one
// is held is ignored.
func (p *pointerTracker) Press(button Button, x, y float64) {
	if p.held {
		return
	}
	p.held = true
	p.button = button
	p.startX, p.startY = x, y
	p.lastX, p.lastY = x, y
	p.dragging = false
}

// Move reports the pointer delta since the last call and the camera action
// it should drive. Nothing is reported until the pointer leaves the slop
// radius, so a slightly shaky click does not nudge the camera.
func (p *pointerTracker) Move(x, y float64) (dx, dy float64, mode DragMode) {
	if !p.held {
		return 0, 0, DragNone
	}
	if !p.dragging {
		if math.Hypot(x-p.startX, y-p.startY) <= p.slop {
			return 0, 0, DragNone
		}
		p.dragging = true
	}
	dx, dy = x-p.lastX, y-p.lastY
	p.lastX, p.lastY = x, y
	if p.button == ButtonLeft {
		return dx, dy, DragOrbit
	}
	return dx, dy, DragPan
}

// Release ends tracking and reports whether the gesture was a click.
func (p *pointerTracker) Release(button Button, x, y float64) bool {
	if !p.held || button != p.button {
		return false
	}
	p.held = false
	click := button == ButtonLeft && !p.dragging &&
		math.Hypot(x-p.startX, y-p.startY) <= p.slop
	p.dragging = false
	return click
}

// Cancel forgets a held button, e.g. when the window loses focus.
func (p *pointerTracker) Cancel() {
	p.held = false
	p.dragging = false
}

func (p *pointerTracker) Held() bool {
	return p.held
}
