package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClickWithinSlop(t *testing.T) {
	p := newPointerTracker(4)
	p.Press(ButtonLeft, 100, 100)

	_, _, mode := p.Move(102, 101)
	assert.Equal(t, DragNone, mode)
	assert.True(t, p.Release(ButtonLeft, 102, 101))
	assert.False(t, p.Held())
}

func TestDragIsNotAClick(t *testing.T) {
	p := newPointerTracker(4)
	p.Press(ButtonLeft, 100, 100)

	dx, dy, mode := p.Move(110, 95)
	assert.Equal(t, DragOrbit, mode)
	assert.Equal(t, 10.0, dx)
	assert.Equal(t, -5.0, dy)

	dx, dy, mode = p.Move(111, 95)
	assert.Equal(t, DragOrbit, mode)
	assert.Equal(t, 1.0, dx)
	assert.Equal(t, 0.0, dy)

	// returning to the start does not turn the drag back into a click
	p.Move(100, 100)
	assert.False(t, p.Release(ButtonLeft, 100, 100))
}

func TestReleaseOutsideSlopWithoutMove(t *testing.T) {
	p := newPointerTracker(4)
	p.Press(ButtonLeft, 0, 0)
	assert.False(t, p.Release(ButtonLeft, 20, 0))
}

func TestRightButtonPansAndNeverClicks(t *testing.T) {
	p := newPointerTracker(4)
	p.Press(ButtonRight, 0, 0)
	assert.False(t, p.Release(ButtonRight, 0, 0))

	p.Press(ButtonRight, 0, 0)
	_, _, mode := p.Move(0, 30)
	assert.Equal(t, DragPan, mode)
	assert.False(t, p.Release(ButtonRight, 0, 30))

	p.Press(ButtonMiddle, 0, 0)
	_, _, mode = p.Move(30, 0)
	assert.Equal(t, DragPan, mode)
}

func TestSecondButtonIgnoredWhileHeld(t *testing.T) {
	p := newPointerTracker(4)
	p.Press(ButtonLeft, 0, 0)
	p.Press(ButtonRight, 50, 50)

	assert.False(t, p.Release(ButtonRight, 50, 50))
	assert.True(t, p.Held())
	assert.True(t, p.Release(ButtonLeft, 1, 1))
}

func TestMoveWithoutPress(t *testing.T) {
	p := newPointerTracker(4)
	dx, dy, mode := p.Move(10, 10)
	assert.Equal(t, DragNone, mode)
	assert.Zero(t, dx)
	assert.Zero(t, dy)
	assert.False(t, p.Release(ButtonLeft, 10, 10))
}

func TestCancel(t *testing.T) {
	p := newPointerTracker(4)
	p.Press(ButtonLeft, 0, 0)
	p.Cancel()
	assert.False(t, p.Held())
	assert.False(t, p.Release(ButtonLeft, 0, 0))
}
