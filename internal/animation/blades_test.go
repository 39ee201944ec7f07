package animation

import (
	"DiceScene/internal/renderer"
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newBladeArena(t *testing.T, n int, rng Rand) (*renderer.Arena, []Blade) {
	t.Helper()
	arena := renderer.NewArena()
	blades := make([]Blade, n)
	for i := range blades {
		m := renderer.NewModel("blade", nil, nil)
		m.SetPosition((rng.Float32()-0.5)*20, rng.Float32()*2, (rng.Float32()-0.5)*20)
		m.SetEuler(rng.Float32()*math.Pi, rng.Float32()*math.Pi, rng.Float32()*math.Pi)
		blades[i] = Blade{Handle: arena.Add(m), Speed: NewBladeSpeed(rng)}
	}
	return arena, blades
}

func TestBladeSpeedRange(t *testing.T) {
	rng := NewRand(3)
	for i := 0; i < 500; i++ {
		s := NewBladeSpeed(rng)
		for axis := range s {
			assert.GreaterOrEqual(t, s[axis], float32(-BladeSpeedRange/2))
			assert.Less(t, s[axis], float32(BladeSpeedRange/2))
		}
	}
}

func TestBladeRotationAfterNFrames(t *testing.T) {
	rng := NewRand(11)
	arena, blades := newBladeArena(t, 100, rng)

	initial := make([]mgl32.Vec3, len(blades))
	for i, b := range blades {
		m, ok := arena.Get(b.Handle)
		require.True(t, ok)
		initial[i] = m.Euler
	}

	clock := &fixedClock{now: time.Unix(1700000000, 0)}
	b := NewBlades(arena, blades, DefaultSwayParams())
	const frames = 240
	for i := 0; i < frames; i++ {
		b.Step(clock.Now())
		clock.Advance(16 * time.Millisecond)
	}

	for i, blade := range blades {
		m, _ := arena.Get(blade.Handle)
		want := initial[i].Add(blade.Speed.Mul(frames))
		for axis := range want {
			assert.InDelta(t, want[axis], m.Euler[axis], 1e-3, "blade %d axis %d", i, axis)
		}
	}
}

func TestBladeSpeedIsNeverRewritten(t *testing.T) {
	arena, blades := newBladeArena(t, 10, NewRand(5))
	speeds := make([]mgl32.Vec3, len(blades))
	for i, b := range blades {
		speeds[i] = b.Speed
	}

	b := NewBlades(arena, blades, DefaultSwayParams())
	for i := 0; i < 50; i++ {
		b.Step(time.Now())
	}
	for i := 0; i < b.Len(); i++ {
		assert.Equal(t, speeds[i], b.At(i).Speed)
	}
}

func TestSwayMovesAllBladesTogether(t *testing.T) {
	arena, blades := newBladeArena(t, 5, NewRand(9))
	before := make([]float32, len(blades))
	for i, b := range blades {
		m, _ := arena.Get(b.Handle)
		before[i] = m.Y()
	}

	now := time.UnixMilli(1571) // sin(1.571) is close to 1
	params := DefaultSwayParams()
	NewBlades(arena, blades, params).Step(now)

	offset := SwayOffset(now, params)
	assert.InDelta(t, 0.01, offset, 1e-5)
	for i, b := range blades {
		m, _ := arena.Get(b.Handle)
		assert.InDelta(t, before[i]+offset, m.Y(), 1e-6)
	}
}

func TestSwayAccumulates(t *testing.T) {
	arena, blades := newBladeArena(t, 1, NewRand(1))
	m, _ := arena.Get(blades[0].Handle)
	start := m.Y()

	now := time.UnixMilli(1571)
	b := NewBlades(arena, blades, DefaultSwayParams())
	b.Step(now)
	b.Step(now)

	assert.InDelta(t, start+2*SwayOffset(now, b.Params()), m.Y(), 1e-6)
}

func TestSwayOffsetZeroAmplitude(t *testing.T) {
	assert.Zero(t, SwayOffset(time.Now(), SwayParams{Amplitude: 0, Frequency: 0.001}))
}
