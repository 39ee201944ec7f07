package animation

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seqRand returns its values in order, cycling.
type seqRand struct {
	values []float32
	next   int
}

func (r *seqRand) Float32() float32 {
	v := r.values[r.next%len(r.values)]
	r.next++
	return v
}

// randFor returns draws that make Click produce velocity v for max speed m.
func randFor(v mgl32.Vec3, m float32) *seqRand {
	return &seqRand{values: []float32{(v[0] + m) / (2 * m), (v[1] + m) / (2 * m), (v[2] + m) / (2 * m)}}
}

func assertVecInDelta(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-6, "axis %d", i)
	}
}

func TestSpinnerStartsIdle(t *testing.T) {
	s := NewSpinner(DefaultSpinParams())
	assert.Equal(t, SpinState{}, s.State())
	assert.Equal(t, mgl32.Vec3{}, s.Step(), "an idle step must not rotate")
	assert.False(t, s.State().Spinning)
}

func TestClickFromIdleStartsSpinInRange(t *testing.T) {
	params := DefaultSpinParams()
	rng := NewRand(42)
	for i := 0; i < 200; i++ {
		s := NewSpinner(params)
		require.True(t, s.Click(rng))

		state := s.State()
		assert.True(t, state.Spinning)
		for axis, v := range state.Velocity {
			assert.GreaterOrEqual(t, v, -params.MaxSpeed, "axis %d", axis)
			assert.LessOrEqual(t, v, params.MaxSpeed, "axis %d", axis)
		}
	}
}

func TestClickWhileSpinningIsIgnored(t *testing.T) {
	s := NewSpinner(DefaultSpinParams())
	require.True(t, s.Click(randFor(mgl32.Vec3{0.1, -0.08, 0.05}, 0.1)))
	s.Step()
	before := s.State()

	for i := 0; i < 5; i++ {
		assert.False(t, s.Click(&seqRand{values: []float32{0, 0.3, 0.9}}))
		assert.False(t, s.Start(mgl32.Vec3{1, 1, 1}))
	}
	assert.Equal(t, before, s.State())
}

func TestOneStepAfterMockedClick(t *testing.T) {
	s := NewSpinner(DefaultSpinParams())
	require.True(t, s.Click(randFor(mgl32.Vec3{0.1, -0.08, 0.05}, 0.1)))
	assertVecInDelta(t, mgl32.Vec3{0.1, -0.08, 0.05}, s.State().Velocity)

	delta := s.Step()

	assertVecInDelta(t, mgl32.Vec3{0.1, -0.08, 0.05}, delta)
	assertVecInDelta(t, mgl32.Vec3{0.099, -0.0792, 0.0495}, s.State().Velocity)
	assert.True(t, s.State().Spinning)
}

func TestBelowThresholdStopsAfterOneUpdate(t *testing.T) {
	s := NewSpinner(DefaultSpinParams())
	require.True(t, s.Start(mgl32.Vec3{0.0009, 0.0005, -0.0003}))

	s.Step()

	assert.False(t, s.State().Spinning)
}

func TestStopRequiresAllAxesBelowThreshold(t *testing.T) {
	s := NewSpinner(SpinParams{MaxSpeed: 0.1, Decay: 0.5, Threshold: 0.001})
	// x and y are already small but z needs several halvings.
	require.True(t, s.Start(mgl32.Vec3{0.0001, -0.0001, 0.01}))

	steps := 0
	for s.State().Spinning {
		s.Step()
		steps++
		require.Less(t, steps, 100)
	}
	// 0.01 * 0.5^n < 0.001 first holds at n = 4.
	assert.Equal(t, 4, steps)
}

func TestDecayIsMonotonicUntilIdle(t *testing.T) {
	s := NewSpinner(DefaultSpinParams())
	require.True(t, s.Click(NewRand(7)))

	prev := s.State().Velocity
	for s.State().Spinning {
		s.Step()
		cur := s.State().Velocity
		for axis := range cur {
			assert.LessOrEqual(t, mgl32.Abs(cur[axis]), mgl32.Abs(prev[axis]), "axis %d grew", axis)
		}
		prev = cur
	}

	// No spontaneous restart.
	for i := 0; i < 100; i++ {
		assert.Equal(t, mgl32.Vec3{}, s.Step())
		assert.False(t, s.State().Spinning)
	}
}

func TestNewSessionAfterIdle(t *testing.T) {
	s := NewSpinner(DefaultSpinParams())
	require.True(t, s.Start(mgl32.Vec3{0.0009, 0, 0}))
	s.Step()
	require.False(t, s.State().Spinning)

	assert.True(t, s.Click(randFor(mgl32.Vec3{0.05, 0.05, 0.05}, 0.1)))
	assertVecInDelta(t, mgl32.Vec3{0.05, 0.05, 0.05}, s.State().Velocity)
}

func TestSetParamsAppliesToRunningSpin(t *testing.T) {
	s := NewSpinner(DefaultSpinParams())
	require.True(t, s.Start(mgl32.Vec3{0.1, 0.1, 0.1}))

	s.SetParams(SpinParams{MaxSpeed: 0.1, Decay: 0.5, Threshold: 0.001})
	s.Step()

	assertVecInDelta(t, mgl32.Vec3{0.05, 0.05, 0.05}, s.State().Velocity)
}

func TestSpinStrength(t *testing.T) {
	s := SpinState{Velocity: mgl32.Vec3{0.02, -0.05, 0.01}, Spinning: true}
	assert.InDelta(t, 0.5, s.Strength(0.1), 1e-6)
	assert.Equal(t, float32(1), s.Strength(0.01))
	assert.Equal(t, float32(0), s.Strength(0))
	assert.Equal(t, float32(0), SpinState{}.Strength(0.1))
}
