package animation

import (
	"github.com/go-gl/mathgl/mgl32"
)

// SpinParams tune the cube spin. Decay must be in (0, 1).
type SpinParams struct {
	MaxSpeed  float32 // Each axis starts uniform in [-MaxSpeed, MaxSpeed)
	Decay     float32 // Velocity multiplier applied every tick
	Threshold float32 // Spin ends once every axis is below this
}

func DefaultSpinParams() SpinParams {
	return SpinParams{
		MaxSpeed:  0.1,
		Decay:     0.99,
		Threshold: 0.001,
	}
}

// SpinState is the angular velocity of the cube in radians per tick. The zero
// value is Idle.
type SpinState struct {
	Velocity mgl32.Vec3
	Spinning bool
}

// Spinner is the Idle/Spinning state machine driven by clicks and ticks.
type Spinner struct {
	params SpinParams
	state  SpinState
}

func NewSpinner(params SpinParams) *Spinner {
	return &Spinner{params: params}
}

func (s *Spinner) State() SpinState {
	return s.state
}

func (s *Spinner) Params() SpinParams {
	return s.params
}

// SetParams changes the tuning. A running spin keeps its velocity and decays
// with the new factor from the next Step.
func (s *Spinner) SetParams(params SpinParams) {
	s.params = params
}

// Click starts a spin with a random velocity. It reports whether a session
// started; clicks while Spinning are ignored.
func (s *Spinner) Click(rng Rand) bool {
	if s.state.Spinning {
		return false
	}
	var v mgl32.Vec3
	for i := range v {
		v[i] = rng.Float32()*2*s.params.MaxSpeed - s.params.MaxSpeed
	}
	return s.Start(v)
}

// Start begins a spin with velocity v unless one is already running.
func (s *Spinner) Start(v mgl32.Vec3) bool {
	if s.state.Spinning {
		return false
	}
	s.state = SpinState{Velocity: v, Spinning: true}
	return true
}

// Step advances one tick and returns the rotation to add to the cube. While
// Spinning that is the current velocity, after which the velocity decays and
// the spin ends if all three axes are below Threshold. Idle returns zero.
func (s *Spinner) Step() mgl32.Vec3 {
	if !s.state.Spinning {
		return mgl32.Vec3{}
	}
	delta := s.state.Velocity
	s.state.Velocity = delta.Mul(s.params.Decay)

	v := s.state.Velocity
	if mgl32.Abs(v[0]) < s.params.Threshold &&
		mgl32.Abs(v[1]) < s.params.Threshold &&
		mgl32.Abs(v[2]) < s.params.Threshold {
		s.state.Spinning = false
	}
	return delta
}

// Strength is the largest axis speed relative to maxSpeed, in [0, 1].
func (s SpinState) Strength(maxSpeed float32) float32 {
	if maxSpeed <= 0 {
		return 0
	}
	peak := float32(0)
	for _, c := range s.Velocity {
		if a := mgl32.Abs(c); a > peak {
			peak = a
		}
	}
	return mgl32.Clamp(peak/maxSpeed, 0, 1)
}
