package animation

import (
	"DiceScene/internal/events"
	"DiceScene/internal/logger"
	"DiceScene/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Tunables are the animation parameters that can change while running.
type Tunables struct {
	Spin SpinParams
	Sway SwayParams
}

// Loop advances the scene by one frame per Update: it drains queued clicks
// into the spinner, turns the cube by one spin step and steps every blade.
type Loop struct {
	arena   *renderer.Arena
	cube    renderer.Handle
	spinner *Spinner
	blades  *Blades
	queue   *events.Queue
	rng     Rand
	clock   Clock

	tunables    chan Tunables
	onSpinStart func(SpinState)
	ticks       uint64
	sessions    uint64
}

type LoopOptions struct {
	Arena   *renderer.Arena
	Cube    renderer.Handle
	Spinner *Spinner
	Blades  *Blades
	Queue   *events.Queue
	Rand    Rand
	Clock   Clock
}

func NewLoop(opts LoopOptions) *Loop {
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.Rand == nil {
		opts.Rand = NewRand(0)
	}
	if opts.Queue == nil {
		opts.Queue = events.NewQueue()
	}
	if opts.Spinner == nil {
		opts.Spinner = NewSpinner(DefaultSpinParams())
	}
	return &Loop{
		arena:    opts.Arena,
		cube:     opts.Cube,
		spinner:  opts.Spinner,
		blades:   opts.Blades,
		queue:    opts.Queue,
		rng:      opts.Rand,
		clock:    opts.Clock,
		tunables: make(chan Tunables, 1),
	}
}

// OnSpinStart registers fn to run on the update thread whenever a click
// starts a spin session.
func (l *Loop) OnSpinStart(fn func(SpinState)) {
	l.onSpinStart = fn
}

func (l *Loop) Spinner() *Spinner {
	return l.spinner
}

func (l *Loop) Queue() *events.Queue {
	return l.queue
}

// Ticks is the number of Updates run so far.
func (l *Loop) Ticks() uint64 {
	return l.ticks
}

// Retune hands new parameters to the loop. Safe to call from any goroutine;
// they take effect at the start of the next tick and only the latest pending
// set is kept.
func (l *Loop) Retune(t Tunables) {
	for {
		select {
		case l.tunables <- t:
			return
		default:
		}
		select {
		case <-l.tunables:
		default:
		}
	}
}

func (l *Loop) Start() {
	blades := 0
	if l.blades != nil {
		blades = l.blades.Len()
	}
	logger.Log.Info("Animation loop started",
		zap.Int("blades", blades),
		zap.Float32("decay", l.spinner.Params().Decay),
		zap.Float32("threshold", l.spinner.Params().Threshold))
}

func (l *Loop) Update() {
	l.ticks++
	l.applyTunables()

	started := false
	l.queue.Drain(func(kind events.Kind) {
		if kind == events.Click && l.spinner.Click(l.rng) {
			started = true
		}
	})
	if started {
		l.sessions++
		state := l.spinner.State()
		logger.Log.Debug("Spin started",
			zap.Uint64("session", l.sessions),
			zap.Float32s("velocity", state.Velocity[:]))
		if l.onSpinStart != nil {
			l.onSpinStart(state)
		}
	}

	wasSpinning := l.spinner.State().Spinning
	if delta := l.spinner.Step(); delta != (mgl32.Vec3{}) {
		if cube, ok := l.arena.Get(l.cube); ok {
			cube.Rotate(delta)
		}
	}
	if wasSpinning && !l.spinner.State().Spinning {
		logger.Log.Debug("Spin stopped", zap.Uint64("session", l.sessions), zap.Uint64("tick", l.ticks))
	}

	if l.blades != nil {
		l.blades.Step(l.clock.Now())
	}
}

// UpdateFixed does nothing; the scene advances once per displayed frame.
func (l *Loop) UpdateFixed() {}

func (l *Loop) applyTunables() {
	select {
	case t := <-l.tunables:
		l.spinner.SetParams(t.Spin)
		if l.blades != nil {
			l.blades.SetParams(t.Sway)
		}
		logger.Log.Info("Animation retuned",
			zap.Float32("decay", t.Spin.Decay),
			zap.Float32("threshold", t.Spin.Threshold),
			zap.Float32("max_speed", t.Spin.MaxSpeed),
			zap.Float32("sway_amplitude", t.Sway.Amplitude),
			zap.Float64("sway_frequency", t.Sway.Frequency))
	default:
	}
}
