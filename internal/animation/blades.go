package animation

import (
	"DiceScene/internal/logger"
	"DiceScene/internal/renderer"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// BladeSpeedRange is the width of the per-axis rotation speed interval,
// centered on zero.
const BladeSpeedRange = 0.01

type SwayParams struct {
	Amplitude float32 // World units added per tick at the sine peak
	Frequency float64 // Radians per millisecond of wall-clock time
}

func DefaultSwayParams() SwayParams {
	return SwayParams{
		Amplitude: 0.01,
		Frequency: 0.001,
	}
}

// SwayOffset is the vertical offset every blade receives for a tick at now.
func SwayOffset(now time.Time, params SwayParams) float32 {
	return float32(math.Sin(float64(now.UnixMilli())*params.Frequency)) * params.Amplitude
}

// Blade is one animated blade. Speed is fixed at creation.
type Blade struct {
	Handle renderer.Handle
	Speed  mgl32.Vec3
}

// NewBladeSpeed draws a rotation speed, each axis uniform in
// [-BladeSpeedRange/2, BladeSpeedRange/2).
func NewBladeSpeed(rng Rand) mgl32.Vec3 {
	return mgl32.Vec3{
		(rng.Float32() - 0.5) * BladeSpeedRange,
		(rng.Float32() - 0.5) * BladeSpeedRange,
		(rng.Float32() - 0.5) * BladeSpeedRange,
	}
}

// Blades rotates and sways every blade model once per Step.
type Blades struct {
	arena  *renderer.Arena
	blades []Blade
	params SwayParams
}

func NewBlades(arena *renderer.Arena, blades []Blade, params SwayParams) *Blades {
	for _, b := range blades {
		if _, ok := arena.Get(b.Handle); !ok {
			logger.Log.Warn("Blade handle not in arena", zap.Int("handle", int(b.Handle)))
		}
	}
	return &Blades{arena: arena, blades: blades, params: params}
}

func (b *Blades) Len() int {
	return len(b.blades)
}

// At returns blade i.
func (b *Blades) At(i int) Blade {
	return b.blades[i]
}

func (b *Blades) Params() SwayParams {
	return b.params
}

func (b *Blades) SetParams(params SwayParams) {
	b.params = params
}

// Step adds each blade's speed to its rotation and the sway offset for now
// to its height. The offset accumulates across ticks.
func (b *Blades) Step(now time.Time) {
	offset := SwayOffset(now, b.params)
	for _, blade := range b.blades {
		model, ok := b.arena.Get(blade.Handle)
		if !ok {
			continue
		}
		model.Rotate(blade.Speed)
		if offset != 0 {
			model.Translate(mgl32.Vec3{0, offset, 0})
		}
	}
}
