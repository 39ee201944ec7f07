package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Rand is the noise source for the rattle. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// RattleParams shape the die rattle: Hits short noise bursts spread over
// Duration, each decaying over HitLength.
type RattleParams struct {
	Duration  time.Duration
	Hits      int
	HitLength time.Duration
	Gain      float64
}

func DefaultRattleParams() RattleParams {
	return RattleParams{
		Duration:  600 * time.Millisecond,
		Hits:      7,
		HitLength: 25 * time.Millisecond,
		Gain:      0.6,
	}
}

// RattleGenerator streams a finite rattle. Hit onsets get closer together and
// quieter toward the end, like a die settling.
type RattleGenerator struct {
	sr     beep.SampleRate
	rng    Rand
	total  int
	hitLen int
	onsets []int
	gains  []float64
	pos    int
	low    float64
}

func NewRattleGenerator(sr beep.SampleRate, params RattleParams, rng Rand) *RattleGenerator {
	g := &RattleGenerator{
		sr:     sr,
		rng:    rng,
		total:  sr.N(params.Duration),
		hitLen: sr.N(params.HitLength),
	}
	if params.Hits <= 0 || g.total <= 0 || g.hitLen <= 0 {
		return g
	}
	span := g.total - g.hitLen
	if span < 0 {
		span = 0
	}
	for i := 0; i < params.Hits; i++ {
		// sqrt spacing packs the later hits together
		frac := math.Sqrt(float64(i) / float64(params.Hits))
		jitter := (rng.Float64() - 0.5) * 0.5 / float64(params.Hits)
		frac = math.Max(0, math.Min(1, frac+jitter))
		g.onsets = append(g.onsets, int(frac*float64(span)))
		g.gains = append(g.gains, params.Gain*(1-0.6*float64(i)/float64(params.Hits)))
	}
	return g
}

// Len is the rattle length in samples.
func (g *RattleGenerator) Len() int {
	return g.total
}

func (g *RattleGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.total {
		return 0, false
	}
	for i := range samples {
		if g.pos >= g.total {
			break
		}
		sample := 0.0
		for h, onset := range g.onsets {
			d := g.pos - onset
			if d < 0 || d >= g.hitLen {
				continue
			}
			env := math.Exp(-6 * float64(d) / float64(g.hitLen))
			sample += g.gains[h] * env * (g.rng.Float64()*2 - 1)
		}
		// one-pole low-pass takes the hiss off the clicks
		g.low += 0.35 * (sample - g.low)
		sample = math.Max(-1, math.Min(1, g.low))

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
		n++
	}
	return n, true
}

func (g *RattleGenerator) Err() error {
	return nil
}
