package audio

import (
	"DiceScene/internal/logger"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

const sampleRate = beep.SampleRate(48000)

// Player plays the spin cue through the system speaker. A Player whose
// speaker failed to open stays usable and plays nothing. rng is only used
// under the Player's lock.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	rng         Rand
	params      RattleParams
	volume      float64
	initialized bool
}

func NewPlayer(rng Rand, volume float64) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		rng:    rng,
		params: DefaultRattleParams(),
		volume: volume,
	}
}

// Init opens the speaker. Errors are returned so the caller can log them and
// carry on silently.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	logger.Log.Info("Audio initialized", zap.Int("sampleRate", int(sampleRate)))
	return nil
}

func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// PlayRattle queues one rattle. strength in [0, 1] scales its loudness.
func (p *Player) PlayRattle(strength float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	streamer := p.rattle(strength)
	if streamer == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(streamer)
	speaker.Unlock()
}

func (p *Player) rattle(strength float64) beep.Streamer {
	gain := p.volume * math.Max(0.2, math.Min(1, strength))
	if gain <= 0 {
		return nil
	}
	// Each rattle gets its own source; generators run on the speaker goroutine.
	src := rand.New(rand.NewSource(int64(p.rng.Float64() * math.MaxInt64)))
	return &effects.Volume{
		Streamer: NewRattleGenerator(sampleRate, p.params, src),
		Base:     2,
		Volume:   math.Log2(gain),
	}
}

func (p *Player) SetVolume(volume float64) {
	p.mu.Lock()
	p.volume = volume
	p.mu.Unlock()
}

func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}
