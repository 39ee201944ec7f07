package audio

import (
	"math/rand"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func drain(s beep.Streamer) ([][2]float64, bool) {
	var out [][2]float64
	buf := make([][2]float64, 512)
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out, true
		}
	}
	return out, false
}

func TestRattleIsFiniteAndBounded(t *testing.T) {
	rate := beep.SampleRate(8000)
	g := NewRattleGenerator(rate, DefaultRattleParams(), rand.New(rand.NewSource(1)))

	samples, ended := drain(g)
	if !ended {
		t.Fatal("rattle never ended")
	}
	if len(samples) != rate.N(600*time.Millisecond) {
		t.Errorf("expected %d samples, got %d", rate.N(600*time.Millisecond), len(samples))
	}
	if len(samples) != g.Len() {
		t.Errorf("Len() = %d, streamed %d", g.Len(), len(samples))
	}

	nonZero := 0
	for i, s := range samples {
		if s[0] < -1 || s[0] > 1 {
			t.Fatalf("sample %d out of range: %f", i, s[0])
		}
		if s[0] != s[1] {
			t.Fatalf("sample %d is not mono: %v", i, s)
		}
		if s[0] != 0 {
			nonZero++
		}
	}
	if nonZero == 0 {
		t.Error("rattle is silent")
	}
	if g.Err() != nil {
		t.Errorf("unexpected error: %v", g.Err())
	}
}

func TestRattleWithoutHitsIsSilent(t *testing.T) {
	params := DefaultRattleParams()
	params.Hits = 0
	g := NewRattleGenerator(beep.SampleRate(8000), params, rand.New(rand.NewSource(1)))

	samples, _ := drain(g)
	for i, s := range samples {
		if s[0] != 0 {
			t.Fatalf("sample %d should be silent, got %f", i, s[0])
		}
	}
}

func TestRattleHitsStayInsideDuration(t *testing.T) {
	rate := beep.SampleRate(8000)
	params := DefaultRattleParams()
	g := NewRattleGenerator(rate, params, rand.New(rand.NewSource(7)))

	if len(g.onsets) != params.Hits {
		t.Fatalf("expected %d onsets, got %d", params.Hits, len(g.onsets))
	}
	for i, onset := range g.onsets {
		if onset < 0 || onset+g.hitLen > g.total {
			t.Errorf("hit %d at %d overruns %d samples", i, onset, g.total)
		}
		if i > 0 && g.gains[i] > g.gains[i-1] {
			t.Errorf("hit %d is louder than the one before", i)
		}
	}
}

func TestPlayerWithoutSpeakerIsSilent(t *testing.T) {
	p := NewPlayer(rand.New(rand.NewSource(1)), 0.5)
	if p.Enabled() {
		t.Fatal("player should start disabled")
	}
	// must not touch the speaker
	p.PlayRattle(1)
	p.Close()
}

func TestPlayerVolumeScaling(t *testing.T) {
	p := NewPlayer(rand.New(rand.NewSource(1)), 0)
	if p.rattle(1) != nil {
		t.Error("zero volume should produce no streamer")
	}
	p.SetVolume(1)
	if p.rattle(0) == nil {
		t.Error("a weak spin still rattles")
	}
}
