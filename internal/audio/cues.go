// Package audio plays short synthesized cues for arena events.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"lavahop/internal/arena"
)

const sampleRate = beep.SampleRate(44100)

// Tone is one synthesized note.
type Tone struct {
	Freq     float64
	Duration time.Duration
	// Volume is a linear gain in (0, 1].
	Volume float64
}

// CueFor maps an arena event onto a tone. Events without a sound report
// false.
func CueFor(e arena.Event) (Tone, bool) {
	switch e.Kind {
	case arena.EventClaimed:
		// Higher values ring higher.
		return Tone{Freq: 440 * math.Pow(2, (float64(e.Value)-1)/12), Duration: 60 * time.Millisecond, Volume: 0.4}, true
	case arena.EventStateChanged:
		switch e.To {
		case arena.StateFalling:
			return Tone{Freq: 196, Duration: 180 * time.Millisecond, Volume: 0.5}, true
		case arena.StateDying:
			return Tone{Freq: 110, Duration: 350 * time.Millisecond, Volume: 0.6}, true
		}
	case arena.EventRespawned:
		return Tone{Freq: 660, Duration: 90 * time.Millisecond, Volume: 0.35}, true
	case arena.EventScored:
		return Tone{Freq: 880, Duration: 40 * time.Millisecond, Volume: 0.25}, true
	case arena.EventPhaseChanged:
		if e.Phase == arena.PhaseOver {
			return Tone{Freq: 523.25, Duration: 600 * time.Millisecond, Volume: 0.5}, true
		}
	}
	return Tone{}, false
}

// Streamer renders the tone at sr with a short linear fade-out.
func (t Tone) Streamer(sr beep.SampleRate) (beep.Streamer, error) {
	sine, err := generators.SineTone(sr, t.Freq)
	if err != nil {
		return nil, fmt.Errorf("audio: tone %.1fHz: %w", t.Freq, err)
	}
	n := sr.N(t.Duration)
	var s beep.Streamer = &fadeOut{streamer: beep.Take(n, sine), total: n}
	vol := t.Volume
	if vol <= 0 || vol > 1 {
		vol = 1
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}, nil
}

type fadeOut struct {
	streamer beep.Streamer
	pos      int
	total    int
}

func (f *fadeOut) Stream(samples [][2]float64) (int, bool) {
	n, ok := f.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1 - float64(f.pos)/float64(f.total)
		if gain < 0 {
			gain = 0
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		f.pos++
	}
	return n, ok
}

func (f *fadeOut) Err() error { return f.streamer.Err() }

// Player mixes cues into the speaker. The zero value is silent; call Init to
// open the audio device.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewPlayer returns a silent player.
func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}}
}

// Init opens the speaker. Failure leaves the player silent.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Enabled reports whether cues reach the speaker.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// Handle plays a cue for every event that has one.
func (p *Player) Handle(events []arena.Event) {
	if !p.Enabled() {
		return
	}
	for _, e := range events {
		tone, ok := CueFor(e)
		if !ok {
			continue
		}
		s, err := tone.Streamer(sampleRate)
		if err != nil {
			continue
		}
		speaker.Lock()
		p.mixer.Add(s)
		speaker.Unlock()
	}
}

// Close silences everything still queued.
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
