// Package audio synthesizes the game's sound cues with beep. Nothing is loaded
// from disk; every cue is a short sequence of enveloped sine notes.
package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/vovakirdan/mazechase/internal/core"
)

// Cue identifies one synthesized sound.
type Cue int

const (
	CuePickup Cue = iota
	CuePowerPickup
	CueAdversaryEaten
	CueCapture
	CueLevelWin
)

var cueNames = [...]string{"pickup", "power_pickup", "adversary_eaten", "capture", "level_win"}

func (c Cue) String() string {
	if c < 0 || int(c) >= len(cueNames) {
		return "unknown"
	}
	return cueNames[c]
}

// CueForEvent maps a simulation event to the cue that announces it.
func CueForEvent(kind core.EventKind) (Cue, bool) {
	switch kind {
	case core.EventPickup:
		return CuePickup, true
	case core.EventPowerPickup:
		return CuePowerPickup, true
	case core.EventAdversaryEaten:
		return CueAdversaryEaten, true
	case core.EventCapture:
		return CueCapture, true
	case core.EventLevelCleared, core.EventGameWon:
		return CueLevelWin, true
	default:
		return 0, false
	}
}

type note struct {
	freq float64
	dur  time.Duration
}

var recipes = map[Cue][]note{
	CuePickup:         {{660, 40 * time.Millisecond}},
	CuePowerPickup:    {{440, 60 * time.Millisecond}, {660, 60 * time.Millisecond}, {880, 90 * time.Millisecond}},
	CueAdversaryEaten: {{990, 50 * time.Millisecond}, {1320, 80 * time.Millisecond}},
	CueCapture:        {{392, 120 * time.Millisecond}, {330, 120 * time.Millisecond}, {262, 220 * time.Millisecond}},
	CueLevelWin:       {{523, 90 * time.Millisecond}, {659, 90 * time.Millisecond}, {784, 90 * time.Millisecond}, {1047, 200 * time.Millisecond}},
}

// Duration returns the total length of a cue.
func (c Cue) Duration() time.Duration {
	var total time.Duration
	for _, n := range recipes[c] {
		total += n.dur
	}
	return total
}

// Build returns a finite streamer for the cue at the given sample rate.
func Build(sr beep.SampleRate, c Cue, volume float64) (beep.Streamer, error) {
	notes, ok := recipes[c]
	if !ok {
		return nil, fmt.Errorf("audio: unknown cue %d", int(c))
	}

	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		tone, err := generators.SineTone(sr, n.freq)
		if err != nil {
			return nil, err
		}
		samples := sr.N(n.dur)
		parts = append(parts, &decay{Streamer: beep.Take(samples, tone), total: samples})
	}
	return newVolume(beep.Seq(parts...), volume), nil
}

// decay fades a note linearly to silence so consecutive notes do not click.
type decay struct {
	beep.Streamer
	pos, total int
}

func (d *decay) Stream(samples [][2]float64) (int, bool) {
	n, ok := d.Streamer.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1 - float64(d.pos)/float64(d.total)
		if gain < 0 {
			gain = 0
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		d.pos++
	}
	return n, ok
}

// math.Log2(0) is -Inf, so zero volume maps to a silent effect.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
