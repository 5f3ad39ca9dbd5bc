package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/mazechase/internal/core"
)

const (
	sampleRate    = beep.SampleRate(44100)
	defaultVolume = 0.4
)

// SoundManager plays cues through a shared mixer. Every method is safe to call
// before Initialize or after Cleanup; playback is then skipped.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	muted       bool
	initialized bool
	openDevice  func(*beep.Mixer) error
}

// NewSoundManager creates a manager. A muted manager opens the device the
// first time it is unmuted.
func NewSoundManager(muted bool) *SoundManager {
	return &SoundManager{
		mixer:      &beep.Mixer{},
		volume:     defaultVolume,
		muted:      muted,
		openDevice: openSpeaker,
	}
}

func openSpeaker(mixer *beep.Mixer) error {
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: speaker init: %w", err)
	}
	speaker.Play(mixer)
	return nil
}

// Initialize opens the speaker and starts the mixer.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initLocked()
}

func (sm *SoundManager) initLocked() error {
	if sm.initialized {
		return nil
	}
	if err := sm.openDevice(sm.mixer); err != nil {
		return err
	}
	sm.initialized = true
	return nil
}

// Play queues a cue on the mixer.
func (sm *SoundManager) Play(c Cue) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return nil
	}

	s, err := Build(sampleRate, c, sm.volume)
	if err != nil {
		return err
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
	return nil
}

// PlayEvents plays the cue for each event that has one. A tick with several
// pickups plays a single pickup cue.
func (sm *SoundManager) PlayEvents(events []core.Event) error {
	seen := make(map[Cue]bool, len(events))
	for _, ev := range events {
		c, ok := CueForEvent(ev.Kind)
		if !ok || seen[c] {
			continue
		}
		seen[c] = true
		if err := sm.Play(c); err != nil {
			return err
		}
	}
	return nil
}

// SetMuted silences or restores playback. Unmuting opens the speaker if it
// was never opened.
func (sm *SoundManager) SetMuted(muted bool) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = muted
	if muted {
		return nil
	}
	return sm.initLocked()
}

// ToggleMute flips the mute flag and returns the new value. If the speaker
// cannot be opened on unmute the manager stays muted.
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = !sm.muted
	if !sm.muted && sm.initLocked() != nil {
		sm.muted = true
	}
	return sm.muted
}

// Muted reports whether playback is silenced.
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// Cleanup stops all sounds.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	// beep has no speaker Close; clearing the mixer leaves it silent.
	sm.initialized = false
}
