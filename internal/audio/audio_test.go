package audio

import (
	"errors"
	"testing"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/mazechase/internal/core"
)

func TestCueForEvent(t *testing.T) {
	tests := []struct {
		kind core.EventKind
		want Cue
		ok   bool
	}{
		{core.EventPickup, CuePickup, true},
		{core.EventPowerPickup, CuePowerPickup, true},
		{core.EventAdversaryEaten, CueAdversaryEaten, true},
		{core.EventCapture, CueCapture, true},
		{core.EventLevelCleared, CueLevelWin, true},
		{core.EventGameWon, CueLevelWin, true},
		{core.EventGameLost, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			got, ok := CueForEvent(tt.kind)
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("CueForEvent(%v) = %v, %v; want %v, %v", tt.kind, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestBuildStreamsFiniteInRange(t *testing.T) {
	rate := beep.SampleRate(8000)

	for c := CuePickup; c <= CueLevelWin; c++ {
		t.Run(c.String(), func(t *testing.T) {
			s, err := Build(rate, c, 0.5)
			if err != nil {
				t.Fatalf("Build() failed: %v", err)
			}

			want := 0
			for _, n := range recipes[c] {
				want += rate.N(n.dur)
			}

			buf := make([][2]float64, 512)
			total := 0
			for {
				n, ok := s.Stream(buf)
				for i := 0; i < n; i++ {
					if buf[i][0] < -1 || buf[i][0] > 1 {
						t.Fatalf("sample %d out of range: %f", total+i, buf[i][0])
					}
				}
				total += n
				if !ok || n == 0 {
					break
				}
				if total > want*2 {
					t.Fatal("cue never ends")
				}
			}
			if total != want {
				t.Errorf("streamed %d samples, want %d", total, want)
			}
		})
	}
}

func TestBuildUnknownCue(t *testing.T) {
	if _, err := Build(beep.SampleRate(8000), Cue(42), 1); err == nil {
		t.Error("expected error for unknown cue")
	}
	if Cue(42).String() != "unknown" {
		t.Errorf("unexpected name %q", Cue(42).String())
	}
}

func TestManagerIsSafeUninitialized(t *testing.T) {
	sm := NewSoundManager(false)

	if err := sm.Play(CuePickup); err != nil {
		t.Errorf("Play() before Initialize returned %v", err)
	}
	if err := sm.PlayEvents([]core.Event{{Kind: core.EventPickup}, {Kind: core.EventCapture}}); err != nil {
		t.Errorf("PlayEvents() before Initialize returned %v", err)
	}
	sm.Cleanup()
}

func TestManagerMute(t *testing.T) {
	opened := 0
	sm := NewSoundManager(true)
	sm.openDevice = func(*beep.Mixer) error { opened++; return nil }

	if !sm.Muted() {
		t.Fatal("expected muted manager")
	}
	if opened != 0 {
		t.Fatal("muted manager opened the device")
	}

	if sm.ToggleMute() {
		t.Error("ToggleMute() should unmute")
	}
	if opened != 1 || !sm.initialized {
		t.Errorf("unmute should open the device once, opened %d times", opened)
	}

	if !sm.ToggleMute() {
		t.Error("ToggleMute() should mute again")
	}
	if sm.ToggleMute() || opened != 1 {
		t.Errorf("second unmute reopened the device (%d opens)", opened)
	}

	if err := sm.SetMuted(true); err != nil || !sm.Muted() {
		t.Errorf("SetMuted(true) = %v, muted %v", err, sm.Muted())
	}
}

func TestManagerStaysMutedWithoutDevice(t *testing.T) {
	errNoDevice := errors.New("no device")
	sm := NewSoundManager(true)
	sm.openDevice = func(*beep.Mixer) error { return errNoDevice }

	if !sm.ToggleMute() {
		t.Error("ToggleMute() should report muted when the device cannot open")
	}
	if err := sm.SetMuted(false); !errors.Is(err, errNoDevice) {
		t.Errorf("SetMuted(false) = %v, want %v", err, errNoDevice)
	}
	if sm.initialized {
		t.Error("manager marked initialized after a failed open")
	}
}

func TestCueDuration(t *testing.T) {
	if CueCapture.Duration() <= CuePickup.Duration() {
		t.Errorf("capture cue should outlast pickup: %v vs %v", CueCapture.Duration(), CuePickup.Duration())
	}
}
