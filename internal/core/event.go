package core

// EventKind identifies something noteworthy that happened during a tick.
// Platforms turn events into sounds, log lines or network messages.
type EventKind int

const (
	EventPickup EventKind = iota + 1
	EventPowerPickup
	EventAdversaryEaten
	EventCapture
	EventLevelCleared
	EventGameWon
	EventGameLost
)

// String returns the wire name of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventPickup:
		return "pickup"
	case EventPowerPickup:
		return "power_pickup"
	case EventAdversaryEaten:
		return "adversary_eaten"
	case EventCapture:
		return "capture"
	case EventLevelCleared:
		return "level_cleared"
	case EventGameWon:
		return "game_won"
	case EventGameLost:
		return "game_lost"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name so JSON payloads stay readable.
func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Event is emitted by Game.Step.
type Event struct {
	Kind   EventKind `json:"kind"`
	Points int       `json:"points,omitempty"`
	Level  int       `json:"level,omitempty"`
}
