package web

import (
	"encoding/json"

	"github.com/vovakirdan/mazechase/internal/core"
	"github.com/vovakirdan/mazechase/internal/maze"
	"github.com/vovakirdan/mazechase/internal/storage"
)

// Message is the envelope for every frame in both directions.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Client to server.
const (
	TypeInput   = "input"   // InputPayload
	TypePause   = "pause"   // no payload
	TypeRestart = "restart" // no payload
	TypeStart   = "start"   // StartPayload
	TypeName    = "name"    // NamePayload
)

// Server to client.
const (
	TypeHello      = "hello"       // HelloPayload
	TypeState      = "state"       // StatePayload
	TypeScoreSaved = "score_saved" // storage.ScoreEntry
	TypeError      = "error"       // ErrorPayload
)

// InputPayload carries one directional intent such as "left".
type InputPayload struct {
	Action string `json:"action"`
}

// StartPayload selects a level, 1-based.
type StartPayload struct {
	Level int `json:"level"`
}

// NamePayload submits the leaderboard name after a run.
type NamePayload struct {
	Name string `json:"name"`
}

// HelloPayload is the first message of every session.
type HelloPayload struct {
	SessionID string           `json:"session_id"`
	TickRate  int              `json:"tick_rate"`
	Levels    []maze.LevelInfo `json:"levels"`
}

// StatePayload is sent after every step and on pause changes.
type StatePayload struct {
	Snapshot maze.Snapshot `json:"snapshot"`
	Events   []core.Event  `json:"events,omitempty"`
}

// ErrorPayload reports a rejected request.
type ErrorPayload struct {
	Message string `json:"message"`
}

// ScoresResponse is the body of GET /api/scores.
type ScoresResponse struct {
	GameID string               `json:"game_id"`
	Scores []storage.ScoreEntry `json:"scores"`
}

// NewMessage creates a Message with a typed payload.
func NewMessage(msgType string, payload any) (Message, error) {
	if payload == nil {
		return Message{Type: msgType}, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: msgType, Data: data}, nil
}

// NewErrorMessage creates a Message with an error payload.
func NewErrorMessage(msg string) Message {
	data, _ := json.Marshal(ErrorPayload{Message: msg})
	return Message{Type: TypeError, Data: data}
}
