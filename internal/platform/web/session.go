package web

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/mazechase/internal/core"
	"github.com/vovakirdan/mazechase/internal/maze"
	"github.com/vovakirdan/mazechase/internal/storage"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	intentBuffer   = 64
	sendBuffer     = 256
	storeTimeout   = 3 * time.Second
)

// typeMalformed marks a frame the read pump could not decode.
const typeMalformed = "_malformed"

// Session owns one game and one connection. Only the Run goroutine touches
// the game; the read pump hands intents over on a buffered channel.
type Session struct {
	ID       string
	conn     *websocket.Conn
	game     *maze.Game
	store    storage.Leaderboard
	logger   *log.Logger
	tickRate int

	intents chan Message
	send    chan []byte
	input   core.InputFrame
	ticker  *time.Ticker
	running bool
}

func newSession(id string, conn *websocket.Conn, game *maze.Game, store storage.Leaderboard, logger *log.Logger, tickRate int) *Session {
	return &Session{
		ID:       id,
		conn:     conn,
		game:     game,
		store:    store,
		logger:   logger,
		tickRate: tickRate,
		intents:  make(chan Message, intentBuffer),
		send:     make(chan []byte, sendBuffer),
		input:    core.NewInputFrame(),
	}
}

// Run drives the session until the context ends or the client goes away.
func (s *Session) Run(ctx context.Context, hello HelloPayload) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	go s.writePump(done)
	go s.readPump(cancel)

	s.sendMessage(TypeHello, hello)

	interval := time.Second / time.Duration(s.tickRate)
	s.ticker = time.NewTicker(interval)
	s.running = true
	defer s.ticker.Stop()

	s.sendState(nil)

	for {
		select {
		case <-ctx.Done():
			close(s.send)
			<-done
			return

		case msg := <-s.intents:
			s.handleIntent(msg, interval)

		case <-s.ticker.C:
			s.drainIntents(interval)
			if !s.running {
				continue
			}
			res := s.game.Step(s.input)
			s.input.Clear()
			s.logEvents(res.Events)
			s.sendState(res.Events)
		}
	}
}

// drainIntents applies everything queued before a step.
func (s *Session) drainIntents(interval time.Duration) {
	for {
		select {
		case msg := <-s.intents:
			s.handleIntent(msg, interval)
		default:
			return
		}
	}
}

func (s *Session) handleIntent(msg Message, interval time.Duration) {
	switch msg.Type {
	case TypeInput:
		var p InputPayload
		if err := json.Unmarshal(msg.Data, &p); err != nil {
			s.sendRaw(NewErrorMessage("invalid input payload"))
			return
		}
		action := core.ParseAction(p.Action)
		if !action.IsDirectional() {
			s.sendRaw(NewErrorMessage("unknown action " + p.Action))
			return
		}
		s.input.Set(action)

	case TypePause:
		paused := s.game.TogglePause()
		s.setRunning(!paused, interval)
		s.sendState(nil)

	case TypeRestart:
		s.input.Set(core.ActionRestart)

	case TypeStart:
		var p StartPayload
		if err := json.Unmarshal(msg.Data, &p); err != nil {
			s.sendRaw(NewErrorMessage("invalid start payload"))
			return
		}
		if err := s.game.StartLevel(p.Level); err != nil {
			s.logger.Error("could not start level", "level", p.Level, "error", err)
			s.sendRaw(NewErrorMessage(err.Error()))
			return
		}
		s.input.Clear()
		s.setRunning(true, interval)
		s.sendState(nil)

	case TypeName:
		var p NamePayload
		if err := json.Unmarshal(msg.Data, &p); err != nil {
			s.sendRaw(NewErrorMessage("invalid name payload"))
			return
		}
		s.submitName(p.Name)

	case typeMalformed:
		s.sendRaw(NewErrorMessage("malformed message"))

	default:
		s.sendRaw(NewErrorMessage("unknown message type " + msg.Type))
	}
}

// setRunning starts or stops the ticker so nothing is stepped while paused.
func (s *Session) setRunning(running bool, interval time.Duration) {
	if running == s.running {
		return
	}
	s.running = running
	if running {
		s.ticker.Reset(interval)
	} else {
		s.ticker.Stop()
	}
}

func (s *Session) submitName(name string) {
	stored, ok := s.game.SubmitName(name)
	if !ok {
		s.sendRaw(NewErrorMessage("no score to submit"))
		return
	}
	if s.store == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	entry, err := s.store.SubmitScore(ctx, s.game.ID(), stored, s.game.State().Score)
	if err != nil {
		s.logger.Error("could not save score", "error", err)
		s.sendRaw(NewErrorMessage("score not saved"))
		return
	}
	s.logger.Info("score saved", "name", entry.Name, "score", entry.Score, "rank", entry.Rank)
	s.sendMessage(TypeScoreSaved, entry)
}

func (s *Session) logEvents(events []core.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case core.EventCapture:
			s.logger.Debug("life lost", "level", ev.Level)
		case core.EventLevelCleared:
			s.logger.Info("level cleared", "level", ev.Level)
		case core.EventGameWon, core.EventGameLost:
			s.logger.Info("game over", "result", ev.Kind.String(), "score", s.game.State().Score)
		}
	}
}

func (s *Session) sendState(events []core.Event) {
	s.sendMessage(TypeState, StatePayload{Snapshot: s.game.Snapshot(), Events: events})
}

func (s *Session) sendMessage(msgType string, payload any) {
	msg, err := NewMessage(msgType, payload)
	if err != nil {
		s.logger.Error("failed to marshal message", "type", msgType, "error", err)
		return
	}
	s.sendRaw(msg)
}

func (s *Session) sendRaw(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("failed to marshal message", "error", err)
		return
	}
	select {
	case s.send <- data:
	default:
		s.logger.Warn("send buffer full, dropping message", "type", msg.Type)
	}
}

// readPump decodes client frames into intents and never writes. It cancels
// the session when the connection ends.
func (s *Session) readPump(cancel context.CancelFunc) {
	defer cancel()

	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read error", "error", err)
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			msg = Message{Type: typeMalformed}
		}
		select {
		case s.intents <- msg:
		default:
			s.logger.Warn("intent buffer full, dropping message", "type", msg.Type)
		}
	}
}

// writePump pumps queued frames to the connection and keeps it alive.
func (s *Session) writePump(done chan<- struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
		close(done)
	}()

	for {
		select {
		case message, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := s.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
