package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/mazechase/internal/maze"
	"github.com/vovakirdan/mazechase/internal/registry"
	"github.com/vovakirdan/mazechase/internal/storage"
)

// clientState is what a browser client would decode from a state frame.
type clientState struct {
	Snapshot struct {
		Tick   int    `json:"tick"`
		Phase  string `json:"phase"`
		Level  int    `json:"level"`
		Lives  int    `json:"lives"`
		Player struct {
			X             int  `json:"x"`
			Y             int  `json:"y"`
			MadeFirstMove bool `json:"made_first_move"`
		} `json:"player"`
	} `json:"snapshot"`
	Events []struct {
		Kind string `json:"kind"`
	} `json:"events"`
}

func setupServer(t *testing.T, store storage.Leaderboard) (*Server, *httptest.Server) {
	t.Helper()
	srv, err := NewServer(Config{TickRate: 200, Options: registry.Options{}}, store, nil)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		srv.Close()
		ts.Close()
	})
	return srv, ts
}

func dial(t *testing.T, ts *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + RouteWS + query
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

// readUntil skips frames until one of the wanted type arrives.
func readUntil(t *testing.T, conn *websocket.Conn, msgType string) Message {
	t.Helper()
	for i := 0; i < 500; i++ {
		msg := readMessage(t, conn)
		if msg.Type == msgType {
			return msg
		}
	}
	t.Fatalf("no %q message received", msgType)
	return Message{}
}

func decodeState(t *testing.T, msg Message) clientState {
	t.Helper()
	var st clientState
	require.NoError(t, json.Unmarshal(msg.Data, &st))
	return st
}

func send(t *testing.T, conn *websocket.Conn, msgType string, payload any) {
	t.Helper()
	msg, err := NewMessage(msgType, payload)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(msg))
}

func TestHealthAndLevels(t *testing.T) {
	_, ts := setupServer(t, storage.NewMemoryStore())

	resp, err := http.Get(ts.URL + RouteHealth)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + RouteLevels)
	require.NoError(t, err)
	defer resp.Body.Close()

	var levels []maze.LevelInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&levels))
	require.Len(t, levels, len(maze.BuiltinLevels()))
	assert.Equal(t, 1, levels[0].Number)
	assert.NotEmpty(t, levels[0].Name)
}

func TestScoresEndpoint(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()
	_, err := store.SubmitScore(ctx, maze.GameID, "ann", 300)
	require.NoError(t, err)
	_, err = store.SubmitScore(ctx, maze.GameID, "bob", 500)
	require.NoError(t, err)

	_, ts := setupServer(t, store)

	resp, err := http.Get(ts.URL + RouteScores)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body ScoresResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Scores, 2)
	assert.Equal(t, "bob", body.Scores[0].Name)
	assert.Equal(t, 1, body.Scores[0].Rank)

	bad, err := http.Get(ts.URL + RouteScores + "?n=abc")
	require.NoError(t, err)
	defer bad.Body.Close()
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)
}

func TestScoresWithoutStore(t *testing.T) {
	_, ts := setupServer(t, nil)

	resp, err := http.Get(ts.URL + RouteScores)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestSessionHelloAndTicks(t *testing.T) {
	srv, ts := setupServer(t, storage.NewMemoryStore())
	conn := dial(t, ts, "?level=2")

	hello := readMessage(t, conn)
	require.Equal(t, TypeHello, hello.Type)
	var hp HelloPayload
	require.NoError(t, json.Unmarshal(hello.Data, &hp))
	assert.NotEmpty(t, hp.SessionID)
	assert.Equal(t, 200, hp.TickRate)
	assert.Len(t, hp.Levels, len(maze.BuiltinLevels()))

	first := decodeState(t, readUntil(t, conn, TypeState))
	assert.Equal(t, 2, first.Snapshot.Level)
	assert.Equal(t, "running", first.Snapshot.Phase)

	later := decodeState(t, readUntil(t, conn, TypeState))
	assert.Greater(t, later.Snapshot.Tick, first.Snapshot.Tick)
	assert.Equal(t, 1, srv.ActiveSessions())
}

func TestSessionInputStartsMovement(t *testing.T) {
	_, ts := setupServer(t, storage.NewMemoryStore())
	conn := dial(t, ts, "")
	readUntil(t, conn, TypeHello)

	send(t, conn, TypeInput, InputPayload{Action: "left"})

	for i := 0; i < 200; i++ {
		st := decodeState(t, readUntil(t, conn, TypeState))
		if st.Snapshot.Player.MadeFirstMove {
			return
		}
	}
	t.Fatal("player never registered the first move")
}

func TestSessionRejectsUnknownIntents(t *testing.T) {
	_, ts := setupServer(t, storage.NewMemoryStore())
	conn := dial(t, ts, "")
	readUntil(t, conn, TypeHello)

	send(t, conn, TypeInput, InputPayload{Action: "jump"})
	msg := readUntil(t, conn, TypeError)
	var ep ErrorPayload
	require.NoError(t, json.Unmarshal(msg.Data, &ep))
	assert.Contains(t, ep.Message, "jump")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	readUntil(t, conn, TypeError)
}

func TestSessionPauseStopsStepping(t *testing.T) {
	_, ts := setupServer(t, storage.NewMemoryStore())
	conn := dial(t, ts, "")
	readUntil(t, conn, TypeHello)
	readUntil(t, conn, TypeState)

	send(t, conn, TypePause, nil)

	var paused clientState
	for i := 0; i < 500; i++ {
		paused = decodeState(t, readUntil(t, conn, TypeState))
		if paused.Snapshot.Phase == "paused" {
			break
		}
	}
	require.Equal(t, "paused", paused.Snapshot.Phase)

	// No state frames arrive while paused.
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(150*time.Millisecond)))
	var msg Message
	err := conn.ReadJSON(&msg)
	require.Error(t, err, "received %q while paused", msg.Type)
}

func TestSessionNameWithoutFinishedRun(t *testing.T) {
	_, ts := setupServer(t, storage.NewMemoryStore())
	conn := dial(t, ts, "")
	readUntil(t, conn, TypeHello)

	send(t, conn, TypeName, NamePayload{Name: "ann"})
	msg := readUntil(t, conn, TypeError)
	var ep ErrorPayload
	require.NoError(t, json.Unmarshal(msg.Data, &ep))
	assert.Equal(t, "no score to submit", ep.Message)
}

func TestBadLevelQuery(t *testing.T) {
	_, ts := setupServer(t, nil)

	resp, err := http.Get(ts.URL + RouteWS + "?level=x")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
