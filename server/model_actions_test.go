package server

import (
	"encoding/gob"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/matryer/way"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/pursuit/model"
)

func testServer(t *testing.T, mutate func(*Config)) *GameServer {
	t.Helper()
	cfg := DefaultConfig()
	cfg.MazeFile = writeFile(t, "maze.txt", borderMaze6)
	cfg.MaxPursuers = 1
	cfg.PlayerSpeed = 1
	cfg.PursuerSpeed = 1
	cfg.InitialDelay = time.Hour
	cfg.TickRate = 200
	if mutate != nil {
		mutate(&cfg)
	}
	s, err := NewGameServer(cfg)
	require.NoError(t, err)
	return s
}

func TestNewGameServer_UsesMazeDimensions(t *testing.T) {
	s := testServer(t, nil)
	gs := s.NewGameSession()
	cols, rows := gs.Model.Dimensions()
	assert.Equal(t, 6, cols)
	assert.Equal(t, 6, rows)
	assert.Equal(t, GS_NEW, gs.State)
	assert.Equal(t, time.Second/200, gs.TickInterval)
}

func TestNewGameServer_BadMaze(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MazeFile = writeFile(t, "maze.txt", "##\n#\n")
	_, err := NewGameServer(cfg)
	assert.Error(t, err)
}

func TestGameSession_DirectionsOnlyWhilePlaying(t *testing.T) {
	s := testServer(t, nil)
	gs := s.NewGameSession()

	gs.Apply(PlayerEvent{Direction: model.Right})
	assert.Equal(t, model.Stop, gs.Model.Player.Direction)

	gs.State = GS_PLAY
	gs.Apply(PlayerEvent{Direction: model.Down})
	assert.Equal(t, model.Down, gs.Model.Player.Direction)

	mes := gs.Turn(time.Millisecond)
	require.Len(t, mes.Frames, 1)
	assert.Equal(t, model.Cell{Col: 1, Row: 2}, mes.Frames[0].Player)
	assert.Equal(t, GS_PLAY, gs.State)
}

func TestGameSession_LossEndsPlay(t *testing.T) {
	s := testServer(t, func(cfg *Config) {
		cfg.MazeFile = writeFile(t, "maze.txt", "#####\n#...#\n#...#\n#...#\n#####\n")
		cfg.InitialDelay = 0
	})
	gs := s.NewGameSession()
	gs.State = GS_PLAY

	gs.Turn(time.Millisecond)
	assert.Equal(t, GS_PLAY, gs.State)
	mes := gs.Turn(2 * time.Millisecond)
	assert.True(t, mes.Frames[0].Lost)
	assert.Equal(t, GS_OVER, gs.State)

	gs.Apply(PlayerEvent{Direction: model.Right})
	assert.Equal(t, model.Stop, gs.Model.Player.Direction)
}

func TestGameSession_SetupMessage(t *testing.T) {
	s := testServer(t, nil)
	gs := s.NewGameSession()
	mes := gs.MakeGameSetupMessage()
	require.Len(t, mes.Setup, 1)
	setup := mes.Setup[0]
	assert.Equal(t, gs.Id.String(), setup.Session)
	assert.Len(t, setup.Walls, 20)
	assert.Len(t, setup.Items, 16)
	assert.Equal(t, model.Cell{Col: 1, Row: 1}, setup.State.Player)
	require.Len(t, setup.State.Pursuers, 1)
	assert.Equal(t, model.Cell{Col: 4, Row: 1}, setup.State.Pursuers[0].Cell)
}

func readMessage(t *testing.T, conn *websocket.Conn) model.ServerMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, r, err := conn.NextReader()
	require.NoError(t, err)
	var mes model.ServerMessage
	require.NoError(t, gob.NewDecoder(r).Decode(&mes))
	return mes
}

func writeMessage(t *testing.T, conn *websocket.Conn, cm model.ClientMessage) {
	t.Helper()
	w, err := conn.NextWriter(websocket.BinaryMessage)
	require.NoError(t, err)
	require.NoError(t, gob.NewEncoder(w).Encode(cm))
	require.NoError(t, w.Close())
}

func TestGameServer_PlayOverWebsocket(t *testing.T) {
	s := testServer(t, nil)
	go s.Loop()

	router := way.NewRouter()
	router.HandleFunc("GET", "/play", s.HandleHttpCall())
	router.HandleFunc("GET", "/health", s.HandleHealth())
	srv := httptest.NewServer(router)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/play", nil)
	require.NoError(t, err)

	setup := readMessage(t, conn)
	require.Len(t, setup.Setup, 1)
	assert.Equal(t, 6, setup.Setup[0].Cols)
	assert.Equal(t, int64(1), s.ActiveSessions())

	writeMessage(t, conn, model.ClientMessage{Move: model.Down})
	var last model.Snapshot
	for i := 0; i < 200; i++ {
		mes := readMessage(t, conn)
		if len(mes.Frames) == 0 {
			continue
		}
		last = mes.Frames[len(mes.Frames)-1]
		if last.Player.Row >= 2 {
			break
		}
	}
	assert.Equal(t, 1, last.Player.Col)
	assert.GreaterOrEqual(t, last.Player.Row, 2)
	assert.Positive(t, last.Score)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return s.ActiveSessions() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestGameServer_Health(t *testing.T) {
	s := testServer(t, nil)
	rec := httptest.NewRecorder()
	s.HandleHealth()(rec, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "sessions=0")
}

func TestGameServer_RefusesWhenFull(t *testing.T) {
	s := testServer(t, func(c *Config) { c.MaxSessions = 1 })
	go s.Loop()
	srv := httptest.NewServer(s.HandleHttpCall())
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	first, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer first.Close()
	readMessage(t, first)

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 503, resp.StatusCode)
}
