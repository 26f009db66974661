package client

import (
	"encoding/gob"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/pursuit/model"
)

// echoServer sends a setup, then answers every client move with a frame
// holding that direction. A restart request hangs up.
func echoServer(t *testing.T) *httptest.Server {
	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		send := func(mes model.ServerMessage) error {
			wr, err := conn.NextWriter(websocket.BinaryMessage)
			if err != nil {
				return err
			}
			if err := gob.NewEncoder(wr).Encode(mes); err != nil {
				return err
			}
			return wr.Close()
		}
		if send(setupMessage()) != nil {
			return
		}
		for {
			_, rd, err := conn.NextReader()
			if err != nil {
				return
			}
			var cm model.ClientMessage
			if gob.NewDecoder(rd).Decode(&cm) != nil || cm.Restart {
				return
			}
			if send(model.ServerMessage{Frames: []model.Snapshot{{Tick: 1, Direction: cm.Move}}}) != nil {
				return
			}
		}
	}))
}

func receive(t *testing.T, l *Link) model.ServerMessage {
	t.Helper()
	select {
	case mes, ok := <-l.Messages:
		require.True(t, ok, "link closed: %v", l.Err())
		return mes
	case <-time.After(2 * time.Second):
		t.Fatal("no message")
	}
	return model.ServerMessage{}
}

func TestLink_RoundTrip(t *testing.T) {
	srv := echoServer(t)
	defer srv.Close()

	l, err := Dial("ws" + strings.TrimPrefix(srv.URL, "http"))
	require.NoError(t, err)
	defer l.Close()

	setup := receive(t, l)
	require.Len(t, setup.Setup, 1)
	assert.Equal(t, "abc", setup.Setup[0].Session)

	require.NoError(t, l.Send(model.ClientMessage{Move: model.Up}))
	frame := receive(t, l)
	require.Len(t, frame.Frames, 1)
	assert.Equal(t, model.Up, frame.Frames[0].Direction)
}

func TestLink_ClosedByServer(t *testing.T) {
	srv := echoServer(t)
	defer srv.Close()
	l, err := Dial("ws" + strings.TrimPrefix(srv.URL, "http"))
	require.NoError(t, err)
	defer l.Close()
	receive(t, l)

	require.NoError(t, l.Send(model.ClientMessage{Restart: true}))
	assert.Eventually(t, func() bool {
		select {
		case _, ok := <-l.Messages:
			return !ok
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
	assert.Error(t, l.Err())
}

func TestDial_Refused(t *testing.T) {
	_, err := Dial("ws://127.0.0.1:1/play")
	assert.Error(t, err)
}
