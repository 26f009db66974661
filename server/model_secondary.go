package server

import (
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/zucenko/pursuit/model"
)

const HTTP_SUCCESS = 200
const HTTP_TIMEOUT = 408
const HTTP_BUSY = 503

type ResponseCode int

const (
	SESSION_READY ResponseCode = iota
	SESSION_FULL
)

func (h ResponseCode) ToHttp() int {
	switch h {
	case SESSION_READY:
		return HTTP_SUCCESS
	case SESSION_FULL:
		return HTTP_BUSY
	default:
		panic(h)
	}
}

func (gss GameSessionState) Name() string {
	switch gss {
	case GS_NEW:
		return "GS_NEW"
	case GS_PLAY:
		return "GS_PLAY"
	case GS_ERR:
		return "GS_ERR"
	case GS_OVER:
		return "GS_OVER"
	default:
		return fmt.Sprintf("n/a:%d", gss)
	}
}

func (ps PlayerSessionState) Name() string {
	switch ps {
	case PS_NEW:
		return "NEW"
	case PS_PLAY:
		return "PLAY"
	case PS_OVER:
		return "OVER"
	case PS_ERR:
		return "ERR"
	default:
		return "N/A"
	}
}

type GameContextAwaiting struct {
	ResponseCode ResponseCode
	GameSession  *GameSession
}

type GameRequest struct {
	GameContextAwaiting chan GameContextAwaiting
}

type PlayerConnectRequest struct {
	Con      *websocket.Conn
	GameOver chan struct{}
}

// PlayerEvent is a decoded client message. Restart wins over Direction.
type PlayerEvent struct {
	Direction model.Direction
	Restart   bool
}
