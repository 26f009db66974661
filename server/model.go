package server

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/pursuit/model"
	"github.com/zyedidia/generic/mapset"
)

type GameServer struct {
	Config       Config
	GameSessions map[uuid.UUID]*GameSession
	GameRequests chan GameRequest
	Finished     chan uuid.UUID
	Upgrader     *websocket.Upgrader

	rules  model.Rules
	layout *mapset.Set[model.Cell]
	active atomic.Int64
}

type GameSessionState int

const (
	GS_NEW GameSessionState = iota
	GS_PLAY
	GS_ERR
	GS_OVER
)

// GameSession hosts one run for one connected player. Only its Loop touches
// the Model.
type GameSession struct {
	Id                    uuid.UUID
	State                 GameSessionState
	Model                 *model.Model
	Player                *PlayerSession
	Errors                chan error
	Events                chan PlayerEvent
	PlayerConnectRequests chan PlayerConnectRequest
	TickInterval          time.Duration

	created  time.Time
	started  time.Time
	finished chan<- uuid.UUID
	log      *log.Entry
}

type PlayerSessionState int

const (
	PS_NEW PlayerSessionState = iota + 1
	PS_PLAY
	PS_OVER
	PS_ERR
)

type PlayerSession struct {
	State       PlayerSessionState
	GameSession *GameSession
	Conn        *websocket.Conn
	GameOver    chan struct{}

	MessagesToSend chan model.ServerMessage
	done           chan struct{}

	// owned by the reader goroutine
	received    int
	pings       int
	lastMessage time.Time
	// owned by the writer goroutine
	sent int
}
