package server

import (
	"encoding/gob"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/pursuit/model"
)

const connectTimeout = 5 * time.Second

func NewGameServer(cfg Config) (*GameServer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &GameServer{
		Config:       cfg,
		GameSessions: make(map[uuid.UUID]*GameSession),
		GameRequests: make(chan GameRequest),
		Finished:     make(chan uuid.UUID),
		Upgrader:     &websocket.Upgrader{},
		rules:        cfg.Rules(),
	}
	if cfg.MazeFile != "" {
		grid, walls, err := LoadMaze(cfg.MazeFile)
		if err != nil {
			return nil, err
		}
		s.rules.Cols, s.rules.Rows = grid.Cols, grid.Rows
		s.layout = &walls
		log.Printf("loaded %dx%d maze from %s", grid.Cols, grid.Rows, cfg.MazeFile)
	}
	if err := s.rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}
	return s, nil
}

// ActiveSessions is safe to call from any goroutine.
func (s *GameServer) ActiveSessions() int64 {
	return s.active.Load()
}

func (s *GameServer) HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(HTTP_SUCCESS)
		fmt.Fprintf(w, "ok sessions=%d\n", s.ActiveSessions())
	}
}

func (s *GameServer) HandleHttpCall() http.HandlerFunc {
	timeout := 200 * time.Millisecond
	return func(w http.ResponseWriter, r *http.Request) {
		log.Printf("HandleHttpCall - connection received")

		gcas := make(chan GameContextAwaiting, 1)
		select {
		case s.GameRequests <- GameRequest{GameContextAwaiting: gcas}:
		case <-time.After(timeout):
			log.Warn("GameRequests TIMEOUTED")
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}

		var gca GameContextAwaiting
		select {
		case gca = <-gcas:
			if gca.ResponseCode != SESSION_READY {
				w.WriteHeader(gca.ResponseCode.ToHttp())
				return
			}
		case <-time.After(timeout):
			log.Warnf("HandleHttpCall GameContextAwaiting <- TIMEOUTED")
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}

		con, err := s.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			// the session times out on its own without a player
			log.Printf("HandleHttpCall websocket upgrade err %v", err)
			return
		}
		defer con.Close()

		gameOver := make(chan struct{})
		select {
		case gca.GameSession.PlayerConnectRequests <- PlayerConnectRequest{
			Con:      con,
			GameOver: gameOver}:
		case <-time.After(timeout):
			log.Warn("PlayerConnectRequests TIMEOUTED")
			return
		}

		<-gameOver
		log.WithField("session", gca.GameSession.Id).Info("HandleHttpCall game over")
	}
}

func (s *GameServer) Loop() {
	log.Printf("GameServer.Loop starting")
	for {
		select {
		case gameReq := <-s.GameRequests:
			if len(s.GameSessions) >= s.Config.MaxSessions {
				log.Warnf("refusing session, %d running", len(s.GameSessions))
				gameReq.GameContextAwaiting <- GameContextAwaiting{ResponseCode: SESSION_FULL}
				continue
			}
			gs := s.NewGameSession()
			s.GameSessions[gs.Id] = gs
			s.active.Add(1)
			go gs.Loop()
			gameReq.GameContextAwaiting <- GameContextAwaiting{
				ResponseCode: SESSION_READY,
				GameSession:  gs,
			}
		case id := <-s.Finished:
			if _, ok := s.GameSessions[id]; ok {
				delete(s.GameSessions, id)
				s.active.Add(-1)
			}
		}
	}
}

// NewGameSession builds a session with a fresh run. The session reports
// back on Finished once it ends.
func (s *GameServer) NewGameSession() *GameSession {
	var m *model.Model
	if s.layout != nil {
		m = model.NewModelWithLayout(s.rules, *s.layout)
	} else {
		m = model.NewModel(s.rules, s.Config.Seed)
	}
	id := uuid.New()
	gs := &GameSession{
		Id:                    id,
		State:                 GS_NEW,
		Model:                 m,
		Errors:                make(chan error),
		Events:                make(chan PlayerEvent, 16),
		PlayerConnectRequests: make(chan PlayerConnectRequest),
		TickInterval:          s.Config.TickInterval(),
		created:               time.Now(),
		finished:              s.Finished,
		log:                   log.WithField("session", id),
	}
	gs.log.WithField("seed", m.Seed()).Info("create GameSession")
	return gs
}

func (gs *GameSession) Loop() {
	gs.log.Info("GameSession.Loop start")
	ticker := time.NewTicker(gs.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case pcr := <-gs.PlayerConnectRequests:
			gs.addPlayer(pcr.Con, pcr.GameOver)
			gs.start()
		case err := <-gs.Errors:
			gs.log.WithError(err).Warn("killing GameSession")
			gs.State = GS_ERR
			gs.Player.State = PS_ERR
			gs.close()
			return
		case pe := <-gs.Events:
			gs.Apply(pe)
		case now := <-ticker.C:
			switch gs.State {
			case GS_NEW:
				if now.Sub(gs.created) > connectTimeout {
					gs.log.Warn("no player connected, dropping GameSession")
					gs.close()
					return
				}
			case GS_PLAY:
				gs.send(gs.Turn(now.Sub(gs.started)))
			}
		}
	}
}

func (gs *GameSession) start() {
	gs.State = GS_PLAY
	gs.Player.State = PS_PLAY
	gs.started = time.Now()
	gs.send(gs.MakeGameSetupMessage())
}

// Apply hands a player event to the run.
func (gs *GameSession) Apply(pe PlayerEvent) {
	if pe.Restart {
		if gs.Player == nil {
			return
		}
		gs.log.Info("restart requested")
		gs.Model.Reset(gs.Model.Seed() + 1)
		gs.start()
		return
	}
	if gs.State == GS_PLAY {
		gs.Model.SetDirection(pe.Direction)
	}
}

// Turn advances the run by one tick and reports the new state. A loss or a
// cleared maze ends play until the player asks for a restart.
func (gs *GameSession) Turn(elapsed time.Duration) model.ServerMessage {
	snapshot := gs.Model.Advance(elapsed)
	if snapshot.Lost || snapshot.Won {
		gs.State = GS_OVER
		if gs.Player != nil {
			gs.Player.State = PS_OVER
		}
		gs.log.WithFields(log.Fields{
			"score": snapshot.Score,
			"won":   snapshot.Won,
			"tick":  snapshot.Tick,
		}).Info("run over")
	}
	return model.ServerMessage{Frames: []model.Snapshot{snapshot}}
}

func (gs *GameSession) MakeGameSetupMessage() model.ServerMessage {
	cols, rows := gs.Model.Dimensions()
	return model.ServerMessage{
		Setup: []model.Setup{{
			Session: gs.Id.String(),
			Cols:    cols,
			Rows:    rows,
			Walls:   gs.Model.WallCells(),
			Items:   gs.Model.ItemCells(),
			State:   gs.Model.Snapshot(),
		}},
	}
}

func (gs *GameSession) send(mes model.ServerMessage) {
	if gs.Player == nil {
		return
	}
	select {
	case gs.Player.MessagesToSend <- mes:
	default:
		gs.log.Warn("dropping frame, MessagesToSend FULL")
	}
}

func (gs *GameSession) close() {
	if gs.Player != nil {
		close(gs.Player.done)
		close(gs.Player.GameOver)
	}
	if gs.finished != nil {
		gs.finished <- gs.Id
	}
}

func (gs *GameSession) addPlayer(
	conn *websocket.Conn,
	gameOver chan struct{},
) {
	gs.log.Printf("GameSession.addPlayer")
	ps := &PlayerSession{
		State:          PS_NEW,
		GameSession:    gs,
		Conn:           conn,
		GameOver:       gameOver,
		MessagesToSend: make(chan model.ServerMessage, 10),
		done:           make(chan struct{}),
	}
	conn.SetPingHandler(
		func(message string) error {
			err := conn.WriteControl(websocket.PongMessage, []byte(message), time.Now().Add(time.Second))
			ps.pings++
			if err == websocket.ErrCloseSent {
				return nil
			} else if e, ok := err.(net.Error); ok && e.Timeout() {
				return nil
			}
			return err
		})
	go ps.LoopChannelRead()
	go ps.LoopChannelWrite()
	gs.Player = ps
}

func (ps *PlayerSession) fail(err error) {
	select {
	case ps.GameSession.Errors <- err:
	case <-ps.done:
	}
}

func (ps *PlayerSession) LoopChannelRead() {
	logger := ps.GameSession.log
	defer func() {
		logger.WithFields(log.Fields{
			"received": ps.received,
			"pings":    ps.pings,
			"last":     ps.lastMessage.Format(time.RFC3339),
		}).Debug("reader done")
	}()
	for {
		_, r, err := ps.Conn.NextReader()
		if err != nil {
			ps.fail(fmt.Errorf("reading message: %w", err))
			return
		}
		cm := &model.ClientMessage{}
		if err := gob.NewDecoder(r).Decode(cm); err != nil {
			ps.fail(fmt.Errorf("decoding message: %w", err))
			return
		}
		ps.lastMessage = time.Now()
		ps.received++
		if !cm.Restart && !cm.Move.Valid() {
			logger.Warnf("ignoring invalid direction %d", cm.Move)
			continue
		}

		select {
		case ps.GameSession.Events <- PlayerEvent{Direction: cm.Move, Restart: cm.Restart}:
		case <-ps.done:
			return
		default:
			logger.Warn("dropping message, GameSession.Events FULL")
		}
	}
}

// LoopChannelWrite is the only writer of data frames on the connection.
func (ps *PlayerSession) LoopChannelWrite() {
	defer func() {
		ps.GameSession.log.WithField("sent", ps.sent).Debug("writer done")
	}()
	for {
		select {
		case mes := <-ps.MessagesToSend:
			if err := ps.write(mes); err != nil {
				ps.fail(err)
				return
			}
			ps.sent++
		case <-ps.done:
			return
		}
	}
}

func (ps *PlayerSession) write(mes model.ServerMessage) error {
	w, err := ps.Conn.NextWriter(websocket.BinaryMessage)
	if err != nil {
		return fmt.Errorf("getting writer: %w", err)
	}
	if err := gob.NewEncoder(w).Encode(mes); err != nil {
		return fmt.Errorf("encoding message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("flushing message: %w", err)
	}
	return nil
}
