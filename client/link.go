package client

import (
	"encoding/gob"
	"fmt"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/pursuit/model"
)

// Link is a connection to a game server. Messages is closed when the server
// goes away; Err then tells why.
type Link struct {
	conn     *websocket.Conn
	Messages chan model.ServerMessage
	err      error
}

func Dial(url string) (*Link, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", url, err)
	}
	l := &Link{
		conn:     conn,
		Messages: make(chan model.ServerMessage, 64),
	}
	go l.loop()
	return l, nil
}

func (l *Link) loop() {
	defer close(l.Messages)
	for {
		_, r, err := l.conn.NextReader()
		if err != nil {
			l.err = err
			return
		}
		var mes model.ServerMessage
		if err := gob.NewDecoder(r).Decode(&mes); err != nil {
			l.err = fmt.Errorf("decoding message: %w", err)
			return
		}
		l.Messages <- mes
	}
}

// Err is only meaningful once Messages is closed.
func (l *Link) Err() error {
	return l.err
}

// Send must not be called from more than one goroutine.
func (l *Link) Send(cm model.ClientMessage) error {
	w, err := l.conn.NextWriter(websocket.BinaryMessage)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(w).Encode(cm); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	log.Debugf("sent %s restart=%v", cm.Move.Name(), cm.Restart)
	return nil
}

func (l *Link) Close() error {
	return l.conn.Close()
}
