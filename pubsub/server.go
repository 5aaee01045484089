// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/gustavo821/BarnBridge-SmartYieldBonds/publisher"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/logging"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/units"
)

const (
	// Size of the ws read buffer
	readBufferSize = units.KiB

	// Size of the ws write buffer
	writeBufferSize = units.KiB

	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 10 * units.KiB

	// Maximum number of pending messages to send to a peer.
	maxPendingMessages = 1024
)

var (
	_ publisher.Publisher = (*Server)(nil)

	upgrader = websocket.Upgrader{
		ReadBufferSize:  readBufferSize,
		WriteBufferSize: writeBufferSize,
		CheckOrigin:     func(*http.Request) bool { return true },
	}
)

// Server streams oracle events to websocket clients. Each client chooses the
// sources it is notified about by sending a [Command].
type Server struct {
	log logging.Logger

	lock  sync.RWMutex
	conns map[*connection]struct{}
}

func New(log logging.Logger) *Server {
	return &Server{
		log:   log,
		conns: make(map[*connection]struct{}),
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Debug("failed to upgrade",
			zap.Error(err),
		)
		return
	}
	conn := &connection{
		s:      s,
		conn:   wsConn,
		send:   make(chan interface{}, maxPendingMessages),
		filter: newFilter(),
		active: 1,
	}
	s.addConnection(conn)
}

// Publish sends [event] to every connection subscribed to its source.
func (s *Server) Publish(_ context.Context, event publisher.Event) error {
	for _, conn := range s.connections() {
		if !conn.matches(event.SourceID) {
			continue
		}
		if !conn.Send(event) {
			s.log.Verbo("dropping message to subscribed connection due to too many pending messages")
		}
	}
	return nil
}

// Close disconnects every client.
func (s *Server) Close() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	for conn := range s.conns {
		conn.deactivate()
		_ = conn.conn.Close()
	}
	s.conns = make(map[*connection]struct{})
	return nil
}

// NumConnections returns the number of connected clients.
func (s *Server) NumConnections() int {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return len(s.conns)
}

func (s *Server) connections() []*connection {
	s.lock.RLock()
	defer s.lock.RUnlock()

	conns := make([]*connection, 0, len(s.conns))
	for conn := range s.conns {
		conns = append(conns, conn)
	}
	return conns
}

func (s *Server) addConnection(conn *connection) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.conns[conn] = struct{}{}

	go conn.writePump()
	go conn.readPump()
}

func (s *Server) removeConnection(conn *connection) {
	s.lock.Lock()
	defer s.lock.Unlock()

	delete(s.conns, conn)
}

func readJSON(r io.Reader, v interface{}) error {
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCommand, err)
	}
	return nil
}
