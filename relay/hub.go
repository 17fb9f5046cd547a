// seehuhn.de/go/annotedit - interactive editing of vector annotations
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package relay broadcasts changes of an annotation document to
// websocket listeners, for example to refresh other views of the same
// document.
package relay

import (
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"seehuhn.de/go/annotedit"
)

const (
	writeWait      = 10 * time.Second
	defaultBufSize = 64
)

// Event describes one change of the document.
type Event struct {
	Op       string           `json:"op"` // "create", "update" or "remove"
	Handle   annotedit.Handle `json:"handle"`
	Kind     string           `json:"kind,omitempty"`
	Page     int              `json:"page,omitempty"`
	Revision uint64           `json:"revision,omitempty"`
}

// Hub keeps track of the connected listeners.
// A Hub is an http.Handler which accepts websocket connections.
type Hub struct {
	// BufSize is the number of events which can be queued for a client.
	// A client whose queue is full is disconnected.  BufSize must be set
	// before the first client connects.
	BufSize int

	upgrader websocket.Upgrader
	log      logrus.FieldLogger

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub returns a hub without listeners.  If log is nil, nothing is
// logged.
func NewHub(log logrus.FieldLogger) *Hub {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Hub{
		BufSize: defaultBufSize,
		log:     log,
		clients: make(map[*client]struct{}),
	}
}

// ServeHTTP upgrades the connection to a websocket and registers the
// client.  Messages sent by clients are ignored.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Info("websocket upgrade failed")
		return
	}
	c := &client{conn: conn, send: make(chan []byte, max(h.BufSize, 1))}
	if !h.register(c) {
		conn.Close()
		return
	}
	h.log.WithField("remote", conn.RemoteAddr().String()).Debug("listener connected")

	go h.writeLoop(c)
	for {
		if _, _, err := conn.NextReader(); err != nil {
			break
		}
	}
	h.unregister(c)
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	return true
}

// unregister removes c from the hub and closes its queue.
// The caller must not hold h.mu.
func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.drop(c)
}

// drop must be called with h.mu held.
func (h *Hub) drop(c *client) {
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) writeLoop(c *client) {
	defer c.conn.Close()
	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.log.WithError(err).Debug("listener write failed")
			h.unregister(c)
			return
		}
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// Broadcast sends an event to all listeners.  Broadcast never blocks:
// listeners which cannot keep up are disconnected.
func (h *Hub) Broadcast(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.log.WithError(err).Error("cannot encode event")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.log.WithField("handle", ev.Handle).Warn("slow listener disconnected")
			h.drop(c)
		}
	}
}

// Len returns the number of connected listeners.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects all listeners.  No new listeners are accepted
// afterwards.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		h.drop(c)
	}
}
