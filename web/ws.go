// Websocket interface
//
// Copyright (c) 2026  The go-ipd Authors
//
// This file is part of go-ipd.
//
// go-ipd is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License,
// version 3, as published by the Free Software Foundation.
//
// go-ipd is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU
// Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public
// License, version 3, along with go-ipd. If not, see
// <http://www.gnu.org/licenses/>

package web

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"go-ipd"
	"go-ipd/sched"
)

const (
	writeWait = 10 * time.Second
	// Events a client may fall behind before it is dropped
	backlog = 64
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub keeps the most recent progress event and forwards every event
// to all connected WebSocket clients.
type Hub struct {
	lock    sync.Mutex
	last    *sched.Progress
	data    []byte
	clients map[*client]struct{}
	closed  bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

func (h *Hub) Observe(p *sched.Progress) {
	data, err := json.Marshal(p)
	if err != nil {
		log.Print(err)
		return
	}

	h.lock.Lock()
	defer h.lock.Unlock()
	h.last = p.Copy()
	h.data = data
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			ipd.Debug.Printf("Dropping slow client %s", c.conn.RemoteAddr())
			h.drop(c)
		}
	}
}

// Last returns a copy of the latest progress event, or nil if no match
// has been completed yet.
func (h *Hub) Last() *sched.Progress {
	h.lock.Lock()
	defer h.lock.Unlock()
	if h.last == nil {
		return nil
	}
	return h.last.Copy()
}

// Must be called with the lock held
func (h *Hub) drop(c *client) {
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) Close() {
	h.lock.Lock()
	defer h.lock.Unlock()
	for c := range h.clients {
		h.drop(c)
	}
	h.closed = true
}

// Register a connection and send it the latest state
func (h *Hub) join(conn *websocket.Conn) *client {
	c := &client{conn: conn, send: make(chan []byte, backlog)}

	h.lock.Lock()
	defer h.lock.Unlock()
	if h.closed {
		close(c.send)
		return c
	}
	if h.data != nil {
		c.send <- h.data
	}
	h.clients[c] = struct{}{}
	return c
}

func (h *Hub) leave(c *client) {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.drop(c)
}

// Forward queued events until the hub drops the client
func (c *client) write() {
	defer c.conn.Close()
	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			ipd.Debug.Printf("Unable to write to %s: %s", c.conn.RemoteAddr(), err)
			return
		}
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// Clients are not expected to send anything, but reading is necessary
// to notice a closed connection.
func (c *client) read(h *Hub) {
	defer h.leave(c)
	for {
		if _, _, err := c.conn.NextReader(); err != nil {
			return
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Upgrade a HTTP connection to a WebSocket and stream progress to it
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already replied with an error
		ipd.Debug.Printf("Unable to upgrade connection: %s", err)
		return
	}

	log.Printf("New connection from %s", conn.RemoteAddr())
	c := h.join(conn)
	go c.write()
	go c.read(h)
}
