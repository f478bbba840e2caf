// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/danielhkuo/quickly-vote/voting"
)

const (
	liveWriteTimeout = 10 * time.Second
	livePingInterval = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// LiveHandler pushes proposal snapshots over a websocket whenever they change
type LiveHandler struct {
	svc *voting.Service
}

func NewLiveHandler(svc *voting.Service) *LiveHandler {
	return &LiveHandler{svc: svc}
}

// Proposals handles GET /ws/proposals
func (h *LiveHandler) Proposals(w http.ResponseWriter, r *http.Request) {
	changed, cancel := h.svc.SubscribeProposals()
	defer cancel()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	// Drain incoming frames so close and pong are processed
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if !h.send(conn, r) {
		return
	}

	ping := time.NewTicker(livePingInterval)
	defer ping.Stop()

	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case <-changed:
			if !h.send(conn, r) {
				return
			}
		case <-ping.C:
			deadline := time.Now().Add(liveWriteTimeout)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		}
	}
}

func (h *LiveHandler) send(conn *websocket.Conn, r *http.Request) bool {
	resp, err := snapshot(r.Context(), h.svc)
	if err != nil {
		slog.Warn("live snapshot failed", "error", err)
		return true
	}

	conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
	if err := conn.WriteJSON(resp); err != nil {
		slog.Debug("websocket closed", "error", err)
		return false
	}
	return true
}
