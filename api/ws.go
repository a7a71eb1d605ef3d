package api

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"playground/session"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (h *handler) handleWS(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s, ok := h.manager.Get(id)
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	// Serialise all WebSocket writes — gorilla/websocket forbids concurrent writes.
	var writeMu sync.Mutex
	writeMsg := func(msg session.Message) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(msg)
	}

	outChan := make(chan session.Message, 256)
	kick := s.SetClient(outChan) // also sets s.Connected = true; kicks any prior client
	defer s.ClearClient(outChan) // closes outChan + clears session state if still owner

	// Bring the page up to the session's current state.
	for _, msg := range s.Snapshot() {
		if err := writeMsg(msg); err != nil {
			h.log.Debug("websocket replay failed", zap.Error(err))
			return
		}
	}

	// Goroutine: pump session output to the client.
	// Exits when ClearClient closes outChan.
	go func() {
		for msg := range outChan {
			if err := writeMsg(msg); err != nil {
				return
			}
		}
	}()

	// Goroutine: watch for session end or displacement and close the connection
	// so ReadJSON below unblocks immediately.
	connDone := make(chan struct{})
	go func() {
		select {
		case <-s.Done():
			writeMsg(session.Message{Type: session.MsgClosed}) //nolint:errcheck
			conn.Close()
		case <-kick:
			// Displaced by a newer connection — close without a "closed" message
			// so the client shows the disconnected overlay rather than session-ended.
			conn.Close()
		case <-connDone:
		}
	}()
	defer close(connDone)

	// Main loop: read client messages.
	for {
		var msg session.Message
		if err := conn.ReadJSON(&msg); err != nil {
			// Client disconnected, or conn was closed by the done-watcher above.
			// Either way the session keeps running.
			return
		}
		if err := s.Handle(msg); err != nil {
			h.log.Debug("ignoring client message", zap.String("session", s.ID), zap.Error(err))
		}
	}
}
