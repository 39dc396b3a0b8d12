// File: server/handlers.go
package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/websocket"

	"github.com/lguibr/breakoid/bollywood"
	"github.com/lguibr/breakoid/game"
	"github.com/lguibr/breakoid/render"
)

const askTimeout = time.Second

// HandleSubscribe registers the websocket session with the broadcaster and
// then reads player commands until the connection dies. Snapshots flow the
// other way, pushed by the broadcaster actor.
func (s *Server) HandleSubscribe() func(ws *websocket.Conn) {
	return func(ws *websocket.Conn) {
		sessionID := uuid.NewString()
		s.engine.Send(s.broadcasterPID, game.Subscribe{SessionID: sessionID, Conn: ws}, nil)

		defer func() {
			s.engine.Send(s.broadcasterPID, game.Unsubscribe{SessionID: sessionID}, nil)
			ws.Close()
		}()

		s.readLoop(ws, sessionID)
	}
}

// readLoop decodes one command message per frame and forwards it to the
// game actor. Malformed JSON drops the message, not the connection; only
// transport errors end the session.
func (s *Server) readLoop(conn *websocket.Conn, sessionID string) {
	for {
		var raw string
		if err := websocket.Message.Receive(conn, &raw); err != nil {
			if !errors.Is(err, io.EOF) {
				log.Printf("session %s: read: %v", sessionID, err)
			}
			return
		}

		var msg game.CommandMessage
		if err := json.Unmarshal([]byte(raw), &msg); err != nil {
			log.Printf("session %s: bad command %q: %v", sessionID, raw, err)
			continue
		}
		s.engine.Send(s.gamePID, game.PlayerCommand{Command: msg.Command}, nil)
	}
}

// HandleGetState serves the current snapshot as JSON.
func (s *Server) HandleGetState() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := s.askSnapshot()
		if err != nil {
			http.Error(w, "game unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(snap); err != nil {
			log.Printf("writing state: %v", err)
		}
	}
}

// HandleGetAscii serves a terminal rendering of the current snapshot,
// handy for curl-based debugging.
func (s *Server) HandleGetAscii() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := s.askSnapshot()
		if err != nil {
			http.Error(w, "game unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if _, err := io.WriteString(w, render.RenderSnapshot(snap, 48)); err != nil {
			log.Printf("writing ascii state: %v", err)
		}
	}
}

func (s *Server) askSnapshot() (game.Snapshot, error) {
	reply, err := s.engine.Ask(s.gamePID, game.GetSnapshot{}, askTimeout)
	if err != nil {
		return game.Snapshot{}, err
	}
	snap, ok := reply.(game.Snapshot)
	if !ok {
		return game.Snapshot{}, bollywood.ErrNotFound
	}
	return snap, nil
}
