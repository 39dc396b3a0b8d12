// File: game/broadcaster_actor.go
package game

import (
	"encoding/json"
	"log"
	"time"

	"golang.org/x/net/websocket"

	"github.com/lguibr/breakoid/bollywood"
)

// Subscribe registers one websocket session with the broadcaster.
type Subscribe struct {
	SessionID string
	Conn      *websocket.Conn
}

// Unsubscribe removes a session; its connection is left to the caller to
// close.
type Unsubscribe struct {
	SessionID string
}

// SnapshotUpdate carries the latest game state to fan out.
type SnapshotUpdate struct {
	Snapshot Snapshot
}

const broadcastWriteTimeout = 2 * time.Second

// BroadcasterActor fans game snapshots out to every connected websocket
// session. Sessions whose writes fail are dropped; reconnecting is the
// client's problem.
type BroadcasterActor struct {
	sessions map[string]*websocket.Conn
}

func NewBroadcasterProducer() bollywood.Producer {
	return func() bollywood.Actor {
		return &BroadcasterActor{sessions: make(map[string]*websocket.Conn)}
	}
}

func (a *BroadcasterActor) Receive(ctx bollywood.Context) {
	switch msg := ctx.Message().(type) {
	case bollywood.Started:

	case bollywood.Stopping:
		for id, conn := range a.sessions {
			conn.Close()
			delete(a.sessions, id)
		}

	case bollywood.Stopped:

	case Subscribe:
		a.sessions[msg.SessionID] = msg.Conn
		log.Printf("broadcaster: session %s connected (%d total)", msg.SessionID, len(a.sessions))

	case Unsubscribe:
		delete(a.sessions, msg.SessionID)
		log.Printf("broadcaster: session %s gone (%d total)", msg.SessionID, len(a.sessions))

	case SnapshotUpdate:
		a.broadcast(msg.Snapshot)
	}
}

func (a *BroadcasterActor) broadcast(snapshot Snapshot) {
	if len(a.sessions) == 0 {
		return
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		log.Printf("broadcaster: marshalling snapshot: %v", err)
		return
	}
	for id, conn := range a.sessions {
		conn.SetWriteDeadline(time.Now().Add(broadcastWriteTimeout))
		if err := websocket.Message.Send(conn, string(payload)); err != nil {
			log.Printf("broadcaster: dropping session %s: %v", id, err)
			conn.Close()
			delete(a.sessions, id)
		}
	}
}
