// File: server/server.go
package server

import (
	"log"
	"net/http"

	"golang.org/x/net/websocket"

	"github.com/lguibr/breakoid/bollywood"
	"github.com/lguibr/breakoid/utils"
)

// Server exposes one game session over HTTP: a websocket endpoint for play
// and snapshot endpoints for polling. It holds no game state itself; every
// request is turned into an actor message.
type Server struct {
	cfg            utils.Config
	engine         *bollywood.Engine
	gamePID        *bollywood.PID
	broadcasterPID *bollywood.PID
}

func New(cfg utils.Config, engine *bollywood.Engine, gamePID, broadcasterPID *bollywood.PID) *Server {
	return &Server{
		cfg:            cfg,
		engine:         engine,
		gamePID:        gamePID,
		broadcasterPID: broadcasterPID,
	}
}

// Routes builds the HTTP mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/subscribe", websocket.Handler(s.HandleSubscribe()))
	mux.HandleFunc("/state", s.HandleGetState())
	mux.HandleFunc("/ascii", s.HandleGetAscii())
	return mux
}

// ListenAndServe blocks serving the configured address.
func (s *Server) ListenAndServe() error {
	log.Printf("listening on %s", s.cfg.ListenAddr)
	return http.ListenAndServe(s.cfg.ListenAddr, s.Routes())
}
