// File: main.go
package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lguibr/breakoid/bollywood"
	"github.com/lguibr/breakoid/game"
	"github.com/lguibr/breakoid/server"
	"github.com/lguibr/breakoid/utils"
)

func main() {
	configPath := flag.String("config", "", "path to an optional config file")
	flag.Parse()

	cfg, err := utils.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	engine := bollywood.NewEngine()

	broadcasterPID := engine.Spawn(bollywood.NewProps(game.NewBroadcasterProducer()))
	gamePID := engine.Spawn(bollywood.NewProps(
		game.NewGameActorProducer(cfg, game.DefaultRounds(), broadcasterPID)))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("shutting down")
		engine.Shutdown(5 * time.Second)
		os.Exit(0)
	}()

	srv := server.New(cfg, engine, gamePID, broadcasterPID)
	log.Fatal(srv.ListenAndServe())
}
