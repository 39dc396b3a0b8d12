// File: game/game_actor.go
package game

import (
	"log"
	"time"

	"github.com/lguibr/breakoid/bollywood"
	"github.com/lguibr/breakoid/utils"
)

// GameTick asks the game actor to advance one frame.
type GameTick struct{}

// BroadcastTick asks the game actor to push a snapshot to the broadcaster.
type BroadcastTick struct{}

// PlayerCommand carries one player input into the game actor.
type PlayerCommand struct {
	Command string
}

// GetSnapshot is asked by the HTTP handlers; the reply is a Snapshot.
type GetSnapshot struct{}

// GameActor owns one Game and serializes every access to it through its
// mailbox: timer ticks, player commands and snapshot requests all become
// messages, so the game logic itself never needs locks.
type GameActor struct {
	cfg         utils.Config
	rounds      []RoundConfig
	broadcaster *bollywood.PID

	game     *Game
	stopTick chan struct{}
}

// NewGameActorProducer returns a Producer for the actor engine. Snapshots
// are pushed to broadcaster every broadcast period; pass nil to disable
// pushing.
func NewGameActorProducer(cfg utils.Config, rounds []RoundConfig, broadcaster *bollywood.PID) bollywood.Producer {
	return func() bollywood.Actor {
		return &GameActor{cfg: cfg, rounds: rounds, broadcaster: broadcaster}
	}
}

func (a *GameActor) Receive(ctx bollywood.Context) {
	switch msg := ctx.Message().(type) {
	case bollywood.Started:
		game, err := NewGame(a.cfg, a.rounds, nil)
		if err != nil {
			log.Printf("game actor %s: %v", ctx.Self(), err)
			ctx.Engine().Stop(ctx.Self())
			return
		}
		a.game = game
		a.startTickers(ctx.Engine(), ctx.Self())

	case bollywood.Stopping:
		if a.stopTick != nil {
			close(a.stopTick)
			a.stopTick = nil
		}

	case bollywood.Stopped:

	case GameTick:
		if a.game != nil {
			a.game.Update()
		}

	case BroadcastTick:
		if a.game != nil && a.broadcaster != nil {
			ctx.Engine().Send(a.broadcaster, SnapshotUpdate{Snapshot: a.game.TakeSnapshot()}, ctx.Self())
		}

	case PlayerCommand:
		if a.game == nil {
			return
		}
		if err := a.game.ApplyCommand(msg.Command); err != nil {
			log.Printf("game actor %s: %v", ctx.Self(), err)
		}

	case GetSnapshot:
		if a.game != nil {
			ctx.Respond(a.game.TakeSnapshot())
		}
	}
}

// startTickers runs the frame and broadcast clocks on a side goroutine
// that only ever sends messages back into the mailbox.
func (a *GameActor) startTickers(engine *bollywood.Engine, self *bollywood.PID) {
	a.stopTick = make(chan struct{})
	stop := a.stopTick

	go func() {
		frame := time.NewTicker(a.cfg.GameTickPeriod)
		broadcast := time.NewTicker(a.cfg.BroadcastPeriod)
		defer frame.Stop()
		defer broadcast.Stop()

		for {
			select {
			case <-stop:
				return
			case <-frame.C:
				engine.Send(self, GameTick{}, self)
			case <-broadcast.C:
				engine.Send(self, BroadcastTick{}, self)
			}
		}
	}()
}
