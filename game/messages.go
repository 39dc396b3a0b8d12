// File: game/messages.go
package game

import (
	"fmt"

	"github.com/lguibr/breakoid/geometry"
)

// Player commands accepted over the wire.
const (
	CmdLeft    = "left"
	CmdRight   = "right"
	CmdStop    = "stop"
	CmdRelease = "release"
	CmdFire    = "fire"
)

// CommandMessage is the JSON envelope clients send.
type CommandMessage struct {
	Command string `json:"command"`
}

// ApplyCommand dispatches one player command. Unknown commands return an
// error so the transport can log and drop them.
func (g *Game) ApplyCommand(command string) error {
	switch command {
	case CmdLeft:
		g.MovePaddle(-1)
	case CmdRight:
		g.MovePaddle(1)
	case CmdStop:
		g.MovePaddle(0)
	case CmdRelease:
		g.ReleaseBall()
	case CmdFire:
		g.FireLaser()
	default:
		return fmt.Errorf("unknown command %q", command)
	}
	return nil
}

// Snapshot is the full serializable game state pushed to clients.
type Snapshot struct {
	Type     string            `json:"type"`
	State    string            `json:"state"`
	Score    int               `json:"score"`
	Lives    int               `json:"lives"`
	Round    int               `json:"round"`
	Screen   ScreenSnapshot    `json:"screen"`
	Paddle   PaddleSnapshot    `json:"paddle"`
	Balls    []BallSnapshot    `json:"balls"`
	Bricks   []BrickSnapshot   `json:"bricks"`
	PowerUps []PowerUpSnapshot `json:"powerUps"`
	Bolts    []BoltSnapshot    `json:"bolts"`
}

type ScreenSnapshot struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type PaddleSnapshot struct {
	Rect  geometry.Rect `json:"rect"`
	State string        `json:"state"`
}

type BallSnapshot struct {
	Rect     geometry.Rect `json:"rect"`
	Angle    float64       `json:"angle"`
	Speed    float64       `json:"speed"`
	Anchored bool          `json:"anchored"`
}

type BrickSnapshot struct {
	Rect geometry.Rect `json:"rect"`
	Kind BrickKind     `json:"kind"`
	Life int           `json:"life"`
}

type PowerUpSnapshot struct {
	Rect geometry.Rect `json:"rect"`
	Kind PowerUpKind   `json:"kind"`
}

type BoltSnapshot struct {
	Rect geometry.Rect `json:"rect"`
}

// TakeSnapshot copies the current state into a Snapshot. Invisible bricks
// and spent capsules are omitted; clients only render what exists.
func (g *Game) TakeSnapshot() Snapshot {
	snap := Snapshot{
		Type:  "state",
		State: g.state.String(),
		Score: g.score,
		Lives: g.lives,
		Round: g.Round(),
		Screen: ScreenSnapshot{
			Width:  g.cfg.ScreenWidth,
			Height: g.cfg.ScreenHeight,
		},
		Paddle: PaddleSnapshot{
			Rect:  g.paddle.Rect(),
			State: g.paddle.State().String(),
		},
	}
	for _, ball := range g.balls {
		if !ball.Visible {
			continue
		}
		snap.Balls = append(snap.Balls, BallSnapshot{
			Rect:     ball.Rect(),
			Angle:    ball.Angle(),
			Speed:    ball.Speed(),
			Anchored: ball.Anchored(),
		})
	}
	for _, brick := range g.bricks {
		if !brick.Visible {
			continue
		}
		snap.Bricks = append(snap.Bricks, BrickSnapshot{
			Rect: brick.Rect(),
			Kind: brick.Kind,
			Life: brick.Life,
		})
	}
	for _, capsule := range g.powerUps {
		if !capsule.Visible {
			continue
		}
		snap.PowerUps = append(snap.PowerUps, PowerUpSnapshot{
			Rect: capsule.Rect(),
			Kind: capsule.Kind,
		})
	}
	for _, bolt := range g.bolts {
		if !bolt.Visible {
			continue
		}
		snap.Bolts = append(snap.Bolts, BoltSnapshot{Rect: bolt.Rect()})
	}
	return snap
}
