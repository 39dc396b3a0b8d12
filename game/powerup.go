// File: game/powerup.go
package game

import (
	"math/rand"

	"github.com/lguibr/breakoid/geometry"
)

// PowerUpKind tags a power-up capsule variant.
type PowerUpKind string

const (
	PowerUpExtraLife PowerUpKind = "extra_life"
	PowerUpSlowBall  PowerUpKind = "slow_ball"
	PowerUpExpand    PowerUpKind = "expand"
	PowerUpLaser     PowerUpKind = "laser"
	PowerUpCatch     PowerUpKind = "catch"
	PowerUpDuplicate PowerUpKind = "duplicate"
	PowerUpWarp      PowerUpKind = "warp"
)

var powerUpKinds = [...]PowerUpKind{
	PowerUpExtraLife,
	PowerUpSlowBall,
	PowerUpExpand,
	PowerUpLaser,
	PowerUpCatch,
	PowerUpDuplicate,
	PowerUpWarp,
}

// RandomPowerUpKind picks a variant uniformly at random.
func RandomPowerUpKind() PowerUpKind {
	return powerUpKinds[rand.Intn(len(powerUpKinds))]
}

// PowerUp is a capsule dropped by a destroyed brick. It falls straight down
// until the paddle catches it or it leaves the screen.
type PowerUp struct {
	rect      geometry.Rect
	Kind      PowerUpKind
	fallSpeed float64
	screenH   float64
	Visible   bool
}

// NewPowerUp spawns a capsule of the given kind centred on origin.
func NewPowerUp(kind PowerUpKind, origin geometry.Point, size, fallSpeed, screenH float64) *PowerUp {
	return &PowerUp{
		rect:      geometry.NewRect(origin.X-size/2, origin.Y-size/2, size, size),
		Kind:      kind,
		fallSpeed: fallSpeed,
		screenH:   screenH,
		Visible:   true,
	}
}

func (p *PowerUp) Rect() geometry.Rect { return p.rect }
func (p *PowerUp) IsVisible() bool     { return p.Visible }

// Update moves the capsule one frame down the screen. It returns false
// once the capsule has fallen past the bottom and should be discarded.
func (p *PowerUp) Update() bool {
	if !p.Visible {
		return false
	}
	p.rect = p.rect.Move(0, p.fallSpeed)
	if p.rect.Top() > p.screenH {
		p.Visible = false
		return false
	}
	return true
}
