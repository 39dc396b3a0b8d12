// File: game/paddle.go
package game

import (
	"github.com/lguibr/breakoid/geometry"
	"github.com/lguibr/breakoid/utils"
)

// PaddleState enumerates the paddle's form. Transitions are requested by
// power-ups or life loss and applied at the next Update so that collision
// resolution never observes a half-applied transition.
type PaddleState int

const (
	PaddleNormal PaddleState = iota
	PaddleWide
	PaddleLaser
	PaddleExploding
)

func (s PaddleState) String() string {
	switch s {
	case PaddleNormal:
		return "normal"
	case PaddleWide:
		return "wide"
	case PaddleLaser:
		return "laser"
	case PaddleExploding:
		return "exploding"
	default:
		return "unknown"
	}
}

const noRequest PaddleState = -1

// Paddle is the player's bat. It moves horizontally inside its bounds and
// morphs between states; the wide form grows and shrinks gradually so the
// change reads as an animation rather than a jump.
type Paddle struct {
	rect      geometry.Rect
	direction int // -1 left, 0 idle, 1 right
	speed     float64
	bounds    geometry.Rect // horizontal travel limits

	baseWidth float64
	wideWidth float64
	widenStep float64

	state        PaddleState
	requested    PaddleState
	explodeTicks int
	explodeLeft  int

	Visible bool
}

// NewPaddle creates a paddle whose top-left corner starts at pos, moving at
// speed pixels per frame within bounds. The wide form is half again the
// base width.
func NewPaddle(pos geometry.Point, width, height, speed float64,
	bounds geometry.Rect, widenStep float64, explodeTicks int) *Paddle {

	return &Paddle{
		rect:         geometry.NewRect(pos.X, pos.Y, width, height),
		speed:        speed,
		bounds:       bounds,
		baseWidth:    width,
		wideWidth:    width * 1.5,
		widenStep:    widenStep,
		state:        PaddleNormal,
		requested:    noRequest,
		explodeTicks: explodeTicks,
		Visible:      true,
	}
}

func (p *Paddle) Rect() geometry.Rect { return p.rect }
func (p *Paddle) IsVisible() bool     { return p.Visible }
func (p *Paddle) State() PaddleState  { return p.state }
func (p *Paddle) Exploding() bool     { return p.state == PaddleExploding }

// SetDirection sets the current movement input: -1 left, 0 stop, 1 right.
func (p *Paddle) SetDirection(direction int) {
	if direction < -1 {
		direction = -1
	}
	if direction > 1 {
		direction = 1
	}
	p.direction = direction
}

// RequestState queues a state transition to apply at the next Update.
// Requesting the current state is a no-op; a later request overrides an
// earlier one queued in the same tick. An exploding paddle ignores all
// requests except the explosion finishing.
func (p *Paddle) RequestState(state PaddleState) {
	p.requested = state
}

// Update advances the paddle one frame: apply any queued state transition,
// run the explosion countdown, animate width changes, then move.
func (p *Paddle) Update() {
	p.applyRequested()

	if p.state == PaddleExploding {
		p.explodeLeft--
		if p.explodeLeft <= 0 {
			p.state = PaddleNormal
			p.Visible = true
		}
		return
	}

	p.animateWidth()
	p.move()
}

func (p *Paddle) applyRequested() {
	requested := p.requested
	p.requested = noRequest
	if requested == noRequest || requested == p.state {
		return
	}
	if p.state == PaddleExploding {
		return
	}
	p.state = requested
	if requested == PaddleExploding {
		p.explodeLeft = p.explodeTicks
	}
}

// animateWidth grows toward the wide width or shrinks toward the base
// width depending on the current state, keeping the paddle centred.
func (p *Paddle) animateWidth() {
	target := p.baseWidth
	if p.state == PaddleWide {
		target = p.wideWidth
	}
	if p.rect.W == target {
		return
	}

	step := p.widenStep
	if p.rect.W > target {
		step = -step
	}
	newW := p.rect.W + step
	if (step > 0 && newW > target) || (step < 0 && newW < target) {
		newW = target
	}
	p.rect = geometry.NewRect(p.rect.X-(newW-p.rect.W)/2, p.rect.Y, newW, p.rect.H)
	p.clamp()
}

func (p *Paddle) move() {
	if p.direction == 0 {
		return
	}
	p.rect = p.rect.Move(float64(p.direction)*p.speed, 0)
	p.clamp()
}

func (p *Paddle) clamp() {
	x := utils.Clamp(p.rect.X, p.bounds.Left(), p.bounds.Right()-p.rect.W)
	if x != p.rect.X {
		p.rect = p.rect.MoveTo(x, p.rect.Y)
	}
}

// Reset recentres the paddle at pos in its normal form.
func (p *Paddle) Reset(pos geometry.Point) {
	p.rect = geometry.NewRect(pos.X, pos.Y, p.baseWidth, p.rect.H)
	p.direction = 0
	p.state = PaddleNormal
	p.requested = noRequest
	p.explodeLeft = 0
	p.Visible = true
}
