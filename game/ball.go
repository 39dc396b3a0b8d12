// File: game/ball.go
package game

import (
	"math"
	"math/rand"

	"github.com/lguibr/breakoid/geometry"
	"github.com/lguibr/breakoid/utils"
)

// Obstacle is anything a ball can collide with: static edges, the paddle,
// bricks, falling power-ups or other balls. Implementations must be
// comparable (pointer types) so they can key a ball's policy registry.
type Obstacle interface {
	// Rect returns the obstacle's current rectangle. It is re-read every
	// frame because moving obstacles change position.
	Rect() geometry.Rect
	// IsVisible reports whether the obstacle currently takes part in
	// collision detection.
	IsVisible() bool
}

// BounceStrategy overrides the default angle-of-reflection computation for
// one obstacle. It receives the rect of the obstacle struck and the rect of
// the ball, and returns the new angle in radians (0 = +x axis, increasing
// clockwise with y growing downwards).
type BounceStrategy func(obstacle, ball geometry.Rect) float64

// CollideFunc is invoked when the ball strikes a registered obstacle.
type CollideFunc func(obstacle Obstacle, ball *Ball)

// CollisionPolicy describes how a ball reacts to one registered obstacle.
type CollisionPolicy struct {
	Obstacle    Obstacle
	Bounce      BounceStrategy // nil means the default angle algorithm
	SpeedAdjust float64
	OnCollide   CollideFunc // nil means no action
}

// ballAnchor binds a ball's position to an obstacle or a fixed point,
// suspending free motion and collision detection while set.
type ballAnchor struct {
	target Obstacle        // nil when anchored to a fixed point
	point  geometry.Point  // fixed point when target is nil
	rel    *geometry.Point // offset from the target's top-left; nil centres
}

// Jitter band that triggers the anti-loop nudge around vertical/horizontal
// angles, and the nudge itself.
const (
	loopBand  = 0.06
	loopNudge = 0.35
)

// Ball is the bouncing ball. It owns its collidable registry: obstacles are
// registered with AddCollidable and the ball resolves its own collisions
// each Update. Obstacles are shared, not owned; many balls may reference the
// same paddle, edges and bricks.
type Ball struct {
	rect  geometry.Rect
	angle float64
	speed float64

	BaseSpeed         float64 // speed the ball settles back to
	TopSpeed          float64 // hard ceiling collisions can never push past
	NormalisationRate float64 // per-frame convergence step toward BaseSpeed
	Visible           bool

	area       geometry.Rect // play area; leaving it triggers offScreen
	startPos   geometry.Point
	startAngle float64

	policies  []CollisionPolicy // registration order is discovery order
	anchor    *ballAnchor
	offScreen func(*Ball)
}

// BallOverrides carries optional parameters for Clone. Nil fields inherit
// from the source ball.
type BallOverrides struct {
	StartPos          *geometry.Point
	StartAngle        *float64
	BaseSpeed         *float64
	TopSpeed          *float64
	NormalisationRate *float64
	OffScreen         func(*Ball)
}

// NewBall creates a ball with its top-left corner at startPos, moving at
// startAngle radians with baseSpeed pixels per frame inside area. The
// offScreen callback fires whenever an update computes a rectangle outside
// the play area; pass nil to leave off-screen handling entirely to the
// caller.
func NewBall(startPos geometry.Point, size, startAngle, baseSpeed float64,
	area geometry.Rect, offScreen func(*Ball)) *Ball {

	startAngle = utils.WrapAngle(startAngle)
	return &Ball{
		rect:              geometry.NewRect(startPos.X, startPos.Y, size, size),
		angle:             startAngle,
		speed:             baseSpeed,
		BaseSpeed:         baseSpeed,
		TopSpeed:          15,
		NormalisationRate: 0.02,
		Visible:           true,
		area:              area,
		startPos:          startPos,
		startAngle:        startAngle,
		offScreen:         offScreen,
	}
}

func (b *Ball) Rect() geometry.Rect { return b.rect }
func (b *Ball) IsVisible() bool     { return b.Visible }
func (b *Ball) Angle() float64      { return b.angle }
func (b *Ball) Speed() float64      { return b.speed }
func (b *Ball) Anchored() bool      { return b.anchor != nil }

func (b *Ball) SetAngle(angle float64) { b.angle = utils.WrapAngle(angle) }
func (b *Ball) SetSpeed(speed float64) { b.speed = speed }

// MoveTo places the ball's top-left corner at (x, y). Used by callers that
// take over positioning after an off-screen notification.
func (b *Ball) MoveTo(x, y float64) { b.rect = b.rect.MoveTo(x, y) }

// AddCollidable registers an obstacle the ball may collide with, or
// replaces the policy when the obstacle is already registered.
func (b *Ball) AddCollidable(obstacle Obstacle, bounce BounceStrategy,
	speedAdjust float64, onCollide CollideFunc) {

	policy := CollisionPolicy{
		Obstacle:    obstacle,
		Bounce:      bounce,
		SpeedAdjust: speedAdjust,
		OnCollide:   onCollide,
	}
	for i := range b.policies {
		if b.policies[i].Obstacle == obstacle {
			b.policies[i] = policy
			return
		}
	}
	b.policies = append(b.policies, policy)
}

// RemoveCollidable unregisters an obstacle. Removing an obstacle that was
// never registered is a no-op.
func (b *Ball) RemoveCollidable(obstacle Obstacle) {
	for i := range b.policies {
		if b.policies[i].Obstacle == obstacle {
			b.policies = append(b.policies[:i], b.policies[i+1:]...)
			return
		}
	}
}

// RemoveAllCollidables clears every registration. Used when transferring a
// ball between rounds.
func (b *Ball) RemoveAllCollidables() {
	b.policies = nil
}

// Collidables returns the registered obstacles in registration order.
func (b *Ball) Collidables() []Obstacle {
	obstacles := make([]Obstacle, len(b.policies))
	for i, p := range b.policies {
		obstacles[i] = p.Obstacle
	}
	return obstacles
}

// Update advances the ball by one frame tick: compute the candidate
// rectangle, detect off-screen, then either resolve collisions against every
// visible registered obstacle simultaneously or relax speed toward base.
// The new rectangle is committed regardless of the collision outcome;
// collisions change angle and speed for the next frame, not the position
// already computed this frame.
func (b *Ball) Update() {
	newRect := b.calcNewPos()
	b.rect = newRect

	if !b.area.ContainsRect(newRect) {
		if b.offScreen != nil {
			b.offScreen(b)
		}
		return
	}

	if b.anchor != nil {
		// Anchored balls track their target; collision detection is
		// suspended until release.
		return
	}

	active, rects := b.visibleCollidables()
	hits := newRect.CollideListAll(rects)
	if len(hits) > 0 {
		b.resolveCollision(active, rects, hits)
	} else {
		b.normaliseSpeed()
	}
}

func (b *Ball) calcNewPos() geometry.Rect {
	if a := b.anchor; a != nil {
		if a.target == nil {
			return geometry.NewRect(a.point.X, a.point.Y, b.rect.W, b.rect.H)
		}
		target := a.target.Rect()
		if a.rel != nil {
			return geometry.NewRect(target.X+a.rel.X, target.Y+a.rel.Y, b.rect.W, b.rect.H)
		}
		centre := target.Center()
		return geometry.NewRect(centre.X-b.rect.W/2, centre.Y-b.rect.H/2, b.rect.W, b.rect.H)
	}
	return b.rect.Move(b.speed*math.Cos(b.angle), b.speed*math.Sin(b.angle))
}

// visibleCollidables snapshots the policies and rectangles of all currently
// visible registered obstacles. Rectangles must be re-read on the fly
// because moving obstacles (the paddle, other balls) change every frame.
func (b *Ball) visibleCollidables() ([]CollisionPolicy, []geometry.Rect) {
	policies := make([]CollisionPolicy, 0, len(b.policies))
	rects := make([]geometry.Rect, 0, len(b.policies))
	for _, p := range b.policies {
		if !p.Obstacle.IsVisible() {
			continue
		}
		policies = append(policies, p)
		rects = append(rects, p.Obstacle.Rect())
	}
	return policies, rects
}

// resolveCollision handles one collision event, which may involve several
// obstacles at once (e.g. the corner where two bricks meet). All OnCollide
// callbacks fire in discovery order before the angle and speed are
// resolved; all speed adjustments accumulate and apply once.
func (b *Ball) resolveCollision(policies []CollisionPolicy, rects []geometry.Rect, hits []int) {
	var speedAdjust float64
	hitRects := make([]geometry.Rect, 0, len(hits))

	for _, i := range hits {
		policy := policies[i]
		speedAdjust += policy.SpeedAdjust
		hitRects = append(hitRects, rects[i])
		if policy.OnCollide != nil {
			policy.OnCollide(policy.Obstacle, b)
		}
	}

	if len(hits) == 1 && policies[hits[0]].Bounce != nil {
		b.angle = utils.WrapAngle(policies[hits[0]].Bounce(rects[hits[0]], b.rect))
	} else {
		b.angle = b.calcNewAngle(hitRects)
	}

	speed := b.speed + speedAdjust
	if speed > b.TopSpeed {
		speed = b.TopSpeed
	}
	b.speed = speed
}

// normaliseSpeed gradually brings the ball's speed back to the base speed.
func (b *Ball) normaliseSpeed() {
	if b.speed > b.BaseSpeed {
		b.speed -= b.NormalisationRate
	} else {
		b.speed += b.NormalisationRate
	}
}

type surfaceHit int

const (
	hitUnknown surfaceHit = iota
	hitCorner
	hitTopBottom
	hitSide
)

// calcNewAngle is the default angle algorithm, used whenever no bounce
// strategy applies: classify the collision by which of the ball's corners
// the struck rectangles contain, then reflect accordingly.
func (b *Ball) calcNewAngle(rects []geometry.Rect) float64 {
	var tl, tr, bl, br bool
	for _, r := range rects {
		tl = tl || r.ContainsPoint(b.rect.TopLeft())
		tr = tr || r.ContainsPoint(b.rect.TopRight())
		bl = bl || r.ContainsPoint(b.rect.BottomLeft())
		br = br || r.ContainsPoint(b.rect.BottomRight())
	}

	count := countCorners(tl, tr, bl, br)
	kind := hitUnknown
	if count == 1 {
		// A lone contained corner may really be a glancing edge hit;
		// inspect the direction of travel before treating it as a
		// straight back-bounce.
		tl, tr, bl, br, kind = b.correctObliqueCorner(tl, tr, bl, br)
		count = countCorners(tl, tr, bl, br)
	}

	angle := b.angle

	switch count {
	case 1, 3, 4:
		// Corner hit, or ball mostly/fully engulfed: bounce straight
		// back the way it came. Only the single-corner case gets
		// randomness; an engulfed ball must retrace its path exactly
		// or it can stay stuck inside a sprite.
		angle = utils.WrapAngle(angle + math.Pi)
		if count == 1 {
			angle += angleJitter()
		}
	default:
		// Two contained corners (or a crossing overlap with none):
		// distinguish top/bottom from left/right surfaces.
		var topBottom, side bool
		switch kind {
		case hitTopBottom:
			topBottom = true
		case hitSide:
			side = true
		default:
			lower := b.angle > math.Pi // direction of travel points up the screen
			upper := b.angle < math.Pi
			switch {
			case (tl && tr && lower) || (bl && br && upper):
				topBottom = true
			case tl && bl && b.angle > math.Pi/2 && b.angle < 3*math.Pi/2:
				side = true
			case tr && br && (b.angle > 3*math.Pi/2 || b.angle < math.Pi/2):
				side = true
			case !tl && !tr && !bl && !br:
				// Crossing overlap with no corner contained behaves
				// like a side hit.
				side = true
			}
		}

		if topBottom {
			angle = utils.TwoPi - b.angle
		} else if side {
			angle = utils.WrapAngle(math.Pi - b.angle)
		}

		angle = breakBounceLoop(angle)
		angle += angleJitter()
	}

	return utils.RoundAngle(utils.WrapAngle(angle))
}

// correctObliqueCorner decides whether a single contained corner is a true
// corner hit or a glancing edge hit, based on which axes of the current
// direction of travel point into the corner's side of the ball. Travel into
// both axes is a genuine corner; travel into the vertical axis only means
// the ball was sweeping along the obstacle's side (synthesize the vertical
// partner corner for a side reflection); travel into the horizontal axis
// only means a glancing top/bottom hit.
func (b *Ball) correctObliqueCorner(tl, tr, bl, br bool) (bool, bool, bool, bool, surfaceHit) {
	vx := math.Cos(b.angle)
	vy := math.Sin(b.angle)

	var intoX, intoY bool
	switch {
	case tl:
		intoX, intoY = vx < 0, vy < 0
	case tr:
		intoX, intoY = vx > 0, vy < 0
	case bl:
		intoX, intoY = vx < 0, vy > 0
	case br:
		intoX, intoY = vx > 0, vy > 0
	}

	switch {
	case intoX == intoY:
		return tl, tr, bl, br, hitCorner
	case intoY:
		switch {
		case tl:
			bl = true
		case tr:
			br = true
		case bl:
			tl = true
		case br:
			tr = true
		}
		return tl, tr, bl, br, hitSide
	default:
		switch {
		case tl:
			tr = true
		case tr:
			tl = true
		case bl:
			br = true
		case br:
			bl = true
		}
		return tl, tr, bl, br, hitTopBottom
	}
}

// breakBounceLoop nudges angles that land too close to a pure vertical or
// horizontal, which would otherwise settle into a perpetual bounce loop.
func breakBounceLoop(angle float64) float64 {
	targets := [...]float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2, utils.TwoPi}
	for _, t := range targets {
		if utils.Abs(angle-t) < loopBand {
			return angle + loopNudge
		}
	}
	return angle
}

// angleJitter adds a touch of unpredictability to reflections so the ball
// cannot get stuck in a repeating bounce pattern.
func angleJitter() float64 {
	return rand.Float64()*0.2 - 0.1
}

func countCorners(corners ...bool) int {
	count := 0
	for _, c := range corners {
		if c {
			count++
		}
	}
	return count
}

// Anchor binds the ball to an obstacle so that its position is derived from
// the target's rectangle each frame: at the given offset from the target's
// top-left when rel is non-nil, centred on the target otherwise.
func (b *Ball) Anchor(target Obstacle, rel *geometry.Point) {
	b.anchor = &ballAnchor{target: target, rel: rel}
}

// AnchorAt binds the ball to a fixed point.
func (b *Ball) AnchorAt(point geometry.Point) {
	b.anchor = &ballAnchor{point: point}
}

// Release frees an anchored ball. It resumes free motion at base speed,
// keeping the last computed angle unless an explicit override is given.
func (b *Ball) Release(angle ...float64) {
	if len(angle) > 0 {
		b.angle = utils.WrapAngle(angle[0])
	}
	b.speed = b.BaseSpeed
	b.anchor = nil
}

// Reset returns the ball to its starting position, angle and speed, makes
// it visible and clears any anchor. Used when a life is lost.
func (b *Ball) Reset() {
	b.rect = b.rect.MoveTo(b.startPos.X, b.startPos.Y)
	b.angle = b.startAngle
	b.speed = b.BaseSpeed
	b.Visible = true
	b.anchor = nil
}

// Clone produces a new ball inheriting this ball's parameters except where
// overridden, registered against the same shared obstacles (not copies) so
// that every clone observes brick destruction consistently. The clone's
// rect, angle and speed are independent of the source's.
func (b *Ball) Clone(overrides BallOverrides) *Ball {
	startPos := b.startPos
	if overrides.StartPos != nil {
		startPos = *overrides.StartPos
	}
	startAngle := b.startAngle
	if overrides.StartAngle != nil {
		startAngle = utils.WrapAngle(*overrides.StartAngle)
	}
	baseSpeed := b.BaseSpeed
	if overrides.BaseSpeed != nil {
		baseSpeed = *overrides.BaseSpeed
	}
	topSpeed := b.TopSpeed
	if overrides.TopSpeed != nil {
		topSpeed = *overrides.TopSpeed
	}
	rate := b.NormalisationRate
	if overrides.NormalisationRate != nil {
		rate = *overrides.NormalisationRate
	}
	offScreen := b.offScreen
	if overrides.OffScreen != nil {
		offScreen = overrides.OffScreen
	}

	clone := &Ball{
		rect:              geometry.NewRect(startPos.X, startPos.Y, b.rect.W, b.rect.H),
		angle:             startAngle,
		speed:             baseSpeed,
		BaseSpeed:         baseSpeed,
		TopSpeed:          topSpeed,
		NormalisationRate: rate,
		Visible:           true,
		area:              b.area,
		startPos:          startPos,
		startAngle:        startAngle,
		offScreen:         offScreen,
	}
	clone.policies = append([]CollisionPolicy(nil), b.policies...)
	return clone
}
