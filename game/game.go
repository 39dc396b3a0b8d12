// File: game/game.go
package game

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/lguibr/breakoid/geometry"
	"github.com/lguibr/breakoid/utils"
)

// GameState enumerates the top-level game flow states.
type GameState int

const (
	// StateServing means the ball sits anchored on the paddle waiting
	// for release; the paddle can already move.
	StateServing GameState = iota
	StatePlaying
	// StateExploding runs the paddle's death animation after the last
	// ball is lost, plus a short pause before the next serve.
	StateExploding
	StateGameOver
	StateWon
)

func (s GameState) String() string {
	switch s {
	case StateServing:
		return "serving"
	case StatePlaying:
		return "playing"
	case StateExploding:
		return "exploding"
	case StateGameOver:
		return "game_over"
	case StateWon:
		return "won"
	default:
		return "unknown"
	}
}

const maxLaserBolts = 4

// Game owns all entities of one session and drives them frame by frame.
// It is confined to a single goroutine; the owning actor serializes every
// call into it.
type Game struct {
	cfg utils.Config
	bus *EventBus

	paddle   *Paddle
	balls    []*Ball
	edges    []*Edge
	bricks   []*Brick
	powerUps []*PowerUp
	bolts    []*LaserBolt

	rounds   []RoundConfig
	roundIdx int

	state       GameState
	score       int
	lives       int
	catchActive bool
	serveTicks  int      // frames spent in StateServing, drives auto-release
	serveDelay  int      // frames left between the explosion ending and the serve
	lostBalls   int      // balls gone off-screen this tick
	pendingWarp bool     // warp capsule caught; round change applies at tick end
	destroyed   []*Brick // bricks destroyed this tick, swept after updates
}

// NewGame builds a session from the configured campaign. It returns an
// error if any round layout is invalid.
func NewGame(cfg utils.Config, rounds []RoundConfig, bus *EventBus) (*Game, error) {
	if len(rounds) == 0 {
		return nil, fmt.Errorf("no rounds configured")
	}
	for _, r := range rounds {
		if err := r.Validate(); err != nil {
			return nil, err
		}
	}
	if bus == nil {
		bus = NewEventBus()
	}

	g := &Game{
		cfg:    cfg,
		bus:    bus,
		rounds: rounds,
		lives:  cfg.Lives,
	}

	g.edges = BuildEdges(cfg.ScreenWidth, cfg.ScreenHeight, cfg.EdgeWidth)
	g.paddle = NewPaddle(
		g.paddleStartPos(),
		cfg.PaddleWidth, cfg.PaddleHeight, cfg.PaddleSpeed,
		g.playArea(),
		cfg.PaddleWidenStep, cfg.PaddleExplodeTicks,
	)

	g.loadRound(0)
	return g, nil
}

func (g *Game) Bus() *EventBus       { return g.bus }
func (g *Game) State() GameState     { return g.state }
func (g *Game) Score() int           { return g.score }
func (g *Game) Lives() int           { return g.lives }
func (g *Game) Round() int           { return g.roundIdx + 1 }
func (g *Game) Paddle() *Paddle      { return g.paddle }
func (g *Game) Balls() []*Ball       { return g.balls }
func (g *Game) Bricks() []*Brick     { return g.bricks }
func (g *Game) Edges() []*Edge       { return g.edges }
func (g *Game) PowerUps() []*PowerUp { return g.powerUps }
func (g *Game) Bolts() []*LaserBolt  { return g.bolts }

// playArea is the region between the side walls, full screen height.
func (g *Game) playArea() geometry.Rect {
	return geometry.NewRect(
		g.cfg.EdgeWidth, 0,
		g.cfg.ScreenWidth-2*g.cfg.EdgeWidth, g.cfg.ScreenHeight,
	)
}

// screenArea bounds ball motion; leaving it means the ball is lost.
func (g *Game) screenArea() geometry.Rect {
	return geometry.NewRect(0, 0, g.cfg.ScreenWidth, g.cfg.ScreenHeight)
}

func (g *Game) paddleStartPos() geometry.Point {
	return geometry.Point{
		X: (g.cfg.ScreenWidth - g.cfg.PaddleWidth) / 2,
		Y: g.cfg.ScreenHeight - g.cfg.PaddleBottomOffset,
	}
}

// loadRound installs round idx: fresh bricks, a single served ball,
// paddle recentred, transient entities cleared. Score and lives carry
// over.
func (g *Game) loadRound(idx int) {
	g.roundIdx = idx
	cfg := g.rounds[idx]
	g.bricks = BuildRound(cfg, idx+1, g.playArea(), 20, 60)
	g.powerUps = nil
	g.bolts = nil
	g.destroyed = nil
	g.catchActive = false

	g.paddle.Reset(g.paddleStartPos())

	ball := NewBall(
		geometry.Point{X: 0, Y: 0}, g.cfg.BallSize,
		g.cfg.BallStartAngle, g.cfg.BallBaseSpeed,
		g.screenArea(), g.onBallOffScreen,
	)
	ball.TopSpeed = g.cfg.BallTopSpeed
	ball.NormalisationRate = g.cfg.BallNormalisationRate
	g.balls = []*Ball{ball}
	g.registerBall(ball)

	g.serve()
	log.Printf("round %d (%s): %d bricks", idx+1, cfg.Name, len(g.bricks))
}

// registerBall wires a ball's collidable registry: walls, paddle and every
// brick of the current round.
func (g *Game) registerBall(ball *Ball) {
	for _, edge := range g.edges {
		ball.AddCollidable(edge, nil, g.cfg.WallSpeedAdjust, nil)
	}
	ball.AddCollidable(g.paddle, PaddleBounce, 0, g.onPaddleHit)
	for _, brick := range g.bricks {
		ball.AddCollidable(brick, nil, g.cfg.BrickSpeedAdjust, g.onBrickHit)
	}
}

// serve anchors the first ball just above the paddle's centre and enters
// the serving state.
func (g *Game) serve() {
	ball := g.balls[0]
	ball.Reset()
	rel := geometry.Point{
		X: (g.paddle.Rect().W - ball.Rect().W) / 2,
		Y: -ball.Rect().H,
	}
	ball.Anchor(g.paddle, &rel)
	g.state = StateServing
	g.serveTicks = 0
}

// Update advances the whole game by one frame.
func (g *Game) Update() {
	switch g.state {
	case StateGameOver, StateWon:
		return
	case StateExploding:
		g.paddle.Update()
		if g.paddle.Exploding() {
			return
		}
		// Hold the empty field for a beat before the next serve.
		if g.serveDelay > 0 {
			g.serveDelay--
			return
		}
		g.serve()
		return
	}

	g.paddle.Update()
	g.updateBalls()
	g.updatePowerUps()
	g.updateBolts()
	g.sweepDestroyedBricks()

	if g.pendingWarp {
		g.pendingWarp = false
		if g.state == StatePlaying || g.state == StateServing {
			g.advanceRound()
		}
		return
	}

	if g.state == StateServing {
		g.serveTicks++
		if g.serveTicks >= g.cfg.AutoReleaseTicks {
			g.ReleaseBall()
		}
	}

	g.checkRoundCleared()
}

func (g *Game) updateBalls() {
	g.lostBalls = 0
	for _, ball := range g.balls {
		ball.Update()
	}
	if g.lostBalls == 0 {
		return
	}

	remaining := g.balls[:0]
	for _, ball := range g.balls {
		if ball.Visible {
			remaining = append(remaining, ball)
		}
	}
	if len(remaining) > 0 {
		g.balls = remaining
		return
	}

	// Last ball gone: a life is lost.
	g.balls = g.balls[:1]
	g.lives--
	g.bus.Publish(Event{Kind: EventLifeLost, Lives: g.lives, Round: g.Round()})
	if g.lives <= 0 {
		g.state = StateGameOver
		g.bus.Publish(Event{Kind: EventGameOver, Score: g.score, Round: g.Round()})
		return
	}
	g.catchActive = false
	g.paddle.RequestState(PaddleExploding)
	g.serveDelay = g.cfg.BallOffTicks
	g.state = StateExploding
}

func (g *Game) onBallOffScreen(ball *Ball) {
	ball.Visible = false
	g.lostBalls++
	g.bus.Publish(Event{Kind: EventBallLost, Ball: ball, Round: g.Round()})
}

// onBrickHit runs for every ball-brick collision, before the bounce is
// resolved.
func (g *Game) onBrickHit(obstacle Obstacle, ball *Ball) {
	brick, ok := obstacle.(*Brick)
	if !ok {
		return
	}
	score, destroyed := brick.Hit()
	if !destroyed {
		return
	}
	g.addScore(score)
	g.destroyed = append(g.destroyed, brick)
	g.bus.Publish(Event{Kind: EventBrickDestroyed, Brick: brick, Score: score, Round: g.Round()})
	g.maybeDropPowerUp(brick)
}

// sweepDestroyedBricks unregisters this tick's destroyed bricks from every
// ball. Visibility filtering already keeps dead bricks out of collision
// detection; the sweep stops their policies accumulating across a round.
func (g *Game) sweepDestroyedBricks() {
	if len(g.destroyed) == 0 {
		return
	}
	for _, brick := range g.destroyed {
		for _, ball := range g.balls {
			ball.RemoveCollidable(brick)
		}
	}
	g.destroyed = g.destroyed[:0]
}

// onPaddleHit catches the ball when catch mode is active; anchoring before
// the bounce resolves means the reflection never takes effect.
func (g *Game) onPaddleHit(obstacle Obstacle, ball *Ball) {
	if !g.catchActive || g.paddle.Exploding() {
		return
	}
	rel := geometry.Point{
		X: ball.Rect().X - g.paddle.Rect().X,
		Y: -ball.Rect().H,
	}
	ball.Anchor(g.paddle, &rel)
	g.state = StateServing
	g.serveTicks = 0
}

func (g *Game) addScore(score int) {
	if score == 0 {
		return
	}
	g.score += score
	g.bus.Publish(Event{Kind: EventScoreChanged, Score: g.score})
}

func (g *Game) maybeDropPowerUp(brick *Brick) {
	if rand.Float64() >= g.cfg.PowerUpChance {
		return
	}
	capsule := NewPowerUp(
		RandomPowerUpKind(), brick.Rect().Center(),
		g.cfg.PowerUpSize, g.cfg.PowerUpFallSpeed, g.cfg.ScreenHeight,
	)
	g.powerUps = append(g.powerUps, capsule)
	g.bus.Publish(Event{Kind: EventPowerUpSpawned, PowerUp: capsule})
}

func (g *Game) updatePowerUps() {
	remaining := g.powerUps[:0]
	for _, capsule := range g.powerUps {
		if !capsule.Update() {
			continue
		}
		if !g.paddle.Exploding() && capsule.Rect().Intersects(g.paddle.Rect()) {
			capsule.Visible = false
			g.bus.Publish(Event{Kind: EventPowerUpCaught, PowerUp: capsule})
			g.applyPowerUp(capsule.Kind)
			continue
		}
		remaining = append(remaining, capsule)
	}
	g.powerUps = remaining
}

// applyPowerUp is the single dispatch point for every capsule variant. The
// paddle modes (expand, laser, catch) are mutually exclusive; the rest are
// instant effects.
func (g *Game) applyPowerUp(kind PowerUpKind) {
	switch kind {
	case PowerUpExtraLife:
		g.lives++
	case PowerUpSlowBall:
		for _, ball := range g.balls {
			slowed := ball.Speed() - g.cfg.SlowBallDelta
			if slowed < 1 {
				slowed = 1
			}
			ball.SetSpeed(slowed)
		}
	case PowerUpExpand:
		g.catchActive = false
		g.paddle.RequestState(PaddleWide)
	case PowerUpLaser:
		g.catchActive = false
		g.paddle.RequestState(PaddleLaser)
	case PowerUpCatch:
		g.catchActive = true
		g.paddle.RequestState(PaddleNormal)
	case PowerUpDuplicate:
		g.duplicateBall()
	case PowerUpWarp:
		// Deferred to the end of the tick: rebuilding the round here
		// would pull entity slices out from under the update loops.
		g.pendingWarp = true
	default:
		log.Printf("unknown power-up kind %q", kind)
	}
}

// duplicateBall clones the first in-flight ball at its current position
// with a diverging angle. Clones share the session's obstacles, so a brick
// destroyed by one ball disappears for all of them.
func (g *Game) duplicateBall() {
	var source *Ball
	for _, ball := range g.balls {
		if ball.Visible && !ball.Anchored() {
			source = ball
			break
		}
	}
	if source == nil {
		return
	}
	pos := geometry.Point{X: source.Rect().X, Y: source.Rect().Y}
	angle := utils.WrapAngle(source.Angle() + 0.6)
	clone := source.Clone(BallOverrides{StartPos: &pos, StartAngle: &angle})
	clone.SetSpeed(source.Speed())
	g.balls = append(g.balls, clone)
}

func (g *Game) updateBolts() {
	remaining := g.bolts[:0]
	for _, bolt := range g.bolts {
		if !bolt.Update() {
			continue
		}
		if g.boltHitsBrick(bolt) {
			continue
		}
		remaining = append(remaining, bolt)
	}
	g.bolts = remaining
}

func (g *Game) boltHitsBrick(bolt *LaserBolt) bool {
	for _, brick := range g.bricks {
		if !brick.IsVisible() || !bolt.Rect().Intersects(brick.Rect()) {
			continue
		}
		bolt.Visible = false
		score, destroyed := brick.Hit()
		if destroyed {
			g.addScore(score)
			g.destroyed = append(g.destroyed, brick)
			g.bus.Publish(Event{Kind: EventBrickDestroyed, Brick: brick, Score: score, Round: g.Round()})
			g.maybeDropPowerUp(brick)
		}
		return true
	}
	return false
}

// checkRoundCleared advances the campaign once every destructible brick of
// the round is gone.
func (g *Game) checkRoundCleared() {
	if g.state != StatePlaying && g.state != StateServing {
		return
	}
	for _, brick := range g.bricks {
		if brick.IsVisible() && !brick.Indestructible() {
			return
		}
	}
	g.bus.Publish(Event{Kind: EventRoundCleared, Round: g.Round(), Score: g.score})
	g.advanceRound()
}

func (g *Game) advanceRound() {
	next := g.roundIdx + 1
	if next >= len(g.rounds) {
		g.state = StateWon
		g.bus.Publish(Event{Kind: EventGameWon, Score: g.score})
		return
	}
	// Old bricks stay registered on the surviving ball until loadRound
	// rebuilds it from scratch.
	g.balls[0].RemoveAllCollidables()
	g.loadRound(next)
}

// MovePaddle applies player movement input: -1 left, 0 stop, 1 right.
func (g *Game) MovePaddle(direction int) {
	if g.state == StateGameOver || g.state == StateWon {
		return
	}
	g.paddle.SetDirection(direction)
}

// ReleaseBall launches any anchored ball upward, aimed by the paddle
// segment it currently sits on. Applies to the serve and to balls held by
// the catch power-up alike.
func (g *Game) ReleaseBall() {
	released := false
	for _, ball := range g.balls {
		if !ball.Anchored() {
			continue
		}
		ball.Release(PaddleBounce(g.paddle.Rect(), ball.Rect()))
		released = true
	}
	if released && (g.state == StateServing || g.state == StatePlaying) {
		g.state = StatePlaying
	}
}

// FireLaser spawns a bolt from the paddle's top centre. It is a no-op
// unless the paddle is in laser form with capacity for another bolt.
func (g *Game) FireLaser() {
	if g.state != StatePlaying && g.state != StateServing {
		return
	}
	if g.paddle.State() != PaddleLaser || len(g.bolts) >= maxLaserBolts {
		return
	}
	bolt := NewLaserBolt(g.paddle.Rect().MidTop(), g.cfg.LaserSpeed)
	g.bolts = append(g.bolts, bolt)
	g.bus.Publish(Event{Kind: EventLaserFired})
}
