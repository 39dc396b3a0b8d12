// File: game/game_test.go
package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lguibr/breakoid/utils"
)

func testConfig() utils.Config {
	cfg := utils.DefaultConfig()
	cfg.PowerUpChance = 0 // deterministic tests
	return cfg
}

func singleBrickRounds(n int) []RoundConfig {
	rounds := make([]RoundConfig, n)
	for i := range rounds {
		rounds[i] = RoundConfig{Name: "single", Layout: []string{"r"}}
	}
	return rounds
}

func newTestGame(t *testing.T, cfg utils.Config, rounds []RoundConfig) *Game {
	t.Helper()
	g, err := NewGame(cfg, rounds, nil)
	require.NoError(t, err)
	return g
}

func TestNewGameRejectsBadCampaign(t *testing.T) {
	_, err := NewGame(testConfig(), nil, nil)
	assert.Error(t, err)

	_, err = NewGame(testConfig(), []RoundConfig{{Name: "bad", Layout: []string{"x"}}}, nil)
	assert.Error(t, err)
}

func TestGameStartsServing(t *testing.T) {
	g := newTestGame(t, testConfig(), singleBrickRounds(1))

	assert.Equal(t, StateServing, g.State())
	assert.Equal(t, 3, g.Lives())
	assert.Equal(t, 1, g.Round())
	require.Len(t, g.Balls(), 1)

	g.Update()
	ball := g.Balls()[0]
	assert.True(t, ball.Anchored())
	assert.Equal(t, g.Paddle().Rect().Top()-ball.Rect().H, ball.Rect().Top(),
		"served ball rests on the paddle")
}

func TestGameServedBallTracksPaddle(t *testing.T) {
	g := newTestGame(t, testConfig(), singleBrickRounds(1))
	g.MovePaddle(1)
	g.Update()
	g.Update()

	ball := g.Balls()[0]
	assert.InDelta(t, g.Paddle().Rect().Center().X, ball.Rect().Center().X, 1e-9)
}

func TestGameReleaseStartsPlay(t *testing.T) {
	g := newTestGame(t, testConfig(), singleBrickRounds(1))
	g.ReleaseBall()

	assert.Equal(t, StatePlaying, g.State())
	ball := g.Balls()[0]
	assert.False(t, ball.Anchored())
	assert.Equal(t, 8.0, ball.Speed())
	// The serve always launches upward.
	assert.Greater(t, ball.Angle(), math.Pi)
}

func TestGameAutoReleasesAfterTimeout(t *testing.T) {
	cfg := testConfig()
	cfg.AutoReleaseTicks = 3
	g := newTestGame(t, cfg, singleBrickRounds(1))

	g.Update()
	g.Update()
	assert.Equal(t, StateServing, g.State())

	g.Update()
	assert.Equal(t, StatePlaying, g.State())
	assert.False(t, g.Balls()[0].Anchored())
}

func TestGameBrickDestructionScoresAndAdvances(t *testing.T) {
	g := newTestGame(t, testConfig(), singleBrickRounds(2))

	var events []EventKind
	for _, kind := range []EventKind{EventBrickDestroyed, EventScoreChanged, EventRoundCleared} {
		kind := kind
		g.Bus().Subscribe(kind, func(Event) { events = append(events, kind) })
	}

	g.Bricks()[0].Hit()
	g.addScore(90)
	g.Update()

	assert.Equal(t, 90, g.Score())
	assert.Equal(t, 2, g.Round(), "cleared round advances the campaign")
	assert.Equal(t, StateServing, g.State())
	assert.Contains(t, events, EventScoreChanged)
	assert.Contains(t, events, EventRoundCleared)
}

func TestGameWonAfterLastRound(t *testing.T) {
	g := newTestGame(t, testConfig(), singleBrickRounds(1))
	won := false
	g.Bus().Subscribe(EventGameWon, func(Event) { won = true })

	g.Bricks()[0].Hit()
	g.Update()

	assert.Equal(t, StateWon, g.State())
	assert.True(t, won)
}

func TestGameLifeLossAndRecovery(t *testing.T) {
	g := newTestGame(t, testConfig(), singleBrickRounds(1))
	var kinds []EventKind
	g.Bus().Subscribe(EventBallLost, func(e Event) { kinds = append(kinds, e.Kind) })
	g.Bus().Subscribe(EventLifeLost, func(e Event) { kinds = append(kinds, e.Kind) })

	g.ReleaseBall()
	ball := g.Balls()[0]
	ball.MoveTo(300, 630)
	ball.SetAngle(math.Pi / 2) // straight down, out the open bottom

	g.Update()

	assert.Equal(t, StateExploding, g.State())
	assert.Equal(t, 2, g.Lives())
	assert.Equal(t, []EventKind{EventBallLost, EventLifeLost}, kinds)

	// The explosion animation and the serve pause run their course.
	limit := g.cfg.PaddleExplodeTicks + g.cfg.BallOffTicks + 5
	for i := 0; i < limit && g.State() == StateExploding; i++ {
		g.Update()
	}
	assert.Equal(t, StateServing, g.State())
	assert.True(t, g.Balls()[0].Anchored())
	assert.True(t, g.Balls()[0].Visible)
}

func TestGameServePausesAfterExplosion(t *testing.T) {
	cfg := testConfig()
	cfg.PaddleExplodeTicks = 5
	cfg.BallOffTicks = 4
	g := newTestGame(t, cfg, singleBrickRounds(1))

	g.ReleaseBall()
	ball := g.Balls()[0]
	ball.MoveTo(300, 630)
	ball.SetAngle(math.Pi / 2)
	g.Update()
	assert.Equal(t, StateExploding, g.State())

	// The field stays empty for the configured beat after the paddle
	// finishes exploding, then the serve happens.
	ticks := 0
	for g.State() == StateExploding && ticks < 100 {
		g.Update()
		ticks++
	}
	assert.Equal(t, StateServing, g.State())
	assert.Equal(t, cfg.PaddleExplodeTicks+cfg.BallOffTicks, ticks)
}

func TestGameOverOnLastLife(t *testing.T) {
	cfg := testConfig()
	cfg.Lives = 1
	g := newTestGame(t, cfg, singleBrickRounds(1))
	over := false
	g.Bus().Subscribe(EventGameOver, func(Event) { over = true })

	g.ReleaseBall()
	ball := g.Balls()[0]
	ball.MoveTo(300, 630)
	ball.SetAngle(math.Pi / 2)
	g.Update()

	assert.Equal(t, StateGameOver, g.State())
	assert.Zero(t, g.Lives())
	assert.True(t, over)

	// A finished game ignores further updates and input.
	g.MovePaddle(1)
	x := g.Paddle().Rect().X
	g.Update()
	assert.Equal(t, x, g.Paddle().Rect().X)
}

func TestPowerUpExtraLife(t *testing.T) {
	g := newTestGame(t, testConfig(), singleBrickRounds(1))
	g.applyPowerUp(PowerUpExtraLife)
	assert.Equal(t, 4, g.Lives())
}

func TestPowerUpSlowBall(t *testing.T) {
	g := newTestGame(t, testConfig(), singleBrickRounds(1))
	g.ReleaseBall()
	g.Balls()[0].SetSpeed(12)

	g.applyPowerUp(PowerUpSlowBall)
	assert.Equal(t, 9.0, g.Balls()[0].Speed())

	// Slowing never drops below crawl speed.
	g.Balls()[0].SetSpeed(2)
	g.applyPowerUp(PowerUpSlowBall)
	assert.Equal(t, 1.0, g.Balls()[0].Speed())
}

func TestPowerUpExpandAndLaserAreExclusive(t *testing.T) {
	g := newTestGame(t, testConfig(), singleBrickRounds(1))

	g.applyPowerUp(PowerUpCatch)
	assert.True(t, g.catchActive)

	g.applyPowerUp(PowerUpExpand)
	g.Update()
	assert.False(t, g.catchActive, "expand cancels catch mode")
	assert.Equal(t, PaddleWide, g.Paddle().State())

	g.applyPowerUp(PowerUpLaser)
	g.Update()
	assert.Equal(t, PaddleLaser, g.Paddle().State())
}

func TestPowerUpCatchAnchorsBallOnPaddle(t *testing.T) {
	g := newTestGame(t, testConfig(), singleBrickRounds(1))
	g.ReleaseBall()
	g.applyPowerUp(PowerUpCatch)

	ball := g.Balls()[0]
	ball.MoveTo(290, 580)
	ball.SetAngle(math.Pi / 2)
	g.Update()

	assert.True(t, ball.Anchored(), "catch mode sticks the ball to the paddle")
	assert.Equal(t, StateServing, g.State())

	// The offset where the ball landed is preserved while it rides along.
	relX := ball.Rect().X - g.Paddle().Rect().X
	g.MovePaddle(-1)
	g.Update()
	assert.InDelta(t, relX, ball.Rect().X-g.Paddle().Rect().X, 1e-9)
}

func TestPowerUpDuplicateSharesBricks(t *testing.T) {
	g := newTestGame(t, testConfig(), singleBrickRounds(1))
	g.ReleaseBall()

	g.applyPowerUp(PowerUpDuplicate)
	require.Len(t, g.Balls(), 2)

	source, clone := g.Balls()[0], g.Balls()[1]
	assert.NotEqual(t, source.Angle(), clone.Angle())
	assert.Equal(t, source.Speed(), clone.Speed())

	brick := g.Bricks()[0]
	assert.Contains(t, clone.Collidables(), Obstacle(brick))
}

func TestPowerUpDuplicateNeedsFlyingBall(t *testing.T) {
	g := newTestGame(t, testConfig(), singleBrickRounds(1))
	// Still serving: the only ball is anchored, nothing to duplicate.
	g.applyPowerUp(PowerUpDuplicate)
	assert.Len(t, g.Balls(), 1)
}

func TestPowerUpWarpAdvancesRound(t *testing.T) {
	g := newTestGame(t, testConfig(), singleBrickRounds(2))
	g.Update() // settle the serve on the paddle
	g.ReleaseBall()

	g.applyPowerUp(PowerUpWarp)
	assert.Equal(t, 1, g.Round(), "warp defers until the end of the tick")

	g.Update()
	assert.Equal(t, 2, g.Round())
	assert.Equal(t, StateServing, g.State())
}

func TestFireLaserRequiresLaserPaddle(t *testing.T) {
	g := newTestGame(t, testConfig(), singleBrickRounds(1))

	g.FireLaser()
	assert.Empty(t, g.Bolts(), "normal paddle cannot fire")

	g.applyPowerUp(PowerUpLaser)
	g.Update()
	for i := 0; i < 10; i++ {
		g.FireLaser()
	}
	assert.Len(t, g.Bolts(), maxLaserBolts)
}

func TestLaserBoltDestroysBrick(t *testing.T) {
	g := newTestGame(t, testConfig(), singleBrickRounds(1))
	g.applyPowerUp(PowerUpLaser)
	g.Update()
	g.FireLaser()

	for i := 0; i < 100 && g.State() != StateWon; i++ {
		g.Update()
	}

	assert.Equal(t, StateWon, g.State(), "bolt clears the only brick and wins the game")
	assert.Equal(t, 90, g.Score())
}

func TestDestroyedBrickUnregistersFromAllBalls(t *testing.T) {
	rounds := []RoundConfig{{Name: "pair", Layout: []string{"rr"}}}
	g := newTestGame(t, testConfig(), rounds)
	g.ReleaseBall()
	g.applyPowerUp(PowerUpDuplicate)
	require.Len(t, g.Balls(), 2)

	brick := g.Bricks()[0]
	g.onBrickHit(brick, g.Balls()[0])
	g.Balls()[0].MoveTo(300, 300)
	g.Balls()[1].MoveTo(300, 320)

	g.Update()

	for _, ball := range g.Balls() {
		assert.NotContains(t, ball.Collidables(), Obstacle(brick))
	}
	assert.Equal(t, StatePlaying, g.State(), "one brick left, round continues")
}

func TestLostCloneDoesNotCostALife(t *testing.T) {
	g := newTestGame(t, testConfig(), singleBrickRounds(1))
	g.ReleaseBall()
	g.applyPowerUp(PowerUpDuplicate)
	require.Len(t, g.Balls(), 2)

	clone := g.Balls()[1]
	clone.MoveTo(300, 630)
	clone.SetAngle(math.Pi / 2)
	// Keep the original safely in flight mid-screen.
	g.Balls()[0].MoveTo(300, 300)
	g.Balls()[0].SetAngle(0.5)

	g.Update()

	assert.Len(t, g.Balls(), 1)
	assert.Equal(t, 3, g.Lives())
	assert.Equal(t, StatePlaying, g.State())
}
