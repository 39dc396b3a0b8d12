// File: game/ball_test.go
package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lguibr/breakoid/geometry"
)

// jitterDelta covers the random reflection jitter plus angle rounding.
const jitterDelta = 0.11

// blockObstacle is a minimal static obstacle for collision tests.
type blockObstacle struct {
	rect    geometry.Rect
	visible bool
}

func newBlock(x, y, w, h float64) *blockObstacle {
	return &blockObstacle{rect: geometry.NewRect(x, y, w, h), visible: true}
}

func (o *blockObstacle) Rect() geometry.Rect { return o.rect }
func (o *blockObstacle) IsVisible() bool     { return o.visible }

func testArea() geometry.Rect { return geometry.NewRect(0, 0, 300, 300) }

func TestBallNormalisesSpeedTowardBase(t *testing.T) {
	testCases := []struct {
		name     string
		speed    float64
		expected float64
	}{
		{"above base decays", 12, 11.97},
		{"below base climbs", 5, 5.03},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ball := NewBall(geometry.Point{X: 100, Y: 100}, 10, 1.0, 8, testArea(), nil)
			ball.NormalisationRate = 0.03
			ball.SetSpeed(tc.speed)
			ball.Update()
			assert.InDelta(t, tc.expected, ball.Speed(), 1e-9)
		})
	}
}

func TestBallUpdateIntegratesPosition(t *testing.T) {
	ball := NewBall(geometry.Point{X: 100, Y: 100}, 10, 2.36, 8, testArea(), nil)
	ball.Update()

	rect := ball.Rect()
	assert.InDelta(t, 100+8*math.Cos(2.36), rect.X, 1e-9)
	assert.InDelta(t, 100+8*math.Sin(2.36), rect.Y, 1e-9)
	assert.InDelta(t, 94.30, rect.X, 0.01)
	assert.InDelta(t, 105.62, rect.Y, 0.01)
}

func TestBallOffScreenFiresWithoutCollisions(t *testing.T) {
	offScreenCalls := 0
	ball := NewBall(geometry.Point{X: 5, Y: 100}, 10, math.Pi, 8, testArea(), func(b *Ball) {
		offScreenCalls++
	})

	collided := false
	// Obstacle overlapping the off-screen position must not be consulted.
	wall := newBlock(-20, 0, 30, 300)
	ball.AddCollidable(wall, nil, 0, func(Obstacle, *Ball) { collided = true })

	ball.Update()

	assert.Equal(t, 1, offScreenCalls)
	assert.False(t, collided)
	assert.Less(t, ball.Rect().X, 0.0, "off-screen position is still committed")
}

func TestBallSideReflection(t *testing.T) {
	ball := NewBall(geometry.Point{X: 10, Y: 50}, 10, 2.5, 8, testArea(), nil)
	wall := newBlock(0, 0, 5, 200)
	ball.AddCollidable(wall, nil, 0.2, nil)

	ball.Update()

	assert.InDelta(t, math.Pi-2.5, ball.Angle(), jitterDelta)
	assert.InDelta(t, 8.2, ball.Speed(), 1e-9)
}

func TestBallTopBottomReflection(t *testing.T) {
	ball := NewBall(geometry.Point{X: 100, Y: 10}, 10, 4.5, 8, testArea(), nil)
	ceiling := newBlock(0, 0, 300, 5)
	ball.AddCollidable(ceiling, nil, 0, nil)

	ball.Update()

	assert.InDelta(t, 2*math.Pi-4.5, ball.Angle(), jitterDelta)
}

func TestBallCornerBackBounce(t *testing.T) {
	// Travelling down-right into the top-left corner of a block is a
	// genuine corner hit: the ball bounces straight back.
	ball := NewBall(geometry.Point{X: 90, Y: 90}, 10, 0.8, 8, testArea(), nil)
	block := newBlock(100, 100, 50, 50)
	ball.AddCollidable(block, nil, 0, nil)

	ball.Update()

	assert.InDelta(t, 0.8+math.Pi, ball.Angle(), jitterDelta)
}

func TestBallObliqueCornerIsEdgeHit(t *testing.T) {
	// One contained corner while sweeping up-and-right: the horizontal
	// component is moving away from the obstacle, so this is a glancing
	// side hit, not a back-bounce.
	ball := NewBall(geometry.Point{X: 95, Y: 100}, 10, 5.6, 8, testArea(), nil)
	brick := newBlock(90, 85, 12, 12)
	ball.AddCollidable(brick, nil, 0, nil)

	ball.Update()

	expected := math.Pi - 5.6 + 2*math.Pi // wrapped side reflection
	assert.InDelta(t, expected, ball.Angle(), jitterDelta)
}

func TestBallReflectionNearHorizontalGetsNudged(t *testing.T) {
	// A shallow reflection off the left wall would come out within the
	// loop-break band around 0; the fixed nudge must kick it away so
	// the ball cannot settle into a perpetual horizontal bounce.
	for i := 0; i < 50; i++ {
		ball := NewBall(geometry.Point{X: 10, Y: 50}, 10, math.Pi+0.03, 8, testArea(), nil)
		wall := newBlock(0, 0, 5, 200)
		ball.AddCollidable(wall, nil, 0, nil)

		ball.Update()

		// pi - (pi+0.03) wraps to just under 2*pi, inside the band, so
		// the result sits around 0.35-0.03 plus jitter.
		assert.Greater(t, ball.Angle(), 0.2)
		assert.Less(t, ball.Angle(), 0.45)
	}
}

func TestBallEngulfedBounceIsDeterministic(t *testing.T) {
	// All four corners inside a block: the ball retraces its path with
	// no randomness, or it could stay stuck inside the sprite.
	for i := 0; i < 50; i++ {
		ball := NewBall(geometry.Point{X: 100, Y: 100}, 10, 1.0, 8, testArea(), nil)
		block := newBlock(50, 50, 200, 200)
		ball.AddCollidable(block, nil, 0, nil)

		ball.Update()

		assert.Equal(t, 4.14, ball.Angle())
	}
}

func TestBallObliqueCornerIsTopBottomHit(t *testing.T) {
	// One contained corner while sweeping up-and-right under a brick:
	// the vertical component is moving away from the brick, so this is
	// a glancing bottom hit, not a back-bounce.
	ball := NewBall(geometry.Point{X: 95, Y: 100}, 10, 5.8, 8, testArea(), nil)
	brick := newBlock(105, 105, 15, 10)
	ball.AddCollidable(brick, nil, 0, nil)

	ball.Update()

	assert.InDelta(t, 2*math.Pi-5.8, ball.Angle(), jitterDelta)
}

func TestBallCustomBounceStrategy(t *testing.T) {
	var gotObstacle, gotBall geometry.Rect
	strategy := func(obstacle, ball geometry.Rect) float64 {
		gotObstacle, gotBall = obstacle, ball
		return 1.23
	}

	ball := NewBall(geometry.Point{X: 10, Y: 50}, 10, 2.5, 8, testArea(), nil)
	wall := newBlock(0, 0, 5, 200)
	ball.AddCollidable(wall, strategy, 0.5, nil)

	ball.Update()

	assert.Equal(t, 1.23, ball.Angle(), "strategy output used verbatim, no jitter")
	assert.InDelta(t, 8.5, ball.Speed(), 1e-9)
	assert.Equal(t, wall.Rect(), gotObstacle)
	assert.Equal(t, ball.Rect(), gotBall)
}

func TestBallMultiObstacleCollision(t *testing.T) {
	ball := NewBall(geometry.Point{X: 95, Y: 85}, 10, 1.0, 8, testArea(), nil)

	var order []string
	brickA := newBlock(90, 100, 15, 10)
	brickB := newBlock(105, 100, 15, 10)
	ball.AddCollidable(brickA, nil, 0.5, func(Obstacle, *Ball) { order = append(order, "a") })
	ball.AddCollidable(brickB, nil, 0.5, func(Obstacle, *Ball) { order = append(order, "b") })

	ball.Update()

	assert.Equal(t, []string{"a", "b"}, order, "callbacks fire in registration order")
	assert.InDelta(t, 9.0, ball.Speed(), 1e-9, "speed adjustments accumulate")
	assert.InDelta(t, 2*math.Pi-1.0, ball.Angle(), jitterDelta)
}

func TestBallSpeedClampedAtTop(t *testing.T) {
	ball := NewBall(geometry.Point{X: 10, Y: 50}, 10, 2.5, 8, testArea(), nil)
	ball.TopSpeed = 15
	ball.SetSpeed(14.8)
	wall := newBlock(0, 0, 5, 200)
	ball.AddCollidable(wall, nil, 0.5, nil)

	ball.Update()

	assert.Equal(t, 15.0, ball.Speed())
}

func TestBallAddCollidableReplacesInPlace(t *testing.T) {
	ball := NewBall(geometry.Point{X: 10, Y: 50}, 10, 2.5, 8, testArea(), nil)
	first := newBlock(0, 0, 5, 200)
	second := newBlock(200, 0, 5, 200)
	ball.AddCollidable(first, nil, 0.1, nil)
	ball.AddCollidable(second, nil, 0.1, nil)

	// Re-registering the first obstacle keeps its position in the order.
	ball.AddCollidable(first, nil, 0.9, nil)

	obstacles := ball.Collidables()
	require.Len(t, obstacles, 2)
	assert.Same(t, first, obstacles[0].(*blockObstacle))
	assert.Same(t, second, obstacles[1].(*blockObstacle))
}

func TestBallRemoveCollidable(t *testing.T) {
	ball := NewBall(geometry.Point{X: 10, Y: 50}, 10, 2.5, 8, testArea(), nil)
	wall := newBlock(0, 0, 5, 200)
	ball.AddCollidable(wall, nil, 0, nil)
	ball.RemoveCollidable(wall)
	assert.Empty(t, ball.Collidables())

	// Removing twice is harmless.
	ball.RemoveCollidable(wall)
}

func TestBallInvisibleObstaclesIgnored(t *testing.T) {
	ball := NewBall(geometry.Point{X: 10, Y: 50}, 10, 2.5, 8, testArea(), nil)
	wall := newBlock(0, 0, 5, 200)
	wall.visible = false
	collided := false
	ball.AddCollidable(wall, nil, 0, func(Obstacle, *Ball) { collided = true })

	ball.Update()

	assert.False(t, collided)
	assert.Equal(t, 2.5, ball.Angle())
}

func TestBallAnchorFollowsTarget(t *testing.T) {
	ball := NewBall(geometry.Point{X: 10, Y: 50}, 10, 2.5, 8, testArea(), nil)
	paddle := newBlock(100, 200, 90, 16)
	offset := geometry.Point{X: 40, Y: -10}
	ball.Anchor(paddle, &offset)

	ball.Update()
	assert.Equal(t, geometry.NewRect(140, 190, 10, 10), ball.Rect())

	paddle.rect = paddle.rect.Move(25, 0)
	ball.Update()
	assert.Equal(t, geometry.NewRect(165, 190, 10, 10), ball.Rect())
	assert.True(t, ball.Anchored())
}

func TestBallAnchorCentresWithoutOffset(t *testing.T) {
	ball := NewBall(geometry.Point{X: 10, Y: 50}, 10, 2.5, 8, testArea(), nil)
	paddle := newBlock(100, 200, 90, 16)
	ball.Anchor(paddle, nil)

	ball.Update()
	centre := ball.Rect().Center()
	assert.Equal(t, paddle.Rect().Center(), centre)
}

func TestBallAnchorSuspendsCollisions(t *testing.T) {
	ball := NewBall(geometry.Point{X: 10, Y: 50}, 10, 2.5, 8, testArea(), nil)
	paddle := newBlock(100, 200, 90, 16)
	collided := false
	ball.AddCollidable(paddle, nil, 0, func(Obstacle, *Ball) { collided = true })
	ball.Anchor(paddle, nil)

	ball.Update()

	assert.False(t, collided, "anchored balls skip collision detection")
}

func TestBallReleaseRestoresMotion(t *testing.T) {
	ball := NewBall(geometry.Point{X: 10, Y: 50}, 10, 2.5, 8, testArea(), nil)
	ball.SetSpeed(3)
	ball.AnchorAt(geometry.Point{X: 150, Y: 150})
	ball.Update()

	ball.Release(4.2)

	assert.False(t, ball.Anchored())
	assert.Equal(t, 4.2, ball.Angle())
	assert.Equal(t, 8.0, ball.Speed(), "release resumes at base speed")
}

func TestBallResetRestoresStartState(t *testing.T) {
	ball := NewBall(geometry.Point{X: 10, Y: 50}, 10, 2.5, 8, testArea(), nil)
	ball.Update()
	ball.SetSpeed(13)
	ball.Visible = false
	ball.AnchorAt(geometry.Point{X: 0, Y: 0})

	ball.Reset()

	assert.Equal(t, geometry.NewRect(10, 50, 10, 10), ball.Rect())
	assert.Equal(t, 2.5, ball.Angle())
	assert.Equal(t, 8.0, ball.Speed())
	assert.True(t, ball.Visible)
	assert.False(t, ball.Anchored())
}

func TestBallCloneSharesObstaclesIndependentState(t *testing.T) {
	ball := NewBall(geometry.Point{X: 10, Y: 50}, 10, 2.5, 8, testArea(), nil)
	wall := newBlock(0, 0, 5, 200)
	ball.AddCollidable(wall, nil, 0.2, nil)

	angle := 1.1
	clone := ball.Clone(BallOverrides{StartAngle: &angle})

	require.Len(t, clone.Collidables(), 1)
	assert.Same(t, wall, clone.Collidables()[0].(*blockObstacle), "clone shares the obstacle, not a copy")

	clone.SetAngle(0.5)
	clone.SetSpeed(12)
	assert.Equal(t, 2.5, ball.Angle())
	assert.Equal(t, 8.0, ball.Speed())

	// Unregistering on the clone leaves the source untouched.
	clone.RemoveCollidable(wall)
	assert.Len(t, ball.Collidables(), 1)
}

func TestBallCloneInheritsUnsetOverrides(t *testing.T) {
	ball := NewBall(geometry.Point{X: 10, Y: 50}, 10, 2.5, 8, testArea(), nil)
	ball.TopSpeed = 13
	ball.NormalisationRate = 0.05

	clone := ball.Clone(BallOverrides{})

	assert.Equal(t, 13.0, clone.TopSpeed)
	assert.Equal(t, 0.05, clone.NormalisationRate)
	assert.Equal(t, 2.5, clone.Angle())
	assert.Equal(t, geometry.NewRect(10, 50, 10, 10), clone.Rect())
}
