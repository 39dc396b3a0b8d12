// File: game/bounce.go
package game

import (
	"github.com/lguibr/breakoid/geometry"
	"github.com/lguibr/breakoid/utils"
)

// paddleSegmentAngles maps each sixth of the paddle's width to an outgoing
// angle in degrees. Negative degrees point up the screen; the outermost
// segments send the ball at the shallowest angles.
var paddleSegmentAngles = [...]float64{-130, -115, -100, -80, -65, -50}

// PaddleBounce returns the outgoing angle for a ball striking the paddle.
// The paddle is split into six equal segments; the leftmost segment the
// ball's rectangle overlaps picks the angle, so players can aim by where on
// the paddle they catch the ball. Balls overhanging either end clamp to the
// outermost segment.
func PaddleBounce(paddle, ball geometry.Rect) float64 {
	segment := paddle.W / float64(len(paddleSegmentAngles))
	offset := ball.Left() - paddle.Left()

	index := int(offset / segment)
	if index < 0 {
		index = 0
	}
	if index >= len(paddleSegmentAngles) {
		index = len(paddleSegmentAngles) - 1
	}
	return utils.WrapAngle(utils.Radians(paddleSegmentAngles[index]))
}
