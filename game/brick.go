// File: game/brick.go
package game

import (
	"github.com/lguibr/breakoid/geometry"
)

// BrickKind identifies a brick colour, which determines its score value and
// how many hits it takes.
type BrickKind string

const (
	BrickBlue   BrickKind = "blue"
	BrickCyan   BrickKind = "cyan"
	BrickGold   BrickKind = "gold"
	BrickGreen  BrickKind = "green"
	BrickOrange BrickKind = "orange"
	BrickPink   BrickKind = "pink"
	BrickRed    BrickKind = "red"
	BrickSilver BrickKind = "silver"
	BrickWhite  BrickKind = "white"
	BrickYellow BrickKind = "yellow"
)

var brickScores = map[BrickKind]int{
	BrickBlue:   100,
	BrickCyan:   70,
	BrickGold:   0,
	BrickGreen:  80,
	BrickOrange: 60,
	BrickPink:   110,
	BrickRed:    90,
	BrickWhite:  40,
	BrickYellow: 120,
}

// Brick is one cell of the wall. Gold bricks are indestructible; silver
// bricks take two hits and score with the round number.
type Brick struct {
	rect    geometry.Rect
	Kind    BrickKind
	Life    int
	Score   int
	Visible bool
}

// NewBrick creates a brick of the given kind for the given round number.
func NewBrick(rect geometry.Rect, kind BrickKind, round int) *Brick {
	b := &Brick{rect: rect, Kind: kind, Life: 1, Visible: true}
	switch kind {
	case BrickGold:
		b.Life = -1 // never destroyed
	case BrickSilver:
		b.Life = 2
		b.Score = 50 * round
	default:
		b.Score = brickScores[kind]
	}
	return b
}

func (b *Brick) Rect() geometry.Rect { return b.rect }
func (b *Brick) IsVisible() bool     { return b.Visible }

// Indestructible reports whether hits can ever destroy this brick.
func (b *Brick) Indestructible() bool { return b.Life < 0 }

// Hit applies one hit and returns the score awarded and whether the brick
// was destroyed by it. Destroyed bricks turn invisible so balls pass
// through the empty cell.
func (b *Brick) Hit() (score int, destroyed bool) {
	if b.Life < 0 || !b.Visible {
		return 0, false
	}
	b.Life--
	if b.Life > 0 {
		return 0, false
	}
	b.Visible = false
	return b.Score, true
}
