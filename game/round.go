// File: game/round.go
package game

import (
	"fmt"
	"strings"

	"github.com/lguibr/breakoid/geometry"
)

// RoundConfig describes one round as a textual brick layout. Each string is
// a row; each rune one cell:
//
//	b blue   c cyan   G gold   g green   o orange
//	p pink   r red    s silver w white   y yellow
//	. empty
//
// Rows may differ in length; shorter rows leave trailing cells empty.
type RoundConfig struct {
	Name   string
	Layout []string
}

var brickRunes = map[rune]BrickKind{
	'b': BrickBlue,
	'c': BrickCyan,
	'G': BrickGold,
	'g': BrickGreen,
	'o': BrickOrange,
	'p': BrickPink,
	'r': BrickRed,
	's': BrickSilver,
	'w': BrickWhite,
	'y': BrickYellow,
}

// Validate checks that the layout only uses known cell runes and contains
// at least one destructible brick.
func (c RoundConfig) Validate() error {
	destructible := false
	for i, row := range c.Layout {
		for _, r := range row {
			if r == '.' {
				continue
			}
			kind, ok := brickRunes[r]
			if !ok {
				return fmt.Errorf("round %q row %d: unknown cell %q", c.Name, i, r)
			}
			if kind != BrickGold {
				destructible = true
			}
		}
	}
	if !destructible {
		return fmt.Errorf("round %q has no destructible bricks", c.Name)
	}
	return nil
}

// Columns returns the width of the widest row.
func (c RoundConfig) Columns() int {
	cols := 0
	for _, row := range c.Layout {
		if n := len([]rune(row)); n > cols {
			cols = n
		}
	}
	return cols
}

// BuildRound instantiates the layout's bricks for round number inside the
// horizontal span of area, starting topOffset pixels below area's top.
// Brick width divides area evenly across the widest row.
func BuildRound(cfg RoundConfig, number int, area geometry.Rect, brickH, topOffset float64) []*Brick {
	cols := cfg.Columns()
	if cols == 0 {
		return nil
	}
	brickW := area.W / float64(cols)

	var bricks []*Brick
	for rowIdx, row := range cfg.Layout {
		for colIdx, r := range row {
			kind, ok := brickRunes[r]
			if !ok {
				continue
			}
			rect := geometry.NewRect(
				area.Left()+float64(colIdx)*brickW,
				area.Top()+topOffset+float64(rowIdx)*brickH,
				brickW, brickH,
			)
			bricks = append(bricks, NewBrick(rect, kind, number))
		}
	}
	return bricks
}

// DefaultRounds is the built-in campaign.
func DefaultRounds() []RoundConfig {
	return []RoundConfig{
		{
			Name: "opening wall",
			Layout: []string{
				strings.Repeat("s", 13),
				strings.Repeat("r", 13),
				strings.Repeat("y", 13),
				strings.Repeat("b", 13),
				strings.Repeat("p", 13),
				strings.Repeat("g", 13),
			},
		},
		{
			Name: "checker",
			Layout: []string{
				"w.w.w.w.w.w.w",
				".o.o.o.o.o.o.",
				"c.c.c.c.c.c.c",
				".g.g.g.g.g.g.",
				"r.r.r.r.r.r.r",
				".y.y.y.y.y.y.",
			},
		},
		{
			Name: "vault",
			Layout: []string{
				"GsssssssssssG",
				"G...........G",
				"G.ybybybyby.G",
				"G.brbrbrbrb.G",
				"G...........G",
				"GsssssssssssG",
			},
		},
		{
			Name: "pillars",
			Layout: []string{
				"..G...G...G..",
				"..s...s...s..",
				"..y...y...y..",
				"..r...r...r..",
				"..p...p...p..",
				"..b...b...b..",
			},
		},
	}
}
