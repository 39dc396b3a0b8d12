// File: game/edge.go
package game

import (
	"github.com/lguibr/breakoid/geometry"
)

// EdgeSide names which wall of the play area an edge is.
type EdgeSide string

const (
	EdgeLeft  EdgeSide = "left"
	EdgeRight EdgeSide = "right"
	EdgeTop   EdgeSide = "top"
)

// Edge is a static wall segment bordering the play area. The bottom is
// deliberately open; balls leaving through it go off-screen instead of
// bouncing.
type Edge struct {
	rect geometry.Rect
	Side EdgeSide
}

func NewEdge(rect geometry.Rect, side EdgeSide) *Edge {
	return &Edge{rect: rect, Side: side}
}

func (e *Edge) Rect() geometry.Rect { return e.rect }
func (e *Edge) IsVisible() bool     { return true }

// BuildEdges lays out the three walls for a screen of the given size with
// walls width pixels thick. The side walls run the full height so a ball
// can never slip out through a wall corner.
func BuildEdges(screenW, screenH, width float64) []*Edge {
	return []*Edge{
		NewEdge(geometry.NewRect(0, 0, width, screenH), EdgeLeft),
		NewEdge(geometry.NewRect(screenW-width, 0, width, screenH), EdgeRight),
		NewEdge(geometry.NewRect(0, 0, screenW, width), EdgeTop),
	}
}
