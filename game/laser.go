// File: game/laser.go
package game

import (
	"github.com/lguibr/breakoid/geometry"
)

// LaserBolt is a shot fired by the laser paddle. It travels straight up and
// destroys the first brick it reaches.
type LaserBolt struct {
	rect    geometry.Rect
	speed   float64
	Visible bool
}

// NewLaserBolt fires a bolt whose bottom-centre starts at origin.
func NewLaserBolt(origin geometry.Point, speed float64) *LaserBolt {
	const boltW, boltH = 4, 12
	return &LaserBolt{
		rect:    geometry.NewRect(origin.X-boltW/2, origin.Y-boltH, boltW, boltH),
		speed:   speed,
		Visible: true,
	}
}

func (l *LaserBolt) Rect() geometry.Rect { return l.rect }
func (l *LaserBolt) IsVisible() bool     { return l.Visible }

// Update moves the bolt one frame up the screen and returns false once it
// is spent or has left the top.
func (l *LaserBolt) Update() bool {
	if !l.Visible {
		return false
	}
	l.rect = l.rect.Move(0, -l.speed)
	if l.rect.Bottom() < 0 {
		l.Visible = false
		return false
	}
	return true
}
