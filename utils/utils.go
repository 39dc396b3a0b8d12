package utils

import "math"

const TwoPi = 2 * math.Pi

// WrapAngle normalises an angle in radians into [0, 2*Pi).
func WrapAngle(angle float64) float64 {
	angle = math.Mod(angle, TwoPi)
	if angle < 0 {
		angle += TwoPi
	}
	return angle
}

// RoundAngle rounds an angle to two decimal places. Collision resolution
// rounds every computed angle for determinism.
func RoundAngle(angle float64) float64 {
	return math.Round(angle*100) / 100
}

// Radians converts degrees to radians.
func Radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

func Abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
