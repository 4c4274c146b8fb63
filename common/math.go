package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// Rotation returns the facing angle of dir where 0 points up the screen and
// angles grow clockwise.
func Rotation(dir cp.Vector) float64 {
	return math.Atan2(dir.X, -dir.Y)
}

// Approach moves pos toward aim by at most dist without passing it.
func Approach(pos, aim cp.Vector, dist float64) cp.Vector {
	d := aim.Sub(pos)
	length := d.Length()
	if dist <= 0 || length == 0 {
		return pos
	}
	if dist >= length {
		return aim
	}
	return pos.Add(d.Mult(dist / length))
}
