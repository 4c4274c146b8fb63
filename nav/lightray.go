package nav

import (
	"image"
	"math"

	"github.com/jakecoffman/cp"
)

// DefaultSampleStride keeps one rasterised point in this many as a sample.
const DefaultSampleStride = 40

// LightRay is a rasterised line cast across the grid. Points holds the raw
// raster up to and including the first blocked point; Samples is the sparse
// subset used for lighting and hit tests.
type LightRay struct {
	Start     cp.Vector
	Direction cp.Vector
	Distance  float64
	End       image.Point
	Blocked   bool
	Points    []image.Point
	Samples   []image.Point
}

// CastRay rasterises a ray from start along dir for distance pixels, stopping
// at the first point whose cell is not traversable. Points outside the grid
// are never traversable, so the walk ends at the grid edge at the latest. A
// ray with a non-finite start, direction or distance is returned blocked and
// empty. A stride below 1 uses DefaultSampleStride.
func CastRay(g *Grid, start, dir cp.Vector, distance float64, stride int) LightRay {
	if stride < 1 {
		stride = DefaultSampleStride
	}
	ray := LightRay{Start: start, Direction: dir, Distance: distance}
	if !finite(start.X, start.Y, dir.X, dir.Y, distance) {
		ray.Blocked = true
		return ray
	}

	reach := distance
	if limit := g.reachLimit(); math.Abs(reach) > limit {
		reach = math.Copysign(limit, reach)
	}
	end := start.Add(dir.Mult(reach))
	from := image.Pt(int(start.X), int(start.Y))
	ray.End = image.Pt(int(end.X), int(end.Y))

	walkLine(from, ray.End, func(p image.Point) bool {
		ray.Points = append(ray.Points, p)
		if !g.CellAt(p).Traversable {
			ray.End = p
			ray.Blocked = true
			return false
		}
		return true
	})
	for i := 0; i < len(ray.Points); i += stride {
		ray.Samples = append(ray.Samples, ray.Points[i])
	}
	return ray
}

// reachLimit is a length past which any ray starting inside the grid has
// already left it.
func (g *Grid) reachLimit() float64 {
	if g == nil {
		return 1
	}
	b := g.Bounds()
	return math.Hypot(float64(b.Dx()), float64(b.Dy())) + 4
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// SampleCells returns the in-bounds cells owning each sample, in sample order.
// Consecutive duplicates are kept.
func (r LightRay) SampleCells(g *Grid) []*Cell {
	out := make([]*Cell, 0, len(r.Samples))
	for _, p := range r.Samples {
		if c := g.CellAt(p); c.Valid() {
			out = append(out, c)
		}
	}
	return out
}

// bresenham walks every integer point from a to b inclusive, stepping along
// the longer axis.
func bresenham(a, b image.Point) []image.Point {
	var points []image.Point
	walkLine(a, b, func(p image.Point) bool {
		points = append(points, p)
		return true
	})
	return points
}

// walkLine visits the Bresenham points from a to b in order until visit
// returns false.
func walkLine(a, b image.Point, visit func(image.Point) bool) {
	dx := b.X - a.X
	dy := b.Y - a.Y

	var dx1, dy1, dx2, dy2 int
	dx1, dx2 = sign(dx), sign(dx)
	dy1 = sign(dy)

	longest := abs(dx)
	shortest := abs(dy)
	if longest <= shortest {
		longest, shortest = abs(dy), abs(dx)
		dy2 = sign(dy)
		dx2 = 0
	}

	x, y := a.X, a.Y
	err := longest >> 1
	for i := 0; i <= longest; i++ {
		if !visit(image.Pt(x, y)) {
			return
		}
		err += shortest
		if err >= longest {
			err -= longest
			x += dx1
			y += dy1
		} else {
			x += dx2
			y += dy2
		}
	}
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
