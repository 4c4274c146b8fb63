package nav

import (
	"image"
	"math"

	"github.com/jakecoffman/cp"
)

// DefaultSightSpread is the angular offset of the two side rays in radians.
const DefaultSightSpread = 0.5

// Visibility is the result of a sight check. Lit lists the sampled cells in
// cast order; applying them to the grid is left to the caller.
type Visibility struct {
	Visible bool
	Lit     []*Cell
	Rays    []LightRay
}

// Caster casts the three-ray sight bundle. The zero value uses the default
// spread and stride.
type Caster struct {
	Spread float64
	Stride int
}

// Facing returns the unit vector for a rotation where 0 points up the screen.
func Facing(rotation float64) cp.Vector {
	return cp.Vector{X: math.Sin(rotation), Y: -math.Cos(rotation)}
}

// IsVisible casts with the default bundle.
func IsVisible(origin cp.Vector, rotation, distance float64, g *Grid, target image.Rectangle) Visibility {
	return Caster{}.IsVisible(origin, rotation, distance, g, target)
}

// IsVisible casts the facing ray and one ray either side of it, reporting
// whether any sampled cell overlaps target.
func (c Caster) IsVisible(origin cp.Vector, rotation, distance float64, g *Grid, target image.Rectangle) Visibility {
	spread := c.Spread
	if spread == 0 {
		spread = DefaultSightSpread
	}
	var vis Visibility
	if g == nil {
		return vis
	}
	for _, r := range [3]float64{rotation, rotation + spread, rotation - spread} {
		ray := CastRay(g, origin, Facing(r).Normalize(), distance, c.Stride)
		vis.Rays = append(vis.Rays, ray)
		for _, cell := range ray.SampleCells(g) {
			vis.Lit = append(vis.Lit, cell)
			if cell.Rect.Overlaps(target) {
				vis.Visible = true
			}
		}
	}
	return vis
}

// Beam casts a single ray along rotation and returns it with its lit cells.
func (c Caster) Beam(origin cp.Vector, rotation, distance float64, g *Grid) (LightRay, []*Cell) {
	if g == nil {
		return LightRay{}, nil
	}
	ray := CastRay(g, origin, Facing(rotation).Normalize(), distance, c.Stride)
	return ray, ray.SampleCells(g)
}
