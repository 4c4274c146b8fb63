package component

import "github.com/jakecoffman/cp"

// Transform places an entity in world pixels. Position is the top-left corner
// of the entity's body; Rotation is radians clockwise from up.
type Transform struct {
	Position cp.Vector
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
