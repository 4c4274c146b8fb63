package component

import "github.com/milk9111/shadowmaze/nav"

// TargetTag marks an entity pursuers may hunt.
type TargetTag struct{}

var TargetTagComponent = NewComponent[TargetTag]()

// DefaultBeamRange is how far a light beam reaches in pixels.
const DefaultBeamRange = 200

// Beam is a light beam held by a target. Setting Fire casts along the holder's
// facing on the next tick; Charges is spent only when the cast removes at
// least one pursuer.
type Beam struct {
	Range   float64
	Charges int
	Fire    bool
	Lit     []*nav.Cell
}

var BeamComponent = NewComponent[Beam]()

// BeamPickup grants beam charges to the first target that reaches its cell.
type BeamPickup struct {
	Col, Row int
	Charges  int
}

var BeamPickupComponent = NewComponent[BeamPickup]()
