package system

import (
	"time"

	"github.com/milk9111/shadowmaze/ecs/component"
)

// Mode is the movement a behaviour asks for on one tick.
type Mode uint8

const (
	ModeIdle Mode = iota
	ModePursue
	ModeRoam
)

// Sense is what an agent knows about its selected target this tick.
type Sense struct {
	HasTarget bool
	Visible   bool
}

// Behavior is the decision layer of a pursuer. Decide advances the state
// held in mind by one tick and returns the movement to perform.
type Behavior interface {
	Variant() component.Variant
	UsesSight() bool
	Decide(mind *component.Pursuer, s Sense, elapsed, window time.Duration) Mode
}

// BehaviorFor returns the decision layer for a variant. Unknown variants get
// the sight-gated machine.
func BehaviorFor(v component.Variant) Behavior {
	if v == component.VariantPursue {
		return pursueBehavior{}
	}
	return sightBehavior{}
}

func chase(mind *component.Pursuer) Mode {
	mind.State = component.Chasing
	mind.LostFor = 0
	mind.ClearRoam()
	return ModePursue
}

// pursueBehavior heads for the nearest living target every tick and never
// loses interest.
type pursueBehavior struct{}

func (pursueBehavior) Variant() component.Variant { return component.VariantPursue }
func (pursueBehavior) UsesSight() bool            { return false }

func (pursueBehavior) Decide(mind *component.Pursuer, s Sense, _, _ time.Duration) Mode {
	if s.HasTarget {
		return chase(mind)
	}
	mind.State = component.Roaming
	mind.LostFor = 0
	return ModeIdle
}

// sightBehavior chases what it sees, keeps tracking for the memory window
// after losing sight, then roams.
type sightBehavior struct{}

func (sightBehavior) Variant() component.Variant { return component.VariantSight }
func (sightBehavior) UsesSight() bool            { return true }

func (sightBehavior) Decide(mind *component.Pursuer, s Sense, elapsed, window time.Duration) Mode {
	if s.HasTarget && s.Visible {
		return chase(mind)
	}
	switch mind.State {
	case component.Chasing:
		mind.State = component.Tracking
		mind.LostFor = 0
		return ModePursue
	case component.Tracking:
		mind.LostFor += elapsed
		if mind.LostFor < window {
			return ModePursue
		}
		mind.State = component.Roaming
		mind.LostFor = 0
	}
	return ModeRoam
}
