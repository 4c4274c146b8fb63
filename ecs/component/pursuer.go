package component

import (
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/shadowmaze/nav"
)

// BehaviorState is the pursuit state of an agent.
type BehaviorState uint8

const (
	Roaming BehaviorState = iota
	Chasing
	Tracking
)

func (s BehaviorState) String() string {
	switch s {
	case Roaming:
		return "roaming"
	case Chasing:
		return "chasing"
	case Tracking:
		return "tracking"
	}
	return "unknown"
}

// Variant selects the decision layer an agent runs.
type Variant string

const (
	// VariantPursue always heads for the nearest living target.
	VariantPursue Variant = "pursue"
	// VariantSight only chases what it can see and roams otherwise.
	VariantSight Variant = "sight"
)

// Tuning holds the sight and memory parameters shared by pursuers.
type Tuning struct {
	SightDistance    float64
	SightSpread      float64
	SampleStride     int
	MemoryWindow     time.Duration
	StrictRelaxation bool
}

const (
	DefaultSightDistance = 70
	DefaultMemoryWindow  = 500 * time.Millisecond
)

// DefaultTuning mirrors the shipped pursuer prefab.
func DefaultTuning() Tuning {
	return Tuning{
		SightDistance: DefaultSightDistance,
		SightSpread:   nav.DefaultSightSpread,
		SampleStride:  nav.DefaultSampleStride,
		MemoryWindow:  DefaultMemoryWindow,
	}
}

// Pursuer is the per-agent decision memory carried between ticks.
type Pursuer struct {
	Variant Variant
	Speed   float64

	State   BehaviorState
	LostFor time.Duration
	// TargetIndex indexes the tick's target list; -1 when no target is alive.
	TargetIndex int
	Direction   cp.Vector

	Roam      nav.Path
	RoamIndex int
}

var PursuerComponent = NewComponent[Pursuer]()

// NewPursuer returns a roaming pursuer with no target.
func NewPursuer(variant Variant, speed float64) *Pursuer {
	return &Pursuer{Variant: variant, Speed: speed, State: Roaming, TargetIndex: -1}
}

// ClearRoam drops any held patrol path.
func (p *Pursuer) ClearRoam() {
	p.Roam = nav.Path{}
	p.RoamIndex = 0
}

// Sight is the last visibility result of a pursuer.
type Sight struct {
	Visible bool
	Lit     []*nav.Cell
}

var SightComponent = NewComponent[Sight]()
