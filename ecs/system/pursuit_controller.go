package system

import (
	"image"
	"math"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/shadowmaze/common"
	"github.com/milk9111/shadowmaze/ecs"
	"github.com/milk9111/shadowmaze/ecs/component"
	"github.com/milk9111/shadowmaze/logging"
	"github.com/milk9111/shadowmaze/metrics"
	"github.com/milk9111/shadowmaze/nav"
	"github.com/sirupsen/logrus"
)

// Agent is the view of a pursuer the controller works on. Mind is updated in
// place.
type Agent struct {
	Position cp.Vector
	Rotation float64
	Body     component.Body
	Mind     *component.Pursuer
}

func (a Agent) center() cp.Vector { return a.Body.Center(a.Position) }

// Target is a read-only view of something pursuers hunt.
type Target struct {
	Entity   ecs.Entity
	Position cp.Vector
	Body     component.Body
	Dead     bool
}

func (t Target) Rect() image.Rectangle { return t.Body.Rect(t.Position) }
func (t Target) center() cp.Vector     { return t.Body.Center(t.Position) }

// Contact reports that an agent shares a cell with its target.
type Contact struct {
	TargetIndex int
	Target      ecs.Entity
}

// Step is the outcome of one controller tick for one agent.
type Step struct {
	Position cp.Vector
	Rotation float64
	State    component.BehaviorState
	Contact  *Contact
	Visible  bool
	Lit      []*nav.Cell
	Path     nav.Path
}

// PursuitController runs target selection, sight, pathing, contact and
// movement for one agent per call. It reuses search scratch between calls
// and must be driven from a single goroutine.
type PursuitController struct {
	Tuning  component.Tuning
	Roam    RoamPicker
	Metrics metrics.Recorder

	paths nav.Pathfinder
	log   *logrus.Entry
}

func NewPursuitController(tuning component.Tuning, roam RoamPicker, rec metrics.Recorder) *PursuitController {
	if rec == nil {
		rec = metrics.Nop{}
	}
	c := &PursuitController{
		Tuning:  tuning,
		Roam:    roam,
		Metrics: rec,
		log:     logging.For("pursuit"),
	}
	c.paths.StrictRelaxation = tuning.StrictRelaxation
	c.paths.Observer = rec
	return c
}

// SetTuning swaps the tuning, e.g. after a prefab reload.
func (c *PursuitController) SetTuning(t component.Tuning) {
	c.Tuning = t
	c.paths.StrictRelaxation = t.StrictRelaxation
}

func (c *PursuitController) window() time.Duration {
	if c.Tuning.MemoryWindow <= 0 {
		return component.DefaultMemoryWindow
	}
	return c.Tuning.MemoryWindow
}

func (c *PursuitController) sightDistance() float64 {
	if c.Tuning.SightDistance <= 0 {
		return component.DefaultSightDistance
	}
	return c.Tuning.SightDistance
}

// NearestTarget returns the index of the closest living target to from, or -1.
// Ties keep the earlier target.
func NearestTarget(from cp.Vector, targets []Target) int {
	best, bestDist := -1, math.Inf(1)
	for i, t := range targets {
		if t.Dead {
			continue
		}
		if d := from.Distance(t.Position); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// ComputeStep advances agent by one tick of elapsed time.
func (c *PursuitController) ComputeStep(agent Agent, targets []Target, g *nav.Grid, elapsed time.Duration) Step {
	mind := agent.Mind
	if mind == nil {
		mind = component.NewPursuer(component.VariantSight, 0)
	}
	step := Step{Position: agent.Position, Rotation: agent.Rotation, State: mind.State}
	if g == nil {
		return step
	}
	if elapsed < 0 {
		elapsed = 0
	}
	behavior := BehaviorFor(mind.Variant)
	here := g.CellAtVec(agent.center())

	mind.TargetIndex = NearestTarget(agent.Position, targets)
	var target *Target
	if mind.TargetIndex >= 0 {
		target = &targets[mind.TargetIndex]
	}

	sense := Sense{HasTarget: target != nil}
	if behavior.UsesSight() {
		var rect image.Rectangle
		if target != nil {
			rect = target.Rect()
		}
		caster := nav.Caster{Spread: c.Tuning.SightSpread, Stride: c.Tuning.SampleStride}
		vis := caster.IsVisible(agent.center(), agent.Rotation, c.sightDistance(), g, rect)
		sense.Visible = vis.Visible && target != nil
		step.Visible = sense.Visible
		step.Lit = vis.Lit
		if target != nil {
			c.Metrics.VisibilityCheck(sense.Visible)
		}
	}

	prev := mind.State
	mode := behavior.Decide(mind, sense, elapsed, c.window())
	if prev != mind.State {
		c.Metrics.Transition(prev.String(), mind.State.String())
		c.log.WithFields(logrus.Fields{
			"variant": behavior.Variant(),
			"from":    prev,
			"to":      mind.State,
			"target":  mind.TargetIndex,
		}).Debug("pursuer state change")
	}

	var aim cp.Vector
	moving := false
	switch mode {
	case ModePursue:
		if target == nil {
			break
		}
		step.Path = c.paths.Find(here, g.CellAtVec(target.center()), g)
		if next, ok := step.Path.Next(); ok {
			aim, moving = next.Origin(), true
		} else if step.Path.Len() == 1 {
			aim, moving = target.Position, true
		}
	case ModeRoam:
		aim, moving = c.followRoam(mind, here, g)
		step.Path = mind.Roam
	}

	mind.Direction = cp.Vector{}
	if moving {
		if dir := aim.Sub(agent.Position); dir.LengthSq() > 0 {
			mind.Direction = dir.Normalize()
			step.Rotation = common.Rotation(dir)
		}
	}

	if target != nil && here.Valid() && here == g.CellAtVec(target.center()) {
		step.Contact = &Contact{TargetIndex: mind.TargetIndex, Target: target.Entity}
	}

	if moving {
		step.Position = common.Approach(agent.Position, aim, mind.Speed*elapsed.Seconds())
	}
	step.State = mind.State
	return step
}

// followRoam returns the point to head for while roaming, acquiring a new
// patrol path when none is held. A bad draw leaves the agent idle until the
// next tick.
func (c *PursuitController) followRoam(mind *component.Pursuer, here *nav.Cell, g *nav.Grid) (cp.Vector, bool) {
	if mind.Roam.Len() == 0 {
		if c.Roam == nil || !here.Valid() {
			return cp.Vector{}, false
		}
		dest := c.Roam.PickRoam(g, here)
		if dest == nil || !dest.Valid() || !dest.Traversable {
			return cp.Vector{}, false
		}
		path := c.paths.Find(here, dest, g)
		if !path.Found() {
			return cp.Vector{}, false
		}
		mind.Roam = path
		mind.RoamIndex = 1
	}

	if mind.RoamIndex < mind.Roam.Len() && mind.Roam.Cells[mind.RoamIndex] == here {
		mind.RoamIndex++
	}
	if mind.RoamIndex >= mind.Roam.Len() {
		mind.ClearRoam()
		return cp.Vector{}, false
	}
	return mind.Roam.Cells[mind.RoamIndex].Origin(), true
}
