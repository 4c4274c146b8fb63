package system

import (
	"github.com/milk9111/shadowmaze/ecs"
	"github.com/milk9111/shadowmaze/metrics"
	"github.com/milk9111/shadowmaze/nav"
)

// NewScheduler wires the pursuit systems in tick order. Pickups and beams
// resolve before pursuers move, contact damage follows movement and lighting
// is rebuilt last.
func NewScheduler(controller *PursuitController, damage float32, beam nav.Caster, rec metrics.Recorder) *ecs.Scheduler {
	return ecs.NewScheduler(
		NewPickupSystem(),
		NewBeamSystem(beam, rec),
		NewPursuitSystem(controller),
		NewContactSystem(damage),
		NewLightingSystem(),
	)
}
