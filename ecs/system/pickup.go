package system

import (
	"github.com/milk9111/shadowmaze/ecs"
	"github.com/milk9111/shadowmaze/ecs/component"
	"github.com/milk9111/shadowmaze/logging"
)

// PickupSystem hands beam charges to targets standing on a pickup's cell.
type PickupSystem struct{}

func NewPickupSystem() *PickupSystem { return &PickupSystem{} }

func (s *PickupSystem) Update(w *ecs.World) {
	levelEnt, ok := ecs.First(w, component.LevelComponent.Kind())
	if !ok {
		return
	}
	level, _ := ecs.Get(w, levelEnt, component.LevelComponent.Kind())
	if level == nil || level.Grid == nil {
		return
	}

	ecs.ForEach2(w, component.BeamComponent.Kind(), component.TransformComponent.Kind(), func(holder ecs.Entity, beam *component.Beam, tf *component.Transform) {
		var body component.Body
		if b, ok := ecs.Get(w, holder, component.BodyComponent.Kind()); ok {
			body = *b
		}
		here := level.Grid.CellAtVec(body.Center(tf.Position))
		if !here.Valid() {
			return
		}
		ecs.ForEach(w, component.BeamPickupComponent.Kind(), func(e ecs.Entity, pickup *component.BeamPickup) {
			if pickup.Col != here.Col || pickup.Row != here.Row {
				return
			}
			charges := max(pickup.Charges, 1)
			beam.Charges += charges
			ecs.DestroyEntity(w, e)
			logging.For("pickup").WithField("holder", holder).WithField("charges", beam.Charges).Debug("beam picked up")
		})
	})
}
