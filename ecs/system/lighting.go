package system

import (
	"github.com/milk9111/shadowmaze/ecs"
	"github.com/milk9111/shadowmaze/ecs/component"
)

// LightingSystem rebuilds the level's lit flags from this tick's sight cones
// and beams.
type LightingSystem struct{}

func NewLightingSystem() *LightingSystem { return &LightingSystem{} }

func (s *LightingSystem) Update(w *ecs.World) {
	levelEnt, ok := ecs.First(w, component.LevelComponent.Kind())
	if !ok {
		return
	}
	level, _ := ecs.Get(w, levelEnt, component.LevelComponent.Kind())
	if level == nil || level.Grid == nil {
		return
	}

	level.Grid.ResetLighting()
	ecs.ForEach(w, component.SightComponent.Kind(), func(_ ecs.Entity, sight *component.Sight) {
		level.Grid.Light(sight.Lit)
	})
	ecs.ForEach(w, component.BeamComponent.Kind(), func(_ ecs.Entity, beam *component.Beam) {
		level.Grid.Light(beam.Lit)
	})
}
