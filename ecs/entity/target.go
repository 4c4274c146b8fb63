package entity

import (
	"fmt"

	"github.com/milk9111/shadowmaze/ecs"
	"github.com/milk9111/shadowmaze/ecs/component"
	"github.com/milk9111/shadowmaze/nav"
	"github.com/milk9111/shadowmaze/prefabs"
)

// NewTarget places a hunted entity with its top-left on cell. Its beam starts
// with the spec's charges and can be refilled from pickups.
func NewTarget(w *ecs.World, spec *prefabs.TargetSpec, cell *nav.Cell) (ecs.Entity, error) {
	if !cell.Valid() {
		return 0, fmt.Errorf("target: spawn cell outside the grid")
	}

	entity := ecs.CreateEntity(w)
	if err := ecs.Add(w, entity, component.TargetTagComponent.Kind(), &component.TargetTag{}); err != nil {
		return 0, fmt.Errorf("target: add tag: %w", err)
	}
	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{Position: cell.Origin()}); err != nil {
		return 0, fmt.Errorf("target: add transform: %w", err)
	}
	body := spec.Body.Body()
	if err := ecs.Add(w, entity, component.BodyComponent.Kind(), &body); err != nil {
		return 0, fmt.Errorf("target: add body: %w", err)
	}
	if err := ecs.Add(w, entity, component.HealthComponent.Kind(), component.NewHealth(spec.Health)); err != nil {
		return 0, fmt.Errorf("target: add health: %w", err)
	}
	if err := ecs.Add(w, entity, component.BeamComponent.Kind(), &component.Beam{Range: spec.Beam.Range, Charges: spec.Beam.Charges}); err != nil {
		return 0, fmt.Errorf("target: add beam: %w", err)
	}
	return entity, nil
}
