package entity

import (
	"fmt"

	"github.com/milk9111/shadowmaze/ecs"
	"github.com/milk9111/shadowmaze/ecs/component"
	"github.com/milk9111/shadowmaze/nav"
	"github.com/milk9111/shadowmaze/prefabs"
)

// NewPursuer places a pursuer with its top-left on cell.
func NewPursuer(w *ecs.World, spec *prefabs.PursuerSpec, difficulty string, cell *nav.Cell) (ecs.Entity, error) {
	if !cell.Valid() {
		return 0, fmt.Errorf("pursuer: spawn cell outside the grid")
	}
	speed, err := spec.Speed(difficulty)
	if err != nil {
		return 0, fmt.Errorf("pursuer: %w", err)
	}

	entity := ecs.CreateEntity(w)
	if err := ecs.Add(w, entity, component.PursuerComponent.Kind(), component.NewPursuer(spec.VariantOrDefault(), speed)); err != nil {
		return 0, fmt.Errorf("pursuer: add pursuer: %w", err)
	}
	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{Position: cell.Origin()}); err != nil {
		return 0, fmt.Errorf("pursuer: add transform: %w", err)
	}
	body := spec.Body.Body()
	if err := ecs.Add(w, entity, component.BodyComponent.Kind(), &body); err != nil {
		return 0, fmt.Errorf("pursuer: add body: %w", err)
	}
	if err := ecs.Add(w, entity, component.SightComponent.Kind(), &component.Sight{}); err != nil {
		return 0, fmt.Errorf("pursuer: add sight: %w", err)
	}
	return entity, nil
}
