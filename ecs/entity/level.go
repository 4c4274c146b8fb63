package entity

import (
	"fmt"

	"github.com/milk9111/shadowmaze/ecs"
	"github.com/milk9111/shadowmaze/ecs/component"
	"github.com/milk9111/shadowmaze/nav"
)

func NewLevel(w *ecs.World, grid *nav.Grid) (ecs.Entity, error) {
	if grid == nil {
		return 0, fmt.Errorf("level: nil grid")
	}
	entity := ecs.CreateEntity(w)
	if err := ecs.Add(w, entity, component.LevelComponent.Kind(), &component.Level{Grid: grid}); err != nil {
		return 0, fmt.Errorf("level: add level: %w", err)
	}
	return entity, nil
}
