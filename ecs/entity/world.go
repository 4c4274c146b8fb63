package entity

import (
	"fmt"

	"github.com/milk9111/shadowmaze/ecs"
	"github.com/milk9111/shadowmaze/ecs/component"
	"github.com/milk9111/shadowmaze/levelgen"
	"github.com/milk9111/shadowmaze/prefabs"
)

// Populate fills w with the layout's level, pursuers and targets.
func Populate(w *ecs.World, layout *levelgen.Layout, pursuer *prefabs.PursuerSpec, target *prefabs.TargetSpec, difficulty string) error {
	if layout == nil || layout.Grid == nil {
		return fmt.Errorf("populate: empty layout")
	}
	if _, err := NewLevel(w, layout.Grid); err != nil {
		return err
	}
	for _, at := range layout.Targets {
		if _, err := NewTarget(w, target, layout.Grid.Cell(at.X, at.Y)); err != nil {
			return fmt.Errorf("populate %s: %w", layout.Name, err)
		}
	}
	for _, at := range layout.BeamSpots {
		if _, err := NewBeamPickup(w, at.X, at.Y); err != nil {
			return fmt.Errorf("populate %s: %w", layout.Name, err)
		}
	}
	for _, at := range layout.Pursuers {
		if _, err := NewPursuer(w, pursuer, difficulty, layout.Grid.Cell(at.X, at.Y)); err != nil {
			return fmt.Errorf("populate %s: %w", layout.Name, err)
		}
	}
	return nil
}

// NewBeamPickup drops a single-charge beam pickup on a cell.
func NewBeamPickup(w *ecs.World, col, row int) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)
	if err := ecs.Add(w, entity, component.BeamPickupComponent.Kind(), &component.BeamPickup{Col: col, Row: row, Charges: 1}); err != nil {
		return 0, fmt.Errorf("pickup: add pickup: %w", err)
	}
	return entity, nil
}
