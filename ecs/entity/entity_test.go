package entity

import (
	"testing"

	"github.com/milk9111/shadowmaze/ecs"
	"github.com/milk9111/shadowmaze/ecs/component"
	"github.com/milk9111/shadowmaze/levelgen"
	"github.com/milk9111/shadowmaze/prefabs"
)

func specs(t *testing.T) (*prefabs.PursuerSpec, *prefabs.TargetSpec) {
	t.Helper()
	pursuer, err := prefabs.LoadPursuerSpec()
	if err != nil {
		t.Fatalf("pursuer spec: %v", err)
	}
	target, err := prefabs.LoadTargetSpec()
	if err != nil {
		t.Fatalf("target spec: %v", err)
	}
	return pursuer, target
}

func count[T any](w *ecs.World, kind component.ComponentKind[T]) int {
	n := 0
	ecs.ForEach(w, kind, func(ecs.Entity, *T) { n++ })
	return n
}

func TestPopulateGenesis(t *testing.T) {
	pursuer, target := specs(t)
	w := ecs.NewWorld()
	layout := levelgen.Genesis()
	if err := Populate(w, layout, pursuer, target, "hard"); err != nil {
		t.Fatalf("Populate: %v", err)
	}

	if got := count(w, component.LevelComponent.Kind()); got != 1 {
		t.Fatalf("levels = %d", got)
	}
	if got := count(w, component.TargetTagComponent.Kind()); got != len(layout.Targets) {
		t.Fatalf("targets = %d", got)
	}
	if got := count(w, component.BeamPickupComponent.Kind()); got != len(layout.BeamSpots) {
		t.Fatalf("pickups = %d", got)
	}
	ecs.ForEach(w, component.PursuerComponent.Kind(), func(e ecs.Entity, p *component.Pursuer) {
		if p.Speed != 75 || p.State != component.Roaming || p.TargetIndex != -1 {
			t.Fatalf("pursuer = %+v", p)
		}
		tf, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		at := layout.Pursuers[0]
		if tf.Position != layout.Grid.Cell(at.X, at.Y).Origin() {
			t.Fatalf("pursuer at %v", tf.Position)
		}
	})
	ecs.ForEach(w, component.HealthComponent.Kind(), func(_ ecs.Entity, h *component.Health) {
		if h.Current != component.DefaultTargetHealth {
			t.Fatalf("health = %+v", h)
		}
	})
}

func TestPopulateErrors(t *testing.T) {
	pursuer, target := specs(t)
	tests := []struct {
		name       string
		layout     *levelgen.Layout
		difficulty string
	}{
		{"nil layout", nil, ""},
		{"unknown difficulty", levelgen.Open(3, 3), "nightmare"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := Populate(ecs.NewWorld(), tc.layout, pursuer, target, tc.difficulty); err == nil {
				t.Fatal("expected an error")
			}
		})
	}

	w := ecs.NewWorld()
	grid := levelgen.Open(3, 3).Grid
	if _, err := NewPursuer(w, pursuer, "", grid.Cell(9, 9)); err == nil {
		t.Fatal("expected an error for an off-grid spawn")
	}
}
