package system

import (
	"math"
	"testing"
	"time"

	"github.com/milk9111/shadowmaze/ecs"
	"github.com/milk9111/shadowmaze/ecs/component"
	"github.com/milk9111/shadowmaze/metrics"
	"github.com/milk9111/shadowmaze/nav"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type simulation struct {
	world *ecs.World
	grid  *nav.Grid
	sched *ecs.Scheduler
	rec   *metrics.Prometheus
}

func newSimulation(t *testing.T, damage float32) *simulation {
	t.Helper()
	rec, err := metrics.NewPrometheus(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("NewPrometheus: %v", err)
	}
	w := ecs.NewWorld()
	g := nav.NewGridCells(10, 10, nav.DefaultCellSize)
	level := ecs.CreateEntity(w)
	if err := ecs.Add(w, level, component.LevelComponent.Kind(), &component.Level{Grid: g}); err != nil {
		t.Fatalf("add level: %v", err)
	}
	controller := NewPursuitController(component.DefaultTuning(), nil, rec)
	return &simulation{
		world: w,
		grid:  g,
		rec:   rec,
		sched: NewScheduler(controller, damage, nav.Caster{}, rec),
	}
}

func (s *simulation) spawnTarget(t *testing.T, col, row int, rotation float64, hp float32) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(s.world)
	mustAdd(t, s.world, e, component.TargetTagComponent.Kind(), &component.TargetTag{})
	mustAdd(t, s.world, e, component.TransformComponent.Kind(), &component.Transform{Position: s.grid.Cell(col, row).Origin(), Rotation: rotation})
	mustAdd(t, s.world, e, component.BodyComponent.Kind(), &component.Body{})
	mustAdd(t, s.world, e, component.HealthComponent.Kind(), component.NewHealth(hp))
	return e
}

func (s *simulation) spawnPursuer(t *testing.T, variant component.Variant, speed float64, col, row int, rotation float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(s.world)
	mustAdd(t, s.world, e, component.PursuerComponent.Kind(), component.NewPursuer(variant, speed))
	mustAdd(t, s.world, e, component.TransformComponent.Kind(), &component.Transform{Position: s.grid.Cell(col, row).Origin(), Rotation: rotation})
	mustAdd(t, s.world, e, component.BodyComponent.Kind(), &component.Body{})
	return e
}

func mustAdd[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T], v *T) {
	t.Helper()
	if err := ecs.Add(w, e, kind, v); err != nil {
		t.Fatalf("add: %v", err)
	}
}

func TestContactDamageKillsTarget(t *testing.T) {
	sim := newSimulation(t, DefaultContactDamage)
	target := sim.spawnTarget(t, 4, 4, 0, 10)
	sim.spawnPursuer(t, component.VariantPursue, 0, 4, 4, 0)

	health, _ := ecs.Get(sim.world, target, component.HealthComponent.Kind())
	sim.sched.Tick(sim.world, 100*time.Millisecond)
	if health.Current != 5 || health.Dead {
		t.Fatalf("after one tick: %+v", health)
	}
	sim.sched.Tick(sim.world, 100*time.Millisecond)
	if !health.Dead {
		t.Fatalf("after two ticks: %+v", health)
	}
	sim.sched.Tick(sim.world, 100*time.Millisecond)
	if got := testutil.ToFloat64(sim.rec.Contacts()); got != 2 {
		t.Fatalf("contacts = %v, want 2", got)
	}
	if n := sim.world.Events().Len(); n != 0 {
		t.Fatalf("%d events left after tick", n)
	}
}

func TestBeamRemovesPursuersInItsPath(t *testing.T) {
	sim := newSimulation(t, DefaultContactDamage)
	holder := sim.spawnTarget(t, 1, 5, math.Pi/2, component.DefaultTargetHealth)
	beam := &component.Beam{Range: component.DefaultBeamRange, Charges: 1, Fire: true}
	mustAdd(t, sim.world, holder, component.BeamComponent.Kind(), beam)
	caught := sim.spawnPursuer(t, component.VariantSight, 60, 3, 5, 0)
	spared := sim.spawnPursuer(t, component.VariantSight, 60, 3, 8, 0)

	sim.sched.Tick(sim.world, 100*time.Millisecond)

	if ecs.IsAlive(sim.world, caught) {
		t.Fatal("pursuer in the beam survived")
	}
	if !ecs.IsAlive(sim.world, spared) {
		t.Fatal("pursuer outside the beam was removed")
	}
	if beam.Charges != 0 || beam.Fire {
		t.Fatalf("beam = %+v", beam)
	}
	if !sim.grid.Cell(3, 5).Lit {
		t.Fatal("beam cells should be lit")
	}
	if got := testutil.ToFloat64(sim.rec.BeamKills()); got != 1 {
		t.Fatalf("beam kills = %v", got)
	}

	// An empty beam does nothing.
	beam.Fire = true
	sim.spawnPursuer(t, component.VariantSight, 60, 3, 5, 0)
	sim.sched.Tick(sim.world, 100*time.Millisecond)
	if got := testutil.ToFloat64(sim.rec.BeamKills()); got != 1 {
		t.Fatalf("beam kills = %v after firing empty", got)
	}
	if len(beam.Lit) != 0 {
		t.Fatalf("empty beam lit %d cells", len(beam.Lit))
	}
}

func TestBeamMissKeepsCharge(t *testing.T) {
	sim := newSimulation(t, DefaultContactDamage)
	holder := sim.spawnTarget(t, 1, 5, math.Pi/2, component.DefaultTargetHealth)
	beam := &component.Beam{Range: component.DefaultBeamRange, Charges: 1, Fire: true}
	mustAdd(t, sim.world, holder, component.BeamComponent.Kind(), beam)
	sim.spawnPursuer(t, component.VariantSight, 0, 8, 9, 0)

	sim.sched.Tick(sim.world, 100*time.Millisecond)
	if beam.Charges != 1 {
		t.Fatalf("charges = %d, want 1", beam.Charges)
	}
}

func TestLightingFollowsSight(t *testing.T) {
	sim := newSimulation(t, DefaultContactDamage)
	sim.spawnTarget(t, 8, 8, 0, component.DefaultTargetHealth)
	e := sim.spawnPursuer(t, component.VariantSight, 0, 1, 5, math.Pi/2)

	sim.sched.Tick(sim.world, 100*time.Millisecond)

	sight, ok := ecs.Get(sim.world, e, component.SightComponent.Kind())
	if !ok || len(sight.Lit) == 0 {
		t.Fatalf("sight = %+v", sight)
	}
	for _, cell := range sight.Lit {
		if !cell.Lit {
			t.Fatalf("cell (%d,%d) not lit", cell.Col, cell.Row)
		}
	}
	if sim.grid.Cell(8, 0).Lit {
		t.Fatal("cell outside every cone is lit")
	}

	ecs.DestroyEntity(sim.world, e)
	sim.sched.Tick(sim.world, 100*time.Millisecond)
	lit := 0
	sim.grid.ForEach(func(c *nav.Cell) {
		if c.Lit {
			lit++
		}
	})
	if lit != 0 {
		t.Fatalf("%d cells still lit with no viewers", lit)
	}
}

func TestPursuitSystemWritesTransform(t *testing.T) {
	sim := newSimulation(t, DefaultContactDamage)
	sim.spawnTarget(t, 8, 1, 0, component.DefaultTargetHealth)
	e := sim.spawnPursuer(t, component.VariantPursue, 60, 1, 1, 0)

	sim.sched.Tick(sim.world, 500*time.Millisecond)

	tf, _ := ecs.Get(sim.world, e, component.TransformComponent.Kind())
	if tf.Position == sim.grid.Cell(1, 1).Origin() {
		t.Fatal("pursuer did not move")
	}
	mind, _ := ecs.Get(sim.world, e, component.PursuerComponent.Kind())
	if mind.State != component.Chasing || mind.TargetIndex != 0 {
		t.Fatalf("mind = %+v", mind)
	}
}

func TestSystemsWithoutLevel(t *testing.T) {
	w := ecs.NewWorld()
	sched := NewScheduler(NewPursuitController(component.DefaultTuning(), nil, nil), DefaultContactDamage, nav.Caster{}, nil)
	sched.Tick(w, time.Second)
	if w.Clock().Frame != 1 {
		t.Fatalf("frame = %d", w.Clock().Frame)
	}
}

func TestPickupRefillsBeam(t *testing.T) {
	sim := newSimulation(t, DefaultContactDamage)
	holder := sim.spawnTarget(t, 2, 2, 0, component.DefaultTargetHealth)
	beam := &component.Beam{Range: component.DefaultBeamRange}
	mustAdd(t, sim.world, holder, component.BeamComponent.Kind(), beam)

	here := ecs.CreateEntity(sim.world)
	mustAdd(t, sim.world, here, component.BeamPickupComponent.Kind(), &component.BeamPickup{Col: 2, Row: 2, Charges: 1})
	away := ecs.CreateEntity(sim.world)
	mustAdd(t, sim.world, away, component.BeamPickupComponent.Kind(), &component.BeamPickup{Col: 7, Row: 7})

	sim.sched.Tick(sim.world, 100*time.Millisecond)

	if beam.Charges != 1 {
		t.Fatalf("charges = %d, want 1", beam.Charges)
	}
	if ecs.IsAlive(sim.world, here) || !ecs.IsAlive(sim.world, away) {
		t.Fatal("only the pickup under the holder should be consumed")
	}
}
