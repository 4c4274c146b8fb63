// Package sim assembles a pursuit world from a layout and the prefab specs.
package sim

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/milk9111/shadowmaze/ecs"
	"github.com/milk9111/shadowmaze/ecs/component"
	"github.com/milk9111/shadowmaze/ecs/entity"
	"github.com/milk9111/shadowmaze/ecs/system"
	"github.com/milk9111/shadowmaze/levelgen"
	"github.com/milk9111/shadowmaze/logging"
	"github.com/milk9111/shadowmaze/metrics"
	"github.com/milk9111/shadowmaze/nav"
	"github.com/milk9111/shadowmaze/prefabs"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Layout     string
	Seed       int64
	Difficulty string
	// Variant overrides the spec's variant when set.
	Variant string
	// Script overrides the spec's roam script when set.
	Script  string
	Metrics metrics.Recorder
}

type Sim struct {
	World      *ecs.World
	Layout     *levelgen.Layout
	Controller *system.PursuitController
	Scheduler  *ecs.Scheduler

	cfg Config
	log *logrus.Entry
}

func New(cfg Config) (*Sim, error) {
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.Nop{}
	}
	if cfg.Layout == "" {
		cfg.Layout = "genesis"
	}

	layout, err := levelgen.ByName(cfg.Layout, cfg.Seed)
	if err != nil {
		return nil, err
	}
	pursuerSpec, err := prefabs.LoadPursuerSpec()
	if err != nil {
		return nil, err
	}
	if cfg.Variant != "" {
		pursuerSpec.Variant = cfg.Variant
		if err := pursuerSpec.Validate(); err != nil {
			return nil, err
		}
	}
	targetSpec, err := prefabs.LoadTargetSpec()
	if err != nil {
		return nil, err
	}

	roam, err := roamPicker(cfg, pursuerSpec)
	if err != nil {
		return nil, err
	}

	w := ecs.NewWorld()
	if err := entity.Populate(w, layout, pursuerSpec, targetSpec, cfg.Difficulty); err != nil {
		return nil, err
	}

	tuning := pursuerSpec.Tuning()
	controller := system.NewPursuitController(tuning, roam, cfg.Metrics)
	s := &Sim{
		World:      w,
		Layout:     layout,
		Controller: controller,
		Scheduler:  system.NewScheduler(controller, pursuerSpec.ContactDamage, nav.Caster{Stride: tuning.SampleStride}, cfg.Metrics),
		cfg:        cfg,
		log:        logging.For("sim"),
	}
	s.log.WithFields(logrus.Fields{
		"layout":     layout.Name,
		"variant":    pursuerSpec.VariantOrDefault(),
		"difficulty": cfg.Difficulty,
		"seed":       cfg.Seed,
	}).Info("simulation ready")
	return s, nil
}

func roamPicker(cfg Config, spec *prefabs.PursuerSpec) (system.RoamPicker, error) {
	name := cfg.Script
	if name == "" {
		name = spec.RoamScript
	}
	if name == "" {
		return system.NewRandomRoam(cfg.Seed), nil
	}
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("sim: load roam script %s: %w", name, err)
	}
	return system.NewScriptRoam(name, src, rand.New(rand.NewSource(cfg.Seed)))
}

func (s *Sim) Tick(dt time.Duration) {
	s.Scheduler.Tick(s.World, dt)
}

// ReloadTuning re-reads the pursuer spec and applies its tuning and contact
// damage to the running world. Speeds and variants of live pursuers are kept.
func (s *Sim) ReloadTuning() error {
	spec, err := prefabs.LoadPursuerSpec()
	if err != nil {
		return err
	}
	s.Controller.SetTuning(spec.Tuning())
	for _, sys := range s.Scheduler.Systems() {
		switch sys := sys.(type) {
		case *system.ContactSystem:
			sys.Damage = spec.ContactDamage
		case *system.BeamSystem:
			sys.Caster.Stride = spec.Tuning().SampleStride
		}
	}
	s.log.WithField("tuning", fmt.Sprintf("%+v", spec.Tuning())).Info("tuning reloaded")
	return nil
}

// Stats summarises the world for logs and the viewer HUD.
type Stats struct {
	Frame        uint64
	Elapsed      time.Duration
	Pursuers     int
	States       map[component.BehaviorState]int
	TargetHealth float32
	TargetsAlive int
	BeamCharges  int
}

func (s *Sim) Stats() Stats {
	clock := s.World.Clock()
	st := Stats{Frame: clock.Frame, Elapsed: clock.Elapsed, States: make(map[component.BehaviorState]int)}
	ecs.ForEach(s.World, component.PursuerComponent.Kind(), func(_ ecs.Entity, p *component.Pursuer) {
		st.Pursuers++
		st.States[p.State]++
	})
	ecs.ForEach2(s.World, component.TargetTagComponent.Kind(), component.HealthComponent.Kind(), func(e ecs.Entity, _ *component.TargetTag, h *component.Health) {
		st.TargetHealth += h.Current
		if h.IsAlive() {
			st.TargetsAlive++
		}
		if beam, ok := ecs.Get(s.World, e, component.BeamComponent.Kind()); ok {
			st.BeamCharges += beam.Charges
		}
	})
	return st
}

// Target returns the first hunted entity.
func (s *Sim) Target() (ecs.Entity, bool) {
	return ecs.First(s.World, component.TargetTagComponent.Kind())
}
