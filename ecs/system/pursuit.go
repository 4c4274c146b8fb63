package system

import (
	"github.com/milk9111/shadowmaze/ecs"
	"github.com/milk9111/shadowmaze/ecs/component"
)

// EventContact is pushed once per tick for every pursuer sharing a cell with
// its target.
const EventContact = "pursuit.contact"

// ContactEvent is the payload of EventContact.
type ContactEvent struct {
	Pursuer ecs.Entity
	Target  ecs.Entity
}

// PursuitSystem drives every pursuer in the world through one controller step.
type PursuitSystem struct {
	Controller *PursuitController

	targets []Target
}

func NewPursuitSystem(c *PursuitController) *PursuitSystem {
	return &PursuitSystem{Controller: c}
}

func (s *PursuitSystem) Update(w *ecs.World) {
	if s == nil || s.Controller == nil {
		return
	}
	levelEnt, ok := ecs.First(w, component.LevelComponent.Kind())
	if !ok {
		return
	}
	level, _ := ecs.Get(w, levelEnt, component.LevelComponent.Kind())
	if level == nil || level.Grid == nil {
		return
	}

	s.targets = s.targets[:0]
	ecs.ForEach2(w, component.TargetTagComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.TargetTag, tf *component.Transform) {
		t := Target{Entity: e, Position: tf.Position}
		if body, ok := ecs.Get(w, e, component.BodyComponent.Kind()); ok {
			t.Body = *body
		}
		if health, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
			t.Dead = !health.IsAlive()
		}
		s.targets = append(s.targets, t)
	})

	dt := w.Clock().Delta
	ecs.ForEach3(w, component.PursuerComponent.Kind(), component.TransformComponent.Kind(), component.BodyComponent.Kind(), func(e ecs.Entity, mind *component.Pursuer, tf *component.Transform, body *component.Body) {
		step := s.Controller.ComputeStep(Agent{
			Position: tf.Position,
			Rotation: tf.Rotation,
			Body:     *body,
			Mind:     mind,
		}, s.targets, level.Grid, dt)

		tf.Position = step.Position
		tf.Rotation = step.Rotation

		sight, ok := ecs.Get(w, e, component.SightComponent.Kind())
		if !ok {
			sight = &component.Sight{}
			_ = ecs.Add(w, e, component.SightComponent.Kind(), sight)
		}
		sight.Visible = step.Visible
		sight.Lit = step.Lit

		if step.Contact != nil {
			s.Controller.Metrics.Contact()
			w.Events().Push(ecs.Event{Type: EventContact, Data: ContactEvent{Pursuer: e, Target: step.Contact.Target}})
		}
	})
}
