package system

import (
	"github.com/milk9111/shadowmaze/ecs"
	"github.com/milk9111/shadowmaze/ecs/component"
	"github.com/milk9111/shadowmaze/logging"
	"github.com/milk9111/shadowmaze/metrics"
	"github.com/milk9111/shadowmaze/nav"
	"github.com/sirupsen/logrus"
)

// BeamSystem fires pending light beams and removes every pursuer caught in
// one. A charge is spent only when the beam removes something.
type BeamSystem struct {
	Caster  nav.Caster
	Metrics metrics.Recorder
}

func NewBeamSystem(caster nav.Caster, rec metrics.Recorder) *BeamSystem {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &BeamSystem{Caster: caster, Metrics: rec}
}

func (s *BeamSystem) Update(w *ecs.World) {
	levelEnt, ok := ecs.First(w, component.LevelComponent.Kind())
	if !ok {
		return
	}
	level, _ := ecs.Get(w, levelEnt, component.LevelComponent.Kind())
	if level == nil || level.Grid == nil {
		return
	}

	ecs.ForEach2(w, component.BeamComponent.Kind(), component.TransformComponent.Kind(), func(holder ecs.Entity, beam *component.Beam, tf *component.Transform) {
		beam.Lit = nil
		if !beam.Fire {
			return
		}
		beam.Fire = false
		if beam.Charges <= 0 {
			return
		}

		var body component.Body
		if b, ok := ecs.Get(w, holder, component.BodyComponent.Kind()); ok {
			body = *b
		}
		reach := beam.Range
		if reach <= 0 {
			reach = component.DefaultBeamRange
		}
		_, lit := s.Caster.Beam(body.Center(tf.Position), tf.Rotation, reach, level.Grid)
		beam.Lit = lit

		var caught []ecs.Entity
		ecs.ForEach3(w, component.PursuerComponent.Kind(), component.TransformComponent.Kind(), component.BodyComponent.Kind(), func(e ecs.Entity, _ *component.Pursuer, ptf *component.Transform, pbody *component.Body) {
			rect := pbody.Rect(ptf.Position)
			for _, cell := range lit {
				if cell.Rect.Overlaps(rect) {
					caught = append(caught, e)
					return
				}
			}
		})
		for _, e := range caught {
			if ecs.DestroyEntity(w, e) {
				s.Metrics.BeamKill()
			}
		}
		if len(caught) > 0 {
			beam.Charges--
			logging.For("beam").WithFields(logrus.Fields{
				"holder":  holder,
				"removed": len(caught),
				"charges": beam.Charges,
			}).Info("beam fired")
		}
	})
}
