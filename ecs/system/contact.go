package system

import (
	"github.com/milk9111/shadowmaze/ecs"
	"github.com/milk9111/shadowmaze/ecs/component"
	"github.com/milk9111/shadowmaze/logging"
)

// DefaultContactDamage is the health a target loses per pursuer per tick of
// contact.
const DefaultContactDamage = 5

// ContactSystem turns contact events into damage on the target.
type ContactSystem struct {
	Damage float32
}

func NewContactSystem(damage float32) *ContactSystem {
	return &ContactSystem{Damage: damage}
}

func (s *ContactSystem) Update(w *ecs.World) {
	for _, evt := range w.Events().DrainType(EventContact) {
		contact, ok := evt.Data.(ContactEvent)
		if !ok {
			continue
		}
		health, ok := ecs.Get(w, contact.Target, component.HealthComponent.Kind())
		if !ok {
			continue
		}
		wasAlive := health.IsAlive()
		if health.ApplyDamage(s.Damage) && wasAlive && !health.IsAlive() {
			logging.For("contact").WithField("target", contact.Target).Info("target caught")
		}
	}
}
