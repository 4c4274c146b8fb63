package component

const DefaultTargetHealth = 1000

// Health tracks hit points for anything pursuers can damage.
type Health struct {
	Max     float32
	Current float32
	Dead    bool
}

var HealthComponent = NewComponent[Health]()

// NewHealth creates a Health component with max/current initialized.
func NewHealth(max float32) *Health {
	if max <= 0 {
		max = 1
	}
	return &Health{Max: max, Current: max}
}

// IsAlive reports whether the entity is alive.
func (h *Health) IsAlive() bool {
	return h != nil && !h.Dead && h.Current > 0
}

// ApplyDamage removes amount from Current and marks the holder dead at zero.
// Returns true if damage was applied.
func (h *Health) ApplyDamage(amount float32) bool {
	if h == nil || h.Dead || amount <= 0 {
		return false
	}
	h.Current -= amount
	if h.Current < 0 {
		h.Current = 0
	}
	if h.Current <= 0 {
		h.Dead = true
	}
	return true
}
