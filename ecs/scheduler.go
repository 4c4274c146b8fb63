package ecs

import "time"

// Scheduler runs systems in a fixed order once per tick.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// Tick advances the world clock by dt and runs every system.
func (s *Scheduler) Tick(w *World, dt time.Duration) {
	if w == nil {
		return
	}
	w.Advance(dt)
	s.Update(w)
}

// Update runs every system against the current clock, then drops any events
// nobody drained.
func (s *Scheduler) Update(w *World) {
	if w == nil {
		return
	}
	for _, system := range s.systems {
		system.Update(w)
	}
	w.events.flush()
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
