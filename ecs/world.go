package ecs

import (
	"time"

	"github.com/milk9111/shadowmaze/ecs/component"
)

// System updates a world each tick.
type System interface {
	Update(w *World)
}

// Clock is the tick timing shared by every system in one update.
type Clock struct {
	Delta   time.Duration
	Elapsed time.Duration
	Frame   uint64
}

// World owns entities, component storage, events and the tick clock.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	events   EventQueue
	clock    Clock
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// Advance moves the clock forward by dt before systems run.
func (w *World) Advance(dt time.Duration) {
	if w == nil {
		return
	}
	if dt < 0 {
		dt = 0
	}
	w.clock.Delta = dt
	w.clock.Elapsed += dt
	w.clock.Frame++
}

// Clock returns the current tick timing.
func (w *World) Clock() Clock {
	if w == nil {
		return Clock{}
	}
	return w.clock
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]*SparseSet)
	}
	s, ok := w.stores[id]
	if !ok && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}
