package ecs

import "github.com/milk9111/racer/ecs/component"

// World owns entities, their component stores and the per-tick event queue.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	events   EventQueue
	dt       float64
	tick     uint64
}

func NewWorld() *World {
	return &World{stores: map[component.ComponentID]*SparseSet{}}
}

func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity removes e and all of its components. It reports false when e
// was already dead.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.Remove(e.id())
	}
	return w.entities.destroy(e)
}

func IsAlive(w *World, e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities returns every live entity in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	if w.stores == nil {
		w.stores = map[component.ComponentID]*SparseSet{}
	}
	s, ok := w.stores[id]
	if !ok && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}

// BeginTick advances the tick counter, sets the step length systems read
// through DeltaTime and clears last tick's events.
func (w *World) BeginTick(dt float64) {
	w.dt = dt
	w.tick++
	w.events.flush()
}

func (w *World) DeltaTime() float64 {
	if w == nil {
		return 0
	}
	return w.dt
}

func (w *World) Tick() uint64 {
	if w == nil {
		return 0
	}
	return w.tick
}

func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}
