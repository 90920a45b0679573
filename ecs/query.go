package ecs

import "github.com/milk9111/racer/ecs/component"

// Query returns the live entities that have kind, in store order.
func Query[T any](w *World, kind component.ComponentKind[T]) []Entity {
	if w == nil {
		return nil
	}
	s := w.store(kind.ID(), false)
	out := make([]Entity, 0, s.Len())
	for _, id := range s.ids() {
		if e, ok := w.entities.current(id); ok {
			out = append(out, e)
		}
	}
	return out
}

// Count reports how many entities have kind.
func Count[T any](w *World, kind component.ComponentKind[T]) int {
	if w == nil {
		return 0
	}
	return w.store(kind.ID(), false).Len()
}
