package ecs

import "github.com/hajimehoshi/ebiten/v2"

// System advances the world by one fixed step.
type System interface {
	Update(w *World)
}

// Drawer is implemented by systems that also render.
type Drawer interface {
	Draw(w *World, screen *ebiten.Image)
}

// Scheduler runs systems in the order they were added.
type Scheduler struct {
	systems []System
	paused  map[System]bool
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, sys := range systems {
		s.Add(sys)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// SetPaused skips a system's Update while still drawing it.
func (s *Scheduler) SetPaused(system System, paused bool) {
	if s.paused == nil {
		s.paused = map[System]bool{}
	}
	if paused {
		s.paused[system] = true
	} else {
		delete(s.paused, system)
	}
}

// Step begins a tick of length dt and runs every unpaused system.
func (s *Scheduler) Step(w *World, dt float64) {
	w.BeginTick(dt)
	s.Update(w)
}

func (s *Scheduler) Update(w *World) {
	for _, system := range s.systems {
		if s.paused[system] {
			continue
		}
		system.Update(w)
	}
}

func (s *Scheduler) Draw(w *World, screen *ebiten.Image) {
	for _, system := range s.systems {
		if d, ok := system.(Drawer); ok {
			d.Draw(w, screen)
		}
	}
}

func (s *Scheduler) Systems() []System {
	return append([]System(nil), s.systems...)
}
