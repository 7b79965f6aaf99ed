package ecs

import "fmt"

// System advances a world by one tick. A returned error aborts the tick.
type System interface {
	Update(w *World) error
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(w *World) error

func (f SystemFunc) Update(w *World) error {
	return f(w)
}

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

// Update runs every system in order and stops at the first failure.
func (s *Scheduler) Update(w *World) error {
	for _, system := range s.systems {
		if err := system.Update(w); err != nil {
			return fmt.Errorf("ecs: %T: %w", system, err)
		}
	}
	return nil
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
