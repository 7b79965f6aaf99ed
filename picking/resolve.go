package picking

import (
	"fmt"
	"sort"
)

// Hit is one backend intersection between a pointer and a target. Smaller
// depth is closer to the pointer.
type Hit[E comparable] struct {
	Target E
	Depth  float64
	X, Y   float64
}

// Interaction summarizes how pointers currently relate to a target.
type Interaction uint8

const (
	InteractionNone Interaction = iota
	InteractionHovered
	InteractionPressed
)

func (i Interaction) String() string {
	switch i {
	case InteractionHovered:
		return "hovered"
	case InteractionPressed:
		return "pressed"
	default:
		return "none"
	}
}

type EventKind uint8

const (
	EventOver EventKind = iota
	EventOut
	EventDown
	EventUp
	EventClick
)

func (k EventKind) String() string {
	switch k {
	case EventOver:
		return "over"
	case EventOut:
		return "out"
	case EventDown:
		return "down"
	case EventUp:
		return "up"
	case EventClick:
		return "click"
	default:
		return fmt.Sprintf("EventKind(%d)", uint8(k))
	}
}

// PointerEvent is a high level picking event. Missed is set on Down and Up
// events that happened while the pointer hovered nothing; Target is then the
// zero value.
type PointerEvent[E comparable] struct {
	Kind    EventKind
	Pointer PointerID
	Button  PointerButton
	Target  E
	Missed  bool
	X, Y    float64
}

type pressKey struct {
	pointer PointerID
	button  PointerButton
}

type hoverState[E comparable] struct {
	hit Hit[E]
}

// Resolver tracks hover and press targets across ticks and derives pointer
// events from raw hits and presses.
type Resolver[E comparable] struct {
	hover   map[PointerID]hoverState[E]
	pressed map[pressKey]E
}

func NewResolver[E comparable]() *Resolver[E] {
	return &Resolver[E]{
		hover:   make(map[PointerID]hoverState[E]),
		pressed: make(map[pressKey]E),
	}
}

// Update consumes this tick's hits and presses. Pointers absent from hits
// hover nothing. Events are ordered by phase (hover changes, then presses
// in input order) and by pointer id within the hover phase.
func (r *Resolver[E]) Update(hits map[PointerID][]Hit[E], presses []InputPress) []PointerEvent[E] {
	var events []PointerEvent[E]

	for _, p := range r.pointers(hits) {
		prev, hadPrev := r.hover[p]
		top, hasTop := closest(hits[p])

		switch {
		case hadPrev && hasTop && prev.hit.Target == top.Target:
			r.hover[p] = hoverState[E]{hit: top}
			continue
		case hadPrev:
			events = append(events, PointerEvent[E]{Kind: EventOut, Pointer: p, Target: prev.hit.Target, X: prev.hit.X, Y: prev.hit.Y})
			delete(r.hover, p)
		}
		if hasTop {
			r.hover[p] = hoverState[E]{hit: top}
			events = append(events, PointerEvent[E]{Kind: EventOver, Pointer: p, Target: top.Target, X: top.X, Y: top.Y})
		}
	}

	for _, press := range presses {
		key := pressKey{pointer: press.PointerID, button: press.Button}
		cur, hovering := r.hover[press.PointerID]
		evt := PointerEvent[E]{Pointer: press.PointerID, Button: press.Button, X: cur.hit.X, Y: cur.hit.Y}

		switch press.Direction {
		case PressDown:
			evt.Kind = EventDown
			if !hovering {
				evt.Missed = true
				delete(r.pressed, key)
				events = append(events, evt)
				continue
			}
			evt.Target = cur.hit.Target
			r.pressed[key] = cur.hit.Target
			events = append(events, evt)
		case PressUp:
			evt.Kind = EventUp
			downOn, wasDown := r.pressed[key]
			delete(r.pressed, key)
			if !hovering {
				evt.Missed = true
				events = append(events, evt)
				continue
			}
			evt.Target = cur.hit.Target
			events = append(events, evt)
			if wasDown && downOn == cur.hit.Target {
				click := evt
				click.Kind = EventClick
				events = append(events, click)
			}
		}
	}

	return events
}

// Hovered returns the target p currently hovers.
func (r *Resolver[E]) Hovered(p PointerID) (E, bool) {
	h, ok := r.hover[p]
	return h.hit.Target, ok
}

// Interactions reports every target that at least one pointer hovers.
// A target is pressed while a pointer that went down on it still hovers it.
func (r *Resolver[E]) Interactions() map[E]Interaction {
	out := make(map[E]Interaction, len(r.hover))
	for p, h := range r.hover {
		state := InteractionHovered
		for key, target := range r.pressed {
			if key.pointer == p && target == h.hit.Target {
				state = InteractionPressed
				break
			}
		}
		if out[h.hit.Target] < state {
			out[h.hit.Target] = state
		}
	}
	return out
}

func (r *Resolver[E]) pointers(hits map[PointerID][]Hit[E]) []PointerID {
	seen := make(map[PointerID]struct{}, len(hits)+len(r.hover))
	out := make([]PointerID, 0, len(hits)+len(r.hover))
	for p := range hits {
		seen[p] = struct{}{}
		out = append(out, p)
	}
	for p := range r.hover {
		if _, ok := seen[p]; !ok {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

func closest[E comparable](hits []Hit[E]) (Hit[E], bool) {
	if len(hits) == 0 {
		return Hit[E]{}, false
	}
	best := hits[0]
	for _, h := range hits[1:] {
		if h.Depth < best.Depth {
			best = h
		}
	}
	return best, true
}
