package picking

import "fmt"

// DetectEdges compares two consecutive samples of a boolean input. A rising
// edge yields one PressDown per listener, a falling edge one PressUp per
// listener, in listener order. next is always current.
func DetectEdges(previous, current bool, listeners []PointerID, button PointerButton) (next bool, events []InputPress) {
	if previous == current || len(listeners) == 0 {
		return current, nil
	}
	dir := PressUp
	if current {
		dir = PressDown
	}
	events = make([]InputPress, 0, len(listeners))
	for _, id := range listeners {
		events = append(events, InputPress{PointerID: id, Direction: dir, Button: button})
	}
	return current, events
}

// TriggerAdapter turns a sampled boolean action into press events. The zero
// value starts released and reports ButtonPrimary.
type TriggerAdapter struct {
	Button  PointerButton
	pressed bool
}

// Pressed reports the sample remembered from the last successful tick.
func (a *TriggerAdapter) Pressed() bool {
	return a.pressed
}

// Tick samples query once. A failed query returns the error without
// emitting events or touching the remembered sample.
func (a *TriggerAdapter) Tick(query func() (bool, error), listeners []PointerID) ([]InputPress, error) {
	if query == nil {
		return nil, ErrNoQuery
	}
	current, err := query()
	if err != nil {
		return nil, fmt.Errorf("picking: trigger: %w", err)
	}
	next, events := DetectEdges(a.pressed, current, listeners, a.Button)
	a.pressed = next
	return events, nil
}
