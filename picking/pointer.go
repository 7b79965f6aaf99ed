package picking

import (
	"fmt"

	"github.com/google/uuid"
)

// PointerKind distinguishes where a pointer's input originates.
type PointerKind uint8

const (
	PointerMouse PointerKind = iota
	PointerTouch
	PointerCustom
)

func (k PointerKind) String() string {
	switch k {
	case PointerMouse:
		return "mouse"
	case PointerTouch:
		return "touch"
	case PointerCustom:
		return "custom"
	default:
		return fmt.Sprintf("PointerKind(%d)", uint8(k))
	}
}

// PointerID identifies one pointer. It is comparable and safe as a map key.
type PointerID struct {
	Kind  PointerKind
	Touch uint64
	UUID  uuid.UUID
}

func MousePointer() PointerID {
	return PointerID{Kind: PointerMouse}
}

func TouchPointer(id uint64) PointerID {
	return PointerID{Kind: PointerTouch, Touch: id}
}

// NewCustomPointer returns a pointer id backed by a fresh random uuid, the
// identity used for ray interactors that are neither mouse nor touch.
func NewCustomPointer() PointerID {
	return PointerID{Kind: PointerCustom, UUID: uuid.New()}
}

// ParseCustomPointer builds a custom pointer from a uuid string.
func ParseCustomPointer(s string) (PointerID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return PointerID{}, fmt.Errorf("picking: parse pointer id %q: %w", s, err)
	}
	return PointerID{Kind: PointerCustom, UUID: u}, nil
}

func (p PointerID) String() string {
	switch p.Kind {
	case PointerMouse:
		return "mouse"
	case PointerTouch:
		return fmt.Sprintf("touch:%d", p.Touch)
	default:
		return "custom:" + p.UUID.String()
	}
}

// PressDirection is the edge a press event reports.
type PressDirection uint8

const (
	PressDown PressDirection = iota
	PressUp
)

func (d PressDirection) String() string {
	if d == PressDown {
		return "down"
	}
	return "up"
}

type PointerButton uint8

const (
	ButtonPrimary PointerButton = iota
	ButtonSecondary
	ButtonMiddle
)

func (b PointerButton) String() string {
	switch b {
	case ButtonPrimary:
		return "primary"
	case ButtonSecondary:
		return "secondary"
	case ButtonMiddle:
		return "middle"
	default:
		return fmt.Sprintf("PointerButton(%d)", uint8(b))
	}
}

// InputPress is a discrete press or release of one button on one pointer.
type InputPress struct {
	PointerID PointerID
	Direction PressDirection
	Button    PointerButton
}

func (p InputPress) String() string {
	return fmt.Sprintf("%s %s %s", p.PointerID, p.Button, p.Direction)
}

// Location is where a pointer sits on a render target.
type Location struct {
	Target string
	X, Y   float64
}
