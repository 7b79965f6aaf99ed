package component

import (
	"github.com/milk9111/xrpicking/picking"
	"github.com/tanema/gween"
)

// Pickable opts an entity into hit testing.
type Pickable struct{}

var PickableComponent = NewComponent[Pickable]()

type Interaction struct {
	State picking.Interaction
}

var InteractionComponent = NewComponent[Interaction]()

type Selection struct {
	Selected bool
}

var SelectionComponent = NewComponent[Selection]()

// Highlight fades an overlay toward the alpha matching the entity's
// interaction state.
type Highlight struct {
	Alpha  float32
	Target float32
	Tween  *gween.Tween
}

var HighlightComponent = NewComponent[Highlight]()
