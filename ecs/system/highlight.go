package system

import (
	"github.com/milk9111/xrpicking/ecs"
	"github.com/milk9111/xrpicking/ecs/component"
	"github.com/milk9111/xrpicking/picking"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	highlightFade     = 0.15
	alphaHovered      = 0.35
	alphaPressed      = 0.6
	alphaSelectedBase = 0.2
)

// HighlightSystem tweens each pickable's overlay alpha toward the value for
// its interaction and selection state.
type HighlightSystem struct {
	dt float32
}

// NewHighlightSystem advances tweens by dt seconds per tick.
func NewHighlightSystem(dt float32) *HighlightSystem {
	return &HighlightSystem{dt: dt}
}

func highlightTarget(in picking.Interaction, selected bool) float32 {
	var target float32
	switch in {
	case picking.InteractionHovered:
		target = alphaHovered
	case picking.InteractionPressed:
		target = alphaPressed
	}
	if selected && target < alphaSelectedBase {
		target = alphaSelectedBase
	}
	return target
}

func (s *HighlightSystem) Update(w *ecs.World) error {
	ecs.ForEach3(w, component.InteractionComponent.Kind(), component.SelectionComponent.Kind(), component.HighlightComponent.Kind(), func(_ ecs.Entity, in *component.Interaction, sel *component.Selection, h *component.Highlight) {
		target := highlightTarget(in.State, sel.Selected)
		if target != h.Target {
			h.Target = target
			h.Tween = gween.New(h.Alpha, target, highlightFade, ease.OutQuad)
		}
		if h.Tween == nil {
			return
		}
		alpha, done := h.Tween.Update(s.dt)
		h.Alpha = alpha
		if done {
			h.Alpha = h.Target
			h.Tween = nil
		}
	})
	return nil
}
