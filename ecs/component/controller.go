package component

import "github.com/milk9111/xrpicking/xr"

// Tracker marks an entity whose transform follows a tracked hand.
type Tracker struct {
	Hand    xr.Hand
	Tracked bool
}

var TrackerComponent = NewComponent[Tracker]()

// RayInteractor casts a pointing ray of Length world units from the entity
// transform along its rotation. Hit fields are written by the raycast
// backend each tick.
type RayInteractor struct {
	Length float64

	HitX, HitY float64
	Hit        bool
}

var RayInteractorComponent = NewComponent[RayInteractor]()
