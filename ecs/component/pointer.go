package component

import "github.com/milk9111/xrpicking/picking"

type Pointer struct {
	ID picking.PointerID
}

var PointerComponent = NewComponent[Pointer]()

type PointerLocation struct {
	Location *picking.Location
}

var PointerLocationComponent = NewComponent[PointerLocation]()
