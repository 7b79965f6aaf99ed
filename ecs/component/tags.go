package component

type ControllerTag struct{}

var ControllerTagComponent = NewComponent[ControllerTag]()

type LeftControllerTag struct{}

var LeftControllerTagComponent = NewComponent[LeftControllerTag]()

type RightControllerTag struct{}

var RightControllerTagComponent = NewComponent[RightControllerTag]()

// Name is the scene spec name an entity was spawned from.
type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()
