package component

// Transform places an entity in world units with y pointing up. Rotation is
// in radians, counter-clockwise from +x.
type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
