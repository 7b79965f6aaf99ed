package component

// Camera views the scene from its transform toward a look-at point. Zoom is
// pixels per world unit.
type Camera struct {
	LookAtX float64
	LookAtY float64
	Zoom    float64
}

var CameraComponent = NewComponent[Camera]()
