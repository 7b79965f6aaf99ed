package component

import "image/color"

type MeshShape uint8

const (
	MeshPlane MeshShape = iota
	MeshCube
)

func (s MeshShape) String() string {
	if s == MeshPlane {
		return "plane"
	}
	return "cube"
}

// PlaneThickness is the height a plane occupies in the side view.
const PlaneThickness = 0.05

// Mesh is a solid shape centred on the entity transform.
type Mesh struct {
	Shape MeshShape
	Size  float64
	Color color.Color
}

// Extents returns the half width and half height of the mesh.
func (m *Mesh) Extents() (hw, hh float64) {
	if m.Shape == MeshPlane {
		return m.Size / 2, PlaneThickness / 2
	}
	return m.Size / 2, m.Size / 2
}

var MeshComponent = NewComponent[Mesh]()
