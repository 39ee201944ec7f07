package loader

import (
	"DiceScene/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

// lineVertex appends a position with zero UV and a +Z normal, so lit line
// meshes such as the text shade as a face turned toward the default camera.
func lineVertex(data []float32, p mgl32.Vec3) []float32 {
	return append(data, p[0], p[1], p[2], 0, 0, 0, 0, 1)
}

// NewDirectionalHelperGeometry is a square of side 2*size in the XY plane with
// a line from its center along -Z. Oriented with QuatLookAtV it shows the
// light's plane and the direction it shines.
func NewDirectionalHelperGeometry(size float32) *renderer.Geometry {
	corners := []mgl32.Vec3{
		{-size, size, 0},
		{size, size, 0},
		{size, -size, 0},
		{-size, -size, 0},
	}
	var data []float32
	for _, c := range corners {
		data = lineVertex(data, c)
	}
	data = lineVertex(data, mgl32.Vec3{})
	data = lineVertex(data, mgl32.Vec3{0, 0, -size * 2})

	indices := []uint32{
		0, 1, 1, 2, 2, 3, 3, 0,
		4, 5,
	}
	return renderer.NewGeometry(data, indices, renderer.LINES)
}

// NewPointHelperGeometry is a coarse sphere drawn as wireframe triangles.
func NewPointHelperGeometry(size float32) (*renderer.Geometry, error) {
	return NewSphereGeometry(size, 4, 2)
}

// LoadLightHelper builds the marker model for light, drawn in the light's color.
func LoadLightHelper(light *renderer.Light, size float32) (*renderer.Model, error) {
	var geometry *renderer.Geometry
	if light.Mode == renderer.DIRECTIONAL_LIGHT {
		geometry = NewDirectionalHelperGeometry(size)
	} else {
		var err error
		if geometry, err = NewPointHelperGeometry(size); err != nil {
			return nil, err
		}
	}
	mat := renderer.NewBasicMaterial(light.Name+" helper", light.Color)
	mat.Wireframe = true
	model := renderer.NewModel(light.Name+" helper", geometry, mat)
	FollowLight(model, light)
	return model, nil
}

// FollowLight moves a helper onto its light and, for directional lights,
// turns it to face the origin.
func FollowLight(helper *renderer.Model, light *renderer.Light) {
	helper.SetPosition(light.Position[0], light.Position[1], light.Position[2])
	if light.Mode != renderer.DIRECTIONAL_LIGHT || light.Position.Len() == 0 {
		return
	}
	up := mgl32.Vec3{0, 1, 0}
	if d := light.Direction(); mgl32.Abs(d.Dot(up)) > 0.999 {
		up = mgl32.Vec3{0, 0, 1}
	}
	// QuatLookAtV yields the view rotation; its inverse turns -Z toward the target.
	helper.SetRotationQuat(mgl32.QuatLookAtV(light.Position, mgl32.Vec3{}, up).Inverse())
}
