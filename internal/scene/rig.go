package scene

import (
	"DiceScene/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

// Rig is the scene lighting: a strong key light, a faint fill from the
// opposite corner and a point light above the text.
type Rig struct {
	Key   *renderer.Light
	Fill  *renderer.Light
	Point *renderer.Light
}

func NewRig() Rig {
	white := renderer.HexColor(0xffffff)
	return Rig{
		Key:   renderer.CreateDirectionalLight("Directional Light", mgl32.Vec3{5, 5, 5}, white, 4),
		Fill:  renderer.CreateDirectionalLight("Directional Light 2", mgl32.Vec3{-5, -5, -5}, white, 0.1),
		Point: renderer.CreatePointLight("Point Light", mgl32.Vec3{-5, 5, 5}, white, 10, 2),
	}
}

// All lists the lights in the order the renderer receives them.
func (r Rig) All() []*renderer.Light {
	return []*renderer.Light{r.Key, r.Fill, r.Point}
}

// helperSize is the marker size for each kind of light.
func helperSize(light *renderer.Light) float32 {
	if light.Mode == renderer.DIRECTIONAL_LIGHT {
		return 1
	}
	return 0.5
}
