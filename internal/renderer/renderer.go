package renderer

import (
	"image"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

var FrustumCullingEnabled bool = false
var FaceCullingEnabled bool = false
var Debug bool = false             // Draw every triangle mesh as wireframe
var DepthTestEnabled bool = true
var ClearColorR float32 = 0.0 // Background clear color red
var ClearColorG float32 = 0.0 // Background clear color green
var ClearColorB float32 = 0.0 // Background clear color blue

// MaxLights is the size of the light array in the default shader.
const MaxLights = 4

type LightMode int

const (
	POINT_LIGHT LightMode = iota
	DIRECTIONAL_LIGHT
)

func (m LightMode) String() string {
	if m == DIRECTIONAL_LIGHT {
		return "directional"
	}
	return "point"
}

type Light struct {
	Name      string
	Position  mgl32.Vec3
	Color     mgl32.Vec3
	Intensity float32
	Mode      LightMode
	Decay     float32 // Point light falloff exponent, 2 is physically correct
}

// Direction is the direction light travels. Directional lights shine from
// their position toward the origin.
func (l *Light) Direction() mgl32.Vec3 {
	if l.Position.Len() == 0 {
		return mgl32.Vec3{0, -1, 0}
	}
	return l.Position.Mul(-1).Normalize()
}

type Render interface {
	Init(width, height int32, window *glfw.Window) error
	Render(camera *Camera, lights []*Light)
	AddModel(model *Model)
	RemoveModel(model *Model)
	LoadTexture(path string) (uint32, error)
	CreateTextureFromImage(img image.Image, name string) (uint32, error)
	UpdateViewport(width, height int32)
	Cleanup()
}
