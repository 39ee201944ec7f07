package panel

import (
	"DiceScene/internal/scene"
	"fmt"
)

// Bind builds the scene's debug panel. Every slider writes into the live
// material or light it names.
func Bind(objs *scene.Objects) *Panel {
	p := New("Controls")

	cube := p.Folder("Cube Materials")
	for i, mat := range objs.CubeFaces {
		face := cube.Folder(fmt.Sprintf("Face %d", i+1))
		face.Add("Metalness", &mat.Metallic, 0, 1, 0.01)
		face.Add("Roughness", &mat.Roughness, 0, 1, 0.01)
	}

	BindLights(p, objs.Lights)

	if objs.BladeMaterial != nil {
		blades := p.Folder("Blades")
		blades.Add("Opacity", &objs.BladeMaterial.Alpha, 0, 1, 0.01)
		blades.Add("Roughness", &objs.BladeMaterial.Roughness, 0, 1, 0.01)
		blades.Add("Metalness", &objs.BladeMaterial.Metallic, 0, 1, 0.01)
		blades.Add("Clearcoat", &objs.BladeMaterial.Clearcoat, 0, 1, 0.01)
		blades.Add("Clearcoat Roughness", &objs.BladeMaterial.ClearcoatRoughness, 0, 1, 0.01)
	}
	return p
}

// BindLights adds the "Lighting" folder for rig.
func BindLights(p *Panel, rig scene.Rig) {
	lighting := p.Folder("Lighting")
	lighting.Add("Dir Light Intensity", &rig.Key.Intensity, 0, 10, 0.1)
	lighting.Add("Dir2 Light Intensity", &rig.Fill.Intensity, 0, 10, 0.1)
	lighting.Add("Point Light Intensity", &rig.Point.Intensity, 0, 10, 0.1)
	lighting.Add("Dir Light X", &rig.Key.Position[0], -10, 10, 0.1)
	lighting.Add("Dir Light Y", &rig.Key.Position[1], -10, 10, 0.1)
	lighting.Add("Dir Light Z", &rig.Key.Position[2], -10, 10, 0.1)
}
