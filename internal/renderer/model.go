package renderer

import (
	"DiceScene/internal/logger"
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// DefaultMaterial provides a basic material to fall back on
var DefaultMaterial = NewStandardMaterial("default")

type Primitive int

const (
	TRIANGLES Primitive = iota
	LINES
)

// FloatsPerVertex is the interleaved layout: position(3) uv(2) normal(3).
const FloatsPerVertex = 8

// Geometry is vertex data uploaded once and shared by any number of models.
type Geometry struct {
	InterleavedData []float32 // Combined vertex data
	Faces           []uint32  // Index data
	Vertices        []float32 // Positions only, for bounds
	Primitive       Primitive
	VAO             uint32
	VBO             uint32
	EBO             uint32
	uploaded        bool
}

// BoundingRadius is the distance of the farthest vertex from the local origin.
func (g *Geometry) BoundingRadius() float32 {
	var maxSq float32
	for i := 0; i+2 < len(g.Vertices); i += 3 {
		v := mgl32.Vec3{g.Vertices[i], g.Vertices[i+1], g.Vertices[i+2]}
		if d := v.LenSqr(); d > maxSq {
			maxSq = d
		}
	}
	return float32(math.Sqrt(float64(maxSq)))
}

// MaterialGroup represents a submesh with a single material
type MaterialGroup struct {
	Material   *Material // Material for this group
	IndexStart int32     // Starting index in the index buffer
	IndexCount int32     // Number of indices for this group
}

type Model struct {
	// HOT DATA - Accessed every frame in render loop
	ModelMatrix mgl32.Mat4 // Transformation matrix
	Position    mgl32.Vec3 // Position in world space
	Scale       mgl32.Vec3 // Scale factors
	Rotation    mgl32.Quat // Rotation quaternion, derived from Euler by SetEuler
	Euler       mgl32.Vec3 // Rotation in radians, applied X then Y then Z
	Material    *Material  // Material for the whole model when MaterialGroups is empty
	Geometry    *Geometry
	IsDirty     bool // Needs recalculation flag
	Hidden      bool

	// MEDIUM DATA - Conditional/periodic access
	BoundingSphereCenter mgl32.Vec3
	BoundingSphereRadius float32
	MaterialGroups       []MaterialGroup // For multi-material models

	// COLD DATA
	Name string
}

type Material struct {
	// HOT DATA - Accessed every render call for shading calculations
	DiffuseColor       [3]float32 // Base color
	Metallic           float32    // 0.0 = dielectric, 1.0 = metallic
	Roughness          float32    // 0.0 = mirror, 1.0 = completely rough
	Alpha              float32    // Opacity, only honoured when Transparent is set
	Clearcoat          float32    // Strength of the second specular layer
	ClearcoatRoughness float32
	Reflectivity       float32 // Dielectric specular strength, 0.5 gives F0 of 0.04
	Exposure           float32 // Output multiplier
	TextureID          uint32  // OpenGL texture ID, 0 samples the white default
	Transparent        bool
	Wireframe          bool
	Unlit              bool // Output DiffuseColor without lighting (helpers, lines)

	// COLD DATA - Rarely accessed
	Name        string
	TexturePath string      // Path to texture file (loaded when the model is added to the renderer)
	Fallback    image.Image // Used when TexturePath cannot be loaded
}

// NewStandardMaterial returns an opaque white dielectric with full roughness.
func NewStandardMaterial(name string) *Material {
	return &Material{
		Name:         name,
		DiffuseColor: [3]float32{1, 1, 1},
		Metallic:     0.0,
		Roughness:    1.0,
		Alpha:        1.0,
		Reflectivity: 0.5,
		Exposure:     1.0,
	}
}

// NewBasicMaterial returns an unlit material drawn in a flat color.
func NewBasicMaterial(name string, color mgl32.Vec3) *Material {
	m := NewStandardMaterial(name)
	m.DiffuseColor = [3]float32{color.X(), color.Y(), color.Z()}
	m.Unlit = true
	return m
}

// HexColor converts 0xRRGGBB to an sRGB color vector.
func HexColor(hex uint32) mgl32.Vec3 {
	return mgl32.Vec3{
		float32((hex>>16)&0xff) / 255,
		float32((hex>>8)&0xff) / 255,
		float32(hex&0xff) / 255,
	}
}

// NewModel creates a model at the origin with unit scale and no rotation.
func NewModel(name string, geometry *Geometry, material *Material) *Model {
	m := &Model{
		Name:     name,
		Geometry: geometry,
		Material: material,
		Scale:    mgl32.Vec3{1, 1, 1},
		Rotation: mgl32.QuatIdent(),
	}
	m.updateModelMatrix()
	return m
}

func (m *Model) X() float32 {
	return m.Position[0]
}

func (m *Model) Y() float32 {
	return m.Position[1]
}

func (m *Model) Z() float32 {
	return m.Position[2]
}

// SetPosition sets the position of the model
func (m *Model) SetPosition(x, y, z float32) {
	m.Position = mgl32.Vec3{x, y, z}
	m.updateModelMatrix()
	m.IsDirty = true
}

// Translate moves the model by delta.
func (m *Model) Translate(delta mgl32.Vec3) {
	m.Position = m.Position.Add(delta)
	m.updateModelMatrix()
	m.IsDirty = true
}

func (m *Model) SetScale(x, y, z float32) {
	m.Scale = mgl32.Vec3{x, y, z}
	m.updateModelMatrix()
	m.IsDirty = true
}

// SetEuler sets the rotation from angles in radians, applied in XYZ order.
func (m *Model) SetEuler(x, y, z float32) {
	m.Euler = mgl32.Vec3{x, y, z}
	m.Rotation = mgl32.AnglesToQuat(x, y, z, mgl32.XYZ)
	m.updateModelMatrix()
	m.IsDirty = true
}

// Rotate adds delta radians to each Euler angle.
func (m *Model) Rotate(delta mgl32.Vec3) {
	e := m.Euler.Add(delta)
	m.SetEuler(e[0], e[1], e[2])
}

// SetRotationQuat sets the rotation directly. Euler is left untouched and no
// longer describes the orientation.
func (m *Model) SetRotationQuat(q mgl32.Quat) {
	m.Rotation = q
	m.updateModelMatrix()
	m.IsDirty = true
}

func (m *Model) CalculateBoundingSphere() {
	if m.Geometry == nil {
		return
	}
	maxScale := m.Scale.X()
	if m.Scale.Y() > maxScale {
		maxScale = m.Scale.Y()
	}
	if m.Scale.Z() > maxScale {
		maxScale = m.Scale.Z()
	}
	m.BoundingSphereCenter = m.Position
	m.BoundingSphereRadius = m.Geometry.BoundingRadius() * maxScale
}

func (m *Model) updateModelMatrix() {
	// Matrix multiplication order: translation * rotation * scale
	scaleMatrix := mgl32.Scale3D(m.Scale[0], m.Scale[1], m.Scale[2])
	rotationMatrix := m.Rotation.Mat4()
	translationMatrix := mgl32.Translate3D(m.Position[0], m.Position[1], m.Position[2])
	m.ModelMatrix = translationMatrix.Mul4(rotationMatrix).Mul4(scaleMatrix)

	if FrustumCullingEnabled {
		m.CalculateBoundingSphere()
	}
}

func ApplyModelTransformation(vertex, position, scale mgl32.Vec3, rotation mgl32.Quat) mgl32.Vec3 {
	scaledVertex := mgl32.Vec3{vertex[0] * scale[0], vertex[1] * scale[1], vertex[2] * scale[2]}
	return rotation.Rotate(scaledVertex).Add(position)
}

// ensureMaterial gives the model its own material if it has none or points at
// the shared DefaultMaterial.
func (m *Model) ensureMaterial() {
	if m.Material == nil {
		logger.Log.Debug("Creating new default material", zap.String("model", m.Name))
		m.Material = NewStandardMaterial("default")
	} else if m.Material == DefaultMaterial {
		copied := *DefaultMaterial
		m.Material = &copied
	}
}

func (m *Model) SetDiffuseColor(r, g, b float32) {
	m.ensureMaterial()
	m.Material.DiffuseColor = [3]float32{r, g, b}
}

func (m *Model) SetMaterialPBR(metallic, roughness float32) {
	m.ensureMaterial()
	m.Material.Metallic = metallic
	m.Material.Roughness = roughness
}

// SetAlpha sets opacity and marks the material transparent when below 1.
func (m *Model) SetAlpha(alpha float32) {
	m.ensureMaterial()
	m.Material.Alpha = alpha
	m.Material.Transparent = alpha < 1
}

func (m *Model) SetTexture(texturePath string) {
	// Loaded when the model is added to a renderer
	m.ensureMaterial()
	m.Material.TexturePath = texturePath
	logger.Log.Debug("Texture path set for model",
		zap.String("path", texturePath),
		zap.String("material", m.Material.Name))
}

// Materials lists every distinct material the model draws with.
func (m *Model) Materials() []*Material {
	if len(m.MaterialGroups) == 0 {
		if m.Material == nil {
			return nil
		}
		return []*Material{m.Material}
	}
	seen := make(map[*Material]bool, len(m.MaterialGroups))
	var out []*Material
	for _, g := range m.MaterialGroups {
		if g.Material != nil && !seen[g.Material] {
			seen[g.Material] = true
			out = append(out, g.Material)
		}
	}
	return out
}

// IsTransparent reports whether any of the model's materials blend.
func (m *Model) IsTransparent() bool {
	for _, mat := range m.Materials() {
		if mat.Transparent {
			return true
		}
	}
	return false
}

// NewGeometry builds a geometry from interleaved vertex data and indices.
func NewGeometry(interleaved []float32, faces []uint32, primitive Primitive) *Geometry {
	count := len(interleaved) / FloatsPerVertex
	positions := make([]float32, 0, count*3)
	for i := 0; i < count; i++ {
		base := i * FloatsPerVertex
		positions = append(positions, interleaved[base], interleaved[base+1], interleaved[base+2])
	}
	return &Geometry{
		InterleavedData: interleaved,
		Faces:           faces,
		Vertices:        positions,
		Primitive:       primitive,
	}
}
