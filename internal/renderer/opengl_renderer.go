package renderer

import (
	"DiceScene/internal/logger"
	"fmt"
	"image"
	"image/color"
	"sort"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

var frustum Frustum
var frustumDirty = true

// SetFrustumDirty forces the culling frustum to be rebuilt on the next frame.
func SetFrustumDirty() {
	frustumDirty = true
}

type OpenGLRenderer struct {
	defaultShader        Shader
	Models               []*Model
	textures             *TextureManager
	whiteTexture         uint32
	currentShaderProgram uint32 // Track currently bound shader to avoid unnecessary switches
	currentTextureID     uint32
	transparent          []*Model // Reused every frame for the blended pass
	warnedLights         bool
}

func NewOpenGLRenderer() *OpenGLRenderer {
	return &OpenGLRenderer{textures: NewTextureManager()}
}

func (rend *OpenGLRenderer) Init(width, height int32, _ *glfw.Window) error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("opengl init: %w", err)
	}
	if rend.textures == nil {
		rend.textures = NewTextureManager()
	}

	logger.Log.Info("OpenGL context",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))))

	var undo Unwind
	defer undo.Unwind()

	gl.Enable(gl.MULTISAMPLE)
	if err := rend.setDefaultTexture(); err != nil {
		return err
	}
	undo.Add(func() { rend.textures.ReleaseTexture(rend.whiteTexture) })

	gl.Viewport(0, 0, width, height)
	if err := rend.InitShader(); err != nil {
		return err
	}
	undo.Discard()
	logger.Log.Info("OpenGL render initialized")
	return nil
}

func (rend *OpenGLRenderer) InitShader() error {
	rend.defaultShader = InitShader()
	if err := rend.defaultShader.Compile(); err != nil {
		return fmt.Errorf("default shader: %w", err)
	}
	return nil
}

// setDefaultTexture uploads the 1x1 white texture sampled by untextured materials.
func (rend *OpenGLRenderer) setDefaultTexture() error {
	white := image.NewRGBA(image.Rect(0, 0, 1, 1))
	white.SetRGBA(0, 0, color.RGBA{255, 255, 255, 255})
	id, err := rend.textures.CreateTextureFromImage(white, "__white")
	if err != nil {
		return err
	}
	rend.whiteTexture = id
	return nil
}

func (rend *OpenGLRenderer) uploadGeometry(geometry *Geometry) {
	if geometry.uploaded {
		return
	}
	gl.GenVertexArrays(1, &geometry.VAO)
	gl.BindVertexArray(geometry.VAO)

	gl.GenBuffers(1, &geometry.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, geometry.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(geometry.InterleavedData)*4, gl.Ptr(geometry.InterleavedData), gl.STATIC_DRAW)

	gl.GenBuffers(1, &geometry.EBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, geometry.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(geometry.Faces)*4, gl.Ptr(geometry.Faces), gl.STATIC_DRAW)

	stride := int32(FloatsPerVertex * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)

	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)

	gl.VertexAttribPointer(2, 3, gl.FLOAT, false, stride, gl.PtrOffset(5*4))
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	geometry.uploaded = true
}

// resolveTextures turns TexturePath or Fallback into a texture ID for each of
// the model's materials that does not have one yet.
func (rend *OpenGLRenderer) resolveTextures(model *Model) {
	for _, mat := range model.Materials() {
		if mat.TextureID != 0 {
			continue
		}
		var (
			id  uint32
			err error
		)
		switch {
		case mat.TexturePath != "":
			id, err = rend.textures.LoadTextureOrFallback(mat.TexturePath, mat.Fallback)
		case mat.Fallback != nil:
			id, err = rend.textures.CreateTextureFromImage(mat.Fallback, mat.Name)
		default:
			continue
		}
		if err != nil {
			logger.Log.Warn("Material drawn untextured",
				zap.String("material", mat.Name),
				zap.String("path", mat.TexturePath),
				zap.Error(err))
			continue
		}
		mat.TextureID = id
	}
}

func (rend *OpenGLRenderer) AddModel(model *Model) {
	if model.Geometry == nil {
		logger.Log.Warn("Model without geometry ignored", zap.String("model", model.Name))
		return
	}
	rend.uploadGeometry(model.Geometry)
	rend.resolveTextures(model)
	model.updateModelMatrix()
	rend.Models = append(rend.Models, model)
}

func (rend *OpenGLRenderer) RemoveModel(model *Model) {
	for i, m := range rend.Models {
		if m == model {
			rend.Models = append(rend.Models[:i], rend.Models[i+1:]...)
			break
		}
	}
}

// sortBackToFront orders models by decreasing distance from eye.
func sortBackToFront(models []*Model, eye mgl32.Vec3) {
	sort.SliceStable(models, func(i, j int) bool {
		return models[i].Position.Sub(eye).LenSqr() > models[j].Position.Sub(eye).LenSqr()
	})
}

func (rend *OpenGLRenderer) Render(camera *Camera, lights []*Light) {
	gl.ClearColor(ClearColorR, ClearColorG, ClearColorB, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if DepthTestEnabled {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthMask(true)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}

	// Culling : https://learnopengl.com/Advanced-OpenGL/Face-culling
	if FaceCullingEnabled {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
		gl.FrontFace(gl.CCW)
	}

	if FrustumCullingEnabled && frustumDirty {
		frustum = camera.CalculateFrustum()
		frustumDirty = false
	}

	shader := &rend.defaultShader
	if rend.currentShaderProgram != shader.program {
		shader.Use()
		rend.currentShaderProgram = shader.program
	}
	shader.SetMat4("viewProjection", camera.GetViewProjection())
	shader.SetVec3("viewPos", camera.Position)
	shader.SetInt("textureSampler", 0)
	rend.setLightUniforms(shader, lights)

	gl.ActiveTexture(gl.TEXTURE0)
	rend.currentTextureID = ^uint32(0)

	rend.transparent = rend.transparent[:0]
	for _, model := range rend.Models {
		if !rend.visible(model) {
			continue
		}
		if model.IsTransparent() {
			rend.transparent = append(rend.transparent, model)
			continue
		}
		rend.drawModel(shader, model)
	}

	if len(rend.transparent) > 0 {
		sortBackToFront(rend.transparent, camera.Position)
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		for _, model := range rend.transparent {
			rend.drawModel(shader, model)
		}
		gl.Disable(gl.BLEND)
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
}

func (rend *OpenGLRenderer) visible(model *Model) bool {
	if model.Hidden || model.Geometry == nil {
		return false
	}
	model.IsDirty = false
	if FrustumCullingEnabled && model.Geometry.Primitive == TRIANGLES &&
		!frustum.IntersectsSphere(model.BoundingSphereCenter, model.BoundingSphereRadius) {
		return false
	}
	return true
}

func (rend *OpenGLRenderer) drawModel(shader *Shader, model *Model) {
	shader.SetMat4("model", model.ModelMatrix)
	geometry := model.Geometry
	gl.BindVertexArray(geometry.VAO)

	if len(model.MaterialGroups) == 0 {
		rend.drawRange(shader, geometry, model.Material, 0, int32(len(geometry.Faces)))
	} else {
		for _, group := range model.MaterialGroups {
			rend.drawRange(shader, geometry, group.Material, group.IndexStart, group.IndexCount)
		}
	}
	gl.BindVertexArray(0)
}

func (rend *OpenGLRenderer) drawRange(shader *Shader, geometry *Geometry, mat *Material, start, count int32) {
	if count <= 0 {
		return
	}
	if mat == nil {
		mat = DefaultMaterial
	}
	rend.setMaterialUniforms(shader, mat)

	mode := uint32(gl.TRIANGLES)
	if geometry.Primitive == LINES {
		mode = gl.LINES
	}
	wire := geometry.Primitive == TRIANGLES && (mat.Wireframe || Debug)
	if wire {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}
	gl.DrawElements(mode, count, gl.UNSIGNED_INT, gl.PtrOffset(int(start)*4))
	if wire {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

func (rend *OpenGLRenderer) setMaterialUniforms(shader *Shader, mat *Material) {
	shader.SetVec3("diffuseColor", mgl32.Vec3(mat.DiffuseColor))
	shader.SetFloat("metallic", mat.Metallic)
	shader.SetFloat("roughness", mat.Roughness)
	shader.SetFloat("reflectivity", mat.Reflectivity)
	shader.SetFloat("clearcoat", mat.Clearcoat)
	shader.SetFloat("clearcoatRoughness", mat.ClearcoatRoughness)
	shader.SetFloat("exposure", mat.Exposure)
	shader.SetBool("unlit", mat.Unlit)

	alpha := float32(1)
	if mat.Transparent {
		alpha = mat.Alpha
	}
	shader.SetFloat("alpha", alpha)

	textureID := mat.TextureID
	if textureID == 0 {
		textureID = rend.whiteTexture
	}
	if textureID != rend.currentTextureID {
		gl.BindTexture(gl.TEXTURE_2D, textureID)
		rend.currentTextureID = textureID
	}
}

func (rend *OpenGLRenderer) setLightUniforms(shader *Shader, lights []*Light) {
	count := len(lights)
	if count > MaxLights {
		if !rend.warnedLights {
			logger.Log.Warn("Too many lights, extra lights ignored",
				zap.Int("lights", count), zap.Int("max", MaxLights))
			rend.warnedLights = true
		}
		count = MaxLights
	}
	shader.SetInt("lightCount", int32(count))
	for i := 0; i < count; i++ {
		light := lights[i]
		shader.SetVec3(lightUniform(i, "position"), light.Position)
		shader.SetVec3(lightUniform(i, "direction"), light.Direction())
		shader.SetVec3(lightUniform(i, "color"), light.Color)
		shader.SetFloat(lightUniform(i, "intensity"), light.Intensity)
		shader.SetFloat(lightUniform(i, "decay"), light.Decay)
		shader.SetBool(lightUniform(i, "isDirectional"), light.Mode == DIRECTIONAL_LIGHT)
	}
}

func (rend *OpenGLRenderer) LoadTexture(filePath string) (uint32, error) {
	return rend.textures.LoadTexture(filePath)
}

func (rend *OpenGLRenderer) CreateTextureFromImage(img image.Image, name string) (uint32, error) {
	return rend.textures.CreateTextureFromImage(img, name)
}

func (rend *OpenGLRenderer) Cleanup() {
	deleted := make(map[*Geometry]bool)
	for _, model := range rend.Models {
		g := model.Geometry
		if g == nil || deleted[g] || !g.uploaded {
			continue
		}
		gl.DeleteVertexArrays(1, &g.VAO)
		gl.DeleteBuffers(1, &g.VBO)
		gl.DeleteBuffers(1, &g.EBO)
		g.uploaded = false
		deleted[g] = true
	}
	rend.Models = nil
	rend.textures.LogStats()
	rend.textures.Clear()
	rend.defaultShader.Delete()
}

func GenShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	cSources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, cSources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		logger.Log.Error("Failed to compile", zap.Uint32("shader type", shaderType), zap.String("log", log))
		return 0, fmt.Errorf("compile shader type %d: %s", shaderType, strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

func GenShaderProgram(vertexShader, fragmentShader uint32) (uint32, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.DetachShader(program, vertexShader)
	gl.DeleteShader(vertexShader)
	gl.DetachShader(program, fragmentShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		logger.Log.Error("Failed to link program", zap.String("log", log))
		return 0, fmt.Errorf("link program: %s", strings.TrimRight(log, "\x00"))
	}
	logger.Log.Debug("Shader program linked", zap.Uint32("program", program))
	return program, nil
}

func CreateLight() *Light {
	return &Light{
		Color:     mgl32.Vec3{1.0, 1.0, 1.0},
		Intensity: 1.0,
		Mode:      POINT_LIGHT,
		Decay:     2.0,
	}
}

// CreateDirectionalLight creates a light that shines from position toward the origin.
func CreateDirectionalLight(name string, position mgl32.Vec3, color mgl32.Vec3, intensity float32) *Light {
	light := CreateLight()
	light.Name = name
	light.Mode = DIRECTIONAL_LIGHT
	light.Position = position
	light.Color = color
	light.Intensity = intensity
	return light
}

// CreatePointLight creates a point light whose intensity falls off with
// distance^decay.
func CreatePointLight(name string, position mgl32.Vec3, color mgl32.Vec3, intensity, decay float32) *Light {
	light := CreateLight()
	light.Name = name
	light.Position = position
	light.Color = color
	light.Intensity = intensity
	light.Decay = decay
	return light
}

// UpdateViewport updates the OpenGL viewport to match the current window size
func (rend *OpenGLRenderer) UpdateViewport(width, height int32) {
	gl.Viewport(0, 0, width, height)
}
