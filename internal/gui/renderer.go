package gui

import (
	"DiceScene/internal/logger"
	"DiceScene/internal/renderer"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/inkyblackness/imgui-go/v4"
	"go.uber.org/zap"
)

var guiVertexShader = `#version 150
uniform mat4 ProjMtx;
in vec2 Position;
in vec2 UV;
in vec4 Color;
out vec2 Frag_UV;
out vec4 Frag_Color;
void main() {
    Frag_UV = UV;
    Frag_Color = Color;
    gl_Position = ProjMtx * vec4(Position.xy, 0, 1);
}
` + "\x00"

var guiFragmentShader = `#version 150
uniform sampler2D Texture;
in vec2 Frag_UV;
in vec4 Frag_Color;
out vec4 Out_Color;
void main() {
    Out_Color = vec4(Frag_Color.rgb, Frag_Color.a * texture(Texture, Frag_UV.st).r);
}
` + "\x00"

// Renderer draws imgui draw data with OpenGL 3.2+.
type Renderer struct {
	imguiIO imgui.IO

	fontTexture   uint32
	program       uint32
	uniforms      *renderer.UniformCache
	attribPos     uint32
	attribUV      uint32
	attribColor   uint32
	vboHandle     uint32
	elementHandle uint32
}

func NewRenderer(io imgui.IO) (*Renderer, error) {
	r := &Renderer{imguiIO: io}
	if err := r.createDeviceObjects(); err != nil {
		return nil, err
	}
	io.SetBackendFlags(io.GetBackendFlags() | imgui.BackendFlagsRendererHasVtxOffset)
	return r, nil
}

func (r *Renderer) createDeviceObjects() error {
	var undo renderer.Unwind
	defer undo.Unwind()

	vertex, err := renderer.GenShader(guiVertexShader, gl.VERTEX_SHADER)
	if err != nil {
		return fmt.Errorf("gui vertex shader: %w", err)
	}
	fragment, err := renderer.GenShader(guiFragmentShader, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertex)
		return fmt.Errorf("gui fragment shader: %w", err)
	}
	r.program, err = renderer.GenShaderProgram(vertex, fragment)
	if err != nil {
		return fmt.Errorf("gui program: %w", err)
	}
	undo.Add(func() { gl.DeleteProgram(r.program) })

	r.uniforms = renderer.NewUniformCache(r.program)
	r.attribPos = uint32(gl.GetAttribLocation(r.program, gl.Str("Position\x00")))
	r.attribUV = uint32(gl.GetAttribLocation(r.program, gl.Str("UV\x00")))
	r.attribColor = uint32(gl.GetAttribLocation(r.program, gl.Str("Color\x00")))

	gl.GenBuffers(1, &r.vboHandle)
	gl.GenBuffers(1, &r.elementHandle)
	undo.Add(func() {
		gl.DeleteBuffers(1, &r.vboHandle)
		gl.DeleteBuffers(1, &r.elementHandle)
	})

	if err := r.createFontsTexture(); err != nil {
		return err
	}
	undo.Discard()
	return nil
}

func (r *Renderer) createFontsTexture() error {
	image := r.imguiIO.Fonts().TextureDataAlpha8()
	if image == nil || image.Width == 0 {
		return fmt.Errorf("imgui font atlas is empty")
	}

	var lastTexture int32
	gl.GetIntegerv(gl.TEXTURE_BINDING_2D, &lastTexture)
	gl.GenTextures(1, &r.fontTexture)
	gl.BindTexture(gl.TEXTURE_2D, r.fontTexture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, int32(image.Width), int32(image.Height),
		0, gl.RED, gl.UNSIGNED_BYTE, image.Pixels)

	r.imguiIO.Fonts().SetTextureID(imgui.TextureID(r.fontTexture))
	gl.BindTexture(gl.TEXTURE_2D, uint32(lastTexture))

	logger.Log.Debug("imgui font atlas uploaded",
		zap.Int("width", image.Width),
		zap.Int("height", image.Height))
	return nil
}

// Render draws the current imgui frame over whatever is in the framebuffer.
// State the scene renderer relies on is restored afterwards.
func (r *Renderer) Render(displaySize, framebufferSize [2]float32, drawData imgui.DrawData) {
	displayWidth, displayHeight := displaySize[0], displaySize[1]
	fbWidth, fbHeight := framebufferSize[0], framebufferSize[1]
	if fbWidth <= 0 || fbHeight <= 0 {
		return
	}
	drawData.ScaleClipRects(imgui.Vec2{
		X: fbWidth / displayWidth,
		Y: fbHeight / displayHeight,
	})

	var lastProgram, lastTexture, lastArrayBuffer, lastVertexArray int32
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &lastProgram)
	gl.GetIntegerv(gl.TEXTURE_BINDING_2D, &lastTexture)
	gl.GetIntegerv(gl.ARRAY_BUFFER_BINDING, &lastArrayBuffer)
	gl.GetIntegerv(gl.VERTEX_ARRAY_BINDING, &lastVertexArray)
	var lastPolygonMode [2]int32
	gl.GetIntegerv(gl.POLYGON_MODE, &lastPolygonMode[0])
	var lastViewport [4]int32
	gl.GetIntegerv(gl.VIEWPORT, &lastViewport[0])
	lastBlend := gl.IsEnabled(gl.BLEND)
	lastCullFace := gl.IsEnabled(gl.CULL_FACE)
	lastDepthTest := gl.IsEnabled(gl.DEPTH_TEST)
	lastScissorTest := gl.IsEnabled(gl.SCISSOR_TEST)

	gl.Enable(gl.BLEND)
	gl.BlendEquation(gl.FUNC_ADD)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.SCISSOR_TEST)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	gl.ActiveTexture(gl.TEXTURE0)

	gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
	orthoProjection := [4][4]float32{
		{2.0 / displayWidth, 0.0, 0.0, 0.0},
		{0.0, 2.0 / -displayHeight, 0.0, 0.0},
		{0.0, 0.0, -1.0, 0.0},
		{-1.0, 1.0, 0.0, 1.0},
	}
	gl.UseProgram(r.program)
	r.uniforms.SetInt("Texture", 0)
	if loc := r.uniforms.GetLocation("ProjMtx"); loc != -1 {
		gl.UniformMatrix4fv(loc, 1, false, &orthoProjection[0][0])
	}
	gl.BindSampler(0, 0)

	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vboHandle)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.elementHandle)
	gl.EnableVertexAttribArray(r.attribPos)
	gl.EnableVertexAttribArray(r.attribUV)
	gl.EnableVertexAttribArray(r.attribColor)
	vertexSize, vertexOffsetPos, vertexOffsetUv, vertexOffsetCol := imgui.VertexBufferLayout()
	gl.VertexAttribPointer(r.attribPos, 2, gl.FLOAT, false, int32(vertexSize), unsafe.Pointer(uintptr(vertexOffsetPos)))
	gl.VertexAttribPointer(r.attribUV, 2, gl.FLOAT, false, int32(vertexSize), unsafe.Pointer(uintptr(vertexOffsetUv)))
	gl.VertexAttribPointer(r.attribColor, 4, gl.UNSIGNED_BYTE, true, int32(vertexSize), unsafe.Pointer(uintptr(vertexOffsetCol)))
	indexSize := imgui.IndexBufferLayout()
	drawType := uint32(gl.UNSIGNED_SHORT)
	if indexSize == 4 {
		drawType = gl.UNSIGNED_INT
	}

	for _, list := range drawData.CommandLists() {
		vertexBuffer, vertexBufferSize := list.VertexBuffer()
		gl.BufferData(gl.ARRAY_BUFFER, vertexBufferSize, vertexBuffer, gl.STREAM_DRAW)
		indexBuffer, indexBufferSize := list.IndexBuffer()
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, indexBufferSize, indexBuffer, gl.STREAM_DRAW)

		for _, cmd := range list.Commands() {
			if cmd.HasUserCallback() {
				cmd.CallUserCallback(list)
				continue
			}
			gl.BindTexture(gl.TEXTURE_2D, uint32(cmd.TextureID()))
			clipRect := cmd.ClipRect()
			gl.Scissor(int32(clipRect.X), int32(fbHeight)-int32(clipRect.W), int32(clipRect.Z-clipRect.X), int32(clipRect.W-clipRect.Y))
			gl.DrawElementsBaseVertex(gl.TRIANGLES, int32(cmd.ElementCount()), drawType,
				unsafe.Pointer(uintptr(cmd.IndexOffset()*indexSize)), int32(cmd.VertexOffset()))
		}
	}
	gl.DeleteVertexArrays(1, &vao)

	gl.UseProgram(uint32(lastProgram))
	gl.BindTexture(gl.TEXTURE_2D, uint32(lastTexture))
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(lastArrayBuffer))
	gl.BindVertexArray(uint32(lastVertexArray))
	restore(gl.BLEND, lastBlend)
	restore(gl.CULL_FACE, lastCullFace)
	restore(gl.DEPTH_TEST, lastDepthTest)
	restore(gl.SCISSOR_TEST, lastScissorTest)
	gl.PolygonMode(gl.FRONT_AND_BACK, uint32(lastPolygonMode[0]))
	gl.Viewport(lastViewport[0], lastViewport[1], lastViewport[2], lastViewport[3])
}

func restore(capability uint32, enabled bool) {
	if enabled {
		gl.Enable(capability)
	} else {
		gl.Disable(capability)
	}
}

func (r *Renderer) Dispose() {
	if r.vboHandle != 0 {
		gl.DeleteBuffers(1, &r.vboHandle)
	}
	r.vboHandle = 0
	if r.elementHandle != 0 {
		gl.DeleteBuffers(1, &r.elementHandle)
	}
	r.elementHandle = 0
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
	r.program = 0
	if r.fontTexture != 0 {
		gl.DeleteTextures(1, &r.fontTexture)
		r.imguiIO.Fonts().SetTextureID(0)
		r.fontTexture = 0
	}
}
