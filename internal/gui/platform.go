package gui

import (
	"math"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/inkyblackness/imgui-go/v4"
)

const mouseButtonCount = 3

// Platform feeds GLFW window state and input into imgui. The engine owns the
// GLFW callbacks and forwards events through the Handle* methods, so imgui
// sees every event before the scene decides whether to use it.
type Platform struct {
	imguiIO imgui.IO
	window  *glfw.Window

	time             float64
	mouseJustPressed [mouseButtonCount]bool
}

func NewPlatform(io imgui.IO, window *glfw.Window) *Platform {
	p := &Platform{imguiIO: io, window: window}
	p.setKeyMapping()
	return p
}

func (p *Platform) setKeyMapping() {
	keys := map[int]glfw.Key{
		imgui.KeyTab:        glfw.KeyTab,
		imgui.KeyLeftArrow:  glfw.KeyLeft,
		imgui.KeyRightArrow: glfw.KeyRight,
		imgui.KeyUpArrow:    glfw.KeyUp,
		imgui.KeyDownArrow:  glfw.KeyDown,
		imgui.KeyPageUp:     glfw.KeyPageUp,
		imgui.KeyPageDown:   glfw.KeyPageDown,
		imgui.KeyHome:       glfw.KeyHome,
		imgui.KeyEnd:        glfw.KeyEnd,
		imgui.KeyInsert:     glfw.KeyInsert,
		imgui.KeyDelete:     glfw.KeyDelete,
		imgui.KeyBackspace:  glfw.KeyBackspace,
		imgui.KeySpace:      glfw.KeySpace,
		imgui.KeyEnter:      glfw.KeyEnter,
		imgui.KeyEscape:     glfw.KeyEscape,
		imgui.KeyA:          glfw.KeyA,
		imgui.KeyC:          glfw.KeyC,
		imgui.KeyV:          glfw.KeyV,
		imgui.KeyX:          glfw.KeyX,
		imgui.KeyY:          glfw.KeyY,
		imgui.KeyZ:          glfw.KeyZ,
	}
	for imguiKey, glfwKey := range keys {
		p.imguiIO.KeyMap(imguiKey, int(glfwKey))
	}
}

// DisplaySize returns the window size in screen coordinates.
func (p *Platform) DisplaySize() [2]float32 {
	w, h := p.window.GetSize()
	return [2]float32{float32(w), float32(h)}
}

// FramebufferSize returns the drawable size in pixels.
func (p *Platform) FramebufferSize() [2]float32 {
	w, h := p.window.GetFramebufferSize()
	return [2]float32{float32(w), float32(h)}
}

// NewFrame updates display size, frame time and pointer state. Call before
// imgui.NewFrame.
func (p *Platform) NewFrame() {
	size := p.DisplaySize()
	p.imguiIO.SetDisplaySize(imgui.Vec2{X: size[0], Y: size[1]})

	now := glfw.GetTime()
	if p.time > 0 {
		p.imguiIO.SetDeltaTime(float32(now - p.time))
	} else {
		p.imguiIO.SetDeltaTime(1.0 / 60.0)
	}
	p.time = now

	if p.window.GetAttrib(glfw.Focused) != 0 {
		x, y := p.window.GetCursorPos()
		p.imguiIO.SetMousePosition(imgui.Vec2{X: float32(x), Y: float32(y)})
	} else {
		p.imguiIO.SetMousePosition(imgui.Vec2{X: -math.MaxFloat32, Y: -math.MaxFloat32})
	}

	// A press and release within one frame must still register as a click.
	for i := 0; i < mouseButtonCount; i++ {
		down := p.mouseJustPressed[i] || p.window.GetMouseButton(glfwButton(i)) == glfw.Press
		p.imguiIO.SetMouseButtonDown(i, down)
		p.mouseJustPressed[i] = false
	}
}

func glfwButton(i int) glfw.MouseButton {
	switch i {
	case 1:
		return glfw.MouseButtonRight
	case 2:
		return glfw.MouseButtonMiddle
	default:
		return glfw.MouseButtonLeft
	}
}

func imguiButton(b glfw.MouseButton) (int, bool) {
	switch b {
	case glfw.MouseButtonLeft:
		return 0, true
	case glfw.MouseButtonRight:
		return 1, true
	case glfw.MouseButtonMiddle:
		return 2, true
	}
	return 0, false
}

func (p *Platform) HandleMouseButton(button glfw.MouseButton, action glfw.Action) {
	if i, ok := imguiButton(button); ok && action == glfw.Press {
		p.mouseJustPressed[i] = true
	}
}

func (p *Platform) HandleScroll(x, y float64) {
	p.imguiIO.AddMouseWheelDelta(float32(x), float32(y))
}

func (p *Platform) HandleKey(key glfw.Key, action glfw.Action) {
	if action == glfw.Press {
		p.imguiIO.KeyPress(int(key))
	}
	if action == glfw.Release {
		p.imguiIO.KeyRelease(int(key))
	}

	p.imguiIO.KeyCtrl(int(glfw.KeyLeftControl), int(glfw.KeyRightControl))
	p.imguiIO.KeyShift(int(glfw.KeyLeftShift), int(glfw.KeyRightShift))
	p.imguiIO.KeyAlt(int(glfw.KeyLeftAlt), int(glfw.KeyRightAlt))
	p.imguiIO.KeySuper(int(glfw.KeyLeftSuper), int(glfw.KeyRightSuper))
}

func (p *Platform) HandleChar(char rune) {
	p.imguiIO.AddInputCharacters(string(char))
}

// WantsMouse reports whether imgui claimed the pointer in the last frame.
func (p *Platform) WantsMouse() bool {
	return p.imguiIO.WantCaptureMouse()
}

// WantsKeyboard reports whether imgui claimed the keyboard in the last frame.
func (p *Platform) WantsKeyboard() bool {
	return p.imguiIO.WantCaptureKeyboard()
}
