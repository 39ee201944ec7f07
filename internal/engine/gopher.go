package engine

import (
	"DiceScene/internal/behaviour"
	"DiceScene/internal/config"
	"DiceScene/internal/events"
	"DiceScene/internal/gui"
	"DiceScene/internal/logger"
	"DiceScene/internal/renderer"
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	mgl "github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Gopher owns the window, the render loop and input routing.
type Gopher struct {
	Width  int32
	Height int32
	Lights []*renderer.Light
	Camera *renderer.Camera

	window       *glfw.Window
	windowCfg    config.WindowConfig
	cameraCfg    config.CameraConfig
	rendererAPI  renderer.Render
	gui          *gui.Context
	pointer      *pointerTracker
	clicks       *events.Queue
	behaviours   *behaviour.BehaviourManager
	frameTrackId int

	onInit           func(g *Gopher) error
	onRenderCallback func(deltaTime float64)
	onGUI            func(displayWidth float32)
}

type Options struct {
	Window config.WindowConfig
	Camera config.CameraConfig

	// Clicks receives a Click for every left click the debug panel did not
	// consume.
	Clicks     *events.Queue
	Behaviours *behaviour.BehaviourManager
}

func NewGopher(opts Options) *Gopher {
	if opts.Clicks == nil {
		opts.Clicks = events.NewQueue()
	}
	if opts.Behaviours == nil {
		opts.Behaviours = behaviour.GlobalBehaviourManager
	}
	logger.Log.Info("Engine initializing...",
		zap.Int32("width", opts.Window.Width),
		zap.Int32("height", opts.Window.Height))
	return &Gopher{
		Width:       opts.Window.Width,
		Height:      opts.Window.Height,
		windowCfg:   opts.Window,
		cameraCfg:   opts.Camera,
		rendererAPI: renderer.NewOpenGLRenderer(),
		pointer:     newPointerTracker(opts.Camera.ClickSlop),
		clicks:      opts.Clicks,
		behaviours:  opts.Behaviours,
	}
}

// NewCamera builds the scene camera from its configuration.
func NewCamera(cfg config.CameraConfig, width, height int32) *renderer.Camera {
	camera := renderer.NewDefaultCamera(width, height)
	camera.Fov = cfg.Fov
	camera.Near = cfg.Near
	camera.Far = cfg.Far
	camera.Position = mgl.Vec3{cfg.Position[0], cfg.Position[1], cfg.Position[2]}
	camera.RotateSpeed = cfg.RotateSpeed
	camera.PanSpeed = cfg.PanSpeed
	camera.ZoomSpeed = cfg.ZoomSpeed
	camera.MaxDistance = cfg.Far * 0.9
	camera.UpdateProjection()
	return camera
}

// OnInit registers fn to run once the GL context exists and before the first
// frame. Scene models and textures must be created from here.
func (gopher *Gopher) OnInit(fn func(g *Gopher) error) {
	gopher.onInit = fn
}

// SetOnRenderCallback sets a callback that will be called each frame after the 3D scene is rendered
func (gopher *Gopher) SetOnRenderCallback(callback func(deltaTime float64)) {
	gopher.onRenderCallback = callback
}

// SetOnGUI registers the function that emits imgui widgets each frame.
func (gopher *Gopher) SetOnGUI(fn func(displayWidth float32)) {
	gopher.onGUI = fn
}

// Render opens the window and runs the render loop until it is closed. It
// must be called from the main goroutine.
func (gopher *Gopher) Render() error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Decorated, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 32)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	if gopher.windowCfg.MSAASamples > 0 {
		glfw.WindowHint(glfw.Samples, gopher.windowCfg.MSAASamples)
	}

	var err error
	gopher.window, err = glfw.CreateWindow(int(gopher.Width), int(gopher.Height), gopher.windowCfg.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer gopher.window.Destroy()

	gopher.window.MakeContextCurrent()
	if gopher.windowCfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	gopher.window.SetPos(gopher.windowCfg.X, gopher.windowCfg.Y)
	if gopher.windowCfg.DarkTitleBar {
		SetDarkTitleBar(gopher.window)
	}

	// The framebuffer can be larger than the window on HiDPI displays.
	fbWidth, fbHeight := gopher.window.GetFramebufferSize()
	if err := gopher.rendererAPI.Init(int32(fbWidth), int32(fbHeight), gopher.window); err != nil {
		return fmt.Errorf("renderer init: %w", err)
	}
	defer gopher.rendererAPI.Cleanup()

	gopher.Camera = NewCamera(gopher.cameraCfg, int32(fbWidth), int32(fbHeight))

	gopher.gui, err = gui.NewContext(gopher.window)
	if err != nil {
		return err
	}
	defer gopher.gui.Destroy()

	gopher.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	gopher.window.SetMouseButtonCallback(gopher.mouseButtonCallback)
	gopher.window.SetCursorPosCallback(gopher.mouseCallback)
	gopher.window.SetScrollCallback(gopher.scrollCallback)
	gopher.window.SetKeyCallback(gopher.keyCallback)
	gopher.window.SetCharCallback(gopher.charCallback)
	gopher.window.SetFramebufferSizeCallback(gopher.framebufferSizeCallback)
	gopher.window.SetFocusCallback(gopher.focusCallback)

	if gopher.onInit != nil {
		if err := gopher.onInit(gopher); err != nil {
			return fmt.Errorf("scene init: %w", err)
		}
	}

	gopher.RenderLoop()
	return nil
}

func (gopher *Gopher) RenderLoop() {
	var lastTime = glfw.GetTime()

	for !gopher.window.ShouldClose() {
		currentTime := glfw.GetTime()
		deltaTime := currentTime - lastTime
		lastTime = currentTime

		glfw.PollEvents()

		gopher.gui.NewFrame()
		if gopher.onGUI != nil {
			gopher.onGUI(gopher.gui.Platform.DisplaySize()[0])
		}

		// Fixed updates run every other frame.
		if gopher.frameTrackId >= 2 {
			gopher.behaviours.UpdateAllFixed()
			gopher.frameTrackId = 0
		}
		gopher.behaviours.UpdateAll()

		if gopher.onRenderCallback != nil {
			gopher.onRenderCallback(deltaTime)
		}

		gopher.rendererAPI.Render(gopher.Camera, gopher.Lights)
		gopher.gui.Render()

		gopher.window.SwapBuffers()
		gopher.frameTrackId++
	}
	logger.Log.Info("Window closed")
}

func (gopher *Gopher) SetDebugMode(debug bool) {
	renderer.Debug = debug
}

func (gopher *Gopher) SetFrustumCulling(enabled bool) {
	renderer.FrustumCullingEnabled = enabled
}

func (gopher *Gopher) SetFaceCulling(enabled bool) {
	renderer.FaceCullingEnabled = enabled
}

func (gopher *Gopher) SetClearColor(r, g, b float32) {
	renderer.ClearColorR, renderer.ClearColorG, renderer.ClearColorB = r, g, b
}

func (gopher *Gopher) AddModel(model *renderer.Model) {
	gopher.rendererAPI.AddModel(model)
}

func (gopher *Gopher) RemoveModel(model *renderer.Model) {
	gopher.rendererAPI.RemoveModel(model)
}

// GetRenderer returns the renderer API
func (gopher *Gopher) GetRenderer() renderer.Render {
	return gopher.rendererAPI
}

func (gopher *Gopher) GetWindow() *glfw.Window {
	return gopher.window
}

func toButton(b glfw.MouseButton) (Button, bool) {
	switch b {
	case glfw.MouseButtonLeft:
		return ButtonLeft, true
	case glfw.MouseButtonRight:
		return ButtonRight, true
	case glfw.MouseButtonMiddle:
		return ButtonMiddle, true
	}
	return 0, false
}

func (gopher *Gopher) mouseButtonCallback(w *glfw.Window, b glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	gopher.gui.Platform.HandleMouseButton(b, action)
	button, ok := toButton(b)
	if !ok {
		return
	}
	x, y := w.GetCursorPos()
	switch action {
	case glfw.Press:
		// Presses on the panel belong to imgui; the release still reaches the
		// tracker so a drag that ends over the panel finishes cleanly.
		if gopher.gui.Platform.WantsMouse() {
			return
		}
		gopher.pointer.Press(button, x, y)
	case glfw.Release:
		if gopher.pointer.Release(button, x, y) {
			gopher.clicks.Push(events.Click)
		}
	}
}

// Mouse callback function
func (gopher *Gopher) mouseCallback(w *glfw.Window, xpos, ypos float64) {
	dx, dy, mode := gopher.pointer.Move(xpos, ypos)
	switch mode {
	case DragOrbit:
		speed := gopher.Camera.RotateSpeed
		gopher.Camera.Orbit(float32(dx)*speed, float32(dy)*speed)
	case DragPan:
		_, height := w.GetSize()
		gopher.Camera.Pan(float32(dx), float32(dy), int32(height))
	}
}

func (gopher *Gopher) scrollCallback(_ *glfw.Window, xoff, yoff float64) {
	gopher.gui.Platform.HandleScroll(xoff, yoff)
	if gopher.gui.Platform.WantsMouse() {
		return
	}
	gopher.Camera.Zoom(float32(yoff))
}

func (gopher *Gopher) keyCallback(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	gopher.gui.Platform.HandleKey(key, action)
	if gopher.gui.Platform.WantsKeyboard() {
		return
	}
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
	}
}

func (gopher *Gopher) charCallback(_ *glfw.Window, char rune) {
	gopher.gui.Platform.HandleChar(char)
}

func (gopher *Gopher) framebufferSizeCallback(w *glfw.Window, width, height int) {
	if width == 0 || height == 0 {
		// minimized
		return
	}
	winWidth, winHeight := w.GetSize()
	gopher.Width, gopher.Height = int32(winWidth), int32(winHeight)
	gopher.rendererAPI.UpdateViewport(int32(width), int32(height))
	gopher.Camera.SetAspectRatio(float32(width) / float32(height))
	renderer.SetFrustumDirty()
	logger.Log.Debug("Framebuffer resized", zap.Int("width", width), zap.Int("height", height))
}

func (gopher *Gopher) focusCallback(_ *glfw.Window, focused bool) {
	if !focused {
		gopher.pointer.Cancel()
	}
}
