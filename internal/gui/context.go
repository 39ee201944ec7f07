package gui

import (
	"DiceScene/internal/logger"
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/inkyblackness/imgui-go/v4"
)

// Context owns the imgui context together with its platform and renderer
// halves. Frames are bracketed by NewFrame and Render.
type Context struct {
	imgui    *imgui.Context
	Platform *Platform
	renderer *Renderer
}

// NewContext must run on the thread that owns the GL context of window.
func NewContext(window *glfw.Window) (*Context, error) {
	ctx := imgui.CreateContext(nil)
	io := imgui.CurrentIO()
	io.SetIniFilename("")

	r, err := NewRenderer(io)
	if err != nil {
		ctx.Destroy()
		return nil, fmt.Errorf("imgui renderer: %w", err)
	}
	logger.Log.Info("imgui initialized")
	return &Context{
		imgui:    ctx,
		Platform: NewPlatform(io, window),
		renderer: r,
	}, nil
}

func (c *Context) NewFrame() {
	c.Platform.NewFrame()
	imgui.NewFrame()
}

func (c *Context) Render() {
	imgui.Render()
	c.renderer.Render(c.Platform.DisplaySize(), c.Platform.FramebufferSize(), imgui.RenderedDrawData())
}

func (c *Context) Destroy() {
	c.renderer.Dispose()
	c.imgui.Destroy()
}
