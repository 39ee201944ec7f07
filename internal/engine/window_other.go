//go:build !windows

package engine

import "github.com/go-gl/glfw/v3.3/glfw"

// SetDarkTitleBar is a no-op outside Windows; the window manager owns the
// frame theme.
func SetDarkTitleBar(*glfw.Window) {}
