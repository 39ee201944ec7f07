//go:build windows

package engine

import (
	"DiceScene/internal/logger"
	"syscall"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

var (
	dwmapi                    = syscall.NewLazyDLL("dwmapi.dll")
	procDwmSetWindowAttribute = dwmapi.NewProc("DwmSetWindowAttribute")
)

const (
	DWMWA_USE_IMMERSIVE_DARK_MODE = 20
	DWMWA_CAPTION_COLOR           = 35
	DWMWA_BORDER_COLOR            = 34
)

func setWindowAttribute(hwnd unsafe.Pointer, attribute uintptr, value uint32) {
	ret, _, _ := procDwmSetWindowAttribute.Call(
		uintptr(hwnd),
		attribute,
		uintptr(unsafe.Pointer(&value)),
		unsafe.Sizeof(value),
	)
	if ret != 0 {
		logger.Log.Debug("DwmSetWindowAttribute failed",
			zap.Uintptr("attribute", attribute),
			zap.Uintptr("hresult", ret))
	}
}

// SetDarkTitleBar switches the window frame to the dark theme so it matches
// the scene background.
func SetDarkTitleBar(window *glfw.Window) {
	if err := procDwmSetWindowAttribute.Find(); err != nil {
		return
	}
	hwnd := window.GetWin32Window()
	if hwnd == nil {
		return
	}
	ptr := unsafe.Pointer(hwnd)
	setWindowAttribute(ptr, DWMWA_USE_IMMERSIVE_DARK_MODE, 1)
	setWindowAttribute(ptr, DWMWA_BORDER_COLOR, 0x00000000)
	setWindowAttribute(ptr, DWMWA_CAPTION_COLOR, 0x00202020)
}
