package panel

import (
	"fmt"

	"github.com/inkyblackness/imgui-go/v4"
)

const panelWidth = 320

// Draw emits the panel's widgets into the current imgui frame, anchored to the
// top right corner of a display of the given width.
func (p *Panel) Draw(displayWidth float32) {
	if !p.Visible {
		return
	}
	imgui.SetNextWindowPosV(imgui.Vec2{X: displayWidth - panelWidth - 10, Y: 10}, imgui.ConditionFirstUseEver, imgui.Vec2{})
	imgui.SetNextWindowSizeV(imgui.Vec2{X: panelWidth, Y: 0}, imgui.ConditionFirstUseEver)
	if imgui.BeginV(p.Title, &p.Visible, imgui.WindowFlagsAlwaysAutoResize) {
		for _, folder := range p.Root.Folders {
			flags := imgui.TreeNodeFlagsNone
			if folder.Open {
				flags = imgui.TreeNodeFlagsDefaultOpen
			}
			if imgui.CollapsingHeaderV(folder.Name, flags) {
				drawFolder(folder)
			}
		}
	}
	imgui.End()
}

func drawFolder(f *Folder) {
	imgui.PushID(f.Name)
	for _, s := range f.Sliders {
		drawSlider(s)
	}
	for _, sub := range f.Folders {
		flags := imgui.TreeNodeFlagsNone
		if sub.Open {
			flags = imgui.TreeNodeFlagsDefaultOpen
		}
		if imgui.TreeNodeV(sub.Name, flags) {
			drawFolder(sub)
			imgui.TreePop()
		}
	}
	imgui.PopID()
}

func drawSlider(s *Slider) {
	v := s.Value()
	format := fmt.Sprintf("%%.%df", s.decimals())
	if imgui.SliderFloatV(s.Label, &v, s.Min, s.Max, format, imgui.SliderFlagsNone) {
		s.Set(v)
	}
}
