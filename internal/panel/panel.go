package panel

import (
	"math"
	"strings"
)

// Slider binds a number to a float32 property owned elsewhere. Writes go
// straight to Target so the next rendered frame sees them.
type Slider struct {
	Label    string
	Target   *float32
	Min      float32
	Max      float32
	Step     float32
	OnChange func(float32)
}

func (s *Slider) Value() float32 {
	return *s.Target
}

// Set snaps v to a multiple of Step, clamps it to [Min, Max] and stores it.
// It reports whether the property changed.
func (s *Slider) Set(v float32) bool {
	if math.IsNaN(float64(v)) {
		return false
	}
	if s.Step > 0 {
		v = float32(math.Round(float64(v)/float64(s.Step)) * float64(s.Step))
	}
	if v < s.Min {
		v = s.Min
	}
	if v > s.Max {
		v = s.Max
	}
	if v == *s.Target {
		return false
	}
	*s.Target = v
	if s.OnChange != nil {
		s.OnChange(v)
	}
	return true
}

// decimals is the number of fractional digits Step needs.
func (s *Slider) decimals() int {
	if s.Step <= 0 || s.Step >= 1 {
		return 0
	}
	d := int(math.Ceil(-math.Log10(float64(s.Step)) - 1e-4))
	if d < 0 {
		return 0
	}
	return d
}

// Folder is a titled group of sliders and subfolders.
type Folder struct {
	Name    string
	Sliders []*Slider
	Folders []*Folder
	Open    bool
}

// Add binds a new slider in f.
func (f *Folder) Add(label string, target *float32, min, max, step float32) *Slider {
	s := &Slider{Label: label, Target: target, Min: min, Max: max, Step: step}
	f.Sliders = append(f.Sliders, s)
	return s
}

// Folder returns the subfolder name, creating it if needed. New folders start
// expanded.
func (f *Folder) Folder(name string) *Folder {
	for _, sub := range f.Folders {
		if sub.Name == name {
			return sub
		}
	}
	sub := &Folder{Name: name, Open: true}
	f.Folders = append(f.Folders, sub)
	return sub
}

// Find resolves a path of folder names ending in a slider label, such as
// "Cube Materials/Face 1/Metalness".
func (f *Folder) Find(path string) *Slider {
	parts := strings.Split(path, "/")
	cur := f
	for _, name := range parts[:len(parts)-1] {
		var next *Folder
		for _, sub := range cur.Folders {
			if sub.Name == name {
				next = sub
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	label := parts[len(parts)-1]
	for _, s := range cur.Sliders {
		if s.Label == label {
			return s
		}
	}
	return nil
}

// Panel is the debug control panel: a window of folders.
type Panel struct {
	Title   string
	Root    Folder
	Visible bool
}

func New(title string) *Panel {
	return &Panel{Title: title, Visible: true}
}

func (p *Panel) Folder(name string) *Folder {
	return p.Root.Folder(name)
}

func (p *Panel) Find(path string) *Slider {
	return p.Root.Find(path)
}

// Count returns the number of sliders in the panel.
func (p *Panel) Count() int {
	var count func(*Folder) int
	count = func(f *Folder) int {
		n := len(f.Sliders)
		for _, sub := range f.Folders {
			n += count(sub)
		}
		return n
	}
	return count(&p.Root)
}
