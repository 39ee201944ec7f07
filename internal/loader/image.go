package loader

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"path/filepath"

	"golang.org/x/image/vector"
)

// FaceTexturePath is where the texture for die face n (1-6) is expected.
func FaceTexturePath(dir string, n int) string {
	return filepath.Join(dir, fmt.Sprintf("%d.png", n))
}

// Pip centers in units of the face size. Row order matches image rows, so
// (0.25, 0.25) is the top left pip.
var pipLayouts = [7][][2]float32{
	1: {{0.5, 0.5}},
	2: {{0.25, 0.25}, {0.75, 0.75}},
	3: {{0.25, 0.25}, {0.5, 0.5}, {0.75, 0.75}},
	4: {{0.25, 0.25}, {0.75, 0.25}, {0.25, 0.75}, {0.75, 0.75}},
	5: {{0.25, 0.25}, {0.75, 0.25}, {0.5, 0.5}, {0.25, 0.75}, {0.75, 0.75}},
	6: {{0.25, 0.25}, {0.75, 0.25}, {0.25, 0.5}, {0.75, 0.5}, {0.25, 0.75}, {0.75, 0.75}},
}

// PipCenters returns the pip centers of die face n in pixels for a size x size
// image, or nil when n is not 1-6.
func PipCenters(n, size int) [][2]float32 {
	if n < 1 || n > 6 {
		return nil
	}
	layout := pipLayouts[n]
	out := make([][2]float32, len(layout))
	for i, p := range layout {
		out[i] = [2]float32{p[0] * float32(size), p[1] * float32(size)}
	}
	return out
}

var (
	faceColor = color.RGBA{0xf2, 0xf2, 0xf2, 0xff}
	pipColor  = color.RGBA{0x1a, 0x1a, 0x1a, 0xff}
)

// circleK places cubic control points so four curves approximate a circle.
const circleK = 0.5522848

func addCircle(z *vector.Rasterizer, cx, cy, r float32) {
	k := r * circleK
	z.MoveTo(cx+r, cy)
	z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	z.ClosePath()
}

// DieFace draws a size x size placeholder texture for die face n: a light
// face with n dark pips. Faces outside 1-6 are left blank.
func DieFace(n, size int) *image.RGBA {
	if size < 8 {
		size = 8
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(faceColor), image.Point{}, draw.Src)

	pips := PipCenters(n, size)
	if len(pips) == 0 {
		return img
	}
	z := vector.NewRasterizer(size, size)
	radius := float32(size) * 0.09
	for _, p := range pips {
		addCircle(z, p[0], p[1], radius)
	}
	z.DrawOp = draw.Over
	z.Draw(img, img.Bounds(), image.NewUniform(pipColor), image.Point{})
	return img
}
