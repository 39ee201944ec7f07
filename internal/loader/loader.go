package loader

import (
	"DiceScene/internal/logger"
	"DiceScene/internal/renderer"
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// BoxFaces is the number of material groups of a box, in +X, -X, +Y, -Y,
// +Z, -Z order.
const BoxFaces = 6

type boxFace struct {
	normal, u, v mgl32.Vec3
}

// u x v == normal so every quad winds counter-clockwise seen from outside.
var boxFaceAxes = [BoxFaces]boxFace{
	{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
	{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
	{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
}

func mulElem(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

// NewBoxGeometry builds an axis aligned box centered on the origin with four
// vertices per face so each face gets its own normal and full 0..1 UVs.
func NewBoxGeometry(width, height, depth float32) (*renderer.Geometry, error) {
	if width <= 0 || height <= 0 || depth <= 0 {
		return nil, errors.New("box dimensions must be positive")
	}
	half := mgl32.Vec3{width / 2, height / 2, depth / 2}

	interleavedData := make([]float32, 0, BoxFaces*4*renderer.FloatsPerVertex)
	indices := make([]uint32, 0, BoxFaces*6)

	// Image row 0 is uploaded as t=0, so the top edge of the face gets t=0.
	corners := [4]struct{ su, sv, s, t float32 }{
		{-1, -1, 0, 1},
		{1, -1, 1, 1},
		{1, 1, 1, 0},
		{-1, 1, 0, 0},
	}

	for i, face := range boxFaceAxes {
		center := mulElem(face.normal, half)
		u := mulElem(face.u, half)
		v := mulElem(face.v, half)
		for _, c := range corners {
			p := center.Add(u.Mul(c.su)).Add(v.Mul(c.sv))
			interleavedData = append(interleavedData,
				p[0], p[1], p[2],
				c.s, c.t,
				face.normal[0], face.normal[1], face.normal[2])
		}
		base := uint32(i * 4)
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}

	return renderer.NewGeometry(interleavedData, indices, renderer.TRIANGLES), nil
}

// BoxMaterialGroups maps one material to each box face.
func BoxMaterialGroups(materials [BoxFaces]*renderer.Material) []renderer.MaterialGroup {
	groups := make([]renderer.MaterialGroup, BoxFaces)
	for i, mat := range materials {
		groups[i] = renderer.MaterialGroup{
			Material:   mat,
			IndexStart: int32(i * 6),
			IndexCount: 6,
		}
	}
	return groups
}

// LoadBox creates a box model. With one material per face the model is split
// into six material groups.
func LoadBox(name string, width, height, depth float32, faces *[BoxFaces]*renderer.Material) (*renderer.Model, error) {
	geometry, err := NewBoxGeometry(width, height, depth)
	if err != nil {
		return nil, err
	}
	model := renderer.NewModel(name, geometry, nil)
	if faces != nil {
		model.MaterialGroups = BoxMaterialGroups(*faces)
		model.Material = faces[0]
	} else {
		model.Material = renderer.NewStandardMaterial(name)
	}

	logger.Log.Debug("Box created",
		zap.String("name", name),
		zap.Int("vertices", len(geometry.Vertices)/3),
		zap.Int("indices", len(geometry.Faces)))
	return model, nil
}

// NewSphereGeometry builds a UV sphere with widthSegments around the Y axis
// and heightSegments from pole to pole.
func NewSphereGeometry(radius float32, widthSegments, heightSegments int) (*renderer.Geometry, error) {
	if radius <= 0 {
		return nil, errors.New("sphere radius must be positive")
	}
	if widthSegments < 3 {
		widthSegments = 3
	}
	if heightSegments < 2 {
		heightSegments = 2
	}

	var interleavedData []float32
	var indices []uint32

	for i := 0; i <= heightSegments; i++ {
		lat := float64(i) * math.Pi / float64(heightSegments)
		for j := 0; j <= widthSegments; j++ {
			lon := float64(j) * 2.0 * math.Pi / float64(widthSegments)

			nx := float32(math.Sin(lat) * math.Cos(lon))
			ny := float32(math.Cos(lat))
			nz := float32(math.Sin(lat) * math.Sin(lon))

			u := float32(j) / float32(widthSegments)
			v := float32(i) / float32(heightSegments)

			interleavedData = append(interleavedData, radius*nx, radius*ny, radius*nz, u, v, nx, ny, nz)
		}
	}

	for i := 0; i < heightSegments; i++ {
		for j := 0; j < widthSegments; j++ {
			first := uint32(i*(widthSegments+1) + j)
			second := first + uint32(widthSegments+1)

			if i != 0 {
				indices = append(indices, first, second, first+1)
			}
			if i != heightSegments-1 {
				indices = append(indices, second, second+1, first+1)
			}
		}
	}

	return renderer.NewGeometry(interleavedData, indices, renderer.TRIANGLES), nil
}
