package scene

import (
	"DiceScene/internal/animation"
	"DiceScene/internal/config"
	"DiceScene/internal/loader"
	"DiceScene/internal/renderer"
	"math"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, mutate func(*config.SceneConfig)) *Objects {
	t.Helper()
	cfg := config.Default().Scene
	if mutate != nil {
		mutate(&cfg)
	}
	objs, err := NewBuilder(cfg, animation.NewRand(1234)).Build()
	require.NoError(t, err)
	return objs
}

func TestBuildDefaultScene(t *testing.T) {
	objs := build(t, nil)

	assert.Len(t, objs.Blades, 100)
	assert.NotEqual(t, renderer.NilHandle, objs.Cube)
	assert.NotEqual(t, renderer.NilHandle, objs.Text)
	assert.Len(t, objs.Helpers, 3)
	// cube + blades + text + helpers
	assert.Equal(t, 1+100+1+3, objs.Arena.Len())
}

func TestCubeFacesUseNumberTextures(t *testing.T) {
	objs := build(t, func(c *config.SceneConfig) { c.TextureDir = "faces" })

	cube, ok := objs.Arena.Get(objs.Cube)
	require.True(t, ok)
	require.Len(t, cube.MaterialGroups, loader.BoxFaces)

	for i, group := range cube.MaterialGroups {
		mat := group.Material
		assert.Same(t, objs.CubeFaces[i], mat)
		assert.Equal(t, filepath.Join("faces", []string{"1", "2", "3", "4", "5", "6"}[i]+".png"), mat.TexturePath)
		assert.NotNil(t, mat.Fallback, "face %d needs a placeholder", i+1)
		assert.Equal(t, float32(0), mat.Metallic)
		assert.Equal(t, float32(1), mat.Roughness)
		assert.False(t, mat.Transparent)
	}
	assert.Equal(t, mgl32.Vec3{}, cube.Position)
}

func TestBladesPlacement(t *testing.T) {
	objs := build(t, nil)

	geometries := map[*renderer.Geometry]bool{}
	for _, blade := range objs.Blades {
		m, ok := objs.Arena.Get(blade.Handle)
		require.True(t, ok)
		geometries[m.Geometry] = true

		assert.Same(t, objs.BladeMaterial, m.Material)
		assert.GreaterOrEqual(t, m.X(), float32(-10))
		assert.Less(t, m.X(), float32(10))
		assert.GreaterOrEqual(t, m.Z(), float32(-10))
		assert.Less(t, m.Z(), float32(10))
		assert.GreaterOrEqual(t, m.Y(), float32(0))
		assert.Less(t, m.Y(), float32(2))
		for axis := 0; axis < 3; axis++ {
			assert.GreaterOrEqual(t, m.Euler[axis], float32(0))
			assert.Less(t, m.Euler[axis], float32(math.Pi))
			assert.Less(t, mgl32.Abs(blade.Speed[axis]), float32(0.005+1e-6))
		}
	}
	assert.Len(t, geometries, 1, "blades should share one geometry")
}

func TestBladeMaterial(t *testing.T) {
	mat := NewBladeMaterial()
	assert.True(t, mat.Transparent)
	assert.Equal(t, float32(0.4), mat.Alpha)
	assert.Equal(t, float32(0.1), mat.Roughness)
	assert.Equal(t, float32(0.1), mat.Metallic)
	assert.Equal(t, float32(0.9), mat.Reflectivity)
	assert.Equal(t, float32(1), mat.Clearcoat)
	assert.Equal(t, float32(0.1), mat.ClearcoatRoughness)
	assert.InDelta(t, 128.0/255, mat.DiffuseColor[0], 1e-6)
}

func TestSameSeedSameScene(t *testing.T) {
	a := build(t, func(c *config.SceneConfig) { c.BladeCount = 10 })
	b := build(t, func(c *config.SceneConfig) { c.BladeCount = 10 })
	for i := range a.Blades {
		ma, _ := a.Arena.Get(a.Blades[i].Handle)
		mb, _ := b.Arena.Get(b.Blades[i].Handle)
		assert.Equal(t, ma.Position, mb.Position)
		assert.Equal(t, a.Blades[i].Speed, b.Blades[i].Speed)
	}
}

func TestTextPlacement(t *testing.T) {
	objs := build(t, nil)
	text, ok := objs.Arena.Get(objs.Text)
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{-10.5, 3, 0}, text.Position)
	assert.True(t, text.Material.Wireframe)
	assert.Equal(t, renderer.LINES, text.Geometry.Primitive)
}

func TestNoHelpersWhenDisabled(t *testing.T) {
	objs := build(t, func(c *config.SceneConfig) { c.LightHelpers = false; c.BladeCount = 0 })
	assert.Empty(t, objs.Helpers)
	assert.Equal(t, 2, objs.Arena.Len())
}

func TestRig(t *testing.T) {
	rig := NewRig()
	require.Len(t, rig.All(), 3)

	assert.Equal(t, renderer.DIRECTIONAL_LIGHT, rig.Key.Mode)
	assert.Equal(t, float32(4), rig.Key.Intensity)
	assert.Equal(t, mgl32.Vec3{5, 5, 5}, rig.Key.Position)

	assert.Equal(t, renderer.DIRECTIONAL_LIGHT, rig.Fill.Mode)
	assert.Equal(t, float32(0.1), rig.Fill.Intensity)
	assert.Equal(t, mgl32.Vec3{-5, -5, -5}, rig.Fill.Position)

	assert.Equal(t, renderer.POINT_LIGHT, rig.Point.Mode)
	assert.Equal(t, float32(10), rig.Point.Intensity)
	assert.Equal(t, mgl32.Vec3{-5, 5, 5}, rig.Point.Position)
}

func TestSyncHelpersFollowsMovedLight(t *testing.T) {
	objs := build(t, func(c *config.SceneConfig) { c.BladeCount = 0 })
	objs.Lights.Key.Position = mgl32.Vec3{-3, 7, 2}

	objs.SyncHelpers()

	for _, h := range objs.Helpers {
		m, _ := objs.Arena.Get(h.Handle)
		assert.Equal(t, h.Light.Position, m.Position)
	}
}
