package scene

import (
	"DiceScene/internal/animation"
	"DiceScene/internal/config"
	"DiceScene/internal/loader"
	"DiceScene/internal/logger"
	"DiceScene/internal/renderer"
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

const (
	cubeSize        = 2
	placeholderSize = 256
	textColor       = 0xe7e7e7
	bladeColor      = 0x808080
)

var (
	bladeSize    = mgl32.Vec3{0.1, 2, 0.5}
	textPosition = mgl32.Vec3{-10.5, 3, 0}
)

// Helper ties a light marker model to the light it follows.
type Helper struct {
	Handle renderer.Handle
	Light  *renderer.Light
}

// Objects is everything the builder created. Models live in Arena; the rest
// are handles into it.
type Objects struct {
	Arena         *renderer.Arena
	Cube          renderer.Handle
	CubeFaces     [loader.BoxFaces]*renderer.Material
	Blades        []animation.Blade
	BladeMaterial *renderer.Material
	Text          renderer.Handle // NilHandle when the text mesh could not be built
	Lights        Rig
	Helpers       []Helper
}

type Builder struct {
	cfg config.SceneConfig
	rng animation.Rand
}

func NewBuilder(cfg config.SceneConfig, rng animation.Rand) *Builder {
	return &Builder{cfg: cfg, rng: rng}
}

// Build creates the cube, blades, text, lights and light helpers. Missing
// textures are not an error here; each face carries a placeholder the
// renderer falls back to.
func (b *Builder) Build() (*Objects, error) {
	if b.cfg.BladeCount < 0 {
		return nil, errors.New("blade count must not be negative")
	}
	objs := &Objects{
		Arena:  renderer.NewArena(),
		Lights: NewRig(),
	}

	if err := b.buildCube(objs); err != nil {
		return nil, fmt.Errorf("cube: %w", err)
	}
	if err := b.buildBlades(objs); err != nil {
		return nil, fmt.Errorf("blades: %w", err)
	}
	b.buildText(objs)
	if b.cfg.LightHelpers {
		if err := objs.AddHelpers(); err != nil {
			return nil, fmt.Errorf("light helpers: %w", err)
		}
	}

	logger.Log.Info("Scene built",
		zap.Int("models", objs.Arena.Len()),
		zap.Int("blades", len(objs.Blades)),
		zap.Bool("text", objs.Text != renderer.NilHandle))
	return objs, nil
}

func (b *Builder) buildCube(objs *Objects) error {
	for i := range objs.CubeFaces {
		n := i + 1
		mat := renderer.NewStandardMaterial(fmt.Sprintf("Face %d", n))
		mat.TexturePath = loader.FaceTexturePath(b.cfg.TextureDir, n)
		mat.Fallback = loader.DieFace(n, placeholderSize)
		objs.CubeFaces[i] = mat
	}
	cube, err := loader.LoadBox("cube", cubeSize, cubeSize, cubeSize, &objs.CubeFaces)
	if err != nil {
		return err
	}
	objs.Cube = objs.Arena.Add(cube)
	return nil
}

// NewBladeMaterial is the translucent glassy material every blade shares.
func NewBladeMaterial() *renderer.Material {
	mat := renderer.NewStandardMaterial("blades")
	color := renderer.HexColor(bladeColor)
	mat.DiffuseColor = [3]float32{color[0], color[1], color[2]}
	mat.Transparent = true
	mat.Alpha = 0.4
	mat.Roughness = 0.1
	mat.Metallic = 0.1
	mat.Reflectivity = 0.9
	mat.Clearcoat = 1
	mat.ClearcoatRoughness = 0.1
	return mat
}

func (b *Builder) buildBlades(objs *Objects) error {
	geometry, err := loader.NewBoxGeometry(bladeSize[0], bladeSize[1], bladeSize[2])
	if err != nil {
		return err
	}
	objs.BladeMaterial = NewBladeMaterial()
	objs.Blades = make([]animation.Blade, 0, b.cfg.BladeCount)

	for i := 0; i < b.cfg.BladeCount; i++ {
		blade := renderer.NewModel(fmt.Sprintf("blade %d", i), geometry, objs.BladeMaterial)
		blade.SetPosition(
			(b.rng.Float32()-0.5)*20,
			b.rng.Float32()*2,
			(b.rng.Float32()-0.5)*20,
		)
		blade.SetEuler(
			b.rng.Float32()*math.Pi,
			b.rng.Float32()*math.Pi,
			b.rng.Float32()*math.Pi,
		)
		objs.Blades = append(objs.Blades, animation.Blade{
			Handle: objs.Arena.Add(blade),
			Speed:  animation.NewBladeSpeed(b.rng),
		})
	}
	return nil
}

func (b *Builder) buildText(objs *Objects) {
	text, err := loader.LoadText("text", b.cfg.Text, loader.DefaultTextOptions(), renderer.HexColor(textColor))
	if err != nil {
		logger.Log.Error("Text mesh skipped", zap.String("text", b.cfg.Text), zap.Error(err))
		return
	}
	text.SetPosition(textPosition[0], textPosition[1], textPosition[2])
	objs.Text = objs.Arena.Add(text)
}

// AddHelpers creates a marker model for every light of the rig.
func (o *Objects) AddHelpers() error {
	for _, light := range o.Lights.All() {
		helper, err := loader.LoadLightHelper(light, helperSize(light))
		if err != nil {
			return err
		}
		o.Helpers = append(o.Helpers, Helper{Handle: o.Arena.Add(helper), Light: light})
	}
	return nil
}

// SyncHelpers moves every helper onto its light. Call once per frame after
// the panel may have moved a light.
func (o *Objects) SyncHelpers() {
	for _, h := range o.Helpers {
		if model, ok := o.Arena.Get(h.Handle); ok {
			loader.FollowLight(model, h.Light)
		}
	}
}

// AddTo hands every model to the renderer in arena order.
func (o *Objects) AddTo(r renderer.Render) {
	o.Arena.Each(func(_ renderer.Handle, m *renderer.Model) {
		r.AddModel(m)
	})
}
