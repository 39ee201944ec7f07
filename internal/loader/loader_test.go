package loader

import (
	"DiceScene/internal/renderer"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func vertexAt(g *renderer.Geometry, i uint32) mgl32.Vec3 {
	b := int(i) * 3
	return mgl32.Vec3{g.Vertices[b], g.Vertices[b+1], g.Vertices[b+2]}
}

func TestNewBoxGeometry(t *testing.T) {
	g, err := NewBoxGeometry(2, 2, 2)
	if err != nil {
		t.Fatalf("NewBoxGeometry: %v", err)
	}

	if got := len(g.Vertices) / 3; got != 24 {
		t.Errorf("Expected 24 vertices, got %d", got)
	}
	if len(g.Faces) != 36 {
		t.Errorf("Expected 36 indices, got %d", len(g.Faces))
	}
	if g.Primitive != renderer.TRIANGLES {
		t.Error("Box should be drawn as triangles")
	}

	for i := 0; i < len(g.Vertices); i++ {
		if math.Abs(float64(g.Vertices[i])) != 1 {
			t.Fatalf("Vertex component %d = %f, want +-1", i, g.Vertices[i])
		}
	}
}

func TestBoxTrianglesFaceOutward(t *testing.T) {
	g, err := NewBoxGeometry(1, 3, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i+2 < len(g.Faces); i += 3 {
		a := vertexAt(g, g.Faces[i])
		b := vertexAt(g, g.Faces[i+1])
		c := vertexAt(g, g.Faces[i+2])
		n := b.Sub(a).Cross(c.Sub(a))
		center := a.Add(b).Add(c).Mul(1.0 / 3)
		if n.Dot(center) <= 0 {
			t.Errorf("Triangle %d winds inward", i/3)
		}
	}
}

func TestBoxRejectsNonPositiveSize(t *testing.T) {
	if _, err := NewBoxGeometry(0, 1, 1); err == nil {
		t.Error("Zero width should fail")
	}
	if _, err := LoadBox("bad", 1, -1, 1, nil); err == nil {
		t.Error("Negative height should fail")
	}
}

func TestLoadBoxMaterialGroups(t *testing.T) {
	var faces [BoxFaces]*renderer.Material
	for i := range faces {
		faces[i] = renderer.NewStandardMaterial("face")
	}

	model, err := LoadBox("cube", 2, 2, 2, &faces)
	if err != nil {
		t.Fatal(err)
	}
	if len(model.MaterialGroups) != BoxFaces {
		t.Fatalf("Expected %d material groups, got %d", BoxFaces, len(model.MaterialGroups))
	}
	var covered int32
	for i, g := range model.MaterialGroups {
		if g.Material != faces[i] {
			t.Errorf("Group %d has the wrong material", i)
		}
		if g.IndexStart != covered {
			t.Errorf("Group %d starts at %d, want %d", i, g.IndexStart, covered)
		}
		covered += g.IndexCount
	}
	if covered != int32(len(model.Geometry.Faces)) {
		t.Errorf("Groups cover %d indices of %d", covered, len(model.Geometry.Faces))
	}
	if len(model.Materials()) != BoxFaces {
		t.Errorf("Expected %d distinct materials, got %d", BoxFaces, len(model.Materials()))
	}
}

func TestBoxFirstGroupIsPositiveX(t *testing.T) {
	g, _ := NewBoxGeometry(2, 2, 2)
	for _, idx := range g.Faces[:6] {
		if v := vertexAt(g, idx); v.X() != 1 {
			t.Fatalf("First face should lie on +X, got vertex %v", v)
		}
	}
}

func TestNewSphereGeometry(t *testing.T) {
	g, err := NewSphereGeometry(0.5, 8, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Faces) == 0 || len(g.Faces)%3 != 0 {
		t.Fatalf("Unexpected index count %d", len(g.Faces))
	}
	for i := 0; i+2 < len(g.Vertices); i += 3 {
		v := mgl32.Vec3{g.Vertices[i], g.Vertices[i+1], g.Vertices[i+2]}
		if math.Abs(float64(v.Len()-0.5)) > 1e-5 {
			t.Fatalf("Vertex %v is off the sphere", v)
		}
	}
	if _, err := NewSphereGeometry(0, 8, 4); err == nil {
		t.Error("Zero radius should fail")
	}
}

func TestDirectionalHelperFacesOrigin(t *testing.T) {
	light := renderer.CreateDirectionalLight("key", mgl32.Vec3{5, 5, 5}, mgl32.Vec3{1, 1, 1}, 4)
	helper, err := LoadLightHelper(light, 1)
	if err != nil {
		t.Fatal(err)
	}
	if helper.Geometry.Primitive != renderer.LINES {
		t.Error("Directional helper should be line geometry")
	}
	if helper.Position != light.Position {
		t.Errorf("Helper at %v, light at %v", helper.Position, light.Position)
	}

	forward := helper.Rotation.Rotate(mgl32.Vec3{0, 0, -1})
	if !forward.ApproxEqualThreshold(light.Direction(), 1e-4) {
		t.Errorf("Helper points %v, light shines %v", forward, light.Direction())
	}
}

func TestPointHelperFollowsLight(t *testing.T) {
	light := renderer.CreatePointLight("fill", mgl32.Vec3{-5, 5, 5}, mgl32.Vec3{1, 1, 1}, 10, 2)
	helper, err := LoadLightHelper(light, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if !helper.Material.Unlit || !helper.Material.Wireframe {
		t.Error("Helpers should be unlit wireframes")
	}

	light.Position = mgl32.Vec3{1, 2, 3}
	FollowLight(helper, light)
	if helper.Position != light.Position {
		t.Errorf("Helper did not follow the light, at %v", helper.Position)
	}
}
