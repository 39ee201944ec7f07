package loader

import (
	"DiceScene/internal/logger"
	"DiceScene/internal/renderer"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// outlinePPEM is the scale glyphs are loaded at. Outlines come back in 26.6
// fixed point, so a large ppem keeps curve detail before scaling down.
const outlinePPEM = 1024

type TextOptions struct {
	Size          float32 // Em height in world units
	Depth         float32 // Extrusion along +Z
	CurveSegments int     // Line segments per quadratic or cubic curve
	Font          []byte  // TrueType/OpenType data, Go Regular when nil
}

func DefaultTextOptions() TextOptions {
	return TextOptions{
		Size:          1,
		Depth:         0.2,
		CurveSegments: 12,
	}
}

type contour []mgl32.Vec2

// NewTextGeometry builds the outline of text extruded by Depth: every glyph
// contour is drawn at z=0 and z=Depth, with an edge joining each pair of
// matching points. The baseline starts at the origin and runs along +X.
// Empty text gives an empty geometry.
func NewTextGeometry(text string, opts TextOptions) (*renderer.Geometry, error) {
	if opts.CurveSegments <= 0 {
		opts.CurveSegments = 1
	}
	fontData := opts.Font
	if fontData == nil {
		fontData = goregular.TTF
	}
	f, err := sfnt.Parse(fontData)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	contours, err := textContours(f, text, opts.CurveSegments)
	if err != nil {
		return nil, err
	}

	scale := opts.Size / outlinePPEM
	var data []float32
	var indices []uint32
	for _, c := range contours {
		n := uint32(len(c))
		if n < 2 {
			continue
		}
		base := uint32(len(data) / renderer.FloatsPerVertex)
		for _, z := range [2]float32{0, opts.Depth} {
			for _, p := range c {
				data = lineVertex(data, mgl32.Vec3{p[0] * scale, p[1] * scale, z})
			}
		}
		for i := uint32(0); i < n; i++ {
			next := (i + 1) % n
			indices = append(indices,
				base+i, base+next, // front
				base+n+i, base+n+next, // back
				base+i, base+n+i, // side
			)
		}
	}

	return renderer.NewGeometry(data, indices, renderer.LINES), nil
}

// textContours lays out text on one line with kerning and returns every
// closed contour flattened to points in font units at outlinePPEM, Y up.
func textContours(f *sfnt.Font, text string, curveSegments int) ([]contour, error) {
	var buf sfnt.Buffer
	ppem := fixed.I(outlinePPEM)

	var contours []contour
	var pen fixed.Int26_6
	prev := sfnt.GlyphIndex(0)
	for _, r := range text {
		idx, err := f.GlyphIndex(&buf, r)
		if err != nil {
			return nil, fmt.Errorf("glyph index %q: %w", r, err)
		}
		if idx == 0 {
			logger.Log.Warn("Font has no glyph for rune", zap.String("rune", string(r)))
		}
		if prev != 0 {
			if kern, err := f.Kern(&buf, prev, idx, ppem, font.HintingNone); err == nil {
				pen += kern
			}
		}

		segments, err := f.LoadGlyph(&buf, idx, ppem, nil)
		if err != nil {
			return nil, fmt.Errorf("load glyph %q: %w", r, err)
		}
		contours = append(contours, flattenSegments(segments, pen, curveSegments)...)

		advance, err := f.GlyphAdvance(&buf, idx, ppem, font.HintingNone)
		if err != nil {
			return nil, fmt.Errorf("glyph advance %q: %w", r, err)
		}
		pen += advance
		prev = idx
	}
	return contours, nil
}

func toVec(p fixed.Point26_6, penX fixed.Int26_6) mgl32.Vec2 {
	// sfnt's Y axis points down
	return mgl32.Vec2{float32(p.X+penX) / 64, -float32(p.Y) / 64}
}

func flattenSegments(segments sfnt.Segments, penX fixed.Int26_6, curveSegments int) []contour {
	var out []contour
	var current contour
	flush := func() {
		// Contours repeat their start point at the end.
		if n := len(current); n > 1 && current[0].ApproxEqual(current[n-1]) {
			current = current[:n-1]
		}
		if len(current) > 1 {
			out = append(out, current)
		}
		current = nil
	}

	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			flush()
			current = append(current, toVec(seg.Args[0], penX))
		case sfnt.SegmentOpLineTo:
			current = append(current, toVec(seg.Args[0], penX))
		case sfnt.SegmentOpQuadTo:
			if len(current) == 0 {
				continue
			}
			p0 := current[len(current)-1]
			p1 := toVec(seg.Args[0], penX)
			p2 := toVec(seg.Args[1], penX)
			for i := 1; i <= curveSegments; i++ {
				current = append(current, mgl32.QuadraticBezierCurve2D(float32(i)/float32(curveSegments), p0, p1, p2))
			}
		case sfnt.SegmentOpCubeTo:
			if len(current) == 0 {
				continue
			}
			p0 := current[len(current)-1]
			p1 := toVec(seg.Args[0], penX)
			p2 := toVec(seg.Args[1], penX)
			p3 := toVec(seg.Args[2], penX)
			for i := 1; i <= curveSegments; i++ {
				current = append(current, mgl32.CubicBezierCurve2D(float32(i)/float32(curveSegments), p0, p1, p2, p3))
			}
		}
	}
	flush()
	return out
}

// LoadText creates the wireframe text model in the given sRGB color.
func LoadText(name, text string, opts TextOptions, color mgl32.Vec3) (*renderer.Model, error) {
	geometry, err := NewTextGeometry(text, opts)
	if err != nil {
		return nil, err
	}
	mat := renderer.NewStandardMaterial(name)
	mat.DiffuseColor = [3]float32{color.X(), color.Y(), color.Z()}
	mat.Wireframe = true
	model := renderer.NewModel(name, geometry, mat)

	logger.Log.Debug("Text mesh created",
		zap.String("text", text),
		zap.Int("vertices", len(geometry.Vertices)/3),
		zap.Int("lines", len(geometry.Faces)/2))
	return model, nil
}
