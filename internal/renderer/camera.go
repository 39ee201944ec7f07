// camera.go
package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const minPolar = 0.01

// Camera is a perspective camera that orbits a target point.
type Camera struct {
	// HOT DATA - Accessed every frame for view/projection calculations
	Position   mgl32.Vec3 // Camera position in world space
	Target     mgl32.Vec3 // Point the camera orbits and looks at
	Up         mgl32.Vec3 // World up used to build the view matrix
	Projection mgl32.Mat4 // Projection matrix

	// COLD DATA - Configuration and input handling
	Fov         float32 // Vertical field of view in degrees
	Near        float32 // Near clipping plane
	Far         float32 // Far clipping plane
	AspectRatio float32 // Screen aspect ratio (width / height)
	MinDistance float32 // Closest zoom to the target
	MaxDistance float32 // Farthest zoom from the target
	RotateSpeed float32 // Degrees of orbit per pixel dragged
	PanSpeed    float32 // Multiplier on the screen-space pan distance
	ZoomSpeed   float32 // Fraction of the distance covered per scroll step

	Name string
}

type Plane struct {
	Normal   mgl32.Vec3
	Distance float32
}

type Frustum struct {
	Planes [6]Plane
}

func NewDefaultCamera(width int32, height int32) *Camera {
	camera := Camera{
		Position:    mgl32.Vec3{0, 20, 100},
		Target:      mgl32.Vec3{0, 0, 0},
		Up:          mgl32.Vec3{0, 1, 0},
		Fov:         10.0,
		Near:        1.0,
		Far:         1000.0,
		AspectRatio: float32(width) / float32(height),
		MinDistance: 1.0,
		MaxDistance: 900.0,
		RotateSpeed: 0.25,
		PanSpeed:    1.0,
		ZoomSpeed:   0.1,
		Name:        "main",
	}
	camera.UpdateProjection()
	return &camera
}

func (c *Camera) UpdateProjection() {
	c.Projection = mgl32.Perspective(mgl32.DegToRad(c.Fov), c.AspectRatio, c.Near, c.Far)
}

// Setter methods that automatically update projection
func (c *Camera) SetNear(near float32) {
	c.Near = near
	c.UpdateProjection()
}

func (c *Camera) SetFar(far float32) {
	c.Far = far
	c.UpdateProjection()
}

func (c *Camera) SetFov(fov float32) {
	c.Fov = fov
	c.UpdateProjection()
}

func (c *Camera) SetAspectRatio(aspectRatio float32) {
	c.AspectRatio = aspectRatio
	c.UpdateProjection()
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	return c.Projection
}

func (c *Camera) GetViewProjection() mgl32.Mat4 {
	return c.Projection.Mul4(c.GetViewMatrix())
}

// LookAt points the camera at target, which becomes the orbit center.
func (c *Camera) LookAt(target mgl32.Vec3) {
	c.Target = target
	SetFrustumDirty()
}

// ViewVector is the vector from the target to the camera.
func (c *Camera) ViewVector() mgl32.Vec3 {
	return c.Position.Sub(c.Target)
}

// Distance from the camera to its target.
func (c *Camera) Distance() float32 {
	return c.ViewVector().Len()
}

// Orbit rotates the camera around the target by delX degrees about the world
// up axis and delY degrees toward or away from the poles, keeping the distance
// to the target. The polar angle is clamped so the camera never flips.
func (c *Camera) Orbit(delX, delY float32) {
	offset := c.ViewVector()
	radius := offset.Len()
	if radius == 0 {
		return
	}

	theta := math.Atan2(float64(offset.X()), float64(offset.Z()))
	phi := math.Acos(float64(mgl32.Clamp(offset.Y()/radius, -1, 1)))

	theta -= float64(mgl32.DegToRad(delX))
	phi -= float64(mgl32.DegToRad(delY))
	phi = math.Max(minPolar, math.Min(math.Pi-minPolar, phi))

	sinPhi := math.Sin(phi)
	offset = mgl32.Vec3{
		radius * float32(sinPhi*math.Sin(theta)),
		radius * float32(math.Cos(phi)),
		radius * float32(sinPhi*math.Cos(theta)),
	}
	c.Position = c.Target.Add(offset)
	SetFrustumDirty()
}

// Pan moves camera and target together in the view plane. deltaX and deltaY
// are pointer movements in pixels; viewportHeight converts them to world units
// at the target's distance so the scene tracks the pointer.
func (c *Camera) Pan(deltaX, deltaY float32, viewportHeight int32) {
	if viewportHeight <= 0 {
		return
	}
	forward := c.Target.Sub(c.Position)
	distance := forward.Len()
	if distance == 0 {
		return
	}
	forward = forward.Mul(1 / distance)
	right := forward.Cross(c.Up).Normalize()
	up := right.Cross(forward)

	worldPerPixel := 2 * distance * float32(math.Tan(float64(mgl32.DegToRad(c.Fov)/2))) / float32(viewportHeight)
	move := right.Mul(-deltaX * worldPerPixel * c.PanSpeed).Add(up.Mul(deltaY * worldPerPixel * c.PanSpeed))

	c.Position = c.Position.Add(move)
	c.Target = c.Target.Add(move)
	SetFrustumDirty()
}

// Zoom moves the camera along the view axis. Positive steps move closer, each
// step covering ZoomSpeed of the current distance.
func (c *Camera) Zoom(steps float32) {
	offset := c.ViewVector()
	distance := offset.Len()
	if distance == 0 {
		return
	}
	scale := float32(math.Pow(float64(1-c.ZoomSpeed), float64(steps)))
	newDistance := mgl32.Clamp(distance*scale, c.MinDistance, c.MaxDistance)
	c.Position = c.Target.Add(offset.Mul(newDistance / distance))
	SetFrustumDirty()
}

func (c *Camera) CalculateFrustum() Frustum {
	var frustum Frustum
	vp := c.GetViewProjection()

	// Left Plane
	frustum.Planes[0] = Plane{
		Normal:   mgl32.Vec3{vp[3] + vp[0], vp[7] + vp[4], vp[11] + vp[8]},
		Distance: vp[15] + vp[12],
	}

	// Right Plane
	frustum.Planes[1] = Plane{
		Normal:   mgl32.Vec3{vp[3] - vp[0], vp[7] - vp[4], vp[11] - vp[8]},
		Distance: vp[15] - vp[12],
	}

	// Bottom Plane
	frustum.Planes[2] = Plane{
		Normal:   mgl32.Vec3{vp[3] + vp[1], vp[7] + vp[5], vp[11] + vp[9]},
		Distance: vp[15] + vp[13],
	}

	// Top Plane
	frustum.Planes[3] = Plane{
		Normal:   mgl32.Vec3{vp[3] - vp[1], vp[7] - vp[5], vp[11] - vp[9]},
		Distance: vp[15] - vp[13],
	}

	// Near Plane
	frustum.Planes[4] = Plane{
		Normal:   mgl32.Vec3{vp[3] + vp[2], vp[7] + vp[6], vp[11] + vp[10]},
		Distance: vp[15] + vp[14],
	}

	// Far Plane
	frustum.Planes[5] = Plane{
		Normal:   mgl32.Vec3{vp[3] - vp[2], vp[7] - vp[6], vp[11] - vp[10]},
		Distance: vp[15] - vp[14],
	}

	for i := 0; i < 6; i++ {
		length := frustum.Planes[i].Normal.Len()
		frustum.Planes[i].Normal = frustum.Planes[i].Normal.Mul(1.0 / length)
		frustum.Planes[i].Distance /= length
	}

	return frustum
}

func (p *Plane) DistanceToPoint(point mgl32.Vec3) float32 {
	return p.Normal.Dot(point) + p.Distance
}

func (f *Frustum) IntersectsSphere(center mgl32.Vec3, radius float32) bool {
	for _, plane := range f.Planes {
		if plane.DistanceToPoint(center) < -radius {
			return false // Sphere is outside the frustum
		}
	}
	return true
}
