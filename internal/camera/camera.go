package camera

import "github.com/go-gl/mathgl/mgl32"

const (
	nearPlane = -1000
	farPlane  = 1000
)

// Orthographic is a 2D camera. Zoom is the half-height of the visible area
// in world units; the half-width is Zoom*Aspect. Rotation is in degrees.
type Orthographic struct {
	position mgl32.Vec3
	rotation float32
	zoom     float32
	aspect   float32

	projection mgl32.Mat4
	view       mgl32.Mat4
	viewProj   mgl32.Mat4
}

func NewOrthographic(aspect, zoom float32) *Orthographic {
	c := &Orthographic{
		zoom:   zoom,
		aspect: aspect,
		view:   mgl32.Ident4(),
	}
	c.recalculateProjection()
	return c
}

func (c *Orthographic) Position() mgl32.Vec3 { return c.position }
func (c *Orthographic) Rotation() float32    { return c.rotation }
func (c *Orthographic) Zoom() float32        { return c.zoom }
func (c *Orthographic) Aspect() float32      { return c.aspect }

func (c *Orthographic) Projection() mgl32.Mat4     { return c.projection }
func (c *Orthographic) View() mgl32.Mat4           { return c.view }
func (c *Orthographic) ViewProjection() mgl32.Mat4 { return c.viewProj }

func (c *Orthographic) SetPosition(p mgl32.Vec3) {
	c.position = p
	c.recalculateView()
}

func (c *Orthographic) SetRotation(deg float32) {
	c.rotation = deg
	c.recalculateView()
}

// SetZoom clamps to a small positive minimum so the projection stays invertible.
func (c *Orthographic) SetZoom(zoom float32) {
	if zoom < 0.01 {
		zoom = 0.01
	}
	c.zoom = zoom
	c.recalculateProjection()
}

func (c *Orthographic) SetAspect(aspect float32) {
	c.aspect = aspect
	c.recalculateProjection()
}

// Bounds returns the visible world rectangle ignoring rotation.
func (c *Orthographic) Bounds() (min, max mgl32.Vec2) {
	hw, hh := c.zoom*c.aspect, c.zoom
	return mgl32.Vec2{c.position.X() - hw, c.position.Y() - hh},
		mgl32.Vec2{c.position.X() + hw, c.position.Y() + hh}
}

func (c *Orthographic) recalculateProjection() {
	hw, hh := c.zoom*c.aspect, c.zoom
	c.projection = mgl32.Ortho(-hw, hw, -hh, hh, nearPlane, farPlane)
	c.viewProj = c.projection.Mul4(c.view)
}

func (c *Orthographic) recalculateView() {
	transform := mgl32.Translate3D(c.position.X(), c.position.Y(), c.position.Z()).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(c.rotation)))
	c.view = transform.Inv()
	c.viewProj = c.projection.Mul4(c.view)
}

// Fixed is a camera with a constant view-projection, used for UI space.
type Fixed struct {
	viewProj mgl32.Mat4
}

// NewUI returns a camera mapping [0,width]×[0,height] to the full viewport.
func NewUI(width, height float32) Fixed {
	return Fixed{viewProj: mgl32.Ortho(0, width, 0, height, nearPlane, farPlane)}
}

func (f Fixed) ViewProjection() mgl32.Mat4 { return f.viewProj }
