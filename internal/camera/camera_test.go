package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func project(m mgl32.Mat4, p mgl32.Vec3) []float32 {
	v := m.Mul4x1(p.Vec4(1))
	return []float32{v.X(), v.Y()}
}

func TestOrthographicMapsVisibleAreaToClipSpace(t *testing.T) {
	c := NewOrthographic(16.0/9.0, 5)
	vp := c.ViewProjection()

	assert.InDeltaSlice(t, []float32{0, 0}, project(vp, mgl32.Vec3{}), 1e-5)
	assert.InDeltaSlice(t, []float32{1, 1}, project(vp, mgl32.Vec3{5 * 16.0 / 9.0, 5, 0}), 1e-5)
	assert.InDeltaSlice(t, []float32{-1, -1}, project(vp, mgl32.Vec3{-5 * 16.0 / 9.0, -5, 0}), 1e-5)
}

func TestCameraPositionAndRotation(t *testing.T) {
	c := NewOrthographic(1, 10)
	c.SetPosition(mgl32.Vec3{10, 0, 0})
	assert.InDeltaSlice(t, []float32{0, 0}, project(c.ViewProjection(), mgl32.Vec3{10, 0, 0}), 1e-5)

	c.SetPosition(mgl32.Vec3{})
	c.SetRotation(90)
	// The camera turns left, so a point on +Y appears on the right.
	assert.InDeltaSlice(t, []float32{0.5, 0}, project(c.ViewProjection(), mgl32.Vec3{0, 5, 0}), 1e-5)
}

func TestZoomClamp(t *testing.T) {
	c := NewOrthographic(1, 1)
	c.SetZoom(0)
	assert.Equal(t, float32(0.01), c.Zoom())

	c.SetZoom(2)
	min, max := c.Bounds()
	assert.Equal(t, mgl32.Vec2{-2, -2}, min)
	assert.Equal(t, mgl32.Vec2{2, 2}, max)
}

func TestUICamera(t *testing.T) {
	ui := NewUI(200, 100)
	assert.InDeltaSlice(t, []float32{-1, -1}, project(ui.ViewProjection(), mgl32.Vec3{}), 1e-5)
	assert.InDeltaSlice(t, []float32{1, 1}, project(ui.ViewProjection(), mgl32.Vec3{200, 100, 0}), 1e-5)
}
