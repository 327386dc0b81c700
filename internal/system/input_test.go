package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/quadcore/engine/internal/camera"
)

type held map[Action]bool

func (h held) Pressed(a Action) bool { return h[a] }

func TestCameraControlPansScaledByZoom(t *testing.T) {
	cam := camera.NewOrthographic(16.0/9.0, 10)
	keys := held{ActionPanRight: true}
	sys := NewCameraControlSystem(cam, keys)

	sys.Update(0.5)
	assert.InDelta(t, 5, cam.Position().X(), 1e-5)
	assert.Zero(t, cam.Position().Y())

	keys[ActionPanUp] = true
	sys.Update(1)
	d := float32(10 / 1.41421356)
	assert.InDelta(t, 5+d, cam.Position().X(), 1e-4, "diagonal normalized")
	assert.InDelta(t, d, cam.Position().Y(), 1e-4)
}

func TestCameraControlZoom(t *testing.T) {
	cam := camera.NewOrthographic(1, 4)
	keys := held{ActionZoomOut: true}
	sys := NewCameraControlSystem(cam, keys)

	sys.Update(1)
	assert.InDelta(t, 10, cam.Zoom(), 1e-5)

	keys[ActionZoomOut], keys[ActionZoomIn] = false, true
	sys.Update(1)
	assert.InDelta(t, 4, cam.Zoom(), 1e-5)

	sys.Update(0)
	assert.Equal(t, mgl32.Vec3{}, cam.Position())
}

type destroyCounter int

func (d *destroyCounter) FlushDestroyQueue() { *d++ }

func TestCleanupFlushesQueue(t *testing.T) {
	var n destroyCounter
	sys := NewCleanupSystem(&n)

	sys.Update(0.016)
	sys.Update(0.016)

	assert.Equal(t, destroyCounter(2), n)
}
