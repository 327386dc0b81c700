package system

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/quadcore/engine/internal/camera"
	coresys "github.com/quadcore/engine/internal/core/system"
)

// Action is a logical input, decoupled from any key layout.
type Action int

const (
	ActionPanLeft Action = iota
	ActionPanRight
	ActionPanUp
	ActionPanDown
	ActionZoomOut
	ActionZoomIn
)

// InputState reports which actions are held this frame.
type InputState interface {
	Pressed(a Action) bool
}

var panDirections = map[Action]mgl32.Vec2{
	ActionPanLeft:  {-1, 0},
	ActionPanRight: {1, 0},
	ActionPanUp:    {0, 1},
	ActionPanDown:  {0, -1},
}

// CameraControlSystem pans and zooms a camera from held actions.
// Phase 0 (Input).
type CameraControlSystem struct {
	cam   *camera.Orthographic
	input InputState

	// PanSpeed is in camera half-heights per second, so panning feels the
	// same at every zoom. ZoomSpeed is the zoom growth per second.
	PanSpeed  float32
	ZoomSpeed float32
}

func NewCameraControlSystem(cam *camera.Orthographic, input InputState) *CameraControlSystem {
	return &CameraControlSystem{cam: cam, input: input, PanSpeed: 1, ZoomSpeed: 1.5}
}

func (s *CameraControlSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *CameraControlSystem) Update(dt float64) {
	var dir mgl32.Vec2
	for a, d := range panDirections {
		if s.input.Pressed(a) {
			dir = dir.Add(d)
		}
	}
	if dir.Len() > 0 {
		step := dir.Normalize().Mul(s.PanSpeed * float32(dt) * s.cam.Zoom())
		s.cam.SetPosition(s.cam.Position().Add(step.Vec3(0)))
	}

	factor := 1 + s.ZoomSpeed*float32(dt)
	if s.input.Pressed(ActionZoomOut) {
		s.cam.SetZoom(s.cam.Zoom() * factor)
	}
	if s.input.Pressed(ActionZoomIn) {
		s.cam.SetZoom(s.cam.Zoom() / factor)
	}
}
