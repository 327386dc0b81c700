package system

import (
	"github.com/quadcore/engine/internal/component"
	"github.com/quadcore/engine/internal/core/ecs"
	"github.com/quadcore/engine/internal/core/event"
	coresys "github.com/quadcore/engine/internal/core/system"
)

// AnimationSystem advances sprite-strip animations. Phase 2 (Animation).
type AnimationSystem struct {
	reg *ecs.Registry
	bus *event.Bus
}

func NewAnimationSystem(reg *ecs.Registry, bus *event.Bus) *AnimationSystem {
	return &AnimationSystem{reg: reg, bus: bus}
}

func (s *AnimationSystem) Phase() coresys.Phase { return coresys.PhaseAnimation }

// Update adds dt to every active animation and steps one frame per full
// interval elapsed. A long dt steps several frames; leftover time carries
// over to the next update.
func (s *AnimationSystem) Update(dt float64) {
	sprites := ecs.Pool[component.Sprite](s.reg)
	ecs.Pool[component.Animation](s.reg).Each(func(e ecs.Entity, a *component.Animation) {
		if !a.Active() || a.FrameRate <= 0 {
			return
		}
		frames := 1
		if sp, ok := sprites.TryGet(e); ok && sp.Texture != nil {
			frames = a.FrameCount(sp.Texture.Width())
		}
		interval := 1 / a.FrameRate
		a.Elapsed += float32(dt)
		for a.Elapsed >= interval {
			a.Elapsed -= interval
			a.Frame = (a.Frame + 1) % frames
			if s.bus != nil {
				event.Emit(s.bus, event.FrameAdvanced{Entity: e, Frame: a.Frame})
			}
		}
	})
}
