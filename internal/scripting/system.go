package scripting

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/quadcore/engine/internal/component"
	"github.com/quadcore/engine/internal/core/ecs"
	"github.com/quadcore/engine/internal/core/event"
	coresys "github.com/quadcore/engine/internal/core/system"
	"github.com/quadcore/engine/internal/scene"
)

// scriptSystem calls update(entity, dt) on the behaviour table of every
// entity carrying a Script component.
type scriptSystem struct {
	engine  *Engine
	scene   *scene.Scene
	scratch []ecs.Entity
}

func newScriptSystem(e *Engine, s *scene.Scene) *scriptSystem {
	return &scriptSystem{engine: e, scene: s}
}

func (s *scriptSystem) Phase() coresys.Phase { return coresys.PhaseScript }

func (s *scriptSystem) Update(dt float64) {
	if s.engine.scene != s.scene {
		return
	}
	reg := s.scene.Registry()
	pool := ecs.Pool[component.Script](reg)
	// scripts may add or remove Script components; walk a snapshot
	s.scratch = append(s.scratch[:0], pool.Entities()...)
	for _, id := range s.scratch {
		sc, ok := pool.TryGet(id)
		if !ok {
			continue
		}
		t := s.engine.behaviour(sc.Name)
		if t == nil {
			continue
		}
		s.engine.call(sc.Name, t, "update", lua.LNumber(id), lua.LNumber(dt))
	}
}

func (e *Engine) onFrame(ev event.FrameAdvanced) {
	sc, ok := ecs.TryGet[component.Script](e.scene.Registry(), ev.Entity)
	if !ok {
		return
	}
	t := e.behaviour(sc.Name)
	if t == nil {
		return
	}
	e.call(sc.Name, t, "on_frame", lua.LNumber(ev.Entity), lua.LNumber(ev.Frame))
}
