package event

import "github.com/quadcore/engine/internal/core/ecs"

// FrameAdvanced is emitted once per animation step, so a single slow frame
// that catches up several steps emits several events.
type FrameAdvanced struct {
	Entity ecs.Entity
	Frame  int
}

// EntityDestroyed is emitted when a scene destroys an entity.
type EntityDestroyed struct {
	Entity ecs.Entity
}
