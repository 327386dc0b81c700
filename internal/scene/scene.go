package scene

import (
	"go.uber.org/zap"

	"github.com/quadcore/engine/internal/core/ecs"
	"github.com/quadcore/engine/internal/core/event"
	coresys "github.com/quadcore/engine/internal/core/system"
	"github.com/quadcore/engine/internal/render"
	"github.com/quadcore/engine/internal/system"
)

// Scene owns a Registry, the roster of live entities and the persistent UI
// elements, and runs the per-frame systems over them.
//
// All mutation must happen on the frame goroutine and finish before Render.
// Destroying entities from inside a system while a view is being walked
// reorders that view; use QueueDestroy there instead.
type Scene struct {
	name string
	log  *zap.Logger

	registry *ecs.Registry
	entities []ecs.Entity

	ui     map[UIElementID]*UIElement
	nextUI UIElementID

	renderer *render.BatchRenderer
	sprites  *system.SpriteRenderer
	runner   *coresys.Runner
	bus      *event.Bus

	destroyQueue []ecs.Entity
	uiScratch    []*UIElement
}

func New(name string, renderer *render.BatchRenderer, log *zap.Logger) *Scene {
	reg := ecs.NewRegistry()
	bus := event.NewBus()
	s := &Scene{
		name:         name,
		log:          log.With(zap.String("scene", name)),
		registry:     reg,
		entities:     make([]ecs.Entity, 0, 256),
		ui:           make(map[UIElementID]*UIElement),
		nextUI:       FirstUIElementID,
		renderer:     renderer,
		sprites:      system.NewSpriteRenderer(reg),
		runner:       coresys.NewRunner(),
		bus:          bus,
		destroyQueue: make([]ecs.Entity, 0, 32),
	}
	s.runner.Register(system.NewAnimationSystem(reg, bus))
	s.runner.Register(system.NewCleanupSystem(s))
	return s
}

func (s *Scene) Name() string                    { return s.name }
func (s *Scene) Registry() *ecs.Registry         { return s.registry }
func (s *Scene) Bus() *event.Bus                 { return s.bus }
func (s *Scene) Renderer() *render.BatchRenderer { return s.renderer }

// Entities returns the live roster. Callers must not modify it.
func (s *Scene) Entities() []ecs.Entity { return s.entities }

// AddSystem registers an extra per-frame system, run in phase order.
func (s *Scene) AddSystem(sys coresys.System) {
	s.runner.Register(sys)
}

func (s *Scene) CreateEntity() ecs.Entity {
	e := s.registry.CreateEntity()
	s.entities = append(s.entities, e)
	return e
}

// DestroyEntity removes e from every pool and from the roster immediately.
func (s *Scene) DestroyEntity(e ecs.Entity) {
	if !s.registry.Alive(e) {
		return
	}
	s.registry.DestroyEntity(e)
	for i, id := range s.entities {
		if id == e {
			s.entities = append(s.entities[:i], s.entities[i+1:]...)
			break
		}
	}
	event.Emit(s.bus, event.EntityDestroyed{Entity: e})
	s.log.Debug("entity destroyed", zap.Uint32("entity", uint32(e)))
}

// QueueDestroy defers destruction of e to the end of the current Update.
func (s *Scene) QueueDestroy(e ecs.Entity) {
	s.destroyQueue = append(s.destroyQueue, e)
}

// FlushDestroyQueue destroys every queued entity in queue order.
func (s *Scene) FlushDestroyQueue() {
	for _, e := range s.destroyQueue {
		s.DestroyEntity(e)
	}
	s.destroyQueue = s.destroyQueue[:0]
}

// Update delivers last frame's events, then runs every system with dt seconds.
func (s *Scene) Update(dt float64) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
	s.runner.Tick(dt)
}

// Render draws every visible Transform+Sprite entity in one batch scope.
func (s *Scene) Render(cam render.Camera) {
	s.renderer.BeginScene(cam)
	s.sprites.Submit(s.entities, s.renderer)
	s.renderer.EndScene()
}
