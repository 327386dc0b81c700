package ecs

import "reflect"

// Registry owns one ComponentPool per component type and issues entity ids.
// Component types get a stable index on first use; pools is indexed by it.
type Registry struct {
	entities *EntityPool
	typeIDs  map[reflect.Type]int
	pools    []anyPool
}

func NewRegistry() *Registry {
	return &Registry{
		entities: NewEntityPool(),
		typeIDs:  make(map[reflect.Type]int, 16),
		pools:    make([]anyPool, 0, 16),
	}
}

// CreateEntity returns the next unused id. Ids are monotonic and never recycled.
func (r *Registry) CreateEntity() Entity {
	return r.entities.Create()
}

// DestroyEntity removes e from every registered pool, present or not.
func (r *Registry) DestroyEntity(e Entity) {
	for _, p := range r.pools {
		p.Remove(e)
	}
	r.entities.Destroy(e)
}

func (r *Registry) Alive(e Entity) bool { return r.entities.Alive(e) }

func (r *Registry) EntityCount() int { return r.entities.Count() }

// ComponentTypes returns how many distinct component types have pools.
func (r *Registry) ComponentTypes() int { return len(r.pools) }

func typeID[T any](r *Registry) int {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if id, ok := r.typeIDs[t]; ok {
		return id
	}
	id := len(r.typeIDs)
	r.typeIDs[t] = id
	return id
}

// Pool returns the pool for T, creating it on first use.
func Pool[T any](r *Registry) *ComponentPool[T] {
	id := typeID[T](r)
	if id >= len(r.pools) {
		grown := make([]anyPool, id+1)
		copy(grown, r.pools)
		r.pools = grown
	}
	if r.pools[id] == nil {
		r.pools[id] = NewComponentPool[T]()
	}
	return r.pools[id].(*ComponentPool[T])
}

func Add[T any](r *Registry, e Entity, v T) *T {
	p := Pool[T](r)
	p.Add(e, v)
	return p.Get(e)
}

func Remove[T any](r *Registry, e Entity) {
	Pool[T](r).Remove(e)
}

// Get panics if e has no T. Use TryGet when presence is not known.
func Get[T any](r *Registry, e Entity) *T {
	return Pool[T](r).Get(e)
}

func TryGet[T any](r *Registry, e Entity) (*T, bool) {
	return Pool[T](r).TryGet(e)
}

func Has[T any](r *Registry, e Entity) bool {
	return Pool[T](r).Has(e)
}

// View returns the live dense entity list of T's pool. See ComponentPool.Entities.
func View[T any](r *Registry) []Entity {
	return Pool[T](r).Entities()
}
