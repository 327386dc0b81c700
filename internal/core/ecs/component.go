package ecs

import (
	"fmt"
	"math"
)

// nullIndex marks an entity slot in sparse that has no dense entry.
const nullIndex = math.MaxUint32

// anyPool is implemented by every ComponentPool so the Registry can hold
// pools of different component types in one slice and bulk-remove an
// entity's data from all of them on destroy.
type anyPool interface {
	Remove(e Entity)
	Has(e Entity) bool
	Len() int
	Entities() []Entity
}

// ComponentPool is sparse-set storage for a single component type.
// dense[i] belongs to entities[i]; sparse[e] holds i, or nullIndex.
// Iteration order is insertion order until a removal swaps the last
// element into the hole.
type ComponentPool[T any] struct {
	dense    []T
	entities []Entity
	sparse   []uint32
}

func NewComponentPool[T any]() *ComponentPool[T] {
	return &ComponentPool[T]{
		dense:    make([]T, 0, 64),
		entities: make([]Entity, 0, 64),
	}
}

// Add stores v for e, overwriting any existing component.
func (p *ComponentPool[T]) Add(e Entity, v T) {
	if p.Has(e) {
		p.dense[p.sparse[e]] = v
		return
	}
	p.ensureSparse(e)
	p.sparse[e] = uint32(len(p.dense))
	p.dense = append(p.dense, v)
	p.entities = append(p.entities, e)
}

func (p *ComponentPool[T]) ensureSparse(e Entity) {
	if int(e) < len(p.sparse) {
		return
	}
	n := len(p.sparse)
	size := n * 2
	if size <= int(e) {
		size = int(e) + 1
	}
	if size < 64 {
		size = 64
	}
	grown := make([]uint32, size)
	copy(grown, p.sparse)
	for i := n; i < size; i++ {
		grown[i] = nullIndex
	}
	p.sparse = grown
}

// Remove deletes e's component in O(1) by moving the last dense element
// into the freed slot. No-op if e has none.
func (p *ComponentPool[T]) Remove(e Entity) {
	if !p.Has(e) {
		return
	}
	removed := p.sparse[e]
	last := uint32(len(p.dense) - 1)
	if removed != last {
		moved := p.entities[last]
		p.dense[removed] = p.dense[last]
		p.entities[removed] = moved
		p.sparse[moved] = removed
	}
	var zero T
	p.dense[last] = zero
	p.dense = p.dense[:last]
	p.entities = p.entities[:last]
	p.sparse[e] = nullIndex
}

// Has reports whether e has a component in this pool.
func (p *ComponentPool[T]) Has(e Entity) bool {
	return int(e) < len(p.sparse) && p.sparse[e] != nullIndex
}

// Get returns a pointer to e's component. The caller must have checked Has;
// an absent component panics. The pointer is invalidated by the next Add
// or Remove on this pool.
func (p *ComponentPool[T]) Get(e Entity) *T {
	if !p.Has(e) {
		var zero T
		panic(fmt.Sprintf("ecs: entity %d has no %T component", e, zero))
	}
	return &p.dense[p.sparse[e]]
}

// TryGet returns e's component and true, or nil and false.
func (p *ComponentPool[T]) TryGet(e Entity) (*T, bool) {
	if !p.Has(e) {
		return nil, false
	}
	return &p.dense[p.sparse[e]], true
}

func (p *ComponentPool[T]) Len() int {
	return len(p.dense)
}

// Entities returns the dense entity slice itself, not a copy. Adding to or
// removing from the pool while ranging over it reorders the slice under
// the caller.
func (p *ComponentPool[T]) Entities() []Entity {
	return p.entities
}

// Each calls fn for every component in dense order.
func (p *ComponentPool[T]) Each(fn func(Entity, *T)) {
	for i := range p.dense {
		fn(p.entities[i], &p.dense[i])
	}
}
