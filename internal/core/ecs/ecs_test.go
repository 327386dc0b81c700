package ecs

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type position struct{ X, Y float32 }
type velocity struct{ DX, DY float32 }
type health struct{ HP int }

func checkDense[T any](t *testing.T, p *ComponentPool[T]) {
	t.Helper()
	require.Equal(t, len(p.dense), len(p.entities))
	for i, e := range p.entities {
		require.Equal(t, uint32(i), p.sparse[e], "sparse[entities[%d]]", i)
	}
}

func TestPoolAddGetRemove(t *testing.T) {
	p := NewComponentPool[position]()
	p.Add(7, position{1, 2})

	require.True(t, p.Has(7))
	assert.Equal(t, position{1, 2}, *p.Get(7))

	p.Add(7, position{3, 4})
	assert.Equal(t, 1, p.Len(), "re-adding overwrites")
	assert.Equal(t, position{3, 4}, *p.Get(7))

	p.Remove(7)
	assert.False(t, p.Has(7))
	_, ok := p.TryGet(7)
	assert.False(t, ok)

	p.Remove(7)
	p.Remove(9000)
	assert.Equal(t, 0, p.Len())
}

func TestPoolSwapRemove(t *testing.T) {
	p := NewComponentPool[health]()
	p.Add(1, health{10})
	p.Add(2, health{20})
	p.Add(3, health{30})

	p.Remove(2)

	assert.ElementsMatch(t, []Entity{1, 3}, p.Entities())
	assert.Equal(t, health{30}, *p.Get(3))
	assert.Equal(t, health{10}, *p.Get(1))
	assert.False(t, p.Has(2))
	checkDense(t, p)
}

func TestPoolRandomSequenceKeepsInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	p := NewComponentPool[int]()
	want := map[Entity]int{}

	for i := 0; i < 5000; i++ {
		e := Entity(rng.Intn(300) + 1)
		if rng.Intn(3) == 0 {
			p.Remove(e)
			delete(want, e)
		} else {
			v := rng.Int()
			p.Add(e, v)
			want[e] = v
		}
	}

	checkDense(t, p)
	require.Equal(t, len(want), p.Len())
	for e, v := range want {
		require.True(t, p.Has(e))
		require.Equal(t, v, *p.Get(e))
	}
}

func TestPoolSparseGrowsLazily(t *testing.T) {
	p := NewComponentPool[int]()
	assert.False(t, p.Has(100000))
	p.Add(100000, 5)
	assert.True(t, p.Has(100000))
	assert.False(t, p.Has(99999))
	assert.GreaterOrEqual(t, len(p.sparse), 100001)
}

func TestPoolGetAbsentPanics(t *testing.T) {
	p := NewComponentPool[position]()
	p.Add(1, position{})
	assert.Panics(t, func() { p.Get(2) })
	assert.Panics(t, func() { p.Get(500) })
}

func TestCreateEntityNeverReusesIDs(t *testing.T) {
	r := NewRegistry()
	var last Entity
	for i := 0; i < 100; i++ {
		e := r.CreateEntity()
		if i == 0 {
			assert.Equal(t, Entity(1), e)
		}
		assert.Greater(t, e, last)
		last = e
		if i%3 == 0 {
			r.DestroyEntity(e)
		}
	}
	assert.Equal(t, Entity(100), last)
	assert.Equal(t, 66, r.EntityCount())
}

func TestRegistryComponents(t *testing.T) {
	r := NewRegistry()
	e := r.CreateEntity()

	Add(r, e, position{1, 1})
	Add(r, e, velocity{2, 2})

	assert.True(t, Has[position](r, e))
	assert.True(t, Has[velocity](r, e))
	assert.False(t, Has[health](r, e), "unknown type gets an empty pool")
	assert.Equal(t, 3, r.ComponentTypes())

	Get[position](r, e).X = 9
	p, ok := TryGet[position](r, e)
	require.True(t, ok)
	assert.Equal(t, float32(9), p.X)

	Remove[velocity](r, e)
	assert.False(t, Has[velocity](r, e))
	assert.Empty(t, View[velocity](r))
}

func TestDestroyEntityRemovesFromAllPools(t *testing.T) {
	r := NewRegistry()
	a, b := r.CreateEntity(), r.CreateEntity()
	Add(r, a, position{})
	Add(r, a, health{1})
	Add(r, b, position{})

	r.DestroyEntity(a)

	assert.False(t, r.Alive(a))
	assert.True(t, r.Alive(b))
	assert.False(t, Has[position](r, a))
	assert.False(t, Has[health](r, a))
	assert.Equal(t, []Entity{b}, View[position](r))
}

func TestEach2WalksIntersection(t *testing.T) {
	r := NewRegistry()
	var both []Entity
	for i := 0; i < 10; i++ {
		e := r.CreateEntity()
		Add(r, e, position{X: float32(i)})
		if i%2 == 0 {
			Add(r, e, velocity{DX: 1})
			both = append(both, e)
		}
	}

	var seen []Entity
	Each2(r, func(e Entity, p *position, v *velocity) {
		p.X += v.DX
		seen = append(seen, e)
	})

	assert.ElementsMatch(t, both, seen)
	assert.Equal(t, float32(1), Get[position](r, both[0]).X)
}

func TestEach3(t *testing.T) {
	r := NewRegistry()
	e1, e2 := r.CreateEntity(), r.CreateEntity()
	Add(r, e1, position{})
	Add(r, e1, velocity{})
	Add(r, e1, health{3})
	Add(r, e2, position{})
	Add(r, e2, health{4})

	n := 0
	Each3(r, func(e Entity, _ *position, _ *velocity, h *health) {
		assert.Equal(t, e1, e)
		assert.Equal(t, 3, h.HP)
		n++
	})
	assert.Equal(t, 1, n)
}
