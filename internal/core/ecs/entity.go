package ecs

// Entity is an opaque handle. Ids start at 1 and are never reused, so a
// stale id can never alias a newer entity. Null (0) is never issued.
type Entity uint32

const Null Entity = 0

func (e Entity) IsNull() bool { return e == Null }

// EntityPool issues entity ids and tracks which ones are still alive.
type EntityPool struct {
	alive []bool
	next  Entity
	count int
}

func NewEntityPool() *EntityPool {
	return &EntityPool{
		alive: make([]bool, 1, 1024),
		next:  1,
	}
}

func (p *EntityPool) Create() Entity {
	e := p.next
	p.next++
	p.alive = append(p.alive, true)
	p.count++
	return e
}

func (p *EntityPool) Alive(e Entity) bool {
	return int(e) < len(p.alive) && p.alive[e]
}

// Destroy marks e dead. Its id stays retired.
func (p *EntityPool) Destroy(e Entity) bool {
	if !p.Alive(e) {
		return false
	}
	p.alive[e] = false
	p.count--
	return true
}

// Count returns the number of live entities.
func (p *EntityPool) Count() int { return p.count }
