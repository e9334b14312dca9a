package entity

import (
	"github.com/qkarena/qk/assert"
	"github.com/qkarena/qk/game"
)

// Pool is a fixed flat array of entities addressed by small integer ids.
// Freeing a slot never moves anything, so ids held elsewhere (projectile
// owners, snapshot references) stay valid until explicitly reallocated.
type Pool struct {
	entities  [game.MaxEntities]Entity
	highWater int32
}

// Alloc claims a free slot and returns its id, or -1 when the pool is
// exhausted. Fresh slots beyond the high-water mark are preferred, so
// entities allocated while a tick iterates the pool land at indices the
// iteration has not reached yet whenever any fresh slot remains.
func (p *Pool) Alloc(kind Kind) int32 {
	assert.IsTrue(kind != KindNone, "entity: alloc of kind none")

	for i := p.highWater; i < int32(len(p.entities)); i++ {
		if p.entities[i].Kind == KindNone {
			return p.claim(i, kind)
		}
	}
	for i := int32(0); i < p.highWater; i++ {
		if p.entities[i].Kind == KindNone {
			return p.claim(i, kind)
		}
	}
	return -1
}

func (p *Pool) claim(id int32, kind Kind) int32 {
	p.entities[id] = Entity{Kind: kind}
	if id >= p.highWater {
		p.highWater = id + 1
	}
	return id
}

// Free releases the slot. Freeing an already free or out-of-range id is a
// no-op.
func (p *Pool) Free(id int32) {
	if id < 0 || id >= int32(len(p.entities)) {
		return
	}
	p.entities[id] = Entity{}
}

// Find returns the live entity with the given id, or nil if the id is out
// of range or the slot is free.
func (p *Pool) Find(id int32) *Entity {
	if id < 0 || id >= int32(len(p.entities)) {
		return nil
	}
	e := &p.entities[id]
	if e.Kind == KindNone {
		return nil
	}
	return e
}

// HighWater returns one past the largest id ever allocated. Iterating
// [0, HighWater) visits every live entity.
func (p *Pool) HighWater() int32 {
	return p.highWater
}

// Count returns the number of live entities of the given kind.
func (p *Pool) Count(kind Kind) int {
	n := 0
	for i := int32(0); i < p.highWater; i++ {
		if p.entities[i].Kind == kind {
			n++
		}
	}
	return n
}
