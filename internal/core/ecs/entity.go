// Package ecs provides generational entity identifiers and typed per-entity
// stores keyed by them.
package ecs

import "fmt"

// EntityID encodes a 32-bit index in the lower bits and a 32-bit generation
// in the upper bits. The generation moves on release so stale ids never
// match a recycled slot.
type EntityID uint64

func NewEntityID(index uint32, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

func (id EntityID) Index() uint32      { return uint32(id) }
func (id EntityID) Generation() uint32 { return uint32(id >> 32) }
func (id EntityID) IsZero() bool       { return id == 0 }

func (id EntityID) String() string {
	return fmt.Sprintf("%d:%d", id.Index(), id.Generation())
}

// Pool hands out entity ids. Index 0 is reserved so the zero EntityID never
// names a live entity.
type Pool struct {
	generations []uint32
	free        []uint32
	live        int
}

func NewPool() *Pool {
	return &Pool{
		generations: make([]uint32, 1, 256),
		free:        make([]uint32, 0, 64),
	}
}

// Allocate returns a fresh id, reusing released slots first.
func (p *Pool) Allocate() EntityID {
	p.live++
	if n := len(p.free); n > 0 {
		idx := p.free[n-1]
		p.free = p.free[:n-1]
		return NewEntityID(idx, p.generations[idx])
	}
	idx := uint32(len(p.generations))
	p.generations = append(p.generations, 0)
	return NewEntityID(idx, 0)
}

// Live reports whether id is currently allocated.
func (p *Pool) Live(id EntityID) bool {
	idx := id.Index()
	if idx == 0 || int(idx) >= len(p.generations) {
		return false
	}
	for _, f := range p.free {
		if f == idx {
			return false
		}
	}
	return p.generations[idx] == id.Generation()
}

// Release returns id to the pool. Releasing a stale id does nothing.
func (p *Pool) Release(id EntityID) {
	if !p.Live(id) {
		return
	}
	p.generations[id.Index()]++
	p.free = append(p.free, id.Index())
	p.live--
}

// Len returns the number of live ids.
func (p *Pool) Len() int { return p.live }
