package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sceneworks/sceneedit/internal/core/ecs"
)

func TestPoolAllocateRelease(t *testing.T) {
	p := ecs.NewPool()
	a := p.Allocate()
	b := p.Allocate()
	require.NotEqual(t, a, b)
	assert.False(t, a.IsZero())
	assert.Equal(t, 2, p.Len())

	p.Release(a)
	assert.False(t, p.Live(a))
	assert.True(t, p.Live(b))
	assert.Equal(t, 1, p.Len())

	c := p.Allocate()
	assert.Equal(t, a.Index(), c.Index(), "released slot is reused")
	assert.NotEqual(t, a.Generation(), c.Generation())
	assert.False(t, p.Live(a), "stale id stays dead after reuse")

	p.Release(a)
	assert.True(t, p.Live(c), "releasing a stale id is a no-op")
}

func TestStoresReleaseAndJoin(t *testing.T) {
	p := ecs.NewPool()
	names := ecs.NewStore[string]()
	sizes := ecs.NewStore[int]()
	set := ecs.NewStores(names)
	set.Track(sizes)

	a, b := p.Allocate(), p.Allocate()
	na, nb := "a", "b"
	sa := 1
	names.Put(a, &na)
	names.Put(b, &nb)
	sizes.Put(a, &sa)

	var joined []ecs.EntityID
	ecs.Join(names, sizes, func(id ecs.EntityID, n *string, s *int) {
		joined = append(joined, id)
		assert.Equal(t, "a", *n)
		assert.Equal(t, 1, *s)
	})
	assert.Equal(t, []ecs.EntityID{a}, joined)

	set.Release(a)
	assert.False(t, names.Has(a))
	assert.False(t, sizes.Has(a))
	assert.True(t, names.Has(b))
}
