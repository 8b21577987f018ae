package ecs

// Releaser is implemented by every Store so a Stores set can drop one
// entity's data from all of them at once.
type Releaser interface {
	Release(id EntityID)
}

// Store is a typed map of per-entity values.
type Store[T any] struct {
	data map[EntityID]*T
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{data: make(map[EntityID]*T, 64)}
}

func (s *Store[T]) Put(id EntityID, v *T) { s.data[id] = v }

func (s *Store[T]) Get(id EntityID) (*T, bool) {
	v, ok := s.data[id]
	return v, ok
}

func (s *Store[T]) Has(id EntityID) bool {
	_, ok := s.data[id]
	return ok
}

func (s *Store[T]) Release(id EntityID) { delete(s.data, id) }

func (s *Store[T]) Len() int { return len(s.data) }

// Each calls fn for every stored value. Order is unspecified.
func (s *Store[T]) Each(fn func(EntityID, *T)) {
	for id, v := range s.data {
		fn(id, v)
	}
}
